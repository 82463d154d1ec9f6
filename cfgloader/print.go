package cfgloader

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/rise-and-shine/filestore/mask"
)

// printConfig logs the loaded config with sensitive fields masked.
// Fields tagged with `mask:"true"` never reach the output in clear text.
func printConfig(config any) {
	om := mask.StructToOrdMap(config)
	if om == nil {
		return
	}

	var b strings.Builder
	for pair := om.Oldest(); pair != nil; pair = pair.Next() {
		fmt.Fprintf(&b, "  %s: %v\n", pair.Key, pair.Value)
	}

	slog.Info(fmt.Sprintf("Loaded config:\n%s", b.String()))
}
