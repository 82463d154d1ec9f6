package filestore

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// datePartitionLayout shapes the yyyy/MM/dd prefix of storage keys.
// Lexical ordering of generated keys follows upload date, which keeps
// prefix scans chronological on backends that support them.
const datePartitionLayout = "2006/01/02"

// NewStorageKey derives a date-partitioned key for an original file name:
// "yyyy/MM/dd/<uuid>_<name>". The UUID component makes concurrent uploads
// of the same name collision-free within and across processes.
func NewStorageKey(fileName string, now time.Time) string {
	return now.Format(datePartitionLayout) + "/" + uuid.NewString() + "_" + SanitizeFileName(fileName)
}

// NewMemoryKey returns an opaque token used as the key for the in-memory
// backend, which has no use for date partitioning.
func NewMemoryKey() string {
	return uuid.NewString()
}

// SanitizeFileName reduces an original file name to a form that is safe to
// embed in a storage key: the base name only, with characters that are
// unsafe in path segments replaced by underscores.
func SanitizeFileName(name string) string {
	// Keep only the last path element, whichever separator the client used.
	if i := strings.LastIndexAny(name, `/\`); i >= 0 {
		name = name[i+1:]
	}
	name = strings.TrimSpace(name)

	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		switch {
		case r < 0x20 || r == 0x7f:
			b.WriteRune('_')
		case r == ':' || r == '*' || r == '?' || r == '"' || r == '<' || r == '>' || r == '|':
			b.WriteRune('_')
		default:
			b.WriteRune(r)
		}
	}
	name = b.String()

	if name == "" || name == "." || name == ".." {
		return "file"
	}
	return name
}
