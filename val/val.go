// Package val provides schema validation helpers built on
// go-playground/validator, returning errors in the errx taxonomy with
// per-field descriptions.
package val

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate //nolint: gochecknoglobals // single shared validator instance

func init() { //nolint: gochecknoinits // validator setup has no failure modes
	validate = validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(getTagName)
}

// getTagName returns the name of a struct field based on its struct tags.
// Configuration structs are yaml-tagged, so yaml wins over json; the field
// name is the fallback when neither tag names the field.
func getTagName(fld reflect.StructField) string {
	for _, tagName := range []string{"yaml", "json"} {
		name := strings.SplitN(fld.Tag.Get(tagName), ",", 2)[0]
		if name != "" && name != "-" {
			return name
		}
	}
	return fld.Name
}

func getValidator() *validator.Validate {
	return validate
}
