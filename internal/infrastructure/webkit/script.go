// Package webkit drives the theme marker of a web view through JavaScript.
package webkit

import (
	"encoding/json"
	"fmt"

	"github.com/grafana/sobek"
)

// jsString renders s as a JavaScript string literal.
func jsString(s string) string {
	b, err := json.Marshal(s)
	if err != nil {
		return `""`
	}
	return string(b)
}

// Validate compiles script without running it and returns the syntax error, if any.
func Validate(name, script string) error {
	if _, err := sobek.Compile(name, script, false); err != nil {
		return fmt.Errorf("compile %s: %w", name, err)
	}
	return nil
}
