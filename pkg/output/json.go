// Package output renders API responses to the standard output.
package output

import (
	"encoding/json"
	"fmt"
	"io"
)

// Print writes the response body to w: verbatim when raw is set,
// otherwise re-encoded as indented JSON. Map keys come out sorted and
// non-ASCII characters are kept literal rather than escaped.
func Print(w io.Writer, body string, raw bool) error {
	if raw {
		_, err := io.WriteString(w, body)
		return err
	}

	var data any
	if err := json.Unmarshal([]byte(body), &data); err != nil {
		return fmt.Errorf("failed to parse response as JSON: %w", err)
	}

	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}
