package printers

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// Encoding names accepted by --output.
const (
	EncodingText = ""
	EncodingJSON = "json"
	EncodingYAML = "yaml"
)

// ParseEncoding normalizes an --output value.
func ParseEncoding(raw string) (string, error) {
	switch s := strings.ToLower(strings.TrimSpace(raw)); s {
	case "", "text":
		return EncodingText, nil
	case EncodingJSON, EncodingYAML:
		return s, nil
	default:
		return "", fmt.Errorf("unknown output %q (expected text, json or yaml)", raw)
	}
}

// Encode writes v to w as indented JSON or as YAML.
func Encode(w io.Writer, encoding string, v any) error {
	switch encoding {
	case EncodingJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case EncodingYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("cannot encode as %q", encoding)
	}
}
