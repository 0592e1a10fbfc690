// Package json contains utilities for handling JSON.
package json

import (
	"encoding/json"
	"fmt"
	"io"
)

// DecodeJSON decodes a single JSON object from the decoder and rejects
// trailing tokens.
func DecodeJSON(dst any, decoder *json.Decoder) error {
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("decoding json: %w", err)
	}

	if _, err := decoder.Token(); err != io.EOF {
		return fmt.Errorf("unexpected token after JSON object: %w", err)
	}
	return nil
}
