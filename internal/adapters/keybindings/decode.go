package keybindings

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hjson/hjson-go/v4"

	"keymirror/internal/domain"
	"keymirror/internal/logging"
)

// Decode parses a keybindings document. name is used to pick a decoder
// under FormatAuto and may be empty.
func Decode(data []byte, format Format, name string) ([]domain.Record, error) {
	switch format.resolve(name) {
	case FormatJSON:
		return decodeJSON(data)
	case FormatHJSON:
		return decodeHJSON(data)
	}

	records, err := decodeJSON(data)
	var syntaxErr *json.SyntaxError
	if err == nil || !errors.As(err, &syntaxErr) {
		return records, err
	}

	logging.Logger.Debug("Input is not strict JSON, retrying as HJSON", "input", name, "error", err)
	fallback, hjsonErr := decodeHJSON(data)
	if hjsonErr != nil {
		// The JSON error points at the offending byte
		return nil, err
	}
	return fallback, nil
}

func decodeJSON(data []byte) ([]domain.Record, error) {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil, domain.ErrNotAnArray
	}

	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field == "" {
			return nil, fmt.Errorf("%w, found %s", domain.ErrNotAnArray, typeErr.Value)
		}
		return nil, fmt.Errorf("failed to parse keybindings: %w", err)
	}

	records := make([]domain.Record, len(items))
	for i, item := range items {
		if err := json.Unmarshal(item, &records[i]); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
	}
	return records, nil
}

// decodeHJSON accepts comments, trailing commas and unquoted keys, then
// re-encodes the document as JSON so records decode the same way.
// Object member order inside args is not kept.
func decodeHJSON(data []byte) ([]domain.Record, error) {
	opts := hjson.DefaultDecoderOptions()
	opts.UseJSONNumber = true

	var doc interface{}
	if err := hjson.UnmarshalWithOptions(data, &doc, opts); err != nil {
		return nil, fmt.Errorf("failed to parse keybindings as HJSON: %w", err)
	}

	normalized, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to normalize HJSON keybindings: %w", err)
	}
	return decodeJSON(normalized)
}
