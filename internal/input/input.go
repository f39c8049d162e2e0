// Package input reads documents to be checked from JSON, JSONC or YAML.
//
// A document is an untyped mapping. A top-level object is one
// document, a top-level array is a sequence of documents, and a
// stream of several top-level values (NDJSON, multi-document YAML)
// is flattened in order.
package input

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// Format is the encoding of an input stream.
type Format string

const (
	// FormatJSON accepts plain JSON as well as JSONC (comments, trailing commas).
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ErrMalformedDocument is returned when input cannot be turned into documents.
var ErrMalformedDocument = errors.New("malformed document")

// ParseFormat resolves a --format value.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "json", "jsonc":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown format %q (must be one of: json, yaml)", s)
	}
}

// DetectFormat picks a format from a file extension, defaulting to JSON.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Read decodes every document in r.
//
// JSON numbers are kept as json.Number so integers are not routed through
// float64. Empty input yields no documents.
func Read(r io.Reader, format Format) ([]map[string]any, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}

	var values []any
	switch format {
	case FormatJSON:
		values, err = decodeJSON(data)
	case FormatYAML:
		values, err = decodeYAML(data)
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedDocument, err)
	}

	docs := []map[string]any{}
	for _, v := range values {
		more, err := toDocuments(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformedDocument, err)
		}
		docs = append(docs, more...)
	}

	return docs, nil
}

func decodeJSON(data []byte) ([]any, error) {
	dec := json.NewDecoder(bytes.NewReader(jsonc.ToJSON(data)))
	dec.UseNumber()

	var values []any
	for {
		var v any
		if err := dec.Decode(&v); err != nil {
			if errors.Is(err, io.EOF) {
				return values, nil
			}
			return nil, err
		}
		values = append(values, v)
	}
}

func decodeYAML(data []byte) ([]any, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))

	var values []any
	for {
		var v any
		if err := dec.Decode(&v); err != nil {
			if errors.Is(err, io.EOF) {
				return values, nil
			}
			return nil, err
		}
		values = append(values, v)
	}
}

func toDocuments(v any) ([]map[string]any, error) {
	switch v := v.(type) {
	case nil:
		return nil, nil
	case map[string]any:
		return []map[string]any{v}, nil
	case []any:
		docs := make([]map[string]any, 0, len(v))
		for i, item := range v {
			doc, ok := item.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("element %d is %T, expected an object", i, item)
			}
			docs = append(docs, doc)
		}
		return docs, nil
	default:
		return nil, fmt.Errorf("top-level value is %T, expected an object or an array", v)
	}
}
