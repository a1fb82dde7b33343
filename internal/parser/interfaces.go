package parser

import (
	"encoding/json"
	"errors"
	"io"
)

// Parser defines a generic interface for decoding a JSON response body into display records
type Parser[T any] interface {
	Parse(body io.Reader) ([]T, error)
}

// decodeDocument decodes exactly one JSON value from body. Anything but
// whitespace after that value is an error.
func decodeDocument(body io.Reader, v any) error {
	dec := json.NewDecoder(body)
	if err := dec.Decode(v); err != nil {
		return err
	}
	var extra json.RawMessage
	switch err := dec.Decode(&extra); {
	case errors.Is(err, io.EOF):
		return nil
	case err != nil:
		return err
	default:
		return errors.New("unexpected data after JSON value")
	}
}
