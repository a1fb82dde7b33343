package parser

import (
	"io"
	"mime"
	"strings"

	"golang.org/x/net/html/charset"
)

// NewUTF8Reader wraps a JSON response body so that it is decoded as UTF-8.
//
// JSON is UTF-8 by definition, so the body is returned unchanged unless the
// Content-Type header explicitly declares another charset (some proxies in front
// of the API re-encode as ISO-8859-1). Content sniffing is deliberately not used:
// the HTML sniffing heuristics would misdetect JSON as windows-1252.
func NewUTF8Reader(body io.Reader, contentType string) (io.Reader, error) {
	if contentType == "" {
		return body, nil
	}

	_, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return body, nil
	}

	label := strings.ToLower(strings.TrimSpace(params["charset"]))
	if label == "" || label == "utf-8" || label == "utf8" {
		return body, nil
	}

	return charset.NewReaderLabel(label, body)
}
