package submission

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/goccy/go-json"
)

// ErrUnsupportedContentType is returned by FromRequest for bodies that are
// neither JSON nor form encoded.
var ErrUnsupportedContentType = errors.New("submission: unsupported content type")

// Decode reads a JSON object. Numbers are kept as json.Number so integer
// values survive validation without float rounding.
func Decode(r io.Reader) (map[string]any, error) {
	decoder := json.NewDecoder(r)
	decoder.UseNumber()

	var payload map[string]any
	if err := decoder.Decode(&payload); err != nil {
		return nil, fmt.Errorf("submission: decode json: %w", err)
	}
	if payload == nil {
		return nil, errors.New("submission: payload must be a JSON object")
	}
	return payload, nil
}

// FromRequest decodes a submission posted either by the browser runtime as
// JSON or by a plain form post without scripts.
func FromRequest(r *http.Request) (map[string]any, error) {
	contentType := r.Header.Get("Content-Type")
	mediaType := ""
	if contentType != "" {
		parsed, _, err := mime.ParseMediaType(contentType)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrUnsupportedContentType, contentType)
		}
		mediaType = parsed
	}

	switch {
	case mediaType == "application/json" || strings.HasSuffix(mediaType, "+json"):
		return Decode(r.Body)
	case mediaType == "application/x-www-form-urlencoded":
		if err := r.ParseForm(); err != nil {
			return nil, fmt.Errorf("submission: parse form: %w", err)
		}
		return Inflate(r.PostForm)
	case mediaType == "multipart/form-data":
		if err := r.ParseMultipartForm(10 << 20); err != nil {
			return nil, fmt.Errorf("submission: parse form: %w", err)
		}
		return Inflate(r.PostForm)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedContentType, contentType)
	}
}
