package engine

import (
	"net/http"

	"github.com/pkg/errors"
)

// Content types of engine prepared responses.
const (
	ContentTypeJSON = "application/json;charset=UTF-8"
	ContentTypeHTML = "text/html;charset=UTF-8"
)

// Response is an HTTP response to send back as is.
type Response struct {
	Status      int
	ContentType string
	Body        string
	Headers     map[string]string
}

func noStoreHeaders() map[string]string {
	return map[string]string{
		"Cache-Control": "no-store",
		"Pragma":        "no-cache",
	}
}

// newResponse maps an engine action and its response content to HTTP.
func newResponse(action Action, content string) (*Response, error) {
	r := &Response{
		ContentType: ContentTypeJSON,
		Body:        content,
		Headers:     noStoreHeaders(),
	}

	switch action {
	case ActionInternalServerError:
		r.Status = http.StatusInternalServerError
	case ActionBadRequest:
		r.Status = http.StatusBadRequest
	case ActionInvalidClient, ActionUnauthorized:
		r.Status = http.StatusUnauthorized
	case ActionForbidden:
		r.Status = http.StatusForbidden
	case ActionOK:
		r.Status = http.StatusOK
	case ActionForm:
		r.Status = http.StatusOK
		r.ContentType = ContentTypeHTML
	case ActionLocation:
		r.Status = http.StatusFound
		r.ContentType = ""
		r.Body = ""
		r.Headers["Location"] = content
	default:
		return nil, errors.Wrapf(ErrUpstream, "unexpected action %q", action)
	}

	return r, nil
}

// rawJSON wraps a document the engine returned verbatim.
func rawJSON(body []byte) *Response {
	return &Response{
		Status:      http.StatusOK,
		ContentType: ContentTypeJSON,
		Body:        string(body),
		Headers:     noStoreHeaders(),
	}
}
