package internal

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Response is the single reply a dispatch produces. A Response is built by a
// controller and consumed by the act of sending: Sent transitions false→true
// exactly once, and no further mutation is permitted afterwards.
//
// Body may be a string, a []byte, or any other value; non-string bodies are
// JSON-encoded and imply an application/json content type unless ContentType
// is set explicitly.
type Response struct {
	Headers     http.Header
	Body        any
	ContentType string
	StatusCode  int

	// Hijack suppresses the automatic send so the handler can stream the
	// output itself. The dispatcher still counts the response as sent.
	Hijack bool

	sent bool
}

// Text creates a plain-text response.
func Text(code int, body string) *Response {
	return &Response{
		StatusCode:  code,
		Body:        body,
		ContentType: "text/plain; charset=utf-8",
		Headers:     http.Header{},
	}
}

// HTML creates an HTML response. Use it with the output of the host's
// render(template, data) collaborator.
func HTML(code int, body string) *Response {
	return &Response{
		StatusCode:  code,
		Body:        body,
		ContentType: "text/html; charset=utf-8",
		Headers:     http.Header{},
	}
}

// JSON creates a response carrying a structured value.
func JSON(code int, v any) *Response {
	return &Response{
		StatusCode: code,
		Body:       v,
		Headers:    http.Header{},
	}
}

// Hijacked creates a response marker for handlers that already wrote to the
// connection themselves.
func Hijacked() *Response {
	return &Response{
		StatusCode: http.StatusOK,
		Headers:    http.Header{},
		Hijack:     true,
	}
}

// Sent reports whether the response has been sent.
func (r *Response) Sent() bool {
	return r.sent
}

// send writes the response to w exactly once.
// Returns ErrAlreadySent on a second call.
func (r *Response) send(w http.ResponseWriter) error {
	if r.sent {
		return ErrAlreadySent
	}
	r.sent = true

	if r.Hijack {
		return nil
	}

	body, contentType, err := r.renderBody()
	if err != nil {
		return err
	}

	for name, values := range r.Headers {
		for _, v := range values {
			w.Header().Add(name, v)
		}
	}
	if contentType != "" {
		w.Header().Set("Content-Type", contentType)
	}

	code := r.StatusCode
	if code == 0 {
		code = http.StatusOK
	}
	w.WriteHeader(code)

	_, err = w.Write(body)
	return err
}

// renderBody serializes Body to bytes and resolves the effective content type.
func (r *Response) renderBody() ([]byte, string, error) {
	contentType := r.ContentType

	switch b := r.Body.(type) {
	case nil:
		return nil, contentType, nil
	case string:
		return []byte(b), contentType, nil
	case []byte:
		return b, contentType, nil
	default:
		data, err := json.Marshal(b)
		if err != nil {
			return nil, "", fmt.Errorf("frontman: encode response body: %w", err)
		}
		if contentType == "" {
			contentType = "application/json; charset=utf-8"
		}
		return data, contentType, nil
	}
}

// cachedResponse is the wire form a Response takes in the reply cache.
// The body is serialized to bytes before caching so a cache hit replays the
// exact payload the first dispatch produced.
type cachedResponse struct {
	Headers     http.Header `json:"headers,omitempty"`
	ContentType string      `json:"content_type,omitempty"`
	Body        []byte      `json:"body,omitempty"`
	StatusCode  int         `json:"status_code"`
}

var errNotCacheable = errors.New("frontman: hijacked response is not cacheable")

// marshalResponse serializes a response for the reply cache.
func marshalResponse(r *Response) ([]byte, error) {
	if r.Hijack {
		return nil, errNotCacheable
	}

	body, contentType, err := r.renderBody()
	if err != nil {
		return nil, err
	}

	// An unset status is sent as 200, so it must be cached as 200 too;
	// a zero status in the cache would be rejected as corrupt on replay.
	code := r.StatusCode
	if code == 0 {
		code = http.StatusOK
	}

	return json.Marshal(cachedResponse{
		StatusCode:  code,
		Body:        body,
		ContentType: contentType,
		Headers:     r.Headers,
	})
}

// unmarshalResponse deserializes a cached response.
// A corrupt entry yields an error; callers treat that as a cache miss.
func unmarshalResponse(data []byte) (*Response, error) {
	var c cachedResponse
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, err
	}
	if c.StatusCode == 0 {
		return nil, errors.New("frontman: cached response has no status")
	}

	headers := c.Headers
	if headers == nil {
		headers = http.Header{}
	}

	return &Response{
		StatusCode:  c.StatusCode,
		Body:        c.Body,
		ContentType: c.ContentType,
		Headers:     headers,
	}, nil
}
