package dispatch

import (
	"bytes"
	"net/http"
)

// Response is the mutable response value threaded through dispatch.
// Middleware read and write it in place; writing the final bytes to a
// transport belongs to the caller (see WriteTo).
type Response struct {
	status int
	header http.Header
	body   bytes.Buffer
}

// NewResponse creates a Response with status 200 OK, empty headers, and
// an empty body.
func NewResponse() *Response {
	return &Response{
		status: http.StatusOK,
		header: make(http.Header),
	}
}

// Status returns the response status code.
func (r *Response) Status() int {
	return r.status
}

// SetStatus sets the response status code.
func (r *Response) SetStatus(code int) {
	r.status = code
}

// Header returns the response headers for reading and mutation.
func (r *Response) Header() http.Header {
	return r.header
}

// Body returns the current body bytes.
func (r *Response) Body() []byte {
	return r.body.Bytes()
}

// BodyLen returns the current body size in bytes.
func (r *Response) BodyLen() int {
	return r.body.Len()
}

// SetBody replaces the body with b. A nil b empties the body.
func (r *Response) SetBody(b []byte) {
	r.body.Reset()
	if len(b) > 0 {
		r.body.Write(b)
	}
}

// Write appends p to the body. It implements io.Writer and never
// returns an error.
func (r *Response) Write(p []byte) (int, error) {
	return r.body.Write(p)
}

// WriteString appends s to the body.
func (r *Response) WriteString(s string) {
	r.body.WriteString(s)
}

// WriteTo writes the headers, status, and body to w. It is the bridge
// to net/http transports; the dispatch pipeline itself performs no I/O.
func (r *Response) WriteTo(w http.ResponseWriter) error {
	dst := w.Header()
	for name, values := range r.header {
		dst[name] = values
	}
	w.WriteHeader(r.status)
	_, err := w.Write(r.body.Bytes())
	return err
}
