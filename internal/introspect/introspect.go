// Package introspect turns an inbound HTTP request into a RequestView and renders
// the textual description returned by the /api endpoint.
//
// Two body modes exist. Raw mode treats the body as opaque text and cannot fail.
// Structured mode requires a JSON object and extracts the username and password
// fields, defaulting each to "N/A" when absent.
package introspect

import (
	"net/http"
	"sort"
	"strings"
)

// Header is a single header line. Multi-valued headers produce one Header per value.
type Header struct {
	Name  string
	Value string
}

// RequestView is the per-request snapshot the API handler works on.
type RequestView struct {
	Method  string
	Headers []Header
	Body    []byte
}

// FromRequest builds a view of r with an already consumed body.
//
// net/http stores headers in a map, so the order received on the wire is not
// available. Host comes first, as it does on the wire, and the remaining names
// follow in sorted order so the rendering is stable. Values of a repeated
// header keep their received order.
func FromRequest(r *http.Request, body []byte) *RequestView {
	headers := make([]Header, 0, len(r.Header)+1)
	if r.Host != "" {
		headers = append(headers, Header{Name: "Host", Value: r.Host})
	}

	names := make([]string, 0, len(r.Header))
	for name := range r.Header {
		if name == "Host" {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		for _, value := range r.Header[name] {
			headers = append(headers, Header{Name: name, Value: value})
		}
	}

	return &RequestView{
		Method:  r.Method,
		Headers: headers,
		Body:    body,
	}
}

// HeaderText renders the headers as "Name: Value" lines.
func (v *RequestView) HeaderText() string {
	lines := make([]string, len(v.Headers))
	for i, h := range v.Headers {
		lines[i] = h.Name + ": " + h.Value
	}
	return strings.Join(lines, "\n")
}

// Size is the body length in bytes.
func (v *RequestView) Size() int {
	return len(v.Body)
}
