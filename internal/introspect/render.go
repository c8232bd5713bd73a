package introspect

import (
	"fmt"
)

const responseTemplate = `Welcome to our demo API, here are the details of your request:

***Headers***:
%s

***Method***:
%s

***Body***:
%s
`

// RenderEcho renders the view with the body as opaque text.
func RenderEcho(v *RequestView) string {
	return fmt.Sprintf(responseTemplate, v.HeaderText(), v.Method, string(v.Body))
}

// RenderCredentials renders the view with the body replaced by the extracted credentials.
func RenderCredentials(v *RequestView, creds Credentials) string {
	body := fmt.Sprintf(`{"username": %q, "password": %q}`, creds.Username, creds.Password)
	return fmt.Sprintf(responseTemplate, v.HeaderText(), v.Method, body)
}

// RenderPayloadError renders the response body for a body that failed to parse.
func RenderPayloadError(err error) string {
	return fmt.Sprintf("Error processing request: %s\n", err.Error())
}
