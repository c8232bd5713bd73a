package introspect

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/turtacn/apiecho/pkg/constants"
	"github.com/turtacn/apiecho/pkg/errors"
)

// Credentials are the fields extracted from a structured payload.
type Credentials struct {
	Username string
	Password string
}

// ParseCredentials decodes body as a JSON object and extracts the username and
// password fields. A missing or null field becomes "N/A"; a non-string value is
// kept as its JSON text. Any body that is not exactly one JSON object yields an
// invalid_payload AppError.
func ParseCredentials(body []byte) (Credentials, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return Credentials{}, errors.ErrInvalidPayload("Invalid JSON payload").
			WithCause(fmt.Errorf("request body is empty"))
	}

	var fields map[string]json.RawMessage
	dec := json.NewDecoder(bytes.NewReader(body))
	if err := dec.Decode(&fields); err != nil {
		return Credentials{}, errors.ErrInvalidPayload("Invalid JSON payload").WithCause(err)
	}
	if fields == nil {
		return Credentials{}, errors.ErrInvalidPayload("Invalid JSON payload").
			WithCause(fmt.Errorf("expected a JSON object, got null"))
	}
	if dec.More() {
		return Credentials{}, errors.ErrInvalidPayload("Invalid JSON payload").
			WithCause(fmt.Errorf("unexpected data after JSON object"))
	}

	return Credentials{
		Username: field(fields, constants.FieldUsername),
		Password: field(fields, constants.FieldPassword),
	}, nil
}

func field(fields map[string]json.RawMessage, key string) string {
	raw, ok := fields[key]
	if !ok || string(raw) == "null" {
		return constants.NotAvailable
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}
