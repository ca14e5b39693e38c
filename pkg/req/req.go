package req

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidBody wraps every decoding and validation failure.
var ErrInvalidBody = errors.New("invalid request body")

var validate = validator.New(validator.WithRequiredStructEnabled())

// Decode decodes JSON from body into a T. Trailing data is an error.
func Decode[T any](body io.Reader) (T, error) {
	var payload T
	dec := json.NewDecoder(body)
	if err := dec.Decode(&payload); err != nil {
		return payload, err
	}
	if dec.More() {
		return payload, errors.New("unexpected data after JSON body")
	}
	return payload, nil
}

// IsValid validates T against its `validate` struct tags.
func IsValid[T any](payload T) error {
	return validate.Struct(payload)
}

// HandleBody decodes and validates the request body.
func HandleBody[T any](r *http.Request) (*T, error) {
	if r.Body == nil {
		return nil, fmt.Errorf("%w: empty body", ErrInvalidBody)
	}

	body, err := Decode[T](r.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidBody, err)
	}

	if err := IsValid(body); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidBody, err)
	}
	return &body, nil
}
