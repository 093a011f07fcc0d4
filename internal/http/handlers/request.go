package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
)

var errNoPayload = BadRequest("No request payload found")

// decodePayload reads a JSON object into dst. An empty body, null, or {} all
// count as no payload.
func decodePayload(r *http.Request, dst any) error {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return &APIError{Status: http.StatusRequestEntityTooLarge, Message: "Request payload too large"}
		}
		return BadRequest("Could not read request payload")
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return errNoPayload
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return BadRequest("Invalid JSON payload")
	}
	if len(fields) == 0 {
		return errNoPayload
	}

	if err := json.Unmarshal(body, dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return BadRequest("Bad request, %s must be a %s.", typeErr.Field, typeErr.Type.String())
		}
		return BadRequest("Invalid JSON payload")
	}
	return nil
}

type field struct {
	name    string
	present bool
}

// requireFields returns a 400 naming the first field that is not present.
func requireFields(fields ...field) error {
	for _, f := range fields {
		if !f.present {
			return BadRequest("Bad request, missing %s.", f.name)
		}
	}
	return nil
}

// pathID parses the positive integer path variable name.
func pathID(r *http.Request, name string) (int, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, BadRequest("Invalid %s %q.", name, raw)
	}
	return id, nil
}
