package handlers

import (
	"encoding/json"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// readValue reads one field from a JSON object body or from form values.
func readValue(r *http.Request, field string) (string, error) {
	ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if ct != "application/json" {
		if err := r.ParseForm(); err != nil {
			return "", errors.Wrap(errBadInput, err.Error())
		}
		return strings.TrimSpace(r.FormValue(field)), nil
	}
	var body map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		if errors.Is(err, io.EOF) {
			return "", nil
		}
		return "", errors.Wrap(errBadInput, "invalid JSON body")
	}
	raw, ok := body[field]
	if !ok {
		return "", nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s), nil
	}
	return strings.TrimSpace(string(raw)), nil
}

func readInt(r *http.Request, field string) (int, error) {
	v, err := readValue(r, field)
	if err != nil {
		return 0, err
	}
	if v == "" {
		return 0, errors.Wrapf(errBadInput, "%s is required", field)
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, errors.Wrapf(errBadInput, "%s must be an integer", field)
	}
	return n, nil
}
