package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"shareit/internal/models"
)

var errBadRequest = errors.New("bad request")

// badRequest is an adapter-level validation failure, reported as 400.
func badRequest(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{errBadRequest}, args...)...)
}

func sharerID(r *http.Request) (int64, error) {
	raw := strings.TrimSpace(r.Header.Get(models.SharerHeader))
	if raw == "" {
		return 0, badRequest("missing %s header", models.SharerHeader)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, badRequest("invalid %s header", models.SharerHeader)
	}
	return id, nil
}

func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		return 0, badRequest("invalid id %q", r.PathValue("id"))
	}
	return id, nil
}

// pageParams reads from/size with their defaults and rejects negative offsets
// and non-positive sizes.
func pageParams(r *http.Request) (models.Page, error) {
	page := models.Page{Offset: models.DefaultPageFrom, Limit: models.DefaultPageSize}
	q := r.URL.Query()

	if raw := q.Get("from"); raw != "" {
		from, err := strconv.Atoi(raw)
		if err != nil || from < 0 {
			return page, badRequest("from must be a non-negative integer")
		}
		page.Offset = from
	}
	if raw := q.Get("size"); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil || size <= 0 {
			return page, badRequest("size must be a positive integer")
		}
		page.Limit = size
	}
	return page, nil
}

func stateParam(r *http.Request) string {
	if state := r.URL.Query().Get("state"); state != "" {
		return state
	}
	return "ALL"
}

func decodeJSON(r *http.Request, v any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(v); err != nil {
		return badRequest("invalid JSON body")
	}
	return nil
}

// fail writes err as a 400 when it is an adapter validation failure and defers to
// the domain mapping otherwise.
func (s *HTTPServer) fail(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, errBadRequest) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.writeDomainError(w, r, err)
}
