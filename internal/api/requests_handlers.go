package api

import (
	"net/http"
	"strings"
)

type requestInput struct {
	Description string `json:"description"`
}

func (s *HTTPServer) handleCreateRequest(w http.ResponseWriter, r *http.Request) {
	actorID, err := sharerID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	var in requestInput
	if err := decodeJSON(r, &in); err != nil {
		s.fail(w, r, err)
		return
	}
	if strings.TrimSpace(in.Description) == "" {
		s.fail(w, r, badRequest("description must not be blank"))
		return
	}

	request, err := s.svc.Requests.Create(r.Context(), actorID, in.Description)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, request)
}

func (s *HTTPServer) handleListOwnRequests(w http.ResponseWriter, r *http.Request) {
	actorID, err := sharerID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	requests, err := s.svc.Requests.ListForOwner(r.Context(), actorID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, requests)
}

func (s *HTTPServer) handleListOtherRequests(w http.ResponseWriter, r *http.Request) {
	actorID, err := sharerID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	page, err := pageParams(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	requests, err := s.svc.Requests.ListExcludingOwner(r.Context(), actorID, page)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, requests)
}

func (s *HTTPServer) handleGetRequest(w http.ResponseWriter, r *http.Request) {
	actorID, err := sharerID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	requestID, err := pathID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	request, err := s.svc.Requests.GetByID(r.Context(), actorID, requestID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, request)
}
