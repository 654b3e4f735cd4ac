package api

import (
	"net/http"
	"strings"

	"shareit/internal/models"
)

type userInput struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

func validateEmail(email string) error {
	if strings.TrimSpace(email) == "" {
		return badRequest("email must not be blank")
	}
	if !strings.Contains(email, "@") {
		return badRequest("email is invalid")
	}
	return nil
}

func (in userInput) toUser() (*models.User, error) {
	if in.Name == nil || strings.TrimSpace(*in.Name) == "" {
		return nil, badRequest("name must not be blank")
	}
	if in.Email == nil {
		return nil, badRequest("email must not be blank")
	}
	if err := validateEmail(*in.Email); err != nil {
		return nil, err
	}
	return &models.User{Name: *in.Name, Email: *in.Email}, nil
}

func (in userInput) toPatch() (models.UserPatch, error) {
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		return models.UserPatch{}, badRequest("name must not be blank")
	}
	if in.Email != nil {
		if err := validateEmail(*in.Email); err != nil {
			return models.UserPatch{}, err
		}
	}
	return models.UserPatch{Name: in.Name, Email: in.Email}, nil
}

func (s *HTTPServer) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var in userInput
	if err := decodeJSON(r, &in); err != nil {
		s.fail(w, r, err)
		return
	}
	user, err := in.toUser()
	if err != nil {
		s.fail(w, r, err)
		return
	}

	created, err := s.svc.Users.Create(r.Context(), user)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, created)
}

func (s *HTTPServer) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.svc.Users.List(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (s *HTTPServer) handleGetUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	user, err := s.svc.Users.Get(r.Context(), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (s *HTTPServer) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	var in userInput
	if err := decodeJSON(r, &in); err != nil {
		s.fail(w, r, err)
		return
	}
	patch, err := in.toPatch()
	if err != nil {
		s.fail(w, r, err)
		return
	}

	user, err := s.svc.Users.Update(r.Context(), id, patch)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (s *HTTPServer) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if err := s.svc.Users.Delete(r.Context(), id); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}
