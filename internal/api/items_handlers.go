package api

import (
	"net/http"
	"strings"

	"shareit/internal/models"
)

type itemInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Available   *bool   `json:"available"`
	RequestID   *int64  `json:"requestId"`
	OwnerID     *int64  `json:"ownerId"`
}

func blank(s *string) bool {
	return s == nil || strings.TrimSpace(*s) == ""
}

func (in itemInput) toItem() (*models.Item, error) {
	if blank(in.Name) {
		return nil, badRequest("name must not be blank")
	}
	if blank(in.Description) {
		return nil, badRequest("description must not be blank")
	}
	if in.Available == nil {
		return nil, badRequest("available must be set")
	}
	return &models.Item{
		Name:        *in.Name,
		Description: *in.Description,
		Available:   *in.Available,
		RequestID:   in.RequestID,
	}, nil
}

func (in itemInput) toPatch() (models.ItemPatch, error) {
	if in.Name != nil && blank(in.Name) {
		return models.ItemPatch{}, badRequest("name must not be blank")
	}
	if in.Description != nil && blank(in.Description) {
		return models.ItemPatch{}, badRequest("description must not be blank")
	}
	return models.ItemPatch{
		Name:        in.Name,
		Description: in.Description,
		Available:   in.Available,
		OwnerID:     in.OwnerID,
	}, nil
}

type commentInput struct {
	Text string `json:"text"`
}

func (s *HTTPServer) handleCreateItem(w http.ResponseWriter, r *http.Request) {
	actorID, err := sharerID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	var in itemInput
	if err := decodeJSON(r, &in); err != nil {
		s.fail(w, r, err)
		return
	}
	item, err := in.toItem()
	if err != nil {
		s.fail(w, r, err)
		return
	}

	created, err := s.svc.Items.Create(r.Context(), actorID, item)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, created)
}

func (s *HTTPServer) handleUpdateItem(w http.ResponseWriter, r *http.Request) {
	actorID, err := sharerID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	itemID, err := pathID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	var in itemInput
	if err := decodeJSON(r, &in); err != nil {
		s.fail(w, r, err)
		return
	}
	patch, err := in.toPatch()
	if err != nil {
		s.fail(w, r, err)
		return
	}

	item, err := s.svc.Items.Update(r.Context(), actorID, itemID, patch)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (s *HTTPServer) handleGetItem(w http.ResponseWriter, r *http.Request) {
	actorID, err := sharerID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	itemID, err := pathID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	info, err := s.svc.Items.GetByID(r.Context(), actorID, itemID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, info)
}

func (s *HTTPServer) handleListItems(w http.ResponseWriter, r *http.Request) {
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

	infos, err := s.svc.Items.ListForOwner(r.Context(), actorID, page)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, infos)
}

func (s *HTTPServer) handleSearchItems(w http.ResponseWriter, r *http.Request) {
	actorID, err := sharerID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	items, err := s.svc.Items.Search(r.Context(), actorID, r.URL.Query().Get("text"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *HTTPServer) handleAddComment(w http.ResponseWriter, r *http.Request) {
	actorID, err := sharerID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	itemID, err := pathID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	var in commentInput
	if err := decodeJSON(r, &in); err != nil {
		s.fail(w, r, err)
		return
	}
	if strings.TrimSpace(in.Text) == "" {
		s.fail(w, r, badRequest("text must not be blank"))
		return
	}

	comment, err := s.svc.Comments.AddComment(r.Context(), actorID, itemID, in.Text)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, comment)
}
