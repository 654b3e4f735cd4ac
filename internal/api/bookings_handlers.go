package api

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"shareit/internal/export"
	"shareit/internal/models"
)

// localLayout is a zone-less timestamp, read as UTC.
const localLayout = "2006-01-02T15:04:05"

type bookingInput struct {
	ItemID *int64  `json:"itemId"`
	Start  *string `json:"start"`
	End    *string `json:"end"`
}

func parseTimestamp(field string, raw *string) (time.Time, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return time.Time{}, badRequest("%s must be set", field)
	}
	if t, err := time.Parse(time.RFC3339, *raw); err == nil {
		return t.UTC(), nil
	}
	t, err := time.ParseInLocation(localLayout, *raw, time.UTC)
	if err != nil {
		return time.Time{}, badRequest("%s has invalid format", field)
	}
	return t, nil
}

func (in bookingInput) toRequest(now time.Time) (models.BookingRequest, error) {
	if in.ItemID == nil {
		return models.BookingRequest{}, badRequest("itemId must be set")
	}
	start, err := parseTimestamp("start", in.Start)
	if err != nil {
		return models.BookingRequest{}, err
	}
	end, err := parseTimestamp("end", in.End)
	if err != nil {
		return models.BookingRequest{}, err
	}
	if start.Before(now) {
		return models.BookingRequest{}, badRequest("start must not be in the past")
	}
	if end.Before(now) {
		return models.BookingRequest{}, badRequest("end must not be in the past")
	}
	return models.BookingRequest{ItemID: *in.ItemID, Start: start, End: end}, nil
}

func (s *HTTPServer) handleCreateBooking(w http.ResponseWriter, r *http.Request) {
	actorID, err := sharerID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	var in bookingInput
	if err := decodeJSON(r, &in); err != nil {
		s.fail(w, r, err)
		return
	}
	req, err := in.toRequest(s.now())
	if err != nil {
		s.fail(w, r, err)
		return
	}

	booking, err := s.svc.Bookings.Create(r.Context(), actorID, req)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

func (s *HTTPServer) handleSetApproval(w http.ResponseWriter, r *http.Request) {
	actorID, err := sharerID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	bookingID, err := pathID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	approved, err := strconv.ParseBool(r.URL.Query().Get("approved"))
	if err != nil {
		s.fail(w, r, badRequest("approved must be true or false"))
		return
	}

	booking, err := s.svc.Bookings.SetApproval(r.Context(), actorID, bookingID, approved)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

func (s *HTTPServer) handleGetBooking(w http.ResponseWriter, r *http.Request) {
	actorID, err := sharerID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	bookingID, err := pathID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	booking, err := s.svc.Bookings.GetByID(r.Context(), actorID, bookingID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

func (s *HTTPServer) handleListBookerBookings(w http.ResponseWriter, r *http.Request) {
	s.listBookings(w, r, models.PartyBooker)
}

func (s *HTTPServer) handleListOwnerBookings(w http.ResponseWriter, r *http.Request) {
	s.listBookings(w, r, models.PartyOwner)
}

func (s *HTTPServer) listBookings(w http.ResponseWriter, r *http.Request, party models.BookingParty) {
	bookings, err := s.loadBookings(r, party)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, bookings)
}

func (s *HTTPServer) loadBookings(r *http.Request, party models.BookingParty) ([]*models.Booking, error) {
	actorID, err := sharerID(r)
	if err != nil {
		return nil, err
	}
	page, err := pageParams(r)
	if err != nil {
		return nil, err
	}

	if party == models.PartyOwner {
		return s.svc.Bookings.ListForOwner(r.Context(), actorID, stateParam(r), page)
	}
	return s.svc.Bookings.ListForBooker(r.Context(), actorID, stateParam(r), page)
}

func (s *HTTPServer) handleExportOwnerBookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := s.loadBookings(r, models.PartyOwner)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := export.WriteBookings(&buf, s.sheet, bookings); err != nil {
		s.fail(w, r, err)
		return
	}

	fileName := fmt.Sprintf("bookings_%s.xlsx", s.now().UTC().Format("2006-01-02_15-04-05"))
	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
