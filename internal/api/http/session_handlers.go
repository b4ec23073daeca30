package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/passagelab/studio/internal/passage"
	"github.com/passagelab/studio/internal/studio"
)

type sessionState struct {
	ID                 string                      `json:"id"`
	Status             passage.Status              `json:"status"`
	Style              passage.Style               `json:"style"`
	MaxSelections      int                         `json:"maxSelections"`
	PendingStart       int                         `json:"pendingStart"`
	Passage            string                      `json:"passage"`
	SelectionPositions []passage.SelectionPosition `json:"selectionPositions"`
	Choices            []passage.Choice            `json:"choices,omitempty"`
	Render             []passage.Node              `json:"render"`
	Notifications      []studio.Notification       `json:"notifications,omitempty"`
}

func snapshot(id string, s *passage.Session) sessionState {
	positions := make([]passage.SelectionPosition, len(s.Positions))
	copy(positions, s.Positions)
	return sessionState{
		ID:                 id,
		Status:             s.Status,
		Style:              s.Style,
		MaxSelections:      s.MaxSelections,
		PendingStart:       s.PendingStart(),
		Passage:            s.Passage,
		SelectionPositions: positions,
		Choices:            append([]passage.Choice(nil), s.Choices...),
		Render:             s.Render(),
	}
}

// selectorStatus maps selector errors onto HTTP statuses. Everything is a
// synchronous, recoverable rejection; the frontend shows the notification
// and keeps going.
func selectorStatus(err error) int {
	var lim *passage.LimitReachedError
	switch {
	case errors.Is(err, studio.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.As(err, &lim), errors.Is(err, passage.ErrOverlap):
		return http.StatusConflict
	case errors.Is(err, passage.ErrEmptySubstitute):
		return http.StatusUnprocessableEntity
	case errors.Is(err, passage.ErrNoLimit):
		// A wiring bug in the caller, not user error.
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeSelectorError(w http.ResponseWriter, err error, notes []studio.Notification) {
	writeJSON(w, selectorStatus(err), map[string]any{
		"error":         err.Error(),
		"notifications": notes,
	})
}

// gesture runs one session mutation and replies with the refreshed state (or
// the mapped error plus any notifications the gesture raised).
func gesture(reg *studio.Registry, w http.ResponseWriter, id string, fn func(s *passage.Session) error) {
	var state sessionState
	notes, err := reg.With(id, func(s *passage.Session) error {
		if err := fn(s); err != nil {
			return err
		}
		state = snapshot(id, s)
		return nil
	})
	if err != nil {
		writeSelectorError(w, err, notes)
		return
	}
	state.Notifications = notes
	writeJSON(w, http.StatusOK, state)
}

func CreateSessionHandler(reg *studio.Registry, defaultPlaceholder string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Passage       string        `json:"passage"`
			Style         passage.Style `json:"style"`
			MaxSelections int           `json:"maxSelections"`
			Placeholder   string        `json:"placeholder"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		if req.MaxSelections < 1 || req.MaxSelections > passage.MaxSelectionLimit {
			http.Error(w, fmt.Sprintf("maxSelections must be between 1 and %d", passage.MaxSelectionLimit), http.StatusBadRequest)
			return
		}
		if req.Placeholder == "" {
			req.Placeholder = defaultPlaceholder
		}
		id := reg.Create(req.Passage, req.Style, req.MaxSelections, req.Placeholder)

		var state sessionState
		notes, err := reg.With(id, func(s *passage.Session) error {
			state = snapshot(id, s)
			return nil
		})
		if err != nil {
			writeSelectorError(w, err, notes)
			return
		}
		state.Notifications = notes
		writeJSON(w, http.StatusCreated, state)
	}
}

func GetSessionHandler(reg *studio.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		gesture(reg, w, chi.URLParam(r, "id"), func(*passage.Session) error { return nil })
	}
}

func ClickTokenHandler(reg *studio.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Index int `json:"index"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		gesture(reg, w, chi.URLParam(r, "id"), func(s *passage.Session) error {
			return s.ClickToken(req.Index)
		})
	}
}

func ChangeTextHandler(reg *studio.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		idx, err := strconv.Atoi(chi.URLParam(r, "index"))
		if err != nil {
			http.Error(w, "bad selection index", http.StatusBadRequest)
			return
		}
		var req struct {
			Text string `json:"text"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		gesture(reg, w, chi.URLParam(r, "id"), func(s *passage.Session) error {
			return s.SetChangeText(idx, req.Text)
		})
	}
}

func RemoveSelectionHandler(reg *studio.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		idx, err := strconv.Atoi(chi.URLParam(r, "index"))
		if err != nil {
			http.Error(w, "bad selection index", http.StatusBadRequest)
			return
		}
		gesture(reg, w, chi.URLParam(r, "id"), func(s *passage.Session) error {
			return s.RemoveSelection(idx)
		})
	}
}

func ClearChangeTextHandler(reg *studio.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		gesture(reg, w, chi.URLParam(r, "id"), func(s *passage.Session) error {
			s.ClearChangeText()
			return nil
		})
	}
}

func ShuffleChoicesHandler(reg *studio.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		gesture(reg, w, chi.URLParam(r, "id"), func(s *passage.Session) error {
			return s.Shuffle()
		})
	}
}

func SetPassageHandler(reg *studio.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Passage string `json:"passage"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		gesture(reg, w, chi.URLParam(r, "id"), func(s *passage.Session) error {
			s.SetPassage(req.Passage)
			return nil
		})
	}
}

func DeleteSessionHandler(reg *studio.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reg.Delete(chi.URLParam(r, "id"))
		w.WriteHeader(http.StatusNoContent)
	}
}

// MountSessions wires the authoring-session routes.
func MountSessions(r chi.Router, reg *studio.Registry, defaultPlaceholder string) {
	r.Post("/", CreateSessionHandler(reg, defaultPlaceholder))
	r.Route("/{id}", func(sr chi.Router) {
		sr.Get("/", GetSessionHandler(reg))
		sr.Delete("/", DeleteSessionHandler(reg))
		sr.Post("/clicks", ClickTokenHandler(reg))
		sr.Put("/passage", SetPassageHandler(reg))
		sr.Put("/selections/{index}/text", ChangeTextHandler(reg))
		sr.Delete("/selections/{index}", RemoveSelectionHandler(reg))
		sr.Delete("/substitutes", ClearChangeTextHandler(reg))
		sr.Post("/choices/shuffle", ShuffleChoicesHandler(reg))
	})
}
