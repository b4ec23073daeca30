package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/passagelab/studio/internal/passage"
	"github.com/passagelab/studio/internal/quiz"
)

func CreateQuizHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var q quiz.Quiz
		if err := json.NewDecoder(r.Body).Decode(&q); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		if q.ID == "" {
			q.ID = uuid.NewString()
		}
		if q.CreatedAt == 0 {
			q.CreatedAt = time.Now().Unix()
		}
		if err := q.Validate(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if err := store.PutQuiz(q); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusCreated, q)
	}
}

// GetQuizHandler serves a stored quiz plus its read-only render, so the
// frontend can show saved items without re-running any selection logic.
func GetQuizHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q, err := store.GetQuiz(chi.URLParam(r, "id"))
		if err != nil {
			if errors.Is(err, quiz.ErrNotFound) {
				http.Error(w, "quiz not found", http.StatusNotFound)
				return
			}
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		tokens := passage.Tokenize(q.Passage)
		render := passage.Render(tokens, q.SelectionPositions, passage.StatusReadOnly, styleForCategory(q.Category), -1)
		writeJSON(w, http.StatusOK, struct {
			quiz.Quiz
			Render []passage.Node `json:"render"`
		}{q, render})
	}
}

func ListQuizzesHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := store.ListQuizzes()
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if list == nil {
			list = []quiz.Quiz{}
		}
		writeJSON(w, http.StatusOK, list)
	}
}

func DeleteQuizHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := store.DeleteQuiz(chi.URLParam(r, "id")); err != nil {
			if errors.Is(err, quiz.ErrNotFound) {
				http.Error(w, "quiz not found", http.StatusNotFound)
				return
			}
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// styleForCategory recovers the render style from a quiz category such as
// "vocabulary-underline" or "grammar-square".
func styleForCategory(category string) passage.Style {
	if strings.Contains(category, "square") {
		return passage.StyleSquare
	}
	return passage.StyleUnderline
}

func MountQuizzes(r chi.Router, store quiz.Store) {
	r.Post("/", CreateQuizHandler(store))
	r.Get("/", ListQuizzesHandler(store))
	r.Get("/{id}", GetQuizHandler(store))
	r.Delete("/{id}", DeleteQuizHandler(store))
}
