package studio

import (
	"errors"
	"testing"

	"github.com/passagelab/studio/internal/passage"
)

func TestRegistryLifecycle(t *testing.T) {
	r := NewRegistry()
	id := r.Create("The quick fox.", passage.StyleSquare, 3, "enter text")

	notes, err := r.With(id, func(s *passage.Session) error {
		return s.ClickToken(0)
	})
	if err != nil {
		t.Fatalf("click: %v", err)
	}
	if len(notes) != 0 {
		t.Errorf("unexpected notifications: %v", notes)
	}

	r.Delete(id)
	if _, err := r.With(id, func(*passage.Session) error { return nil }); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("got %v after delete", err)
	}
}

func TestRegistryDrainsNotifications(t *testing.T) {
	r := NewRegistry()
	id := r.Create("The quick fox.", passage.StyleSquare, 0, "enter text")

	notes, err := r.With(id, func(s *passage.Session) error {
		return s.ClickToken(0)
	})
	if !errors.Is(err, passage.ErrNoLimit) {
		t.Fatalf("got %v, want ErrNoLimit", err)
	}
	if len(notes) != 1 || notes[0].Status != "error" {
		t.Fatalf("notifications = %v", notes)
	}

	// Drained: a following gesture starts clean.
	notes, err = r.With(id, func(*passage.Session) error { return nil })
	if err != nil || len(notes) != 0 {
		t.Errorf("stale notifications: %v (err %v)", notes, err)
	}
}

func TestRegistryUnknownID(t *testing.T) {
	r := NewRegistry()
	if _, err := r.With("nope", func(*passage.Session) error { return nil }); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("got %v", err)
	}
}
