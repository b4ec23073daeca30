package passage

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"time"
)

// Notifier receives the transient user-facing messages the studio frontend
// shows in its action bar. success=false marks the message as an error.
type Notifier func(title string, success bool)

// Session owns the span model for one quiz item being authored. It is
// discarded or reset whenever the passage text changes or the editor closes.
// All operations run to completion within one user gesture; the session is
// not safe for concurrent use.
type Session struct {
	Passage       string
	Style         Style
	MaxSelections int
	Placeholder   string

	Status    Status
	Positions []SelectionPosition
	Choices   []Choice

	tokens       []Token
	pendingStart int // first click of a two-click span; -1 when unset
	notify       Notifier
	rng          *rand.Rand
}

type Option func(*Session)

// WithNotifier installs the action-bar callback.
func WithNotifier(n Notifier) Option {
	return func(s *Session) {
		if n != nil {
			s.notify = n
		}
	}
}

// WithRand injects the random source used by the square answer generator,
// for reproducible tests.
func WithRand(r *rand.Rand) Option {
	return func(s *Session) {
		if r != nil {
			s.rng = r
		}
	}
}

func NewSession(passageText string, style Style, maxSelections int, placeholder string, opts ...Option) *Session {
	s := &Session{
		Passage:       passageText,
		Style:         style,
		MaxSelections: maxSelections,
		Placeholder:   placeholder,
		Status:        StatusMakeSelection,
		tokens:        Tokenize(passageText),
		pendingStart:  -1,
		notify:        func(string, bool) {},
		rng:           rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Tokens exposes the derived token sequence. Callers must not mutate it.
func (s *Session) Tokens() []Token { return s.tokens }

// PendingStart returns the recorded first click, or -1.
func (s *Session) PendingStart() int { return s.pendingStart }

// ClickToken records one click of the two-click span selection. The first
// click marks a pending start; the second closes the range (in either click
// order), validates it, and appends a new selection. Clicks are no-ops once
// the workflow is complete or read-only; the renderer stops wiring click
// handlers to tokens already inside a span.
func (s *Session) ClickToken(index int) error {
	if s.Status == StatusComplete || s.Status == StatusReadOnly {
		return nil
	}
	if index < 0 || index >= len(s.tokens) {
		return fmt.Errorf("token index %d out of range", index)
	}
	if s.MaxSelections <= 0 {
		s.notify("maximum selection count is not configured", false)
		return ErrNoLimit
	}
	if len(s.Positions) >= s.MaxSelections {
		s.notify(fmt.Sprintf("you can select up to %d ranges", s.MaxSelections), false)
		return &LimitReachedError{Max: s.MaxSelections}
	}
	if s.pendingStart < 0 {
		s.pendingStart = index
		return nil
	}

	start, end := s.pendingStart, index
	if start > end {
		start, end = end, start
	}
	// Reject only when the new range strictly contains an existing span.
	// Partial/boundary overlaps pass, matching the behavior existing quiz
	// content was authored under.
	for _, p := range s.Positions {
		if start < p.Start && end > p.End {
			s.notify("the selection contains an already selected range", false)
			return ErrOverlap
		}
	}

	s.Positions = append(s.Positions, SelectionPosition{
		Start:      start,
		End:        end,
		OriginText: TextRange(s.tokens, start, end),
	})
	// Stable so spans sharing a start token keep their creation order.
	sort.SliceStable(s.Positions, func(i, j int) bool { return s.Positions[i].Start < s.Positions[j].Start })
	s.pendingStart = -1
	if len(s.Positions) == s.MaxSelections {
		s.Status = StatusMakeAnswer
	}
	return nil
}

// RemoveSelection deletes the span at i. Substitute text on the remaining
// spans is invalidated (their positional labels shift), choices are dropped,
// and the workflow returns to selection.
func (s *Session) RemoveSelection(i int) error {
	if i < 0 || i >= len(s.Positions) {
		return fmt.Errorf("selection index %d out of range", i)
	}
	s.Positions = append(s.Positions[:i], s.Positions[i+1:]...)
	for j := range s.Positions {
		s.Positions[j].ChangeText = ""
		s.Positions[j].IsSwitched = false
	}
	s.Choices = nil
	s.Status = StatusMakeSelection
	s.pendingStart = -1
	return nil
}

// SetChangeText commits substitute text for the span at i. Underline style
// completes immediately with the committed span as the answer; square style
// completes once all three spans carry substitutes.
func (s *Session) SetChangeText(i int, text string) error {
	if i < 0 || i >= len(s.Positions) {
		return fmt.Errorf("selection index %d out of range", i)
	}
	if strings.TrimSpace(text) == "" {
		s.notify(s.Placeholder, false)
		return ErrEmptySubstitute
	}
	s.Positions[i].ChangeText = text

	if s.Style == StyleUnderline {
		choices, err := GenerateUnderlineChoices(s.Positions, i)
		if err != nil {
			return err
		}
		s.Choices = choices
		s.Status = StatusComplete
		return nil
	}

	withText := 0
	for _, p := range s.Positions {
		if p.ChangeText != "" {
			withText++
		}
	}
	if withText == squareSpanCount {
		return s.generateSquare()
	}
	return nil
}

// ClearChangeText drops every substitute and the derived choices so the
// author can pick a different answer. Used by the underline "swap answer"
// action.
func (s *Session) ClearChangeText() {
	for i := range s.Positions {
		s.Positions[i].ChangeText = ""
	}
	s.Choices = nil
	if s.Status == StatusComplete {
		s.Status = StatusMakeAnswer
	}
}

// Shuffle regenerates the square choice set (and IsSwitched flags) from
// scratch. Only meaningful for square style with all substitutes present.
func (s *Session) Shuffle() error {
	if s.Style != StyleSquare {
		return fmt.Errorf("shuffle applies to square style only")
	}
	return s.generateSquare()
}

func (s *Session) generateSquare() error {
	switched, choices, err := GenerateSquareChoices(s.Positions, s.rng)
	if err != nil {
		return err
	}
	s.Positions = switched
	s.Choices = choices
	s.Status = StatusComplete
	return nil
}

// SetPassage replaces the passage text. The token sequence is rebuilt and
// every span and choice is discarded; token indices from the old text would
// be meaningless against the new one.
func (s *Session) SetPassage(passageText string) {
	s.Passage = passageText
	s.tokens = Tokenize(passageText)
	s.Positions = nil
	s.Choices = nil
	s.Status = StatusMakeSelection
	s.pendingStart = -1
}

// Render projects the current session state into renderable nodes.
func (s *Session) Render() []Node {
	return Render(s.tokens, s.Positions, s.Status, s.Style, s.pendingStart)
}
