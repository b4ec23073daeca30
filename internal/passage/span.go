package passage

import (
	"errors"
	"fmt"
)

// Style selects the quiz format a passage is being marked up for.
type Style int

const (
	// StyleUnderline marks up to five independent spans; the author then
	// designates one as the altered/incorrect one.
	StyleUnderline Style = iota
	// StyleSquare marks exactly three spans, each given a substitute, which
	// are combined into five multi-part choices.
	StyleSquare
)

func (s Style) String() string {
	if s == StyleSquare {
		return "square"
	}
	return "underline"
}

func (s Style) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *Style) UnmarshalText(b []byte) error {
	v, err := ParseStyle(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

func ParseStyle(v string) (Style, error) {
	switch v {
	case "underline":
		return StyleUnderline, nil
	case "square":
		return StyleSquare, nil
	}
	return 0, fmt.Errorf("unknown style %q", v)
}

// Status is the stage of the selection workflow.
type Status int

const (
	// StatusMakeSelection accepts token clicks until the span limit is hit.
	StatusMakeSelection Status = iota
	// StatusMakeAnswer accepts substitute text for the marked spans.
	StatusMakeAnswer
	// StatusComplete has a full choice set; no further edits besides re-rolls.
	StatusComplete
	// StatusReadOnly is the terminal display mode for saved quizzes.
	StatusReadOnly
)

func (s Status) String() string {
	switch s {
	case StatusMakeSelection:
		return "makeSelection"
	case StatusMakeAnswer:
		return "makeAnswer"
	case StatusComplete:
		return "complete"
	case StatusReadOnly:
		return "readOnly"
	}
	return "unknown"
}

func (s Status) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *Status) UnmarshalText(b []byte) error {
	switch string(b) {
	case "makeSelection":
		*s = StatusMakeSelection
	case "makeAnswer":
		*s = StatusMakeAnswer
	case "complete":
		*s = StatusComplete
	case "readOnly":
		*s = StatusReadOnly
	default:
		return fmt.Errorf("unknown status %q", string(b))
	}
	return nil
}

// SelectionPosition is one marked span: an inclusive token-index range, the
// reconstructed origin text, and the author-supplied substitute. IsSwitched
// reverses the display order of origin/substitute for square-style pairs.
type SelectionPosition struct {
	Start      int    `json:"start"`
	End        int    `json:"end"`
	OriginText string `json:"originText"`
	ChangeText string `json:"changeText,omitempty"`
	IsSwitched bool   `json:"isSwitched,omitempty"`
}

// Choice is one answer option of a generated set.
type Choice struct {
	Title    string `json:"title"`
	IsAnswer bool   `json:"isAnswer"`
}

// MaxSelectionLimit caps how many spans one item can mark. The label tables
// below carry spares beyond it.
const MaxSelectionLimit = 5

// Label tables for rendered spans and choice lists.
var (
	ChoiceNumbers  = []string{"①", "②", "③", "④", "⑤", "⑥", "⑦", "⑧", "⑨", "⑩"}
	LargeAlphabets = []string{"(A)", "(B)", "(C)", "(D)", "(E)", "(G)", "(H)"}
	SmallAlphabets = []string{"(a)", "(b)", "(c)", "(d)", "(e)", "(g)", "(h)"}
)

// Selector errors. All are synchronous rejections that leave the span set
// unchanged; none are fatal.
var (
	// ErrNoLimit: the session was built without a maximum selection count.
	// A caller wiring bug, not a user-facing steady-state error.
	ErrNoLimit = errors.New("maximum selection count not configured")
	// ErrOverlap: the new range strictly contains an existing span.
	ErrOverlap = errors.New("selection contains an already selected range")
	// ErrEmptySubstitute: blank/whitespace-only substitute text.
	ErrEmptySubstitute = errors.New("substitute text is empty")
)

// LimitReachedError rejects span creation once the configured maximum is hit.
type LimitReachedError struct{ Max int }

func (e *LimitReachedError) Error() string {
	return fmt.Sprintf("selection limit of %d reached", e.Max)
}
