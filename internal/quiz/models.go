package quiz

import (
	"errors"
	"fmt"

	"github.com/passagelab/studio/internal/passage"
)

// Quiz is the persisted record of one authored item: the passage, the marked
// spans, the derived choice set, and the metadata the studio collects around
// them. Tokens are never persisted; they are rederived from Passage.
type Quiz struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Category    string `json:"category"` // e.g. vocabulary-underline, vocabulary-square
	Passage     string `json:"passage"`
	Explanation string `json:"explanation,omitempty"`
	Footnote    string `json:"footnote,omitempty"`
	Source      string `json:"source,omitempty"`
	Unit        string `json:"unit,omitempty"`
	Paragraph   string `json:"paragraph,omitempty"`

	SelectionPositions []passage.SelectionPosition `json:"selectionPositions"`
	Choices            []passage.Choice            `json:"choices"`

	CreatedAt int64 `json:"created_at,omitempty"`
}

// Validate checks the record is storable: a passage, ordered spans, and a
// choice set with exactly one correct option.
func (q Quiz) Validate() error {
	if q.ID == "" {
		return errors.New("id required")
	}
	if q.Passage == "" {
		return errors.New("passage required")
	}
	if len(q.SelectionPositions) > passage.MaxSelectionLimit {
		return fmt.Errorf("too many selection positions: %d", len(q.SelectionPositions))
	}
	// Equal starts are legal: the selector only rejects ranges that strictly
	// contain an existing span, so two spans may share a start token.
	for i := 0; i+1 < len(q.SelectionPositions); i++ {
		if q.SelectionPositions[i].Start > q.SelectionPositions[i+1].Start {
			return fmt.Errorf("selection positions out of order at %d", i)
		}
	}
	for i, p := range q.SelectionPositions {
		if p.End < p.Start {
			return fmt.Errorf("selection %d has end before start", i)
		}
	}
	if len(q.Choices) > 0 {
		answers := 0
		for _, c := range q.Choices {
			if c.IsAnswer {
				answers++
			}
		}
		if answers != 1 {
			return fmt.Errorf("choice set has %d answers, want 1", answers)
		}
	}
	return nil
}
