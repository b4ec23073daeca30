package passage

import (
	"fmt"
	"math/rand"
	"strings"
)

// Square-style items always mark exactly three spans.
const squareSpanCount = 3

// GenerateUnderlineChoices maps spans 1:1 to labeled choices. answerIndex is
// the span whose substitute was just committed; only it is marked correct.
func GenerateUnderlineChoices(positions []SelectionPosition, answerIndex int) ([]Choice, error) {
	if answerIndex < 0 || answerIndex >= len(positions) {
		return nil, fmt.Errorf("answer index %d out of range", answerIndex)
	}
	if len(positions) > len(SmallAlphabets) {
		return nil, fmt.Errorf("too many selections for labeling: %d", len(positions))
	}
	choices := make([]Choice, len(positions))
	for i := range positions {
		choices[i] = Choice{Title: SmallAlphabets[i], IsAnswer: i == answerIndex}
	}
	return choices, nil
}

// GenerateSquareChoices builds the five-option set for a square-style item
// from exactly three spans that each carry origin and substitute text.
//
// Each span gets a fresh coin-flip IsSwitched flag (display order of the
// origin/substitute pair). The correct option sits at a uniformly random
// index and is always the /-joined origin texts. The four distractors draw
// their origin-vs-substitute pattern without replacement from the seven
// combinations that are not all-origin, so no two distractors share a
// pattern.
//
// The returned positions are a copy with the new IsSwitched flags; inputs
// are not mutated. Re-invoking re-rolls everything from scratch.
func GenerateSquareChoices(positions []SelectionPosition, rng *rand.Rand) ([]SelectionPosition, []Choice, error) {
	if len(positions) != squareSpanCount {
		return nil, nil, fmt.Errorf("square answers need exactly %d selections, got %d", squareSpanCount, len(positions))
	}
	for i, p := range positions {
		if p.ChangeText == "" {
			return nil, nil, fmt.Errorf("selection %d has no substitute text", i)
		}
	}

	pool := [][3]bool{
		{true, true, false},
		{true, false, true},
		{true, false, false},
		{false, true, true},
		{false, true, false},
		{false, false, true},
		{false, false, false},
	}

	switched := make([]SelectionPosition, len(positions))
	copy(switched, positions)
	for i := range switched {
		switched[i].IsSwitched = rng.Intn(2) == 1
	}

	answer := rng.Intn(5)
	choices := make([]Choice, 5)
	for i := range choices {
		if i == answer {
			choices[i] = Choice{
				Title:    switched[0].OriginText + "/" + switched[1].OriginText + "/" + switched[2].OriginText,
				IsAnswer: true,
			}
			continue
		}
		k := rng.Intn(len(pool))
		combo := pool[k]
		pool = append(pool[:k], pool[k+1:]...)

		parts := make([]string, squareSpanCount)
		for j, useOrigin := range combo {
			if useOrigin {
				parts[j] = switched[j].OriginText
			} else {
				parts[j] = switched[j].ChangeText
			}
		}
		choices[i] = Choice{Title: strings.Join(parts, "/")}
	}
	return switched, choices, nil
}
