package passage

import (
	"math/rand"
	"strings"
	"testing"
)

func squarePositions() []SelectionPosition {
	return []SelectionPosition{
		{Start: 0, End: 1, OriginText: "alpha", ChangeText: "ALPHA"},
		{Start: 3, End: 4, OriginText: "beta", ChangeText: "BETA"},
		{Start: 6, End: 7, OriginText: "gamma", ChangeText: "GAMMA"},
	}
}

func TestGenerateUnderlineChoices(t *testing.T) {
	positions := make([]SelectionPosition, 5)
	for i := range positions {
		positions[i] = SelectionPosition{Start: i * 2, End: i * 2}
	}
	choices, err := GenerateUnderlineChoices(positions, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(choices) != 5 {
		t.Fatalf("got %d choices", len(choices))
	}
	for i, c := range choices {
		if c.IsAnswer != (i == 2) {
			t.Errorf("choice %d isAnswer = %v", i, c.IsAnswer)
		}
		if c.Title != SmallAlphabets[i] {
			t.Errorf("choice %d title = %q", i, c.Title)
		}
	}

	if _, err := GenerateUnderlineChoices(positions, 7); err == nil {
		t.Errorf("out-of-range answer index accepted")
	}
}

func TestGenerateSquareChoicesProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	wantCorrect := "alpha/beta/gamma"
	counts := make([]int, 5)

	const runs = 1000
	for run := 0; run < runs; run++ {
		switched, choices, err := GenerateSquareChoices(squarePositions(), rng)
		if err != nil {
			t.Fatal(err)
		}
		if len(switched) != 3 || len(choices) != 5 {
			t.Fatalf("got %d positions, %d choices", len(switched), len(choices))
		}

		answerIdx := -1
		seen := map[string]bool{}
		for i, c := range choices {
			if c.IsAnswer {
				if answerIdx >= 0 {
					t.Fatalf("run %d: multiple answers", run)
				}
				answerIdx = i
				if c.Title != wantCorrect {
					t.Fatalf("run %d: correct title = %q", run, c.Title)
				}
				continue
			}
			if seen[c.Title] {
				t.Fatalf("run %d: duplicate distractor %q", run, c.Title)
			}
			seen[c.Title] = true

			parts := strings.Split(c.Title, "/")
			if len(parts) != 3 {
				t.Fatalf("run %d: distractor %q not three-part", run, c.Title)
			}
			allOrigin := true
			for j, part := range parts {
				switch part {
				case switched[j].OriginText:
				case switched[j].ChangeText:
					allOrigin = false
				default:
					t.Fatalf("run %d: part %d of %q matches neither variant", run, j, c.Title)
				}
			}
			if allOrigin {
				t.Fatalf("run %d: distractor equals the all-origin pattern", run)
			}
		}
		if answerIdx < 0 {
			t.Fatalf("run %d: no answer marked", run)
		}
		counts[answerIdx]++
	}

	// Uniform position: expect ~200 per slot over 1000 runs. The bounds sit
	// well past 4 standard deviations.
	for i, n := range counts {
		if n < 140 || n > 260 {
			t.Errorf("answer index %d hit %d times out of %d", i, n, runs)
		}
	}
}

func TestGenerateSquareChoicesInputErrors(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	if _, _, err := GenerateSquareChoices(squarePositions()[:2], rng); err == nil {
		t.Errorf("two spans accepted")
	}

	missing := squarePositions()
	missing[1].ChangeText = ""
	if _, _, err := GenerateSquareChoices(missing, rng); err == nil {
		t.Errorf("missing substitute accepted")
	}
}

func TestGenerateSquareChoicesDoesNotMutateInput(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	in := squarePositions()
	if _, _, err := GenerateSquareChoices(in, rng); err != nil {
		t.Fatal(err)
	}
	for i, p := range in {
		if p.IsSwitched {
			t.Errorf("input position %d mutated", i)
		}
	}
}
