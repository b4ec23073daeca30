package passage

import (
	"reflect"
	"testing"
)

func TestRenderMakeSelection(t *testing.T) {
	tokens := Tokenize("The quick fox.")
	nodes := Render(tokens, nil, StatusMakeSelection, StyleSquare, 1)

	if len(nodes) != 4 {
		t.Fatalf("got %d nodes: %#v", len(nodes), nodes)
	}
	for i, n := range nodes {
		if n.Kind != NodeToken {
			t.Errorf("node %d kind = %v", i, n.Kind)
		}
		if !n.Clickable {
			t.Errorf("node %d not clickable in makeSelection", i)
		}
		if n.TokenIndex != i {
			t.Errorf("node %d tokenIndex = %d", i, n.TokenIndex)
		}
	}
	if !nodes[1].Pending {
		t.Errorf("pending start not highlighted")
	}
	if nodes[0].Pending {
		t.Errorf("stray pending highlight")
	}
	if !nodes[0].SpaceAfter || nodes[2].SpaceAfter {
		t.Errorf("space flags wrong: %#v", nodes)
	}
	if !nodes[3].Special || nodes[0].Special {
		t.Errorf("special flags wrong")
	}
}

func TestRenderSpanCollapsesTokens(t *testing.T) {
	tokens := Tokenize(samplePassage)
	positions := []SelectionPosition{{Start: 0, End: 1, OriginText: "The quick "}}
	nodes := Render(tokens, positions, StatusMakeSelection, StyleSquare, -1)

	if nodes[0].Kind != NodeSpan {
		t.Fatalf("first node kind = %v", nodes[0].Kind)
	}
	if nodes[0].Text != "The quick " {
		t.Errorf("span text = %q", nodes[0].Text)
	}
	if nodes[0].Label != "" {
		t.Errorf("span labeled during makeSelection: %q", nodes[0].Label)
	}
	if nodes[0].SpanIndex != 0 {
		t.Errorf("spanIndex = %d", nodes[0].SpanIndex)
	}
	if !nodes[0].Removable || nodes[0].Editable {
		t.Errorf("span flags wrong: %#v", nodes[0])
	}
	// 10 tokens, 2 collapsed into one span node.
	if len(nodes) != 9 {
		t.Errorf("got %d nodes", len(nodes))
	}
	if nodes[1].Kind != NodeToken || nodes[1].TokenIndex != 2 {
		t.Errorf("node after span = %#v", nodes[1])
	}
}

func TestRenderLabelsAndComposite(t *testing.T) {
	tokens := Tokenize(samplePassage)
	positions := []SelectionPosition{
		{Start: 0, End: 1, OriginText: "The quick ", ChangeText: "A slow"},
		{Start: 3, End: 4, OriginText: "fox jumps "},
	}

	square := Render(tokens, positions, StatusMakeAnswer, StyleSquare, -1)
	if square[0].Label != "(A)" {
		t.Errorf("square label = %q", square[0].Label)
	}
	if square[0].Text != "The quick  / A slow" {
		t.Errorf("square composite = %q", square[0].Text)
	}
	if !square[0].Editable {
		t.Errorf("span not editable in makeAnswer")
	}
	if square[1].Kind != NodeSpan || square[1].Label != "(B)" || square[1].Text != "fox jumps " {
		t.Errorf("second span = %#v", square[1])
	}

	positions[0].IsSwitched = true
	switched := Render(tokens, positions, StatusMakeAnswer, StyleSquare, -1)
	if switched[0].Text != "A slow / The quick " {
		t.Errorf("switched composite = %q", switched[0].Text)
	}
	positions[0].IsSwitched = false

	underline := Render(tokens, positions, StatusMakeAnswer, StyleUnderline, -1)
	if underline[0].Label != "(a)" {
		t.Errorf("underline label = %q", underline[0].Label)
	}
	if underline[0].Text != "A slow" || !underline[0].IsAnswer {
		t.Errorf("underline substitute node = %#v", underline[0])
	}
	if underline[1].Text != "fox jumps " || underline[1].IsAnswer {
		t.Errorf("untouched underline span = %#v", underline[1])
	}

	// Tokens outside spans are no longer clickable past makeSelection.
	for _, n := range square {
		if n.Kind == NodeToken && n.Clickable {
			t.Errorf("token %d clickable in makeAnswer", n.TokenIndex)
		}
	}
}

// More spans than the label tables hold still render; the overflow spans just
// come out unlabeled.
func TestRenderSpansBeyondLabelTables(t *testing.T) {
	s := NewSession(samplePassage, StyleUnderline, 8, "")
	for i := 0; i < 8; i++ {
		mustSelect(t, s, i, i)
	}
	if s.Status != StatusMakeAnswer {
		t.Fatalf("status = %v", s.Status)
	}

	nodes := s.Render()
	spans := 0
	for _, n := range nodes {
		if n.Kind != NodeSpan {
			continue
		}
		spans++
		if n.SpanIndex < len(SmallAlphabets) && n.Label == "" {
			t.Errorf("span %d unlabeled", n.SpanIndex)
		}
		if n.SpanIndex >= len(SmallAlphabets) && n.Label != "" {
			t.Errorf("span %d label = %q, want none", n.SpanIndex, n.Label)
		}
	}
	if spans != 8 {
		t.Errorf("got %d span nodes", spans)
	}
}

func TestRenderReadOnly(t *testing.T) {
	tokens := Tokenize(samplePassage)
	positions := []SelectionPosition{
		{Start: 0, End: 1, OriginText: "The quick ", ChangeText: "A slow", IsSwitched: true},
	}

	square := Render(tokens, positions, StatusReadOnly, StyleSquare, -1)
	if square[0].Label != "(A)" {
		t.Errorf("label = %q", square[0].Label)
	}
	if square[0].Text != "A slow / The quick " {
		t.Errorf("composite = %q", square[0].Text)
	}
	if square[0].Removable || square[0].Editable {
		t.Errorf("read-only span editable: %#v", square[0])
	}
	for _, n := range square {
		if n.Clickable || n.Pending {
			t.Errorf("interactive flag set in read-only render: %#v", n)
		}
	}

	underline := Render(tokens, positions, StatusReadOnly, StyleUnderline, -1)
	if underline[0].Text != "A slow" || underline[0].IsAnswer {
		t.Errorf("read-only underline span = %#v", underline[0])
	}
}

func TestRenderLineBreaks(t *testing.T) {
	kinds := func(nodes []Node) []NodeKind {
		out := make([]NodeKind, len(nodes))
		for i, n := range nodes {
			out[i] = n.Kind
		}
		return out
	}

	// A lone newline token becomes just a break.
	nodes := Render(Tokenize("ab\ncd"), nil, StatusMakeSelection, StyleSquare, -1)
	want := []NodeKind{NodeToken, NodeLineBreak, NodeToken}
	if !reflect.DeepEqual(kinds(nodes), want) {
		t.Errorf("ab\\ncd kinds = %v", kinds(nodes))
	}

	// A whitespace run with an interior newline renders, then breaks.
	nodes = Render(Tokenize("a \n b"), nil, StatusMakeSelection, StyleSquare, -1)
	want = []NodeKind{NodeToken, NodeToken, NodeLineBreak, NodeToken}
	if !reflect.DeepEqual(kinds(nodes), want) {
		t.Errorf("a \\n b kinds = %v", kinds(nodes))
	}

	// A leading newline breaks before the token renders.
	nodes = Render(Tokenize("a\n\tb"), nil, StatusMakeSelection, StyleSquare, -1)
	want = []NodeKind{NodeToken, NodeLineBreak, NodeToken, NodeToken}
	if !reflect.DeepEqual(kinds(nodes), want) {
		t.Errorf("a\\n\\tb kinds = %v", kinds(nodes))
	}
}

func TestRenderIsPure(t *testing.T) {
	tokens := Tokenize(samplePassage)
	positions := []SelectionPosition{
		{Start: 0, End: 1, OriginText: "The quick ", ChangeText: "A slow"},
		{Start: 3, End: 4, OriginText: "fox jumps "},
	}
	snapshot := make([]SelectionPosition, len(positions))
	copy(snapshot, positions)

	first := Render(tokens, positions, StatusComplete, StyleSquare, -1)
	second := Render(tokens, positions, StatusComplete, StyleSquare, -1)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated renders differ")
	}
	if !reflect.DeepEqual(positions, snapshot) {
		t.Errorf("render mutated positions")
	}
	if got := reconstruct(tokens); got != samplePassage {
		t.Errorf("render mutated tokens: %q", got)
	}
}
