package passage

import (
	"fmt"
	"strings"
)

// NodeKind tags a rendered node.
type NodeKind int

const (
	NodeToken NodeKind = iota
	NodeSpan
	NodeLineBreak
)

func (k NodeKind) String() string {
	switch k {
	case NodeToken:
		return "token"
	case NodeSpan:
		return "span"
	case NodeLineBreak:
		return "lineBreak"
	}
	return "unknown"
}

func (k NodeKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

func (k *NodeKind) UnmarshalText(b []byte) error {
	switch string(b) {
	case "token":
		*k = NodeToken
	case "span":
		*k = NodeSpan
	case "lineBreak":
		*k = NodeLineBreak
	default:
		return fmt.Errorf("unknown node kind %q", string(b))
	}
	return nil
}

// Node is one renderable unit of a projected passage: a bare token, a whole
// marked span, or a forced line break. The frontend maps these straight to
// DOM elements.
type Node struct {
	Kind       NodeKind `json:"kind"`
	Text       string   `json:"text,omitempty"`
	Label      string   `json:"label,omitempty"`
	TokenIndex int      `json:"tokenIndex"`
	SpanIndex  int      `json:"spanIndex"`
	Clickable  bool     `json:"clickable,omitempty"`
	Pending    bool     `json:"pending,omitempty"`
	Special    bool     `json:"special,omitempty"`
	SpaceAfter bool     `json:"spaceAfter,omitempty"`
	Removable  bool     `json:"removable,omitempty"`
	Editable   bool     `json:"editable,omitempty"`
	IsAnswer   bool     `json:"isAnswer,omitempty"`
}

func lineBreak() Node { return Node{Kind: NodeLineBreak, TokenIndex: -1, SpanIndex: -1} }

// Render projects (tokens, spans, status, style) into a node sequence. It is
// a pure function: identical inputs produce identical output and nothing is
// mutated, so it can run on every keystroke.
//
// Tokens inside a span collapse into one span node, emitted at the span's end
// token. Tokens outside spans render individually and are clickable only
// while selections are still being made. pendingStart highlights the first
// click of an in-progress selection; pass -1 when none (and in read-only
// projections).
func Render(tokens []Token, positions []SelectionPosition, status Status, style Style, pendingStart int) []Node {
	readOnly := status == StatusReadOnly
	labeled := readOnly || status == StatusMakeAnswer || status == StatusComplete
	nodes := make([]Node, 0, len(tokens))

	for i, tok := range tokens {
		si := spanContaining(positions, i)
		if si >= 0 {
			if positions[si].End != i {
				continue
			}
			nodes = append(nodes, spanNode(tokens, positions[si], si, status, style, labeled, readOnly))
			continue
		}

		n := Node{
			Kind:       NodeToken,
			Text:       tok.Text,
			TokenIndex: i,
			SpanIndex:  -1,
			Clickable:  !readOnly && status == StatusMakeSelection && tok.Text != " ",
			Pending:    !readOnly && i == pendingStart,
			Special:    IsSpecialCharacter(tok.Text),
			SpaceAfter: tok.SpaceAfter,
		}
		switch nl := strings.IndexByte(tok.Text, '\n'); {
		case tok.Text == "\n":
			nodes = append(nodes, lineBreak())
		case nl == 0:
			nodes = append(nodes, lineBreak(), n)
		case nl > 0:
			nodes = append(nodes, n, lineBreak())
		default:
			nodes = append(nodes, n)
		}
	}
	return nodes
}

func spanContaining(positions []SelectionPosition, tokenIndex int) int {
	for i, p := range positions {
		if tokenIndex >= p.Start && tokenIndex <= p.End {
			return i
		}
	}
	return -1
}

func spanNode(tokens []Token, p SelectionPosition, spanIndex int, status Status, style Style, labeled, readOnly bool) Node {
	origin := TextRange(tokens, p.Start, p.End)

	n := Node{
		Kind:       NodeSpan,
		Text:       origin,
		TokenIndex: -1,
		SpanIndex:  spanIndex,
		SpaceAfter: tokens[p.End].SpaceAfter,
		Removable:  !readOnly,
		Editable:   !readOnly && (status == StatusMakeAnswer || status == StatusComplete),
	}
	// Spans past the end of the label tables render unlabeled.
	if labeled && spanIndex < len(SmallAlphabets) {
		if style == StyleSquare {
			n.Label = LargeAlphabets[spanIndex]
		} else {
			n.Label = SmallAlphabets[spanIndex]
		}
	}

	if style == StyleSquare {
		if p.ChangeText != "" {
			if p.IsSwitched {
				n.Text = p.ChangeText + " / " + origin
			} else {
				n.Text = origin + " / " + p.ChangeText
			}
		}
		return n
	}

	// Underline: the substitute replaces the origin text once the workflow
	// has advanced past selection.
	if labeled && p.ChangeText != "" {
		n.Text = p.ChangeText
		n.IsAnswer = !readOnly
	}
	return n
}
