package grammar

import "strings"

// TokenPosition is where a caret landed in a token stream.
type TokenPosition struct {
	// Index is the stream index of the token at the caret. The collector
	// consumes tokens[:Index]. Equals len(tokens) past the last token.
	Index int
	// Context is the parse-tree node giving the caret its context: the
	// touched terminal when there is one, otherwise the deepest interior
	// node whose span covers the caret.
	Context NodeID
	// Prefix is the text already typed inside the touched token, empty when
	// the caret sits between tokens.
	Prefix string
}

// PositionMapper turns a caret into a token position. Orchestrators take the
// mapper as an argument so embedders can bring their own policy; MapCaret is
// the stock one.
type PositionMapper func(tree *Tree, caret Caret) (TokenPosition, bool)

// MapCaret maps a caret onto the token stream of a parse tree. A token whose
// span touches the caret wins and contributes the typed prefix; otherwise the
// caret is an insertion point before the next token (or past the end) with an
// empty prefix. Returns false only when the tree holds nothing to anchor to.
func MapCaret(tree *Tree, caret Caret) (TokenPosition, bool) {
	if tree == nil || tree.Len() == 0 {
		return TokenPosition{}, false
	}
	tokens := tree.Tokens()
	for i, tok := range tokens {
		if !touches(tok, caret) {
			continue
		}
		ctx := tree.TerminalFor(i)
		if ctx == NoNode {
			ctx = contextNode(tree, caret)
		}
		return TokenPosition{Index: i, Context: ctx, Prefix: typedPrefix(tok, caret)}, true
	}
	idx := len(tokens)
	for i, tok := range tokens {
		if caret.Before(tok.Line, tok.Column) {
			idx = i
			break
		}
	}
	return TokenPosition{Index: idx, Context: contextNode(tree, caret), Prefix: ""}, true
}

// touches reports whether the caret sits on the token, start inclusive. The
// end is inclusive too, so a caret just after the last typed character still
// belongs to the token; a trailing newline gives its end boundary away to the
// next line instead.
func touches(tok Token, caret Caret) bool {
	if caret.Before(tok.Line, tok.Column) {
		return false
	}
	endLine, endCol := tok.End()
	if strings.HasSuffix(tok.Text, "\n") {
		return caret.Before(endLine, endCol)
	}
	return !Caret{Line: endLine, Column: endCol}.Before(caret.Line, caret.Column)
}

// typedPrefix cuts the token text at the caret.
func typedPrefix(tok Token, caret Caret) string {
	line, col := tok.Line, tok.Column
	for i := 0; i < len(tok.Text); i++ {
		if line == caret.Line && col == caret.Column {
			return tok.Text[:i]
		}
		if tok.Text[i] == '\n' {
			line++
			col = 0
		} else {
			col++
		}
	}
	return tok.Text
}

// contextNode descends from the root into the deepest node whose token span
// covers the caret. The descent is iterative; the root answers when no child
// covers the caret.
func contextNode(tree *Tree, caret Caret) NodeID {
	cur := tree.Root()
	if cur == NoNode {
		return NoNode
	}
	for {
		descended := false
		for _, ch := range tree.Children(cur) {
			first, last := tree.Span(ch)
			if first < 0 {
				continue
			}
			start := tree.Token(first)
			if caret.Before(start.Line, start.Column) {
				continue
			}
			endLine, endCol := tree.Token(last).End()
			if (Caret{Line: endLine, Column: endCol}).Before(caret.Line, caret.Column) {
				continue
			}
			cur = ch
			descended = true
			break
		}
		if !descended {
			return cur
		}
	}
}
