package languages

import (
	"github.com/ciarant/structurizr-completion/grammar"
)

// NodeRange converts a parse-tree node's token span to a Range
func NodeRange(tree *grammar.Tree, id grammar.NodeID) Range {
	first, last := tree.Span(id)
	if first < 0 {
		return Range{}
	}
	start := tree.Token(first)
	endLine, endCol := tree.Token(last).End()
	return Range{
		Start: Position{Line: start.Line, Character: start.Column},
		End:   Position{Line: endLine, Character: endCol},
	}
}
