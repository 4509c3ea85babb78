package structurizr

import "github.com/ciarant/structurizr-completion/grammar"

// parser builds a tolerant parse tree. Out-of-place tokens land in error
// nodes, partial statements keep whatever they have, unterminated blocks
// close at end of input. It never fails.
type parser struct {
	toks []grammar.Token
	pos  int
	tree *grammar.Tree
}

func parse(tokens []grammar.Token) *grammar.Tree {
	p := &parser{toks: tokens, tree: grammar.NewTree(tokens)}
	root := p.tree.AddNode(ruleFile, grammar.NoNode)
	for !p.eof() {
		if p.at(tokNewline) {
			p.leaf(root)
			continue
		}
		p.parseStatement(root)
	}
	return p.tree
}

func (p *parser) parseStatement(parent grammar.NodeID) {
	switch p.cur().Type {
	case tokWorkspace:
		n := p.node(ruleWorkspaceDecl, parent)
		p.leaf(n)
		p.strings(n, 2)
		p.maybeBlock(n, ruleWorkspaceBlock)
	case tokModel:
		n := p.node(ruleModelDecl, parent)
		p.leaf(n)
		p.maybeBlock(n, ruleModelBlock)
	case tokViews:
		n := p.node(ruleViewsDecl, parent)
		p.leaf(n)
		p.maybeBlock(n, ruleViewsBlock)
	case tokPerson, tokSystem, tokContainer, tokComponent, tokDeployment:
		p.parseElement(parent, false)
	case tokIdentifier:
		switch p.peek(1).Type {
		case tokAssign:
			p.parseElement(parent, true)
		case tokArrow:
			p.parseRelationship(parent)
		default:
			p.errorToken(parent)
		}
	case tokInclude, tokExclude:
		n := p.node(ruleViewDirective, parent)
		p.leaf(n)
		if p.at(tokIdentifier) {
			p.leaf(n)
		}
	case tokAutolayout:
		n := p.node(ruleViewDirective, parent)
		p.leaf(n)
	case tokTheme:
		n := p.node(ruleViewDirective, parent)
		p.leaf(n)
		if p.at(tokString) {
			p.leaf(n)
		}
	case tokStyles:
		n := p.node(ruleViewDirective, parent)
		p.leaf(n)
		p.maybeBlock(n, ruleElementBlock)
	case tokTags, tokDescription:
		n := p.node(ruleProperty, parent)
		p.leaf(n)
		if p.at(tokString) {
			p.leaf(n)
		}
	case tokLBrace:
		n := p.node(ruleError, parent)
		p.maybeBlock(n, ruleElementBlock)
	default:
		p.errorToken(parent)
	}
}

// parseElement parses "person ..." or "id = person ...". The named form
// tolerates a missing kind keyword, so "api = " still declares api.
func (p *parser) parseElement(parent grammar.NodeID, named bool) {
	n := p.node(ruleElementDecl, parent)
	if named {
		p.leaf(n)
		p.leaf(n)
	}
	switch p.cur().Type {
	case tokPerson, tokSystem, tokContainer, tokComponent, tokDeployment:
		k := p.node(ruleElementKind, n)
		p.leaf(k)
	}
	p.strings(n, 3)
	p.maybeBlock(n, ruleElementBlock)
}

func (p *parser) parseRelationship(parent grammar.NodeID) {
	n := p.node(ruleRelationship, parent)
	p.leaf(n)
	p.leaf(n)
	if p.at(tokIdentifier) {
		p.leaf(n)
	}
	p.strings(n, 2)
}

func (p *parser) maybeBlock(parent grammar.NodeID, blockRule grammar.RuleID) {
	if !p.at(tokLBrace) {
		return
	}
	b := p.node(blockRule, parent)
	p.leaf(b)
	for !p.eof() {
		switch p.cur().Type {
		case tokRBrace:
			p.leaf(b)
			return
		case tokNewline:
			p.leaf(b)
		default:
			p.parseStatement(b)
		}
	}
}

func (p *parser) strings(parent grammar.NodeID, max int) {
	for i := 0; i < max && p.at(tokString); i++ {
		p.leaf(parent)
	}
}

// errorToken wraps one unexpected token so the tree stays connected.
func (p *parser) errorToken(parent grammar.NodeID) {
	n := p.node(ruleError, parent)
	p.leaf(n)
}

func (p *parser) cur() grammar.Token { return p.toks[p.pos] }

func (p *parser) peek(n int) grammar.Token {
	if p.pos+n >= len(p.toks) {
		return grammar.Token{Type: grammar.NoTokenType}
	}
	return p.toks[p.pos+n]
}

func (p *parser) at(tt grammar.TokenType) bool {
	return !p.eof() && p.toks[p.pos].Type == tt
}

func (p *parser) eof() bool { return p.pos >= len(p.toks) }

func (p *parser) node(rule grammar.RuleID, parent grammar.NodeID) grammar.NodeID {
	return p.tree.AddNode(rule, parent)
}

func (p *parser) leaf(parent grammar.NodeID) {
	p.tree.AddTerminal(parent, p.pos)
	p.pos++
}
