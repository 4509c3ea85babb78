package kotlin

import "github.com/ciarant/structurizr-completion/grammar"

// parser builds a tolerant parse tree. Out-of-place tokens land in error
// nodes, partial statements keep whatever they have, unterminated blocks and
// strings close at end of input. It never fails.
//
// Expressions come out flat: one expression node holds its operands and
// operator leaves side by side. The precedence detail lives in the rule
// table; the tree only has to answer scope and context questions, and for
// those the variableRead wrappers are what matters.
type parser struct {
	toks []grammar.Token
	pos  int
	tree *grammar.Tree
}

func parse(tokens []grammar.Token) *grammar.Tree {
	p := &parser{toks: tokens, tree: grammar.NewTree(tokens)}
	root := p.tree.AddNode(ruleScript, grammar.NoNode)
	for !p.eof() {
		p.parseItem(root)
	}
	return p.tree
}

// parseItem handles one statement-position token: separators and trivia
// become leaves of the enclosing scope node, the rest starts a statement.
func (p *parser) parseItem(parent grammar.NodeID) {
	switch {
	case p.at(tokNewline) || p.at(tokSemicolon) || p.trivia():
		p.leaf(parent)
	default:
		p.parseStatement(parent)
	}
}

func (p *parser) parseStatement(parent grammar.NodeID) {
	switch p.cur().Type {
	case tokVal, tokVar:
		p.parseProperty(parent)
	case tokFun:
		p.parseFunction(parent)
	case tokWhile:
		p.parseWhile(parent)
	case tokDo:
		p.parseDoWhile(parent)
	case tokFor:
		p.parseFor(parent)
	case tokReturn, tokBreak, tokContinue:
		p.parseJump(parent)
	case tokPackage:
		p.parseHeader(parent, rulePackageHeader)
	case tokImport:
		p.parseHeader(parent, ruleImportHeader)
	case tokLBrace:
		p.parseBlock(parent)
	case tokIdentifier:
		if p.peek(1).Type == tokAssign {
			p.parseAssignment(parent)
			return
		}
		p.parseExpression(parent)
	default:
		if p.exprStart() {
			p.parseExpression(parent)
			return
		}
		p.errorToken(parent)
	}
}

func (p *parser) parseProperty(parent grammar.NodeID) {
	n := p.node(rulePropertyDecl, parent)
	p.leaf(n)
	if p.at(tokIdentifier) {
		p.leaf(n)
	}
	if p.at(tokColon) {
		p.leaf(n)
		p.parseType(n)
	}
	if p.at(tokAssign) {
		p.leaf(n)
		p.parseExpression(n)
	}
}

func (p *parser) parseType(parent grammar.NodeID) {
	n := p.node(ruleType, parent)
	if p.at(tokIdentifier) {
		p.leaf(n)
	}
	if p.at(tokQuest) {
		p.leaf(n)
	}
}

func (p *parser) parseFunction(parent grammar.NodeID) {
	n := p.node(ruleFunctionDecl, parent)
	p.leaf(n)
	if p.at(tokIdentifier) {
		p.leaf(n)
	}
	if p.at(tokLParen) {
		p.leaf(n)
		for !p.eof() && !p.at(tokRParen) {
			switch {
			case p.at(tokIdentifier):
				p.parseParameter(n)
			case p.at(tokComma) || p.at(tokNewline) || p.trivia():
				p.leaf(n)
			default:
				p.errorToken(n)
			}
		}
		if p.at(tokRParen) {
			p.leaf(n)
		}
	}
	if p.at(tokColon) {
		p.leaf(n)
		p.parseType(n)
	}
	switch {
	case p.at(tokLBrace):
		p.parseBlock(n)
	case p.at(tokAssign):
		p.leaf(n)
		p.parseExpression(n)
	}
}

func (p *parser) parseParameter(parent grammar.NodeID) {
	n := p.node(ruleParameter, parent)
	p.leaf(n)
	if p.at(tokColon) {
		p.leaf(n)
		p.parseType(n)
	}
}

func (p *parser) parseBlock(parent grammar.NodeID) {
	n := p.node(ruleBlock, parent)
	p.leaf(n)
	for !p.eof() && !p.at(tokRBrace) {
		p.parseItem(n)
	}
	if p.at(tokRBrace) {
		p.leaf(n)
	}
}

func (p *parser) parseWhile(parent grammar.NodeID) {
	n := p.node(ruleWhileStmt, parent)
	p.leaf(n)
	if p.at(tokLParen) {
		p.leaf(n)
		p.parseExpression(n)
		if p.at(tokRParen) {
			p.leaf(n)
		}
	}
	p.parseControlBody(n)
}

func (p *parser) parseDoWhile(parent grammar.NodeID) {
	n := p.node(ruleDoWhileStmt, parent)
	p.leaf(n)
	p.parseControlBody(n)
	if p.at(tokWhile) {
		p.leaf(n)
	}
	if p.at(tokLParen) {
		p.leaf(n)
		p.parseExpression(n)
		if p.at(tokRParen) {
			p.leaf(n)
		}
	}
}

func (p *parser) parseFor(parent grammar.NodeID) {
	n := p.node(ruleForStmt, parent)
	p.leaf(n)
	if p.at(tokLParen) {
		p.leaf(n)
	}
	if p.at(tokIdentifier) {
		p.leaf(n)
	}
	if p.at(tokIn) {
		p.leaf(n)
		p.parseExpression(n)
	}
	if p.at(tokRParen) {
		p.leaf(n)
	}
	p.parseControlBody(n)
}

func (p *parser) parseJump(parent grammar.NodeID) {
	n := p.node(ruleJumpStmt, parent)
	ret := p.at(tokReturn)
	p.leaf(n)
	if ret && p.exprStart() {
		p.parseExpression(n)
	}
}

func (p *parser) parseHeader(parent grammar.NodeID, rule grammar.RuleID) {
	n := p.node(rule, parent)
	p.leaf(n)
	if p.at(tokIdentifier) {
		p.leaf(n)
		for p.at(tokDot) {
			p.leaf(n)
			if !p.at(tokIdentifier) {
				break
			}
			p.leaf(n)
		}
	}
}

func (p *parser) parseAssignment(parent grammar.NodeID) {
	n := p.node(ruleAssignment, parent)
	p.leaf(n)
	p.leaf(n)
	p.parseExpression(n)
}

func (p *parser) parseControlBody(parent grammar.NodeID) {
	switch {
	case p.at(tokLBrace):
		p.parseBlock(parent)
	case p.exprStart():
		p.parseExpression(parent)
	}
}

func (p *parser) parseExpression(parent grammar.NodeID) {
	n := p.node(ruleExpression, parent)
	for {
		if !p.parseOperand(n) {
			return
		}
		if !p.binaryOp() {
			return
		}
		p.leaf(n)
		// A binary operator promises another operand, so the expression
		// continues across line breaks.
		for p.at(tokNewline) || p.trivia() {
			p.leaf(n)
		}
	}
}

// parseOperand parses prefix operators, one primary and its postfix
// suffixes. Reports false when no operand is there.
func (p *parser) parseOperand(parent grammar.NodeID) bool {
	for p.trivia() {
		p.leaf(parent)
	}
	for p.at(tokExcl) || p.at(tokSub) || p.at(tokAdd) || p.at(tokIncr) || p.at(tokDecr) {
		p.leaf(parent)
	}
	if p.eof() {
		return false
	}
	switch p.cur().Type {
	case tokIdentifier:
		v := p.node(ruleVariableRead, parent)
		p.leaf(v)
	case tokLParen:
		p.leaf(parent)
		p.parseExpression(parent)
		if p.at(tokRParen) {
			p.leaf(parent)
		}
	case tokQuoteOpen, tokTripleQuoteOpen:
		p.parseString(parent)
	case tokIf:
		p.parseIf(parent)
	case tokWhen:
		p.parseWhen(parent)
	default:
		if !p.literal() {
			return false
		}
		p.leaf(parent)
	}
	p.parseSuffixes(parent)
	return true
}

func (p *parser) parseSuffixes(parent grammar.NodeID) {
	for !p.eof() {
		switch p.cur().Type {
		case tokDot:
			p.leaf(parent)
			if p.at(tokIdentifier) {
				p.leaf(parent)
			}
		case tokLParen:
			p.parseCall(parent)
		case tokLBracket:
			p.leaf(parent)
			p.parseExpression(parent)
			if p.at(tokRBracket) {
				p.leaf(parent)
			}
		case tokIncr, tokDecr:
			p.leaf(parent)
		default:
			return
		}
	}
}

func (p *parser) parseCall(parent grammar.NodeID) {
	n := p.node(ruleCallSuffix, parent)
	p.leaf(n)
	for !p.eof() && !p.at(tokRParen) {
		switch {
		case p.at(tokComma) || p.at(tokNewline) || p.trivia():
			p.leaf(n)
		case p.exprStart():
			p.parseExpression(n)
		default:
			p.errorToken(n)
		}
	}
	if p.at(tokRParen) {
		p.leaf(n)
	}
}

func (p *parser) parseString(parent grammar.NodeID) {
	n := p.node(ruleStringLiteral, parent)
	p.leaf(n)
	if p.at(tokStringText) {
		p.leaf(n)
	}
	if p.at(tokQuoteClose) || p.at(tokTripleQuoteClose) {
		p.leaf(n)
	}
}

func (p *parser) parseIf(parent grammar.NodeID) {
	n := p.node(ruleIfExpr, parent)
	p.leaf(n)
	if p.at(tokLParen) {
		p.leaf(n)
		p.parseExpression(n)
		if p.at(tokRParen) {
			p.leaf(n)
		}
	}
	p.parseControlBody(n)
	if p.nextMeaningful() == tokElse {
		for p.at(tokNewline) || p.trivia() {
			p.leaf(n)
		}
	}
	if p.at(tokElse) {
		p.leaf(n)
		p.parseControlBody(n)
	}
}

func (p *parser) parseWhen(parent grammar.NodeID) {
	n := p.node(ruleWhenExpr, parent)
	p.leaf(n)
	if p.at(tokLParen) {
		p.leaf(n)
		p.parseExpression(n)
		if p.at(tokRParen) {
			p.leaf(n)
		}
	}
	if !p.at(tokLBrace) {
		return
	}
	w := p.node(ruleWhenBlock, n)
	p.leaf(w)
	for !p.eof() && !p.at(tokRBrace) {
		switch {
		case p.at(tokNewline) || p.at(tokSemicolon) || p.trivia():
			p.leaf(w)
		default:
			p.parseWhenBranch(w)
		}
	}
	if p.at(tokRBrace) {
		p.leaf(w)
	}
}

func (p *parser) parseWhenBranch(parent grammar.NodeID) {
	n := p.node(ruleWhenBranch, parent)
	switch {
	case p.at(tokElse):
		p.leaf(n)
	case p.exprStart():
		p.parseExpression(n)
	default:
		p.errorToken(n)
		return
	}
	if p.at(tokArrow) {
		p.leaf(n)
		p.parseControlBody(n)
	}
}

// errorToken wraps one unexpected token so the tree stays connected.
func (p *parser) errorToken(parent grammar.NodeID) {
	n := p.node(ruleError, parent)
	p.leaf(n)
}

// exprStart reports whether the current token can begin an expression.
func (p *parser) exprStart() bool {
	if p.eof() {
		return false
	}
	switch p.cur().Type {
	case tokIdentifier, tokLParen, tokQuoteOpen, tokTripleQuoteOpen,
		tokIf, tokWhen, tokExcl, tokSub, tokAdd, tokIncr, tokDecr:
		return true
	}
	return p.literal()
}

func (p *parser) literal() bool {
	if p.eof() {
		return false
	}
	switch p.cur().Type {
	case tokBinLiteral, tokBooleanLiteral, tokCharacterLiteral,
		tokDoubleLiteral, tokHexLiteral, tokIntegerLiteral,
		tokLongLiteral, tokNullLiteral, tokRealLiteral:
		return true
	}
	return false
}

func (p *parser) binaryOp() bool {
	if p.eof() {
		return false
	}
	switch p.cur().Type {
	case tokAdd, tokSub, tokMult, tokDiv, tokMod, tokConj, tokDisj,
		tokEqEq, tokNotEq, tokLess, tokGreater, tokLessEq, tokGreaterEq,
		tokRange, tokElvis, tokIn, tokNotIn, tokIs, tokNotIs:
		return true
	}
	return false
}

// trivia reports whether the current token is a comment or label.
func (p *parser) trivia() bool {
	if p.eof() {
		return false
	}
	switch p.cur().Type {
	case tokLineComment, tokBlockComment, tokLabelDefinition, tokLabelReference:
		return true
	}
	return false
}

// nextMeaningful peeks past newlines and trivia without consuming.
func (p *parser) nextMeaningful() grammar.TokenType {
	for i := p.pos; i < len(p.toks); i++ {
		switch p.toks[i].Type {
		case tokNewline, tokLineComment, tokBlockComment:
			continue
		}
		return p.toks[i].Type
	}
	return grammar.NoTokenType
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
