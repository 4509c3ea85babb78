package kotlin

import "github.com/ciarant/structurizr-completion/grammar"

// Grammar rules. Parse-tree nodes carry these IDs too, so the tree and the
// candidate collector talk about the same rules.
const (
	ruleScript grammar.RuleID = iota
	ruleScriptItem
	ruleStatement
	rulePropertyDecl
	ruleTypeAnnot
	ruleInit
	ruleFunctionDecl
	ruleFunctionBody
	ruleParamList
	ruleParamTail
	ruleParameter
	ruleType
	ruleBlock
	ruleAssignment
	ruleWhileStmt
	ruleDoWhileStmt
	ruleForStmt
	ruleJumpStmt
	rulePackageHeader
	ruleImportHeader
	ruleDottedName
	ruleDottedTail
	ruleExpression
	ruleDisjunction
	ruleDisjTail
	ruleConjunction
	ruleConjTail
	ruleEquality
	ruleEqTail
	ruleComparison
	ruleCompTail
	ruleInfixOperation
	ruleInfixTail
	ruleRangeExpr
	ruleRangeTail
	ruleAdditive
	ruleAddTail
	ruleMultiplicative
	ruleMultTail
	rulePrefixUnary
	rulePrefixOp
	rulePostfixUnary
	rulePostfixSuffix
	ruleCallSuffix
	ruleArgList
	ruleArgTail
	ruleSuggestArgument
	ruleNavSuffix
	ruleIndexSuffix
	rulePrimary
	ruleVariableRead
	ruleLiteral
	ruleStringLiteral
	ruleParenExpr
	ruleIfExpr
	ruleElseClause
	ruleWhenExpr
	ruleWhenSubject
	ruleWhenBlock
	ruleWhenItem
	ruleWhenBranch
	ruleControlBody
	ruleError
)

// preferredRules are reported as rule matches instead of being descended
// into. Both mark positions where identifiers make sense.
var preferredRules = grammar.NewRuleSet(ruleVariableRead, ruleSuggestArgument)

// ignoredTokens is the ignore-set: every token below the first keyword, plus
// literals, comments, string pieces and labels.
var ignoredTokens = buildIgnoredTokens()

func buildIgnoredTokens() grammar.TokenSet {
	s := grammar.TokenSet{}
	for tt := grammar.TokenType(0); tt < tokFirstKeyword; tt++ {
		s[tt] = true
	}
	for _, tt := range []grammar.TokenType{
		tokBinLiteral, tokBooleanLiteral, tokCharacterLiteral,
		tokDoubleLiteral, tokHexLiteral, tokIntegerLiteral,
		tokLongLiteral, tokNullLiteral, tokRealLiteral,
		tokLineComment, tokBlockComment,
		tokQuoteOpen, tokQuoteClose, tokTripleQuoteOpen, tokTripleQuoteClose,
		tokStringText,
		tokLabelDefinition, tokLabelReference,
	} {
		s[tt] = true
	}
	return s
}

var grammarTable = buildGrammar()

func buildGrammar() *grammar.Grammar {
	T, R, opt, star, alt := grammar.T, grammar.R, grammar.Opt, grammar.Star, grammar.Alt
	b := grammar.NewBuilder()
	b.Rule(ruleScript, "script", alt(star(R(ruleScriptItem))))
	b.Rule(ruleScriptItem, "scriptItem",
		alt(R(ruleStatement), T(tokNewline)),
		alt(R(ruleStatement), T(tokSemicolon)),
		alt(R(ruleStatement)),
		alt(T(tokNewline)),
		alt(T(tokSemicolon)))
	b.Rule(ruleStatement, "statement",
		alt(R(rulePropertyDecl)),
		alt(R(ruleFunctionDecl)),
		alt(R(ruleWhileStmt)),
		alt(R(ruleDoWhileStmt)),
		alt(R(ruleForStmt)),
		alt(R(ruleJumpStmt)),
		alt(R(rulePackageHeader)),
		alt(R(ruleImportHeader)),
		alt(R(ruleAssignment)),
		alt(R(ruleBlock)),
		alt(R(ruleExpression)))
	// The initializer is spelled per alternative rather than wrapped in an
	// optional so that "val x = " does not look complete to the collector.
	b.Rule(rulePropertyDecl, "propertyDecl",
		append(declAlts(tokVal), declAlts(tokVar)...)...)
	b.Rule(ruleTypeAnnot, "typeAnnot", alt(T(tokColon), R(ruleType)))
	b.Rule(ruleInit, "init", alt(T(tokAssign), R(ruleExpression)))
	b.Rule(ruleFunctionDecl, "functionDecl",
		alt(T(tokFun), T(tokIdentifier), T(tokLParen), opt(R(ruleParamList)), T(tokRParen),
			opt(R(ruleTypeAnnot)), opt(R(ruleFunctionBody))))
	b.Rule(ruleFunctionBody, "functionBody",
		alt(R(ruleBlock)),
		alt(T(tokAssign), R(ruleExpression)))
	b.Rule(ruleParamList, "paramList", alt(R(ruleParameter), star(R(ruleParamTail))))
	b.Rule(ruleParamTail, "paramTail", alt(T(tokComma), R(ruleParameter)))
	b.Rule(ruleParameter, "parameter", alt(T(tokIdentifier), opt(R(ruleTypeAnnot))))
	b.Rule(ruleType, "type", alt(T(tokIdentifier), opt(T(tokQuest))))
	b.Rule(ruleBlock, "block",
		alt(T(tokLBrace), star(R(ruleScriptItem)), T(tokRBrace)))
	b.Rule(ruleAssignment, "assignment",
		alt(T(tokIdentifier), T(tokAssign), R(ruleExpression)))
	b.Rule(ruleWhileStmt, "whileStmt",
		alt(T(tokWhile), T(tokLParen), R(ruleExpression), T(tokRParen), R(ruleControlBody)))
	b.Rule(ruleDoWhileStmt, "doWhileStmt",
		alt(T(tokDo), R(ruleControlBody), T(tokWhile), T(tokLParen), R(ruleExpression), T(tokRParen)))
	b.Rule(ruleForStmt, "forStmt",
		alt(T(tokFor), T(tokLParen), T(tokIdentifier), T(tokIn), R(ruleExpression), T(tokRParen), R(ruleControlBody)))
	b.Rule(ruleJumpStmt, "jumpStmt",
		alt(T(tokReturn), opt(R(ruleExpression))),
		alt(T(tokBreak)),
		alt(T(tokContinue)))
	b.Rule(rulePackageHeader, "packageHeader", alt(T(tokPackage), R(ruleDottedName)))
	b.Rule(ruleImportHeader, "importHeader", alt(T(tokImport), R(ruleDottedName)))
	b.Rule(ruleDottedName, "dottedName", alt(T(tokIdentifier), star(R(ruleDottedTail))))
	b.Rule(ruleDottedTail, "dottedTail", alt(T(tokDot), T(tokIdentifier)))
	b.Rule(ruleExpression, "expression", alt(R(ruleDisjunction)))
	b.Rule(ruleDisjunction, "disjunction", alt(R(ruleConjunction), star(R(ruleDisjTail))))
	b.Rule(ruleDisjTail, "disjTail", alt(T(tokDisj), R(ruleConjunction)))
	b.Rule(ruleConjunction, "conjunction", alt(R(ruleEquality), star(R(ruleConjTail))))
	b.Rule(ruleConjTail, "conjTail", alt(T(tokConj), R(ruleEquality)))
	b.Rule(ruleEquality, "equality", alt(R(ruleComparison), star(R(ruleEqTail))))
	b.Rule(ruleEqTail, "eqTail",
		alt(T(tokEqEq), R(ruleComparison)),
		alt(T(tokNotEq), R(ruleComparison)))
	b.Rule(ruleComparison, "comparison", alt(R(ruleInfixOperation), star(R(ruleCompTail))))
	b.Rule(ruleCompTail, "compTail",
		alt(T(tokLess), R(ruleInfixOperation)),
		alt(T(tokGreater), R(ruleInfixOperation)),
		alt(T(tokLessEq), R(ruleInfixOperation)),
		alt(T(tokGreaterEq), R(ruleInfixOperation)))
	b.Rule(ruleInfixOperation, "infixOperation", alt(R(ruleRangeExpr), star(R(ruleInfixTail))))
	b.Rule(ruleInfixTail, "infixTail",
		alt(T(tokIn), R(ruleRangeExpr)),
		alt(T(tokNotIn), R(ruleRangeExpr)),
		alt(T(tokIs), R(ruleType)),
		alt(T(tokNotIs), R(ruleType)))
	b.Rule(ruleRangeExpr, "rangeExpr", alt(R(ruleAdditive), star(R(ruleRangeTail))))
	b.Rule(ruleRangeTail, "rangeTail",
		alt(T(tokRange), R(ruleAdditive)),
		alt(T(tokElvis), R(ruleAdditive)))
	b.Rule(ruleAdditive, "additive", alt(R(ruleMultiplicative), star(R(ruleAddTail))))
	b.Rule(ruleAddTail, "addTail",
		alt(T(tokAdd), R(ruleMultiplicative)),
		alt(T(tokSub), R(ruleMultiplicative)))
	b.Rule(ruleMultiplicative, "multiplicative", alt(R(rulePrefixUnary), star(R(ruleMultTail))))
	b.Rule(ruleMultTail, "multTail",
		alt(T(tokMult), R(rulePrefixUnary)),
		alt(T(tokDiv), R(rulePrefixUnary)),
		alt(T(tokMod), R(rulePrefixUnary)))
	b.Rule(rulePrefixUnary, "prefixUnary", alt(star(R(rulePrefixOp)), R(rulePostfixUnary)))
	b.Rule(rulePrefixOp, "prefixOp",
		alt(T(tokExcl)),
		alt(T(tokSub)),
		alt(T(tokAdd)),
		alt(T(tokIncr)),
		alt(T(tokDecr)))
	b.Rule(rulePostfixUnary, "postfixUnary", alt(R(rulePrimary), star(R(rulePostfixSuffix))))
	b.Rule(rulePostfixSuffix, "postfixSuffix",
		alt(R(ruleCallSuffix)),
		alt(R(ruleNavSuffix)),
		alt(R(ruleIndexSuffix)),
		alt(T(tokIncr)),
		alt(T(tokDecr)))
	b.Rule(ruleCallSuffix, "callSuffix",
		alt(T(tokLParen), opt(R(ruleArgList)), T(tokRParen)))
	b.Rule(ruleArgList, "argList", alt(R(ruleSuggestArgument), star(R(ruleArgTail))))
	b.Rule(ruleArgTail, "argTail", alt(T(tokComma), R(ruleSuggestArgument)))
	b.Rule(ruleSuggestArgument, "suggestArgument", alt(R(ruleExpression)))
	b.Rule(ruleNavSuffix, "navSuffix", alt(T(tokDot), T(tokIdentifier)))
	b.Rule(ruleIndexSuffix, "indexSuffix",
		alt(T(tokLBracket), R(ruleExpression), T(tokRBracket)))
	b.Rule(rulePrimary, "primary",
		alt(R(ruleVariableRead)),
		alt(R(ruleLiteral)),
		alt(R(ruleStringLiteral)),
		alt(R(ruleParenExpr)),
		alt(R(ruleIfExpr)),
		alt(R(ruleWhenExpr)))
	b.Rule(ruleVariableRead, "variableRead", alt(T(tokIdentifier)))
	b.Rule(ruleLiteral, "literal",
		alt(T(tokBinLiteral)),
		alt(T(tokBooleanLiteral)),
		alt(T(tokCharacterLiteral)),
		alt(T(tokDoubleLiteral)),
		alt(T(tokHexLiteral)),
		alt(T(tokIntegerLiteral)),
		alt(T(tokLongLiteral)),
		alt(T(tokNullLiteral)),
		alt(T(tokRealLiteral)))
	b.Rule(ruleStringLiteral, "stringLiteral",
		alt(T(tokQuoteOpen), opt(T(tokStringText)), T(tokQuoteClose)),
		alt(T(tokTripleQuoteOpen), opt(T(tokStringText)), T(tokTripleQuoteClose)))
	b.Rule(ruleParenExpr, "parenExpr",
		alt(T(tokLParen), R(ruleExpression), T(tokRParen)))
	b.Rule(ruleIfExpr, "ifExpr",
		alt(T(tokIf), T(tokLParen), R(ruleExpression), T(tokRParen), R(ruleControlBody), opt(R(ruleElseClause))))
	b.Rule(ruleElseClause, "elseClause", alt(T(tokElse), R(ruleControlBody)))
	b.Rule(ruleWhenExpr, "whenExpr",
		alt(T(tokWhen), opt(R(ruleWhenSubject)), R(ruleWhenBlock)))
	b.Rule(ruleWhenSubject, "whenSubject",
		alt(T(tokLParen), R(ruleExpression), T(tokRParen)))
	b.Rule(ruleWhenBlock, "whenBlock",
		alt(T(tokLBrace), star(R(ruleWhenItem)), T(tokRBrace)))
	b.Rule(ruleWhenItem, "whenItem",
		alt(R(ruleWhenBranch), T(tokNewline)),
		alt(R(ruleWhenBranch)),
		alt(T(tokNewline)),
		alt(T(tokSemicolon)))
	b.Rule(ruleWhenBranch, "whenBranch",
		alt(R(ruleExpression), T(tokArrow), R(ruleControlBody)),
		alt(T(tokElse), T(tokArrow), R(ruleControlBody)))
	b.Rule(ruleControlBody, "controlBody",
		alt(R(ruleBlock)),
		alt(R(ruleExpression)))
	b.Rule(ruleError, "error")
	return b.Build(ruleScript)
}

// declAlts spells out the val/var declaration shapes for one keyword.
func declAlts(kw grammar.TokenType) [][]grammar.Element {
	T, R, alt := grammar.T, grammar.R, grammar.Alt
	return [][]grammar.Element{
		alt(T(kw), T(tokIdentifier), R(ruleTypeAnnot), R(ruleInit)),
		alt(T(kw), T(tokIdentifier), R(ruleTypeAnnot)),
		alt(T(kw), T(tokIdentifier), R(ruleInit)),
		alt(T(kw), T(tokIdentifier)),
	}
}
