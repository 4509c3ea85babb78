package kotlin

import "github.com/ciarant/structurizr-completion/grammar"

// Token types. The order matters: every punctuation and operator token sits
// below tokFirstKeyword, and the ignore-set is built from that boundary.
const (
	tokLParen grammar.TokenType = iota
	tokRParen
	tokLBrace
	tokRBrace
	tokLBracket
	tokRBracket
	tokDot
	tokComma
	tokColon
	tokSemicolon
	tokArrow
	tokAssign
	tokAdd
	tokSub
	tokMult
	tokDiv
	tokMod
	tokIncr
	tokDecr
	tokConj
	tokDisj
	tokExcl
	tokEqEq
	tokNotEq
	tokLess
	tokGreater
	tokLessEq
	tokGreaterEq
	tokRange
	tokElvis
	tokQuest
	tokNewline

	// Keywords.
	tokPackage
	tokImport
	tokFun
	tokVal
	tokVar
	tokIf
	tokElse
	tokWhen
	tokFor
	tokWhile
	tokDo
	tokReturn
	tokBreak
	tokContinue
	tokIn
	tokIs
	tokObject
	tokNotIn
	tokNotIs

	// Literals.
	tokBinLiteral
	tokBooleanLiteral
	tokCharacterLiteral
	tokDoubleLiteral
	tokHexLiteral
	tokIntegerLiteral
	tokLongLiteral
	tokNullLiteral
	tokRealLiteral

	tokIdentifier

	// Trivia and string pieces.
	tokLineComment
	tokBlockComment
	tokQuoteOpen
	tokQuoteClose
	tokTripleQuoteOpen
	tokTripleQuoteClose
	tokStringText
	tokLabelDefinition
	tokLabelReference
)

// tokFirstKeyword is the boundary between operators and keywords.
const tokFirstKeyword = tokPackage

var keywords = map[string]grammar.TokenType{
	"package":  tokPackage,
	"import":   tokImport,
	"fun":      tokFun,
	"val":      tokVal,
	"var":      tokVar,
	"if":       tokIf,
	"else":     tokElse,
	"when":     tokWhen,
	"for":      tokFor,
	"while":    tokWhile,
	"do":       tokDo,
	"return":   tokReturn,
	"break":    tokBreak,
	"continue": tokContinue,
	"in":       tokIn,
	"is":       tokIs,
	"object":   tokObject,
}

// renderTable overrides the suggestion text of tokens whose lowercased
// symbolic name is not what the user types. Everything absent renders as the
// lowercased symbolic name.
var renderTable = map[grammar.TokenType]string{
	tokNotIn: "!in",
	tokNotIs: "!is",
}

var vocab = grammar.NewVocabulary(symbolicNames(), literalNames())

func symbolicNames() map[grammar.TokenType]string {
	names := map[grammar.TokenType]string{
		tokNewline:          "Newline",
		tokPackage:          "Package",
		tokImport:           "Import",
		tokFun:              "Fun",
		tokVal:              "Val",
		tokVar:              "Var",
		tokIf:               "If",
		tokElse:             "Else",
		tokWhen:             "When",
		tokFor:              "For",
		tokWhile:            "While",
		tokDo:               "Do",
		tokReturn:           "Return",
		tokBreak:            "Break",
		tokContinue:         "Continue",
		tokIn:               "In",
		tokIs:               "Is",
		tokObject:           "Object",
		tokNotIn:            "NotIn",
		tokNotIs:            "NotIs",
		tokBinLiteral:       "BinLiteral",
		tokBooleanLiteral:   "BooleanLiteral",
		tokCharacterLiteral: "CharacterLiteral",
		tokDoubleLiteral:    "DoubleLiteral",
		tokHexLiteral:       "HexLiteral",
		tokIntegerLiteral:   "IntegerLiteral",
		tokLongLiteral:      "LongLiteral",
		tokNullLiteral:      "NullLiteral",
		tokRealLiteral:      "RealLiteral",
		tokIdentifier:       "Identifier",
		tokLineComment:      "LineComment",
		tokBlockComment:     "BlockComment",
		tokQuoteOpen:        "QuoteOpen",
		tokQuoteClose:       "QuoteClose",
		tokTripleQuoteOpen:  "TripleQuoteOpen",
		tokTripleQuoteClose: "TripleQuoteClose",
		tokLabelDefinition:  "LabelDefinition",
		tokLabelReference:   "LabelReference",
	}
	return names
}

func literalNames() map[grammar.TokenType]string {
	lits := map[grammar.TokenType]string{
		tokLParen:           "(",
		tokRParen:           ")",
		tokLBrace:           "{",
		tokRBrace:           "}",
		tokLBracket:         "[",
		tokRBracket:         "]",
		tokDot:              ".",
		tokComma:            ",",
		tokColon:            ":",
		tokSemicolon:        ";",
		tokArrow:            "->",
		tokAssign:           "=",
		tokAdd:              "+",
		tokSub:              "-",
		tokMult:             "*",
		tokDiv:              "/",
		tokMod:              "%",
		tokIncr:             "++",
		tokDecr:             "--",
		tokConj:             "&&",
		tokDisj:             "||",
		tokExcl:             "!",
		tokEqEq:             "==",
		tokNotEq:            "!=",
		tokLess:             "<",
		tokGreater:          ">",
		tokLessEq:           "<=",
		tokGreaterEq:        ">=",
		tokRange:            "..",
		tokElvis:            "?:",
		tokQuest:            "?",
		tokNotIn:            "!in",
		tokNotIs:            "!is",
		tokNullLiteral:      "null",
		tokQuoteOpen:        `"`,
		tokQuoteClose:       `"`,
		tokTripleQuoteOpen:  `"""`,
		tokTripleQuoteClose: `"""`,
	}
	for word, tt := range keywords {
		lits[tt] = word
	}
	return lits
}
