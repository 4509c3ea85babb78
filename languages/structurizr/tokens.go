package structurizr

import "github.com/ciarant/structurizr-completion/grammar"

// Token types. Punctuation comes first and carries no symbolic name, so the
// vocabulary never turns it into a suggestion. Keywords follow; their
// lowercased symbolic names are exactly the concrete spellings.
const (
	tokLBrace grammar.TokenType = iota
	tokRBrace
	tokAssign
	tokArrow
	tokNewline
	tokString
	tokIdentifier
	tokWorkspace
	tokModel
	tokViews
	tokPerson
	tokSystem
	tokContainer
	tokComponent
	tokDeployment
	tokStyles
	tokTheme
	tokAutolayout
	tokInclude
	tokExclude
	tokTags
	tokDescription
)

// keywords maps spellings to token types. Lookup is done on the lowercased
// word, so keywords are case-insensitive in the source.
var keywords = map[string]grammar.TokenType{
	"workspace":   tokWorkspace,
	"model":       tokModel,
	"views":       tokViews,
	"person":      tokPerson,
	"system":      tokSystem,
	"container":   tokContainer,
	"component":   tokComponent,
	"deployment":  tokDeployment,
	"styles":      tokStyles,
	"theme":       tokTheme,
	"autolayout":  tokAutolayout,
	"include":     tokInclude,
	"exclude":     tokExclude,
	"tags":        tokTags,
	"description": tokDescription,
}

var vocab = grammar.NewVocabulary(
	map[grammar.TokenType]string{
		tokNewline:     "Newline",
		tokString:      "String",
		tokIdentifier:  "Identifier",
		tokWorkspace:   "Workspace",
		tokModel:       "Model",
		tokViews:       "Views",
		tokPerson:      "Person",
		tokSystem:      "System",
		tokContainer:   "Container",
		tokComponent:   "Component",
		tokDeployment:  "Deployment",
		tokStyles:      "Styles",
		tokTheme:       "Theme",
		tokAutolayout:  "Autolayout",
		tokInclude:     "Include",
		tokExclude:     "Exclude",
		tokTags:        "Tags",
		tokDescription: "Description",
	},
	literalNames(),
)

func literalNames() map[grammar.TokenType]string {
	lits := map[grammar.TokenType]string{
		tokLBrace: "{",
		tokRBrace: "}",
		tokAssign: "=",
		tokArrow:  "->",
	}
	for word, tt := range keywords {
		lits[tt] = word
	}
	return lits
}
