package structurizr

import "github.com/ciarant/structurizr-completion/grammar"

// Grammar rules. Parse-tree nodes carry these IDs too, so the tree and the
// candidate collector talk about the same rules.
const (
	ruleFile grammar.RuleID = iota
	ruleFileItem
	ruleWorkspaceDecl
	ruleWorkspaceBlock
	ruleWorkspaceItem
	ruleModelDecl
	ruleModelBlock
	ruleModelItem
	ruleViewsDecl
	ruleViewsBlock
	ruleViewsItem
	ruleElementDecl
	ruleElementKind
	ruleElementBlock
	ruleElementItem
	ruleRelationship
	ruleViewDirective
	ruleProperty
	ruleError
)

// ignoredTokens is the ignore-set: always syntactically viable, never worth
// suggesting. The collector drops them and the translator treats a caret on
// one as having typed nothing.
var ignoredTokens = grammar.NewTokenSet(tokNewline)

var grammarTable = buildGrammar()

func buildGrammar() *grammar.Grammar {
	b := grammar.NewBuilder()
	b.Rule(ruleFile, "file",
		grammar.Alt(grammar.Star(grammar.R(ruleFileItem))))
	b.Rule(ruleFileItem, "fileItem",
		lineAlts(grammar.R(ruleWorkspaceDecl))...)
	b.Rule(ruleWorkspaceDecl, "workspaceDecl",
		grammar.Alt(grammar.T(tokWorkspace), grammar.Opt(grammar.T(tokString)), grammar.Opt(grammar.T(tokString)), grammar.R(ruleWorkspaceBlock)))
	b.Rule(ruleWorkspaceBlock, "workspaceBlock",
		grammar.Alt(grammar.T(tokLBrace), grammar.Star(grammar.R(ruleWorkspaceItem)), grammar.T(tokRBrace)))
	b.Rule(ruleWorkspaceItem, "workspaceItem",
		lineAlts(grammar.R(ruleModelDecl), grammar.R(ruleViewsDecl), grammar.R(ruleProperty))...)
	b.Rule(ruleModelDecl, "modelDecl",
		grammar.Alt(grammar.T(tokModel), grammar.R(ruleModelBlock)))
	b.Rule(ruleModelBlock, "modelBlock",
		grammar.Alt(grammar.T(tokLBrace), grammar.Star(grammar.R(ruleModelItem)), grammar.T(tokRBrace)))
	b.Rule(ruleModelItem, "modelItem",
		lineAlts(grammar.R(ruleElementDecl), grammar.R(ruleRelationship))...)
	b.Rule(ruleViewsDecl, "viewsDecl",
		grammar.Alt(grammar.T(tokViews), grammar.R(ruleViewsBlock)))
	b.Rule(ruleViewsBlock, "viewsBlock",
		grammar.Alt(grammar.T(tokLBrace), grammar.Star(grammar.R(ruleViewsItem)), grammar.T(tokRBrace)))
	b.Rule(ruleViewsItem, "viewsItem",
		lineAlts(grammar.R(ruleViewDirective), grammar.R(ruleProperty))...)
	b.Rule(ruleElementDecl, "elementDecl",
		grammar.Alt(grammar.T(tokIdentifier), grammar.T(tokAssign), grammar.R(ruleElementKind),
			grammar.Opt(grammar.T(tokString)), grammar.Opt(grammar.T(tokString)), grammar.Opt(grammar.T(tokString)),
			grammar.Opt(grammar.R(ruleElementBlock))),
		grammar.Alt(grammar.R(ruleElementKind),
			grammar.Opt(grammar.T(tokString)), grammar.Opt(grammar.T(tokString)), grammar.Opt(grammar.T(tokString)),
			grammar.Opt(grammar.R(ruleElementBlock))))
	b.Rule(ruleElementKind, "elementKind",
		grammar.Alt(grammar.T(tokPerson)),
		grammar.Alt(grammar.T(tokSystem)),
		grammar.Alt(grammar.T(tokContainer)),
		grammar.Alt(grammar.T(tokComponent)),
		grammar.Alt(grammar.T(tokDeployment)))
	b.Rule(ruleElementBlock, "elementBlock",
		grammar.Alt(grammar.T(tokLBrace), grammar.Star(grammar.R(ruleElementItem)), grammar.T(tokRBrace)))
	b.Rule(ruleElementItem, "elementItem",
		lineAlts(grammar.R(ruleElementDecl), grammar.R(ruleRelationship), grammar.R(ruleProperty))...)
	b.Rule(ruleRelationship, "relationship",
		grammar.Alt(grammar.T(tokIdentifier), grammar.T(tokArrow), grammar.T(tokIdentifier),
			grammar.Opt(grammar.T(tokString)), grammar.Opt(grammar.T(tokString))))
	b.Rule(ruleViewDirective, "viewDirective",
		grammar.Alt(grammar.T(tokInclude), grammar.T(tokIdentifier)),
		grammar.Alt(grammar.T(tokExclude), grammar.T(tokIdentifier)),
		grammar.Alt(grammar.T(tokAutolayout)),
		grammar.Alt(grammar.T(tokTheme), grammar.T(tokString)),
		grammar.Alt(grammar.T(tokStyles), grammar.R(ruleElementBlock)))
	b.Rule(ruleProperty, "property",
		grammar.Alt(grammar.T(tokTags), grammar.T(tokString)),
		grammar.Alt(grammar.T(tokDescription), grammar.T(tokString)))
	b.Rule(ruleError, "error")
	return b.Build(ruleFile)
}

// lineAlts builds the alternatives of a line-shaped rule: each statement with
// and without its terminating newline, plus the blank line.
func lineAlts(stmts ...grammar.Element) [][]grammar.Element {
	alts := make([][]grammar.Element, 0, 2*len(stmts)+1)
	for _, s := range stmts {
		alts = append(alts, grammar.Alt(s, grammar.T(tokNewline)), grammar.Alt(s))
	}
	return append(alts, grammar.Alt(grammar.T(tokNewline)))
}
