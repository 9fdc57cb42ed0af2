package project

import (
	"regexp"
	"strings"

	"github.com/lunarepo/lunar/internal/errors"
	"github.com/lunarepo/lunar/internal/logging"
)

// ResolverContext is the task field category a token appears in. It gates
// which token functions are legal: args and inputs permit all of them,
// outputs permit none (output paths must be literal).
type ResolverContext int

const (
	// ContextArgs resolves task argument entries.
	ContextArgs ResolverContext = iota
	// ContextInputs resolves task input entries.
	ContextInputs
	// ContextOutputs resolves task output entries.
	ContextOutputs
)

// Label returns the context's name as used in error messages.
func (c ResolverContext) Label() string {
	switch c {
	case ContextArgs:
		return "args"
	case ContextInputs:
		return "inputs"
	case ContextOutputs:
		return "outputs"
	}
	return "unknown"
}

// tokenKind is the closed set of token functions.
type tokenKind int

const (
	tokenDirs tokenKind = iota
	tokenFiles
	tokenGlobs
	tokenRoot
)

// label returns the function label used in error messages, e.g. "@dirs".
func (k tokenKind) label() string {
	switch k {
	case tokenDirs:
		return "@dirs"
	case tokenFiles:
		return "@files"
	case tokenGlobs:
		return "@globs"
	case tokenRoot:
		return "@root"
	}
	return "@unknown"
}

// token is one parsed @function(argument) occurrence.
type token struct {
	text  string // the literal token, e.g. "@dirs(static)"
	kind  tokenKind
	group string // the file group argument
}

// checkContext validates that the token's function is legal in the given
// context. Legality is a pure function of kind and context.
func (t token) checkContext(context ResolverContext) error {
	switch t.kind {
	case tokenDirs, tokenFiles, tokenGlobs, tokenRoot:
		if context == ContextArgs || context == ContextInputs {
			return nil
		}
	}
	return errors.NewInvalidTokenContext(t.kind.label(), context.Label())
}

// tokenFuncPattern matches a token that is the entire field value.
// tokenFuncAnywherePattern detects a token embedded among other text.
var (
	tokenFuncPattern         = regexp.MustCompile(`^@([a-z]+)\(([0-9A-Za-z_-]+)\)$`)
	tokenFuncAnywherePattern = regexp.MustCompile(`@([a-z]+)\(([0-9A-Za-z_-]+)\)`)
)

// TokenResolver expands @function(argument) placeholders in task field
// values against a project's file groups. Resolution is synchronous and
// side-effect free aside from the read-only filesystem access inside the
// file group views.
type TokenResolver struct {
	fileGroups map[string]*FileGroup // nil for the outputs context
	context    ResolverContext
	logger     *logging.Logger
}

// ForArgs creates a resolver for task argument values.
func ForArgs(fileGroups map[string]*FileGroup, logger *logging.Logger) *TokenResolver {
	return &TokenResolver{fileGroups: fileGroups, context: ContextArgs, logger: logger}
}

// ForInputs creates a resolver for task input values.
func ForInputs(fileGroups map[string]*FileGroup, logger *logging.Logger) *TokenResolver {
	return &TokenResolver{fileGroups: fileGroups, context: ContextInputs, logger: logger}
}

// ForOutputs creates a resolver for task output values. No file group
// mapping is needed since outputs reject every token function.
func ForOutputs(logger *logging.Logger) *TokenResolver {
	return &TokenResolver{context: ContextOutputs, logger: logger}
}

// HasToken reports whether value contains token syntax at all.
func HasToken(value string) bool {
	return strings.ContainsAny(value, "@$")
}

// Resolve expands value into zero or more concrete strings. Values without
// token syntax pass through unchanged as a single-element list. A token that
// is the entire value fans out to one string per matched path. A token
// embedded among other text is intentionally not expanded: it logs a warning
// and yields an empty list, since token functions must be used as the whole
// field value.
func (r *TokenResolver) Resolve(value string) ([]string, error) {
	if !HasToken(value) {
		return []string{value}, nil
	}
	return r.replaceToken(value)
}

func (r *TokenResolver) replaceToken(value string) ([]string, error) {
	if strings.Contains(value, "@") {
		if matches := tokenFuncPattern.FindStringSubmatch(value); matches != nil {
			text, funcName, group := matches[0], matches[1], matches[2]

			if r.logger != nil {
				r.logger.Debug("resolving token", "token", text, "context", r.context.Label())
			}

			var kind tokenKind
			switch funcName {
			case "dirs":
				kind = tokenDirs
			case "files":
				kind = tokenFiles
			case "globs":
				kind = tokenGlobs
			case "root":
				kind = tokenRoot
			default:
				return nil, errors.NewUnknownTokenFunc(text)
			}

			return r.replaceFileGroupToken(value, token{text: text, kind: kind, group: group})
		}

		if tokenFuncAnywherePattern.MatchString(value) {
			if r.logger != nil {
				r.logger.Warn(
					"found a token function with other content; token functions must be used literally as the only value",
					"value", value,
				)
			}
		}
	}

	return []string{}, nil
}

// replaceFileGroupToken expands a file group token into one output string
// per matched path, substituting each path for the token text in the
// original value. The context check comes first: a token in the wrong
// context is a hard error regardless of whether the group exists.
func (r *TokenResolver) replaceFileGroupToken(value string, tok token) ([]string, error) {
	if err := tok.checkContext(r.context); err != nil {
		return nil, err
	}

	group, ok := r.fileGroups[tok.group]
	if !ok {
		return nil, errors.NewUnknownFileGroup(tok.text, tok.group)
	}

	var items []string
	var err error

	switch tok.kind {
	case tokenDirs:
		items, err = group.Dirs()
	case tokenFiles:
		items, err = group.Files()
	case tokenGlobs:
		items = group.Globs()
	case tokenRoot:
		var root string
		root, err = group.Root()
		items = []string{root}
	}
	if err != nil {
		return nil, err
	}

	results := make([]string, 0, len(items))
	for _, item := range items {
		results = append(results, strings.ReplaceAll(value, tok.text, item))
	}
	return results, nil
}
