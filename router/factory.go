package router

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/gintechsystems/wellrested/httperror"
)

// defaultVariablePattern matches a URL-safe slug: one or more letters,
// digits, hyphens, or underscores.
const defaultVariablePattern = `[0-9A-Za-z_\-]+`

var templateVarName = regexp.MustCompile(`^[A-Za-z_][0-9A-Za-z_]*$`)

// AddOption configures a single route registration.
type AddOption func(*addConfig)

type addConfig struct {
	methods    string
	hasMethods bool

	varPatterns map[string]string
}

// WithMethods restricts the registration to the given HTTP verbs. Each
// entry may itself be a comma-separated list; at least one verb is
// required. Registrations of the same target with different methods
// accumulate onto one route.
func WithMethods(methods ...string) AddOption {
	return func(cfg *addConfig) {
		cfg.methods = strings.Join(methods, ",")
		cfg.hasMethods = true
	}
}

// WithVariablePattern overrides the matching pattern for a template
// variable. Without an override, variables match defaultVariablePattern.
func WithVariablePattern(name, pattern string) AddOption {
	return func(cfg *addConfig) {
		if cfg.varPatterns == nil {
			cfg.varPatterns = make(map[string]string)
		}
		cfg.varPatterns[name] = pattern
	}
}

// newRoute classifies a target and builds a Route with its matcher
// compiled. The dispatchable is attached by RouteTable.Add.
func newRoute(target string, varPatterns map[string]string) (*Route, error) {
	kind := classify(target)
	rt := &Route{target: target, kind: kind}

	switch kind {
	case KindPrefix:
		rt.prefix = strings.TrimSuffix(target, "*")
	case KindTemplate:
		matcher, err := compileTemplate(target, varPatterns)
		if err != nil {
			return nil, err
		}
		rt.matcher = matcher
	case KindPattern:
		matcher, err := compilePattern(target)
		if err != nil {
			return nil, err
		}
		rt.matcher = matcher
	}

	return rt, nil
}

// classify determines the route kind from the target's syntax, in
// precedence order: delimited pattern, trailing-star prefix, template
// expression, static.
func classify(target string) Kind {
	switch {
	case isDelimitedPattern(target):
		return KindPattern
	case strings.HasSuffix(target, "*"):
		return KindPrefix
	case strings.Contains(target, "{"):
		return KindTemplate
	default:
		return KindStatic
	}
}

// isDelimitedPattern reports whether target is wrapped in a pair of
// regex delimiters. A delimiter is a single non-alphanumeric byte used
// at both ends; bytes that occur in path and template syntax cannot
// delimit.
func isDelimitedPattern(target string) bool {
	if len(target) < 2 {
		return false
	}
	d := target[0]
	if target[len(target)-1] != d {
		return false
	}
	if d >= '0' && d <= '9' || d >= 'a' && d <= 'z' || d >= 'A' && d <= 'Z' {
		return false
	}
	switch d {
	case '/', '{', '}', '*', '\\':
		return false
	}
	return true
}

// compilePattern compiles a delimited regex target, anchored at both
// ends so that only full-path matches count.
func compilePattern(target string) (*regexp.Regexp, error) {
	source := target[1 : len(target)-1]
	matcher, err := regexp.Compile("^(?:" + source + ")$")
	if err != nil {
		return nil, httperror.NewTargetError(target, err.Error())
	}
	return matcher, nil
}

// compileTemplate builds an anchored regex for a URI template by
// splitting on /, quoting literal segments, and substituting each
// {name} with a named capture group.
func compileTemplate(target string, varPatterns map[string]string) (*regexp.Regexp, error) {
	var b strings.Builder
	b.WriteString("^")

	for i, seg := range strings.Split(target, "/") {
		if i > 0 {
			b.WriteByte('/')
		}
		if err := writeTemplateSegment(&b, target, seg, varPatterns); err != nil {
			return nil, err
		}
	}

	b.WriteString("$")

	matcher, err := regexp.Compile(b.String())
	if err != nil {
		return nil, httperror.NewTargetError(target, err.Error())
	}
	return matcher, nil
}

func writeTemplateSegment(b *strings.Builder, target, seg string, varPatterns map[string]string) error {
	var wroteVar bool
	for len(seg) > 0 {
		open := strings.IndexByte(seg, '{')
		if open < 0 {
			b.WriteString(regexp.QuoteMeta(seg))
			return nil
		}
		if wroteVar {
			return httperror.NewTargetError(target, "more than one variable in segment")
		}
		b.WriteString(regexp.QuoteMeta(seg[:open]))

		rest := seg[open+1:]
		end := strings.IndexByte(rest, '}')
		if end < 0 {
			return httperror.NewTargetError(target, "unterminated variable expression")
		}
		expr := rest[:end]

		if strings.Contains(expr, ",") {
			return httperror.NewTargetError(target,
				fmt.Sprintf("more than one variable in expression {%s}", expr))
		}
		if !templateVarName.MatchString(expr) {
			return httperror.NewTargetError(target,
				fmt.Sprintf("malformed variable name %q", expr))
		}

		pattern := varPatterns[expr]
		if pattern == "" {
			pattern = defaultVariablePattern
		}
		b.WriteString("(?P<")
		b.WriteString(expr)
		b.WriteString(">")
		b.WriteString(pattern)
		b.WriteString(")")

		wroteVar = true
		seg = rest[end+1:]
	}
	return nil
}
