// Package css scans stylesheets for colour declarations and rewrites the
// ones that fail their contrast target. Only flat `selector { ... }` rules
// are inspected; at-rules and nested blocks pass through untouched.
package css

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/jmylchreest/legible/internal/colour"
)

var (
	// ruleRe matches a flat qualified rule: selector text followed by a
	// brace-delimited declaration block.
	ruleRe = regexp.MustCompile(`(?s)([^{}@]+)\{([^{}]*)\}`)

	// declRe matches a colour-bearing declaration inside a block and
	// captures the property name and raw value. The leading guard keeps
	// properties like border-color from matching.
	declRe = regexp.MustCompile(`(?i)(?:^|[;\s])(color|background-color)\s*:\s*([^;}]+)`)

	// commentRe matches CSS comments, which are blanked out before
	// scanning so their content cannot masquerade as declarations.
	commentRe = regexp.MustCompile(`(?s)/\*.*?\*/`)
)

// Rule is one qualified rule with at least one colour declaration.
type Rule struct {
	// Selector is the rule's selector text, trimmed.
	Selector string
	// Line is the 1-based line the rule starts on.
	Line int
	// Text is the raw value of the color declaration, if present.
	Text string
	// Background is the raw value of the background-color declaration,
	// if present.
	Background string

	// Offsets of the color value within the source, for rewriting.
	textStart, textEnd int
}

// scrub blanks comments out of the stylesheet, keeping newlines so that
// offsets and line numbers stay aligned with the original source.
func scrub(src string) string {
	return commentRe.ReplaceAllStringFunc(src, func(m string) string {
		b := []byte(m)
		for i, c := range b {
			if c != '\n' {
				b[i] = ' '
			}
		}
		return string(b)
	})
}

// Extract returns every rule in the stylesheet that declares a colour.
func Extract(src string) []Rule {
	var rules []Rule
	s := scrub(src)

	for _, m := range ruleRe.FindAllStringSubmatchIndex(s, -1) {
		selStart, selEnd := m[2], m[3]
		bodyStart, bodyEnd := m[4], m[5]

		selector := strings.TrimSpace(s[selStart:selEnd])
		// The selector group can swallow trailing text of a previous
		// at-rule; keep only the last selector-looking line.
		if i := strings.LastIndexAny(selector, ";}"); i >= 0 {
			selector = strings.TrimSpace(selector[i+1:])
		}
		if selector == "" {
			continue
		}

		selOffset := selStart + strings.LastIndex(s[selStart:selEnd], selector)
		rule := Rule{
			Selector: selector,
			Line:     1 + strings.Count(s[:selOffset], "\n"),
		}

		body := s[bodyStart:bodyEnd]
		for _, dm := range declRe.FindAllStringSubmatchIndex(body, -1) {
			prop := strings.ToLower(body[dm[2]:dm[3]])
			value := strings.TrimSpace(body[dm[4]:dm[5]])

			switch prop {
			case "color":
				rule.Text = value
				rule.textStart = bodyStart + dm[4]
				rule.textEnd = bodyStart + dm[4] + len(strings.TrimRight(body[dm[4]:dm[5]], " \t\r\n"))
			case "background-color":
				rule.Background = value
			}
		}

		if rule.Text != "" || rule.Background != "" {
			rules = append(rules, rule)
		}
	}

	return rules
}

// FixOptions configure a stylesheet fix pass.
type FixOptions struct {
	// DefaultBackground is assumed for rules that declare a text colour
	// but no background-color. Defaults to white.
	DefaultBackground string
	// Tune is passed through to the engine.
	Tune colour.Options
}

// FixResult records the outcome for one scanned rule.
type FixResult struct {
	// Selector and Line locate the rule in the stylesheet.
	Selector string
	Line     int
	// Result is the engine's verdict; zero when Err is set.
	Result colour.Result
	// Rewritten is the value written back, empty when nothing changed.
	Rewritten string
	// Err reports colours that could not be parsed.
	Err error
}

// Fix scans a stylesheet, tunes every failing text/background pair and
// returns the rewritten stylesheet alongside per-rule results. The input is
// never mutated; untouched rules are preserved byte for byte.
func Fix(src string, opts FixOptions) (string, []FixResult) {
	if opts.DefaultBackground == "" {
		opts.DefaultBackground = "#ffffff"
	}

	var (
		results []FixResult
		out     strings.Builder
		cursor  int
	)

	for _, rule := range Extract(src) {
		if rule.Text == "" {
			continue
		}

		res := FixResult{Selector: rule.Selector, Line: rule.Line}

		bgValue := rule.Background
		if bgValue == "" {
			bgValue = opts.DefaultBackground
		}

		bg, _, err := colour.Parse(bgValue)
		if err != nil {
			res.Err = fmt.Errorf("rule %q: %w", rule.Selector, err)
			results = append(results, res)
			continue
		}
		text, format, err := colour.ParseOver(rule.Text, bg)
		if err != nil {
			res.Err = fmt.Errorf("rule %q: %w", rule.Selector, err)
			results = append(results, res)
			continue
		}

		res.Result = colour.Tune(text, bg, opts.Tune)

		if res.Result.Status.Passed() && res.Result.Tuned != res.Result.Original {
			res.Rewritten = colour.Render(res.Result.Tuned, format)
			out.WriteString(src[cursor:rule.textStart])
			out.WriteString(res.Rewritten)
			cursor = rule.textEnd
		}

		results = append(results, res)
	}

	out.WriteString(src[cursor:])
	return out.String(), results
}
