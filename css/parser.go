package css

import (
	"bytes"
	"strconv"
	"strings"
	"unicode"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/zap"
)

// Parser parses CSS stylesheets and inline style declarations.
type Parser struct {
	log *zap.Logger
}

// NewParser creates a new CSS parser.
func NewParser(log *zap.Logger) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	return &Parser{log: log.Named("css-parser")}
}

// Parse parses CSS text into a Stylesheet. The optional source identifies
// what is being parsed for debug logging. At-rules are skipped with a
// warning: there is no media context to evaluate them against.
func (p *Parser) Parse(data []byte, source ...string) *Stylesheet {
	sheet := &Stylesheet{}

	if len(source) > 0 && source[0] != "" {
		p.log.Debug("Parsing CSS", zap.String("source", source[0]), zap.Int("bytes", len(data)))
	}

	parser := css.NewParser(parse.NewInput(bytes.NewReader(data)), false)
	for {
		gt, _, data := parser.Next()

		switch gt {
		case css.ErrorGrammar:
			if err := parser.Err(); err != nil && err.Error() != "EOF" {
				p.log.Debug("CSS parse error", zap.Error(err))
			}
			return sheet

		case css.BeginAtRuleGrammar:
			sheet.Warnings = append(sheet.Warnings, "unsupported at-rule: "+string(data))
			skipAtRuleBlock(parser)

		case css.AtRuleGrammar:
			sheet.Warnings = append(sheet.Warnings, "unsupported at-rule: "+string(data))

		case css.BeginRulesetGrammar:
			selectors := splitSelectors(data, parser.Values())
			props, order := p.parseDeclarations(parser)
			for _, raw := range selectors {
				sel, ok := p.parseSelector(raw, sheet)
				if !ok {
					continue
				}
				rule := Rule{Selector: sel, Properties: make(map[string]Value, len(props)), Order: order}
				for k, v := range props {
					rule.Properties[k] = v
				}
				sheet.Rules = append(sheet.Rules, rule)
			}
		}
	}
}

// ParseInline parses the content of a style attribute
// ("color: red; padding: 4px") and returns declarations in order.
func (p *Parser) ParseInline(decl string) (map[string]Value, []string) {
	parser := css.NewParser(parse.NewInput(strings.NewReader(decl)), true)
	props := make(map[string]Value)
	var order []string
	for {
		gt, _, data := parser.Next()
		switch gt {
		case css.ErrorGrammar:
			return props, order
		case css.DeclarationGrammar:
			if values := parser.Values(); len(values) > 0 {
				name := strings.ToLower(string(data))
				if _, seen := props[name]; !seen {
					order = append(order, name)
				}
				props[name] = parsePropertyValue(values)
			}
		}
	}
}

// splitSelectors extracts comma separated selector strings.
func splitSelectors(data []byte, values []css.Token) []string {
	var sb strings.Builder
	sb.Write(data)
	for _, v := range values {
		sb.Write(v.Data)
	}

	var selectors []string
	for s := range strings.SplitSeq(sb.String(), ",") {
		if s = strings.TrimSpace(s); s != "" {
			selectors = append(selectors, s)
		}
	}
	return selectors
}

// parseDeclarations parses property declarations until EndRulesetGrammar.
func (p *Parser) parseDeclarations(parser *css.Parser) (map[string]Value, []string) {
	props := make(map[string]Value)
	var order []string

	for {
		gt, _, data := parser.Next()

		switch gt {
		case css.ErrorGrammar, css.EndRulesetGrammar:
			return props, order

		case css.DeclarationGrammar:
			if values := parser.Values(); len(values) > 0 {
				name := strings.ToLower(string(data))
				if _, seen := props[name]; !seen {
					order = append(order, name)
				}
				props[name] = parsePropertyValue(values)
			}

		case css.CustomPropertyGrammar:
			// custom properties (--var) are not supported
			continue
		}
	}
}

// parsePropertyValue converts CSS tokens to a Value.
func parsePropertyValue(tokens []css.Token) Value {
	if len(tokens) == 0 {
		return Value{}
	}

	var rawParts []string
	for _, t := range tokens {
		if t.TokenType != css.WhitespaceToken {
			rawParts = append(rawParts, string(t.Data))
		} else if len(rawParts) > 0 {
			rawParts = append(rawParts, " ")
		}
	}
	raw := strings.TrimSpace(strings.Join(rawParts, ""))

	val := Value{Raw: raw}

	if len(tokens) == 1 || (len(tokens) == 2 && tokens[1].TokenType == css.WhitespaceToken) {
		t := tokens[0]
		switch t.TokenType {
		case css.DimensionToken:
			val.Value, val.Unit = parseDimension(string(t.Data))
		case css.PercentageToken:
			val.Value, _ = strconv.ParseFloat(strings.TrimSuffix(string(t.Data), "%"), 64)
			val.Unit = "%"
		case css.NumberToken:
			val.Value, _ = strconv.ParseFloat(string(t.Data), 64)
		case css.IdentToken:
			val.Keyword = string(t.Data)
		case css.StringToken:
			val.Keyword = unquote(string(t.Data))
		case css.HashToken:
			val.Keyword = string(t.Data)
		default:
			val.Keyword = raw
		}
		return val
	}

	// functions (rgb(), url()) and multi-value properties
	val.Keyword = raw
	return val
}

// parseDimension extracts numeric value and unit from dimension token.
func parseDimension(s string) (float64, string) {
	numEnd := 0
	for i, r := range s {
		if unicode.IsDigit(r) || r == '.' || r == '-' || r == '+' {
			numEnd = i + 1
		} else {
			break
		}
	}
	if numEnd == 0 {
		return 0, ""
	}

	num, _ := strconv.ParseFloat(s[:numEnd], 64)
	return num, strings.ToLower(s[numEnd:])
}

// parseSelector accepts type selectors, class selectors and descendant
// combinations of them. Anything else is recorded as a warning.
func (p *Parser) parseSelector(raw string, sheet *Stylesheet) (Selector, bool) {
	sel := Selector{Raw: raw, Parts: strings.Fields(raw)}

	reject := func(reason string) (Selector, bool) {
		sheet.Warnings = append(sheet.Warnings, reason+": "+raw)
		p.log.Debug("Skipping selector", zap.String("selector", raw), zap.String("reason", reason))
		return sel, false
	}

	switch {
	case strings.ContainsAny(raw, "+~>"):
		return reject("unsupported combinator selector")
	case strings.ContainsAny(raw, "[#*"):
		return reject("unsupported attribute, id or universal selector")
	case strings.Contains(raw, ":"):
		return reject("unsupported pseudo selector")
	}

	for i, part := range sel.Parts {
		element, class, found := strings.Cut(part, ".")
		switch {
		case !found:
		case strings.Contains(class, "."):
			return reject("unsupported multi-class selector")
		case element != "":
			// element qualified class, the class alone is the key
			sheet.Warnings = append(sheet.Warnings, "element qualifier ignored: "+raw)
			sel.Parts[i] = "." + class
		}
	}
	return sel, true
}

// skipAtRuleBlock skips tokens until the matching end of an @-rule block.
func skipAtRuleBlock(parser *css.Parser) {
	depth := 1
	for depth > 0 {
		gt, _, _ := parser.Next()
		switch gt {
		case css.ErrorGrammar:
			return
		case css.BeginAtRuleGrammar, css.BeginRulesetGrammar:
			depth++
		case css.EndAtRuleGrammar, css.EndRulesetGrammar:
			depth--
		}
	}
}

// unquote removes surrounding quotes from a string.
func unquote(s string) string {
	s = strings.TrimSpace(s)
	if len(s) < 2 {
		return s
	}
	if (s[0] == '"' && s[len(s)-1] == '"') ||
		(s[0] == '\'' && s[len(s)-1] == '\'') {
		return s[1 : len(s)-1]
	}
	return s
}
