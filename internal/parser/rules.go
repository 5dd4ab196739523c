package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"dentrack/internal/domain"
)

// defaultProductionPatterns and defaultCollectionsPatterns are the
// built-in label rules. Ordered: the first pattern that matches wins for
// its field.
var (
	defaultProductionPatterns = []string{
		`(?i)production\s*[:\-]?\s*\$?([\d,]+(?:\.\d{2})?)`,
		`(?i)prod\.?\s*\$?([\d,]+(?:\.\d{2})?)`,
	}
	defaultCollectionsPatterns = []string{
		`(?i)collections?\s*[:\-]?\s*\$?([\d,]+(?:\.\d{2})?)`,
		`(?i)coll\.?\s*\$?([\d,]+(?:\.\d{2})?)`,
	}
)

// RuleParser extracts aggregate amounts by applying an ordered list of
// regular expressions per field. It implements port.AmountParser.
type RuleParser struct {
	production  []*regexp.Regexp
	collections []*regexp.Regexp
}

// NewDefaultRuleParser returns the parser applied when a clinic has no
// override rules.
func NewDefaultRuleParser() *RuleParser {
	p, err := NewRuleParser(defaultProductionPatterns, defaultCollectionsPatterns)
	if err != nil {
		// Built-in patterns are compile-checked by tests.
		panic(err)
	}
	return p
}

// NewRuleParser compiles an override rule set. A malformed pattern is a
// configuration error and propagates so startup fails loudly.
func NewRuleParser(productionPatterns, collectionsPatterns []string) (*RuleParser, error) {
	prod, err := compileAll(productionPatterns)
	if err != nil {
		return nil, fmt.Errorf("production patterns: %w", err)
	}
	coll, err := compileAll(collectionsPatterns)
	if err != nil {
		return nil, fmt.Errorf("collections patterns: %w", err)
	}
	return &RuleParser{production: prod, collections: coll}, nil
}

func compileAll(patterns []string) ([]*regexp.Regexp, error) {
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("compiling %q: %w", p, err)
		}
		if re.NumSubexp() < 1 {
			return nil, fmt.Errorf("pattern %q has no capture group for the amount", p)
		}
		compiled = append(compiled, re)
	}
	return compiled, nil
}

// Parse applies the rule lists to text. A field with no matching pattern
// yields a nil amount rather than an error.
func (p *RuleParser) Parse(text string) domain.AmountSummary {
	return domain.AmountSummary{
		ProductionAmount:  firstMatch(p.production, text),
		CollectionsAmount: firstMatch(p.collections, text),
	}
}

func firstMatch(patterns []*regexp.Regexp, text string) *float64 {
	for _, re := range patterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		raw := strings.ReplaceAll(m[1], ",", "")
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			continue
		}
		return &v
	}
	return nil
}
