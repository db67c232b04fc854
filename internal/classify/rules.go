// Package classify resolves free text to an expense category by keyword match.
package classify

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Rule maps a category label to its trigger keywords. A rule with no keywords
// never matches by substring; only the declared catch-all is allowed to be
// keyword-less.
type Rule struct {
	Category string   `json:"category"`
	Keywords []string `json:"keywords"`
}

// RuleSet is an ordered list of rules plus an explicit catch-all label.
// Order matters: the first rule with a matching keyword wins, and the rule set
// is fixed for the process lifetime.
type RuleSet struct {
	rules    []Rule
	catchAll string
}

// New builds a rule set. Keywords are lower-cased once at construction.
func New(rules []Rule, catchAll string) *RuleSet {
	normalized := make([]Rule, 0, len(rules))
	for _, r := range rules {
		kws := make([]string, 0, len(r.Keywords))
		for _, kw := range r.Keywords {
			kw = strings.ToLower(strings.TrimSpace(kw))
			if kw != "" {
				kws = append(kws, kw)
			}
		}
		normalized = append(normalized, Rule{Category: r.Category, Keywords: kws})
	}
	return &RuleSet{rules: normalized, catchAll: catchAll}
}

// Default returns the built-in rule set of the original deployment.
func Default() *RuleSet {
	return New([]Rule{
		{Category: "Еда", Keywords: []string{"еда", "манты", "кафе", "обед", "продукты", "ужин"}},
		{Category: "Транспорт", Keywords: []string{"такси", "автобус", "бензин", "транспорт", "проезд"}},
		{Category: "Коммуналка", Keywords: []string{"свет", "газ", "жкх", "интернет", "вода", "коммуналка", "кварплата"}},
		{Category: "Развлечения", Keywords: []string{"кино", "игра", "театр", "развлечения"}},
	}, "Другое")
}

type fileFormat struct {
	CatchAll string `json:"catch_all"`
	Rules    []Rule `json:"rules"`
}

// LoadFile reads a rule set from a JSON file. Categories are checked in file
// order, so earlier entries take priority.
func LoadFile(path string) (*RuleSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read category rules: %w", err)
	}
	var f fileFormat
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse category rules %s: %w", path, err)
	}
	if strings.TrimSpace(f.CatchAll) == "" {
		return nil, fmt.Errorf("category rules %s: missing catch_all", path)
	}
	return New(f.Rules, f.CatchAll), nil
}

// Classify returns exactly one category for text: the first declared rule with
// a keyword occurring as a substring of the lower-cased input, or the
// catch-all when nothing matches. Total over the declared categories, no
// failure cases.
func (rs *RuleSet) Classify(text string) string {
	lower := strings.ToLower(text)
	for _, r := range rs.rules {
		for _, kw := range r.Keywords {
			if strings.Contains(lower, kw) {
				return r.Category
			}
		}
	}
	return rs.catchAll
}

// CatchAll returns the fallback category label.
func (rs *RuleSet) CatchAll() string {
	return rs.catchAll
}

// Categories returns the declared labels in priority order, catch-all last.
func (rs *RuleSet) Categories() []string {
	out := make([]string, 0, len(rs.rules)+1)
	for _, r := range rs.rules {
		out = append(out, r.Category)
	}
	return append(out, rs.catchAll)
}
