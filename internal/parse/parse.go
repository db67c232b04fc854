// Package parse turns inbound chat text into expense records.
//
// Two input shapes are supported: the structured "/add Category Amount
// Comment..." command, and freeform text where the first run of decimal
// digits is taken as the amount and the rest becomes the comment.
package parse

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"budgetbot/internal/core"
)

var (
	// ErrMalformedCommand means a structured command is missing its
	// category or amount field, or the amount is not an integer.
	ErrMalformedCommand = errors.New("malformed command")

	// ErrNoAmountFound means freeform text contains no digit run.
	ErrNoAmountFound = errors.New("no amount found")
)

var amountPattern = regexp.MustCompile(`\d+`)

// Classifier resolves free text to a category label.
type Classifier interface {
	Classify(text string) string
}

// Structured parses "/add <category> <amount> [comment...]". The comment is
// the remainder of the line, not a single token. The date is taken from now.
func Structured(text string, now time.Time) (core.ExpenseRecord, error) {
	parts := splitFields(text, 4)
	// parts[0] is the command token itself.
	if len(parts) < 3 {
		return core.ExpenseRecord{}, ErrMalformedCommand
	}
	if _, err := core.ParseAmount(parts[2]); err != nil {
		return core.ExpenseRecord{}, ErrMalformedCommand
	}
	comment := ""
	if len(parts) > 3 {
		comment = parts[3]
	}
	return core.ExpenseRecord{
		Date:     core.FormatDate(now),
		Category: parts[1],
		Amount:   parts[2],
		Comment:  comment,
	}, nil
}

// Freeform extracts the first digit run as the amount, removes exactly that
// occurrence from the comment, and classifies the original text.
//
// Known imprecision, kept on purpose: the digit run is matched anywhere in
// the text, so digits embedded inside another word (e.g. "кафе24") are taken
// as the amount and stripped mid-word.
func Freeform(text string, c Classifier, now time.Time) (core.ExpenseRecord, error) {
	amount := amountPattern.FindString(text)
	if amount == "" {
		return core.ExpenseRecord{}, ErrNoAmountFound
	}
	comment := strings.TrimSpace(strings.Replace(text, amount, "", 1))
	return core.ExpenseRecord{
		Date:     core.FormatDate(now),
		Category: c.Classify(text),
		Amount:   amount,
		Comment:  comment,
	}, nil
}

// splitFields splits on whitespace runs into at most max fields, with the
// last field keeping the remainder of the line verbatim (after trimming).
func splitFields(s string, max int) []string {
	var out []string
	s = strings.TrimSpace(s)
	for len(out) < max-1 {
		idx := strings.IndexFunc(s, isSpace)
		if idx < 0 {
			break
		}
		out = append(out, s[:idx])
		s = strings.TrimLeftFunc(s[idx:], isSpace)
	}
	if s != "" {
		out = append(out, s)
	}
	return out
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}
