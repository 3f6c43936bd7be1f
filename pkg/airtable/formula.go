package airtable

import (
	"fmt"
	"strings"

	"github.com/leadpilot/leadpilot/pkg/domain"
)

// EscapeFormulaString escapes a user-supplied value for embedding in an
// Airtable formula string literal. Interpolating raw input into a formula
// lets a crafted search term rewrite the filter, so every value goes through
// here.
func EscapeFormulaString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return s
}

// quote wraps a value as an escaped formula string literal.
func quote(s string) string {
	return `"` + EscapeFormulaString(s) + `"`
}

// BuildLeadFormula translates a lead filter into an Airtable filterByFormula
// expression. Filters are conjunctive; an empty filter produces an empty
// formula (no filtering).
func BuildLeadFormula(filter domain.LeadFilter) string {
	var clauses []string

	if filter.Search != "" {
		q := quote(strings.ToLower(filter.Search))
		clauses = append(clauses, fmt.Sprintf(
			"OR(FIND(%[1]s, LOWER({Name})), FIND(%[1]s, LOWER({Email})), FIND(%[1]s, LOWER({Company})))", q))
	}
	if filter.ScoreLabel != "" {
		clauses = append(clauses, fmt.Sprintf("{AI Score Label} = %s", quote(string(filter.ScoreLabel))))
	}
	if filter.Status != "" {
		clauses = append(clauses, fmt.Sprintf("{Status} = %s", quote(string(filter.Status))))
	}
	if filter.Source != "" {
		clauses = append(clauses, fmt.Sprintf("{Lead Source} = %s", quote(string(filter.Source))))
	}

	switch len(clauses) {
	case 0:
		return ""
	case 1:
		return clauses[0]
	default:
		return "AND(" + strings.Join(clauses, ", ") + ")"
	}
}

// BuildActivityFormula filters activities by their linked lead id.
func BuildActivityFormula(leadID string) string {
	if leadID == "" {
		return ""
	}
	return fmt.Sprintf("FIND(%s, ARRAYJOIN({Lead}))", quote(leadID))
}
