// Package patent holds the patent reference records the analysis pipeline
// resolves against.
package patent

import (
	"fmt"
	"strings"
)

// Claim is one numbered claim of a patent.  Num is a label as published
// ("1", "12a"), not an ordinal.
type Claim struct {
	Num  string `json:"num"`
	Text string `json:"text"`
}

// Patent is an immutable reference record.  PublicationNumber is the lookup
// key (for example "US-RE49889-E1").
type Patent struct {
	ID                int     `json:"id"`
	PublicationNumber string  `json:"publication_number"`
	Title             string  `json:"title"`
	Abstract          string  `json:"abstract"`
	Claims            []Claim `json:"claims"`
}

// ClaimLines renders each claim as "Claim <num>: <text>" in document order.
func (p Patent) ClaimLines() []string {
	lines := make([]string, 0, len(p.Claims))
	for _, c := range p.Claims {
		lines = append(lines, fmt.Sprintf("Claim %s: %s", c.Num, c.Text))
	}
	return lines
}

// MatchesExactly reports whether id equals the publication number.
func (p Patent) MatchesExactly(id string) bool {
	return p.PublicationNumber == id
}

// MatchesFragment reports whether the lower-cased publication number contains
// the lower-cased fragment.  An empty fragment matches every patent.
func (p Patent) MatchesFragment(fragment string) bool {
	return strings.Contains(strings.ToLower(p.PublicationNumber), strings.ToLower(fragment))
}

//Personal.AI order the ending
