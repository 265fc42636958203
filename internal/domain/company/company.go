// Package company holds the company and product reference records.
package company

import "strings"

// Product is one product line of a company.
type Product struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Features    []string `json:"features"`
}

// Company is an immutable reference record keyed case-insensitively by Name.
type Company struct {
	Name     string    `json:"name"`
	Products []Product `json:"products"`
}

// MatchesName reports whether the lower-cased company name equals the
// lower-cased name.  Unicode case folding is not applied.
func (c Company) MatchesName(name string) bool {
	return strings.ToLower(c.Name) == strings.ToLower(name)
}

// MatchesFragment reports whether the lower-cased company name contains the
// lower-cased fragment.  An empty fragment matches every company.
func (c Company) MatchesFragment(fragment string) bool {
	return strings.Contains(strings.ToLower(c.Name), strings.ToLower(fragment))
}

//Personal.AI order the ending
