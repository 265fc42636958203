// Package infringement implements the lookup-and-report pipeline: entity
// resolution, prompt synthesis, streamed completion, response parsing and the
// Analyzer service that ties them together.
package infringement

import (
	"github.com/turtacn/InfringeCheck/internal/domain/company"
	"github.com/turtacn/InfringeCheck/internal/domain/patent"
	"github.com/turtacn/InfringeCheck/pkg/errors"
)

// Catalog is the read-only reference data the resolver searches.
// refdata.Catalog satisfies it.
type Catalog interface {
	Patents() []patent.Patent
	Companies() []company.Company
}

// Resolver maps caller-supplied identifiers onto reference records.
type Resolver struct {
	catalog Catalog
}

// NewResolver returns a Resolver over catalog.
func NewResolver(catalog Catalog) *Resolver {
	return &Resolver{catalog: catalog}
}

// Resolve finds the patent and then the company.  The patent is looked up
// first, so a request where both are unknown reports the patent.
func (r *Resolver) Resolve(patentID, companyName string) (patent.Patent, company.Company, error) {
	p, err := r.FindPatent(patentID)
	if err != nil {
		return patent.Patent{}, company.Company{}, err
	}
	c, err := r.FindCompany(companyName)
	if err != nil {
		return patent.Patent{}, company.Company{}, err
	}
	return p, c, nil
}

// FindPatent prefers an exact publication-number match and falls back to the
// first patent whose publication number contains id, case-insensitively.
func (r *Resolver) FindPatent(id string) (patent.Patent, error) {
	patents := r.catalog.Patents()
	for _, p := range patents {
		if p.MatchesExactly(id) {
			return p, nil
		}
	}
	for _, p := range patents {
		if p.MatchesFragment(id) {
			return p, nil
		}
	}
	return patent.Patent{}, errors.New(errors.CodePatentNotFound, "Patent not found").WithDetail("patent_id=" + id)
}

// FindCompany prefers a case-insensitive exact name match and falls back to
// the first company whose name contains name, case-insensitively.
func (r *Resolver) FindCompany(name string) (company.Company, error) {
	companies := r.catalog.Companies()
	for _, c := range companies {
		if c.MatchesName(name) {
			return c, nil
		}
	}
	for _, c := range companies {
		if c.MatchesFragment(name) {
			return c, nil
		}
	}
	return company.Company{}, errors.New(errors.CodeCompanyNotFound, "Company not found").WithDetail("company_name=" + name)
}

//Personal.AI order the ending
