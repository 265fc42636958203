package refdata

import (
	"slices"

	"github.com/turtacn/InfringeCheck/internal/domain/company"
	"github.com/turtacn/InfringeCheck/internal/domain/patent"
)

// Catalog is the read-only view of the loaded reference data.  It is safe for
// concurrent use without locking since nothing mutates it after construction.
type Catalog struct {
	patents   []patent.Patent
	companies []company.Company
}

// NewCatalog takes copies of the given slices.
func NewCatalog(patents []patent.Patent, companies []company.Company) *Catalog {
	return &Catalog{
		patents:   slices.Clone(patents),
		companies: slices.Clone(companies),
	}
}

// Patents returns the patents in load order.  The returned slice is a copy.
func (c *Catalog) Patents() []patent.Patent {
	return slices.Clone(c.patents)
}

// Companies returns the companies in load order.  The returned slice is a
// copy.
func (c *Catalog) Companies() []company.Company {
	return slices.Clone(c.companies)
}

// Counts reports how many patents and companies were loaded.
func (c *Catalog) Counts() (patents, companies int) {
	return len(c.patents), len(c.companies)
}

//Personal.AI order the ending
