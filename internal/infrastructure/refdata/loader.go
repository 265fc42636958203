package refdata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/turtacn/InfringeCheck/internal/domain/company"
	"github.com/turtacn/InfringeCheck/internal/domain/patent"
	"github.com/turtacn/InfringeCheck/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/InfringeCheck/pkg/errors"
)

// rawPatent mirrors a patents.json record, whose claims field is itself a
// JSON-encoded string holding the claim array.
type rawPatent struct {
	ID                int    `json:"id"`
	PublicationNumber string `json:"publication_number"`
	Title             string `json:"title"`
	Abstract          string `json:"abstract"`
	Claims            string `json:"claims"`
}

type rawCompanies struct {
	Companies []company.Company `json:"companies"`
}

// DecodePatents decodes a patents document: a JSON array of records whose
// claims are decoded in a second pass.
func DecodePatents(r io.Reader) ([]patent.Patent, error) {
	var raws []rawPatent
	if err := json.NewDecoder(r).Decode(&raws); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodePatentParseFailed, "failed to decode patents document")
	}

	patents := make([]patent.Patent, 0, len(raws))
	for i, raw := range raws {
		var claims []patent.Claim
		if err := json.Unmarshal([]byte(raw.Claims), &claims); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodePatentParseFailed, "failed to decode patent claims").
				WithDetail(fmt.Sprintf("index=%d publication_number=%s", i, raw.PublicationNumber))
		}
		patents = append(patents, patent.Patent{
			ID:                raw.ID,
			PublicationNumber: raw.PublicationNumber,
			Title:             raw.Title,
			Abstract:          raw.Abstract,
			Claims:            claims,
		})
	}
	return patents, nil
}

// DecodeCompanies decodes a companies document of the form
// {"companies": [...]}.
func DecodeCompanies(r io.Reader) ([]company.Company, error) {
	var doc rawCompanies
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeCompanyParseFailed, "failed to decode companies document")
	}
	if doc.Companies == nil {
		return nil, errors.New(errors.ErrCodeCompanyParseFailed, "companies document has no \"companies\" array")
	}
	return doc.Companies, nil
}

// Loader reads both reference documents from a Source.
type Loader struct {
	source        Source
	patentsName   string
	companiesName string
	logger        logging.Logger
}

// NewLoader returns a Loader for the named documents.
func NewLoader(source Source, patentsName, companiesName string, logger logging.Logger) *Loader {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Loader{
		source:        source,
		patentsName:   patentsName,
		companiesName: companiesName,
		logger:        logger,
	}
}

// Load reads and decodes both documents.  Any failure is returned; callers at
// startup treat it as fatal.
func (l *Loader) Load(ctx context.Context) ([]patent.Patent, []company.Company, error) {
	patents, err := readDocument(ctx, l.source, l.patentsName, DecodePatents)
	if err != nil {
		return nil, nil, err
	}
	companies, err := readDocument(ctx, l.source, l.companiesName, DecodeCompanies)
	if err != nil {
		return nil, nil, err
	}

	l.logger.Info("reference data loaded",
		logging.Int("patents", len(patents)),
		logging.Int("companies", len(companies)))
	return patents, companies, nil
}

// LoadCatalog runs Load and wraps the result in a Catalog.
func (l *Loader) LoadCatalog(ctx context.Context) (*Catalog, error) {
	patents, companies, err := l.Load(ctx)
	if err != nil {
		return nil, err
	}
	return NewCatalog(patents, companies), nil
}

func readDocument[T any](ctx context.Context, src Source, name string, decode func(io.Reader) (T, error)) (T, error) {
	var zero T
	rc, err := src.Open(ctx, name)
	if err != nil {
		return zero, err
	}
	defer rc.Close()

	v, err := decode(rc)
	if err != nil {
		return zero, fmt.Errorf("refdata: %s: %w", name, err)
	}
	return v, nil
}

//Personal.AI order the ending
