package client

import (
	"context"
	"net/http"
	"net/url"
)

type analyzeRequest struct {
	PatentID    string `json:"patentId"`
	CompanyName string `json:"companyName"`
}

type saveReportRequest struct {
	Report Report `json:"report"`
}

// SaveReportResponse is returned by SaveReport.
type SaveReportResponse struct {
	Message string `json:"message"`
	Report  Report `json:"report"`
}

// Analyze runs an infringement analysis.  The server does not save the
// result.
func (c *Client) Analyze(ctx context.Context, patentID, companyName string) (*Report, error) {
	var out Report
	if err := c.do(ctx, http.MethodPost, "/api/v1/analyze-infringement", analyzeRequest{PatentID: patentID, CompanyName: companyName}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetReport fetches a saved report.
func (c *Client) GetReport(ctx context.Context, id string) (*Report, error) {
	var out Report
	if err := c.do(ctx, http.MethodGet, "/api/v1/reports/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListReports returns every saved report in save order.
func (c *Client) ListReports(ctx context.Context) ([]Report, error) {
	out := []Report{}
	if err := c.do(ctx, http.MethodGet, "/api/v1/reports", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SaveReport stores r, replacing any report with the same analysis id.  Nil
// slices are sent as empty arrays.
func (c *Client) SaveReport(ctx context.Context, r Report) (*SaveReportResponse, error) {
	r = withEmptySlices(r)
	var out SaveReportResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/save-report", saveReportRequest{Report: r}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func withEmptySlices(r Report) Report {
	products := make([]ProductInfringement, len(r.TopInfringingProducts))
	for i, p := range r.TopInfringingProducts {
		if p.RelevantClaims == nil {
			p.RelevantClaims = []string{}
		}
		if p.SpecificFeatures == nil {
			p.SpecificFeatures = []string{}
		}
		products[i] = p
	}
	r.TopInfringingProducts = products
	return r
}

//Personal.AI order the ending
