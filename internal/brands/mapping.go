package brands

import (
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/aeolab/beacon/pkg/query"
	"github.com/aeolab/beacon/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "brands", "b").
	Project("id", "ID").
	Project("name", "Name").
	Project("domain", "Domain").
	Project("description", "Description").
	Project("keywords", "Keywords").
	Project("competitors", "Competitors").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

var defaultSort = query.SortField{
	Field: "Name",
}

// Filters contains optional filtering criteria for brand queries.
// Nil fields are ignored.
type Filters struct {
	Name   *string `json:"name,omitempty"`
	Domain *string `json:"domain,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("Name", f.Name).
		WhereEquals("Domain", f.Domain)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if n := values.Get("name"); n != "" {
		f.Name = &n
	}

	if d := values.Get("domain"); d != "" {
		f.Domain = &d
	}

	return f
}

func scanBrand(s repository.Scanner) (Brand, error) {
	var b Brand
	var keywordsRaw, competitorsRaw []byte

	err := s.Scan(
		&b.ID,
		&b.Name,
		&b.Domain,
		&b.Description,
		&keywordsRaw,
		&competitorsRaw,
		&b.CreatedAt,
		&b.UpdatedAt,
	)

	if err != nil {
		return b, err
	}

	if len(keywordsRaw) > 0 {
		if err := json.Unmarshal(keywordsRaw, &b.Keywords); err != nil {
			return b, fmt.Errorf("unmarshal keywords: %w", err)
		}
	}
	if b.Keywords == nil {
		b.Keywords = []string{}
	}

	if len(competitorsRaw) > 0 {
		if err := json.Unmarshal(competitorsRaw, &b.Competitors); err != nil {
			return b, fmt.Errorf("unmarshal competitors: %w", err)
		}
	}
	if b.Competitors == nil {
		b.Competitors = []string{}
	}

	return b, nil
}
