package contents

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/google/uuid"

	"github.com/aeolab/beacon/pkg/query"
	"github.com/aeolab/beacon/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "contents", "c").
	Project("id", "ID").
	Project("brand_id", "BrandID").
	Project("title", "Title").
	Project("content_type", "ContentType").
	Project("url", "URL").
	Project("platform", "Platform").
	Project("description", "Description").
	Project("target_keywords", "TargetKeywords").
	Project("target_question_ids", "TargetQuestionIDs").
	Project("published_at", "PublishedAt").
	Project("is_published", "IsPublished").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

var defaultSort = query.SortField{
	Field:      "CreatedAt",
	Descending: true,
}

// Filters contains optional filtering criteria for content queries.
// Nil fields are ignored.
type Filters struct {
	BrandID     *uuid.UUID `json:"brand_id,omitempty"`
	ContentType *string    `json:"content_type,omitempty"`
	Platform    *string    `json:"platform,omitempty"`
	IsPublished *bool      `json:"is_published,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("BrandID", f.BrandID).
		WhereEquals("ContentType", f.ContentType).
		WhereEquals("Platform", f.Platform).
		WhereEquals("IsPublished", f.IsPublished)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if b := values.Get("brand_id"); b != "" {
		if id, err := uuid.Parse(b); err == nil {
			f.BrandID = &id
		}
	}

	if t := values.Get("content_type"); t != "" {
		f.ContentType = &t
	}

	if p := values.Get("platform"); p != "" {
		f.Platform = &p
	}

	if p := values.Get("is_published"); p != "" {
		if published, err := strconv.ParseBool(p); err == nil {
			f.IsPublished = &published
		}
	}

	return f
}

func scanContent(s repository.Scanner) (Content, error) {
	var c Content
	var keywordsRaw, questionsRaw []byte

	err := s.Scan(
		&c.ID,
		&c.BrandID,
		&c.Title,
		&c.ContentType,
		&c.URL,
		&c.Platform,
		&c.Description,
		&keywordsRaw,
		&questionsRaw,
		&c.PublishedAt,
		&c.IsPublished,
		&c.CreatedAt,
		&c.UpdatedAt,
	)

	if err != nil {
		return c, err
	}

	if len(keywordsRaw) > 0 {
		if err := json.Unmarshal(keywordsRaw, &c.TargetKeywords); err != nil {
			return c, fmt.Errorf("unmarshal target_keywords: %w", err)
		}
	}
	if c.TargetKeywords == nil {
		c.TargetKeywords = []string{}
	}

	if len(questionsRaw) > 0 {
		if err := json.Unmarshal(questionsRaw, &c.TargetQuestionIDs); err != nil {
			return c, fmt.Errorf("unmarshal target_question_ids: %w", err)
		}
	}
	if c.TargetQuestionIDs == nil {
		c.TargetQuestionIDs = []uuid.UUID{}
	}

	return c, nil
}
