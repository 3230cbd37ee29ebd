package visibility

import (
	"fmt"
	"strings"
)

// Classifier turns raw LLM responses into visibility Results. It is safe for
// concurrent use; Classify never mutates shared state.
type Classifier struct {
	cfg      Config
	matchers []matcher
}

// New creates a Classifier after validating the config.
func New(cfg Config) (*Classifier, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("classifier config: %w", err)
	}
	return &Classifier{
		cfg: cfg,
		// Precedence order is the core design decision: a response can
		// satisfy several patterns and the first match wins.
		matchers: []matcher{
			matchFeatured,
			matchNumberedList,
			matchBulletList,
			matchCitedSource,
		},
	}, nil
}

// Classify determines brand visibility in a single response. URL extraction
// and the competitor scan always run, regardless of whether the brand is
// present.
func (c *Classifier) Classify(in Input) Result {
	terms := brandTerms(in.BrandName, in.BrandKeywords)
	lower := strings.ToLower(in.ResponseText)

	result := Result{
		BrandName:        in.BrandName,
		Provider:         in.Provider,
		Model:            in.Model,
		Question:         in.Question,
		ResponseText:     in.ResponseText,
		Status:           StatusNotFound,
		CitedSources:     extractURLs(in.ResponseText),
		CompetitorsFound: findCompetitors(lower, in.CompetitorNames),
	}

	if containsAny(lower, terms) {
		m := c.classifyMention(in.ResponseText, lower, terms)
		result.Status = m.status
		result.Position = m.position
		result.TotalItems = m.total
		result.Context = m.context
	}

	result.Score = c.cfg.Scores[result.Status]
	return result
}

func (c *Classifier) classifyMention(text, lower string, terms []string) match {
	for _, fn := range c.matchers {
		if m, ok := fn(text, lower, terms, c.cfg.ContextWindow); ok {
			return m
		}
	}

	// Brand present but no pattern matched.
	return match{
		status:  StatusMentioned,
		context: extractContext(text, lower, terms[0], c.cfg.ContextWindow),
	}
}

// brandTerms returns the lowercased search terms: the brand name followed by
// its keywords, empties dropped.
func brandTerms(name string, keywords []string) []string {
	terms := make([]string, 0, len(keywords)+1)
	terms = append(terms, strings.ToLower(name))
	for _, k := range keywords {
		if k = strings.TrimSpace(k); k != "" {
			terms = append(terms, strings.ToLower(k))
		}
	}
	return terms
}

func containsAny(lower string, terms []string) bool {
	for _, t := range terms {
		if t != "" && strings.Contains(lower, t) {
			return true
		}
	}
	return false
}

// findCompetitors reports which competitor names occur in the response,
// preserving input order and original casing.
func findCompetitors(lower string, competitors []string) []string {
	found := make([]string, 0)
	for _, name := range competitors {
		if name == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(name)) {
			found = append(found, name)
		}
	}
	return found
}
