// Package visibility implements the response classification engine for Beacon.
// Given one LLM response plus brand and competitor metadata, it determines how
// the brand appears in the response: prominently recommended, buried in a
// list, cited as a source, merely mentioned, or absent. Classification is a
// pure function of its inputs and the configured scoring table; it performs no
// network or storage access and cannot fail on any string input.
package visibility

import "fmt"

// Status describes how a brand appears in an LLM response.
type Status string

const (
	StatusFeatured    Status = "featured"     // prominently recommended
	StatusMentioned   Status = "mentioned"    // present, no special context
	StatusListed      Status = "listed"       // appears in a list
	StatusCitedSource Status = "cited_source" // brand content cited as source
	StatusNotFound    Status = "not_found"    // absent from the response
)

// Statuses returns every visibility status in precedence order.
func Statuses() []Status {
	return []Status{
		StatusFeatured,
		StatusMentioned,
		StatusListed,
		StatusCitedSource,
		StatusNotFound,
	}
}

// DefaultScores returns the default status-to-score table. The values encode
// business judgment (a list placement is worth less than a plain mention) and
// are meant to be overridden through configuration, not edited here.
func DefaultScores() map[Status]int {
	return map[Status]int{
		StatusFeatured:    100,
		StatusMentioned:   70,
		StatusListed:      40,
		StatusCitedSource: 30,
		StatusNotFound:    0,
	}
}

// Config controls classification scoring and context extraction.
type Config struct {
	// Scores maps every visibility status to its 0-100 score.
	Scores map[Status]int
	// ContextWindow is the total size in characters of the context excerpt
	// captured around the first brand mention.
	ContextWindow int
}

// DefaultConfig returns a Config with the default score table and a
// 200-character context window.
func DefaultConfig() Config {
	return Config{
		Scores:        DefaultScores(),
		ContextWindow: 200,
	}
}

// Validate checks that the score table covers every status and that the
// context window is positive.
func (c Config) Validate() error {
	if c.ContextWindow <= 0 {
		return fmt.Errorf("context window must be positive: %d", c.ContextWindow)
	}
	for _, s := range Statuses() {
		score, ok := c.Scores[s]
		if !ok {
			return fmt.Errorf("score table missing status %q", s)
		}
		if score < 0 || score > 100 {
			return fmt.Errorf("score for %q out of range [0,100]: %d", s, score)
		}
	}
	return nil
}

// Input carries one LLM response and the brand metadata to classify against.
type Input struct {
	ResponseText    string
	BrandName       string
	BrandKeywords   []string
	CompetitorNames []string
	Provider        string
	Model           string
	Question        string
}

// Result is the structured classification of a single response.
type Result struct {
	BrandName    string `json:"brand_name"`
	Provider     string `json:"provider"`
	Model        string `json:"model"`
	Question     string `json:"question"`
	ResponseText string `json:"response_text"`

	Status Status `json:"status"`
	Score  int    `json:"score"`

	// Position is the 1-based placement when the brand appears in a list or
	// is featured (conceptually position 1). Nil otherwise.
	Position *int `json:"position,omitempty"`
	// TotalItems is the number of items in the list containing the brand.
	TotalItems *int `json:"total_items,omitempty"`

	CitedSources     []string `json:"cited_sources"`
	CompetitorsFound []string `json:"competitors_found"`

	// Context is an excerpt of the response around the first brand mention.
	Context string `json:"context"`
}
