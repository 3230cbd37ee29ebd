package visibility_test

import (
	"reflect"
	"testing"

	"github.com/aeolab/beacon/internal/visibility"
)

func newClassifier(t *testing.T) *visibility.Classifier {
	t.Helper()
	c, err := visibility.New(visibility.DefaultConfig())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return c
}

func TestClassifyStatus(t *testing.T) {
	tests := []struct {
		name         string
		response     string
		brand        string
		keywords     []string
		wantStatus   visibility.Status
		wantPosition *int
		wantTotal    *int
		wantContext  string
	}{
		{
			name:         "featured via recommend phrase",
			response:     "I recommend Acme Corp for this use case.",
			brand:        "Acme Corp",
			wantStatus:   visibility.StatusFeatured,
			wantPosition: ptr(1),
		},
		{
			name:         "featured via best option phrase",
			response:     "The best option is Acme Corp, hands down.",
			brand:        "Acme Corp",
			wantStatus:   visibility.StatusFeatured,
			wantPosition: ptr(1),
		},
		{
			name:         "featured via go with phrase",
			response:     "You should go with Acme if budget matters.",
			brand:        "Acme Corp",
			keywords:     []string{"Acme"},
			wantStatus:   visibility.StatusFeatured,
			wantPosition: ptr(1),
		},
		{
			name:         "listed in numbered list",
			response:     "1. Wix\n2. Acme Corp\n3. Squarespace",
			brand:        "Acme Corp",
			wantStatus:   visibility.StatusListed,
			wantPosition: ptr(2),
			wantTotal:    ptr(3),
			wantContext:  "Acme Corp",
		},
		{
			name:         "listed position uses the literal list number",
			response:     "Top picks:\n3. Acme Corp\n7. Wix",
			brand:        "Acme Corp",
			wantStatus:   visibility.StatusListed,
			wantPosition: ptr(3),
			wantTotal:    ptr(2),
		},
		{
			name:         "listed in bullet list uses ordinal",
			response:     "- Wix\n- Squarespace\n- Acme Corp",
			brand:        "Acme Corp",
			wantStatus:   visibility.StatusListed,
			wantPosition: ptr(3),
			wantTotal:    ptr(3),
			wantContext:  "Acme Corp",
		},
		{
			name:       "cited source via according to",
			response:   "According to Acme Corp, uptime matters most.",
			brand:      "Acme Corp",
			wantStatus: visibility.StatusCitedSource,
		},
		{
			name:       "cited source via from brand's documentation",
			response:   "This guidance comes from Acme Corp's documentation on scaling.",
			brand:      "Acme Corp",
			wantStatus: visibility.StatusCitedSource,
		},
		{
			name:       "plain mention falls through",
			response:   "Acme Corp also exists in this space.",
			brand:      "Acme Corp",
			wantStatus: visibility.StatusMentioned,
		},
		{
			name:       "mention via keyword alias",
			response:   "Many designers swear by acmecorp these days.",
			brand:      "Acme Corp",
			keywords:   []string{"acmecorp"},
			wantStatus: visibility.StatusMentioned,
		},
		{
			name:       "absent brand",
			response:   "Wix and Squarespace dominate this market.",
			brand:      "Acme Corp",
			wantStatus: visibility.StatusNotFound,
		},
		{
			name:       "empty response",
			response:   "",
			brand:      "Acme Corp",
			wantStatus: visibility.StatusNotFound,
		},
	}

	c := newClassifier(t)
	scores := visibility.DefaultScores()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := c.Classify(visibility.Input{
				ResponseText:  tt.response,
				BrandName:     tt.brand,
				BrandKeywords: tt.keywords,
			})

			if result.Status != tt.wantStatus {
				t.Fatalf("status: got %q, want %q", result.Status, tt.wantStatus)
			}
			if result.Score != scores[tt.wantStatus] {
				t.Errorf("score: got %d, want %d", result.Score, scores[tt.wantStatus])
			}
			if !intPtrEqual(result.Position, tt.wantPosition) {
				t.Errorf("position: got %v, want %v", fmtPtr(result.Position), fmtPtr(tt.wantPosition))
			}
			if !intPtrEqual(result.TotalItems, tt.wantTotal) {
				t.Errorf("total: got %v, want %v", fmtPtr(result.TotalItems), fmtPtr(tt.wantTotal))
			}
			if tt.wantContext != "" && result.Context != tt.wantContext {
				t.Errorf("context: got %q, want %q", result.Context, tt.wantContext)
			}
		})
	}
}

func TestClassifyPrecedence(t *testing.T) {
	// A response satisfying both the featured phrase and a numbered list
	// containing the brand classifies as featured.
	c := newClassifier(t)

	result := c.Classify(visibility.Input{
		ResponseText: "I recommend Acme Corp.\n1. Acme Corp\n2. Wix",
		BrandName:    "Acme Corp",
	})

	if result.Status != visibility.StatusFeatured {
		t.Fatalf("status: got %q, want featured", result.Status)
	}
	if result.Position == nil || *result.Position != 1 {
		t.Errorf("position: got %v, want 1", fmtPtr(result.Position))
	}
}

func TestClassifyNotFoundScoresZero(t *testing.T) {
	c := newClassifier(t)

	result := c.Classify(visibility.Input{
		ResponseText: "Nothing relevant here.",
		BrandName:    "Acme Corp",
	})

	if result.Status != visibility.StatusNotFound {
		t.Fatalf("status: got %q, want not_found", result.Status)
	}
	if result.Score != 0 {
		t.Errorf("score: got %d, want 0", result.Score)
	}
	if result.Position != nil || result.TotalItems != nil {
		t.Errorf("position/total should be nil for not_found")
	}
	if result.Context != "" {
		t.Errorf("context: got %q, want empty", result.Context)
	}
}

func TestClassifySideAnalysesAlwaysRun(t *testing.T) {
	// URLs and competitors are extracted even when the brand is absent.
	c := newClassifier(t)

	result := c.Classify(visibility.Input{
		ResponseText:    "Wix is solid (see https://wix.com) and so is Squarespace: https://squarespace.com and again https://wix.com",
		BrandName:       "Acme Corp",
		CompetitorNames: []string{"Squarespace", "Webflow", "Wix"},
	})

	if result.Status != visibility.StatusNotFound {
		t.Fatalf("status: got %q, want not_found", result.Status)
	}

	wantURLs := []string{"https://wix.com", "https://squarespace.com"}
	if !reflect.DeepEqual(result.CitedSources, wantURLs) {
		t.Errorf("cited sources: got %v, want %v", result.CitedSources, wantURLs)
	}

	// Input order and original casing are preserved.
	wantCompetitors := []string{"Squarespace", "Wix"}
	if !reflect.DeepEqual(result.CompetitorsFound, wantCompetitors) {
		t.Errorf("competitors: got %v, want %v", result.CompetitorsFound, wantCompetitors)
	}
}

func TestClassifyIdempotent(t *testing.T) {
	c := newClassifier(t)
	in := visibility.Input{
		ResponseText:    "1. Acme Corp\n2. Wix\nSee https://acme.example for details.",
		BrandName:       "Acme Corp",
		BrandKeywords:   []string{"acme"},
		CompetitorNames: []string{"Wix"},
		Provider:        "openai",
		Model:           "gpt-4o",
		Question:        "What's the best website builder?",
	}

	first := c.Classify(in)
	second := c.Classify(in)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("classification is not deterministic:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestClassifyCustomScoreTable(t *testing.T) {
	cfg := visibility.DefaultConfig()
	cfg.Scores = map[visibility.Status]int{
		visibility.StatusFeatured:    90,
		visibility.StatusMentioned:   50,
		visibility.StatusListed:      25,
		visibility.StatusCitedSource: 10,
		visibility.StatusNotFound:    0,
	}

	c, err := visibility.New(cfg)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	result := c.Classify(visibility.Input{
		ResponseText: "Acme Corp also exists.",
		BrandName:    "Acme Corp",
	})

	if result.Score != 50 {
		t.Errorf("score: got %d, want 50 from the override table", result.Score)
	}
}

func TestClassifyContextWindow(t *testing.T) {
	c := newClassifier(t)

	long := "Filler before the brand appears. "
	for len(long) < 400 {
		long += "More filler text to pad things out. "
	}
	long += "Acme Corp sits here in the middle."
	for i := 0; i < 10; i++ {
		long += " Trailing filler continues for a while longer."
	}

	result := c.Classify(visibility.Input{
		ResponseText: long,
		BrandName:    "Acme Corp",
	})

	if result.Status != visibility.StatusMentioned {
		t.Fatalf("status: got %q, want mentioned", result.Status)
	}
	if len(result.Context) == 0 || len(result.Context) > 220 {
		t.Errorf("context length out of bounds: %d", len(result.Context))
	}
	if result.Context[:3] != "..." || result.Context[len(result.Context)-3:] != "..." {
		t.Errorf("context missing ellipsis markers: %q", result.Context)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*visibility.Config)
		wantErr bool
	}{
		{"default valid", func(c *visibility.Config) {}, false},
		{"zero window", func(c *visibility.Config) { c.ContextWindow = 0 }, true},
		{"missing status", func(c *visibility.Config) { delete(c.Scores, visibility.StatusListed) }, true},
		{"score above range", func(c *visibility.Config) { c.Scores[visibility.StatusFeatured] = 101 }, true},
		{"score below range", func(c *visibility.Config) { c.Scores[visibility.StatusNotFound] = -1 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := visibility.DefaultConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func ptr(n int) *int { return &n }

func intPtrEqual(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func fmtPtr(p *int) any {
	if p == nil {
		return "<nil>"
	}
	return *p
}
