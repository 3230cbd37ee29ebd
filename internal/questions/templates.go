package questions

import "fmt"

// Templates for converting a paid search keyword into natural questions,
// ordered from generic to specific. The first five are keyword-only; the
// remainder lean on personas and use cases.
var questionTemplates = []string{
	"What is the best %s?",
	"What are the top %s options?",
	"Which %s should I choose?",
	"What %s do you recommend?",
	"How do I find a good %s?",
}

var defaultPersonas = []string{
	"beginners",
	"small businesses",
	"enterprises",
	"startups",
	"freelancers",
}

var defaultUseCases = []string{
	"getting started",
	"scaling",
	"budget-conscious users",
}

// DefaultVariations is how many candidates GenerateFromKeyword produces when
// the caller does not ask for a specific count.
const DefaultVariations = 5

// GenerateFromKeyword expands a paid search keyword into candidate
// natural-language questions: the generic templates first, then persona and
// use-case variations until the requested count is reached.
func GenerateFromKeyword(keyword string, variations int) []string {
	if variations <= 0 {
		variations = DefaultVariations
	}

	candidates := make([]string, 0, variations)

	for _, tpl := range questionTemplates {
		if len(candidates) >= variations {
			return candidates
		}
		candidates = append(candidates, fmt.Sprintf(tpl, keyword))
	}

	for _, persona := range defaultPersonas {
		if len(candidates) >= variations {
			return candidates
		}
		candidates = append(candidates, fmt.Sprintf("What's the best %s for %s?", keyword, persona))
	}

	for _, useCase := range defaultUseCases {
		if len(candidates) >= variations {
			return candidates
		}
		candidates = append(candidates, fmt.Sprintf("Which %s is best for %s?", keyword, useCase))
	}

	return candidates
}
