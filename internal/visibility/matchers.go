package visibility

import (
	"regexp"
	"strconv"
	"strings"
)

// match is the common result shape shared by all matchers.
type match struct {
	status   Status
	position *int
	total    *int
	context  string
}

// matcher inspects a response for one mention pattern. text is the original
// response, lower its lowercased form, terms the lowercased brand terms.
// Matchers report ok=false to pass control to the next matcher in the chain.
type matcher func(text, lower string, terms []string, window int) (match, bool)

// Recommendation phrases that immediately precede a brand term. Matched
// against the lowercased response, so the patterns are lowercase-only.
var featuredPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:i |we )?(?:recommend|suggest)\s+(?:using\s+)?`),
	regexp.MustCompile(`(?:the )?best (?:option|choice|tool|solution) is\s+`),
	regexp.MustCompile(`(?:my |our )?top (?:pick|choice|recommendation) is\s+`),
	regexp.MustCompile(`(?:you should |i'd |we'd )?(?:go with|choose|use)\s+`),
}

var (
	numberedItemPattern = regexp.MustCompile(`(?m)^\s*(\d+)[.):]\s*\*?\*?([^\n]+)`)
	bulletItemPattern   = regexp.MustCompile(`(?m)^\s*[-*•]\s*\*?\*?([^\n]+)`)
)

// matchFeatured looks for a recommendation phrase immediately followed by a
// brand term. A featured brand is conceptually the top answer, so position
// is always 1.
func matchFeatured(text, lower string, terms []string, window int) (match, bool) {
	for _, pattern := range featuredPatterns {
		for _, loc := range pattern.FindAllStringIndex(lower, -1) {
			rest := lower[loc[1]:]
			for _, term := range terms {
				if strings.HasPrefix(rest, term) {
					return match{
						status:   StatusFeatured,
						position: intPtr(1),
						context:  extractContext(text, lower, term, window),
					}, true
				}
			}
		}
	}
	return match{}, false
}

// matchNumberedList scans lines of the form "<n>. item" (also "<n>) item" and
// "<n>: item"). The reported position is the literal list number, the total
// the count of numbered lines in the response.
func matchNumberedList(text, lower string, terms []string, _ int) (match, bool) {
	items := numberedItemPattern.FindAllStringSubmatch(text, -1)
	if len(items) == 0 {
		return match{}, false
	}

	for _, item := range items {
		line := strings.ToLower(item[2])
		if !termInLine(line, terms) {
			continue
		}

		num, err := strconv.Atoi(item[1])
		if err != nil {
			continue
		}

		return match{
			status:   StatusListed,
			position: intPtr(num),
			total:    intPtr(len(items)),
			context:  strings.TrimSpace(item[2]),
		}, true
	}
	return match{}, false
}

// matchBulletList scans lines starting with -, *, or •. Bullets carry no
// literal numbering, so position is the 1-based ordinal among all bullets.
func matchBulletList(text, lower string, terms []string, _ int) (match, bool) {
	items := bulletItemPattern.FindAllStringSubmatch(text, -1)
	if len(items) == 0 {
		return match{}, false
	}

	for idx, item := range items {
		line := strings.ToLower(item[1])
		if !termInLine(line, terms) {
			continue
		}

		return match{
			status:   StatusListed,
			position: intPtr(idx + 1),
			total:    intPtr(len(items)),
			context:  strings.TrimSpace(item[1]),
		}, true
	}
	return match{}, false
}

// matchCitedSource looks for attribution phrases naming a brand term:
// "according to X", "source: ... X", "from X's website/blog/...".
func matchCitedSource(text, lower string, terms []string, window int) (match, bool) {
	alt := termAlternation(terms)
	patterns := []string{
		`according to\s+(?:` + alt + `)`,
		`source[sd]?:\s*.*(?:` + alt + `)`,
		`from\s+(?:` + alt + `)['"]?s?\s+(?:website|blog|article|documentation)`,
	}

	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			continue
		}
		if re.MatchString(lower) {
			return match{
				status:  StatusCitedSource,
				context: extractContext(text, lower, terms[0], window),
			}, true
		}
	}
	return match{}, false
}

func termAlternation(terms []string) string {
	quoted := make([]string, len(terms))
	for i, t := range terms {
		quoted[i] = regexp.QuoteMeta(t)
	}
	return strings.Join(quoted, "|")
}

func termInLine(line string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(line, t) {
			return true
		}
	}
	return false
}

func intPtr(n int) *int { return &n }
