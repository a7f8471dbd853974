// internal/assistant/topic.go
package assistant

import (
	"regexp"
	"strings"
)

var (
	// A single capitalized Spanish word: uppercase first letter (accents and
	// Ñ included), the rest lowercase.
	nameTokenPattern = regexp.MustCompile(`^[A-ZÁÉÍÓÚÑ][a-záéíóúñ]+$`)

	// A loose run of 3 to 7 word tokens starting with a capitalized word,
	// used as a work-title heuristic.
	titleRunPattern = regexp.MustCompile(`[A-ZÁÉÍÓÚÑ][a-záéíóúñ]+(\s+[A-ZÁÉÍÓÚÑ]?[a-záéíóúñ]+){2,6}`)

	trailingPrepPattern = regexp.MustCompile(`\bde$|\bdel$`)
	whitespacePattern   = regexp.MustCompile(`\s+`)
)

// TopicExtractor mines the subject of an out-of-domain query so the redirect
// reply can name what the user was actually asking about. It is a best-effort
// heuristic, not a parser: ties break on first occurrence in the original
// text for names and titles, and on list order for nationalities and genres.
type TopicExtractor struct {
	vocab     *Vocabulary
	stopWords map[string]bool
	stopExprs []*regexp.Regexp
}

func NewTopicExtractor(vocab *Vocabulary) *TopicExtractor {
	e := &TopicExtractor{
		vocab:     vocab,
		stopWords: make(map[string]bool, len(vocab.StopWords)),
		stopExprs: make([]*regexp.Regexp, 0, len(vocab.StopWords)),
	}
	for _, w := range vocab.StopWords {
		e.stopWords[w] = true
		e.stopExprs = append(e.stopExprs, regexp.MustCompile(`(?i)\b`+regexp.QuoteMeta(w)+`\b`))
	}
	return e
}

// Extract returns a human-readable phrase describing the topic of the text.
// Never empty for non-empty input: it falls back to the stop-word-cleaned
// text, then to the raw text itself.
func (e *TopicExtractor) Extract(original string) string {
	cleaned := e.clean(original)

	names := e.detectNames(original)
	nationalities := containsInOrder(cleaned, e.vocab.Nationalities)
	genres := containsInOrder(cleaned, e.vocab.Genres)
	titles := e.detectTitles(original, names)

	var parts []string

	if len(names) > 0 {
		if len(nationalities) > 0 {
			parts = append(parts, "el autor "+nationalities[0]+" "+names[0])
		} else {
			parts = append(parts, "el autor "+names[0])
		}
	}

	if len(titles) > 0 {
		if len(genres) > 0 {
			parts = append(parts, "su "+genres[0]+" titulada "+titles[0])
		} else {
			parts = append(parts, "su novela "+titles[0])
		}
	}

	if len(parts) == 0 {
		if cleaned != "" {
			return cleaned
		}
		return original
	}

	return strings.Join(parts, " y ")
}

// clean lowercases the text, strips stop words via whole-word matching and
// collapses the remaining whitespace.
func (e *TopicExtractor) clean(original string) string {
	text := " " + strings.ToLower(original) + " "
	for _, expr := range e.stopExprs {
		text = expr.ReplaceAllString(text, " ")
	}
	return strings.TrimSpace(whitespacePattern.ReplaceAllString(text, " "))
}

// detectNames groups consecutive capitalized non-stop-word tokens of the
// original text into runs. Only runs of two or more tokens survive, which
// keeps sentence-initial capitalization from producing a candidate on its
// own. Deduplicated, first-seen order.
func (e *TopicExtractor) detectNames(original string) []string {
	words := whitespacePattern.Split(strings.TrimSpace(original), -1)

	var runs []string
	var buffer []string

	for _, word := range words {
		isName := nameTokenPattern.MatchString(word) && !e.stopWords[strings.ToLower(word)]

		if isName {
			buffer = append(buffer, word)
			continue
		}
		if len(buffer) > 0 {
			runs = append(runs, strings.Join(buffer, " "))
			buffer = nil
		}
	}
	if len(buffer) > 0 {
		runs = append(runs, strings.Join(buffer, " "))
	}

	var names []string
	seen := make(map[string]bool)
	for _, run := range runs {
		if len(strings.Split(run, " ")) < 2 || seen[run] {
			continue
		}
		seen[run] = true
		names = append(names, run)
	}
	return names
}

// detectTitles applies the loose title-run pattern over the original text,
// discarding matches that end in a dangling preposition or duplicate a name
// candidate. Deduplicated, first-seen order.
func (e *TopicExtractor) detectTitles(original string, names []string) []string {
	isName := make(map[string]bool, len(names))
	for _, n := range names {
		isName[n] = true
	}

	var titles []string
	seen := make(map[string]bool)
	for _, match := range titleRunPattern.FindAllString(original, -1) {
		if trailingPrepPattern.MatchString(strings.ToLower(match)) {
			continue
		}
		if isName[match] || seen[match] {
			continue
		}
		seen[match] = true
		titles = append(titles, match)
	}
	return titles
}

// containsInOrder returns the entries of list contained in text, in list order.
func containsInOrder(text string, list []string) []string {
	var found []string
	for _, entry := range list {
		if strings.Contains(text, entry) {
			found = append(found, entry)
		}
	}
	return found
}
