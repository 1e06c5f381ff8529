package extract

import (
	"regexp"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Cue words that precede a price, e.g. "costs 12.50" or "за 300".
var costCues = []string{
	"costs", "cost", "price", "for", "bought", "spent", "paid",
	"стоит", "цена", "за", "купил", "купила", "заплатил", "потратил",
}

// Words marking the purchase verb; the token after one is the item name.
var purchaseKeywords = []string{
	"bought", "ordered", "purchased", "acquired", "spent", "purchase",
	"купил", "купила", "заказал", "заказала", "приобрел", "приобрела", "покупка", "потратил",
}

// Words removed from a task message before taking its title.
var taskKeywords = []string{
	"task", "todo", "do", "need", "needs", "deadline", "due", "remind", "meeting", "report",
	"задача", "сделать", "нужно", "дедлайн", "срок", "напомни", "встреч", "отчёт",
}

var (
	costRegex = regexp.MustCompile(`(?i)(?:` + alternation(costCues, false) + `)\s*(\d+(?:[.,]\d+)?)`)
	dateRegex = regexp.MustCompile(`\b(\d{1,2}[./-]\d{1,2}(?:[./-]\d{2,4})?|\d{4}-\d{2}-\d{2})\b`)

	purchaseWords = newWordSet(purchaseKeywords)
	taskWords     = newWordPattern(taskKeywords)
)

// alternation joins words into a regexp alternation. With longestFirst the
// longer words are tried first so that "needs" wins over "need".
func alternation(words []string, longestFirst bool) string {
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = regexp.QuoteMeta(w)
	}
	if longestFirst {
		slices.SortStableFunc(quoted, func(a, b string) int {
			return utf8.RuneCountInString(b) - utf8.RuneCountInString(a)
		})
	}
	return strings.Join(quoted, "|")
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// wordSet answers whether a token contains one of its words as a whole word.
type wordSet map[string]struct{}

func newWordSet(words []string) wordSet {
	set := make(wordSet, len(words))
	for _, w := range words {
		set[strings.ToLower(w)] = struct{}{}
	}
	return set
}

func (ws wordSet) matches(token string) bool {
	for _, word := range strings.FieldsFunc(strings.ToLower(token), func(r rune) bool { return !isWordRune(r) }) {
		if _, ok := ws[word]; ok {
			return true
		}
	}
	return false
}

// wordPattern finds whole-word, case-insensitive occurrences of a word
// list. Go's \b only understands ASCII, so boundaries are checked by hand
// to handle Cyrillic text.
type wordPattern struct {
	re *regexp.Regexp
}

func newWordPattern(words []string) *wordPattern {
	return &wordPattern{re: regexp.MustCompile(`(?i)(?:` + alternation(words, true) + `)`)}
}

// find returns the [start, end) byte offsets of every whole-word match.
func (p *wordPattern) find(s string) [][]int {
	var matches [][]int
	pos := 0
	for pos < len(s) {
		loc := p.re.FindStringIndex(s[pos:])
		if loc == nil {
			break
		}
		start, end := pos+loc[0], pos+loc[1]
		if boundaryBefore(s, start) && boundaryAfter(s, end) {
			matches = append(matches, []int{start, end})
			pos = end
			continue
		}
		_, size := utf8.DecodeRuneInString(s[start:])
		pos = start + size
	}
	return matches
}

// remove deletes every whole-word match from s.
func (p *wordPattern) remove(s string) string {
	matches := p.find(s)
	if len(matches) == 0 {
		return s
	}

	var b strings.Builder
	last := 0
	for _, m := range matches {
		b.WriteString(s[last:m[0]])
		last = m[1]
	}
	b.WriteString(s[last:])
	return b.String()
}

func boundaryBefore(s string, i int) bool {
	if i == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(s[:i])
	return !isWordRune(r)
}

func boundaryAfter(s string, i int) bool {
	if i >= len(s) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(s[i:])
	return !isWordRune(r)
}
