package analysis

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"nyaya/internal/domain"
)

// Digits and spaces are matched in any script so Devanagari numerals and
// non-breaking spaces are recognized.
const (
	digit = `\p{Nd}`
	space = `[\s\v\x1c-\x1f\p{Z}\x{85}]`
)

var (
	// dateRe has no word boundaries; findDates checks them against Unicode
	// letters and digits.
	dateRe   = regexp.MustCompile(digit + `{1,2}[-/]` + digit + `{1,2}[-/]` + digit + `{2,4}`)
	amountRe = regexp.MustCompile(`(?i)₹` + space + `*` + digit + `+(?:,` + digit + `+)*` +
		`|\$` + space + `*` + digit + `+(?:,` + digit + `+)*` +
		`|` + digit + `+` + space + `*(?:rupees|dollars|lakh|crore)`)
)

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}

// findDates returns every date match that is not glued to a letter, digit or
// underscore on either side. A rejected candidate resumes the scan one rune
// after its start so a later valid date inside it is still found.
func findDates(text string) []string {
	dates := []string{}
	for offset := 0; offset < len(text); {
		loc := dateRe.FindStringIndex(text[offset:])
		if loc == nil {
			break
		}
		start, end := offset+loc[0], offset+loc[1]
		before, _ := utf8.DecodeLastRuneInString(text[:start])
		after, _ := utf8.DecodeRuneInString(text[end:])
		if (start == 0 || !isWordRune(before)) && (end == len(text) || !isWordRune(after)) {
			dates = append(dates, text[start:end])
			offset = end
			continue
		}
		_, size := utf8.DecodeRuneInString(text[start:])
		offset = start + size
	}
	return dates
}

// keywordGroup is a list of legal terms in one language.
type keywordGroup struct {
	language string
	words    []string
}

// legalKeywords are matched in this order: English, Hindi, Marathi.
// न्यायालय and वकील appear in both Hindi and Marathi lists, so a match on
// either is reported twice.
var legalKeywords = []keywordGroup{
	{language: "english", words: []string{"contract", "agreement", "dispute", "court", "lawyer", "case", "legal", "law"}},
	{language: "hindi", words: []string{"कानूनी", "न्यायालय", "वकील", "मामला", "विवाद", "समझौता"}},
	{language: "marathi", words: []string{"कायदेशीर", "न्यायालय", "वकील", "प्रकरण", "वाद", "करार"}},
}

// Extract pulls dates, monetary amounts and legal keywords out of text.
// It never fails; text without matches yields three empty slices.
func Extract(text string) domain.ExtractedInfo {
	info := domain.ExtractedInfo{
		Dates:         findDates(text),
		Amounts:       amountRe.FindAllString(text, -1),
		LegalKeywords: []string{},
	}
	if info.Amounts == nil {
		info.Amounts = []string{}
	}

	lower := strings.ToLower(text)
	for _, group := range legalKeywords {
		for _, word := range group.words {
			if strings.Contains(lower, strings.ToLower(word)) {
				info.LegalKeywords = append(info.LegalKeywords, word)
			}
		}
	}
	return info
}
