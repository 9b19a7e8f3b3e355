package monitor

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

// noiseSelectors lists elements stripped before text extraction. Navigation
// chrome and embedded code never carry promotion copy.
const noiseSelectors = "script, style, noscript, iframe, svg, nav, header, footer, aside, form"

// ExtractText strips markup and navigation noise from HTML, collapses
// whitespace, and truncates the result to at most maxChars characters.
// Truncation happens at a word boundary where one exists. Deterministic
// given the same HTML.
func ExtractText(html []byte, maxChars int) string {
	if maxChars <= 0 {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return ""
	}
	doc.Find(noiseSelectors).Remove()

	text := strings.Join(strings.Fields(doc.Text()), " ")
	return TruncateText(text, maxChars)
}

// TruncateText caps text at maxChars characters, preferring to cut at the
// last space before the limit so words are not split mid-way. The cut always
// lands on a rune boundary, so multi-byte text stays valid UTF-8.
func TruncateText(text string, maxChars int) string {
	if maxChars <= 0 {
		return ""
	}
	if utf8.RuneCountInString(text) <= maxChars {
		return text
	}
	cut := string([]rune(text)[:maxChars])
	if idx := strings.LastIndexByte(cut, ' '); idx > 0 {
		cut = cut[:idx]
	}
	return cut
}
