package monitor

import (
	"bytes"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ClassifyLinks extracts internal URLs from homepage HTML whose href or
// anchor text contains one of the keywords, case-insensitively. The result
// is order-stable (document order), deduplicated, restricted to the
// homepage's host, and capped at maxLinks to bound downstream fetch cost.
// No network access; keywords are expected lowercased.
func ClassifyLinks(html []byte, base string, keywords []string, maxLinks int) ([]string, error) {
	if maxLinks <= 0 || len(keywords) == 0 {
		return nil, nil
	}
	baseURL, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse homepage html: %w", err)
	}

	var out []string
	seen := make(map[string]struct{})
	doc.Find("a[href]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		href, ok := sel.Attr("href")
		if !ok {
			return true
		}
		anchorText := sel.Text()
		if !matchesAnyKeyword(href, anchorText, keywords) {
			return true
		}

		resolved := resolveInternal(baseURL, href)
		if resolved == "" {
			return true
		}
		if _, dup := seen[resolved]; dup {
			return true
		}
		seen[resolved] = struct{}{}
		out = append(out, resolved)
		return len(out) < maxLinks
	})
	return out, nil
}

func matchesAnyKeyword(href, anchorText string, keywords []string) bool {
	lowerHref := strings.ToLower(href)
	lowerText := strings.ToLower(anchorText)
	for _, kw := range keywords {
		if kw == "" {
			continue
		}
		if strings.Contains(lowerHref, kw) || strings.Contains(lowerText, kw) {
			return true
		}
	}
	return false
}

// resolveInternal turns href into an absolute URL on the same host as base.
// Cross-host, non-HTTP, and self links resolve to "".
func resolveInternal(base *url.URL, href string) string {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return ""
	}
	resolved := base.ResolveReference(ref)
	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return ""
	}
	if !strings.EqualFold(resolved.Hostname(), base.Hostname()) {
		return ""
	}
	resolved.Fragment = ""
	if resolved.Path == "" {
		resolved.Path = "/"
	}
	norm := *base
	norm.Fragment = ""
	if norm.Path == "" {
		norm.Path = "/"
	}
	if resolved.String() == norm.String() {
		return ""
	}
	return resolved.String()
}
