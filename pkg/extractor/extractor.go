package extractor

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/sitesift/sitesift/pkg/utils"
)

// Extractor pulls detail-page URLs out of listing pages and Visit Site
// links out of detail pages.
type Extractor struct {
	base   *url.URL
	marker string
	label  string
}

// New creates an Extractor. baseURL anchors relative hrefs, marker is the
// path segment that identifies detail-page anchors, and label is the anchor
// text that identifies the outbound link on a detail page.
func New(baseURL, marker, label string) (*Extractor, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", baseURL, err)
	}
	return &Extractor{
		base:   base,
		marker: marker,
		label:  strings.ToLower(strings.TrimSpace(label)),
	}, nil
}

// SiteLinks returns the unique detail-page URLs referenced by a listing
// page, in first-occurrence order. Hrefs are resolved against the base URL
// with query strings stripped; anchors with empty hrefs are skipped. Markup
// with no matching anchors yields an empty slice.
func (e *Extractor) SiteLinks(markup string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("parse listing page: %w", err)
	}

	seen := make(map[string]bool)
	var links []string
	selector := fmt.Sprintf(`a[href*=%q]`, e.marker)
	doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
		href, ok := s.Attr("href")
		if !ok || href == "" {
			return
		}
		absolute, err := utils.ResolveRef(e.base, utils.StripQuery(href))
		if err != nil {
			return
		}
		if seen[absolute] {
			return
		}
		seen[absolute] = true
		links = append(links, absolute)
	})
	return links, nil
}

// VisitSite returns the href of the first anchor whose trimmed,
// case-folded text equals the configured label. The href is returned
// verbatim. found is false when no anchor matches, or when the first
// matching anchor has no href attribute.
func (e *Extractor) VisitSite(markup string) (href string, found bool, err error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return "", false, fmt.Errorf("parse detail page: %w", err)
	}

	doc.Find("a").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if strings.ToLower(strings.TrimSpace(s.Text())) != e.label {
			return true
		}
		// First qualifying anchor wins, href or not.
		href, found = s.Attr("href")
		return false
	})
	return href, found, nil
}
