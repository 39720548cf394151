package reporter

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/sitesift/sitesift/internal/models"
	"github.com/sitesift/sitesift/pkg/utils"
)

// Reporter renders scrape results as JSON and summary views.
type Reporter struct {
	indent string
}

// New creates a new Reporter instance
func New() *Reporter {
	return &Reporter{indent: "  "}
}

// GenerateJSON renders the result set as an indented JSON object with keys
// in first-discovery order. Entries without an extracted link render as null.
func (r *Reporter) GenerateJSON(rs *models.ResultSet) (string, error) {
	data, err := json.MarshalIndent(rs, "", r.indent)
	if err != nil {
		return "", fmt.Errorf("failed to marshal results: %w", err)
	}
	return string(data), nil
}

// WriteJSON writes the JSON rendering to path, or to stdout when path is
// empty.
func (r *Reporter) WriteJSON(rs *models.ResultSet, path string) error {
	out, err := r.GenerateJSON(rs)
	if err != nil {
		return err
	}
	if path == "" {
		fmt.Println(out)
		return nil
	}
	if err := os.WriteFile(path, []byte(out+"\n"), 0644); err != nil {
		return fmt.Errorf("failed to write results: %w", err)
	}
	return nil
}

// DomainCount pairs a registrable domain with how many extracted links
// point at it.
type DomainCount struct {
	Domain string
	Count  int
}

// DomainSummary aggregates extracted Visit Site links per eTLD+1, sorted by
// count descending then domain ascending. Entries without a link are
// ignored, as are links with no parseable hostname.
func (r *Reporter) DomainSummary(rs *models.ResultSet) []DomainCount {
	counts := make(map[string]int)
	for _, url := range rs.URLs() {
		result, _ := rs.Get(url)
		if result.Status != models.StatusFound {
			continue
		}
		domain, err := utils.RegistrableDomain(result.Link)
		if err != nil {
			continue
		}
		counts[domain]++
	}

	summary := make([]DomainCount, 0, len(counts))
	for domain, count := range counts {
		summary = append(summary, DomainCount{Domain: domain, Count: count})
	}
	sort.Slice(summary, func(i, j int) bool {
		if summary[i].Count == summary[j].Count {
			return summary[i].Domain < summary[j].Domain
		}
		return summary[i].Count > summary[j].Count
	})
	return summary
}
