package models

import (
	"bytes"
	"encoding/json"
)

// VisitStatus records how a detail-page visit concluded.
type VisitStatus int

const (
	// StatusFound means a Visit Site anchor was present and carried an href.
	StatusFound VisitStatus = iota
	// StatusNotFound means the page was fetched but no qualifying anchor existed.
	StatusNotFound
	// StatusFetchFailed means the detail page could not be retrieved.
	StatusFetchFailed
)

// String returns a human-readable name for the status.
func (s VisitStatus) String() string {
	switch s {
	case StatusFound:
		return "found"
	case StatusNotFound:
		return "not_found"
	case StatusFetchFailed:
		return "fetch_failed"
	default:
		return "unknown"
	}
}

// VisitResult is the outcome of visiting one detail page.
type VisitResult struct {
	Link   string
	Status VisitStatus
}

// ResultSet maps detail-page URLs to visit outcomes, preserving
// first-discovery order. Membership checks are O(1).
type ResultSet struct {
	order   []string
	entries map[string]VisitResult
}

// NewResultSet creates an empty ResultSet.
func NewResultSet() *ResultSet {
	return &ResultSet{
		entries: make(map[string]VisitResult),
	}
}

// Has reports whether url already has an entry.
func (rs *ResultSet) Has(url string) bool {
	_, ok := rs.entries[url]
	return ok
}

// Set records the outcome for url. The first Set for a url fixes its
// position in the output ordering; later Sets overwrite the value only.
func (rs *ResultSet) Set(url string, result VisitResult) {
	if _, ok := rs.entries[url]; !ok {
		rs.order = append(rs.order, url)
	}
	rs.entries[url] = result
}

// Get returns the outcome for url and whether it exists.
func (rs *ResultSet) Get(url string) (VisitResult, bool) {
	result, ok := rs.entries[url]
	return result, ok
}

// Len returns the number of entries.
func (rs *ResultSet) Len() int {
	return len(rs.entries)
}

// URLs returns the entry keys in first-discovery order.
func (rs *ResultSet) URLs() []string {
	urls := make([]string, len(rs.order))
	copy(urls, rs.order)
	return urls
}

// MarshalJSON serializes the set as a JSON object whose keys appear in
// first-discovery order. Found links serialize as their href string;
// NotFound and FetchFailed both serialize as null, matching the output
// format consumers already parse.
func (rs *ResultSet) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, url := range rs.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(url)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		result := rs.entries[url]
		if result.Status == StatusFound {
			val, err := json.Marshal(result.Link)
			if err != nil {
				return nil, err
			}
			buf.Write(val)
		} else {
			buf.WriteString("null")
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
