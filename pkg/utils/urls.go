package utils

import (
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// StripQuery truncates a URL or href at the first '?', dropping query
// parameters and anything after them.
func StripQuery(href string) string {
	if idx := strings.Index(href, "?"); idx >= 0 {
		return href[:idx]
	}
	return href
}

// ResolveRef resolves href (relative or absolute) against base.
func ResolveRef(base *url.URL, href string) (string, error) {
	ref, err := url.Parse(href)
	if err != nil {
		return "", fmt.Errorf("invalid href %q: %w", href, err)
	}
	return base.ResolveReference(ref).String(), nil
}

// RegistrableDomain extracts the eTLD+1 from a link, falling back to the
// bare hostname when the public suffix list has no answer for it.
func RegistrableDomain(link string) (string, error) {
	u, err := url.Parse(link)
	if err != nil {
		return "", fmt.Errorf("invalid URL %q: %w", link, err)
	}
	host := strings.ToLower(u.Hostname())
	if host == "" {
		return "", fmt.Errorf("no hostname in %q", link)
	}
	domain, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return host, nil
	}
	return domain, nil
}
