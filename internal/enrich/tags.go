package enrich

import (
	"net/url"
	"regexp"
	"strings"
)

var nonWordRE = regexp.MustCompile(`[^\w\s]`)

// GenerateTags derives an ordered-unique list of lowercase tags from a
// bookmark's URL, title and summary: the second-level domain first,
// then up to 3 title words, then up to 2 summary words. Words shorter
// than 4 characters are ignored. Pure and never fails; an unparseable
// URL only skips the domain tag.
func GenerateTags(rawURL, title, summary string) []string {
	tags := make([]string, 0, 6)
	seen := make(map[string]struct{}, 6)

	add := func(tag string) {
		if _, ok := seen[tag]; ok {
			return
		}
		seen[tag] = struct{}{}
		tags = append(tags, tag)
	}

	if domain := domainTag(rawURL); domain != "" {
		add(domain)
	}
	for _, word := range significantWords(title, 3) {
		add(word)
	}
	for _, word := range significantWords(summary, 2) {
		add(word)
	}

	return tags
}

// domainTag extracts the hostname minus a leading www. and its
// top-level label: "www.example.com" -> "example". Empty on any parse
// failure or single-label host.
func domainTag(rawURL string) string {
	u, err := url.Parse(EnsureScheme(rawURL))
	if err != nil {
		return ""
	}

	host := strings.TrimPrefix(u.Hostname(), "www.")
	labels := strings.Split(host, ".")
	return strings.Join(labels[:len(labels)-1], ".")
}

// significantWords lowercases s, strips punctuation, and returns the
// first limit words longer than 3 characters, in original order.
func significantWords(s string, limit int) []string {
	if s == "" {
		return nil
	}

	cleaned := nonWordRE.ReplaceAllString(strings.ToLower(s), "")

	words := make([]string, 0, limit)
	for _, word := range strings.Fields(cleaned) {
		if len(word) <= 3 {
			continue
		}
		words = append(words, word)
		if len(words) == limit {
			break
		}
	}
	return words
}
