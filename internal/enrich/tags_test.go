package enrich

import (
	"reflect"
	"testing"
)

func TestGenerateTags(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		title    string
		summary  string
		expected []string
	}{
		{
			name:     "domain plus title and summary words",
			url:      "https://www.example.com/page",
			title:    "An Example Page Title",
			summary:  "This article discusses examples",
			expected: []string{"example", "page", "title", "this", "article"},
		},
		{
			name:     "repeated word fills the title cap",
			url:      "https://example.com",
			title:    "Example example EXAMPLE again",
			summary:  "",
			expected: []string{"example"},
		},
		{
			name:     "duplicates collapse in order",
			url:      "https://example.com",
			title:    "Example guide example",
			summary:  "notes guide extras",
			expected: []string{"example", "guide", "notes"},
		},
		{
			name:     "title capped at three words",
			url:      "https://blog.example.org/post",
			title:    "first second third fourth fifth",
			summary:  "",
			expected: []string{"blog.example", "first", "second", "third"},
		},
		{
			name:     "summary capped at two words",
			url:      "https://example.com",
			title:    "",
			summary:  "alpha bravo charlie delta",
			expected: []string{"example", "alpha", "bravo"},
		},
		{
			name:     "short words skipped",
			url:      "https://example.com",
			title:    "Go is fun and fast tooling",
			summary:  "",
			expected: []string{"example", "fast", "tooling"},
		},
		{
			name:     "punctuation stripped before splitting",
			url:      "https://example.com",
			title:    "Hello, World! (Draft)",
			summary:  "",
			expected: []string{"example", "hello", "world", "draft"},
		},
		{
			name:     "single-label host yields no domain tag",
			url:      "http://localhost:8080/page",
			title:    "Local Dashboard",
			summary:  "",
			expected: []string{"local", "dashboard"},
		},
		{
			name:     "unparseable url only skips the domain",
			url:      "https://%zz",
			title:    "Broken Link Title",
			summary:  "",
			expected: []string{"broken", "link", "title"},
		},
		{
			name:     "everything empty",
			url:      "https://%zz",
			title:    "",
			summary:  "",
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GenerateTags(tt.url, tt.title, tt.summary)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("GenerateTags() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestDomainTag(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		expected string
	}{
		{
			name:     "www prefix stripped",
			url:      "https://www.example.com",
			expected: "example",
		},
		{
			name:     "subdomain kept",
			url:      "https://news.ycombinator.com",
			expected: "news.ycombinator",
		},
		{
			name:     "bare hostname without scheme",
			url:      "example.com/page",
			expected: "example",
		},
		{
			name:     "single label",
			url:      "http://localhost",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := domainTag(tt.url); got != tt.expected {
				t.Errorf("domainTag(%q) = %q, want %q", tt.url, got, tt.expected)
			}
		})
	}
}
