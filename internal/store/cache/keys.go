package cache

// KeyPrefixPage is the prefix for cached enrichment results, keyed by
// normalized URL.
const KeyPrefixPage = "marq:page:"

// PageKey returns the Redis key for a URL's cached enrichment result.
func PageKey(url string) string {
	return KeyPrefixPage + url
}
