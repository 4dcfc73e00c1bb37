package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"net/url"
)

// defaultStart is the "from" value for a start-of-sequence walk; the listing
// source orders punctuation before letters, so "!" covers the whole namespace.
const defaultStart = "!"

// ListingURLBuilder builds fetch URLs for the paginated listing endpoint.
// The resume name is form-encoded (space becomes "+") and appended as the
// "from" query parameter, which is the exact shape the remote service accepts.
type ListingURLBuilder struct {
	// Endpoint is the fixed listing endpoint, e.g. "https://en.wikipedia.org/w/index.php".
	Endpoint string
	// PageName is the listing page identifier, e.g. "Special:AllPages".
	PageName string
}

// URLFor returns the fetch URL starting from the given name. An empty name
// means start-of-sequence.
func (b ListingURLBuilder) URLFor(from string) string {
	if from == "" {
		from = defaultStart
	}
	q := url.Values{}
	q.Set("title", b.PageName)
	q.Set("from", from)
	return b.Endpoint + "?" + q.Encode()
}

// HashKey creates a SHA256 hash of a raw value.
// This is useful for creating consistent, safe keys for Redis.
func HashKey(raw string) string {
	h := sha256.New()
	h.Write([]byte(raw))
	return hex.EncodeToString(h.Sum(nil))
}

// ToAbsoluteURL converts a relative URL to an absolute URL given a base URL.
func ToAbsoluteURL(base *url.URL, relative string) (string, error) {
	relURL, err := url.Parse(relative)
	if err != nil {
		return "", err
	}
	return base.ResolveReference(relURL).String(), nil
}
