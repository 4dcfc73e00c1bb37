package utils

import (
	"net/url"
	"testing"
)

func TestListingURLBuilder_URLFor(t *testing.T) {
	b := ListingURLBuilder{
		Endpoint: "https://en.wikipedia.org/w/index.php",
		PageName: "Special:AllPages",
	}

	tests := []struct {
		name string
		from string
		want string
	}{
		{
			name: "start of sequence",
			from: "",
			want: "https://en.wikipedia.org/w/index.php?from=%21&title=Special%3AAllPages",
		},
		{
			name: "plain name",
			from: "Aardvark",
			want: "https://en.wikipedia.org/w/index.php?from=Aardvark&title=Special%3AAllPages",
		},
		{
			name: "name with spaces and punctuation uses form encoding",
			from: "C# (programming language)",
			want: "https://en.wikipedia.org/w/index.php?from=C%23+%28programming+language%29&title=Special%3AAllPages",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := b.URLFor(tt.from); got != tt.want {
				t.Fatalf("URLFor(%q) = %q, want %q", tt.from, got, tt.want)
			}
		})
	}
}

func TestListingURLBuilder_RoundTripsThroughQueryParse(t *testing.T) {
	b := ListingURLBuilder{
		Endpoint: "https://en.wikipedia.org/w/index.php",
		PageName: "Special:AllPages",
	}

	raw := b.URLFor(`Weird "name" +&= stuff`)
	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("built URL does not parse: %v", err)
	}
	if got := u.Query().Get("from"); got != `Weird "name" +&= stuff` {
		t.Fatalf("from param round-trip = %q", got)
	}
}

func TestHashKey(t *testing.T) {
	a := HashKey("Aardvark")
	b := HashKey("Aardvark")
	c := HashKey("Abacus")

	if a != b {
		t.Fatalf("hashing is not deterministic: %q vs %q", a, b)
	}
	if a == c {
		t.Fatalf("distinct values hashed to the same key: %q", a)
	}
	if len(a) != 64 {
		t.Fatalf("expected 64 hex chars, got %d", len(a))
	}
}

func TestToAbsoluteURL(t *testing.T) {
	base, _ := url.Parse("https://en.wikipedia.org/w/index.php?title=Special:AllPages")

	got, err := ToAbsoluteURL(base, "/w/index.php?title=Special:AllPages&from=Baboon")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "https://en.wikipedia.org/w/index.php?title=Special:AllPages&from=Baboon"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}
