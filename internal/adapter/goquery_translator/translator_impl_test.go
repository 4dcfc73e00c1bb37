package goquery_translator

import (
	"testing"
)

const listingPage = `
<html><body>
	<div id="header">
		<a href="/wiki/Main_Page" title="Main Page">Main Page</a>
	</div>
	<div class="mw-allpages-nav">
		<a href="/w/index.php?title=Special:AllPages&amp;from=%21">Previous page (!)</a>
		<a href="/w/index.php?title=Special:AllPages&amp;from=Baboon">Next page (Baboon)</a>
	</div>
	<div class="mw-allpages-body">
		<ul>
			<li><a href="/wiki/Aardvark" title="Aardvark">Aardvark</a></li>
			<li><a href="/wiki/Abacus" title="Abacus">Abacus</a></li>
			<li><a href="/w/index.php?title=Special:Random" title="Special:Random">Random</a></li>
			<li><a href="/wiki/Untitled">Untitled</a></li>
		</ul>
	</div>
	<div id="footer">
		<a href="/wiki/Privacy_policy" title="Privacy policy">Privacy policy</a>
	</div>
</body></html>`

func newTestTranslator(t *testing.T) *GoqueryTranslator {
	t.Helper()
	tr, err := New(Config{BaseURL: "https://en.wikipedia.org"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return tr
}

func TestTranslate_ExtractsOnlyListedItems(t *testing.T) {
	tr := newTestTranslator(t)

	batch, err := tr.Translate(listingPage)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Header and footer links are excluded even though they are link-shaped;
	// the Special: link misses the namespace prefix and the untitled link
	// misses a display name.
	want := []string{"Aardvark", "Abacus"}
	if len(batch.Names) != len(want) {
		t.Fatalf("got %d names %v, want %d", len(batch.Names), batch.Names, len(want))
	}
	for i, name := range want {
		if batch.Names[i] != name {
			t.Fatalf("names[%d] = %q, want %q", i, batch.Names[i], name)
		}
	}
}

func TestTranslate_NavContinuationResolvedAgainstBase(t *testing.T) {
	tr := newTestTranslator(t)

	batch, err := tr.Translate(listingPage)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "https://en.wikipedia.org/w/index.php?title=Special:AllPages&from=Baboon"
	if batch.NextURL != want {
		t.Fatalf("NextURL = %q, want %q", batch.NextURL, want)
	}
}

func TestTranslate_TextualNextTakesPrecedence(t *testing.T) {
	page := `
	<html><body>
		<a href="/w/index.php?title=Special:AllPages&amp;from=Textual">Next page (Textual)</a>
		<div class="mw-allpages-nav">
			<a href="/w/index.php?title=Special:AllPages&amp;from=Nav">Next page (Nav)</a>
		</div>
		<div class="mw-allpages-body">
			<a href="/wiki/Aardvark" title="Aardvark">Aardvark</a>
		</div>
	</body></html>`

	tr := newTestTranslator(t)
	batch, err := tr.Translate(page)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "https://en.wikipedia.org/w/index.php?title=Special:AllPages&from=Textual"
	if batch.NextURL != want {
		t.Fatalf("NextURL = %q, want %q", batch.NextURL, want)
	}
}

func TestTranslate_TextualNextMustTargetListingEndpoint(t *testing.T) {
	// A "next" label pointing elsewhere (an article teaser) is not a
	// continuation; the nav region is the fallback.
	page := `
	<html><body>
		<a href="/wiki/Next_Friday" title="Next Friday">Next Friday</a>
		<div class="mw-allpages-nav">
			<a href="/w/index.php?title=Special:AllPages&amp;from=Nav">Next page (Nav)</a>
		</div>
		<div class="mw-allpages-body">
			<a href="/wiki/Aardvark" title="Aardvark">Aardvark</a>
		</div>
	</body></html>`

	tr := newTestTranslator(t)
	batch, err := tr.Translate(page)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "https://en.wikipedia.org/w/index.php?title=Special:AllPages&from=Nav"
	if batch.NextURL != want {
		t.Fatalf("NextURL = %q, want %q", batch.NextURL, want)
	}
}

func TestTranslate_NoContinuationAffordance(t *testing.T) {
	page := `
	<html><body>
		<div class="mw-allpages-nav">
			<a href="/w/index.php?title=Special:AllPages&amp;from=%21">Previous page (!)</a>
		</div>
		<div class="mw-allpages-body">
			<a href="/wiki/Zyzzyva" title="Zyzzyva">Zyzzyva</a>
		</div>
	</body></html>`

	tr := newTestTranslator(t)
	batch, err := tr.Translate(page)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if batch.NextURL != "" {
		t.Fatalf("expected absent next cursor, got %q", batch.NextURL)
	}
	if len(batch.Names) != 1 || batch.Names[0] != "Zyzzyva" {
		t.Fatalf("unexpected names: %v", batch.Names)
	}
}

func TestTranslate_MissingContainerYieldsNoItems(t *testing.T) {
	page := `
	<html><body>
		<a href="/wiki/Stray" title="Stray">Stray</a>
		<a href="/w/index.php?title=Special:AllPages&amp;from=More">Next page (More)</a>
	</body></html>`

	tr := newTestTranslator(t)
	batch, err := tr.Translate(page)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(batch.Names) != 0 {
		t.Fatalf("expected no names without a container, got %v", batch.Names)
	}
	// The continuation is still reported; deciding that this combination is
	// an anomaly belongs to the crawl driver.
	if batch.NextURL == "" {
		t.Fatal("expected next cursor to survive a missing container")
	}
}

func TestTranslate_CustomSelectors(t *testing.T) {
	page := `
	<html><body>
		<section class="catalog">
			<a href="/items/widget-a" title="Widget A">Widget A</a>
			<a href="/items/widget-b" title="Widget B">Widget B</a>
		</section>
		<footer class="pager">
			<a href="/catalog?page=2">next</a>
		</footer>
	</body></html>`

	tr, err := New(Config{
		BaseURL:         "https://shop.example.com",
		ListSelector:    "section.catalog",
		NavSelector:     "footer.pager",
		NamespacePrefix: "/items/",
		EndpointMarker:  "/catalog",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	batch, err := tr.Translate(page)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(batch.Names) != 2 {
		t.Fatalf("unexpected names: %v", batch.Names)
	}
	if batch.NextURL != "https://shop.example.com/catalog?page=2" {
		t.Fatalf("NextURL = %q", batch.NextURL)
	}
}

func TestLooksLikeContinuation(t *testing.T) {
	tests := []struct {
		label string
		want  bool
	}{
		{"Next page (Baboon)", true},
		{"next", true},
		{"NEXT PAGE", true},
		{"Previous page (!)", false},
		{"", false},
		{"forward", false},
	}

	for _, tt := range tests {
		if got := LooksLikeContinuation(tt.label); got != tt.want {
			t.Errorf("LooksLikeContinuation(%q) = %v, want %v", tt.label, got, tt.want)
		}
	}
}
