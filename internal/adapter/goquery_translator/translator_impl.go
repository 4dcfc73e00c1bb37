package goquery_translator

import (
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/user/catalog-crawler/internal/entity"
	"github.com/user/catalog-crawler/pkg/utils"
)

// Config describes where item names and continuation links live in the
// source markup. Zero values fall back to the MediaWiki AllPages layout.
type Config struct {
	// BaseURL resolves relative continuation hrefs, e.g. "https://en.wikipedia.org".
	BaseURL string
	// ListSelector is the listing-container region; links outside it are
	// ignored even if link-shaped.
	ListSelector string
	// NavSelector is the pagination-navigation region used as the fallback
	// continuation signal.
	NavSelector string
	// NamespacePrefix is the href prefix a genuine catalog entry points into.
	NamespacePrefix string
	// EndpointMarker is the substring a textually-labeled continuation link
	// must target; keeps meta "next" links (e.g. next-article teasers) out.
	EndpointMarker string
}

func (c *Config) applyDefaults() {
	if c.ListSelector == "" {
		c.ListSelector = "div.mw-allpages-body"
	}
	if c.NavSelector == "" {
		c.NavSelector = "div.mw-allpages-nav"
	}
	if c.NamespacePrefix == "" {
		c.NamespacePrefix = "/wiki/"
	}
	if c.EndpointMarker == "" {
		c.EndpointMarker = "Special:AllPages"
	}
}

// GoqueryTranslator provides a concrete implementation for the PageTranslator
// interface using goquery. It is pure: no network and no store access.
type GoqueryTranslator struct {
	cfg  Config
	base *url.URL
}

// New creates a translator for the given source layout.
func New(cfg Config) (*GoqueryTranslator, error) {
	cfg.applyDefaults()
	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	return &GoqueryTranslator{cfg: cfg, base: base}, nil
}

// Translate extracts the ordered item names and the next-page URL from one
// listing page.
func (t *GoqueryTranslator) Translate(htmlContent string) (*entity.PageBatch, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return nil, fmt.Errorf("parse page: %w", err)
	}

	batch := &entity.PageBatch{}

	container := doc.Find(t.cfg.ListSelector).First()
	if container.Length() == 0 {
		slog.Warn("Could not find listing container", "selector", t.cfg.ListSelector)
	}

	container.Find("a").Each(func(_ int, s *goquery.Selection) {
		name, hasName := s.Attr("title")
		href, hasHref := s.Attr("href")
		if hasName && hasHref && strings.HasPrefix(href, t.cfg.NamespacePrefix) {
			batch.Names = append(batch.Names, name)
		}
	})

	batch.NextURL = t.findNextURL(doc)
	return batch, nil
}

// findNextURL locates the continuation affordance. A textually-labeled link
// targeting the listing endpoint takes precedence; links inside the
// navigation region are the fallback.
func (t *GoqueryTranslator) findNextURL(doc *goquery.Document) string {
	var next string

	doc.Find("a").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if !LooksLikeContinuation(s.Text()) {
			return true
		}
		href, ok := s.Attr("href")
		if !ok || !strings.Contains(href, t.cfg.EndpointMarker) {
			return true
		}
		if abs, err := utils.ToAbsoluteURL(t.base, href); err == nil {
			next = abs
			return false
		}
		return true
	})
	if next != "" {
		return next
	}

	doc.Find(t.cfg.NavSelector).First().Find("a").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if !LooksLikeContinuation(s.Text()) {
			return true
		}
		href, ok := s.Attr("href")
		if !ok {
			return true
		}
		if abs, err := utils.ToAbsoluteURL(t.base, href); err == nil {
			next = abs
			return false
		}
		return true
	})
	return next
}

// LooksLikeContinuation reports whether a link label indicates a subsequent
// page. Deliberately a loose substring match inherited from the source's
// markup; swap this predicate per remote source, not the driver.
func LooksLikeContinuation(label string) bool {
	return strings.Contains(strings.ToLower(label), "next")
}
