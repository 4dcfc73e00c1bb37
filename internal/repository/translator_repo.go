package repository

import "github.com/user/catalog-crawler/internal/entity"

// PageTranslator turns one fetched listing page into an ordered batch of
// item names plus an optional pointer to the next page. Pure: no network,
// no store access. A batch with zero names but a next URL is returned as-is;
// classifying it as an anomaly is the crawl driver's job.
type PageTranslator interface {
	Translate(htmlContent string) (*entity.PageBatch, error)
}
