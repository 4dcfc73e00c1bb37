package entity

// StopCause classifies why a crawl run ended.
type StopCause string

const (
	StopNaturalEnd         StopCause = "natural_end"
	StopPageBudget         StopCause = "page_budget"
	StopFetchError         StopCause = "fetch_error"
	StopTranslationAnomaly StopCause = "translation_anomaly"
	StopPersistenceFailure StopCause = "persistence_failure"
	StopCanceled           StopCause = "canceled"
)

// CrawlSummary is the terminal report of one run. It is always produced,
// including after a failure stop, so partial progress is visible.
type CrawlSummary struct {
	PagesFetched int
	ItemsAdded   int64
	FinalCount   int64
	Cause        StopCause
	Err          error
}

// Progress is a point-in-time snapshot of a running crawl, served by the
// ops HTTP surface. Ephemeral, never persisted.
type Progress struct {
	PagesFetched int64  `json:"pages_fetched"`
	ItemsAdded   int64  `json:"items_added"`
	LastName     string `json:"last_name,omitempty"`
	Running      bool   `json:"running"`
}
