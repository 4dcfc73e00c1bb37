package response

import "time"

// ProgressResponse is the JSON body served by GET /api/progress.
type ProgressResponse struct {
	PagesFetched int64  `json:"pages_fetched"`
	ItemsAdded   int64  `json:"items_added"`
	LastName     string `json:"last_name,omitempty"`
	Running      bool   `json:"running"`
}

// ItemResponse is one element of the JSON array served by GET /api/items.
type ItemResponse struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	DiscoveredAt time.Time `json:"discovered_at"`
}
