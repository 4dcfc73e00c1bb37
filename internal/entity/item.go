package entity

import "time"

// Item mirrors the `items` PostgreSQL table schema. The name is the unique
// identifier, stored exactly as presented by the listing source (case- and
// whitespace-sensitive).
type Item struct {
	ID           int64
	Name         string
	DiscoveredAt time.Time
}
