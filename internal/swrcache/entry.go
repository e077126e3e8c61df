package swrcache

import "time"

// entry is one cached value and when it was fetched. Data holds whatever
// GetOrFetch was instantiated with; a lookup with a different type is a miss.
type entry struct {
	Data      any
	FetchedAt time.Time
}

