package models

import "time"

// Product represents one extracted catalog listing
type Product struct {
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	Price        float64 `json:"price"`
	Rating       int     `json:"rating"`
	NumOfReviews int     `json:"num_of_reviews"`
}

// ProductFields is the persisted column order for product records
var ProductFields = []string{"title", "description", "price", "rating", "num_of_reviews"}

// PageTarget names one catalog page to harvest
type PageTarget struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// StopReason records why the pagination loop ended. Both reasons end the
// loop the same way; the distinction exists only for logging.
type StopReason string

const (
	// StopExhausted means the load-more control never became clickable
	// again within the wait window.
	StopExhausted StopReason = "exhausted"
	// StopIntercepted means the control was visible but another element
	// swallowed the click.
	StopIntercepted StopReason = "intercepted"
)

// PageResult contains the outcome of processing a single catalog page.
// A failed page carries Err and an empty Products slice; the run continues.
type PageResult struct {
	Target     PageTarget
	Products   []Product
	Dropped    int
	Clicks     int
	StopReason StopReason
	Duration   time.Duration
	Err        error
}

// Failed reports whether the page produced no usable document
func (r PageResult) Failed() bool {
	return r.Err != nil
}

// Summary aggregates the outcome of a full run across all pages
type Summary struct {
	Pages        int
	PagesFailed  int
	Products     int
	Dropped      int
	Clicks       int
	FilesWritten int
	Elapsed      time.Duration
}
