package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Business metric names
const (
	MetricNameItemsBought       = "items_bought_total"
	MetricNameItemsSold         = "items_sold_total"
	MetricNameCurrencySpent     = "currency_spent_total"
	MetricNameCurrencyEarned    = "currency_earned_total"
	MetricNameEntriesRestocked  = "entries_restocked_total"
	MetricNameReputationGained  = "reputation_gained_total"
	MetricNameCacheHits         = "merchant_cache_hits_total"
	MetricNameCacheMisses       = "merchant_cache_misses_total"
	MetricNameDegradedResponses = "degraded_responses_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Business metric help text
const (
	HelpTextItemsBought       = "Total number of items bought from merchants"
	HelpTextItemsSold         = "Total number of items sold to merchants"
	HelpTextCurrencySpent     = "Total currency spent buying items, by currency"
	HelpTextCurrencyEarned    = "Total currency credited from selling items, by currency"
	HelpTextEntriesRestocked  = "Total number of inventory entries restocked"
	HelpTextReputationGained  = "Total reputation points granted by trades"
	HelpTextCacheHits         = "Total merchant cache hits"
	HelpTextCacheMisses       = "Total merchant cache misses"
	HelpTextDegradedResponses = "Total catalog responses served from stale cache after a read failure"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod   = "method"
	LabelPath     = "path"
	LabelStatus   = "status"
	LabelItem     = "item"
	LabelCurrency = "currency"
	LabelMerchant = "merchant"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds. These buckets range from 1ms to 10s to capture various latency
// patterns: fast (1-10ms), normal (10-100ms), slow (100ms-1s), very slow (1-10s)
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}
