package model

// SearchHit is one external search result, optionally enriched by a
// page fetch and extraction pass.
type SearchHit struct {
	URL             string         `json:"url"`
	Title           string         `json:"title"`
	Snippet         string         `json:"snippet"`
	SourceLabel     string         `json:"source_label"`
	ExtractedFields map[string]any `json:"extracted_fields,omitempty"`
	FetchSucceeded  bool           `json:"fetch_succeeded"`
	FetchError      string         `json:"fetch_error,omitempty"`

	// QuotaPlaceholder marks a synthetic hit inserted when the search
	// provider reported quota exhaustion for a query. Placeholder hits
	// never contribute to profiles.
	QuotaPlaceholder bool `json:"quota_placeholder,omitempty"`
}
