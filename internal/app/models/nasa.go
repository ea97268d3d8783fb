package models

// NASAOpportunity is a catalog entry for an external program listing.
// The catalog is static and served from memory.
type NASAOpportunity struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	Agency      string   `json:"agency"`
	Category    string   `json:"category"`
	Description string   `json:"description"`
	Eligibility string   `json:"eligibility"`
	Deadline    string   `json:"deadline"`
	URL         string   `json:"url"`
	Tags        []string `json:"tags"`
}
