package models

// Subject is an exam subject (e.g. "Mathematics"). Main subjects are the
// ones test templates are grouped under.
type Subject struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Calculator bool   `json:"calculator"`
	ImageURL   string `json:"imageUrl,omitempty"`
	Main       bool   `json:"main"`
}
