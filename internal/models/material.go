package models

// ManifestEntry is one material listed in the materials manifest.
type ManifestEntry struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Category   string `json:"category"`
	TotalPages int    `json:"total_pages"`
}

// Manifest is the index of converted materials on disk.
type Manifest struct {
	Version   string          `json:"version"`
	Materials []ManifestEntry `json:"materials"`
}

// MaterialPage is one converted page of a material.
type MaterialPage struct {
	PageNumber   int    `json:"page_number"`
	PageID       string `json:"page_id"`
	ImageURL     string `json:"image_url"`
	ThumbnailURL string `json:"thumbnail_url"`
}

// Material is the full metadata descriptor produced by the conversion
// pipeline for one source document.
type Material struct {
	ID         string         `json:"id"`
	Title      string         `json:"title"`
	Category   string         `json:"category"`
	TotalPages int            `json:"total_pages"`
	Pages      []MaterialPage `json:"pages"`
}
