package models

import "time"

type BowlResponse struct {
	ID         string          `json:"bowl_id"`
	WoodType   string          `json:"wood_type"`
	WoodSource string          `json:"wood_source,omitempty"`
	DateMade   string          `json:"date_made,omitempty"`
	Comments   string          `json:"comments,omitempty"`
	Finishes   []string        `json:"finishes"`
	Images     []ImageResponse `json:"images,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

type BowlListResponse struct {
	Bowls []BowlSummary `json:"bowls"`
}

type BowlSummary struct {
	ID           string    `json:"bowl_id"`
	WoodType     string    `json:"wood_type"`
	WoodSource   string    `json:"wood_source,omitempty"`
	DateMade     string    `json:"date_made,omitempty"`
	Finishes     []string  `json:"finishes"`
	ThumbnailURL string    `json:"thumbnail_url,omitempty"`
	ImageCount   int       `json:"image_count"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type ImageResponse struct {
	ID           string    `json:"id"`
	ThumbnailURL string    `json:"thumbnail_url"`
	MediumURL    string    `json:"medium_url"`
	FullURL      string    `json:"full_url"`
	OriginalURL  string    `json:"original_url"`
	ImageURL     string    `json:"image_url"`
	FileSize     int64     `json:"file_size"`
	Width        int       `json:"width"`
	Height       int       `json:"height"`
	DisplayOrder int       `json:"display_order"`
	CreatedAt    time.Time `json:"created_at"`
}

type ImagesResponse struct {
	Images []ImageResponse `json:"images"`
}

type UploadResponse struct {
	BowlID   string            `json:"bowl_id"`
	Uploaded []UploadedImage   `json:"uploaded"`
	Errors   []UploadErrorInfo `json:"errors,omitempty"`
	Status   string            `json:"status"`
}

type UploadedImage struct {
	ID           string `json:"id"`
	Filename     string `json:"filename"`
	Size         int64  `json:"size"`
	DisplayOrder int    `json:"display_order"`
	ThumbnailURL string `json:"thumbnail_url"`
}

type UploadErrorInfo struct {
	Filename string `json:"filename"`
	Stage    string `json:"stage"`
	Error    string `json:"error"`
}

type ReorderResponse struct {
	BowlID  string `json:"bowl_id"`
	Updated int    `json:"updated"`
}

type ReconcileResponse struct {
	BowlID  string   `json:"bowl_id"`
	Orphans []string `json:"orphans"`
	Removed bool     `json:"removed"`
}

type HealthResponse struct {
	Status string `json:"status"`
}
