package models

type CreateBowlRequest struct {
	WoodType string `json:"wood_type" binding:"required"`
	// Optional provenance of the blank (e.g., "storm-felled maple, backyard")
	WoodSource string `json:"wood_source,omitempty"`
	// Date the bowl was turned, formatted YYYY-MM-DD
	DateMade string   `json:"date_made,omitempty"`
	Comments string   `json:"comments,omitempty"`
	Finishes []string `json:"finishes,omitempty"`
}

type UpdateBowlRequest struct {
	WoodType   string   `json:"wood_type" binding:"required"`
	WoodSource string   `json:"wood_source,omitempty"`
	DateMade   string   `json:"date_made,omitempty"`
	Comments   string   `json:"comments,omitempty"`
	Finishes   []string `json:"finishes,omitempty"`
}

type ReorderImagesRequest struct {
	// ImageIDs lists every image of the bowl in the desired display order.
	ImageIDs []string `json:"image_ids" binding:"required"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
