package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"bowl-catalog-backend/internal/logger"
	"bowl-catalog-backend/internal/middleware"
	"bowl-catalog-backend/internal/models"
	"bowl-catalog-backend/internal/supabase"
)

type BowlsHandler struct {
	dbClient       *supabase.DatabaseClient
	storageClient  *supabase.StorageClient
	realtimeClient *supabase.RealtimeClient
}

func NewBowlsHandler(dbClient *supabase.DatabaseClient, storageClient *supabase.StorageClient, realtimeClient *supabase.RealtimeClient) *BowlsHandler {
	return &BowlsHandler{
		dbClient:       dbClient,
		storageClient:  storageClient,
		realtimeClient: realtimeClient,
	}
}

// CreateBowl godoc
// @Summary     Create a bowl
// @Description Creates a bowl record with its finishes
// @Tags        bowls
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request body models.CreateBowlRequest true "Bowl metadata"
// @Success     200 {object} models.BowlResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /bowls [post]
func (h *BowlsHandler) CreateBowl(c *gin.Context) {
	if h.dbClient == nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "database not available"})
		return
	}

	userIDStr, exists := c.Get(middleware.UserIDKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "user id not found"})
		return
	}

	userID, err := uuid.Parse(userIDStr.(string))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid user id"})
		return
	}

	var req models.CreateBowlRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid request body",
			Message: err.Error(),
		})
		return
	}

	dateMade, err := parseDate(req.DateMade)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid date_made",
			Message: err.Error(),
		})
		return
	}

	bowl := &models.Bowl{
		ID:         uuid.New(),
		UserID:     userID,
		WoodType:   req.WoodType,
		WoodSource: nullString(req.WoodSource),
		DateMade:   dateMade,
		Comments:   nullString(req.Comments),
	}

	created, err := h.dbClient.CreateBowl(bowl)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to create bowl",
			Message: err.Error(),
		})
		return
	}

	finishes := NormalizeFinishes(req.Finishes)
	if err := h.dbClient.ReplaceFinishes(created.ID, finishes); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "bowl created but failed to save finishes",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.BowlResponse{
		ID:         created.ID.String(),
		WoodType:   created.WoodType,
		WoodSource: created.WoodSource.String,
		DateMade:   formatDate(created.DateMade),
		Comments:   created.Comments.String,
		Finishes:   finishes,
		CreatedAt:  created.CreatedAt,
		UpdatedAt:  created.UpdatedAt,
	})
}

// ListBowls godoc
// @Summary     List bowls
// @Description Returns the user's bowls for the gallery grid, newest first, each with its primary thumbnail. Use ?search= to filter on wood type, source or comments.
// @Tags        bowls
// @Produce     json
// @Security    Bearer
// @Param       search query string false "Search term"
// @Success     200 {object} models.BowlListResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /bowls [get]
func (h *BowlsHandler) ListBowls(c *gin.Context) {
	if h.dbClient == nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "database not available"})
		return
	}

	userIDStr, exists := c.Get(middleware.UserIDKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "user id not found"})
		return
	}

	userID, err := uuid.Parse(userIDStr.(string))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid user id"})
		return
	}

	bowls, err := h.dbClient.ListBowls(userID, c.Query("search"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to list bowls",
			Message: err.Error(),
		})
		return
	}

	summaries := make([]models.BowlSummary, len(bowls))
	for i, bowl := range bowls {
		summary := models.BowlSummary{
			ID:         bowl.ID.String(),
			WoodType:   bowl.WoodType,
			WoodSource: bowl.WoodSource.String,
			DateMade:   formatDate(bowl.DateMade),
			Finishes:   []string{},
			CreatedAt:  bowl.CreatedAt,
			UpdatedAt:  bowl.UpdatedAt,
		}

		if finishes, err := h.dbClient.GetFinishes(bowl.ID); err == nil {
			summary.Finishes = finishNames(finishes)
		}
		if count, err := h.dbClient.CountBowlImages(bowl.ID); err == nil {
			summary.ImageCount = count
		}
		if primary, err := h.dbClient.PrimaryImage(bowl.ID); err == nil && primary != nil {
			summary.ThumbnailURL = primary.ThumbnailURL
		}

		summaries[i] = summary
	}

	c.JSON(http.StatusOK, models.BowlListResponse{Bowls: summaries})
}

// GetBowl godoc
// @Summary     Get a bowl
// @Description Returns a bowl with its finishes and images ordered by display order
// @Tags        bowls
// @Produce     json
// @Security    Bearer
// @Param       bowl_id path string true "Bowl ID (UUID)"
// @Success     200 {object} models.BowlResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /bowls/{bowl_id} [get]
func (h *BowlsHandler) GetBowl(c *gin.Context) {
	if h.dbClient == nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "database not available"})
		return
	}

	userIDStr, exists := c.Get(middleware.UserIDKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "user id not found"})
		return
	}

	userID, err := uuid.Parse(userIDStr.(string))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid user id"})
		return
	}

	bowlID, err := uuid.Parse(c.Param("bowl_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid bowl id"})
		return
	}

	bowl, err := h.dbClient.GetBowl(bowlID, userID)
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "bowl not found",
			Message: err.Error(),
		})
		return
	}

	response := models.BowlResponse{
		ID:         bowl.ID.String(),
		WoodType:   bowl.WoodType,
		WoodSource: bowl.WoodSource.String,
		DateMade:   formatDate(bowl.DateMade),
		Comments:   bowl.Comments.String,
		Finishes:   []string{},
		CreatedAt:  bowl.CreatedAt,
		UpdatedAt:  bowl.UpdatedAt,
	}

	if finishes, err := h.dbClient.GetFinishes(bowl.ID); err == nil {
		response.Finishes = finishNames(finishes)
	}

	images, err := h.dbClient.GetBowlImages(bowl.ID)
	if err == nil {
		response.Images = make([]models.ImageResponse, len(images))
		for i, img := range images {
			response.Images[i] = imageResponse(img)
		}
	}

	c.JSON(http.StatusOK, response)
}

// UpdateBowl godoc
// @Summary     Update a bowl
// @Description Updates bowl metadata; the finish list is replaced wholesale
// @Tags        bowls
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       bowl_id path string true "Bowl ID (UUID)"
// @Param       request body models.UpdateBowlRequest true "Bowl metadata"
// @Success     200 {object} models.BowlResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /bowls/{bowl_id} [put]
func (h *BowlsHandler) UpdateBowl(c *gin.Context) {
	if h.dbClient == nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "database not available"})
		return
	}

	userIDStr, exists := c.Get(middleware.UserIDKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "user id not found"})
		return
	}

	userID, err := uuid.Parse(userIDStr.(string))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid user id"})
		return
	}

	bowlID, err := uuid.Parse(c.Param("bowl_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid bowl id"})
		return
	}

	var req models.UpdateBowlRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid request body",
			Message: err.Error(),
		})
		return
	}

	dateMade, err := parseDate(req.DateMade)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid date_made",
			Message: err.Error(),
		})
		return
	}

	updated, err := h.dbClient.UpdateBowl(&models.Bowl{
		ID:         bowlID,
		UserID:     userID,
		WoodType:   req.WoodType,
		WoodSource: nullString(req.WoodSource),
		DateMade:   dateMade,
		Comments:   nullString(req.Comments),
	})
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "bowl not found",
			Message: err.Error(),
		})
		return
	}

	finishes := NormalizeFinishes(req.Finishes)
	if err := h.dbClient.ReplaceFinishes(updated.ID, finishes); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "bowl updated but failed to save finishes",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.BowlResponse{
		ID:         updated.ID.String(),
		WoodType:   updated.WoodType,
		WoodSource: updated.WoodSource.String,
		DateMade:   formatDate(updated.DateMade),
		Comments:   updated.Comments.String,
		Finishes:   finishes,
		CreatedAt:  updated.CreatedAt,
		UpdatedAt:  updated.UpdatedAt,
	})
}

// DeleteBowl godoc
// @Summary     Delete a bowl
// @Description Deletes a bowl, its finishes and image records (cascade) and removes the backing blobs
// @Tags        bowls
// @Produce     json
// @Security    Bearer
// @Param       bowl_id path string true "Bowl ID (UUID)"
// @Success     200 {object} map[string]string
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /bowls/{bowl_id} [delete]
func (h *BowlsHandler) DeleteBowl(c *gin.Context) {
	if h.dbClient == nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "database not available"})
		return
	}

	userIDStr, exists := c.Get(middleware.UserIDKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "user id not found"})
		return
	}

	userID, err := uuid.Parse(userIDStr.(string))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid user id"})
		return
	}

	bowlID, err := uuid.Parse(c.Param("bowl_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid bowl id"})
		return
	}

	bowl, err := h.dbClient.GetBowl(bowlID, userID)
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "bowl not found",
			Message: err.Error(),
		})
		return
	}

	// Blob removal is best-effort; the cascade delete below is the source of
	// truth and the reconciler can sweep anything left behind.
	if h.storageClient != nil {
		prefix := fmt.Sprintf("bowls/%s/", bowl.ID.String())
		if err := h.storageClient.RemovePrefix(prefix); err != nil {
			logger.Warn("failed to remove blobs for bowl %s: %v", bowl.ID, err)
		}
	}

	if err := h.dbClient.DeleteBowl(bowlID, userID); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to delete bowl",
			Message: err.Error(),
		})
		return
	}

	h.realtimeClient.PublishBowlEvent(bowlID, "bowl_deleted", supabase.BowlDeletedPayload(bowlID))

	c.JSON(http.StatusOK, gin.H{"message": "bowl deleted successfully"})
}
