package handlers

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"bowl-catalog-backend/internal/logger"
	"bowl-catalog-backend/internal/middleware"
	"bowl-catalog-backend/internal/models"
	"bowl-catalog-backend/internal/pipeline"
	"bowl-catalog-backend/internal/supabase"
)

type ImagesHandler struct {
	dbClient       *supabase.DatabaseClient
	storageClient  *supabase.StorageClient
	realtimeClient *supabase.RealtimeClient
	pipeline       *pipeline.Pipeline
}

func NewImagesHandler(dbClient *supabase.DatabaseClient, storageClient *supabase.StorageClient, realtimeClient *supabase.RealtimeClient, pl *pipeline.Pipeline) *ImagesHandler {
	return &ImagesHandler{
		dbClient:       dbClient,
		storageClient:  storageClient,
		realtimeClient: realtimeClient,
		pipeline:       pl,
	}
}

// UploadImages godoc
// @Summary     Upload photos of a bowl
// @Description Runs each file through validate, resize (thumbnail/medium/full/original), upload and link.
// @Description Files are processed independently: one failure never aborts the rest of the batch, and
// @Description per-file errors are reported alongside the successes. Display order follows the order
// @Description files were selected in, appended after any existing images.
// @Tags        images
// @Accept      multipart/form-data
// @Produce     json
// @Security    Bearer
// @Param       bowl_id path string true "Bowl ID (UUID)"
// @Param       images formData file true "Photos (multiple files allowed)"
// @Success     200 {object} models.UploadResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /bowls/{bowl_id}/images [post]
func (h *ImagesHandler) UploadImages(c *gin.Context) {
	if h.dbClient == nil || h.pipeline == nil {
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

	// Verify bowl belongs to user
	bowl, err := h.dbClient.GetBowl(bowlID, userID)
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "bowl not found",
			Message: err.Error(),
		})
		return
	}

	if err := c.Request.ParseMultipartForm(32 << 20); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "failed to parse multipart form",
			Message: err.Error(),
		})
		return
	}

	form := c.Request.MultipartForm
	if form == nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "failed to parse multipart form",
			Message: "multipart form is nil",
		})
		return
	}

	// Try multiple common field names
	var files []*multipart.FileHeader
	fieldNames := []string{"images", "image", "files", "file", "photos", "photo"}
	for _, fieldName := range fieldNames {
		if f := form.File[fieldName]; len(f) > 0 {
			files = f
			break
		}
	}

	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "no files uploaded",
			Message: fmt.Sprintf("please provide files with one of these field names: %v", fieldNames),
		})
		return
	}

	// New images are appended after whatever the bowl already has
	existingCount, err := h.dbClient.CountBowlImages(bowl.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to count existing images",
			Message: err.Error(),
		})
		return
	}

	h.realtimeClient.PublishBowlEvent(bowlID, "upload_started",
		supabase.UploadStartedPayload(bowlID, len(files)))

	batch := make([]pipeline.File, 0, len(files))
	readErrors := make([]models.UploadErrorInfo, 0)
	for idx, file := range files {
		src, err := file.Open()
		if err != nil {
			readErrors = append(readErrors, models.UploadErrorInfo{
				Filename: file.Filename,
				Stage:    "file_open",
				Error:    fmt.Sprintf("failed to open file: %v", err),
			})
			continue
		}

		data, err := io.ReadAll(src)
		src.Close()
		if err != nil {
			readErrors = append(readErrors, models.UploadErrorInfo{
				Filename: file.Filename,
				Stage:    "file_read",
				Error:    fmt.Sprintf("failed to read file data: %v", err),
			})
			continue
		}

		batch = append(batch, pipeline.File{
			Filename:     file.Filename,
			Size:         file.Size,
			Data:         data,
			DisplayOrder: existingCount + idx,
		})
	}

	results := h.pipeline.ProcessBatch(bowl.ID, userID, batch)

	uploaded := make([]models.UploadedImage, 0, len(results))
	uploadErrors := readErrors
	for _, res := range results {
		if res.Err != nil {
			uploadErrors = append(uploadErrors, models.UploadErrorInfo{
				Filename: res.Filename,
				Stage:    string(res.Err.Stage),
				Error:    res.Err.Err.Error(),
			})
			continue
		}
		uploaded = append(uploaded, models.UploadedImage{
			ID:           res.Image.ID.String(),
			Filename:     res.Filename,
			Size:         res.Image.FileSize.Int64,
			DisplayOrder: res.Image.DisplayOrder,
			ThumbnailURL: res.Image.ThumbnailURL,
		})
	}

	if len(uploaded) == 0 {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to upload any files",
			Message: fmt.Sprintf("%v", uploadErrors),
		})
		return
	}

	h.realtimeClient.PublishBowlEvent(bowlID, "upload_completed",
		supabase.UploadCompletedPayload(bowlID, len(uploaded), len(uploadErrors)))

	status := "uploaded"
	if len(uploadErrors) > 0 {
		status = "partially_uploaded"
		logger.Warn("bowl %s: %d of %d files failed to upload", bowlID, len(uploadErrors), len(files))
	}

	c.JSON(http.StatusOK, models.UploadResponse{
		BowlID:   bowlID.String(),
		Uploaded: uploaded,
		Errors:   uploadErrors,
		Status:   status,
	})
}

// ListImages godoc
// @Summary     List a bowl's images
// @Tags        images
// @Produce     json
// @Security    Bearer
// @Param       bowl_id path string true "Bowl ID (UUID)"
// @Success     200 {object} models.ImagesResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /bowls/{bowl_id}/images [get]
func (h *ImagesHandler) ListImages(c *gin.Context) {
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

	if _, err := h.dbClient.GetBowl(bowlID, userID); err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "bowl not found",
			Message: err.Error(),
		})
		return
	}

	images, err := h.dbClient.GetBowlImages(bowlID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to get images",
			Message: err.Error(),
		})
		return
	}

	responses := make([]models.ImageResponse, len(images))
	for i, img := range images {
		responses[i] = imageResponse(img)
	}

	c.JSON(http.StatusOK, models.ImagesResponse{Images: responses})
}

// ReorderImages godoc
// @Summary     Reorder a bowl's images
// @Description Accepts the bowl's image ids in the desired display order and rewrites display_order 0..n-1.
// @Description Each index update is an independent write; a mid-sequence failure leaves a partially
// @Description reordered set and is reported as an error.
// @Tags        images
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       bowl_id path string true "Bowl ID (UUID)"
// @Param       request body models.ReorderImagesRequest true "Image ids in display order"
// @Success     200 {object} models.ReorderResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /bowls/{bowl_id}/images/order [put]
func (h *ImagesHandler) ReorderImages(c *gin.Context) {
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

	if _, err := h.dbClient.GetBowl(bowlID, userID); err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "bowl not found",
			Message: err.Error(),
		})
		return
	}

	var req models.ReorderImagesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid request body",
			Message: err.Error(),
		})
		return
	}

	existing, err := h.dbClient.GetBowlImages(bowlID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to get images",
			Message: err.Error(),
		})
		return
	}

	ordered, err := OrderedImageIDs(req.ImageIDs, existing)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid image order",
			Message: err.Error(),
		})
		return
	}

	for idx, imageID := range ordered {
		if err := h.dbClient.UpdateImageOrder(imageID, idx); err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Error:   "failed to reorder images",
				Message: fmt.Sprintf("order partially updated (%d of %d): %v", idx, len(ordered), err),
			})
			return
		}
	}

	h.realtimeClient.PublishBowlEvent(bowlID, "images_reordered",
		supabase.ImagesReorderedPayload(bowlID, len(ordered)))

	c.JSON(http.StatusOK, models.ReorderResponse{
		BowlID:  bowlID.String(),
		Updated: len(ordered),
	})
}

// DeleteImage godoc
// @Summary     Delete one image
// @Description Removes the metadata record and all four backing blobs
// @Tags        images
// @Produce     json
// @Security    Bearer
// @Param       bowl_id path string true "Bowl ID (UUID)"
// @Param       image_id path string true "Image ID (UUID)"
// @Success     200 {object} map[string]string
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /bowls/{bowl_id}/images/{image_id} [delete]
func (h *ImagesHandler) DeleteImage(c *gin.Context) {
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

	imageID, err := uuid.Parse(c.Param("image_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid image id"})
		return
	}

	if _, err := h.dbClient.GetBowl(bowlID, userID); err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "bowl not found",
			Message: err.Error(),
		})
		return
	}

	img, err := h.dbClient.GetBowlImage(imageID, bowlID)
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "image not found",
			Message: err.Error(),
		})
		return
	}

	if h.storageClient != nil {
		for _, path := range img.Paths() {
			if err := h.storageClient.Remove(path); err != nil {
				logger.Warn("failed to remove blob %s: %v", path, err)
			}
		}
	}

	if err := h.dbClient.DeleteBowlImage(imageID); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to delete image",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "image deleted successfully"})
}
