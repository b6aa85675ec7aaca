package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"bowl-catalog-backend/internal/middleware"
	"bowl-catalog-backend/internal/models"
	"bowl-catalog-backend/internal/services"
	"bowl-catalog-backend/internal/supabase"
)

type ReconcileHandler struct {
	dbClient   *supabase.DatabaseClient
	reconciler *services.Reconciler
}

func NewReconcileHandler(dbClient *supabase.DatabaseClient, reconciler *services.Reconciler) *ReconcileHandler {
	return &ReconcileHandler{
		dbClient:   dbClient,
		reconciler: reconciler,
	}
}

// Reconcile godoc
// @Summary     Reconcile a bowl's blobs
// @Description Lists stored blobs no image record references. Pass ?remove=true to delete them.
// @Tags        maintenance
// @Produce     json
// @Security    Bearer
// @Param       bowl_id path string true "Bowl ID (UUID)"
// @Param       remove query bool false "Delete orphans instead of only reporting them"
// @Success     200 {object} models.ReconcileResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /bowls/{bowl_id}/reconcile [post]
func (h *ReconcileHandler) Reconcile(c *gin.Context) {
	if h.dbClient == nil || h.reconciler == nil {
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

	remove := c.Query("remove") == "true"

	var orphans []string
	if remove {
		orphans, err = h.reconciler.RemoveOrphans(bowlID)
	} else {
		orphans, err = h.reconciler.FindOrphans(bowlID)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to reconcile blobs",
			Message: err.Error(),
		})
		return
	}

	if orphans == nil {
		orphans = []string{}
	}

	c.JSON(http.StatusOK, models.ReconcileResponse{
		BowlID:  bowlID.String(),
		Orphans: orphans,
		Removed: remove,
	})
}
