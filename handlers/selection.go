package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	catalogRepo "coursecart/database/repository/catalog"
	"coursecart/middleware"
	"coursecart/models"
	"coursecart/services/selection"
)

// SelectionHandler exposes the selection engine over HTTP.
type SelectionHandler struct {
	Svc    selection.SelectionService
	Logger *zap.Logger
}

// NewSelectionHandler constructs a SelectionHandler.
func NewSelectionHandler(svc selection.SelectionService, logger *zap.Logger) *SelectionHandler {
	return &SelectionHandler{Svc: svc, Logger: logger}
}

// StartEpisode handles POST /api/selection/episode.
func (h *SelectionHandler) StartEpisode(c *gin.Context) {
	var body struct {
		PackageID string `json:"packageId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	state, err := h.Svc.StartEpisode(c.Request.Context(), middleware.UserID(c), body.PackageID)
	if err != nil {
		h.Logger.Error("StartEpisode failed", zap.String("packageId", body.PackageID), zap.Error(err))
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"episode": state})
}

// ImportHandoff handles POST /api/selection/episode/import.
func (h *SelectionHandler) ImportHandoff(c *gin.Context) {
	var payload models.HandoffPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	state, err := h.Svc.ImportHandoff(c.Request.Context(), middleware.UserID(c), payload)
	if err != nil {
		h.Logger.Warn("ImportHandoff failed", zap.String("packageId", payload.PackageID), zap.Error(err))
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"episode": state})
}

// AddSession handles POST /api/selection/episode/:episodeID/sessions.
func (h *SelectionHandler) AddSession(c *gin.Context) {
	episodeID := c.Param("episodeID")
	var body struct {
		SessionID string `json:"sessionId" binding:"required"`
		Date      string `json:"date"` // optional YYYY-MM-DD hint for catalog lookup
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	var date *time.Time
	if body.Date != "" {
		d, err := time.Parse("2006-01-02", body.Date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date", "details": err.Error()})
			return
		}
		date = &d
	}

	state, err := h.Svc.AddSession(c.Request.Context(), episodeID, body.SessionID, date)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"episode": state})
}

// RemoveSession handles DELETE /api/selection/episode/:episodeID/sessions/:sessionID.
func (h *SelectionHandler) RemoveSession(c *gin.Context) {
	state, err := h.Svc.RemoveSession(c.Request.Context(), c.Param("episodeID"), c.Param("sessionID"))
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"episode": state})
}

// GetEpisode handles GET /api/selection/episode/:episodeID.
func (h *SelectionHandler) GetEpisode(c *gin.Context) {
	state, err := h.Svc.GetEpisode(c.Request.Context(), c.Param("episodeID"))
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"episode": state})
}

// Confirm handles POST /api/selection/episode/:episodeID/confirm.
func (h *SelectionHandler) Confirm(c *gin.Context) {
	var body struct {
		Promotion *models.PromotionContext `json:"promotion"`
	}
	// Body is optional; promotion context may be absent entirely.
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
			return
		}
	}

	item, err := h.Svc.Confirm(c.Request.Context(), c.Param("episodeID"), body.Promotion)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"lineItem": item})
}

// Cancel handles DELETE /api/selection/episode/:episodeID.
func (h *SelectionHandler) Cancel(c *gin.Context) {
	if err := h.Svc.Cancel(c.Request.Context(), c.Param("episodeID")); err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cancelled": true})
}

// renderError maps engine errors to HTTP responses. Every constraint
// violation is a user-correctable conflict carrying its structured payload;
// nothing here is fatal.
func (h *SelectionHandler) renderError(c *gin.Context, err error) {
	var (
		noPkg      *selection.NoActivePackageError
		unavail    *selection.SessionUnavailableError
		mismatch   *selection.CycleOfferMismatchError
		dateRange  *selection.DateRangeExceededError
		noSeats    *selection.NoSeatsAvailableError
		limit      *selection.PackageLimitReachedError
		incomplete *selection.IncompleteSelectionError
		partial    *selection.PartialFailureError
	)
	switch {
	case errors.Is(err, selection.ErrEpisodeNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "episode not found or expired"})
	case errors.Is(err, selection.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found", "details": err.Error()})
	case errors.As(err, &noPkg):
		c.JSON(http.StatusConflict, gin.H{"error": "noActivePackage", "message": err.Error()})
	case errors.As(err, &unavail):
		c.JSON(http.StatusConflict, gin.H{"error": "sessionUnavailable", "message": err.Error(), "details": unavail})
	case errors.As(err, &mismatch):
		c.JSON(http.StatusConflict, gin.H{"error": "cycleOfferMismatch", "message": err.Error(), "details": mismatch})
	case errors.As(err, &dateRange):
		c.JSON(http.StatusConflict, gin.H{"error": "dateRangeExceeded", "message": err.Error(), "details": dateRange})
	case errors.As(err, &noSeats):
		c.JSON(http.StatusConflict, gin.H{"error": "noSeatsAvailable", "message": err.Error(), "details": noSeats})
	case errors.As(err, &limit):
		c.JSON(http.StatusConflict, gin.H{"error": "packageLimitReached", "message": err.Error(), "details": limit})
	case errors.As(err, &incomplete):
		c.JSON(http.StatusConflict, gin.H{"error": "incompleteSelection", "message": err.Error(), "details": incomplete})
	case errors.As(err, &partial):
		c.JSON(http.StatusConflict, gin.H{"error": "partialFailure", "message": err.Error(), "details": partial})
	case errors.Is(err, catalogRepo.ErrCatalogUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "catalogUnavailable", "message": err.Error()})
	default:
		h.Logger.Error("selection request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error", "message": err.Error()})
	}
}
