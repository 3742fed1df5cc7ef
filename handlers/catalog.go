package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	catalogRepo "coursecart/database/repository/catalog"
	packageRepo "coursecart/database/repository/packages"
)

// CatalogHandler serves read-only session and package listings.
type CatalogHandler struct {
	Catalog  catalogRepo.SessionCatalog
	Packages packageRepo.PackageRepository
	Logger   *zap.Logger
}

// NewCatalogHandler constructs a CatalogHandler.
func NewCatalogHandler(catalog catalogRepo.SessionCatalog, packages packageRepo.PackageRepository, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{Catalog: catalog, Packages: packages, Logger: logger}
}

// GetSessions handles GET /api/catalog/sessions?date=YYYY-MM-DD or ?cycle=<id>.
// Unlike confirm-time gathering, a direct lookup surfaces catalog failures
// to the caller.
func (h *CatalogHandler) GetSessions(c *gin.Context) {
	dateStr := c.Query("date")
	cycleID := c.Query("cycle")

	switch {
	case dateStr != "":
		date, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date", "details": err.Error()})
			return
		}
		sessions, err := h.Catalog.FetchByDate(c.Request.Context(), date)
		if err != nil {
			h.renderCatalogError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"sessions": sessions})
	case cycleID != "":
		sessions, err := h.Catalog.FetchByCycle(c.Request.Context(), cycleID)
		if err != nil {
			h.renderCatalogError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"sessions": sessions})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "either date or cycle query parameter is required"})
	}
}

// GetPackages handles GET /api/packages.
func (h *CatalogHandler) GetPackages(c *gin.Context) {
	pkgs, err := h.Packages.List(c.Request.Context())
	if err != nil {
		h.Logger.Error("GetPackages failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list packages", "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"packages": pkgs})
}

func (h *CatalogHandler) renderCatalogError(c *gin.Context, err error) {
	if errors.Is(err, catalogRepo.ErrCatalogUnavailable) {
		h.Logger.Warn("catalog unavailable", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "catalogUnavailable", "message": err.Error()})
		return
	}
	h.Logger.Error("catalog request failed", zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error", "message": err.Error()})
}
