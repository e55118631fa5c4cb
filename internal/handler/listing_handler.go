package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/propfinder/listing-api/internal/models"
	"github.com/propfinder/listing-api/internal/service"
	appErrors "github.com/propfinder/listing-api/pkg/errors"
	"github.com/propfinder/listing-api/pkg/response"
)

type listingService interface {
	Submit(ctx context.Context, managerID string, req models.SubmitPropertyRequest) (*models.Property, error)
	Approve(ctx context.Context, id string) (bool, error)
	Reject(ctx context.Context, id string) (bool, error)
	Approved(ctx context.Context) ([]models.Property, error)
	Pending(ctx context.Context) ([]models.Property, error)
	Rejected(ctx context.Context) ([]models.Property, error)
	ByManager(ctx context.Context, managerID string) ([]models.Property, error)
	ByID(ctx context.Context, id string) (*models.Property, error)
	Browse(ctx context.Context, filter models.BrowseFilter) ([]models.Property, error)
}

// ExportGenerator produces downloadable listing reports and manages their
// archived copies.
type ExportGenerator interface {
	Generate(ctx context.Context, format string) (*service.ExportResult, error)
	Archived(ctx context.Context, filename string) (*service.ExportResult, error)
	Discard(ctx context.Context, filename string) error
}

// ListingHandler exposes the property review workflow endpoints.
type ListingHandler struct {
	listings listingService
	exports  ExportGenerator
	metrics  *service.MetricsService
}

// NewListingHandler builds a new handler. The export generator and metrics
// are optional.
func NewListingHandler(listings listingService, exports ExportGenerator, metrics *service.MetricsService) *ListingHandler {
	return &ListingHandler{listings: listings, exports: exports, metrics: metrics}
}

// Browse lists approved properties narrowed by the location and price-band
// query filters.
func (h *ListingHandler) Browse(c *gin.Context) {
	filter := models.BrowseFilter{
		Location: c.Query("location"),
		Band:     models.PriceBand(c.DefaultQuery("price", string(models.BandAll))),
	}

	records, err := h.listings.Browse(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, records)
}

// Get returns one listing by identifier.
func (h *ListingHandler) Get(c *gin.Context) {
	record, err := h.listings.ByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, record)
}

// Submit creates a pending listing owned by the calling manager.
func (h *ListingHandler) Submit(c *gin.Context) {
	var req models.SubmitPropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid listing payload"))
		return
	}

	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	created, err := h.listings.Submit(c.Request.Context(), claims.Email, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, created)
}

// Mine lists the calling manager's own properties across every status.
func (h *ListingHandler) Mine(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	records, err := h.listings.ByManager(c.Request.Context(), claims.Email)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, records)
}

// Review lists properties for the admin review queue, optionally narrowed to
// one status.
func (h *ListingHandler) Review(c *gin.Context) {
	ctx := c.Request.Context()

	var records []models.Property
	var err error
	switch status := c.DefaultQuery("status", "pending"); status {
	case string(models.StatusPending):
		records, err = h.listings.Pending(ctx)
	case string(models.StatusApproved):
		records, err = h.listings.Approved(ctx)
	case string(models.StatusRejected):
		records, err = h.listings.Rejected(ctx)
	default:
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "unknown status filter"))
		return
	}
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, records)
}

// Approve moves a listing to approved.
func (h *ListingHandler) Approve(c *gin.Context) {
	h.transition(c, "approve", h.listings.Approve)
}

// Reject moves a listing to rejected.
func (h *ListingHandler) Reject(c *gin.Context) {
	h.transition(c, "reject", h.listings.Reject)
}

// transition runs an admin status change. The workflow reports an unknown
// identifier as found=false; the handler is where that becomes a 404.
func (h *ListingHandler) transition(c *gin.Context, name string, apply func(context.Context, string) (bool, error)) {
	id := c.Param("id")
	found, err := apply(c.Request.Context(), id)
	if h.metrics != nil {
		h.metrics.ObserveTransition(name, found)
	}
	if err != nil {
		response.Error(c, err)
		return
	}
	if !found {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "listing not found"))
		return
	}

	record, err := h.listings.ByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, record)
}

// Export streams the listing report in the requested format.
func (h *ListingHandler) Export(c *gin.Context) {
	if h.exports == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "exports are disabled"))
		return
	}

	result, err := h.exports.Generate(c.Request.Context(), c.DefaultQuery("format", service.ExportFormatCSV))
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "export failed"))
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+result.Filename)
	c.Data(http.StatusOK, result.ContentType, result.Payload)
}

// DownloadExport streams a previously archived report by filename.
func (h *ListingHandler) DownloadExport(c *gin.Context) {
	if h.exports == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "exports are disabled"))
		return
	}

	result, err := h.exports.Archived(c.Request.Context(), c.Param("filename"))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+result.Filename)
	c.Data(http.StatusOK, result.ContentType, result.Payload)
}

// DeleteExport removes an archived report.
func (h *ListingHandler) DeleteExport(c *gin.Context) {
	if h.exports == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "exports are disabled"))
		return
	}

	if err := h.exports.Discard(c.Request.Context(), c.Param("filename")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
