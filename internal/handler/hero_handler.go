package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/propfinder/listing-api/internal/models"
	appErrors "github.com/propfinder/listing-api/pkg/errors"
	"github.com/propfinder/listing-api/pkg/response"
)

type heroService interface {
	List(ctx context.Context) ([]models.HeroImage, error)
	Create(ctx context.Context, uploadedBy string, req models.CreateHeroImageRequest) (*models.HeroImage, error)
	Update(ctx context.Context, id string, req models.UpdateHeroImageRequest) (bool, error)
	Delete(ctx context.Context, actor models.Session, id string) (bool, error)
}

// HeroHandler exposes the hero carousel endpoints.
type HeroHandler struct {
	heroes heroService
}

// NewHeroHandler builds a new handler.
func NewHeroHandler(heroes heroService) *HeroHandler {
	return &HeroHandler{heroes: heroes}
}

// List returns all hero images in rotation order. Public.
func (h *HeroHandler) List(c *gin.Context) {
	records, err := h.heroes.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, records)
}

// Create adds a hero image attributed to the caller.
func (h *HeroHandler) Create(c *gin.Context) {
	var req models.CreateHeroImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid hero image payload"))
		return
	}

	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	created, err := h.heroes.Create(c.Request.Context(), claims.Email, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, created)
}

// Update merges partial fields into an existing hero image.
func (h *HeroHandler) Update(c *gin.Context) {
	var req models.UpdateHeroImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid hero image payload"))
		return
	}

	found, err := h.heroes.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	if !found {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "hero image not found"))
		return
	}
	response.NoContent(c)
}

// Delete removes a hero image, honoring uploader ownership for managers.
func (h *HeroHandler) Delete(c *gin.Context) {
	found, err := h.heroes.Delete(c.Request.Context(), sessionFromContext(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	if !found {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "hero image not found"))
		return
	}
	response.NoContent(c)
}
