package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/propfinder/listing-api/internal/middleware"
	"github.com/propfinder/listing-api/internal/models"
)

func claimsFromContext(c *gin.Context) *models.JWTClaims {
	value, exists := c.Get(middleware.ContextUserKey)
	if !exists {
		return nil
	}
	claims, ok := value.(*models.JWTClaims)
	if !ok {
		return nil
	}
	return claims
}

func sessionFromContext(c *gin.Context) models.Session {
	claims := claimsFromContext(c)
	if claims == nil {
		return models.Session{}
	}
	return models.Session{Email: claims.Email, Role: claims.Role}
}
