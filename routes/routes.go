package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/FathimaJufla/Ecommerce/config"
)

// SetupRoutes is the single entry-point that wires up the public, storefront,
// and admin route groups.
func SetupRoutes(r *gin.Engine, db *gorm.DB, cfg config.Config) {
	// Public pages (home, register, login)
	SetupAuthRoutes(r, db, cfg)

	// Storefront pages (session-protected)
	SetupStoreRoutes(r, db, cfg)

	// Admin endpoints (API-key-protected)
	SetupAdminRoutes(r, db, cfg)
}
