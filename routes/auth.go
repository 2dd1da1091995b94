package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/FathimaJufla/Ecommerce/config"
	userControllers "github.com/FathimaJufla/Ecommerce/controllers/user"
	"github.com/FathimaJufla/Ecommerce/middleware"
)

// SetupAuthRoutes registers the public pages. Home loads the customer when a
// session cookie is present but never requires one.
func SetupAuthRoutes(r *gin.Engine, db *gorm.DB, cfg config.Config) {
	r.GET("/", middleware.OptionalCustomer(db, cfg.SessionSecret), userControllers.Home(db))

	r.GET("/user_register", userControllers.Register(db))
	r.POST("/user_register", userControllers.Register(db))

	r.GET("/user_login", userControllers.Login(db, cfg.SessionSecret))
	r.POST("/user_login", userControllers.Login(db, cfg.SessionSecret))

	r.GET("/user_logout", userControllers.Logout())
}
