package userControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/FathimaJufla/Ecommerce/auth"
	cartControllers "github.com/FathimaJufla/Ecommerce/controllers/cart"
	"github.com/FathimaJufla/Ecommerce/middleware"
	"github.com/FathimaJufla/Ecommerce/models"
)

// GET /
func Home(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var products []models.Product
		if err := db.Where("is_active = ?", true).Order("id asc").Find(&products).Error; err != nil {
			c.String(http.StatusInternalServerError, "Failed to load products")
			return
		}

		cartCount := 0
		customer, loggedIn := middleware.CustomerFromContext(c)
		if loggedIn {
			if cart, err := cartControllers.GetOrCreateCart(db, customer.ID); err == nil {
				cartCount = cartControllers.CartQuantity(db, cart.CartID)
			}
		}

		data := gin.H{"products": products, "cart_count": cartCount}
		if loggedIn {
			data["user"] = customer
		}
		c.HTML(http.StatusOK, "index.html", data)
	}
}

// GET|POST /user_register
func Register(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodGet {
			c.HTML(http.StatusOK, "user_register.html", gin.H{})
			return
		}

		username := c.PostForm("username")
		email := c.PostForm("email")
		password := c.PostForm("password")
		if username == "" || email == "" || password == "" {
			c.HTML(http.StatusBadRequest, "user_register.html", gin.H{"error": "All fields are required"})
			return
		}

		hash, err := auth.HashPassword(password)
		if err != nil {
			c.HTML(http.StatusInternalServerError, "user_register.html", gin.H{"error": "Registration failed"})
			return
		}

		customer := models.Customer{Username: username, Email: email, Password: hash}
		if err := db.Create(&customer).Error; err != nil {
			// email has a unique index
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				c.HTML(http.StatusBadRequest, "user_register.html", gin.H{"error": "Email already registered"})
				return
			}
			logrus.WithError(err).Error("customer create failed")
			c.HTML(http.StatusInternalServerError, "user_register.html", gin.H{"error": "Registration failed"})
			return
		}

		logrus.WithField("customer_id", customer.ID).Info("customer registered")
		c.Redirect(http.StatusFound, "/user_login")
	}
}

// GET|POST /user_login
func Login(db *gorm.DB, secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodGet {
			c.HTML(http.StatusOK, "user_login.html", gin.H{})
			return
		}

		username := c.PostForm("username")
		password := c.PostForm("password")

		var customer models.Customer
		err := db.Where("username = ?", username).First(&customer).Error
		if err != nil || !auth.CheckPassword(customer.Password, password) {
			c.HTML(http.StatusOK, "user_login.html", gin.H{"error": "Invalid username or password"})
			return
		}

		token, err := auth.IssueSessionToken(secret, customer.ID)
		if err != nil {
			c.HTML(http.StatusInternalServerError, "user_login.html", gin.H{"error": "Login failed"})
			return
		}

		c.SetCookie(auth.SessionCookie, token, int(auth.SessionTTL.Seconds()), "/", "", false, true)
		c.Redirect(http.StatusFound, "/")
	}
}

// GET /user_logout
func Logout() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.SetCookie(auth.SessionCookie, "", -1, "/", "", false, true)
		c.Redirect(http.StatusFound, "/")
	}
}
