package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/FathimaJufla/Ecommerce/auth"
	"github.com/FathimaJufla/Ecommerce/models"
)

// customerKey is the gin context key holding the authenticated models.Customer.
const customerKey = "customer"

func lookupCustomer(c *gin.Context, db *gorm.DB, secret string) (models.Customer, error) {
	cookie, err := c.Cookie(auth.SessionCookie)
	if err != nil {
		return models.Customer{}, err
	}

	id, err := auth.ParseSessionToken(secret, cookie)
	if err != nil {
		return models.Customer{}, err
	}

	var customer models.Customer
	if err := db.First(&customer, id).Error; err != nil {
		return models.Customer{}, err
	}
	return customer, nil
}

// RequireCustomer gates page routes: unauthenticated requests are sent to the
// login page.
func RequireCustomer(db *gorm.DB, secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		customer, err := lookupCustomer(c, db, secret)
		if err != nil {
			c.Redirect(http.StatusFound, "/user_login")
			c.Abort()
			return
		}
		c.Set(customerKey, customer)
		c.Next()
	}
}

// RequireCustomerJSON gates JSON routes: unauthenticated requests get a 403
// body instead of a redirect.
func RequireCustomerJSON(db *gorm.DB, secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		customer, err := lookupCustomer(c, db, secret)
		if err != nil {
			c.JSON(http.StatusForbidden, gin.H{"error": "Not logged in"})
			c.Abort()
			return
		}
		c.Set(customerKey, customer)
		c.Next()
	}
}

// OptionalCustomer loads the customer when a valid session is present but
// never rejects the request. Used by the public home page.
func OptionalCustomer(db *gorm.DB, secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if customer, err := lookupCustomer(c, db, secret); err == nil {
			c.Set(customerKey, customer)
		}
		c.Next()
	}
}

// CurrentCustomer returns the customer set by RequireCustomer.
func CurrentCustomer(c *gin.Context) models.Customer {
	return c.MustGet(customerKey).(models.Customer)
}

// CustomerFromContext returns the customer when one was set.
func CustomerFromContext(c *gin.Context) (models.Customer, bool) {
	v, ok := c.Get(customerKey)
	if !ok {
		return models.Customer{}, false
	}
	return v.(models.Customer), true
}
