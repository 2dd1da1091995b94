package productControllers

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/FathimaJufla/Ecommerce/models"
)

// saveProductImage stores an optional uploaded image and returns its public path.
func saveProductImage(c *gin.Context, uploadsDir string) (string, error) {
	file, err := c.FormFile("image")
	if err != nil {
		return "", nil // image is optional
	}

	filename := strings.ReplaceAll(file.Filename, " ", "_")
	saveDir := filepath.Join(uploadsDir, "products")
	if err := os.MkdirAll(saveDir, os.ModePerm); err != nil {
		return "", err
	}
	if err := c.SaveUploadedFile(file, filepath.Join(saveDir, filename)); err != nil {
		return "", err
	}
	return fmt.Sprintf("/uploads/products/%s", filename), nil
}

// CreateProduct creates a new product with an optional image upload.
// POST /admin/products
func CreateProduct(db *gorm.DB, uploadsDir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		name := c.PostForm("name")
		priceStr := c.PostForm("price")
		if name == "" || priceStr == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name and price are required"})
			return
		}

		price, err := decimal.NewFromString(priceStr)
		if err != nil || price.IsNegative() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid price"})
			return
		}

		isActive := true
		if raw := c.PostForm("is_active"); raw != "" {
			if parsed, parseErr := strconv.ParseBool(raw); parseErr == nil {
				isActive = parsed
			} else {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid is_active"})
				return
			}
		}

		imageURL, err := saveProductImage(c, uploadsDir)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("Failed to save image: %v", err)})
			return
		}

		product := models.Product{
			Name:        name,
			Description: c.PostForm("description"),
			Image:       imageURL,
			Price:       price.Round(2),
			IsActive:    isActive,
		}
		if err := db.Create(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
			return
		}
		c.JSON(http.StatusCreated, product)
	}
}
