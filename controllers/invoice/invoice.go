package invoiceControllers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/FathimaJufla/Ecommerce/invoice"
	"github.com/FathimaJufla/Ecommerce/middleware"
	"github.com/FathimaJufla/Ecommerce/models"
)

// GET /download-invoice/:order_id
func DownloadInvoice(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		customer := middleware.CurrentCustomer(c)

		orderID, err := strconv.Atoi(c.Param("order_id"))
		if err != nil {
			c.String(http.StatusNotFound, "Order not found")
			return
		}

		// Foreign orders look like missing ones
		var order models.Order
		if err := db.Preload("Customer").Preload("Items.Product").
			Where("id = ? AND customer_id = ?", orderID, customer.ID).
			First(&order).Error; err != nil {
			c.String(http.StatusNotFound, "Order not found")
			return
		}

		data, err := invoice.PDF(order)
		if err != nil {
			logrus.WithError(err).WithField("order_id", order.ID).Error("invoice rendering failed")
			c.String(http.StatusInternalServerError, "Failed to generate invoice")
			return
		}

		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "invoice_"+order.OrderNumber+".pdf"))
		c.Data(http.StatusOK, "application/pdf", data)
	}
}
