package orderControllers_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/FathimaJufla/Ecommerce/auth"
	"github.com/FathimaJufla/Ecommerce/config"
	cartControllers "github.com/FathimaJufla/Ecommerce/controllers/cart"
	orderControllers "github.com/FathimaJufla/Ecommerce/controllers/order"
	"github.com/FathimaJufla/Ecommerce/models"
	"github.com/FathimaJufla/Ecommerce/routes"
)

const (
	testSecret = "test-secret"
	testAPIKey = "test-admin-key"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.Customer{}, &models.Product{},
		&models.Cart{}, &models.CartItem{},
		&models.Order{}, &models.OrderItem{},
	))
	return db
}

func createCustomer(t *testing.T, db *gorm.DB, username string) models.Customer {
	t.Helper()
	customer := models.Customer{Username: username, Email: username + "@example.com", Password: "x"}
	require.NoError(t, db.Create(&customer).Error)
	return customer
}

func createProduct(t *testing.T, db *gorm.DB, name, price string) models.Product {
	t.Helper()
	product := models.Product{Name: name, Price: decimal.RequireFromString(price), IsActive: true}
	require.NoError(t, db.Create(&product).Error)
	return product
}

func fillCart(t *testing.T, db *gorm.DB, customerID uint, lines map[uint]int) models.Cart {
	t.Helper()
	cart, err := cartControllers.GetOrCreateCart(db, customerID)
	require.NoError(t, err)
	for productID, qty := range lines {
		require.NoError(t, db.Create(&models.CartItem{
			CartID: cart.CartID, ProductID: productID, Quantity: qty,
		}).Error)
	}
	return cart
}

func cartItemCount(db *gorm.DB, cartID uint) int64 {
	var count int64
	db.Model(&models.CartItem{}).Where("cart_id = ?", cartID).Count(&count)
	return count
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	db := openTestDB(t)
	customer := createCustomer(t, db, "alice")

	_, err := orderControllers.PlaceOrder(db, orderControllers.PlaceOrderInput{
		CustomerID:      customer.ID,
		ShippingAddress: "12 Main St",
		PaymentMethod:   models.PaymentUPI,
	})
	require.ErrorIs(t, err, orderControllers.ErrEmptyCart)

	var orders, items int64
	db.Model(&models.Order{}).Count(&orders)
	db.Model(&models.OrderItem{}).Count(&items)
	assert.EqualValues(t, 0, orders)
	assert.EqualValues(t, 0, items)
}

func TestPlaceOrderCartMode(t *testing.T) {
	db := openTestDB(t)
	customer := createCustomer(t, db, "alice")
	productA := createProduct(t, db, "A", "10.00")
	productB := createProduct(t, db, "B", "5.00")
	cart := fillCart(t, db, customer.ID, map[uint]int{productA.ID: 2, productB.ID: 1})

	order, err := orderControllers.PlaceOrder(db, orderControllers.PlaceOrderInput{
		CustomerID:      customer.ID,
		ShippingAddress: "12 Main St",
		PaymentMethod:   models.PaymentCOD,
	})
	require.NoError(t, err)

	assert.Equal(t, "25.00", order.TotalAmount.StringFixed(2))
	assert.Equal(t, models.OrderStatusPending, order.Status)

	var items []models.OrderItem
	require.NoError(t, db.Where("order_id = ?", order.ID).Find(&items).Error)
	require.Len(t, items, 2)
	byProduct := make(map[uint]models.OrderItem, len(items))
	for _, item := range items {
		byProduct[item.ProductID] = item
	}
	assert.Equal(t, "10.00", byProduct[productA.ID].Price.StringFixed(2))
	assert.Equal(t, 2, byProduct[productA.ID].Quantity)
	assert.Equal(t, "5.00", byProduct[productB.ID].Price.StringFixed(2))
	assert.Equal(t, 1, byProduct[productB.ID].Quantity)

	// checkout consumed the cart
	assert.EqualValues(t, 0, cartItemCount(db, cart.CartID))
}

func TestPlaceOrderSingleItemMode(t *testing.T) {
	db := openTestDB(t)
	customer := createCustomer(t, db, "alice")
	productC := createProduct(t, db, "C", "7.50")
	other := createProduct(t, db, "Other", "1.00")
	cart := fillCart(t, db, customer.ID, map[uint]int{other.ID: 4})

	order, err := orderControllers.PlaceOrder(db, orderControllers.PlaceOrderInput{
		CustomerID:      customer.ID,
		ShippingAddress: "12 Main St",
		PaymentMethod:   models.PaymentCard,
		SingleProductID: productC.ID,
		Quantity:        3,
	})
	require.NoError(t, err)

	assert.Equal(t, "22.50", order.TotalAmount.StringFixed(2))
	require.Len(t, order.Items, 1)
	assert.Equal(t, 3, order.Items[0].Quantity)

	// buy-now never touches the cart
	assert.EqualValues(t, 1, cartItemCount(db, cart.CartID))
}

func TestPlaceOrderQuantityCoercion(t *testing.T) {
	db := openTestDB(t)
	customer := createCustomer(t, db, "alice")
	product := createProduct(t, db, "C", "7.50")

	order, err := orderControllers.PlaceOrder(db, orderControllers.PlaceOrderInput{
		CustomerID:      customer.ID,
		ShippingAddress: "12 Main St",
		PaymentMethod:   models.PaymentCard,
		SingleProductID: product.ID,
		Quantity:        0,
	})
	require.NoError(t, err)
	assert.Equal(t, "7.50", order.TotalAmount.StringFixed(2))
	assert.Equal(t, 1, order.Items[0].Quantity)
}

func TestPlaceOrderValidation(t *testing.T) {
	db := openTestDB(t)
	customer := createCustomer(t, db, "alice")
	product := createProduct(t, db, "C", "7.50")
	fillCart(t, db, customer.ID, map[uint]int{product.ID: 1})

	_, err := orderControllers.PlaceOrder(db, orderControllers.PlaceOrderInput{
		CustomerID:      customer.ID,
		ShippingAddress: "   ",
		PaymentMethod:   models.PaymentUPI,
	})
	require.ErrorIs(t, err, orderControllers.ErrMissingAddress)

	_, err = orderControllers.PlaceOrder(db, orderControllers.PlaceOrderInput{
		CustomerID:      customer.ID,
		ShippingAddress: "12 Main St",
	})
	require.ErrorIs(t, err, orderControllers.ErrMissingPayment)

	var orders int64
	db.Model(&models.Order{}).Count(&orders)
	assert.EqualValues(t, 0, orders)
}

func TestPlaceOrderMissingProduct(t *testing.T) {
	db := openTestDB(t)
	customer := createCustomer(t, db, "alice")

	_, err := orderControllers.PlaceOrder(db, orderControllers.PlaceOrderInput{
		CustomerID:      customer.ID,
		ShippingAddress: "12 Main St",
		PaymentMethod:   models.PaymentUPI,
		SingleProductID: 99999,
		Quantity:        1,
	})
	require.ErrorIs(t, err, orderControllers.ErrProductNotFound)
}

func TestOrderItemPriceIsASnapshot(t *testing.T) {
	db := openTestDB(t)
	customer := createCustomer(t, db, "alice")
	product := createProduct(t, db, "Lamp", "10.00")
	fillCart(t, db, customer.ID, map[uint]int{product.ID: 2})

	order, err := orderControllers.PlaceOrder(db, orderControllers.PlaceOrderInput{
		CustomerID:      customer.ID,
		ShippingAddress: "12 Main St",
		PaymentMethod:   models.PaymentUPI,
	})
	require.NoError(t, err)

	// a later price change must not leak into the existing order
	require.NoError(t, db.Model(&models.Product{}).Where("id = ?", product.ID).
		Update("price", decimal.RequireFromString("99.99")).Error)

	var reloaded models.Order
	require.NoError(t, db.Preload("Items").First(&reloaded, order.ID).Error)
	assert.Equal(t, "20.00", reloaded.TotalAmount.StringFixed(2))
	require.Len(t, reloaded.Items, 1)
	assert.Equal(t, "10.00", reloaded.Items[0].Price.StringFixed(2))
}

func TestOrderNumberGeneratedOnceAndStable(t *testing.T) {
	db := openTestDB(t)
	customer := createCustomer(t, db, "alice")
	product := createProduct(t, db, "Lamp", "10.00")
	fillCart(t, db, customer.ID, map[uint]int{product.ID: 1})

	order, err := orderControllers.PlaceOrder(db, orderControllers.PlaceOrderInput{
		CustomerID:      customer.ID,
		ShippingAddress: "12 Main St",
		PaymentMethod:   models.PaymentUPI,
	})
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^[A-Z0-9]{10}$`), order.OrderNumber)

	// a later save must not regenerate the number
	require.NoError(t, db.Model(&order).Update("status", models.OrderStatusConfirmed).Error)
	var reloaded models.Order
	require.NoError(t, db.First(&reloaded, order.ID).Error)
	assert.Equal(t, order.OrderNumber, reloaded.OrderNumber)
}

// ---------- handler-level ----------

func newRouter(t *testing.T, db *gorm.DB) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.LoadHTMLGlob("../../templates/*.html")
	routes.SetupRoutes(r, db, config.Config{SessionSecret: testSecret, AdminAPIKey: testAPIKey})
	return r
}

func sessionCookie(t *testing.T, customerID uint) *http.Cookie {
	t.Helper()
	token, err := auth.IssueSessionToken(testSecret, customerID)
	require.NoError(t, err)
	return &http.Cookie{Name: auth.SessionCookie, Value: token}
}

func doForm(r *gin.Engine, method, path string, form url.Values, cookie *http.Cookie) *httptest.ResponseRecorder {
	body := ""
	if form != nil {
		body = form.Encode()
	}
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestPlaceOrderHandlerRedirectsToOrderDetails(t *testing.T) {
	db := openTestDB(t)
	r := newRouter(t, db)
	customer := createCustomer(t, db, "alice")
	product := createProduct(t, db, "Lamp", "10.00")
	fillCart(t, db, customer.ID, map[uint]int{product.ID: 1})

	w := doForm(r, http.MethodPost, "/place-order", url.Values{
		"shipping_address": {"12 Main St\nSpringfield"},
		"payment_method":   {"COD"},
	}, sessionCookie(t, customer.ID))

	require.Equal(t, http.StatusFound, w.Code)
	assert.Regexp(t, regexp.MustCompile(`^/order-details/\d+$`), w.Header().Get("Location"))
}

func TestPlaceOrderHandlerEmptyCartRedirects(t *testing.T) {
	db := openTestDB(t)
	r := newRouter(t, db)
	customer := createCustomer(t, db, "alice")

	w := doForm(r, http.MethodPost, "/place-order", url.Values{
		"shipping_address": {"12 Main St"},
		"payment_method":   {"UPI"},
	}, sessionCookie(t, customer.ID))

	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/cart?error=empty", w.Header().Get("Location"))
}

func TestOrderDetailsHidesForeignOrders(t *testing.T) {
	db := openTestDB(t)
	r := newRouter(t, db)
	alice := createCustomer(t, db, "alice")
	mallory := createCustomer(t, db, "mallory")
	product := createProduct(t, db, "Lamp", "10.00")
	fillCart(t, db, alice.ID, map[uint]int{product.ID: 1})

	order, err := orderControllers.PlaceOrder(db, orderControllers.PlaceOrderInput{
		CustomerID:      alice.ID,
		ShippingAddress: "12 Main St",
		PaymentMethod:   models.PaymentUPI,
	})
	require.NoError(t, err)

	path := "/order-details/" + strconv.Itoa(int(order.ID))
	w := doForm(r, http.MethodGet, path, nil, sessionCookie(t, mallory.ID))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.NotContains(t, w.Body.String(), order.OrderNumber)

	w = doForm(r, http.MethodGet, path, nil, sessionCookie(t, alice.ID))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), order.OrderNumber)
}

func TestCheckoutPageEmptyCartRedirects(t *testing.T) {
	db := openTestDB(t)
	r := newRouter(t, db)
	customer := createCustomer(t, db, "alice")

	w := doForm(r, http.MethodGet, "/checkout", nil, sessionCookie(t, customer.ID))
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/cart?error=empty", w.Header().Get("Location"))
}

func TestAdminOrdersRequiresAPIKey(t *testing.T) {
	db := openTestDB(t)
	r := newRouter(t, db)
	customer := createCustomer(t, db, "alice")
	product := createProduct(t, db, "Lamp", "10.00")
	fillCart(t, db, customer.ID, map[uint]int{product.ID: 1})

	order, err := orderControllers.PlaceOrder(db, orderControllers.PlaceOrderInput{
		CustomerID:      customer.ID,
		ShippingAddress: "12 Main St",
		PaymentMethod:   models.PaymentUPI,
	})
	require.NoError(t, err)

	get := func(key string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/admin/orders", nil)
		if key != "" {
			req.Header.Set("X-API-KEY", key)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusUnauthorized, get("").Code)
	assert.Equal(t, http.StatusUnauthorized, get("wrong-key").Code)

	w := get(testAPIKey)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), order.OrderNumber)
}

func TestYourOrdersListsCustomerOrders(t *testing.T) {
	db := openTestDB(t)
	r := newRouter(t, db)
	customer := createCustomer(t, db, "alice")
	product := createProduct(t, db, "Lamp", "10.00")

	var numbers []string
	for i := 0; i < 2; i++ {
		fillCart(t, db, customer.ID, map[uint]int{product.ID: 1})
		order, err := orderControllers.PlaceOrder(db, orderControllers.PlaceOrderInput{
			CustomerID:      customer.ID,
			ShippingAddress: "12 Main St",
			PaymentMethod:   models.PaymentUPI,
		})
		require.NoError(t, err)
		numbers = append(numbers, order.OrderNumber)
	}

	w := doForm(r, http.MethodGet, "/your-orders", nil, sessionCookie(t, customer.ID))
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, numbers[0])
	assert.Contains(t, body, numbers[1])
}
