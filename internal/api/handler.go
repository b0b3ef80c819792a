package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"product-store/internal/models"
	"product-store/internal/service"
	"product-store/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Handler contains HTTP handlers
type Handler struct {
	products  *service.ProductService
	stores    *service.StoreService
	customers *service.CustomerService
	orders    *service.OrderService
	logger    *zap.Logger
}

// NewHandler creates a new HTTP handler
func NewHandler(
	products *service.ProductService,
	stores *service.StoreService,
	customers *service.CustomerService,
	orders *service.OrderService,
) *Handler {
	return &Handler{
		products:  products,
		stores:    stores,
		customers: customers,
		orders:    orders,
		logger:    util.GetLogger(),
	}
}

// SetupRoutes sets up HTTP routes
func (h *Handler) SetupRoutes(router *gin.Engine) {
	router.Use(gin.Recovery())
	router.Use(prometheusMiddleware())
	router.Use(gin.Logger())

	router.GET("/health", h.healthCheck)
	router.GET("/ready", h.readinessCheck)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	{
		api.GET("/products", h.getAllProducts)
		// the path parameter doubles as a name fragment on the search
		// route, so every sibling route has to share the :id name
		api.GET("/products/:id", h.searchProducts)
		api.GET("/products/:id/stores", h.getStoresOfProduct)
		api.GET("/products/:id/stores/:storeId", h.buyConfirmation)
		api.POST("/products/:id/stores/:storeId/order", h.placeOrder)
		api.POST("/products/:id/rating", h.rateProduct)

		api.GET("/stores", h.getAllStores)
		api.GET("/stores/:id", h.getStoreByID)
		api.POST("/stores/:id/rating", h.rateStore)

		api.GET("/customers", h.getAllCustomers)
		api.GET("/customers/by-email", h.getCustomerByEmail)
		api.POST("/customers/register", h.register)

		api.GET("/orders", h.getAllOrders)
		api.GET("/orders/:name", h.getOrdersByProduct)
		api.GET("/orders/customers/:name", h.getOrdersByCustomer)
	}
}

// RatingRequest carries a single rating submission. A pointer keeps a
// legitimate zero rating distinguishable from a missing field.
type RatingRequest struct {
	Rating *float64 `json:"rating" binding:"required"`
}

// respondError maps the domain error taxonomy to HTTP statuses. Anything
// outside the taxonomy is logged and collapsed into a fixed 500 body so
// no internal cause leaks to the client.
func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		h.logger.Error("Request failed",
			zap.String("path", c.FullPath()),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
	}
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return 0, false
	}
	return id, true
}

// healthCheck handles health check requests
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"time":   time.Now().Unix(),
	})
}

// readinessCheck handles readiness check requests
func (h *Handler) readinessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
		"time":   time.Now().Unix(),
	})
}

// getAllProducts lists every product
func (h *Handler) getAllProducts(c *gin.Context) {
	products, err := h.products.FindAll(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

// searchProducts lists products whose name contains the path fragment
func (h *Handler) searchProducts(c *gin.Context) {
	fragment := c.Param("id")

	products, err := h.products.FindByNameContaining(c.Request.Context(), fragment)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if len(products) == 0 {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "No products found with name containing: " + fragment,
		})
		return
	}
	c.JSON(http.StatusOK, products)
}

// getStoresOfProduct lists the stores associated with a product
func (h *Handler) getStoresOfProduct(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	stores, err := h.products.StoresOf(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stores)
}

// buyConfirmation answers with purchase details for a product sold by a
// given store
func (h *Handler) buyConfirmation(c *gin.Context) {
	productID, ok := pathID(c, "id")
	if !ok {
		return
	}
	storeID, ok := pathID(c, "storeId")
	if !ok {
		return
	}

	product, err := h.products.FindByID(c.Request.Context(), productID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	store, err := h.products.StoreOf(c.Request.Context(), productID, storeID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Product: %s of company name: %s with price: %.2f from store: %s Login to proceed",
			product.Name, product.Company, product.Price, store.Name),
	})
}

// placeOrder places an order for a product from a store for the customer
// identified by the email query parameter
func (h *Handler) placeOrder(c *gin.Context) {
	productID, ok := pathID(c, "id")
	if !ok {
		return
	}
	storeID, ok := pathID(c, "storeId")
	if !ok {
		return
	}

	email := c.Query("email")
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing email parameter"})
		return
	}

	if _, err := h.orders.PlaceOrder(c.Request.Context(), productID, storeID, email); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Order placed successfully. Please review."})
}

// rateProduct folds a rating into a product's running average
func (h *Handler) rateProduct(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req RatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if _, err := h.products.Rate(c.Request.Context(), id, *req.Rating); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"message": "Thanks for your rating!",
		"status":  http.StatusAccepted,
	})
}

// getAllStores lists every store
func (h *Handler) getAllStores(c *gin.Context) {
	stores, err := h.stores.FindAll(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stores)
}

// getStoreByID retrieves a single store
func (h *Handler) getStoreByID(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	store, err := h.stores.FindByID(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, store)
}

// rateStore folds a rating into a store's running average
func (h *Handler) rateStore(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req RatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if _, err := h.stores.Rate(c.Request.Context(), id, *req.Rating); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Thanks for your rating!",
		"status":  http.StatusOK,
	})
}

// getAllCustomers lists every customer
func (h *Handler) getAllCustomers(c *gin.Context) {
	customers, err := h.customers.FindAll(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, customers)
}

// getCustomerByEmail retrieves a customer by the email query parameter
func (h *Handler) getCustomerByEmail(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing email parameter"})
		return
	}

	customer, err := h.customers.FindByEmail(c.Request.Context(), email)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Email ID " + email + " not found."})
			return
		}
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, customer)
}

// register creates a new customer
func (h *Handler) register(c *gin.Context) {
	var req service.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if _, err := h.customers.Register(c.Request.Context(), &req); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Registration successful. Go to login."})
}

// getAllOrders lists every order
func (h *Handler) getAllOrders(c *gin.Context) {
	orders, err := h.orders.FindAll(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

// getOrdersByProduct lists orders whose product name contains the fragment
func (h *Handler) getOrdersByProduct(c *gin.Context) {
	fragment := c.Param("name")

	orders, err := h.orders.FindByProductNameContaining(c.Request.Context(), fragment)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if len(orders) == 0 {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "No orders found for product name: " + fragment,
		})
		return
	}
	c.JSON(http.StatusOK, orders)
}

// getOrdersByCustomer lists orders whose customer name contains the fragment
func (h *Handler) getOrdersByCustomer(c *gin.Context) {
	fragment := c.Param("name")

	orders, err := h.orders.FindByCustomerNameContaining(c.Request.Context(), fragment)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if len(orders) == 0 {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "No orders found for customer name: " + fragment,
		})
		return
	}
	c.JSON(http.StatusOK, orders)
}

// prometheusMiddleware collects HTTP metrics
func prometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())

		util.HTTPRequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Observe(duration)

		util.HTTPRequestsTotal.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Inc()
	}
}
