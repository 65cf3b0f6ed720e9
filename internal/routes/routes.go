package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/pinkbears/internal/config"
	"github.com/example/pinkbears/internal/handlers"
	"github.com/example/pinkbears/internal/middleware"
	"github.com/example/pinkbears/internal/realtime"
	"github.com/example/pinkbears/internal/services"
)

// Register wires up all HTTP routes and the WebSocket endpoint.
func Register(app *fiber.App, db *gorm.DB, cfg *config.Config, hub *realtime.Hub) {
	orderService := services.NewOrderService(db, hub)
	trackingService := services.NewTrackingService(db)
	chatService := services.NewChatService(db, hub)
	analyticsService := services.NewAnalyticsService(db)

	orderHandler := handlers.NewOrderHandler(orderService)
	trackingHandler := handlers.NewTrackingHandler(trackingService)
	chatHandler := handlers.NewChatHandler(chatService)
	productHandler := handlers.NewProductHandler(db)
	contactHandler := handlers.NewContactHandler(db)
	adminHandler := handlers.NewAdminHandler(db, cfg, orderService, analyticsService)
	wsHandler := handlers.NewWSHandler(hub, chatService)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "Pink Bears Gifts Backend is running! - Cash on Delivery Only"})
	})

	api := app.Group("/api")

	// Catalog
	api.Get("/products", productHandler.ListProducts)
	api.Get("/products/:id", productHandler.GetProduct)

	// Contact form
	api.Post("/contact", contactHandler.Submit)

	// Orders
	api.Post("/checkout", orderHandler.Checkout)
	api.Get("/orders/:id", orderHandler.GetOrder)
	api.Post("/orders/:id/confirm-payment", orderHandler.ConfirmPayment)
	api.Get("/payment-status/:orderId", orderHandler.PaymentStatus)

	// Tracking
	api.Get("/order-tracking/:trackingNumber", trackingHandler.GetTracking)

	// Chat history
	api.Get("/chat-messages/:orderId", chatHandler.ListMessages)

	// Admin console
	api.Post("/admin/login", adminHandler.Login)

	admin := api.Group("/admin", middleware.AdminAuth(cfg))
	admin.Get("/orders", adminHandler.ListOrders)
	admin.Put("/orders/:id", adminHandler.UpdateOrderStatus)
	admin.Post("/orders/:id/confirm-payment", adminHandler.ConfirmPayment)
	admin.Get("/analytics", adminHandler.Analytics)
	admin.Get("/products", productHandler.ListProductsAdmin)
	admin.Post("/products", productHandler.CreateProduct)
	admin.Put("/products/:id", productHandler.UpdateProduct)
	admin.Delete("/products/:id", productHandler.DeleteProduct)

	// Real-time events
	app.Use("/ws", wsHandler.Upgrade)
	app.Get("/ws", wsHandler.Serve())
}
