package routes

import (
	"log"

	"art-store/config"
	"art-store/controllers"
	"art-store/middleware"
	"art-store/repositories"
	"art-store/services"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func SetupRoutes(router *gin.Engine) {
	userRepo := repositories.NewUserRepository(config.DB)
	productRepo := repositories.NewProductRepository(config.DB)
	cartRepo := repositories.NewCartRepository(config.DB)
	orderRepo := repositories.NewOrderRepository(config.DB)

	emailService, err := services.NewEmailService()
	if err != nil {
		log.Printf("Email service disabled: %v", err)
		emailService = nil
	}

	authService := services.NewAuthService(userRepo, emailService)
	productService := services.NewProductService(productRepo)
	cartService := services.NewCartService(cartRepo, productRepo)
	orderService := services.NewOrderService(productRepo, cartRepo, orderRepo)

	authCtrl := controllers.NewAuthController(authService)
	productCtrl := controllers.NewProductController(productService)
	cartCtrl := controllers.NewCartController(cartService)
	orderCtrl := controllers.NewOrderController(orderService, emailService)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) })

	router.POST("/auth/register", authCtrl.Register)
	router.POST("/auth/login", authCtrl.Login)
	router.POST("/auth/forgot-password", authCtrl.ForgotPassword)
	router.POST("/auth/reset-password", authCtrl.ResetPassword)

	router.GET("/products", productCtrl.GetAllProducts)
	router.GET("/products/search", productCtrl.SearchProducts)
	router.GET("/products/price-range", productCtrl.GetProductsByPriceRange)
	router.GET("/products/category/:category", productCtrl.GetProductsByCategory)
	router.GET("/products/:id", productCtrl.GetProductByID)

	auth := router.Group("/")
	auth.Use(middleware.AuthMiddleware())
	{
		auth.GET("/auth/profile", authCtrl.GetProfile)
		auth.PATCH("/auth/profile", authCtrl.UpdateProfile)
		auth.POST("/auth/change-password", authCtrl.ChangePassword)

		auth.GET("/cart", cartCtrl.GetCart)
		auth.DELETE("/cart", cartCtrl.ClearCart)
		auth.POST("/cart/items", cartCtrl.AddItem)
		auth.PUT("/cart/items/:productId", cartCtrl.UpdateItem)
		auth.DELETE("/cart/items/:productId", cartCtrl.RemoveItem)

		auth.POST("/orders", orderCtrl.PlaceOrder)
		auth.GET("/orders", orderCtrl.GetUserOrders)
		auth.GET("/orders/:id", orderCtrl.GetOrderByID)
	}

	admin := router.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.AdminMiddleware())
	{
		admin.POST("/products", productCtrl.CreateProduct)
		admin.PATCH("/products/:id", productCtrl.UpdateProduct)
		admin.DELETE("/products/:id", productCtrl.DeleteProduct)
		admin.PATCH("/products/:id/stock", productCtrl.AdjustStock)

		admin.GET("/orders", orderCtrl.GetAllOrders)
		admin.PATCH("/orders/:id/status", orderCtrl.UpdateOrderStatus)
	}
}
