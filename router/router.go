package router

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yeremiapane/qrmenu-app/controllers"
	"github.com/yeremiapane/qrmenu-app/middlewares"
	"github.com/yeremiapane/qrmenu-app/models"
	"github.com/yeremiapane/qrmenu-app/services"
	"github.com/yeremiapane/qrmenu-app/utils"
)

// SetupRouter wires all endpoints. uploadsDir is the directory the QR
// artifacts are written to; it is served read-only at /uploads.
func SetupRouter(db *gorm.DB, store utils.FileStore, uploadsDir string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middlewares.LoggerMiddleware())
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())

	// 50 requests per second per IP across the whole surface
	rateLimiter := middlewares.NewRateLimiter(50, 1)
	r.Use(rateLimiter.RateLimit())

	// only the generated PNG artifacts are reachable under /uploads
	r.Use(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/uploads/") &&
			!strings.HasSuffix(strings.ToLower(c.Request.URL.Path), ".png") {
			c.AbortWithStatus(http.StatusForbidden)
			return
		}
		c.Next()
	})
	r.Static("/uploads", uploadsDir)

	qrService := services.NewQRCodeService(db, store)

	userCtrl := controllers.NewUserController(db)
	tableCtrl := controllers.NewTableController(db, qrService)
	qrCtrl := controllers.NewQRCodeController(qrService)
	orderCtrl := controllers.NewOrderController(db)
	menuCtrl := controllers.NewMenuController(db)
	categoryCtrl := controllers.NewMenuCategoryController(db)
	offerCtrl := controllers.NewOfferController(db)
	publicCtrl := controllers.NewPublicController(db)

	// auth
	auth := r.Group("/api/auth")
	auth.Use(middlewares.NewStrictRateLimiter())
	{
		auth.POST("/register", userCtrl.Register)
		auth.POST("/login", userCtrl.Login)
	}

	// guest surface reached by scanning a code; no auth
	public := r.Group("/api/public")
	{
		public.GET("/tables/:table_id", publicCtrl.GetTableByID)
		public.GET("/tables/:table_id/menu", publicCtrl.GetTableMenu)
		public.GET("/menu", publicCtrl.GetActiveMenus)
		public.GET("/menu/categories", publicCtrl.GetMenuCategories)
		public.GET("/offers", publicCtrl.GetActiveOffers)
		public.POST("/orders", publicCtrl.CreateOrder)
		public.GET("/orders/:order_id", publicCtrl.GetOrder)
	}

	// everything below requires a valid staff token
	api := r.Group("/api")
	api.Use(middlewares.AuthMiddleware())
	{
		api.POST("/auth/logout", userCtrl.Logout)
		api.GET("/profile", userCtrl.GetProfile)

		orders := api.Group("/orders")
		{
			orders.GET("", orderCtrl.GetAllOrders)
			orders.GET("/board", orderCtrl.GetOrderBoard)
			orders.GET("/:order_id", orderCtrl.GetOrderByID)
			orders.POST("", orderCtrl.CreateOrder)
			orders.PUT("/:order_id/status", orderCtrl.UpdateOrderStatus)
			orders.PUT("/:order_id/payment", orderCtrl.UpdatePaymentStatus)
		}

		tables := api.Group("/tables")
		{
			tables.GET("", tableCtrl.GetAllTables)
			tables.GET("/:table_id", tableCtrl.GetTableByID)
			tables.POST("", tableCtrl.CreateTable)
			tables.PUT("/:table_id", tableCtrl.UpdateTable)
			tables.DELETE("/:table_id", tableCtrl.DeleteTable)
			tables.POST("/:table_id/qrcode", tableCtrl.GenerateTableQR)
		}

		// QR code management is owner/manager territory
		qrcodes := api.Group("/qrcodes")
		qrcodes.Use(middlewares.RequireRoles(models.RoleManager))
		{
			qrcodes.GET("", qrCtrl.GetAllQRCodes)
			qrcodes.GET("/:qrcode_id", qrCtrl.GetQRCodeByID)
			qrcodes.POST("", qrCtrl.CreateQRCode)
			qrcodes.POST("/global", qrCtrl.GenerateGlobalQR)
			qrcodes.DELETE("/:qrcode_id", qrCtrl.DeleteQRCode)
		}

		menu := api.Group("/menu")
		{
			menu.GET("", menuCtrl.GetAllMenus)
			menu.GET("/:menu_id", menuCtrl.GetMenuByID)
			menu.POST("", middlewares.RequireRoles(models.RoleManager), menuCtrl.CreateMenu)
			menu.PUT("/:menu_id", middlewares.RequireRoles(models.RoleManager), menuCtrl.UpdateMenu)
			menu.DELETE("/:menu_id", middlewares.RequireRoles(models.RoleManager), menuCtrl.DeleteMenu)
		}

		categories := api.Group("/categories")
		{
			categories.GET("", categoryCtrl.GetAllCategories)
			categories.POST("", middlewares.RequireRoles(models.RoleManager), categoryCtrl.CreateCategory)
			categories.DELETE("/:category_id", middlewares.RequireRoles(models.RoleManager), categoryCtrl.DeleteCategory)
		}

		offers := api.Group("/offers")
		{
			offers.GET("", offerCtrl.GetAllOffers)
			offers.GET("/status/active", offerCtrl.GetActiveOffers)
			offers.GET("/:offer_id", offerCtrl.GetOfferByID)
			offers.POST("", middlewares.RequireRoles(models.RoleManager), offerCtrl.CreateOffer)
			offers.PUT("/:offer_id", middlewares.RequireRoles(models.RoleManager), offerCtrl.UpdateOffer)
			offers.DELETE("/:offer_id", middlewares.RequireRoles(models.RoleManager), offerCtrl.DeleteOffer)
		}

		users := api.Group("/users")
		users.Use(middlewares.RequireRoles(models.RoleManager))
		{
			users.GET("", userCtrl.GetAllUsers)
			users.GET("/:user_id", userCtrl.GetUserByID)
			users.PUT("/:user_id", userCtrl.UpdateUser)
			users.DELETE("/:user_id", userCtrl.DeleteUser)
		}
	}

	return r
}
