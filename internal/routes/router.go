package routes

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/library_management/configs"
	"github.com/library_management/internal/auth"
	"github.com/library_management/internal/handlers"
)

// Handlers 聚合了注册路由需要的全部处理器
type Handlers struct {
	Auth       *handlers.AuthHandler
	Book       *handlers.BookHandler
	Borrow     *handlers.BorrowHandler
	User       *handlers.UserHandler
	Statistics *handlers.StatisticsHandler
	Task       *handlers.TaskHandler
	WS         *handlers.WSHandler
}

// SetupRoutes 初始化所有路由
func SetupRoutes(router *gin.Engine, h Handlers) {
	api := router.Group("/api")

	// 公共路由：登录与注册无需认证
	api.POST("/login", h.Auth.Login)
	api.POST("/register", h.Auth.Register)

	// 受保护路由：其余接口全部要求有效会话
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware())
	{
		protected.POST("/logout", h.Auth.Logout)
		protected.POST("/change-password", h.Auth.ChangePassword)
		protected.GET("/current-user", h.Auth.CurrentUser)

		books := protected.Group("/books")
		{
			books.GET("", h.Book.List)
			books.POST("", h.Book.Create)
			books.PUT("/:id", h.Book.Update)
			books.DELETE("/:id", h.Book.Delete)
			books.GET("/:id/stock", h.Book.GetStock)
			books.PUT("/:id/stock", h.Book.UpdateStock)
		}

		borrows := protected.Group("/borrows")
		{
			borrows.GET("", h.Borrow.List)
			borrows.POST("", h.Borrow.Create)
			borrows.GET("/count", h.Borrow.Count)
			borrows.PUT("/:id", h.Borrow.Update)
			borrows.DELETE("/:id", h.Borrow.Delete)
		}

		statistics := protected.Group("/statistics")
		{
			statistics.GET("/borrow", h.Statistics.Borrow)
			statistics.GET("/stock", h.Statistics.Stock)
			statistics.GET("/return", h.Statistics.Return)
		}

		task := protected.Group("/task")
		{
			task.GET("/status", h.Task.Status)
			task.POST("/start", h.Task.Start)
			task.POST("/stop", h.Task.Stop)
			task.POST("/execute", h.Task.Execute)
		}

		// 用户管理仅对管理员开放
		users := protected.Group("/users")
		users.Use(auth.AdminRequired())
		{
			users.GET("", h.User.List)
			users.POST("", h.User.Create)
			users.PUT("/:id", h.User.Update)
			users.DELETE("/:id", h.User.Delete)
		}
	}

	// WebSocket 在消息里完成认证，不走 Cookie 中间件
	router.GET("/ws", h.WS.Serve)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	setupStaticRoutes(router)
}

// setupStaticRoutes 托管前端静态资源。
// 带一个很短的缓存时间，前端发布后几秒内即可生效。
func setupStaticRoutes(router *gin.Engine) {
	staticDir := configs.AppConfig.StaticDir
	if staticDir == "" {
		return
	}

	router.Use(func(c *gin.Context) {
		if c.Request.Method == "GET" {
			c.Header("Cache-Control", "public, max-age=3")
		}
		c.Next()
	})
	router.Static("/assets", staticDir+"/assets")
	router.StaticFile("/", staticDir+"/index.html")
	router.StaticFile("/favicon.ico", staticDir+"/favicon.ico")
	router.NoRoute(func(c *gin.Context) {
		// 单页应用的前端路由统一回退到 index.html
		c.File(staticDir + "/index.html")
	})
}
