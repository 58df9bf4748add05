package main

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/library_management/configs"
	"github.com/library_management/internal/handlers"
	"github.com/library_management/internal/repositories"
	"github.com/library_management/internal/routes"
	"github.com/library_management/internal/services"
	"github.com/library_management/internal/ws"
	"github.com/library_management/pkg/db"
)

// @title 图书管理系统 API
// @version 1.0
// @description 图书、用户、借阅记录管理与统计接口
// @BasePath /api
func main() {
	configs.LoadConfig()

	// 初始化数据库连接（含表迁移与默认管理员）
	db.InitDB()
	defer db.CloseDB()

	gormDB := db.GetDB()
	bookRepo := repositories.NewGormBookRepository(gormDB)
	borrowRepo := repositories.NewGormBorrowRepository(gormDB)
	userRepo := repositories.NewGormUserRepository(gormDB)

	authService := services.NewAuthService(userRepo)
	userService := services.NewUserService(userRepo)
	bookService := services.NewBookService(bookRepo)
	borrowService := services.NewBorrowService(borrowRepo, bookRepo, time.Now)
	statisticsService := services.NewStatisticsService(borrowRepo, bookRepo, time.Now)

	reconciler := services.NewStatusReconciler(borrowRepo, configs.AppConfig.TaskInterval, time.Now)
	reconciler.Start()
	defer reconciler.Stop()

	hub := ws.NewHub()

	router := gin.Default()
	routes.SetupRoutes(router, routes.Handlers{
		Auth:       handlers.NewAuthHandler(authService),
		Book:       handlers.NewBookHandler(bookService, hub),
		Borrow:     handlers.NewBorrowHandler(borrowService, hub),
		User:       handlers.NewUserHandler(userService),
		Statistics: handlers.NewStatisticsHandler(statisticsService),
		Task:       handlers.NewTaskHandler(reconciler),
		WS:         handlers.NewWSHandler(hub),
	})

	port := configs.AppConfig.ServerPort
	log.Printf("Server starting on port %s...", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
