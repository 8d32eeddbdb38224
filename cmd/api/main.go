package main

import (
	"context"
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	appinventory "github.com/kovan/bookshop/internal/application/inventory"
	apporder "github.com/kovan/bookshop/internal/application/order"
	apppayment "github.com/kovan/bookshop/internal/application/payment"
	"github.com/kovan/bookshop/internal/domain/book"
	"github.com/kovan/bookshop/internal/domain/cart"
	"github.com/kovan/bookshop/internal/domain/category"
	"github.com/kovan/bookshop/internal/domain/inventory"
	"github.com/kovan/bookshop/internal/domain/order"
	"github.com/kovan/bookshop/internal/domain/payment"
	"github.com/kovan/bookshop/internal/domain/review"
	"github.com/kovan/bookshop/internal/domain/user"
	"github.com/kovan/bookshop/internal/infrastructure/config"
	"github.com/kovan/bookshop/internal/infrastructure/persistence/mysql"
	"github.com/kovan/bookshop/internal/interface/http/handler"
	"github.com/kovan/bookshop/internal/interface/http/middleware"
	"github.com/kovan/bookshop/pkg/logger"
	"github.com/kovan/bookshop/pkg/metrics"
	"github.com/kovan/bookshop/pkg/mq"
	"github.com/kovan/bookshop/pkg/response"
	"github.com/kovan/bookshop/pkg/tracing"
)

// main 主程序入口
// 说明:手动依赖注入,wire.go提供等价的Wire注入器
func main() {
	// 1. 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	// 2. 初始化日志
	if err := logger.Init(logger.Options{
		Level:        cfg.Log.Level,
		Format:       cfg.Log.Format,
		Output:       cfg.Log.Output,
		EnableCaller: cfg.Log.EnableCaller,
	}); err != nil {
		log.Fatalf("初始化日志失败: %v", err)
	}
	defer logger.Sync()

	logger.L().Info("配置加载成功",
		zap.Int("port", cfg.Server.Port),
		zap.String("mode", cfg.Server.Mode),
		zap.String("database", fmt.Sprintf("%s:%d/%s", cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)),
	)

	// 3. 初始化指标
	metrics.InitMetrics()

	// 4. 初始化链路追踪(可选)
	if cfg.Tracing.Enabled {
		shutdown, err := tracing.InitTracer("bookshop-api", cfg.Tracing.Endpoint)
		if err != nil {
			log.Fatalf("初始化链路追踪失败: %v", err)
		}
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				logger.L().Warn("关闭链路追踪失败", zap.Error(err))
			}
		}()
	}

	// 5. 初始化数据库连接
	db, err := mysql.NewDB(cfg)
	if err != nil {
		log.Fatalf("初始化数据库失败: %v", err)
	}
	logger.L().Info("数据库连接成功")

	// 6. 初始化事件发布器(可选)
	var publisher *mq.Publisher
	if cfg.MQ.Enabled {
		publisher, err = mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange, "topic")
		if err != nil {
			log.Fatalf("初始化消息队列失败: %v", err)
		}
		defer publisher.Close()
		logger.L().Info("消息队列连接成功", zap.String("exchange", cfg.MQ.Exchange))
	}

	// 7. 依赖注入(手动组装)
	// 依赖链:Repository ← Service ← UseCase ← Handler

	// 基础设施层
	userRepo := mysql.NewUserRepository(db)
	addressRepo := mysql.NewAddressRepository(db)
	categoryRepo := mysql.NewCategoryRepository(db)
	bookRepo := mysql.NewBookRepository(db)
	cartRepo := mysql.NewCartRepository(db)
	cartItemRepo := mysql.NewCartItemRepository(db)
	orderRepo := mysql.NewOrderRepository(db)
	paymentRepo := mysql.NewPaymentRepository(db)
	inventoryRepo := mysql.NewInventoryRepository(db)
	reviewRepo := mysql.NewReviewRepository(db)
	txManager := mysql.NewTxManager(db)

	// 领域层
	userService := user.NewService(userRepo, addressRepo)
	categoryService := category.NewService(categoryRepo)
	bookService := book.NewService(bookRepo, categoryRepo)
	cartService := cart.NewService(cartRepo, cartItemRepo, userRepo, bookRepo)
	orderService := order.NewService(orderRepo)
	paymentService := payment.NewService(paymentRepo)
	inventoryService := inventory.NewService(inventoryRepo, bookRepo)
	reviewService := review.NewService(reviewRepo, userRepo, bookRepo)

	// 应用层
	var orderPublisher apporder.EventPublisher
	var paymentPublisher apppayment.EventPublisher
	if publisher != nil {
		orderPublisher = publisher
		paymentPublisher = publisher
	}
	createOrderUseCase := apporder.NewCreateOrderUseCase(orderRepo, userRepo, addressRepo, bookRepo, txManager, orderPublisher)
	cancelOrderUseCase := apporder.NewCancelOrderUseCase(orderRepo, paymentRepo, bookRepo, inventoryRepo, txManager, orderPublisher)
	processPaymentUseCase := apppayment.NewProcessPaymentUseCase(paymentRepo, orderRepo, bookRepo, inventoryRepo, txManager, paymentPublisher)
	updatePaymentUseCase := apppayment.NewUpdatePaymentUseCase(paymentRepo, orderRepo, bookRepo, inventoryRepo, txManager)
	applyTransactionUseCase := appinventory.NewApplyTransactionUseCase(inventoryRepo, bookRepo, txManager)

	// 接口层
	userHandler := handler.NewUserHandler(userService)
	addressHandler := handler.NewAddressHandler(userService)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	bookHandler := handler.NewBookHandler(bookService)
	cartHandler := handler.NewCartHandler(cartService)
	orderHandler := handler.NewOrderHandler(orderService, createOrderUseCase, cancelOrderUseCase)
	paymentHandler := handler.NewPaymentHandler(paymentService, processPaymentUseCase, updatePaymentUseCase)
	inventoryHandler := handler.NewInventoryHandler(inventoryService, applyTransactionUseCase)
	reviewHandler := handler.NewReviewHandler(reviewService)

	// 8. 初始化Gin引擎
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.Metrics())
	if cfg.Tracing.Enabled {
		r.Use(middleware.Tracing())
	}

	// 9. 注册路由
	registerRoutes(r,
		userHandler, addressHandler, categoryHandler, bookHandler,
		cartHandler, orderHandler, paymentHandler, inventoryHandler, reviewHandler)

	// 10. 启动服务
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	logger.L().Info("服务启动", zap.String("addr", addr))
	if err := r.Run(addr); err != nil {
		log.Fatalf("启动服务失败: %v", err)
	}
}

// registerRoutes 注册路由
func registerRoutes(
	r *gin.Engine,
	userHandler *handler.UserHandler,
	addressHandler *handler.AddressHandler,
	categoryHandler *handler.CategoryHandler,
	bookHandler *handler.BookHandler,
	cartHandler *handler.CartHandler,
	orderHandler *handler.OrderHandler,
	paymentHandler *handler.PaymentHandler,
	inventoryHandler *handler.InventoryHandler,
	reviewHandler *handler.ReviewHandler,
) {
	// 健康检查
	r.GET("/ping", func(c *gin.Context) {
		response.Success(c, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})

	// Prometheus指标
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Swagger文档
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API路由组
	v1 := r.Group("/api/v1")
	{
		userHandler.RegisterRoutes(v1)
		addressHandler.RegisterRoutes(v1)
		categoryHandler.RegisterRoutes(v1)
		bookHandler.RegisterRoutes(v1)
		cartHandler.RegisterRoutes(v1)
		orderHandler.RegisterRoutes(v1)
		paymentHandler.RegisterRoutes(v1)
		inventoryHandler.RegisterRoutes(v1)
		reviewHandler.RegisterRoutes(v1)
	}
}
