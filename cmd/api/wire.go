//go:build wireinject
// +build wireinject

// Wire依赖注入配置文件
// 运行 `wire gen ./cmd/api` 生成wire_gen.go;
// main.go中的手动组装与此处的依赖链等价
package main

import (
	"github.com/gin-gonic/gin"
	"github.com/google/wire"

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
	"github.com/kovan/bookshop/pkg/mq"
)

// infrastructureSet 基础设施层依赖
var infrastructureSet = wire.NewSet(
	config.Load,
	mysql.NewDB,
	providePublisher,
)

// repositorySet 仓储层依赖
var repositorySet = wire.NewSet(
	mysql.NewUserRepository,
	mysql.NewAddressRepository,
	mysql.NewCategoryRepository,
	mysql.NewBookRepository,
	mysql.NewCartRepository,
	mysql.NewCartItemRepository,
	mysql.NewOrderRepository,
	mysql.NewPaymentRepository,
	mysql.NewInventoryRepository,
	mysql.NewReviewRepository,
	mysql.NewTxManager,
)

// domainSet 领域层依赖
var domainSet = wire.NewSet(
	user.NewService,
	category.NewService,
	book.NewService,
	cart.NewService,
	order.NewService,
	payment.NewService,
	inventory.NewService,
	review.NewService,
)

// applicationSet 应用层依赖
// 用例依赖的TxManager/EventPublisher接口绑定到具体实现
var applicationSet = wire.NewSet(
	apporder.NewCreateOrderUseCase,
	apporder.NewCancelOrderUseCase,
	apppayment.NewProcessPaymentUseCase,
	apppayment.NewUpdatePaymentUseCase,
	appinventory.NewApplyTransactionUseCase,
	wire.Bind(new(apporder.TxManager), new(*mysql.TxManager)),
	wire.Bind(new(apppayment.TxManager), new(*mysql.TxManager)),
	wire.Bind(new(appinventory.TxManager), new(*mysql.TxManager)),
	wire.Bind(new(apporder.EventPublisher), new(*mq.Publisher)),
	wire.Bind(new(apppayment.EventPublisher), new(*mq.Publisher)),
)

// handlerSet HTTP处理器依赖
var handlerSet = wire.NewSet(
	handler.NewUserHandler,
	handler.NewAddressHandler,
	handler.NewCategoryHandler,
	handler.NewBookHandler,
	handler.NewCartHandler,
	handler.NewOrderHandler,
	handler.NewPaymentHandler,
	handler.NewInventoryHandler,
	handler.NewReviewHandler,
)

// providePublisher 从配置创建事件发布器
// MQ未启用时返回nil,用例侧做nil检查
func providePublisher(cfg *config.Config) (*mq.Publisher, error) {
	if !cfg.MQ.Enabled {
		return nil, nil
	}
	return mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange, "topic")
}

// provideGinEngine 创建并配置Gin引擎
func provideGinEngine(
	cfg *config.Config,
	userHandler *handler.UserHandler,
	addressHandler *handler.AddressHandler,
	categoryHandler *handler.CategoryHandler,
	bookHandler *handler.BookHandler,
	cartHandler *handler.CartHandler,
	orderHandler *handler.OrderHandler,
	paymentHandler *handler.PaymentHandler,
	inventoryHandler *handler.InventoryHandler,
	reviewHandler *handler.ReviewHandler,
) *gin.Engine {
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	registerRoutes(r,
		userHandler, addressHandler, categoryHandler, bookHandler,
		cartHandler, orderHandler, paymentHandler, inventoryHandler, reviewHandler)
	return r
}

// InitializeApp 初始化整个应用
func InitializeApp() (*gin.Engine, error) {
	wire.Build(
		infrastructureSet,
		repositorySet,
		domainSet,
		applicationSet,
		handlerSet,
		provideGinEngine,
	)
	return nil, nil
}
