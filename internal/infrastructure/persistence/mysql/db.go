// Package mysql MySQL持久化实现
// 实现各领域的Repository接口,负责GORM模型与领域实体之间的转换
package mysql

import (
	"fmt"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/kovan/bookshop/internal/infrastructure/config"
)

// NewDB 创建数据库连接
// 设计说明:
// 1. 使用GORM v2作为ORM框架
// 2. 配置连接池参数(MaxOpenConns、MaxIdleConns、ConnMaxLifetime)
// 3. 开发环境开启SQL日志,生产环境关闭
// 4. 自动迁移表结构(AutoMigrate)
func NewDB(cfg *config.Config) (*gorm.DB, error) {
	dsn := cfg.Database.DSN()

	logLevel := gormlogger.Silent
	if cfg.Server.Mode == "debug" {
		logLevel = gormlogger.Info // 开发环境打印SQL
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(logLevel),
		NowFunc: func() time.Time {
			return time.Now()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取SQL DB失败: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("数据库连接测试失败: %w", err)
	}

	// 自动迁移表结构(开发环境)
	// 注意:生产环境应使用版本化的迁移脚本,不要依赖AutoMigrate
	if err := autoMigrate(db); err != nil {
		return nil, fmt.Errorf("数据库迁移失败: %w", err)
	}

	return db, nil
}

// autoMigrate 自动迁移表结构
func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&UserModel{},
		&AddressModel{},
		&CategoryModel{},
		&BookModel{},
		&CartModel{},
		&CartItemModel{},
		&OrderModel{},
		&OrderItemModel{},
		&PaymentModel{},
		&InventoryTransactionModel{},
		&ReviewModel{},
	)
}

// UserModel GORM用户模型
// 设计说明:
// 1. 这是infrastructure层的数据模型,包含GORM tag
// 2. domain层的实体不依赖GORM
// 3. Repository负责两者之间的转换
type UserModel struct {
	ID          uint      `gorm:"primaryKey"`
	FirstName   string    `gorm:"size:50;not null;comment:名"`
	LastName    string    `gorm:"size:50;not null;comment:姓"`
	Email       string    `gorm:"uniqueIndex;size:100;not null;comment:邮箱"`
	Password    string    `gorm:"size:255;not null;comment:密码(bcrypt加密)"`
	DateOfBirth string    `gorm:"size:10;comment:出生日期(YYYY-MM-DD)"`
	Role        string    `gorm:"size:20;comment:角色"`
	CreatedAt   time.Time `gorm:"comment:创建时间"`
	UpdatedAt   time.Time `gorm:"comment:更新时间"`
}

func (UserModel) TableName() string {
	return "users"
}

// AddressModel GORM地址模型
type AddressModel struct {
	ID         uint      `gorm:"primaryKey"`
	UserID     uint      `gorm:"index;not null;comment:所属用户ID"`
	Street     string    `gorm:"size:200;not null;comment:街道"`
	City       string    `gorm:"size:100;not null;comment:城市"`
	State      string    `gorm:"size:100;comment:省/州"`
	PostalCode string    `gorm:"size:20;comment:邮政编码"`
	Country    string    `gorm:"size:100;not null;comment:国家"`
	CreatedAt  time.Time `gorm:"comment:创建时间"`
	UpdatedAt  time.Time `gorm:"comment:更新时间"`
}

func (AddressModel) TableName() string {
	return "addresses"
}

// CategoryModel GORM分类模型
type CategoryModel struct {
	ID          uint      `gorm:"primaryKey"`
	Name        string    `gorm:"uniqueIndex;size:100;not null;comment:分类名称"`
	Description string    `gorm:"size:500;comment:分类描述"`
	CreatedAt   time.Time `gorm:"comment:创建时间"`
	UpdatedAt   time.Time `gorm:"comment:更新时间"`
}

func (CategoryModel) TableName() string {
	return "categories"
}

// BookModel GORM图书模型
// 设计说明:
// 1. 价格使用int64存储"分"为单位(避免浮点数精度问题)
// 2. ISBN有唯一索引,防止重复
// 3. Stock的变更在事务内通过SELECT FOR UPDATE保护
type BookModel struct {
	ID              uint      `gorm:"primaryKey"`
	Title           string    `gorm:"index:idx_search;size:200;not null;comment:书名"`
	Author          string    `gorm:"index:idx_search;size:100;not null;comment:作者"`
	Genre           string    `gorm:"size:50;comment:体裁"`
	Price           int64     `gorm:"not null;comment:价格(分)"`
	ISBN            string    `gorm:"uniqueIndex;size:20;not null;comment:ISBN号"`
	PublicationYear int       `gorm:"comment:出版年份"`
	Publisher       string    `gorm:"size:100;comment:出版社"`
	Stock           int       `gorm:"default:0;comment:库存数量"`
	Description     string    `gorm:"type:text;comment:图书描述"`
	CoverImage      string    `gorm:"size:500;comment:封面图片URL"`
	CategoryID      uint      `gorm:"index;not null;comment:所属分类ID"`
	CreatedAt       time.Time `gorm:"comment:创建时间"`
	UpdatedAt       time.Time `gorm:"comment:更新时间"`
}

func (BookModel) TableName() string {
	return "books"
}

// CartModel GORM购物车模型
// 每个用户至多一个购物车,UserID唯一索引
type CartModel struct {
	ID        uint            `gorm:"primaryKey"`
	UserID    uint            `gorm:"uniqueIndex;not null;comment:所属用户ID"`
	Items     []CartItemModel `gorm:"foreignKey:CartID"`
	CreatedAt time.Time       `gorm:"comment:创建时间"`
	UpdatedAt time.Time       `gorm:"comment:更新时间"`
}

func (CartModel) TableName() string {
	return "shopping_carts"
}

// CartItemModel GORM购物车条目模型
// (cart_id, book_id)复合唯一索引:同一本书重复加购走数量累加
type CartItemModel struct {
	ID        uint      `gorm:"primaryKey"`
	CartID    uint      `gorm:"uniqueIndex:idx_cart_book;not null;comment:购物车ID"`
	BookID    uint      `gorm:"uniqueIndex:idx_cart_book;not null;comment:图书ID"`
	Quantity  int       `gorm:"not null;comment:数量"`
	CreatedAt time.Time `gorm:"comment:创建时间"`
	UpdatedAt time.Time `gorm:"comment:更新时间"`
}

func (CartItemModel) TableName() string {
	return "cart_items"
}

// OrderModel GORM订单模型
// 教学要点:
// 1. 与OrderItemModel是一对多关系,查询时Preload避免N+1
// 2. Status存储闭集字符串(PENDING/SHIPPED/CANCELLED)
// 3. PaymentID可空,支付处理后回填
type OrderModel struct {
	ID                uint             `gorm:"primaryKey"`
	OrderDate         time.Time        `gorm:"not null;comment:下单时间"`
	Status            string           `gorm:"index;size:20;not null;comment:订单状态"`
	UserID            uint             `gorm:"index;not null;comment:买家用户ID"`
	ShippingAddressID uint             `gorm:"not null;comment:收货地址ID"`
	PaymentID         *uint            `gorm:"index;comment:关联支付ID"`
	Items             []OrderItemModel `gorm:"foreignKey:OrderID"`
	CreatedAt         time.Time        `gorm:"index;comment:创建时间"`
	UpdatedAt         time.Time        `gorm:"comment:更新时间"`
}

func (OrderModel) TableName() string {
	return "orders"
}

// OrderItemModel GORM订单明细模型
// 记录下单时的价格快照(UnitPrice/TotalPrice字段)
type OrderItemModel struct {
	ID         uint  `gorm:"primaryKey"`
	OrderID    uint  `gorm:"index;not null;comment:订单ID"`
	BookID     uint  `gorm:"index;not null;comment:图书ID"`
	Quantity   int   `gorm:"not null;comment:购买数量"`
	UnitPrice  int64 `gorm:"not null;comment:下单时单价(分)"`
	TotalPrice int64 `gorm:"not null;comment:明细总价(分)"`
}

func (OrderItemModel) TableName() string {
	return "order_items"
}

// PaymentModel GORM支付模型
type PaymentModel struct {
	ID          uint      `gorm:"primaryKey"`
	PaymentDate time.Time `gorm:"not null;comment:支付时间"`
	Method      string    `gorm:"size:50;not null;comment:支付方式"`
	Status      string    `gorm:"index;size:20;not null;comment:支付状态"`
	Amount      int64     `gorm:"not null;comment:金额(分)"`
	ReferenceNo string    `gorm:"size:64;comment:支付参考号"`
	CreatedAt   time.Time `gorm:"comment:创建时间"`
	UpdatedAt   time.Time `gorm:"comment:更新时间"`
}

func (PaymentModel) TableName() string {
	return "payments"
}

// InventoryTransactionModel GORM库存流水模型
type InventoryTransactionModel struct {
	ID              uint      `gorm:"primaryKey"`
	BookID          uint      `gorm:"index;not null;comment:图书ID"`
	Type            string    `gorm:"size:20;not null;comment:流水类型(Purchase/Restock)"`
	Quantity        int       `gorm:"not null;comment:数量"`
	TransactionDate time.Time `gorm:"index;not null;comment:流水时间"`
	Notes           string    `gorm:"size:500;comment:备注"`
	CreatedAt       time.Time `gorm:"comment:创建时间"`
	UpdatedAt       time.Time `gorm:"comment:更新时间"`
}

func (InventoryTransactionModel) TableName() string {
	return "inventory_transactions"
}

// ReviewModel GORM评价模型
// (user_id, book_id)复合唯一索引:重复评价走原地更新
type ReviewModel struct {
	ID         uint      `gorm:"primaryKey"`
	BookID     uint      `gorm:"uniqueIndex:idx_user_book;not null;comment:图书ID"`
	UserID     uint      `gorm:"uniqueIndex:idx_user_book;not null;comment:用户ID"`
	Rating     int       `gorm:"not null;comment:评分(1-5)"`
	Comment    string    `gorm:"type:text;comment:评价内容"`
	ReviewDate time.Time `gorm:"not null;comment:评价时间"`
	CreatedAt  time.Time `gorm:"comment:创建时间"`
	UpdatedAt  time.Time `gorm:"comment:更新时间"`
}

func (ReviewModel) TableName() string {
	return "reviews"
}
