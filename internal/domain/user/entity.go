package user

import (
	"time"
)

// User 用户实体(聚合根)
// 设计说明:
// 1. 密码只保存bcrypt哈希,明文密码在Service层加密后丢弃
// 2. Email作为业务唯一标识(数据库层保证唯一性)
// 3. Role为简单的角色标记(CUSTOMER/ADMIN),本服务不做鉴权
type User struct {
	ID          uint
	FirstName   string // 名
	LastName    string // 姓
	Email       string // 邮箱(唯一)
	Password    string // 密码哈希(bcrypt)
	DateOfBirth string // 出生日期(YYYY-MM-DD)
	Role        string // 角色标记
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewUser 创建新用户(工厂方法)
// 注意:password参数必须是已加密的哈希值
func NewUser(firstName, lastName, email, hashedPassword, dateOfBirth, role string) *User {
	now := time.Now()
	return &User{
		FirstName:   firstName,
		LastName:    lastName,
		Email:       email,
		Password:    hashedPassword,
		DateOfBirth: dateOfBirth,
		Role:        role,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Address 收货地址实体
// 属于用户聚合:一个用户可以有多个地址
type Address struct {
	ID         uint
	UserID     uint   // 所属用户ID
	Street     string // 街道
	City       string // 城市
	State      string // 省/州
	PostalCode string // 邮政编码
	Country    string // 国家
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
