package models

import (
	"time"
)

type User struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"not null"                 json:"name"`
	Email     string    `gorm:"uniqueIndex;not null"     json:"email"`
	CreatedAt time.Time `gorm:"autoCreateTime"           json:"created_at"`
}

// Cart is created lazily, one per user.
type Cart struct {
	ID        int64      `gorm:"primaryKey;autoIncrement"                   json:"id"`
	UserID    int64      `gorm:"uniqueIndex;not null"                       json:"user_id"`
	CreatedAt time.Time  `gorm:"autoCreateTime"                             json:"created_at"`
	Items     []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"-"`
}

type CartItem struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"             json:"id"`
	CartID    int64     `gorm:"uniqueIndex:idx_cart_product;not null" json:"cart_id"`
	ProductID int64     `gorm:"uniqueIndex:idx_cart_product;not null" json:"product_id"`
	Quantity  int64     `gorm:"not null;default:1"                   json:"quantity"`
	CreatedAt time.Time `gorm:"autoCreateTime"                       json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"                       json:"updated_at"`
}

func (CartItem) TableName() string {
	return "cart_items"
}

// AddItemResult reports whether AddItem merged into an existing row.
type AddItemResult struct {
	ID      int64 `json:"id"`
	Updated bool  `json:"updated"`
}

type CartItemView struct {
	ID        int64     `json:"id"`
	ProductID int64     `json:"product_id"`
	Quantity  int64     `json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CartSnapshot is the full state of a cart returned by read operations.
type CartSnapshot struct {
	CartID    int64          `json:"cart_id"`
	UserID    int64          `json:"user_id"`
	Items     []CartItemView `json:"items"`
	ItemCount int            `json:"item_count"`
}

func All() []any {
	return []any{&User{}, &Cart{}, &CartItem{}}
}
