package seed

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Skotchmaster/cart_api/internal/logging"
	"github.com/Skotchmaster/cart_api/internal/models"
)

type demoItem struct {
	ProductID int64
	Quantity  int64
}

type demoUser struct {
	Name  string
	Email string
	// Items is nil for users who get no cart.
	Items []demoItem
}

var Users = []demoUser{
	{Name: "Alex Buyer", Email: "alex@example.com", Items: []demoItem{{ProductID: 101, Quantity: 2}, {ProductID: 102, Quantity: 1}}},
	{Name: "Jane Smith", Email: "jane@example.com", Items: []demoItem{{ProductID: 103, Quantity: 3}}},
	{Name: "Bob Johnson", Email: "bob@example.com"},
}

// Run keeps existing users and replaces all cart data with the demo set.
// Ids come from the store's own sequences.
func Run(ctx context.Context, db *gorm.DB) error {
	l := logging.FromContext(ctx)

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.CartItem{}).Error; err != nil {
			return fmt.Errorf("clear cart items: %w", err)
		}
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Cart{}).Error; err != nil {
			return fmt.Errorf("clear carts: %w", err)
		}
		l.Info("cleared existing cart data")

		var carts, items int
		for _, du := range Users {
			user := models.User{Name: du.Name, Email: du.Email}
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "email"}},
				DoNothing: true,
			}).Create(&user).Error; err != nil {
				return fmt.Errorf("seed user %s: %w", du.Email, err)
			}
			if err := tx.Where("email = ?", du.Email).First(&user).Error; err != nil {
				return fmt.Errorf("load user %s: %w", du.Email, err)
			}

			if du.Items == nil {
				continue
			}

			cart := models.Cart{UserID: user.ID}
			if err := tx.Create(&cart).Error; err != nil {
				return fmt.Errorf("seed cart for user %d: %w", user.ID, err)
			}
			carts++

			for _, di := range du.Items {
				item := models.CartItem{CartID: cart.ID, ProductID: di.ProductID, Quantity: di.Quantity}
				if err := tx.Create(&item).Error; err != nil {
					return fmt.Errorf("seed cart item %d: %w", di.ProductID, err)
				}
				items++
			}
		}
		l.Info("demo data seeded", "users", len(Users), "carts", carts, "items", items)

		return nil
	})
}
