package repo

import (
	"context"
	"errors"
	"math"
	"time"

	"gorm.io/gorm"

	"github.com/Skotchmaster/cart_api/internal/models"
)

// ErrQuantityOverflow reports that merging would push a line past math.MaxInt64.
var ErrQuantityOverflow = errors.New("cart item quantity overflow")

func (r *GormRepo) GetOrCreateCart(ctx context.Context, userID int64) (*models.Cart, error) {
	var cart models.Cart
	err := r.DB.WithContext(ctx).Where("user_id = ?", userID).First(&cart).Error
	if err == nil {
		return &cart, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	cart = models.Cart{UserID: userID}
	if err := r.DB.WithContext(ctx).Create(&cart).Error; err != nil {
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, err
		}
		// lost the race against a concurrent create for the same user,
		// unless the conflict was on something other than user_id
		var existing models.Cart
		if retryErr := r.DB.WithContext(ctx).Where("user_id = ?", userID).First(&existing).Error; retryErr != nil {
			if errors.Is(retryErr, gorm.ErrRecordNotFound) {
				return nil, err
			}
			return nil, retryErr
		}
		return &existing, nil
	}

	return &cart, nil
}

type cartRow struct {
	CartID    int64
	UserID    int64
	ItemID    *int64
	ProductID *int64
	Quantity  *int64
	CreatedAt *time.Time
	UpdatedAt *time.Time
}

func (r *GormRepo) GetCartWithItems(ctx context.Context, cartID int64) (*models.CartSnapshot, error) {
	var rows []cartRow
	if err := r.DB.WithContext(ctx).
		Table("carts AS c").
		Select("c.id AS cart_id, c.user_id, ci.id AS item_id, ci.product_id, ci.quantity, ci.created_at, ci.updated_at").
		Joins("LEFT JOIN cart_items ci ON ci.cart_id = c.id").
		Where("c.id = ?", cartID).
		Order("ci.id ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	snapshot := &models.CartSnapshot{
		CartID: cartID,
		Items:  make([]models.CartItemView, 0, len(rows)),
	}
	if len(rows) > 0 {
		snapshot.UserID = rows[0].UserID
	}

	for _, row := range rows {
		if row.ItemID == nil {
			continue
		}
		item := models.CartItemView{ID: *row.ItemID}
		if row.ProductID != nil {
			item.ProductID = *row.ProductID
		}
		if row.Quantity != nil {
			item.Quantity = *row.Quantity
		}
		if row.CreatedAt != nil {
			item.CreatedAt = *row.CreatedAt
		}
		if row.UpdatedAt != nil {
			item.UpdatedAt = *row.UpdatedAt
		}
		snapshot.Items = append(snapshot.Items, item)
	}
	snapshot.ItemCount = len(snapshot.Items)

	return snapshot, nil
}

// AddItem merges quantity into the existing (cart, product) row or inserts a new one.
func (r *GormRepo) AddItem(ctx context.Context, cartID, productID, quantity int64) (*models.AddItemResult, error) {
	res, err := r.upsertItem(ctx, cartID, productID, quantity)
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// a concurrent add inserted the row after our increment missed it
		return r.upsertItem(ctx, cartID, productID, quantity)
	}
	return res, err
}

func (r *GormRepo) upsertItem(ctx context.Context, cartID, productID, quantity int64) (*models.AddItemResult, error) {
	var result models.AddItemResult

	ceiling := int64(math.MaxInt64)
	if quantity > 0 {
		ceiling -= quantity
	}

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.CartItem{}).
			Where("cart_id = ? AND product_id = ? AND quantity <= ?", cartID, productID, ceiling).
			Updates(map[string]any{
				"quantity":   gorm.Expr("quantity + ?", quantity),
				"updated_at": tx.NowFunc(),
			})
		if res.Error != nil {
			return res.Error
		}

		if res.RowsAffected > 0 {
			var item models.CartItem
			if err := tx.Select("id").Where("cart_id = ? AND product_id = ?", cartID, productID).First(&item).Error; err != nil {
				return err
			}
			result = models.AddItemResult{ID: item.ID, Updated: true}
			return nil
		}

		var existing int64
		if err := tx.Model(&models.CartItem{}).Where("cart_id = ? AND product_id = ?", cartID, productID).Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return ErrQuantityOverflow
		}

		item := models.CartItem{
			CartID:    cartID,
			ProductID: productID,
			Quantity:  quantity,
		}
		if err := tx.Create(&item).Error; err != nil {
			return err
		}
		result = models.AddItemResult{ID: item.ID, Updated: false}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &result, nil
}

// UpdateItemQuantity sets the quantity exactly and reports the rows affected.
func (r *GormRepo) UpdateItemQuantity(ctx context.Context, cartID, productID, quantity int64) (int64, error) {
	res := r.DB.WithContext(ctx).
		Model(&models.CartItem{}).
		Where("cart_id = ? AND product_id = ?", cartID, productID).
		Updates(map[string]any{
			"quantity":   quantity,
			"updated_at": r.DB.NowFunc(),
		})
	return res.RowsAffected, res.Error
}

func (r *GormRepo) RemoveItem(ctx context.Context, cartID, productID int64) (int64, error) {
	res := r.DB.WithContext(ctx).
		Where("cart_id = ? AND product_id = ?", cartID, productID).
		Delete(&models.CartItem{})
	return res.RowsAffected, res.Error
}

func (r *GormRepo) ClearCart(ctx context.Context, cartID int64) (int64, error) {
	res := r.DB.WithContext(ctx).
		Where("cart_id = ?", cartID).
		Delete(&models.CartItem{})
	return res.RowsAffected, res.Error
}
