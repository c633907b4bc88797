package repo

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Skotchmaster/cart_api/internal/db"
	"github.com/Skotchmaster/cart_api/internal/models"
)

func newTestRepo(t *testing.T) *GormRepo {
	t.Helper()

	gdb, err := db.Open(context.Background(), "sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close(gdb) })

	return New(gdb)
}

func TestGetOrCreateCart_CreatesOnceAndReuses(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	first, err := r.GetOrCreateCart(ctx, 42)
	require.NoError(t, err)
	require.NotZero(t, first.ID)
	assert.Equal(t, int64(42), first.UserID)

	second, err := r.GetOrCreateCart(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	var count int64
	require.NoError(t, r.DB.Model(&models.Cart{}).Where("user_id = ?", 42).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestGetCartWithItems_EmptyCart(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	cart, err := r.GetOrCreateCart(ctx, 3)
	require.NoError(t, err)

	snap, err := r.GetCartWithItems(ctx, cart.ID)
	require.NoError(t, err)
	assert.Equal(t, cart.ID, snap.CartID)
	assert.Equal(t, int64(3), snap.UserID)
	assert.NotNil(t, snap.Items)
	assert.Empty(t, snap.Items)
	assert.Equal(t, 0, snap.ItemCount)
}

func TestAddItem_MergesQuantity(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	cart, err := r.GetOrCreateCart(ctx, 1)
	require.NoError(t, err)

	created, err := r.AddItem(ctx, cart.ID, 55, 2)
	require.NoError(t, err)
	assert.False(t, created.Updated)
	require.NotZero(t, created.ID)

	merged, err := r.AddItem(ctx, cart.ID, 55, 3)
	require.NoError(t, err)
	assert.True(t, merged.Updated)
	assert.Equal(t, created.ID, merged.ID)

	snap, err := r.GetCartWithItems(ctx, cart.ID)
	require.NoError(t, err)
	require.Len(t, snap.Items, 1)
	assert.Equal(t, int64(55), snap.Items[0].ProductID)
	assert.Equal(t, int64(5), snap.Items[0].Quantity)
	assert.False(t, snap.Items[0].UpdatedAt.Before(snap.Items[0].CreatedAt))
}

func TestAddItem_ConcurrentAddsAccumulate(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	cart, err := r.GetOrCreateCart(ctx, 9)
	require.NoError(t, err)

	const workers = 10
	var g errgroup.Group
	for i := 0; i < workers; i++ {
		g.Go(func() error {
			_, err := r.AddItem(ctx, cart.ID, 77, 1)
			return err
		})
	}
	require.NoError(t, g.Wait())

	var items []models.CartItem
	require.NoError(t, r.DB.Where("cart_id = ? AND product_id = ?", cart.ID, 77).Find(&items).Error)
	require.Len(t, items, 1)
	assert.Equal(t, int64(workers), items[0].Quantity)
}

func TestUpdateRemoveClear_RowsAffected(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	cart, err := r.GetOrCreateCart(ctx, 5)
	require.NoError(t, err)

	n, err := r.UpdateItemQuantity(ctx, cart.ID, 1, 4)
	require.NoError(t, err)
	assert.Zero(t, n)

	_, err = r.AddItem(ctx, cart.ID, 1, 2)
	require.NoError(t, err)
	_, err = r.AddItem(ctx, cart.ID, 2, 1)
	require.NoError(t, err)

	n, err = r.UpdateItemQuantity(ctx, cart.ID, 1, 4)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	snap, err := r.GetCartWithItems(ctx, cart.ID)
	require.NoError(t, err)
	require.Len(t, snap.Items, 2)
	assert.Equal(t, int64(4), snap.Items[0].Quantity)

	n, err = r.RemoveItem(ctx, cart.ID, 3)
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = r.RemoveItem(ctx, cart.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = r.ClearCart(ctx, cart.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = r.ClearCart(ctx, cart.ID)
	require.NoError(t, err)
	assert.Zero(t, n)

	again, err := r.GetOrCreateCart(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, cart.ID, again.ID)
}

func TestItemsAreScopedToCart(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	a, err := r.GetOrCreateCart(ctx, 1)
	require.NoError(t, err)
	b, err := r.GetOrCreateCart(ctx, 2)
	require.NoError(t, err)

	_, err = r.AddItem(ctx, a.ID, 10, 1)
	require.NoError(t, err)
	_, err = r.AddItem(ctx, b.ID, 10, 7)
	require.NoError(t, err)

	n, err := r.ClearCart(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	snap, err := r.GetCartWithItems(ctx, b.ID)
	require.NoError(t, err)
	require.Len(t, snap.Items, 1)
	assert.Equal(t, int64(7), snap.Items[0].Quantity)
}

func TestGetOrCreateCart_StoreFailurePropagates(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	require.NoError(t, err)

	boom := errors.New("disk I/O error")
	mock.ExpectQuery(`SELECT \* FROM "carts"`).WillReturnError(boom)

	_, err = New(gdb).GetOrCreateCart(context.Background(), 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddItem_RejectsQuantityOverflow(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	cart, err := r.GetOrCreateCart(ctx, 1)
	require.NoError(t, err)

	_, err = r.AddItem(ctx, cart.ID, 55, math.MaxInt64)
	require.NoError(t, err)

	_, err = r.AddItem(ctx, cart.ID, 55, 1)
	require.ErrorIs(t, err, ErrQuantityOverflow)

	snap, err := r.GetCartWithItems(ctx, cart.ID)
	require.NoError(t, err)
	require.Len(t, snap.Items, 1)
	assert.Equal(t, int64(math.MaxInt64), snap.Items[0].Quantity)
}

func TestGetOrCreateCart_DuplicateWithoutWinner(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	require.NoError(t, err)

	cols := []string{"id", "user_id", "created_at"}
	mock.ExpectQuery(`SELECT \* FROM "carts"`).WillReturnRows(sqlmock.NewRows(cols))
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "carts"`).WillReturnError(gorm.ErrDuplicatedKey)
	mock.ExpectRollback()
	mock.ExpectQuery(`SELECT \* FROM "carts"`).WillReturnRows(sqlmock.NewRows(cols))

	_, err = New(gdb).GetOrCreateCart(context.Background(), 3)
	require.ErrorIs(t, err, gorm.ErrDuplicatedKey)
	assert.NotErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
