package repo

import (
	"context"

	"github.com/Skotchmaster/cart_api/internal/models"
)

// ListUsers returns users ordered by id; limit <= 0 returns every row.
func (r *GormRepo) ListUsers(ctx context.Context, offset, limit int) ([]models.User, error) {
	users := make([]models.User, 0)
	q := r.DB.WithContext(ctx).Order("id ASC")
	if limit > 0 {
		q = q.Offset(offset).Limit(limit)
	}
	if err := q.Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// FindUserByID returns gorm.ErrRecordNotFound when the user does not exist.
func (r *GormRepo) FindUserByID(ctx context.Context, id int64) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *GormRepo) CreateUser(ctx context.Context, user *models.User) error {
	return r.DB.WithContext(ctx).Create(user).Error
}

// UpdateUser applies the non-nil fields, leaving the others unchanged.
func (r *GormRepo) UpdateUser(ctx context.Context, id int64, name, email *string) (int64, error) {
	fields := map[string]any{}
	if name != nil {
		fields["name"] = *name
	}
	if email != nil {
		fields["email"] = *email
	}
	if len(fields) == 0 {
		return 0, nil
	}

	res := r.DB.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Updates(fields)
	return res.RowsAffected, res.Error
}

func (r *GormRepo) DeleteUser(ctx context.Context, id int64) (int64, error) {
	res := r.DB.WithContext(ctx).Where("id = ?", id).Delete(&models.User{})
	return res.RowsAffected, res.Error
}
