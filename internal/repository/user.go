package repository

import (
	"context"

	"flight_favorites/internal/domain"

	"gorm.io/gorm"
)

// UserRepository is the credential store. Email uniqueness is enforced by a unique index.
type UserRepository struct {
	*gormRepository[domain.User]
}

// NewUserRepository returns the credential store over db
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{newGormRepository[domain.User](db, "User", "user with this email already exists", nil)}
}

// FindByEmail returns the user with the given email or a NotFound error.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, r.classify(err, "find")
	}
	return &user, nil
}

// Page returns one page of users ordered by id, plus the total count.
// Pages past the end are empty.
func (r *UserRepository) Page(ctx context.Context, page, size int) ([]domain.User, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&domain.User{}).Count(&total).Error; err != nil { // Total number of users
		return nil, 0, r.classify(err, "count")
	}
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = 1
	}
	if int64(page-1) >= (total+int64(size)-1)/int64(size) && page > 1 {
		return []domain.User{}, total, nil // Past the last page
	}
	var users []domain.User
	offset := (page - 1) * size // Bounded by total, cannot overflow
	if err := r.db.WithContext(ctx).Order("id").Offset(offset).Limit(size).Find(&users).Error; err != nil {
		return nil, 0, r.classify(err, "page")
	}
	return users, total, nil
}
