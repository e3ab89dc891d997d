// Package repository persists domain records through GORM.
//
// Every entity gets the same List/Create/GetByID/Update/Delete surface.
// Store errors are translated into apperror kinds: a missing row becomes
// NotFound, a unique index violation Conflict, a foreign key violation
// BadRequest, and anything else Internal.
package repository

import (
	"context"
	"errors"
	"strings"

	"flight_favorites/internal/apperror"

	"gorm.io/gorm"
)

// Repository is the CRUD contract shared by all entities.
type Repository[T any] interface {
	List(ctx context.Context) ([]T, error)
	Create(ctx context.Context, entity *T) error
	GetByID(ctx context.Context, id uint) (*T, error)
	Update(ctx context.Context, id uint, apply func(*T)) (*T, error)
	Delete(ctx context.Context, id uint) error
}

type validator interface {
	Validate() error
}

// checkFunc runs inside the write transaction before an insert or save.
type checkFunc[T any] func(tx *gorm.DB, entity *T) error

type gormRepository[T any] struct {
	db       *gorm.DB     // Database handle
	name     string       // Human readable entity name used in messages
	conflict string       // Message for unique violations
	check    checkFunc[T] // Reference checks, may be nil
}

func newGormRepository[T any](db *gorm.DB, name, conflict string, check checkFunc[T]) *gormRepository[T] {
	return &gormRepository[T]{db: db, name: name, conflict: conflict, check: check}
}

func (r *gormRepository[T]) List(ctx context.Context) ([]T, error) {
	var out []T
	if err := r.db.WithContext(ctx).Order("id").Find(&out).Error; err != nil {
		return nil, r.classify(err, "list")
	}
	return out, nil
}

func (r *gormRepository[T]) Create(ctx context.Context, entity *T) error {
	if err := validate(entity); err != nil {
		return err
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if r.check != nil {
			if err := r.check(tx, entity); err != nil {
				return err
			}
		}
		return tx.Create(entity).Error
	})
	if err != nil {
		return r.classify(err, "create")
	}
	return nil
}

func (r *gormRepository[T]) GetByID(ctx context.Context, id uint) (*T, error) {
	var entity T
	if err := r.db.WithContext(ctx).First(&entity, id).Error; err != nil {
		return nil, r.classify(err, "get")
	}
	return &entity, nil
}

// Update loads the row, lets apply mutate it, validates and saves it in one transaction.
func (r *gormRepository[T]) Update(ctx context.Context, id uint, apply func(*T)) (*T, error) {
	var entity T
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&entity, id).Error; err != nil { // Load the current row
			return err
		}
		apply(&entity) // Apply the supplied fields
		if err := validate(&entity); err != nil {
			return err
		}
		if r.check != nil {
			if err := r.check(tx, &entity); err != nil {
				return err
			}
		}
		return tx.Save(&entity).Error
	})
	if err != nil {
		return nil, r.classify(err, "update")
	}
	return &entity, nil
}

func (r *gormRepository[T]) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(new(T), id)
	if res.Error != nil {
		return r.classify(res.Error, "delete")
	}
	if res.RowsAffected == 0 { // Nothing to delete
		return apperror.New(apperror.NotFound, r.name+" not found")
	}
	return nil
}

func validate(entity any) error {
	if v, ok := entity.(validator); ok {
		return v.Validate()
	}
	return nil
}

// classify maps a store error onto an apperror kind.
func (r *gormRepository[T]) classify(err error, op string) error {
	var appErr *apperror.Error
	switch {
	case errors.As(err, &appErr):
		return err
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperror.New(apperror.NotFound, r.name+" not found")
	case isDuplicate(err):
		return apperror.Wrap(err, apperror.Conflict, r.conflict)
	case isForeignKey(err):
		return apperror.Wrap(err, apperror.BadRequest, "referenced record does not exist")
	default:
		return apperror.Internalf(err, "%s %s", op, strings.ToLower(r.name))
	}
}

// isDuplicate also matches raw driver messages for dialects without error translation.
func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "Duplicate entry") ||
		strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "23505")
}

func isForeignKey(err error) bool {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "FOREIGN KEY constraint failed") ||
		strings.Contains(msg, "foreign key constraint") ||
		strings.Contains(msg, "23503")
}

// exists fails with BadRequest when no row of model has the given id.
func exists(tx *gorm.DB, model any, id uint, message string) error {
	var count int64
	if err := tx.Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return apperror.New(apperror.BadRequest, message)
	}
	return nil
}
