package database

import (
	"context"
	"errors"

	"shareit/internal/models"

	"gorm.io/gorm"
)

func (db *DB) CreateUser(ctx context.Context, user *models.User) error {
	if err := db.conn(ctx).Create(user).Error; err != nil {
		return duplicateEmail(err, user.Email)
	}
	return nil
}

func (db *DB) UpdateUser(ctx context.Context, user *models.User) error {
	res := db.conn(ctx).Model(&models.User{}).
		Where("id = ?", user.ID).
		Updates(map[string]any{"name": user.Name, "email": user.Email})
	if res.Error != nil {
		return duplicateEmail(res.Error, user.Email)
	}
	if res.RowsAffected == 0 {
		return models.UserNotFound(user.ID)
	}
	return nil
}

func (db *DB) GetUser(ctx context.Context, id int64) (*models.User, error) {
	var u models.User
	if err := db.conn(ctx).First(&u, id).Error; err != nil {
		return nil, notFound(err, models.UserNotFound(id))
	}
	return &u, nil
}

func (db *DB) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := db.conn(ctx).Order("id").Find(&users).Error
	return users, err
}

// DeleteUser relies on ON DELETE CASCADE for items, bookings, comments and requests.
func (db *DB) DeleteUser(ctx context.Context, id int64) error {
	res := db.conn(ctx).Delete(&models.User{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return models.UserNotFound(id)
	}
	return nil
}

// EmailTaken reports whether another user already owns email.
func (db *DB) EmailTaken(ctx context.Context, email string, exceptID int64) (bool, error) {
	var n int64
	err := db.conn(ctx).Model(&models.User{}).
		Where("email = ? AND id <> ?", email, exceptID).
		Count(&n).Error
	return n > 0, err
}

func duplicateEmail(err error, email string) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return models.AlreadyExistsf("user with email %s already exists", email)
	}
	return err
}
