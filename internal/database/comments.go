package database

import (
	"context"

	"shareit/internal/models"

	"gorm.io/gorm/clause"
)

func (db *DB) CreateComment(ctx context.Context, comment *models.Comment) error {
	return db.conn(ctx).Omit(clause.Associations).Create(comment).Error
}

// ListCommentsByItem returns the item's comments newest first, authors loaded.
func (db *DB) ListCommentsByItem(ctx context.Context, itemID int64) ([]models.Comment, error) {
	var comments []models.Comment
	err := db.conn(ctx).
		Preload("Author").
		Where("item_id = ?", itemID).
		Order("created DESC").
		Order("id DESC").
		Find(&comments).Error
	return comments, err
}
