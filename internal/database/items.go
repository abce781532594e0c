package database

import (
	"context"
	"strings"

	"shareit/internal/models"

	"gorm.io/gorm/clause"
)

func (db *DB) CreateItem(ctx context.Context, item *models.Item) error {
	return db.conn(ctx).Omit(clause.Associations).Create(item).Error
}

// UpdateItem writes the mutable columns; owner never changes.
func (db *DB) UpdateItem(ctx context.Context, item *models.Item) error {
	res := db.conn(ctx).Model(&models.Item{}).
		Where("id = ?", item.ID).
		Updates(map[string]any{
			"name":        item.Name,
			"description": item.Description,
			"available":   item.Available,
			"request_id":  item.RequestID,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return models.ItemNotFound(item.ID)
	}
	return nil
}

func (db *DB) GetItem(ctx context.Context, id int64) (*models.Item, error) {
	var it models.Item
	if err := db.conn(ctx).First(&it, id).Error; err != nil {
		return nil, notFound(err, models.ItemNotFound(id))
	}
	return &it, nil
}

func (db *DB) DeleteItem(ctx context.Context, id int64) error {
	res := db.conn(ctx).Delete(&models.Item{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return models.ItemNotFound(id)
	}
	return nil
}

func (db *DB) ListItemsByOwner(ctx context.Context, ownerID int64, page models.Page) ([]models.Item, error) {
	var items []models.Item
	err := db.conn(ctx).
		Where("owner_id = ?", ownerID).
		Order("id").
		Offset(page.Offset()).
		Limit(page.Limit()).
		Find(&items).Error
	return items, err
}

// SearchAvailableItems matches text case-insensitively against name or description.
func (db *DB) SearchAvailableItems(ctx context.Context, text string, page models.Page) ([]models.Item, error) {
	like := "%" + strings.ToLower(text) + "%"
	var items []models.Item
	err := db.conn(ctx).
		Where("available = ?", true).
		Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like).
		Order("id").
		Offset(page.Offset()).
		Limit(page.Limit()).
		Find(&items).Error
	return items, err
}

func (db *DB) ListItemsByRequests(ctx context.Context, requestIDs []int64) ([]models.Item, error) {
	if len(requestIDs) == 0 {
		return nil, nil
	}
	var items []models.Item
	err := db.conn(ctx).
		Where("request_id IN ?", requestIDs).
		Order("id").
		Find(&items).Error
	return items, err
}
