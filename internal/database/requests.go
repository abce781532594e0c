package database

import (
	"context"

	"shareit/internal/models"

	"gorm.io/gorm/clause"
)

func (db *DB) CreateRequest(ctx context.Context, req *models.ItemRequest) error {
	return db.conn(ctx).Omit(clause.Associations).Create(req).Error
}

func (db *DB) GetRequest(ctx context.Context, id int64) (*models.ItemRequest, error) {
	var r models.ItemRequest
	if err := db.conn(ctx).First(&r, id).Error; err != nil {
		return nil, notFound(err, models.RequestNotFound(id))
	}
	reqs := []models.ItemRequest{r}
	if err := db.attachItems(ctx, reqs); err != nil {
		return nil, err
	}
	return &reqs[0], nil
}

func (db *DB) ListRequestsByRequestor(ctx context.Context, requestorID int64) ([]models.ItemRequest, error) {
	var reqs []models.ItemRequest
	err := db.conn(ctx).
		Where("requestor_id = ?", requestorID).
		Order("created DESC").
		Order("id DESC").
		Find(&reqs).Error
	if err != nil {
		return nil, err
	}
	return reqs, db.attachItems(ctx, reqs)
}

// ListRequestsExcept pages through requests made by anyone but requestorID.
func (db *DB) ListRequestsExcept(ctx context.Context, requestorID int64, page models.Page) ([]models.ItemRequest, error) {
	var reqs []models.ItemRequest
	err := db.conn(ctx).
		Where("requestor_id <> ?", requestorID).
		Order("created DESC").
		Order("id DESC").
		Offset(page.Offset()).
		Limit(page.Limit()).
		Find(&reqs).Error
	if err != nil {
		return nil, err
	}
	return reqs, db.attachItems(ctx, reqs)
}

// attachItems fills Items for each request with one lookup on items.request_id.
func (db *DB) attachItems(ctx context.Context, reqs []models.ItemRequest) error {
	if len(reqs) == 0 {
		return nil
	}
	ids := make([]int64, 0, len(reqs))
	for _, r := range reqs {
		ids = append(ids, r.ID)
	}
	items, err := db.ListItemsByRequests(ctx, ids)
	if err != nil {
		return err
	}

	byRequest := make(map[int64][]models.Item, len(reqs))
	for _, it := range items {
		if it.RequestID != nil {
			byRequest[*it.RequestID] = append(byRequest[*it.RequestID], it)
		}
	}
	for i := range reqs {
		reqs[i].Items = byRequest[reqs[i].ID]
	}
	return nil
}
