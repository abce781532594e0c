package service

import (
	"context"
	"strings"
	"time"

	"shareit/internal/domain"
	"shareit/internal/models"

	"github.com/rs/zerolog"
)

type ItemService struct {
	store  domain.Store
	logger *zerolog.Logger
	now    func() time.Time
}

var _ domain.ItemService = (*ItemService)(nil)

func NewItemService(store domain.Store, logger *zerolog.Logger) *ItemService {
	return &ItemService{store: store, logger: logger, now: time.Now}
}

func (s *ItemService) AddItem(ctx context.Context, ownerID int64, dto models.ItemDto) (models.ItemDto, error) {
	dto.Name = strings.TrimSpace(dto.Name)
	dto.Description = strings.TrimSpace(dto.Description)
	switch {
	case dto.Name == "":
		return models.ItemDto{}, models.Validationf("item name must not be blank")
	case dto.Description == "":
		return models.ItemDto{}, models.Validationf("item description must not be blank")
	case dto.Available == nil:
		return models.ItemDto{}, models.Validationf("item availability is required")
	}

	item := models.ItemFromDto(dto, ownerID)
	item.ID = 0
	err := s.store.InTx(ctx, func(tx domain.Store) error {
		if _, err := tx.GetUser(ctx, ownerID); err != nil {
			return err
		}
		if item.RequestID != nil {
			if _, err := tx.GetRequest(ctx, *item.RequestID); err != nil {
				return err
			}
		}
		return tx.CreateItem(ctx, &item)
	})
	if err != nil {
		return models.ItemDto{}, err
	}

	s.logger.Info().Int64("item_id", item.ID).Int64("owner_id", ownerID).Msg("item created")
	return models.ItemToDto(item), nil
}

// UpdateItem patches an item: blank strings and absent fields keep stored values.
func (s *ItemService) UpdateItem(ctx context.Context, ownerID, itemID int64, dto models.ItemDto) (models.ItemDto, error) {
	var item *models.Item
	err := s.store.InTx(ctx, func(tx domain.Store) error {
		var err error
		item, err = tx.GetItem(ctx, itemID)
		if err != nil {
			return err
		}
		if d := CanModifyItem(*item, ownerID); !d.IsAllowed() {
			return d.Err()
		}

		if name := strings.TrimSpace(dto.Name); name != "" {
			item.Name = name
		}
		if desc := strings.TrimSpace(dto.Description); desc != "" {
			item.Description = desc
		}
		if dto.Available != nil {
			item.Available = *dto.Available
		}
		if dto.RequestID != nil {
			if _, err := tx.GetRequest(ctx, *dto.RequestID); err != nil {
				return err
			}
			item.RequestID = dto.RequestID
		}

		return tx.UpdateItem(ctx, item)
	})
	if err != nil {
		return models.ItemDto{}, err
	}

	return models.ItemToDto(*item), nil
}

// GetItem always attaches comments; the booking window is shown only to the owner.
func (s *ItemService) GetItem(ctx context.Context, callerID, itemID int64) (models.ItemDto, error) {
	item, err := s.store.GetItem(ctx, itemID)
	if err != nil {
		return models.ItemDto{}, err
	}

	if item.OwnerID == callerID {
		return s.enrichForOwner(ctx, *item)
	}

	comments, err := s.store.ListCommentsByItem(ctx, item.ID)
	if err != nil {
		return models.ItemDto{}, err
	}
	return models.ItemToOwnerDto(*item, nil, nil, comments), nil
}

func (s *ItemService) enrichForOwner(ctx context.Context, item models.Item) (models.ItemDto, error) {
	now := s.now()
	last, err := s.store.LastBooking(ctx, item.ID, now)
	if err != nil {
		return models.ItemDto{}, err
	}
	next, err := s.store.NextBooking(ctx, item.ID, now)
	if err != nil {
		return models.ItemDto{}, err
	}
	comments, err := s.store.ListCommentsByItem(ctx, item.ID)
	if err != nil {
		return models.ItemDto{}, err
	}
	return models.ItemToOwnerDto(item, last, next, comments), nil
}

func (s *ItemService) ListOwnerItems(ctx context.Context, ownerID int64, page models.Page) ([]models.ItemDto, error) {
	if err := page.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.store.GetUser(ctx, ownerID); err != nil {
		return nil, err
	}

	items, err := s.store.ListItemsByOwner(ctx, ownerID, page)
	if err != nil {
		return nil, err
	}

	out := make([]models.ItemDto, 0, len(items))
	for _, it := range items {
		dto, err := s.enrichForOwner(ctx, it)
		if err != nil {
			return nil, err
		}
		out = append(out, dto)
	}
	return out, nil
}

// SearchItems returns an empty list for blank text.
func (s *ItemService) SearchItems(ctx context.Context, text string, page models.Page) ([]models.ItemDto, error) {
	if err := page.Validate(); err != nil {
		return nil, err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return []models.ItemDto{}, nil
	}

	items, err := s.store.SearchAvailableItems(ctx, text, page)
	if err != nil {
		return nil, err
	}
	return models.ItemsToDto(items), nil
}

func (s *ItemService) DeleteItem(ctx context.Context, callerID, itemID int64) error {
	err := s.store.InTx(ctx, func(tx domain.Store) error {
		if _, err := tx.GetUser(ctx, callerID); err != nil {
			return err
		}
		item, err := tx.GetItem(ctx, itemID)
		if err != nil {
			return err
		}
		if d := CanModifyItem(*item, callerID); !d.IsAllowed() {
			return d.Err()
		}
		return tx.DeleteItem(ctx, itemID)
	})
	if err != nil {
		return err
	}

	s.logger.Info().Int64("item_id", itemID).Int64("user_id", callerID).Msg("item deleted")
	return nil
}

// AddComment requires the author to have finished a booking of the item.
func (s *ItemService) AddComment(ctx context.Context, authorID, itemID int64, dto models.CommentDto) (models.CommentDto, error) {
	dto.Text = strings.TrimSpace(dto.Text)
	if dto.Text == "" {
		return models.CommentDto{}, models.Validationf("comment text must not be blank")
	}

	var comment models.Comment
	err := s.store.InTx(ctx, func(tx domain.Store) error {
		author, err := tx.GetUser(ctx, authorID)
		if err != nil {
			return err
		}
		item, err := tx.GetItem(ctx, itemID)
		if err != nil {
			return err
		}

		now := s.now()
		finished, err := tx.HasFinishedBooking(ctx, authorID, itemID, now)
		if err != nil {
			return err
		}
		if d := CanComment(authorID, itemID, finished); !d.IsAllowed() {
			return d.Err()
		}

		comment = models.CommentFromDto(dto, *item, *author, now)
		return tx.CreateComment(ctx, &comment)
	})
	if err != nil {
		return models.CommentDto{}, err
	}

	return models.CommentToDto(comment), nil
}
