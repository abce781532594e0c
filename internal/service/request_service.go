package service

import (
	"context"
	"strings"
	"time"

	"shareit/internal/domain"
	"shareit/internal/models"

	"github.com/rs/zerolog"
)

type RequestService struct {
	store  domain.Store
	logger *zerolog.Logger
	now    func() time.Time
}

var _ domain.RequestService = (*RequestService)(nil)

func NewRequestService(store domain.Store, logger *zerolog.Logger) *RequestService {
	return &RequestService{store: store, logger: logger, now: time.Now}
}

func (s *RequestService) CreateRequest(ctx context.Context, requestorID int64, dto models.ItemRequestDto) (models.ItemRequestDto, error) {
	dto.Description = strings.TrimSpace(dto.Description)
	if dto.Description == "" {
		return models.ItemRequestDto{}, models.Validationf("request description must not be blank")
	}

	var req models.ItemRequest
	err := s.store.InTx(ctx, func(tx domain.Store) error {
		requestor, err := tx.GetUser(ctx, requestorID)
		if err != nil {
			return err
		}
		req = models.ItemRequestFromDto(dto, *requestor, s.now())
		return tx.CreateRequest(ctx, &req)
	})
	if err != nil {
		return models.ItemRequestDto{}, err
	}

	s.logger.Info().Int64("request_id", req.ID).Int64("requestor_id", requestorID).Msg("item request created")
	return models.ItemRequestToDto(req), nil
}

func (s *RequestService) ListOwnRequests(ctx context.Context, requestorID int64) ([]models.ItemRequestDto, error) {
	if _, err := s.store.GetUser(ctx, requestorID); err != nil {
		return nil, err
	}
	reqs, err := s.store.ListRequestsByRequestor(ctx, requestorID)
	if err != nil {
		return nil, err
	}
	return models.ItemRequestsToDto(reqs), nil
}

// ListOtherRequests pages through requests made by everyone except requestorID.
func (s *RequestService) ListOtherRequests(ctx context.Context, requestorID int64, page models.Page) ([]models.ItemRequestDto, error) {
	if err := page.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.store.GetUser(ctx, requestorID); err != nil {
		return nil, err
	}
	reqs, err := s.store.ListRequestsExcept(ctx, requestorID, page)
	if err != nil {
		return nil, err
	}
	return models.ItemRequestsToDto(reqs), nil
}

func (s *RequestService) GetRequest(ctx context.Context, callerID, requestID int64) (models.ItemRequestDto, error) {
	if _, err := s.store.GetUser(ctx, callerID); err != nil {
		return models.ItemRequestDto{}, err
	}
	req, err := s.store.GetRequest(ctx, requestID)
	if err != nil {
		return models.ItemRequestDto{}, err
	}
	return models.ItemRequestToDto(*req), nil
}
