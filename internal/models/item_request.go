package models

import "time"

type ItemRequest struct {
	ID          int64     `gorm:"primaryKey;autoIncrement"`
	Description string    `gorm:"size:2048;not null"`
	RequestorID int64     `gorm:"index;not null"`
	Requestor   User      `gorm:"constraint:OnDelete:CASCADE"`
	Created     time.Time `gorm:"index;not null"`

	// Items is filled by a reverse lookup on items.request_id.
	Items []Item `gorm:"-"`
}

func (ItemRequest) TableName() string { return "item_requests" }

type ItemRequestDto struct {
	ID          int64     `json:"id"`
	Description string    `json:"description"`
	Created     time.Time `json:"created"`
	Items       []ItemDto `json:"items"`
}

func ItemRequestToDto(r ItemRequest) ItemRequestDto {
	return ItemRequestDto{
		ID:          r.ID,
		Description: r.Description,
		Created:     r.Created,
		Items:       ItemsToDto(r.Items),
	}
}

func ItemRequestFromDto(d ItemRequestDto, requestor User, created time.Time) ItemRequest {
	return ItemRequest{
		Description: d.Description,
		RequestorID: requestor.ID,
		Requestor:   requestor,
		Created:     created.UTC(),
	}
}

func ItemRequestsToDto(reqs []ItemRequest) []ItemRequestDto {
	out := make([]ItemRequestDto, 0, len(reqs))
	for _, r := range reqs {
		out = append(out, ItemRequestToDto(r))
	}
	return out
}
