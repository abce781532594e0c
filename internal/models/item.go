package models

type Item struct {
	ID          int64        `gorm:"primaryKey;autoIncrement"`
	Name        string       `gorm:"size:255;not null"`
	Description string       `gorm:"size:1024;not null"`
	Available   bool         `gorm:"not null;default:false"`
	OwnerID     int64        `gorm:"index;not null"`
	Owner       User         `gorm:"constraint:OnDelete:CASCADE"`
	RequestID   *int64       `gorm:"index"`
	Request     *ItemRequest `gorm:"constraint:OnDelete:SET NULL"`
}

func (Item) TableName() string { return "items" }

// ItemDto is both the request body for add/update and the response shape.
// Available and RequestID are pointers so that a partial update can tell
// "absent" from "false"/"none".
type ItemDto struct {
	ID          int64        `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Available   *bool        `json:"available"`
	RequestID   *int64       `json:"requestId"`
	LastBooking *BookingDto  `json:"lastBooking,omitempty"`
	NextBooking *BookingDto  `json:"nextBooking,omitempty"`
	Comments    []CommentDto `json:"comments"`
}

func ItemToDto(it Item) ItemDto {
	available := it.Available
	return ItemDto{
		ID:          it.ID,
		Name:        it.Name,
		Description: it.Description,
		Available:   &available,
		RequestID:   copyID(it.RequestID),
	}
}

// ItemToOwnerDto adds the booking window and comments. last and next may be nil.
func ItemToOwnerDto(it Item, last, next *Booking, comments []Comment) ItemDto {
	dto := ItemToDto(it)
	if last != nil {
		b := BookingToDto(*last)
		dto.LastBooking = &b
	}
	if next != nil {
		b := BookingToDto(*next)
		dto.NextBooking = &b
	}
	dto.Comments = CommentsToDto(comments)
	return dto
}

func ItemFromDto(d ItemDto, ownerID int64) Item {
	return Item{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		Available:   d.Available != nil && *d.Available,
		OwnerID:     ownerID,
		RequestID:   copyID(d.RequestID),
	}
}

func ItemsToDto(items []Item) []ItemDto {
	out := make([]ItemDto, 0, len(items))
	for _, it := range items {
		out = append(out, ItemToDto(it))
	}
	return out
}

func copyID(id *int64) *int64 {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}
