package models

import (
	"encoding/json"
	"time"
)

type Booking struct {
	ID       int64         `gorm:"primaryKey;autoIncrement"`
	Start    time.Time     `gorm:"column:start_date;index;not null"`
	End      time.Time     `gorm:"column:end_date;index;not null"`
	ItemID   int64         `gorm:"index;not null"`
	Item     Item          `gorm:"constraint:OnDelete:CASCADE"`
	BookerID int64         `gorm:"index;not null"`
	Booker   User          `gorm:"constraint:OnDelete:CASCADE"`
	Status   BookingStatus `gorm:"size:16;index;not null"`
}

func (Booking) TableName() string { return "bookings" }

// BookingDto is the flat form: the create request body and the
// lastBooking/nextBooking entries of an item.
type BookingDto struct {
	ID       int64         `json:"id"`
	Start    time.Time     `json:"start"`
	End      time.Time     `json:"end"`
	ItemID   int64         `json:"itemId"`
	BookerID int64         `json:"bookerId"`
	Status   BookingStatus `json:"status,omitempty"`
}

// UnmarshalJSON reads start and end through Timestamp.
func (d *BookingDto) UnmarshalJSON(data []byte) error {
	type plain BookingDto
	aux := struct {
		*plain
		Start Timestamp `json:"start"`
		End   Timestamp `json:"end"`
	}{plain: (*plain)(d)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	d.Start = aux.Start.Time()
	d.End = aux.End.Time()
	return nil
}

// BookingDetailsDto is returned by every booking endpoint.
type BookingDetailsDto struct {
	ID     int64         `json:"id"`
	Start  time.Time     `json:"start"`
	End    time.Time     `json:"end"`
	Item   ItemDto       `json:"item"`
	Booker UserDto       `json:"booker"`
	Status BookingStatus `json:"status"`
}

func BookingToDto(b Booking) BookingDto {
	return BookingDto{
		ID:       b.ID,
		Start:    b.Start,
		End:      b.End,
		ItemID:   b.ItemID,
		BookerID: b.BookerID,
		Status:   b.Status,
	}
}

// BookingToDetailsDto expects Item and Booker to be loaded.
func BookingToDetailsDto(b Booking) BookingDetailsDto {
	return BookingDetailsDto{
		ID:     b.ID,
		Start:  b.Start,
		End:    b.End,
		Item:   ItemToDto(b.Item),
		Booker: UserToDto(b.Booker),
		Status: b.Status,
	}
}

// BookingFromDto builds a new WAITING booking; times are normalized to UTC.
func BookingFromDto(d BookingDto, booker User, item Item) Booking {
	return Booking{
		Start:    d.Start.UTC(),
		End:      d.End.UTC(),
		ItemID:   item.ID,
		Item:     item,
		BookerID: booker.ID,
		Booker:   booker,
		Status:   StatusWaiting,
	}
}

func BookingsToDetailsDto(bookings []Booking) []BookingDetailsDto {
	out := make([]BookingDetailsDto, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, BookingToDetailsDto(b))
	}
	return out
}
