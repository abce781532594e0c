package models

import "strings"

// UserIDHeader carries the caller identity between client, gateway and server.
const UserIDHeader = "X-Sharer-User-Id"

const (
	// DefaultPageSize размер страницы по умолчанию для списков
	DefaultPageSize = 10

	// DefaultStateToken фильтр бронирований, если state не передан
	DefaultStateToken = "ALL"
)

type BookingStatus string

const (
	StatusWaiting  BookingStatus = "WAITING"
	StatusApproved BookingStatus = "APPROVED"
	StatusRejected BookingStatus = "REJECTED"
	StatusCanceled BookingStatus = "CANCELED"
)

// BookingState is the client-supplied filter for booking lists.
type BookingState string

const (
	StateAll      BookingState = "ALL"
	StateCurrent  BookingState = "CURRENT"
	StatePast     BookingState = "PAST"
	StateFuture   BookingState = "FUTURE"
	StateWaiting  BookingState = "WAITING"
	StateRejected BookingState = "REJECTED"
)

var bookingStates = map[string]BookingState{
	string(StateAll):      StateAll,
	string(StateCurrent):  StateCurrent,
	string(StatePast):     StatePast,
	string(StateFuture):   StateFuture,
	string(StateWaiting):  StateWaiting,
	string(StateRejected): StateRejected,
}

// ParseBookingState accepts exactly the six known tokens. An empty token means ALL.
func ParseBookingState(token string) (BookingState, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return StateAll, nil
	}
	state, ok := bookingStates[token]
	if !ok {
		return "", Validationf("Unknown state: %s", token)
	}
	return state, nil
}

// BookingRole selects whose bookings a list query returns.
type BookingRole int

const (
	RoleBooker BookingRole = iota
	RoleOwner
)

func (r BookingRole) String() string {
	if r == RoleOwner {
		return "owner"
	}
	return "booker"
}
