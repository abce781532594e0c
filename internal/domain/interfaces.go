package domain

import (
	"context"
	"time"

	"shareit/internal/models"
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	UpdateUser(ctx context.Context, user *models.User) error
	GetUser(ctx context.Context, id int64) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	DeleteUser(ctx context.Context, id int64) error
	EmailTaken(ctx context.Context, email string, exceptID int64) (bool, error)
}

type ItemRepository interface {
	CreateItem(ctx context.Context, item *models.Item) error
	UpdateItem(ctx context.Context, item *models.Item) error
	GetItem(ctx context.Context, id int64) (*models.Item, error)
	DeleteItem(ctx context.Context, id int64) error
	ListItemsByOwner(ctx context.Context, ownerID int64, page models.Page) ([]models.Item, error)
	SearchAvailableItems(ctx context.Context, text string, page models.Page) ([]models.Item, error)
	ListItemsByRequests(ctx context.Context, requestIDs []int64) ([]models.Item, error)
}

// BookingFilter selects a page of bookings for one user acting in one role.
type BookingFilter struct {
	UserID int64
	Role   models.BookingRole
	State  models.BookingState
	Now    time.Time
	Page   models.Page
}

type BookingRepository interface {
	CreateBooking(ctx context.Context, booking *models.Booking) error
	UpdateBookingStatus(ctx context.Context, id int64, status models.BookingStatus) error
	GetBooking(ctx context.Context, id int64) (*models.Booking, error)
	GetBookingForOwner(ctx context.Context, id, ownerID int64) (*models.Booking, error)
	ListBookings(ctx context.Context, filter BookingFilter) ([]models.Booking, error)
	LastBooking(ctx context.Context, itemID int64, now time.Time) (*models.Booking, error)
	NextBooking(ctx context.Context, itemID int64, now time.Time) (*models.Booking, error)
	HasFinishedBooking(ctx context.Context, bookerID, itemID int64, now time.Time) (bool, error)
}

type CommentRepository interface {
	CreateComment(ctx context.Context, comment *models.Comment) error
	ListCommentsByItem(ctx context.Context, itemID int64) ([]models.Comment, error)
}

type RequestRepository interface {
	CreateRequest(ctx context.Context, req *models.ItemRequest) error
	GetRequest(ctx context.Context, id int64) (*models.ItemRequest, error)
	ListRequestsByRequestor(ctx context.Context, requestorID int64) ([]models.ItemRequest, error)
	ListRequestsExcept(ctx context.Context, requestorID int64, page models.Page) ([]models.ItemRequest, error)
}

// Store is the whole persistence surface. InTx runs fn against a Store bound
// to a single transaction; fn's error rolls it back.
type Store interface {
	UserRepository
	ItemRepository
	BookingRepository
	CommentRepository
	RequestRepository
	InTx(ctx context.Context, fn func(tx Store) error) error
	Ping(ctx context.Context) error
}

type EventPublisher interface {
	PublishJSON(eventType string, payload interface{}) error
}

// RateLimitStore counts requests per key in fixed windows.
type RateLimitStore interface {
	CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}

type UserService interface {
	CreateUser(ctx context.Context, dto models.UserDto) (models.UserDto, error)
	UpdateUser(ctx context.Context, id int64, dto models.UserDto) (models.UserDto, error)
	GetUser(ctx context.Context, id int64) (models.UserDto, error)
	ListUsers(ctx context.Context) ([]models.UserDto, error)
	DeleteUser(ctx context.Context, id int64) error
}

type ItemService interface {
	AddItem(ctx context.Context, ownerID int64, dto models.ItemDto) (models.ItemDto, error)
	UpdateItem(ctx context.Context, ownerID, itemID int64, dto models.ItemDto) (models.ItemDto, error)
	GetItem(ctx context.Context, callerID, itemID int64) (models.ItemDto, error)
	ListOwnerItems(ctx context.Context, ownerID int64, page models.Page) ([]models.ItemDto, error)
	SearchItems(ctx context.Context, text string, page models.Page) ([]models.ItemDto, error)
	DeleteItem(ctx context.Context, callerID, itemID int64) error
	AddComment(ctx context.Context, authorID, itemID int64, dto models.CommentDto) (models.CommentDto, error)
}

type BookingService interface {
	CreateBooking(ctx context.Context, bookerID int64, dto models.BookingDto) (models.BookingDetailsDto, error)
	DecideBooking(ctx context.Context, ownerID, bookingID int64, approved bool) (models.BookingDetailsDto, error)
	GetBooking(ctx context.Context, callerID, bookingID int64) (models.BookingDetailsDto, error)
	ListBookings(ctx context.Context, userID int64, role models.BookingRole, state models.BookingState, page models.Page) ([]models.BookingDetailsDto, error)
}

type RequestService interface {
	CreateRequest(ctx context.Context, requestorID int64, dto models.ItemRequestDto) (models.ItemRequestDto, error)
	ListOwnRequests(ctx context.Context, requestorID int64) ([]models.ItemRequestDto, error)
	ListOtherRequests(ctx context.Context, requestorID int64, page models.Page) ([]models.ItemRequestDto, error)
	GetRequest(ctx context.Context, callerID, requestID int64) (models.ItemRequestDto, error)
}
