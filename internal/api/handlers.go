package api

import (
	"net/http"

	"shareit/internal/domain"
	"shareit/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Handlers binds HTTP requests to the domain services.
type Handlers struct {
	users    domain.UserService
	items    domain.ItemService
	bookings domain.BookingService
	requests domain.RequestService
	logger   *zerolog.Logger
}

func NewHandlers(
	users domain.UserService,
	items domain.ItemService,
	bookings domain.BookingService,
	requests domain.RequestService,
	logger *zerolog.Logger,
) *Handlers {
	return &Handlers{
		users:    users,
		items:    items,
		bookings: bookings,
		requests: requests,
		logger:   logger,
	}
}

func (h *Handlers) register(r gin.IRouter) {
	users := r.Group("/users")
	users.GET("", h.listUsers)
	users.GET("/:id", h.getUser)
	users.POST("", h.createUser)
	users.PATCH("/:id", h.updateUser)
	users.DELETE("/:id", h.deleteUser)

	items := r.Group("/items")
	items.GET("", h.listOwnerItems)
	items.GET("/search", h.searchItems)
	items.GET("/:id", h.getItem)
	items.POST("", h.addItem)
	items.PATCH("/:id", h.updateItem)
	items.DELETE("/:id", h.deleteItem)
	items.POST("/:id/comment", h.addComment)

	bookings := r.Group("/bookings")
	bookings.POST("", h.createBooking)
	bookings.PATCH("/:id", h.decideBooking)
	bookings.GET("/:id", h.getBooking)
	bookings.GET("", h.listBookerBookings)
	bookings.GET("/owner", h.listOwnerBookings)

	requests := r.Group("/requests")
	requests.POST("", h.createRequest)
	requests.GET("", h.listOwnRequests)
	requests.GET("/all", h.listOtherRequests)
	requests.GET("/:id", h.getRequest)
}

func (h *Handlers) fail(c *gin.Context, err error) {
	respondError(c, h.logger, err)
}

// Users

func (h *Handlers) listUsers(c *gin.Context) {
	users, err := h.users.ListUsers(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *Handlers) getUser(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.fail(c, err)
		return
	}
	user, err := h.users.GetUser(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *Handlers) createUser(c *gin.Context) {
	var in models.UserDto
	if err := bindJSON(c, &in); err != nil {
		h.fail(c, err)
		return
	}
	user, err := h.users.CreateUser(c.Request.Context(), in)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

func (h *Handlers) updateUser(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.fail(c, err)
		return
	}
	var in models.UserDto
	if err := bindJSON(c, &in); err != nil {
		h.fail(c, err)
		return
	}
	user, err := h.users.UpdateUser(c.Request.Context(), id, in)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *Handlers) deleteUser(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.fail(c, err)
		return
	}
	if err := h.users.DeleteUser(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusOK)
}

// Items

func (h *Handlers) listOwnerItems(c *gin.Context) {
	owner, err := callerID(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	page, err := pageParams(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	items, err := h.items.ListOwnerItems(c.Request.Context(), owner, page)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handlers) searchItems(c *gin.Context) {
	page, err := pageParams(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	items, err := h.items.SearchItems(c.Request.Context(), c.Query("text"), page)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handlers) getItem(c *gin.Context) {
	caller, err := callerID(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	id, err := pathID(c, "id")
	if err != nil {
		h.fail(c, err)
		return
	}
	item, err := h.items.GetItem(c.Request.Context(), caller, id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *Handlers) addItem(c *gin.Context) {
	owner, err := callerID(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	var in models.ItemDto
	if err := bindJSON(c, &in); err != nil {
		h.fail(c, err)
		return
	}
	item, err := h.items.AddItem(c.Request.Context(), owner, in)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *Handlers) updateItem(c *gin.Context) {
	owner, err := callerID(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	id, err := pathID(c, "id")
	if err != nil {
		h.fail(c, err)
		return
	}
	var in models.ItemDto
	if err := bindJSON(c, &in); err != nil {
		h.fail(c, err)
		return
	}
	item, err := h.items.UpdateItem(c.Request.Context(), owner, id, in)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *Handlers) deleteItem(c *gin.Context) {
	caller, err := callerID(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	id, err := pathID(c, "id")
	if err != nil {
		h.fail(c, err)
		return
	}
	if err := h.items.DeleteItem(c.Request.Context(), caller, id); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusOK)
}

func (h *Handlers) addComment(c *gin.Context) {
	author, err := callerID(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	id, err := pathID(c, "id")
	if err != nil {
		h.fail(c, err)
		return
	}
	var in models.CommentDto
	if err := bindJSON(c, &in); err != nil {
		h.fail(c, err)
		return
	}
	comment, err := h.items.AddComment(c.Request.Context(), author, id, in)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, comment)
}

// Bookings

func (h *Handlers) createBooking(c *gin.Context) {
	booker, err := callerID(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	var in models.BookingDto
	if err := bindJSON(c, &in); err != nil {
		h.fail(c, err)
		return
	}
	booking, err := h.bookings.CreateBooking(c.Request.Context(), booker, in)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, booking)
}

func (h *Handlers) decideBooking(c *gin.Context) {
	owner, err := callerID(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	id, err := pathID(c, "id")
	if err != nil {
		h.fail(c, err)
		return
	}
	approved, err := approvedParam(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	booking, err := h.bookings.DecideBooking(c.Request.Context(), owner, id, approved)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

func (h *Handlers) getBooking(c *gin.Context) {
	caller, err := callerID(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	id, err := pathID(c, "id")
	if err != nil {
		h.fail(c, err)
		return
	}
	booking, err := h.bookings.GetBooking(c.Request.Context(), caller, id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

func (h *Handlers) listBookerBookings(c *gin.Context) {
	h.listBookings(c, models.RoleBooker)
}

func (h *Handlers) listOwnerBookings(c *gin.Context) {
	h.listBookings(c, models.RoleOwner)
}

func (h *Handlers) listBookings(c *gin.Context, role models.BookingRole) {
	user, err := callerID(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	state, err := stateParam(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	page, err := pageParams(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	bookings, err := h.bookings.ListBookings(c.Request.Context(), user, role, state, page)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// Requests

func (h *Handlers) createRequest(c *gin.Context) {
	requestor, err := callerID(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	var in models.ItemRequestDto
	if err := bindJSON(c, &in); err != nil {
		h.fail(c, err)
		return
	}
	req, err := h.requests.CreateRequest(c.Request.Context(), requestor, in)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, req)
}

func (h *Handlers) listOwnRequests(c *gin.Context) {
	requestor, err := callerID(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	reqs, err := h.requests.ListOwnRequests(c.Request.Context(), requestor)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, reqs)
}

func (h *Handlers) listOtherRequests(c *gin.Context) {
	requestor, err := callerID(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	page, err := pageParams(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	reqs, err := h.requests.ListOtherRequests(c.Request.Context(), requestor, page)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, reqs)
}

func (h *Handlers) getRequest(c *gin.Context) {
	caller, err := callerID(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	id, err := pathID(c, "id")
	if err != nil {
		h.fail(c, err)
		return
	}
	req, err := h.requests.GetRequest(c.Request.Context(), caller, id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, req)
}
