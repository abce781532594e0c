package gateway

import (
	"io"
	"net/http"

	"shareit/internal/api"
	"shareit/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Proxy validates requests and relays them to the backend.
type Proxy struct {
	backend Backend
	logger  *zerolog.Logger
}

func NewProxy(backend Backend, logger *zerolog.Logger) *Proxy {
	return &Proxy{backend: backend, logger: logger}
}

func (p *Proxy) register(r gin.IRouter) {
	users := r.Group("/users")
	users.GET("", p.forward)
	users.GET("/:id", requirePathID("id"), p.forward)
	users.POST("", requireBody[userCreateRequest](), p.forward)
	users.PATCH("/:id", requirePathID("id"), requireBody[userUpdateRequest](), p.forward)
	users.DELETE("/:id", requirePathID("id"), p.forward)

	items := r.Group("/items", requireUser())
	items.GET("", requirePage(), p.forward)
	items.GET("/search", requireQuery("text"), requirePage(), p.forward)
	items.GET("/:id", requirePathID("id"), p.forward)
	items.POST("", requireBody[itemCreateRequest](), p.forward)
	items.PATCH("/:id", requirePathID("id"), requireBody[itemUpdateRequest](), p.forward)
	items.DELETE("/:id", requirePathID("id"), p.forward)
	items.POST("/:id/comment", requirePathID("id"), requireBody[commentCreateRequest](), p.forward)

	bookings := r.Group("/bookings", requireUser())
	bookings.POST("", requireBody[bookingCreateRequest](), p.forward)
	bookings.PATCH("/:id", requirePathID("id"), requireApproved(), p.forward)
	bookings.GET("/:id", requirePathID("id"), p.forward)
	bookings.GET("", requireState(), requirePage(), p.forward)
	bookings.GET("/owner", requireState(), requirePage(), p.forward)

	requests := r.Group("/requests", requireUser())
	requests.POST("", requireBody[itemRequestCreateRequest](), p.forward)
	requests.GET("", p.forward)
	requests.GET("/all", requirePage(), p.forward)
	requests.GET("/:id", requirePathID("id"), p.forward)
}

// forward relays the request and copies the backend status and body back.
func (p *Proxy) forward(c *gin.Context) {
	body, err := requestBody(c)
	if err != nil {
		api.WriteError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	resp, err := p.backend.Forward(c.Request.Context(), ForwardRequest{
		Method:    c.Request.Method,
		Path:      c.Request.URL.Path,
		RawQuery:  c.Request.URL.RawQuery,
		UserID:    c.GetHeader(models.UserIDHeader),
		RequestID: api.RequestIDFrom(c),
		Body:      body,
	})
	if err != nil {
		p.logger.Error().Err(err).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Str("request_id", api.RequestIDFrom(c)).
			Msg("backend call failed")
		api.WriteError(c, http.StatusInternalServerError, api.InternalErrorMessage)
		return
	}

	if len(resp.Body) == 0 {
		c.Status(resp.Status)
		return
	}
	contentType := resp.ContentType
	if contentType == "" {
		contentType = "application/json; charset=utf-8"
	}
	c.Data(resp.Status, contentType, resp.Body)
}

func requestBody(c *gin.Context) ([]byte, error) {
	if cached, ok := c.Get(gin.BodyBytesKey); ok {
		if b, ok := cached.([]byte); ok {
			return b, nil
		}
	}
	if c.Request.Body == nil || c.Request.Body == http.NoBody {
		return nil, nil
	}
	return io.ReadAll(c.Request.Body)
}
