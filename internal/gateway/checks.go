package gateway

import (
	"net/http"
	"strconv"
	"strings"

	"shareit/internal/api"
	"shareit/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

// Route checks run before forwarding; each aborts with 400 on failure.

func requireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := strings.TrimSpace(c.GetHeader(models.UserIDHeader))
		if raw == "" {
			api.WriteError(c, http.StatusBadRequest, "missing "+models.UserIDHeader+" header")
			return
		}
		if _, err := strconv.ParseInt(raw, 10, 64); err != nil {
			api.WriteError(c, http.StatusBadRequest, models.UserIDHeader+" header must be an integer: "+raw)
			return
		}
		c.Next()
	}
}

func requirePathID(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.Param(name)
		if id, err := strconv.ParseInt(raw, 10, 64); err != nil || id <= 0 {
			api.WriteError(c, http.StatusBadRequest, "path parameter "+name+" must be a positive integer: "+raw)
			return
		}
		c.Next()
	}
}

func requirePage() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, err := models.ParsePage(c.Query("from"), c.Query("size")); err != nil {
			api.WriteError(c, http.StatusBadRequest, err.Error())
			return
		}
		c.Next()
	}
}

func requireState() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, err := models.ParseBookingState(c.DefaultQuery("state", models.DefaultStateToken)); err != nil {
			api.WriteError(c, http.StatusBadRequest, err.Error())
			return
		}
		c.Next()
	}
}

func requireApproved() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.Query("approved")
		if _, err := strconv.ParseBool(raw); err != nil {
			api.WriteError(c, http.StatusBadRequest, "parameter approved must be true or false: "+raw)
			return
		}
		c.Next()
	}
}

func requireQuery(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := c.GetQuery(name); !ok {
			api.WriteError(c, http.StatusBadRequest, "missing query parameter "+name)
			return
		}
		c.Next()
	}
}

// requireBody validates the JSON body against T. The raw bytes stay cached
// on the context so forward relays them unchanged.
func requireBody[T any]() gin.HandlerFunc {
	return func(c *gin.Context) {
		var dst T
		if err := c.ShouldBindBodyWith(&dst, binding.JSON); err != nil {
			api.WriteError(c, http.StatusBadRequest, validationMessage(err))
			return
		}
		c.Next()
	}
}
