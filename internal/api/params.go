package api

import (
	"strconv"
	"strings"

	"shareit/internal/models"

	"github.com/gin-gonic/gin"
)

// callerID reads the identity header. It is required on every route that uses it.
func callerID(c *gin.Context) (int64, error) {
	raw := strings.TrimSpace(c.GetHeader(models.UserIDHeader))
	if raw == "" {
		return 0, models.Validationf("missing %s header", models.UserIDHeader)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, models.Validationf("%s header must be an integer: %s", models.UserIDHeader, raw)
	}
	return id, nil
}

func pathID(c *gin.Context, name string) (int64, error) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, models.Validationf("path parameter %s must be a positive integer: %s", name, raw)
	}
	return id, nil
}

func pageParams(c *gin.Context) (models.Page, error) {
	return models.ParsePage(c.Query("from"), c.Query("size"))
}

func stateParam(c *gin.Context) (models.BookingState, error) {
	return models.ParseBookingState(c.DefaultQuery("state", models.DefaultStateToken))
}

func approvedParam(c *gin.Context) (bool, error) {
	raw := c.Query("approved")
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, models.Validationf("parameter approved must be true or false: %s", raw)
	}
	return v, nil
}

func bindJSON(c *gin.Context, dst any) error {
	if err := c.ShouldBindJSON(dst); err != nil {
		return models.Validationf("invalid request body: %s", err.Error())
	}
	return nil
}
