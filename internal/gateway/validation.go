package gateway

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	"shareit/internal/models"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

type userCreateRequest struct {
	Name  string `json:"name" binding:"required,notblank"`
	Email string `json:"email" binding:"required,email"`
}

type userUpdateRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email" binding:"omitempty,email_or_blank"`
}

type itemCreateRequest struct {
	Name        string `json:"name" binding:"required,notblank"`
	Description string `json:"description" binding:"required,notblank"`
	Available   *bool  `json:"available" binding:"required"`
	RequestID   *int64 `json:"requestId" binding:"omitempty,gt=0"`
}

type itemUpdateRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Available   *bool   `json:"available"`
	RequestID   *int64  `json:"requestId" binding:"omitempty,gt=0"`
}

type bookingCreateRequest struct {
	ItemID int64            `json:"itemId" binding:"required,gt=0"`
	Start  models.Timestamp `json:"start" binding:"required,future"`
	End    models.Timestamp `json:"end" binding:"required,future"`
}

type commentCreateRequest struct {
	Text string `json:"text" binding:"required,notblank"`
}

type itemRequestCreateRequest struct {
	Description string `json:"description" binding:"required,notblank"`
}

var (
	validatorsOnce sync.Once
	validatorsErr  error

	// plainValidator runs built-in tags from inside custom ones.
	plainValidator = validator.New()
)

// registerValidators adds the custom tags to gin's validator engine.
func registerValidators() error {
	validatorsOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			validatorsErr = errors.New("unexpected gin validator engine")
			return
		}
		v.RegisterTagNameFunc(jsonFieldName)
		if err := v.RegisterValidation("notblank", notBlank); err != nil {
			validatorsErr = err
			return
		}
		if err := v.RegisterValidation("email_or_blank", emailOrBlank); err != nil {
			validatorsErr = err
			return
		}
		validatorsErr = v.RegisterValidation("future", inFuture)
	})
	return validatorsErr
}

func jsonFieldName(f reflect.StructField) string {
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	if name == "-" || name == "" {
		return f.Name
	}
	return name
}

func notBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// emailOrBlank lets a blank value through: the backend keeps the stored email.
func emailOrBlank(fl validator.FieldLevel) bool {
	value := strings.TrimSpace(fl.Field().String())
	return value == "" || plainValidator.Var(value, "email") == nil
}

func inFuture(fl validator.FieldLevel) bool {
	switch t := fl.Field().Interface().(type) {
	case models.Timestamp:
		return t.Time().After(time.Now())
	case time.Time:
		return t.After(time.Now())
	default:
		return false
	}
}

// validationMessage renders binding errors as one client-facing line.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "invalid request body: " + err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fieldMessage(fe))
	}
	return strings.Join(msgs, "; ")
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return fmt.Sprintf("%s must not be blank", fe.Field())
	case "email", "email_or_blank":
		return fmt.Sprintf("%s must be a valid email address", fe.Field())
	case "future":
		return fmt.Sprintf("%s must be in the future", fe.Field())
	case "gt":
		return fmt.Sprintf("%s must be positive", fe.Field())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}
