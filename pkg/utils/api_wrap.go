package utils

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type APIResponse struct {
	Status  string       `json:"status"`
	Code    int          `json:"code"`
	Message string       `json:"message,omitempty"`
	TraceID string       `json:"trace_id,omitempty"`
	Data    interface{}  `json:"data,omitempty"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// FieldError is one request-body validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, APIResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Message: message,
		TraceID: c.GetString("trace_id"),
		Data:    data,
	})
}

func RespondCreated(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusCreated, APIResponse{
		Status:  "success",
		Code:    http.StatusCreated,
		Message: message,
		TraceID: c.GetString("trace_id"),
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, message string) {
	c.JSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		TraceID: c.GetString("trace_id"),
	})
}

// RespondBindingError renders gin binding failures. Validator errors become
// a {field, message} array; anything else is a generic bad-request.
func RespondBindingError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]FieldError, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, FieldError{
				Field:   fe.Field(),
				Message: validationMessage(fe),
			})
		}
		c.JSON(http.StatusBadRequest, APIResponse{
			Status:  "error",
			Code:    http.StatusBadRequest,
			Message: "Validation failed",
			TraceID: c.GetString("trace_id"),
			Errors:  fields,
		})
		return
	}
	RespondError(c, http.StatusBadRequest, "Invalid request format")
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "uuid4", "uuid":
		return "must be a valid UUID"
	case "oneof":
		return "must be one of: " + fe.Param()
	case "gt":
		return "must be greater than " + fe.Param()
	default:
		return "is invalid"
	}
}

func HandleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrAccountNotFound),
		errors.Is(err, ErrAttractionNotFound),
		errors.Is(err, ErrTripNotFound),
		errors.Is(err, ErrBookingNotFound):
		RespondError(c, http.StatusNotFound, err.Error())

	case errors.Is(err, ErrEmailAlreadyExists),
		errors.Is(err, ErrDuplicateReview),
		errors.Is(err, ErrCapacityExceeded),
		errors.Is(err, ErrInvalidTransition),
		errors.Is(err, ErrTripNotBookable):
		RespondError(c, http.StatusConflict, err.Error())

	case errors.Is(err, ErrInvalidCredentials),
		errors.Is(err, ErrInvalidResetToken):
		RespondError(c, http.StatusUnauthorized, err.Error())

	case errors.Is(err, ErrForbidden):
		RespondError(c, http.StatusForbidden, err.Error())

	case errors.Is(err, ErrInvalidInput),
		errors.Is(err, ErrGuideNotEligible),
		errors.Is(err, ErrInvalidPage),
		errors.Is(err, ErrInvalidPageSize):
		RespondError(c, http.StatusBadRequest, err.Error())

	case errors.Is(err, ErrDatabaseError):
		log.Printf("[%s] database error: %v", c.GetString("trace_id"), err)
		RespondError(c, http.StatusInternalServerError, "Internal server error")

	default:
		log.Printf("[%s] unknown error: %v", c.GetString("trace_id"), err)
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	}
}
