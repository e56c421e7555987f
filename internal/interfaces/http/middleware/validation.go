package middleware

import (
	"net/http"
	"reflect"
	"strings"

	"github.com/dentalcalc/backend/internal/domain/catalog"
	"github.com/dentalcalc/backend/internal/domain/costing"
	"github.com/dentalcalc/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RequestIDKey is the context key for request ID
const RequestIDKey = "X-Request-ID"

// SetupValidator registers the JSON field-name resolver and the domain
// enum tags on gin's validator. Called once at startup.
func SetupValidator() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	// Report errors under the json (or form) name the client sent.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		}
		return name
	})

	// Domain enum validators, delegating to the domain types so the
	// accepted values cannot drift from the aggregates
	_ = v.RegisterValidation("feemode", func(fl validator.FieldLevel) bool {
		return catalog.DoctorFeeMode(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("allocation", func(fl validator.FieldLevel) bool {
		return costing.AllocationType(fl.Field().String()).Valid()
	})
}

// FormatValidationErrors turns validator errors into the standard
// envelope with one detail per failed field.
func FormatValidationErrors(err error, requestID string) dto.Response {
	var details []dto.ValidationDetail
	if verrs, ok := err.(validator.ValidationErrors); ok {
		for _, e := range verrs {
			details = append(details, dto.ValidationDetail{
				Field:   e.Field(),
				Message: getValidationMessage(e),
			})
		}
	}

	return dto.NewValidationErrorResponse("Request validation failed", requestID, details)
}

// HandleValidationError answers a binding failure with 400 and
// per-field details.
func HandleValidationError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, FormatValidationErrors(err, requestIDFromContext(c)))
}

func requestIDFromContext(c *gin.Context) string {
	if id := c.GetString(RequestIDKey); id != "" {
		return id
	}
	return c.GetHeader(RequestIDKey)
}

// fixedValidationMessages covers tags whose message needs no parameter.
var fixedValidationMessages = map[string]string{
	"required":   "This field is required",
	"email":      "Invalid email format",
	"uuid":       "Invalid UUID format",
	"url":        "Invalid URL format",
	"numeric":    "Must be numeric",
	"alphanum":   "Must be alphanumeric",
	"alpha":      "Must contain only letters",
	"feemode":    "Must be one of: hourly fixed percentage",
	"allocation": "Must be one of: fixed per_hour",
}

// getValidationMessage renders a client-facing message for one failed tag.
func getValidationMessage(e validator.FieldError) string {
	if msg, ok := fixedValidationMessages[e.Tag()]; ok {
		return msg
	}

	switch e.Tag() {
	case "min":
		if e.Type().Kind() == reflect.String {
			return "Must be at least " + e.Param() + " characters"
		}
		return "Must be at least " + e.Param()
	case "max":
		if e.Type().Kind() == reflect.String {
			return "Must be at most " + e.Param() + " characters"
		}
		return "Must be at most " + e.Param()
	case "len":
		return "Must be exactly " + e.Param() + " characters"
	case "oneof":
		return "Must be one of: " + e.Param()
	case "gte":
		return "Must be greater than or equal to " + e.Param()
	case "lte":
		return "Must be less than or equal to " + e.Param()
	case "gt":
		return "Must be greater than " + e.Param()
	case "lt":
		return "Must be less than " + e.Param()
	default:
		return "Invalid value"
	}
}
