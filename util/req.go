package util

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

type HTTPError struct {
	Status  int
	Message string
	Fields  map[string]string
	Cause   error
}

func (he *HTTPError) Error() string {
	return fmt.Sprintf("%v (statusCode=%v)", he.Message, he.Status)
}

func (he *HTTPError) Unwrap() error {
	return he.Cause
}

var (
	DbHTTPErr = HTTPError{
		Message: "Database error",
		Status:  http.StatusInternalServerError,
	}
	MalformedIdHTTPErr = HTTPError{
		Message: "id malformed",
		Status:  http.StatusBadRequest,
	}
)

// BuildDbHTTPErr logs the persistence failure and hides it from the client.
func BuildDbHTTPErr(err error) *HTTPError {
	zap.L().Error("database error occurred", zap.Error(err))
	httpErr := DbHTTPErr
	httpErr.Cause = err
	return &httpErr
}

// BuildJSONBindHTTPErr turns a binding failure into a 400 with per-field detail.
func BuildJSONBindHTTPErr(err error) *HTTPError {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		fields := make(map[string]string, len(validationErrs))
		for _, fieldErr := range validationErrs {
			fields[lowerFirst(fieldErr.Field())] = describeFieldErr(fieldErr)
		}
		return &HTTPError{
			Status:  http.StatusBadRequest,
			Message: "validation failed",
			Fields:  fields,
			Cause:   err,
		}
	}
	return &HTTPError{
		Status:  http.StatusBadRequest,
		Message: "malformed request body",
		Cause:   err,
	}
}

func BuildValidationHTTPErr(field, problem string) *HTTPError {
	return &HTTPError{
		Status:  http.StatusBadRequest,
		Message: "validation failed",
		Fields:  map[string]string{field: problem},
	}
}

func NotFoundHTTPErr(what string) *HTTPError {
	return &HTTPError{Status: http.StatusNotFound, Message: what + " not found"}
}

func ConflictHTTPErr(status int, message string) *HTTPError {
	return &HTTPError{Status: status, Message: message}
}

func ForbiddenHTTPErr(message string) *HTTPError {
	return &HTTPError{Status: http.StatusForbidden, Message: message}
}

// ValidateVar checks a single value against validator tags with the same
// engine gin uses for request bodies.
func ValidateVar(field string, value interface{}, tag string) *HTTPError {
	validate, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		validate = validator.New()
	}
	err := validate.Var(value, tag)
	if err == nil {
		return nil
	}
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) && len(validationErrs) > 0 {
		return BuildValidationHTTPErr(field, describeFieldErr(validationErrs[0]))
	}
	return BuildValidationHTTPErr(field, "is invalid")
}

func describeFieldErr(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return "must be one of: " + fieldErr.Param()
	case "gt":
		return "must be greater than " + fieldErr.Param()
	case "max":
		return "must be at most " + fieldErr.Param() + " characters"
	case "email":
		return "must be a valid email"
	}
	return "failed on " + fieldErr.Tag()
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

/*
	HandleHTTPErrorRes handles creating the appropriate response for the HTTP error.
	break the route after calling this function
*/
func HandleHTTPErrorRes(c *gin.Context, err *HTTPError) {
	body := gin.H{
		"success": false,
		"error":   err.Message,
	}
	if len(err.Fields) > 0 {
		body["fields"] = err.Fields
	}
	c.AbortWithStatusJSON(err.Status, body)
}

type Handler func(c *gin.Context) (interface{}, *HTTPError)

type HandlerOpts struct {
	SuccessStatus int
}

func HandlerWrapper(handler Handler, opts *HandlerOpts) gin.HandlerFunc {
	return func(c *gin.Context) {
		res, err := handler(c)
		if err != nil {
			_ = c.Error(err)
			HandleHTTPErrorRes(c, err)
			return
		}
		status := http.StatusOK
		if opts != nil && opts.SuccessStatus != 0 {
			status = opts.SuccessStatus
		}
		if statusRes, ok := res.(*StatusResponse); ok {
			status, res = statusRes.Status, statusRes.Data
		}
		c.JSON(status, gin.H{
			"success": true,
			"data":    res,
		})
	}
}

// StatusResponse lets a handler pick its success status at runtime.
type StatusResponse struct {
	Status int
	Data   interface{}
}
