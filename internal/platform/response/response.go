package response

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/adoptme/service-adoption/internal/platform/domain"
)

// ErrorBody is the error part of the envelope.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Pagination describes a page of a larger result.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// Envelope is the JSON shape of every response.
type Envelope struct {
	Success    bool        `json:"success"`
	Data       interface{} `json:"data,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
	Error      *ErrorBody  `json:"error,omitempty"`
}

// Success writes 200 with data.
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Envelope{Success: true, Data: data})
}

// Created writes 201 with data.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Envelope{Success: true, Data: data})
}

// Paginated writes 200 with a page of items.
func Paginated(c *gin.Context, items interface{}, total int64, page, limit int) {
	totalPages := 0
	if limit > 0 {
		totalPages = int((total + int64(limit) - 1) / int64(limit))
	}
	c.JSON(http.StatusOK, Envelope{
		Success: true,
		Data:    items,
		Pagination: &Pagination{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: totalPages,
		},
	})
}

// BadRequest writes 400 with a message.
func BadRequest(c *gin.Context, msg string) {
	abort(c, http.StatusBadRequest, "BAD_REQUEST", msg)
}

// Unauthorized writes 401.
func Unauthorized(c *gin.Context, msg string) {
	abort(c, http.StatusUnauthorized, string(domain.KindUnauthorized), msg)
}

// Forbidden writes 403.
func Forbidden(c *gin.Context, msg string) {
	abort(c, http.StatusForbidden, string(domain.KindForbidden), msg)
}

// BindError writes 400 for a request body that failed binding, spelling out
// validator failures per field.
func BindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		abort(c, http.StatusBadRequest, string(domain.KindValidation), FormatValidation(verrs))
		return
	}
	BadRequest(c, err.Error())
}

// Error maps err to a status code through its domain kind.
func Error(c *gin.Context, err error) {
	switch domain.KindOf(err) {
	case domain.KindNotFound:
		abort(c, http.StatusNotFound, string(domain.KindNotFound), err.Error())
	case domain.KindValidation:
		abort(c, http.StatusBadRequest, string(domain.KindValidation), err.Error())
	case domain.KindConflict:
		abort(c, http.StatusConflict, string(domain.KindConflict), err.Error())
	case domain.KindForbidden:
		abort(c, http.StatusForbidden, string(domain.KindForbidden), err.Error())
	case domain.KindUnauthorized:
		abort(c, http.StatusUnauthorized, string(domain.KindUnauthorized), err.Error())
	default:
		_ = c.Error(err)
		abort(c, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}

// FormatValidation turns validator field errors into one readable sentence.
func FormatValidation(errs validator.ValidationErrors) string {
	msgs := make([]string, 0, len(errs))
	for _, e := range errs {
		field := strings.ToLower(e.Field())
		switch e.ActualTag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("field %s is required", field))
		case "email":
			msgs = append(msgs, fmt.Sprintf("field %s must be a valid email address", field))
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("field %s must be one of [%s]", field, e.Param()))
		case "min", "gte":
			msgs = append(msgs, fmt.Sprintf("field %s must be at least %s", field, e.Param()))
		case "gt":
			msgs = append(msgs, fmt.Sprintf("field %s must be greater than %s", field, e.Param()))
		case "max", "lte":
			msgs = append(msgs, fmt.Sprintf("field %s must be at most %s", field, e.Param()))
		case "lt":
			msgs = append(msgs, fmt.Sprintf("field %s must be less than %s", field, e.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("field %s is invalid", field))
		}
	}
	return strings.Join(msgs, ", ")
}

func abort(c *gin.Context, status int, code, msg string) {
	c.AbortWithStatusJSON(status, Envelope{
		Success: false,
		Error:   &ErrorBody{Code: code, Message: msg},
	})
}

// UseJSONFieldNames makes gin's validator report fields by their json tag,
// so messages read "field amount_cents ..." instead of the Go field name.
func UseJSONFieldNames() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
}
