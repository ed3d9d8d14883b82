package handler

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/salesdocs-api/pkg/apperror"
	"github.com/sangkips/salesdocs-api/pkg/pagination"
)

// parseID reads a positive integer path parameter
func parseID(c *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, apperror.NewBadRequestError("Invalid " + name)
	}
	return uint(id), nil
}

// errInvalidQuery answers a query string that does not bind
var errInvalidQuery = apperror.NewBadRequestError("Invalid query parameters")

// paginationParams reads ?page=&limit= and applies defaults and bounds
func paginationParams(c *gin.Context) (*pagination.PaginationParams, error) {
	params := pagination.DefaultPagination()
	if err := c.ShouldBindQuery(params); err != nil {
		return nil, errInvalidQuery
	}
	params.Validate()
	return params, nil
}

// bindError turns a binding failure into a 400
func bindError(err error) error {
	return apperror.NewBadRequestError("Invalid request body: " + err.Error())
}

// parseDocumentDate accepts YYYY-MM-DD or RFC3339
func parseDocumentDate(field string, value *string) (*time.Time, error) {
	if value == nil || strings.TrimSpace(*value) == "" {
		return nil, nil
	}
	v := strings.TrimSpace(*value)
	if t, err := time.ParseInLocation("2006-01-02", v, time.Local); err == nil {
		return &t, nil
	}
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return &t, nil
	}
	return nil, apperror.NewValidationError([]apperror.FieldError{
		{Field: field, Message: "must be a date in YYYY-MM-DD format"},
	})
}
