package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/salesdocs-api/pkg/apperror"
	"github.com/sangkips/salesdocs-api/pkg/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContext(target string, params ...gin.Param) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, target, nil)
	c.Params = params
	return c
}

func TestParseID(t *testing.T) {
	for _, raw := range []string{"abc", "0", "-1", ""} {
		_, err := parseID(testContext("/", gin.Param{Key: "id", Value: raw}), "id")
		require.Error(t, err, raw)
		assert.Equal(t, http.StatusBadRequest, apperror.GetAppError(err).Code)
	}

	id, err := parseID(testContext("/", gin.Param{Key: "id", Value: "42"}), "id")
	require.NoError(t, err)
	assert.Equal(t, uint(42), id)
}

func TestPaginationParams(t *testing.T) {
	p, err := paginationParams(testContext("/?page=3&limit=500"))
	require.NoError(t, err)
	assert.Equal(t, 3, p.Page)
	assert.Equal(t, pagination.MaxLimit, p.Limit)

	p, err = paginationParams(testContext("/"))
	require.NoError(t, err)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, pagination.DefaultLimit, p.Limit)

	for _, query := range []string{"/?page=x", "/?limit=abc"} {
		_, err = paginationParams(testContext(query))
		require.Error(t, err, query)
		assert.Equal(t, http.StatusBadRequest, apperror.GetAppError(err).Code)
	}
}

func TestParseDocumentDate(t *testing.T) {
	got, err := parseDocumentDate("purchase_date", nil)
	require.NoError(t, err)
	assert.Nil(t, got)

	blank := " "
	got, err = parseDocumentDate("purchase_date", &blank)
	require.NoError(t, err)
	assert.Nil(t, got)

	day := "2024-03-01"
	got, err = parseDocumentDate("purchase_date", &day)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-01", got.Format("2006-01-02"))

	stamp := "2024-03-01T10:30:00Z"
	got, err = parseDocumentDate("purchase_date", &stamp)
	require.NoError(t, err)
	assert.True(t, got.Equal(time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC)))

	bad := "01/03/2024"
	_, err = parseDocumentDate("purchase_date", &bad)
	require.Error(t, err)
	appErr := apperror.GetAppError(err)
	assert.Equal(t, http.StatusBadRequest, appErr.Code)
	assert.NotEmpty(t, appErr.Errors)
}
