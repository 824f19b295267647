package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type priceBody struct {
	Label string          `json:"label" binding:"required"`
	Price decimal.Decimal `json:"price" binding:"gt=0"`
}

func bindPrice(t *testing.T, body string) (priceBody, error) {
	t.Helper()
	SetupValidator()

	var out priceBody
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = req
	return out, c.ShouldBindJSON(&out)
}

func TestDecimalValidation(t *testing.T) {
	got, err := bindPrice(t, `{"label": "Tomatoes", "price": "120.50"}`)
	require.NoError(t, err)
	assert.True(t, got.Price.Equal(decimal.RequireFromString("120.50")))
}

func TestDecimalValidationRejectsZero(t *testing.T) {
	_, err := bindPrice(t, `{"label": "Tomatoes", "price": "0"}`)
	require.Error(t, err)
}

func TestDecimalValidationRejectsNegative(t *testing.T) {
	_, err := bindPrice(t, `{"label": "Tomatoes", "price": "-5"}`)
	require.Error(t, err)
}

func TestValidationErrorsUseJSONFieldNames(t *testing.T) {
	_, err := bindPrice(t, `{"price": "10"}`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "'label'")
}
