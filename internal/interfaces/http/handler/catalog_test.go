package handler

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func catalogEngine() *gin.Engine {
	h := NewCatalogHandler(newTestStore())
	engine := gin.New()
	engine.GET("/products", h.List)
	engine.GET("/products/:id", h.Get)
	return engine
}

func TestCatalogList(t *testing.T) {
	w := performJSON(t, catalogEngine(), "GET", "/products", nil)
	requireStatus(t, w, http.StatusOK)

	data := decodeData(t, w)
	products, ok := data["products"].([]any)
	require.True(t, ok)
	assert.Len(t, products, 10)
	assert.Equal(t, false, data["isLoading"])
}

func TestCatalogGet(t *testing.T) {
	w := performJSON(t, catalogEngine(), "GET", "/products/1", nil)
	requireStatus(t, w, http.StatusOK)

	data := decodeData(t, w)
	assert.Equal(t, float64(1), data["id"])
	assert.NotEmpty(t, data["name"])
}

func TestCatalogGetNotFound(t *testing.T) {
	w := performJSON(t, catalogEngine(), "GET", "/products/999", nil)
	requireStatus(t, w, http.StatusNotFound)

	code, _ := decodeError(t, w)
	assert.Equal(t, "ERR_NOT_FOUND", code)
}

func TestCatalogGetBadID(t *testing.T) {
	w := performJSON(t, catalogEngine(), "GET", "/products/apple", nil)
	requireStatus(t, w, http.StatusBadRequest)
}
