package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/SlpAus/impact-report-backend/internal/content/contenttest"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestSetupRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	SetupRoutes(router, contenttest.Repository(t), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	routes := map[string]bool{}
	for _, r := range router.Routes() {
		routes[r.Method+" "+r.Path] = true
	}
	for _, kind := range []string{"picture", "text", "location"} {
		plural := kind + "s"
		assert.True(t, routes["POST /"+kind+"/add-"+kind], kind)
		assert.True(t, routes["GET /"+kind+"/get-"+plural], kind)
		assert.True(t, routes["GET /"+kind+"/get-"+kind], kind)
		assert.True(t, routes["PUT /"+kind+"/update-"+kind], kind)
		assert.True(t, routes["DELETE /"+kind+"/delete-"+kind], kind)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/text/get-texts", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.HasPrefix(w.Body.String(), "["))
}

func TestSetupRoutesWithoutHealth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	SetupRoutes(router, contenttest.Repository(t), nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
