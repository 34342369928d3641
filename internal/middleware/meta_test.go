package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResponseMetaReachesWrittenBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(WithResponseMeta())
	r.GET("/", func(c *gin.Context) {
		SetCacheHit(c, true)
		meta := ExtractMeta(c)
		meta["processing_time_ms"] = int64(5)
		c.JSON(http.StatusOK, gin.H{"meta": meta})
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	var body struct {
		Meta map[string]interface{} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, true, body.Meta["cache_hit"])
	assert.Equal(t, float64(5), body.Meta["processing_time_ms"])
}

func TestResponseMetaHasNoPostWriteStamp(t *testing.T) {
	// Anything added to the meta map after the handler writes can never
	// reach the client, so the middleware must not stamp anything there.
	gin.SetMode(gin.TestMode)
	r := gin.New()
	var observed map[string]interface{}
	r.Use(WithResponseMeta())
	r.Use(func(c *gin.Context) {
		c.Next()
		observed = ExtractMeta(c)
	})
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{})
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	require.NotNil(t, observed)
	assert.Empty(t, observed)
}

func TestExtractMetaWithoutMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Nil(t, ExtractMeta(c))
}
