package response

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func run(h gin.HandlerFunc) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	h(c)
	return rec
}

func TestErrorHelpers(t *testing.T) {
	cases := []struct {
		name   string
		h      gin.HandlerFunc
		status int
		body   string
	}{
		{"bad request", func(c *gin.Context) { BadRequest(c, "Missing required fields") }, http.StatusBadRequest, `{"error":"Missing required fields"}`},
		{"internal", func(c *gin.Context) { InternalError(c, "Failed to fetch projects") }, http.StatusInternalServerError, `{"error":"Failed to fetch projects"}`},
		{"unavailable", func(c *gin.Context) { ServiceUnavailable(c, "Database connection failed") }, http.StatusServiceUnavailable, `{"error":"Database connection failed"}`},
		{"not found", NotFound, http.StatusNotFound, `{"error":"Not Found"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := run(tc.h)
			assert.Equal(t, tc.status, rec.Code)
			assert.JSONEq(t, tc.body, rec.Body.String())
		})
	}
}

func TestRawKeepsBytes(t *testing.T) {
	payload := []byte(`{"b":1,  "a":[2]}`)
	rec := run(func(c *gin.Context) { Raw(c, http.StatusTeapot, payload) })

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, string(payload), rec.Body.String())
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
}
