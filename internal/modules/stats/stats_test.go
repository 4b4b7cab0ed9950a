package stats

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/portfolio-space/portfolio/internal/database/dbtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var (
	countProjects = regexp.QuoteMeta("SELECT count(*) FROM `projects`")
	countSkills   = regexp.QuoteMeta("SELECT count(*) FROM `skills`")
)

func setup(t *testing.T) (*gin.Engine, sqlmock.Sqlmock) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store, mock := dbtest.NewStore(t)
	r := gin.New()
	NewHandler(NewService(store), zap.NewNop()).RegisterRoutes(r.Group("/api"))
	return r, mock
}

func get(r *gin.Engine) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/stats", nil))
	return rec
}

func count(n int) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"count(*)"}).AddRow(n)
}

func TestStats(t *testing.T) {
	r, mock := setup(t)
	mock.ExpectPing()
	mock.ExpectQuery(countProjects).WillReturnRows(count(4))
	mock.ExpectQuery(countSkills).WillReturnRows(count(12))

	rec := get(r)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"projects_count":4,"skills_count":12,"experience_years":5,"certifications":3}`, rec.Body.String())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStatsEmptyTables(t *testing.T) {
	r, mock := setup(t)
	mock.ExpectPing()
	mock.ExpectQuery(countProjects).WillReturnRows(count(0))
	mock.ExpectQuery(countSkills).WillReturnRows(count(0))

	rec := get(r)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"projects_count":0,"skills_count":0,"experience_years":5,"certifications":3}`, rec.Body.String())
}

func TestStatsErrors(t *testing.T) {
	t.Run("database down", func(t *testing.T) {
		r, mock := setup(t)
		mock.ExpectPing().WillReturnError(errors.New("connection refused"))

		rec := get(r)

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.JSONEq(t, `{"error":"Database connection failed"}`, rec.Body.String())
	})

	t.Run("second count fails", func(t *testing.T) {
		r, mock := setup(t)
		mock.ExpectPing()
		mock.ExpectQuery(countProjects).WillReturnRows(count(4))
		mock.ExpectQuery(countSkills).WillReturnError(errors.New("lock wait timeout"))

		rec := get(r)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.JSONEq(t, `{"error":"Failed to fetch statistics"}`, rec.Body.String())
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
