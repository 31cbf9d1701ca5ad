package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/campusworks/tuition-api/pkg/errors"
	"github.com/campusworks/tuition-api/pkg/response"
)

type recordedFailure struct {
	message    string
	statusCode string
	ctxErr     error
}

type mockRecorder struct {
	failures []recordedFailure
}

func (m *mockRecorder) Record(ctx context.Context, message, statusCode string) {
	m.failures = append(m.failures, recordedFailure{message: message, statusCode: statusCode, ctxErr: ctx.Err()})
}

func auditRouter(recorder FailureRecorder) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Audit(recorder))
	r.GET("/missing", func(c *gin.Context) {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "student with id 9 can not be found"))
	})
	r.GET("/ok", func(c *gin.Context) {
		response.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func TestAuditRecordsHandledFailure(t *testing.T) {
	recorder := &mockRecorder{}
	r := auditRouter(recorder)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/missing", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	require.Len(t, recorder.failures, 1)
	assert.Equal(t, "student with id 9 can not be found", recorder.failures[0].message)
	assert.Equal(t, "404 NOT_FOUND", recorder.failures[0].statusCode)
}

func TestAuditIgnoresSuccess(t *testing.T) {
	recorder := &mockRecorder{}
	r := auditRouter(recorder)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ok", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, recorder.failures)
}

func TestAuditRecordsAfterClientDisconnect(t *testing.T) {
	recorder := &mockRecorder{}
	r := auditRouter(recorder)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/missing", nil).WithContext(ctx)
	r.ServeHTTP(w, req)

	require.Len(t, recorder.failures, 1)
	assert.NoError(t, recorder.failures[0].ctxErr)
}

func TestAuditNilRecorder(t *testing.T) {
	r := auditRouter(nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/missing", nil)
	r.ServeHTTP(w, req)

	// missing recorder must not break the response path
	assert.Equal(t, http.StatusNotFound, w.Code)
}
