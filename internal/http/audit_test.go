package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mrlokans/bookcatalog/internal/entities"
)

type auditPage struct {
	Data    []entities.AuditEvent `json:"data"`
	Total   int64                 `json:"total"`
	Limit   int                   `json:"limit"`
	Offset  int                   `json:"offset"`
	HasMore bool                  `json:"has_more"`
}

func decodeAuditPage(t *testing.T, body []byte) auditPage {
	t.Helper()
	var page auditPage
	require.NoError(t, json.Unmarshal(body, &page))
	return page
}

func TestAuditController_RecordsBookMutations(t *testing.T) {
	app := setupTestApp(t)

	w := doRequest(app.router, http.MethodPost, "/books", `{"isbn":"111","title":"A","author":"X"}`, asAdmin())
	require.Equal(t, http.StatusCreated, w.Code)
	w = doRequest(app.router, http.MethodPut, "/books/111", `{"title":"B","author":"Y"}`, asAdmin())
	require.Equal(t, http.StatusOK, w.Code)
	w = doRequest(app.router, http.MethodDelete, "/books/111", "", asAdmin())
	require.Equal(t, http.StatusNoContent, w.Code)

	w = doRequest(app.router, http.MethodGet, "/api/audit?type=book", "", asAdmin())
	require.Equal(t, http.StatusOK, w.Code)

	page := decodeAuditPage(t, w.Body.Bytes())
	assert.Equal(t, int64(3), page.Total)
	assert.False(t, page.HasMore)
	require.Len(t, page.Data, 3)

	// Newest first
	assert.Equal(t, "book_delete", page.Data[0].Action)
	assert.Equal(t, "book_update", page.Data[1].Action)
	assert.Equal(t, "book_create", page.Data[2].Action)
	for _, event := range page.Data {
		assert.Equal(t, "admin", event.Username)
		assert.Equal(t, "111", event.EntityID)
		assert.Equal(t, entities.AuditStatusSuccess, event.Status)
	}
}

func TestAuditController_DeniedMutationsAreNotRecorded(t *testing.T) {
	app := setupTestApp(t)

	w := doRequest(app.router, http.MethodPost, "/books", `{"isbn":"111","title":"A","author":"X"}`, asUser())
	require.Equal(t, http.StatusForbidden, w.Code)

	w = doRequest(app.router, http.MethodGet, "/api/audit?type=book", "", asAdmin())
	require.Equal(t, http.StatusOK, w.Code)
	assert.Zero(t, decodeAuditPage(t, w.Body.Bytes()).Total)
}

func TestAuditController_Pagination(t *testing.T) {
	app := setupTestApp(t)

	for _, isbn := range []string{"1", "2", "3"} {
		w := doRequest(app.router, http.MethodPost, "/books", `{"isbn":"`+isbn+`","title":"T","author":"A"}`, asAdmin())
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := doRequest(app.router, http.MethodGet, "/api/audit?type=book&limit=2", "", asAdmin())
	require.Equal(t, http.StatusOK, w.Code)

	page := decodeAuditPage(t, w.Body.Bytes())
	assert.Equal(t, int64(3), page.Total)
	assert.Equal(t, 2, page.Limit)
	assert.True(t, page.HasMore)
	assert.Len(t, page.Data, 2)

	w = doRequest(app.router, http.MethodGet, "/api/audit?type=book&limit=2&offset=2", "", asAdmin())
	page = decodeAuditPage(t, w.Body.Bytes())
	assert.False(t, page.HasMore)
	require.Len(t, page.Data, 1)
	assert.Equal(t, "1", page.Data[0].EntityID)
}

func TestAuditController_RequiresAdmin(t *testing.T) {
	app := setupTestApp(t)

	w := doRequest(app.router, http.MethodGet, "/api/audit", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doRequest(app.router, http.MethodGet, "/api/audit", "", asUser())
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAuditController_InvalidQuery(t *testing.T) {
	app := setupTestApp(t)

	tests := []string{
		"/api/audit?type=settings",
		"/api/audit?limit=abc",
		"/api/audit?offset=-1",
		"/api/audit?limit=-5",
	}
	for _, path := range tests {
		t.Run(path, func(t *testing.T) {
			w := doRequest(app.router, http.MethodGet, path, "", asAdmin())
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

type brokenAuditReader struct{}

func (brokenAuditReader) GetEvents(entities.AuditEventType, int, int) ([]entities.AuditEvent, int64, error) {
	return nil, 0, errors.New("database is locked")
}

func TestAuditController_StoreError(t *testing.T) {
	router := NewRouter(RouterConfig{AuditReader: brokenAuditReader{}, Logger: zap.NewNop()})

	// Without an auth middleware the admin gate refuses everyone
	w := doRequest(router, http.MethodGet, "/api/audit", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	controller := NewAuditController(brokenAuditReader{}, zap.NewNop())
	router = NewRouter(RouterConfig{Logger: zap.NewNop()})
	router.GET("/events", controller.ListEvents)

	w = doRequest(router, http.MethodGet, "/events", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, w.Body.String())
}

func TestAuditController_LimitBounds(t *testing.T) {
	app := setupTestApp(t)

	tests := []struct {
		query string
		limit int
	}{
		{"", 50},
		{"?limit=0", 50},
		{"?limit=10", 10},
		{"?limit=500", 200},
	}
	for _, tt := range tests {
		t.Run("limit"+tt.query, func(t *testing.T) {
			w := doRequest(app.router, http.MethodGet, "/api/audit"+tt.query, "", asAdmin())
			require.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.limit, decodeAuditPage(t, w.Body.Bytes()).Limit)
		})
	}
}
