package routes_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"ticketapi/clock"
	"ticketapi/models"
	"ticketapi/routes"
	"ticketapi/services"
	"ticketapi/utils"
)

const testToken = "test-token"

var testNow = time.Date(2030, 6, 1, 10, 0, 0, 0, time.UTC)

type testServer struct {
	s  *gin.Engine
	mr *miniredis.Miniredis
}

// setupServer 用 memory store + miniredis 組出完整的路由；opts 可以改 Deps（例如限速）
func setupServer(t *testing.T, opts ...func(*routes.Deps)) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	repos := models.NewMemoryStore().Repositories()

	deps := routes.Deps{
		Organizers:       services.NewOrganizerService(repos, testToken),
		Events:           services.NewEventService(repos, clock.NewFixed(testNow)),
		Tickets:          services.NewTicketService(repos),
		APIToken:         testToken,
		Redis:            rdb,
		Invalidator:      utils.NewCacheInvalidator(rdb),
		CacheTTL:         time.Minute,
		LoginQuota:       100,
		LoginQuotaWindow: time.Hour,
		Ping:             repos.Ping,
	}
	for _, opt := range opts {
		opt(&deps)
	}

	s := gin.New()
	t.Cleanup(routes.RegisterRoutes(s, deps))

	return &testServer{s: s, mr: mr}
}

func (ts *testServer) do(method, path string, body any, headers ...string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			_ = json.NewEncoder(&buf).Encode(b)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	ts.s.ServeHTTP(w, req)
	return w
}

func authHeader() []string { return []string{"Authorization", "Bearer " + testToken} }

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), "body=%s", w.Body.String())
	return v
}

func (ts *testServer) createOrganizer(t *testing.T, email string) map[string]any {
	t.Helper()
	w := ts.do(http.MethodPost, "/api/organizers", gin.H{
		"name": "Jane Doe", "email": email, "phone": "+15551234567", "password": "secret123",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[map[string]any](t, w)
}

func (ts *testServer) createEvent(t *testing.T, organizerID string) map[string]any {
	t.Helper()
	w := ts.do(http.MethodPost, "/api/events", gin.H{
		"title": "Concert", "date": testNow.Add(48 * time.Hour).Format(time.RFC3339),
		"venue": "Hall A", "capacity": 100, "organizerId": organizerID,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[map[string]any](t, w)
}

func (ts *testServer) createTicket(t *testing.T, eventID, seat string) map[string]any {
	t.Helper()
	w := ts.do(http.MethodPost, "/api/tickets", gin.H{
		"seatNumber": seat, "price": 25.5, "eventId": eventID,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[map[string]any](t, w)
}
