package routes_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateOrganizer(t *testing.T) {
	ts := setupServer(t)

	org := ts.createOrganizer(t, "jane@example.com")
	assert.NotEmpty(t, org["id"])
	assert.Equal(t, "jane@example.com", org["email"])
	assert.NotContains(t, org, "password")

	w := ts.do(http.MethodGet, "/api/organizers", nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[[]map[string]any](t, w)
	require.Len(t, list, 1)
	assert.Equal(t, org["id"], list[0]["id"])
}

func TestCreateOrganizer_Errors(t *testing.T) {
	ts := setupServer(t)
	ts.createOrganizer(t, "jane@example.com")

	w := ts.do(http.MethodPost, "/api/organizers", gin.H{
		"name": "X", "email": "invalid-email", "phone": "+15551234567", "password": "secret123",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"errors":["Invalid email address."]}`, w.Body.String())

	w = ts.do(http.MethodPost, "/api/organizers", gin.H{
		"name": "X", "email": "jane@example.com", "phone": "+15551234567", "password": "secret123",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.JSONEq(t, `{"message":"Email is already registered"}`, w.Body.String())
}

// 80 字的密碼是 400，不是 500
func TestCreateOrganizer_PasswordTooLong(t *testing.T) {
	ts := setupServer(t)

	w := ts.do(http.MethodPost, "/api/organizers", gin.H{
		"name": "Jane", "email": "jane@example.com", "phone": "+15551234567", "password": strings.Repeat("p", 80),
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"errors":["Password cannot be longer than 72 bytes."]}`, w.Body.String())
}

// PUT / DELETE 沒帶或帶錯 token → 401
func TestOrganizerMutations_RequireToken(t *testing.T) {
	ts := setupServer(t)
	org := ts.createOrganizer(t, "jane@example.com")
	path := "/api/organizers/" + org["id"].(string)
	body := gin.H{"name": "New", "email": "jane@example.com", "phone": "+15551234567"}

	for _, headers := range [][]string{
		nil,
		{"Authorization", testToken},
		{"Authorization", "Bearer wrong"},
	} {
		w := ts.do(http.MethodPut, path, body, headers...)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "headers=%v", headers)
		assert.JSONEq(t, `{"message":"Invalid token"}`, w.Body.String())

		w = ts.do(http.MethodDelete, path, nil, headers...)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "headers=%v", headers)
	}

	w := ts.do(http.MethodPut, path, body, authHeader()...)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "New", decode[map[string]any](t, w)["name"])
}

func TestUpdateOrganizer_NotFound(t *testing.T) {
	ts := setupServer(t)

	w := ts.do(http.MethodPut, "/api/organizers/ghost", gin.H{"name": "x"}, authHeader()...)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"message":"Organizer not found"}`, w.Body.String())
}

func TestDeleteOrganizer_Cascades(t *testing.T) {
	ts := setupServer(t)
	org := ts.createOrganizer(t, "jane@example.com")
	ev := ts.createEvent(t, org["id"].(string))
	ts.createTicket(t, ev["id"].(string), "A1")

	// 先把 list 放進快取，確認刪除後有失效
	for _, p := range []string{"/api/events", "/api/tickets"} {
		require.Equal(t, http.StatusOK, ts.do(http.MethodGet, p, nil).Code)
	}

	w := ts.do(http.MethodDelete, "/api/organizers/"+org["id"].(string), nil, authHeader()...)
	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())

	for _, p := range []string{"/api/organizers", "/api/events", "/api/tickets"} {
		w := ts.do(http.MethodGet, p, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[]`, w.Body.String(), p)
	}

	w = ts.do(http.MethodGet, "/api/events/"+ev["id"].(string), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestLogin(t *testing.T) {
	ts := setupServer(t)
	ts.createOrganizer(t, "jane@example.com")

	w := ts.do(http.MethodPost, "/api/organizers/login", gin.H{"email": "jane@example.com", "password": "secret123"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{"message":"Login successful!","token":"test-token"}`, w.Body.String())

	w = ts.do(http.MethodPost, "/api/organizers/login", gin.H{"email": "jane@example.com", "password": "wrong-pass"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"message":"Invalid credentials"}`, w.Body.String())

	w = ts.do(http.MethodPost, "/api/organizers/login", gin.H{"email": "jane@example.com"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// 登入每個 IP burst 5，第 6 次被擋
func TestLogin_RateLimited(t *testing.T) {
	ts := setupServer(t)

	codes := make([]int, 0, 6)
	for i := 0; i < 6; i++ {
		w := ts.do(http.MethodPost, "/api/organizers/login", gin.H{"email": "nobody@example.com", "password": "whatever"})
		codes = append(codes, w.Code)
	}
	assert.Equal(t, http.StatusUnauthorized, codes[0])
	assert.Equal(t, http.StatusTooManyRequests, codes[5])
}
