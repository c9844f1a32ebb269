package apitest

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"AtlasAdmin/internal/cli/model"
)

func login(t *testing.T, s *Server) string {
	t.Helper()
	body, _ := json.Marshal(map[string]string{"phoneNumber": StaffPhone, "password": StaffPassword})
	resp, err := http.Post(s.URL+"/api/auth/login", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out struct {
		Data struct {
			AccessToken string `json:"accessToken"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.NotEmpty(t, out.Data.AccessToken)
	return out.Data.AccessToken
}

func get(t *testing.T, s *Server, token, path string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, s.URL+path, nil)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func TestLogin_RejectsWrongPassword(t *testing.T) {
	s := NewServer(t)
	body, _ := json.Marshal(map[string]string{"phoneNumber": StaffPhone, "password": "nope"})
	resp, err := http.Post(s.URL+"/api/auth/login", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware(t *testing.T) {
	s := NewServer(t)

	resp := get(t, s, "", "/api/news")
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = get(t, s, "not-a-jwt", "/api/news")
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	token := login(t, s)
	resp = get(t, s, token, "/api/news")
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// смена секрета отзывает все выданные токены
	s.RevokeTokens()
	resp = get(t, s, token, "/api/news")
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestList_PaginationMath(t *testing.T) {
	s := NewServer(t)
	s.SeedNews(t, 21)
	token := login(t, s)

	check := func(page string, wantPage, wantLen int) {
		resp := get(t, s, token, "/api/news?page="+page)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var out struct {
			Data []model.NewsItem `json:"data"`
			Meta model.Meta       `json:"meta"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
		assert.Equalf(t, wantPage, out.Meta.Page, "requested page %s", page)
		assert.Equal(t, 3, out.Meta.TotalPages)
		assert.Equal(t, 21, out.Meta.Total)
		assert.Lenf(t, out.Data, wantLen, "requested page %s", page)
	}

	check("1", 1, PageLimit)
	check("3", 3, 1)
	check("99", 3, 1) // запрошенная страница подрезается до последней
	check("0", 1, PageLimit)
}

func TestOrders_CannotBeCreatedOrDeleted(t *testing.T) {
	s := NewServer(t)
	order := s.SeedOrder(t, "A", "+998900000000", "M")
	token := login(t, s)

	req, _ := http.NewRequest(http.MethodPost, s.URL+"/api/orders", bytes.NewReader([]byte("{}")))
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)

	req, _ = http.NewRequest(http.MethodDelete, s.URL+"/api/orders/"+order.ID, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestRequestsCounter(t *testing.T) {
	s := NewServer(t)
	require.Zero(t, s.Requests())
	resp := get(t, s, "", "/api/news")
	resp.Body.Close()
	assert.Equal(t, int64(1), s.Requests())
}
