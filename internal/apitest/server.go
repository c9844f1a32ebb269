// Package apitest hosts an in-process stand-in for the platform REST API.
// Integration tests run the real client against it instead of stubbing the
// transport: bearer auth, the {data, meta} envelopes, multipart uploads and
// server-side pagination all behave like the production backend.
package apitest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"AtlasAdmin/internal/cli/model"
)

// PageLimit is the fixed page size the fake server paginates with.
const PageLimit = 10

// Credentials every server is seeded with.
const (
	StaffPhone    = "+998901234567"
	StaffPassword = "secret1"
)

// Server is the fake platform API.
type Server struct {
	DB   *gorm.DB
	HTTP *httptest.Server
	URL  string

	log      *zap.Logger
	secret   []byte
	staffID  string
	requests atomic.Int64
}

// NewServer starts a fake API over an in-memory database. It is shut down
// with the test.
func NewServer(t *testing.T) *Server {
	t.Helper()

	s := &Server{
		DB:     newTestDB(t),
		log:    zaptest.NewLogger(t),
		secret: []byte("apitest-secret"),
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(StaffPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash staff password: %v", err)
	}
	s.staffID = uuid.NewString()
	if err := s.DB.Create(&staffRow{ID: s.staffID, PhoneNumber: StaffPhone, PasswordHash: string(hash)}).Error; err != nil {
		t.Fatalf("seed staff: %v", err)
	}

	s.HTTP = httptest.NewServer(s.router())
	s.URL = s.HTTP.URL
	t.Cleanup(s.HTTP.Close)
	return s
}

// Requests returns how many HTTP requests the server has received.
// Validation tests use it to assert that a rejected draft issued none.
func (s *Server) Requests() int64 { return s.requests.Load() }

// RevokeTokens rotates the signing secret so every previously issued token
// starts answering 401.
func (s *Server) RevokeTokens() { s.secret = []byte(uuid.NewString()) }

// StaffID returns the id of the seeded staff account.
func (s *Server) StaffID() string { return s.staffID }

func (s *Server) router() http.Handler {
	r := chi.NewRouter()
	r.Use(s.countAndLog)

	r.Post("/api/auth/login", s.handleLogin)

	r.Group(func(r chi.Router) {
		r.Use(s.requireAuth)
		r.Patch("/api/auth/profile/{id}", s.handleProfile)

		for _, res := range []string{"news", "banners", "categories", "partners", "products", "orders"} {
			res := res
			r.Route("/api/"+res, func(r chi.Router) {
				r.Get("/", s.handleList(res))
				r.Get("/{id}", s.handleGet(res))
				r.Post("/", s.handleCreate(res))
				r.Patch("/{id}", s.handlePatch(res))
				r.Delete("/{id}", s.handleDelete(res))
			})
		}
	})
	return r
}

func (s *Server) countAndLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.requests.Add(1)
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.Debug("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("took", time.Since(start)),
		)
	})
}

func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		if raw == "" || raw == r.Header.Get("Authorization") {
			writeError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}
		tok, err := jwt.Parse(raw, func(*jwt.Token) (any, error) { return s.secret, nil },
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil || !tok.Valid {
			writeError(w, http.StatusUnauthorized, "invalid token")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PhoneNumber string `json:"phoneNumber"`
		Password    string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad request body")
		return
	}
	var staff staffRow
	if err := s.DB.Where("phone_number = ?", req.PhoneNumber).First(&staff).Error; err != nil {
		writeError(w, http.StatusUnauthorized, "invalid phone number or password")
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(staff.PasswordHash), []byte(req.Password)) != nil {
		writeError(w, http.StatusUnauthorized, "invalid phone number or password")
		return
	}
	claims := jwt.MapClaims{"sub": staff.ID, "exp": time.Now().Add(time.Hour).Unix()}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "token signing failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": map[string]any{
		"accessToken": token,
		"user":        model.User{ID: staff.ID, PhoneNumber: staff.PhoneNumber},
	}})
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req struct {
		PhoneNumber string `json:"phoneNumber"`
		Password    string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad request body")
		return
	}
	var staff staffRow
	if err := s.DB.First(&staff, "id = ?", id).Error; err != nil {
		writeError(w, http.StatusNotFound, "staff not found")
		return
	}
	if req.PhoneNumber != "" {
		staff.PhoneNumber = req.PhoneNumber
	}
	if req.Password != "" {
		hash, _ := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.MinCost)
		staff.PasswordHash = string(hash)
	}
	if err := s.DB.Save(&staff).Error; err != nil {
		writeError(w, http.StatusInternalServerError, "save failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": map[string]any{
		"user": model.User{ID: staff.ID, PhoneNumber: staff.PhoneNumber},
	}})
}

func (s *Server) handleList(resource string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		if page < 1 {
			page = 1
		}
		var total int64
		s.DB.Model(&record{}).Where("resource = ?", resource).Count(&total)
		totalPages := int((total + PageLimit - 1) / PageLimit)
		if totalPages < 1 {
			totalPages = 1
		}
		if page > totalPages {
			page = totalPages
		}
		var rows []record
		s.DB.Where("resource = ?", resource).
			Order("created_at DESC").Order("seq DESC").
			Offset((page - 1) * PageLimit).Limit(PageLimit).
			Find(&rows)
		data := make([]json.RawMessage, 0, len(rows))
		for _, row := range rows {
			data = append(data, json.RawMessage(row.Payload))
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"data": data,
			"meta": model.Meta{
				Total:      int(total),
				Page:       page,
				Limit:      PageLimit,
				TotalPages: totalPages,
			},
		})
	}
}

func (s *Server) handleGet(resource string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		row, ok := s.find(resource, chi.URLParam(r, "id"))
		if !ok {
			writeError(w, http.StatusNotFound, resource+" not found")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"data": json.RawMessage(row.Payload)})
	}
}

func (s *Server) handleCreate(resource string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if resource == "orders" {
			writeError(w, http.StatusMethodNotAllowed, "orders are created by the storefront")
			return
		}
		row := record{ID: uuid.NewString(), Resource: resource, CreatedAt: time.Now()}
		if err := s.DB.Create(&row).Error; err != nil {
			writeError(w, http.StatusInternalServerError, "create failed")
			return
		}
		payload, err := s.buildEntity(resource, &row, r, nil)
		if err != nil {
			s.DB.Delete(&row)
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		row.Payload = payload
		s.DB.Save(&row)
		writeJSON(w, http.StatusCreated, map[string]any{"data": json.RawMessage(payload)})
	}
}

func (s *Server) handlePatch(resource string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		row, ok := s.find(resource, chi.URLParam(r, "id"))
		if !ok {
			writeError(w, http.StatusNotFound, resource+" not found")
			return
		}
		payload, err := s.buildEntity(resource, &row, r, row.Payload)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		row.Payload = payload
		s.DB.Save(&row)
		writeJSON(w, http.StatusOK, map[string]any{"data": json.RawMessage(payload)})
	}
}

func (s *Server) handleDelete(resource string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if resource == "orders" {
			writeError(w, http.StatusMethodNotAllowed, "orders cannot be deleted")
			return
		}
		row, ok := s.find(resource, chi.URLParam(r, "id"))
		if !ok {
			writeError(w, http.StatusNotFound, resource+" not found")
			return
		}
		s.DB.Delete(&row)
		writeJSON(w, http.StatusOK, map[string]any{"data": true})
	}
}

// find matches either the row key or the numeric seq the entity exposes as
// its id (news, banners and products use numeric ids on the wire).
func (s *Server) find(resource, id string) (record, bool) {
	var row record
	err := s.DB.Where("resource = ? AND (id = ? OR seq = ?)", resource, id, id).First(&row).Error
	return row, err == nil
}

// storeUpload pretends to persist an uploaded file and returns its path.
func storeUpload(name string) string {
	ext := filepath.Ext(name)
	if ext == "" {
		ext = ".bin"
	}
	return "uploads/" + uuid.NewString() + ext
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}

func badField(name string) error { return fmt.Errorf("invalid field %q", name) }
