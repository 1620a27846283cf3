package subscription_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/startuplab/landing-api/internal/handlers/subscription"
	"github.com/startuplab/landing-api/internal/models"
)

type mockService struct {
	subErr    error
	gotEmails []string
}

func (m *mockService) Subscribe(_ context.Context, email string) (models.Subscriber, error) {
	m.gotEmails = append(m.gotEmails, email)
	if m.subErr != nil {
		return models.Subscriber{}, m.subErr
	}
	return models.Subscriber{ID: "1", Email: email}, nil
}

func setupRouter(svc *mockService, verbose bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	h := subscription.NewHandler(svc, verbose)
	r.POST("/subscribe", h.Subscribe)
	r.POST("/api/subscribe", h.Subscribe)

	return r
}

func TestSubscribeEndpoint(t *testing.T) {
	cases := []struct {
		name      string
		path      string
		body      string
		mockErr   error
		wantCode  int
		wantBody  string
		wantCalls int
	}{
		{
			name:     "missing email field",
			path:     "/subscribe",
			body:     `{}`,
			wantCode: http.StatusBadRequest,
			wantBody: `{"success":false,"message":"Email is required"}`,
		},
		{
			name:     "email not a string",
			path:     "/subscribe",
			body:     `{"email": 123}`,
			wantCode: http.StatusBadRequest,
			wantBody: `{"success":false,"message":"Email is required"}`,
		},
		{
			name:     "malformed json",
			path:     "/subscribe",
			body:     `{"email": `,
			wantCode: http.StatusBadRequest,
			wantBody: `{"success":false,"message":"Email is required"}`,
		},
		{
			name:      "empty email",
			path:      "/subscribe",
			body:      `{"email": ""}`,
			mockErr:   models.ErrEmailRequired,
			wantCode:  http.StatusBadRequest,
			wantBody:  `{"success":false,"message":"Email is required"}`,
			wantCalls: 1,
		},
		{
			name:      "invalid format",
			path:      "/api/subscribe",
			body:      `{"email": "not-an-email"}`,
			mockErr:   models.ErrEmailFormat,
			wantCode:  http.StatusBadRequest,
			wantBody:  `{"success":false,"message":"Invalid email format"}`,
			wantCalls: 1,
		},
		{
			name:      "duplicate is a soft failure",
			path:      "/api/subscribe",
			body:      `{"email": "test@example.com"}`,
			mockErr:   models.ErrDuplicateEmail,
			wantCode:  http.StatusOK,
			wantBody:  `{"success":false,"code":"DUPLICATE_EMAIL","message":"Email already subscribed"}`,
			wantCalls: 1,
		},
		{
			name:      "storage unavailable",
			path:      "/subscribe",
			body:      `{"email": "test@example.com"}`,
			mockErr:   models.ErrStorageUnavailable,
			wantCode:  http.StatusInternalServerError,
			wantBody:  `{"success":false,"message":"Internal server error"}`,
			wantCalls: 1,
		},
		{
			name:      "success",
			path:      "/api/subscribe",
			body:      `{"email":"  Test@Example.COM "}`,
			wantCode:  http.StatusCreated,
			wantBody:  `{"success":true,"message":"Subscribed successfully"}`,
			wantCalls: 1,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mock := &mockService{subErr: tc.mockErr}
			router := setupRouter(mock, false)

			req := httptest.NewRequest(http.MethodPost, tc.path,
				strings.NewReader(tc.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, tc.wantCode, w.Code)
			assert.JSONEq(t, tc.wantBody, w.Body.String())
			assert.Len(t, mock.gotEmails, tc.wantCalls)
		})
	}
}

func TestSubscribePassesRawEmailThrough(t *testing.T) {
	// Normalization belongs to the service; the handler must not touch
	// the value.
	mock := &mockService{}
	router := setupRouter(mock, false)

	req := httptest.NewRequest(http.MethodPost, "/subscribe",
		strings.NewReader(`{"email":"  Test@Example.COM "}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, []string{"  Test@Example.COM "}, mock.gotEmails)
}

func TestSubscribeVerboseErrors(t *testing.T) {
	mock := &mockService{subErr: models.ErrStorageUnavailable}
	router := setupRouter(mock, true)

	req := httptest.NewRequest(http.MethodPost, "/subscribe",
		strings.NewReader(`{"email":"test@example.com"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "storage unavailable")
}
