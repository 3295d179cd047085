package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"visitor-registration/pkg/config"
	"visitor-registration/pkg/mocks"
	"visitor-registration/pkg/services"
)

const validBody = `{"visitorName":"张三","phone":"13812345678","visitPurpose":"面试","hostName":"李四","hostPhone":"13987654321"}`

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(client *mocks.MockFeishuClient, cfg *config.Config) *gin.Engine {
	svc := services.NewSubmissionService(client, cfg, zap.NewNop())
	return NewRouter(NewHandlers(svc, zap.NewNop()), zap.NewNop())
}

func configured() *config.Config {
	return &config.Config{
		FeishuAppID:      "cli_test",
		FeishuAppSecret:  "secret",
		FeishuAppToken:   "bascnApp",
		FeishuTableToken: "tblVisitors",
		VisitTimeOffset:  8 * time.Hour,
	}
}

func TestHandleVisitor(t *testing.T) {
	failingClient := mocks.NewMockFeishuClient()
	failingClient.CreateRecordFunc = func(ctx context.Context, token string, fields any) (json.RawMessage, error) {
		return nil, errors.New("network unreachable")
	}

	tests := []struct {
		name           string
		client         *mocks.MockFeishuClient
		cfg            *config.Config
		body           string
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "not configured",
			client:         mocks.NewMockFeishuClient(),
			cfg:            &config.Config{},
			body:           validBody,
			expectedStatus: http.StatusOK,
			expectedBody:   `{"success":true,"data":{"local":true},"feishu":null}`,
		},
		{
			name:           "record created",
			client:         mocks.NewMockFeishuClient(),
			cfg:            configured(),
			body:           validBody,
			expectedStatus: http.StatusOK,
			expectedBody:   `{"success":true,"data":{"local":true},"feishu":{"code":0,"msg":"success","data":{"record":{"record_id":"recMock"}}}}`,
		},
		{
			name:           "record creation failed",
			client:         failingClient,
			cfg:            configured(),
			body:           validBody,
			expectedStatus: http.StatusOK,
			expectedBody:   fmt.Sprintf(`{"success":true,"data":{"local":true},"feishu":{"error":%q}}`, services.MsgFeishuWriteError),
		},
		{
			name:           "malformed body",
			client:         mocks.NewMockFeishuClient(),
			cfg:            configured(),
			body:           `{"visitorName":`,
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   fmt.Sprintf(`{"success":false,"error":%q}`, services.MsgServerError),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(tt.client, tt.cfg)

			req := httptest.NewRequest(http.MethodPost, VisitorPath, strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
			assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
		})
	}
}

func TestHandleVisitor_RejectsOtherMethods(t *testing.T) {
	router := newTestRouter(mocks.NewMockFeishuClient(), &config.Config{})

	for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete, http.MethodPatch} {
		t.Run(method, func(t *testing.T) {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(method, VisitorPath, nil))

			assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
			assert.Equal(t, "Method not allowed", w.Body.String())
		})
	}
}

func TestHandleVisitor_Preflight(t *testing.T) {
	router := newTestRouter(mocks.NewMockFeishuClient(), &config.Config{})

	t.Run("cross origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, VisitorPath, nil)
		req.Header.Set("Origin", "https://visitor.example.com")
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Body.String())
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("no origin", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodOptions, VisitorPath, nil))

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Body.String())
		assert.Equal(t, "GET, HEAD, POST, OPTIONS", w.Header().Get("Access-Control-Allow-Methods"))
	})
}

func TestHealthCheck(t *testing.T) {
	router := newTestRouter(mocks.NewMockFeishuClient(), &config.Config{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestMetricsEndpoint(t *testing.T) {
	router := newTestRouter(mocks.NewMockFeishuClient(), &config.Config{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, VisitorPath, strings.NewReader(validBody)))
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "visitor_submissions_total")
}
