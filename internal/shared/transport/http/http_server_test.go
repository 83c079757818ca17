package http

import (
	"context"
	"encoding/json"
	nethttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"Stronghold/modules/kit/errx"
)

func TestSpectatorServer_Healthz(t *testing.T) {
	gin.SetMode(gin.TestMode)

	s := NewSpectatorServer(ServerOptions{Addr: ":0", Engine: gin.New()})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(nethttp.MethodGet, HealthPath, nil)
	s.Handler().ServeHTTP(w, req)

	if w.Code != nethttp.StatusOK {
		t.Fatalf("unexpected status code: got=%d want=%d", w.Code, nethttp.StatusOK)
	}
	if w.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Fatalf("缺少 CORS 头")
	}
}

func TestSpectatorServer_对局不应答时503(t *testing.T) {
	gin.SetMode(gin.TestMode)
	asked := 0
	s := NewSpectatorServer(ServerOptions{
		Addr:   ":0",
		Engine: gin.New(),
		Health: func(ctx context.Context) error {
			asked++
			if _, ok := ctx.Deadline(); !ok {
				t.Errorf("探活应带超时")
			}
			return errx.ErrTimeout
		},
	})

	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(nethttp.MethodGet, HealthPath, nil))
	if w.Code != nethttp.StatusServiceUnavailable || asked != 1 {
		t.Fatalf("status=%d asked=%d", w.Code, asked)
	}
	var body struct {
		Status string `json:"status"`
		Reason string `json:"reason"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("body=%s err=%v", w.Body.String(), err)
	}
	if body.Status != "match unresponsive" || body.Reason != string(errx.CodeTimeout) {
		t.Fatalf("body=%+v", body)
	}
}

func TestSpectatorServer_预检请求(t *testing.T) {
	gin.SetMode(gin.TestMode)
	s := NewSpectatorServer(ServerOptions{Addr: ":0", Engine: gin.New()})

	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(nethttp.MethodOptions, "/state", nil))
	if w.Code != nethttp.StatusNoContent {
		t.Fatalf("OPTIONS 应直接返回 204 got=%d", w.Code)
	}
}
