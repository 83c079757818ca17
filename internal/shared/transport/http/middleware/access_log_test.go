package middleware

import (
	nethttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"Stronghold/modules/kit/logx"
)

func observedEngine() (*gin.Engine, *observer.ObservedLogs) {
	gin.SetMode(gin.TestMode)
	core, recorded := observer.New(zapcore.DebugLevel)
	e := gin.New()
	e.Use(AccessLog(logx.NewZapLogger(zap.New(core)), "/healthz"))
	e.GET("/healthz", func(c *gin.Context) { c.JSON(nethttp.StatusOK, gin.H{"status": "ok"}) })
	e.GET("/stations/:kind", func(c *gin.Context) {
		if c.Param("kind") != "dining" {
			c.JSON(nethttp.StatusOK, gin.H{"code": 400, "msg": "没有这个驿站"})
			return
		}
		c.JSON(nethttp.StatusOK, gin.H{"code": 0, "data": gin.H{"kind": "dining"}})
	})
	return e, recorded
}

func TestAccessLog_驿站查询(t *testing.T) {
	e, recorded := observedEngine()

	e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(nethttp.MethodGet, "/stations/dining", nil))
	e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(nethttp.MethodGet, "/stations/sauna", nil))

	entries := recorded.FilterMessage("access").All()
	if len(entries) != 2 {
		t.Fatalf("期望 2 条访问日志 got=%d", len(entries))
	}
	ok := entries[0].ContextMap()
	if ok["action"] != "GET /stations/:kind" || ok["station"] != "dining" || ok["biz_code"] != int64(0) || ok["result"] != "success" {
		t.Fatalf("成功请求字段不对 %v", ok)
	}
	bad := entries[1].ContextMap()
	if bad["biz_code"] != int64(400) || bad["error_reason"] != "没有这个驿站" || bad["station"] != "sauna" {
		t.Fatalf("失败请求字段不对 %v", bad)
	}
	if entries[1].Level != zapcore.WarnLevel {
		t.Fatalf("业务拒绝应记 WARN got=%v", entries[1].Level)
	}
}

func TestAccessLog_探活不记(t *testing.T) {
	e, recorded := observedEngine()
	w := httptest.NewRecorder()
	e.ServeHTTP(w, httptest.NewRequest(nethttp.MethodGet, "/healthz", nil))
	if w.Code != nethttp.StatusOK || recorded.Len() != 0 {
		t.Fatalf("status=%d logs=%d", w.Code, recorded.Len())
	}
}
