package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"Stronghold/internal/shared/transport"
	"Stronghold/modules/kit/logx"
)

// 只缓存回包开头；超出的大回包解析不了，按 HTTP 状态码判定。
const maxCapturedBody = 4 << 10

type bodyCaptureWriter struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *bodyCaptureWriter) capture(data []byte) {
	if room := maxCapturedBody - w.body.Len(); room > 0 {
		w.body.Write(data[:min(room, len(data))])
	}
}

func (w *bodyCaptureWriter) Write(data []byte) (int, error) {
	w.capture(data)
	return w.ResponseWriter.Write(data)
}

func (w *bodyCaptureWriter) WriteString(s string) (int, error) {
	w.capture([]byte(s))
	return w.ResponseWriter.WriteString(s)
}

// AccessLog 给观战 HTTP 请求写访问日志。
// action 取 "方法 路由模板"；业务码与失败提示从回包 {"code","msg"} 里取，
// 路由带 :kind 时附上 station 字段。skip 里的路径（探活）不记。
func AccessLog(log logx.Logger, skip ...string) gin.HandlerFunc {
	skipped := make(map[string]struct{}, len(skip))
	for _, p := range skip {
		skipped[p] = struct{}{}
	}
	return func(c *gin.Context) {
		if _, ok := skipped[c.Request.URL.Path]; ok {
			c.Next()
			return
		}
		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}
		ctx := transport.NewContextWithParent(c.Request.Context(), c.Request.Method+" "+route)
		c.Request = c.Request.WithContext(ctx)

		bw := &bodyCaptureWriter{ResponseWriter: c.Writer}
		c.Writer = bw

		c.Next()

		if resp, ok := parseResp(bw.body.Bytes()); ok {
			transport.SetBizCode(ctx, transport.BizCode(resp.Code))
			if resp.Code != int(transport.OK) && transport.FromContext(ctx).ErrorReason == "" {
				transport.SetErrorReason(ctx, resp.Msg)
			}
		} else if c.Writer.Status() >= http.StatusBadRequest {
			transport.SetBizCode(ctx, transport.SystemError)
		} else {
			transport.SetBizCode(ctx, transport.OK)
		}

		fields := []zap.Field{
			zap.Int("status", c.Writer.Status()),
			zap.String("client_ip", c.ClientIP()),
		}
		if kind := c.Param("kind"); kind != "" {
			fields = append(fields, zap.String("station", kind))
		}
		transport.WriteAccessLog(ctx, log, fields...)
	}
}

type respHead struct {
	Code int
	Msg  string
}

func parseResp(body []byte) (respHead, bool) {
	if len(body) == 0 {
		return respHead{}, false
	}
	var payload struct {
		Code *int   `json:"code"`
		Msg  string `json:"msg"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || payload.Code == nil {
		return respHead{}, false
	}
	return respHead{Code: *payload.Code, Msg: payload.Msg}, true
}
