package ws

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func dial(t *testing.T, s *Server) *websocket.Conn {
	t.Helper()
	hs := httptest.NewServer(s)
	t.Cleanup(hs.Close)
	url := "ws" + strings.TrimPrefix(hs.URL, "http")
	c, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func waitConns(t *testing.T, s *Server, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for s.Count() != n {
		if time.Now().After(deadline) {
			t.Fatalf("连接数 want=%d got=%d", n, s.Count())
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestServer_心跳回包(t *testing.T) {
	s := NewServer(NewRouter(nil), nil)
	c := dial(t, s)

	if err := c.WriteJSON(ReqBody{Seq: 7, Name: HeartbeatMsg, Msg: map[string]any{"ctime": 1}}); err != nil {
		t.Fatalf("write: %v", err)
	}
	_ = c.SetReadDeadline(time.Now().Add(2 * time.Second))
	var resp RespBody
	if err := c.ReadJSON(&resp); err != nil {
		t.Fatalf("read: %v", err)
	}
	if resp.Seq != 7 || resp.Name != HeartbeatMsg {
		t.Fatalf("resp=%+v", resp)
	}
}

func TestServer_未知路由(t *testing.T) {
	r := NewRouter(nil)
	r.Group("match").Handle("state", func(ctx context.Context, req *WsMsgReq, resp *WsMsgResp) {
		resp.Body.Code = 0
		resp.Body.Msg = "ok"
	})
	c := dial(t, NewServer(r, nil))

	_ = c.WriteJSON(ReqBody{Seq: 1, Name: "match.nope"})
	_ = c.SetReadDeadline(time.Now().Add(2 * time.Second))
	var resp RespBody
	if err := c.ReadJSON(&resp); err != nil {
		t.Fatalf("read: %v", err)
	}
	if resp.Code == 0 {
		t.Fatalf("未知路由应返回错误码 resp=%+v", resp)
	}

	_ = c.WriteJSON(ReqBody{Seq: 2, Name: "match.state"})
	if err := c.ReadJSON(&resp); err != nil {
		t.Fatalf("read: %v", err)
	}
	if resp.Seq != 2 || resp.Code != 0 || resp.Msg != "ok" {
		t.Fatalf("resp=%+v", resp)
	}
}

func TestServer_广播叙述(t *testing.T) {
	s := NewServer(NewRouter(nil), nil)
	c := dial(t, s)
	waitConns(t, s, 1)

	s.Narrate(context.Background(), "alice recruits Spearman")
	_ = c.SetReadDeadline(time.Now().Add(2 * time.Second))
	var resp RespBody
	if err := c.ReadJSON(&resp); err != nil {
		t.Fatalf("read: %v", err)
	}
	if resp.Name != NarrationMsg || resp.Msg != "alice recruits Spearman" {
		t.Fatalf("resp=%+v", resp)
	}

	_ = c.Close()
	waitConns(t, s, 0)
}

func TestRouter_路由名解析(t *testing.T) {
	r := NewRouter(nil)
	noop := func(ctx context.Context, req *WsMsgReq, resp *WsMsgResp) { resp.Body.Code = 0 }
	r.Group("match").Handle("state", noop)
	r.Group("amenity").Handle("stations", noop)

	if got := strings.Join(r.Routes(), ","); got != "amenity.stations,match.state" {
		t.Fatalf("routes=%s", got)
	}
	for _, name := range []string{"match", "match.", ".state", "match.state.x", "nope.state"} {
		resp := &WsMsgResp{Body: &RespBody{}}
		r.Dispatch(&WsMsgReq{Body: &ReqBody{Name: name}}, resp)
		if resp.Body.Code == 0 {
			t.Fatalf("%q 应被拒绝", name)
		}
	}
	resp := &WsMsgResp{Body: &RespBody{}}
	r.Dispatch(&WsMsgReq{Body: &ReqBody{Name: "match.state"}}, resp)
	if resp.Body.Code != 0 {
		t.Fatalf("match.state 应成功 code=%d", resp.Body.Code)
	}
}
