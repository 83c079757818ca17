package ws

import (
	"context"
	"net/http"

	"github.com/gorilla/websocket"
	cmap "github.com/orcaman/concurrent-map"
	"go.uber.org/zap"

	"Stronghold/modules/kit/logx"
	"Stronghold/modules/kit/tracex"
)

// Server 升级观战连接并维护在线连接表，同时充当叙述的广播出口。
type Server struct {
	router   *Router
	upgrader websocket.Upgrader
	conns    cmap.ConcurrentMap
	log      logx.Logger
}

func NewServer(r *Router, l logx.Logger) *Server {
	if l == nil {
		l = logx.Nop()
	}
	return &Server{
		router: r,
		upgrader: websocket.Upgrader{
			// 观战页面可能与服务不同源
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		conns: cmap.New(),
		log:   l,
	}
}

func (s *Server) ServeHTTP(resp http.ResponseWriter, req *http.Request) {
	wsConn, err := s.upgrader.Upgrade(resp, req, nil)
	if err != nil {
		s.log.Warn("websocket upgrade error", zap.Error(err))
		return
	}

	conn := NewWsServer(tracex.NewRequestID(), wsConn, s.log)
	conn.Router(s.router)
	s.conns.Set(conn.ID(), conn)
	s.log.Info("spectator connected", zap.String("conn", conn.ID()), zap.String("addr", conn.Addr()))

	conn.Run()
	go func() {
		<-conn.Done()
		s.conns.Remove(conn.ID())
		s.log.Info("spectator left", zap.String("conn", conn.ID()))
	}()
}

// Broadcast 推给所有在线连接，返回成功入队的数量。
func (s *Server) Broadcast(name string, data any) int {
	n := 0
	for item := range s.conns.IterBuffered() {
		if c, ok := item.Val.(WSConn); ok && c.Push(name, data) {
			n++
		}
	}
	return n
}

// Narrate 把对局叙述推给观战者。
func (s *Server) Narrate(ctx context.Context, line string) {
	_ = ctx
	s.Broadcast(NarrationMsg, line)
}

func (s *Server) Count() int {
	return s.conns.Count()
}

// Close 断开所有连接。
func (s *Server) Close() {
	for item := range s.conns.IterBuffered() {
		if c, ok := item.Val.(WSConn); ok {
			c.Close()
		}
	}
}
