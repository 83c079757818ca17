package ws

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"Stronghold/modules/kit/logx"
)

const (
	outQueueSize = 256
	writeWait    = 5 * time.Second
	pongWait     = 60 * time.Second
	pingPeriod   = pongWait * 9 / 10
	maxReadBytes = 4096
)

// WsServer 是一个观战连接：读协程分发请求，写协程独占底层连接。
type WsServer struct {
	id        string
	conn      *websocket.Conn
	router    *Router
	outChan   chan *WsMsgResp
	done      chan struct{}
	closeOnce sync.Once
	log       logx.Logger
}

func NewWsServer(id string, wsConn *websocket.Conn, l logx.Logger) *WsServer {
	if l == nil {
		l = logx.Nop()
	}
	return &WsServer{
		id:      id,
		conn:    wsConn,
		outChan: make(chan *WsMsgResp, outQueueSize),
		done:    make(chan struct{}),
		log:     l,
	}
}

func (s *WsServer) Router(router *Router) {
	s.router = router
}

func (s *WsServer) ID() string { return s.id }

func (s *WsServer) Addr() string {
	return s.conn.RemoteAddr().String()
}

// Push 不阻塞；慢连接的队列满了就丢这一条。
func (s *WsServer) Push(name string, data any) bool {
	return s.enqueue(&WsMsgResp{Body: &RespBody{Name: name, Msg: data}})
}

func (s *WsServer) enqueue(msg *WsMsgResp) bool {
	select {
	case <-s.done:
		return false
	default:
	}
	select {
	case s.outChan <- msg:
		return true
	default:
		s.log.Warn("ws_server out queue full", zap.String("conn", s.id), zap.String("name", msg.Body.Name))
		return false
	}
}

func (s *WsServer) Run() {
	go s.readMsgLoop()
	go s.writeMsgLoop()
}

func (s *WsServer) readMsgLoop() {
	defer func() {
		if err := recover(); err != nil {
			s.log.Error("ws readMsgLoop panic", zap.String("err", fmt.Sprintf("%v", err)))
		}
		s.Close()
	}()
	s.conn.SetReadLimit(maxReadBytes)
	_ = s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.log.Warn("ws_server read msg", zap.String("conn", s.id), zap.Error(err))
			}
			return
		}

		reqBody := ReqBody{}
		if err := json.Unmarshal(data, &reqBody); err != nil {
			s.log.Warn("ws_server unmarshal json error", zap.String("conn", s.id), zap.Error(err))
			continue
		}

		req := WsMsgReq{Body: &reqBody, Conn: s}
		// req 和 resp 的 Seq 必须一致
		resp := WsMsgResp{Body: &RespBody{Seq: reqBody.Seq, Name: reqBody.Name}}
		if reqBody.Name == HeartbeatMsg {
			h := &Heartbeat{}
			_ = mapstructure.Decode(reqBody.Msg, h)
			h.STime = time.Now().UnixMilli()
			resp.Body.Msg = h
		} else if s.router != nil {
			s.router.Dispatch(&req, &resp)
		}
		s.enqueue(&resp)
	}
}

func (s *WsServer) writeMsgLoop() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		s.Close()
	}()
	for {
		select {
		case msg := <-s.outChan:
			if err := s.write(msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-s.done:
			return
		}
	}
}

func (s *WsServer) Close() {
	s.closeOnce.Do(func() {
		close(s.done)
		_ = s.conn.Close()
	})
}

func (s *WsServer) Done() <-chan struct{} {
	return s.done
}

func (s *WsServer) write(msg *WsMsgResp) error {
	raw, err := json.Marshal(msg.Body)
	if err != nil {
		s.log.Error("ws_server write marshal json error", zap.Error(err))
		return nil
	}
	_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := s.conn.WriteMessage(websocket.TextMessage, raw); err != nil {
		s.log.Warn("ws_server write error", zap.String("conn", s.id), zap.Error(err))
		return err
	}
	return nil
}
