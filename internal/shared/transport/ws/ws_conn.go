package ws

type ReqBody struct {
	Seq  int64  `json:"seq"`
	Name string `json:"name"`
	Msg  any    `json:"msg"`
}

type RespBody struct {
	Seq  int64  `json:"seq"`
	Name string `json:"name"`
	Code int    `json:"code"`
	Msg  any    `json:"msg"`
}

type WsMsgReq struct {
	Body *ReqBody
	Conn WSConn
}

type WsMsgResp struct {
	Body *RespBody
}

// WSConn 是一个观战连接。
type WSConn interface {
	ID() string
	Addr() string
	Push(name string, data any) bool
	Close()
	// Done 在连接关闭时被关闭
	Done() <-chan struct{}
}

type Heartbeat struct {
	CTime int64 `json:"ctime"`
	STime int64 `json:"stime"`
}

const (
	HeartbeatMsg = "heartbeat"
	// NarrationMsg 服务端主动推送的对局叙述
	NarrationMsg = "match.narration"
)
