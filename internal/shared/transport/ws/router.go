package ws

import (
	"context"
	"sort"
	"strings"

	"Stronghold/internal/shared/logs"
	"Stronghold/internal/shared/transport"
	"Stronghold/modules/kit/logx"
)

type HandlerFunc func(ctx context.Context, req *WsMsgReq, resp *WsMsgResp)

// Router 按 "组.路由" 分发观战请求，例如 match.state。
// 路由只在启动时注册，之后只读。
type Router struct {
	routes map[string]HandlerFunc
	log    logx.Logger
}

type Group struct {
	r      *Router
	prefix string
}

func (g *Group) Handle(name string, h HandlerFunc) {
	g.r.routes[g.prefix+"."+name] = h
}

func NewRouter(l logx.Logger) *Router {
	if l == nil {
		l = logx.NewZapLogger(logs.Logger())
	}
	return &Router{routes: make(map[string]HandlerFunc), log: l}
}

func (r *Router) Group(prefix string) *Group {
	return &Group{r: r, prefix: prefix}
}

// Routes 返回已注册的完整路由名，按字典序。
func (r *Router) Routes() []string {
	out := make([]string, 0, len(r.routes))
	for name := range r.routes {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func (r *Router) Dispatch(req *WsMsgReq, resp *WsMsgResp) {
	action := "WS unknown"
	if req != nil && req.Body != nil {
		action = "WS " + req.Body.Name
	}
	ctx := transport.NewContext(action)
	defer r.finish(ctx, resp)

	if req == nil || req.Body == nil || resp == nil || resp.Body == nil {
		reject(resp, transport.InvalidParam, "参数有误")
		return
	}
	// handler 漏设 code 时按系统错误回
	resp.Body.Code = int(transport.SystemError)
	resp.Body.Msg = nil

	h, msg := r.lookup(req.Body.Name)
	if h == nil {
		reject(resp, transport.InvalidParam, msg)
		return
	}
	h(ctx, req, resp)
}

func (r *Router) lookup(name string) (HandlerFunc, string) {
	prefix, route, ok := strings.Cut(name, ".")
	if !ok || prefix == "" || route == "" || strings.Contains(route, ".") {
		return nil, "路由参数有误"
	}
	h := r.routes[name]
	if h == nil {
		return nil, "路由不存在"
	}
	return h, ""
}

func reject(resp *WsMsgResp, code transport.BizCode, msg string) {
	if resp == nil || resp.Body == nil {
		return
	}
	resp.Body.Code = int(code)
	resp.Body.Msg = msg
}

func (r *Router) finish(ctx context.Context, resp *WsMsgResp) {
	code := transport.SystemError
	if resp != nil && resp.Body != nil {
		code = transport.BizCode(resp.Body.Code)
	}
	transport.SetBizCode(ctx, code)
	transport.WriteAccessLog(ctx, r.log)
}
