package http

import (
	"context"
	nethttp "net/http"
	"time"

	"github.com/gin-gonic/gin"

	"Stronghold/internal/shared/transport"
	"Stronghold/internal/shared/transport/http/middleware"
	"Stronghold/modules/kit/errx"
	"Stronghold/modules/kit/logx"
)

const HealthPath = "/healthz"

// HealthFunc 检查对局是否还在应答，返回 nil 表示健康。
type HealthFunc func(ctx context.Context) error

type ServerOptions struct {
	Addr   string
	Engine *gin.Engine
	Logger logx.Logger
	// Health 为空时 /healthz 只说明进程活着
	Health        HealthFunc
	HealthTimeout time.Duration
}

// Server 是观战用的 gin 服务。/healthz 经 Health 询问对局 actor，
// actor 不应答时回 503，便于外部探活发现卡死的对局。
type Server struct {
	engine *gin.Engine
	group  *gin.RouterGroup
	srv    *nethttp.Server
	log    logx.Logger
	health HealthFunc
	wait   time.Duration
}

func NewSpectatorServer(opts ServerOptions) *Server {
	engine := opts.Engine
	if engine == nil {
		engine = gin.New()
		engine.Use(gin.Recovery())
	}
	log := opts.Logger
	if log == nil {
		log = logx.Nop()
	}
	if opts.HealthTimeout <= 0 {
		opts.HealthTimeout = time.Second
	}
	s := &Server{
		engine: engine,
		log:    log,
		health: opts.Health,
		wait:   opts.HealthTimeout,
		srv: &nethttp.Server{
			Addr:              opts.Addr,
			Handler:           engine,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      15 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
	}
	engine.Use(middleware.Cors())
	engine.Use(middleware.AccessLog(log, HealthPath))
	engine.GET(HealthPath, s.healthz)
	s.group = engine.Group("")
	return s
}

func (s *Server) healthz(c *gin.Context) {
	if s.health == nil {
		c.JSON(nethttp.StatusOK, gin.H{"status": "ok"})
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), s.wait)
	defer cancel()
	if err := s.health(ctx); err != nil {
		logx.Failed(ctx, s.log, "spectator_healthz", err)
		c.JSON(nethttp.StatusServiceUnavailable, gin.H{
			"status": "match unresponsive",
			"code":   int(transport.CodeFromErr(err)),
			"reason": string(errx.CodeOf(err)),
		})
		return
	}
	c.JSON(nethttp.StatusOK, gin.H{"status": "ok"})
}

// Start 启动 HTTP 服务（阻塞）。关闭时会返回 net/http.ErrServerClosed。
func (s *Server) Start() error {
	return s.srv.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

// Group 返回观战路由挂载点。
func (s *Server) Group() *gin.RouterGroup {
	return s.group
}

func (s *Server) Handler() nethttp.Handler {
	return s.engine
}
