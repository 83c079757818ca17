package interfaces

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"Stronghold/internal/shared/transport/ws"
	"Stronghold/internal/spectator/app"
	httphandler "Stronghold/internal/spectator/interfaces/handler/http"
	wshandler "Stronghold/internal/spectator/interfaces/handler/ws"
	"Stronghold/modules/kit/logx"
)

// Module 把观战的 HTTP 与 WS 路由挂到同一个 gin 引擎上。
type Module struct {
	svc *app.SpectatorService
	log logx.Logger
}

func New(svc *app.SpectatorService, log logx.Logger) *Module {
	return &Module{svc: svc, log: log}
}

func (m *Module) Register(group *gin.RouterGroup, router *ws.Router, wsServer *ws.Server) {
	httphandler.NewHttpHandler(m.svc, m.log).RegisterRoutes(group)
	wshandler.NewWsHandler(m.svc, m.log).RegisterRoutes(router)
	group.GET("/ws", gin.WrapH(wsServer))
	if m.log != nil {
		m.log.Info("spectator routes registered", zap.Strings("ws_routes", router.Routes()))
	}
}
