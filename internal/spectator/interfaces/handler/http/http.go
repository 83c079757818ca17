package http

import (
	"context"
	nethttp "net/http"

	"github.com/gin-gonic/gin"

	"Stronghold/internal/shared/transport"
	"Stronghold/internal/spectator/app"
	"Stronghold/internal/spectator/interfaces/handler"
	"Stronghold/internal/spectator/interfaces/handler/http/dto"
	"Stronghold/modules/kit/logx"
)

type HttpHandler struct {
	svc *app.SpectatorService
	log logx.Logger
}

func NewHttpHandler(svc *app.SpectatorService, log logx.Logger) *HttpHandler {
	if log == nil {
		log = logx.Nop()
	}
	return &HttpHandler{svc: svc, log: log}
}

func (h *HttpHandler) RegisterRoutes(group *gin.RouterGroup) {
	group.GET("/state", h.State)
	group.GET("/stations", h.Stations)
	group.GET("/stations/:kind", h.Station)
	group.GET("/leaderboard", h.Leaderboard)
}

func (h *HttpHandler) State(c *gin.Context) {
	ctx := c.Request.Context()
	v, err := h.svc.State(ctx)
	if err != nil {
		h.error(ctx, c, "spectator_state", err)
		return
	}
	h.ok(c, v)
}

func (h *HttpHandler) Stations(c *gin.Context) {
	ctx := c.Request.Context()
	v, err := h.svc.Stations(ctx)
	if err != nil {
		h.error(ctx, c, "spectator_stations", err)
		return
	}
	h.ok(c, v)
}

func (h *HttpHandler) Station(c *gin.Context) {
	ctx := c.Request.Context()
	v, err := h.svc.Station(ctx, c.Param("kind"))
	if err != nil {
		h.error(ctx, c, "spectator_station", err)
		return
	}
	h.ok(c, v)
}

func (h *HttpHandler) Leaderboard(c *gin.Context) {
	ctx := c.Request.Context()
	rows, err := h.svc.Leaderboard(ctx)
	if err != nil {
		h.error(ctx, c, "spectator_leaderboard", err)
		return
	}
	h.ok(c, rows)
}

func (h *HttpHandler) ok(c *gin.Context, data any) {
	c.JSON(nethttp.StatusOK, dto.Success(data))
}

func (h *HttpHandler) fail(c *gin.Context, code transport.BizCode, msg string) {
	c.JSON(nethttp.StatusOK, dto.Error(code, msg))
}

func (h *HttpHandler) error(ctx context.Context, c *gin.Context, action string, err error) {
	code, msg := handler.HandleError(ctx, h.log, action, err)
	h.fail(c, code, msg)
}
