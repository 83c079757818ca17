package ws

import (
	"context"
	"strings"

	"Stronghold/internal/amenity"
	"Stronghold/internal/shared/transport"
	"Stronghold/internal/shared/transport/ws"
	"Stronghold/internal/spectator/app"
	"Stronghold/internal/spectator/interfaces/handler"
	"Stronghold/modules/kit/logx"
)

type WsHandler struct {
	svc *app.SpectatorService
	log logx.Logger
}

func NewWsHandler(svc *app.SpectatorService, log logx.Logger) *WsHandler {
	if log == nil {
		log = logx.Nop()
	}
	return &WsHandler{svc: svc, log: log}
}

type stationReq struct {
	Kind string `json:"kind"`
}

func (r *stationReq) Validate() error {
	r.Kind = strings.ToLower(strings.TrimSpace(r.Kind))
	if r.Kind == "" {
		return nil
	}
	if _, ok := amenity.ParseKind(r.Kind); !ok {
		return app.ErrUnknownStation.WithData("station", r.Kind)
	}
	return nil
}

func (h *WsHandler) RegisterRoutes(r *ws.Router) {
	matchGroup := r.Group("match")
	matchGroup.Handle("state", h.State)

	amenityGroup := r.Group("amenity")
	amenityGroup.Handle("stations", h.Stations)

	boardGroup := r.Group("leaderboard")
	boardGroup.Handle("best", h.Leaderboard)
}

func (h *WsHandler) State(ctx context.Context, req *ws.WsMsgReq, resp *ws.WsMsgResp) {
	v, err := h.svc.State(ctx)
	h.reply(ctx, resp, "ws_match_state", v, err)
}

// Stations 带 kind 时只查一个驿站。
func (h *WsHandler) Stations(ctx context.Context, req *ws.WsMsgReq, resp *ws.WsMsgResp) {
	var in stationReq
	if err := ws.BindMsg(req, &in); err != nil {
		h.reply(ctx, resp, "ws_amenity_stations", nil, err)
		return
	}
	if in.Kind != "" {
		v, err := h.svc.Station(ctx, in.Kind)
		h.reply(ctx, resp, "ws_amenity_station", v, err)
		return
	}
	v, err := h.svc.Stations(ctx)
	h.reply(ctx, resp, "ws_amenity_stations", v, err)
}

func (h *WsHandler) Leaderboard(ctx context.Context, req *ws.WsMsgReq, resp *ws.WsMsgResp) {
	v, err := h.svc.Leaderboard(ctx)
	h.reply(ctx, resp, "ws_leaderboard_best", v, err)
}

func (h *WsHandler) reply(ctx context.Context, resp *ws.WsMsgResp, action string, data any, err error) {
	if err != nil {
		code, msg := handler.HandleError(ctx, h.log, action, err)
		h.fail(resp, code, msg)
		return
	}
	resp.Body.Code = int(transport.OK)
	resp.Body.Msg = data
}

func (h *WsHandler) fail(resp *ws.WsMsgResp, code transport.BizCode, msg string) {
	resp.Body.Code = int(code)
	resp.Body.Msg = msg
}
