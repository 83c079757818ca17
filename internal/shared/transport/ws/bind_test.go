package ws

import (
	"errors"
	"testing"

	"Stronghold/modules/kit/errx"
)

type kindReq struct {
	Kind string `json:"kind"`
}

var errNoSauna = errors.New("no sauna")

func (r *kindReq) Validate() error {
	if r.Kind == "sauna" {
		return errNoSauna
	}
	return nil
}

func TestBindMsg(t *testing.T) {
	var in kindReq
	req := &WsMsgReq{Body: &ReqBody{Name: "amenity.stations", Msg: map[string]any{"kind": "dining"}}}
	if err := BindMsg(req, &in); err != nil || in.Kind != "dining" {
		t.Fatalf("kind=%q err=%v", in.Kind, err)
	}

	var empty kindReq
	if err := BindMsg(&WsMsgReq{Body: &ReqBody{Name: "amenity.stations"}}, &empty); err != nil || empty.Kind != "" {
		t.Fatalf("msg 缺省时应保持零值 kind=%q err=%v", empty.Kind, err)
	}

	err := BindMsg(&WsMsgReq{Body: &ReqBody{Name: "amenity.stations", Msg: map[string]any{"kind": 3}}}, &in)
	if !errors.Is(err, errx.ErrInvalidInput) {
		t.Fatalf("类型不符应返回 ErrInvalidInput got=%v", err)
	}
	var e *errx.Error
	if !errors.As(err, &e) || e.Data()["route"] != "amenity.stations" {
		t.Fatalf("错误应带路由名 got=%v", err)
	}

	if err := BindMsg(&WsMsgReq{Body: &ReqBody{Msg: map[string]any{"kind": "sauna"}}}, &in); !errors.Is(err, errNoSauna) {
		t.Fatalf("应执行 Validate got=%v", err)
	}
	if err := BindMsg(nil, &in); !errors.Is(err, errx.ErrInvalidInput) {
		t.Fatalf("空请求 got=%v", err)
	}
}
