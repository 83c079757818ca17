package http

import (
	"context"
	"encoding/json"
	nethttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"Stronghold/internal/amenity"
	"Stronghold/internal/match/entity"
	"Stronghold/internal/match/service"
	"Stronghold/internal/shared/transport"
	"Stronghold/internal/shared/utils"
	"Stronghold/internal/spectator/app"
	"Stronghold/modules/kit/errx"
)

type fakeMatch struct {
	view service.MatchView
	err  error
}

func (f *fakeMatch) State(ctx context.Context) (service.MatchView, error) { return f.view, f.err }

type fakeStations map[amenity.Kind]*amenity.Station

func (f fakeStations) Station(k amenity.Kind) (*amenity.Station, bool) {
	st, ok := f[k]
	return st, ok
}

type fakeScores []entity.ScoreEntry

func (f fakeScores) BestScores(ctx context.Context) ([]entity.ScoreEntry, error) { return f, nil }

type envelope struct {
	Code int             `json:"code"`
	Msg  string          `json:"msg"`
	Data json.RawMessage `json:"data"`
}

func newRouter(m *fakeMatch) *gin.Engine {
	gin.SetMode(gin.TestMode)
	ids := utils.MustSnowflake(1)
	stations := fakeStations{
		amenity.Lodging:  amenity.NewStation(amenity.Lodging, 0, ids),
		amenity.Grooming: amenity.NewStation(amenity.Grooming, 0, ids),
	}
	svc := app.NewSpectatorService(m, stations, fakeScores{{Username: "alice", Points: 40}})
	r := gin.New()
	NewHttpHandler(svc, nil).RegisterRoutes(r.Group(""))
	return r
}

func get(t *testing.T, r *gin.Engine, path string) envelope {
	t.Helper()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(nethttp.MethodGet, path, nil))
	if w.Code != nethttp.StatusOK {
		t.Fatalf("%s status=%d", path, w.Code)
	}
	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("%s body=%s err=%v", path, w.Body.String(), err)
	}
	return env
}

func TestHttpHandler_State(t *testing.T) {
	r := newRouter(&fakeMatch{view: service.MatchView{Player: "alice", Turn: 3}})
	env := get(t, r, "/state")
	var v service.MatchView
	_ = json.Unmarshal(env.Data, &v)
	if env.Code != 0 || v.Player != "alice" || v.Turn != 3 {
		t.Fatalf("env=%+v view=%+v", env, v)
	}
}

func TestHttpHandler_State超时(t *testing.T) {
	r := newRouter(&fakeMatch{err: errx.ErrTimeout})
	env := get(t, r, "/state")
	if env.Code != int(transport.Timeout) {
		t.Fatalf("超时应映射为 %d got=%d", transport.Timeout, env.Code)
	}
}

func TestHttpHandler_Stations(t *testing.T) {
	r := newRouter(&fakeMatch{})
	env := get(t, r, "/stations")
	var rows []app.StationView
	_ = json.Unmarshal(env.Data, &rows)
	if len(rows) != 2 || rows[0].Kind != "lodging" || rows[0].Capacity != 5 || rows[1].Capacity != 2 {
		t.Fatalf("rows=%+v", rows)
	}

	env = get(t, r, "/stations/dining")
	if env.Code != int(transport.InvalidParam) {
		t.Fatalf("未挂载的驿站应报参数错误 got=%+v", env)
	}
}

func TestHttpHandler_Leaderboard(t *testing.T) {
	r := newRouter(&fakeMatch{})
	env := get(t, r, "/leaderboard")
	var rows []entity.ScoreEntry
	_ = json.Unmarshal(env.Data, &rows)
	if len(rows) != 1 || rows[0].Username != "alice" || rows[0].Points != 40 {
		t.Fatalf("rows=%+v", rows)
	}
}
