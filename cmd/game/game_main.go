package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"Stronghold/internal/amenity"
	matchactor "Stronghold/internal/match/actor"
	"Stronghold/internal/match/actors"
	"Stronghold/internal/match/entity"
	"Stronghold/internal/match/infra/persistence/file"
	"Stronghold/internal/shared/logs"
	"Stronghold/internal/shared/serverconfig"
	transporthttp "Stronghold/internal/shared/transport/http"
	"Stronghold/internal/shared/transport/ws"
	"Stronghold/internal/shared/utils"
	spectatorapp "Stronghold/internal/spectator/app"
	spectator "Stronghold/internal/spectator/interfaces"
	world "Stronghold/internal/world/entity"
	"Stronghold/modules/kit/logx"
	"Stronghold/modules/kit/tracex"
)

func main() {
	confPath := flag.String("config", "configs/conf.yml", "config file")
	flag.Parse()

	serverconfig.Load(*confPath, func() {
		logs.Info("config file changed, restart to apply", zap.String("path", *confPath))
	})
	conf := serverconfig.Conf
	if err := logs.Init("game", conf.Log); err != nil {
		panic(err)
	}
	defer logs.Sync()
	logs.Debug("conf", zap.Any("conf", conf))
	baseLogger := logx.NewZapLogger(logs.Logger())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := openStores(ctx, conf)
	if err != nil {
		logs.Fatal("open storage failed", zap.Error(err))
	}
	defer st.close()

	seed := conf.Game.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	dice := utils.NewDice(seed)

	out := newLockedWriter(os.Stdout)
	p := newPrompter(os.Stdin, out)
	player, err := askName(p, conf.Game.Player)
	if err != nil {
		return
	}
	showBestScores(ctx, p, st.leaderboard)
	maps := file.NewMapRepository(conf.Game.MapsDir)
	mapName, cells, err := presetMap(ctx, maps, conf.Game.Map)
	if err != nil {
		logs.Warn("preset map unusable", zap.String("map", conf.Game.Map), zap.Error(err))
	}
	if cells == nil {
		if mapName, cells, err = chooseMap(ctx, p, maps); err != nil {
			return
		}
	}
	grid := world.GenerateGrid(dice)
	if cells != nil {
		grid = gridFromCells(cells)
	}

	// 观战服务：叙述同时推给 ws 连接
	var (
		wsServer   *ws.Server
		httpServer *transporthttp.Server
		wsRouter   = ws.NewRouter(baseLogger)
		narrators  = multiNarrator{printNarrator{out: out}}
	)
	if conf.Spectator.Enabled {
		wsServer = ws.NewServer(wsRouter, baseLogger)
		narrators = append(narrators, wsServer)
	}
	var engineNarrator amenity.Narrator
	if wsServer != nil {
		engineNarrator = wsServer
	}

	m := entity.NewMatch(entity.MatchID(tracex.NewMatchID()), player, mapName, grid)
	rt := matchactor.NewRuntime(actors.Config{
		Match:       m,
		Dice:        dice,
		Saves:       st.saves,
		Leaderboard: st.leaderboard,
		FlushEvery:  conf.Game.FlushEvery,
		Narrator:    engineNarrator,
		Log:         baseLogger,
	}, conf.Game.AskTimeout)

	ids, err := utils.NewSnowflake(conf.Game.NodeID)
	if err != nil {
		logs.Fatal("snowflake init failed", zap.Error(err))
	}
	stations := map[amenity.Kind]*amenity.Station{
		amenity.Lodging:  amenity.NewStation(amenity.Lodging, conf.Amenity.Lodging.Capacity, ids),
		amenity.Dining:   amenity.NewStation(amenity.Dining, conf.Amenity.Dining.Capacity, ids),
		amenity.Grooming: amenity.NewStation(amenity.Grooming, conf.Amenity.Grooming.Capacity, ids),
	}
	concierge := amenity.NewConcierge(stations, rt, narrators, baseLogger, amenity.ConciergeConfig{
		FashionBonus: conf.Amenity.FashionBonus,
		WaitTimeout:  conf.Amenity.WaitTimeout,
	})
	pool := amenity.NewPool(
		[]*amenity.Station{stations[amenity.Lodging], stations[amenity.Dining], stations[amenity.Grooming]},
		amenity.PoolConfig{
			Size:    conf.Amenity.NPCCount,
			IdleMin: conf.Amenity.NPCIdleMin,
			IdleMax: conf.Amenity.NPCIdleMax,
			Durations: map[amenity.Kind][]time.Duration{
				amenity.Lodging:  conf.Amenity.Lodging.NPCDurations,
				amenity.Dining:   conf.Amenity.Dining.NPCDurations,
				amenity.Grooming: conf.Amenity.Grooming.NPCDurations,
			},
		},
		dice, baseLogger,
	)
	pool.Start(ctx)

	errCh := make(chan error, 1)
	if conf.Spectator.Enabled {
		addr := fmt.Sprintf("%s:%d", conf.Spectator.Host, conf.Spectator.Port)
		httpServer = transporthttp.NewSpectatorServer(transporthttp.ServerOptions{
			Addr:   addr,
			Logger: baseLogger,
			Health: func(ctx context.Context) error {
				_, err := rt.State(ctx)
				return err
			},
		})
		svc := spectatorapp.NewSpectatorService(rt, concierge, st.leaderboard)
		spectator.New(svc, baseLogger).Register(httpServer.Group(), wsRouter, wsServer)
		go func() {
			logs.Info("spectator server started", zap.String("addr", addr))
			if err := httpServer.Start(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
				errCh <- fmt.Errorf("spectator serve failed: %w", err)
			}
		}()
	}

	logs.Info("match started",
		zap.String("player", player),
		zap.String("map", mapName),
		zap.Int64("seed", seed),
		zap.String("saves", conf.Storage.Saves),
		zap.String("leaderboard", conf.Storage.Leaderboard),
	)

	doneCh := make(chan error, 1)
	go func() {
		c := &console{p: p, match: rt, desk: concierge}
		doneCh <- c.play(ctx)
	}()

	select {
	case <-ctx.Done():
		logs.Info("收到退出信号，准备优雅退出")
	case err := <-errCh:
		logs.Error("服务异常退出", zap.Error(err))
	case err := <-doneCh:
		if err != nil && !errors.Is(err, errInputClosed) && !errors.Is(err, context.Canceled) {
			logs.Error("console stopped", zap.Error(err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	stop()
	if err := pool.Stop(shutdownCtx); err != nil {
		logs.Warn("npc pool stop", zap.Error(err))
	}
	if err := concierge.Wait(shutdownCtx); err != nil {
		logs.Warn("amenity visits still running", zap.Error(err))
	}
	if httpServer != nil {
		_ = httpServer.Shutdown(shutdownCtx)
	}
	if wsServer != nil {
		wsServer.Close()
	}
	rt.Shutdown()
	logs.Info("game exited",
		zap.Int64("npc_visits", pool.Completed()),
		zap.Int64("npc_rejected", pool.Rejected()),
	)
}

func gridFromCells(cells [][]world.CellType) *world.Grid {
	g := world.NewGrid()
	for y, row := range cells {
		for x, c := range row {
			g.SetCell(x, y, c)
		}
	}
	return g
}

func presetMap(ctx context.Context, maps *file.MapRepository, name string) (string, [][]world.CellType, error) {
	if name == "" {
		return "", nil, nil
	}
	cells, err := maps.Load(ctx, name)
	if err != nil {
		return "", nil, err
	}
	return name, cells, nil
}
