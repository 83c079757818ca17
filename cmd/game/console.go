package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"Stronghold/internal/amenity"
	"Stronghold/internal/match/app/port"
	"Stronghold/internal/match/entity"
	"Stronghold/internal/match/service"
	world "Stronghold/internal/world/entity"
	"Stronghold/modules/kit/errx"
)

// errQuit 玩家在菜单里选择退出。
var errQuit = errors.New("player quit")

// matchClient 是控制台需要的对局操作，由 actor runtime 实现。
type matchClient interface {
	BeginTurn(ctx context.Context) (service.TurnStart, error)
	Act(ctx context.Context, cmd service.Command) (service.Report, error)
	ComputerTurn(ctx context.Context) (service.Report, error)
	Save(ctx context.Context) error
	Load(ctx context.Context) error
	State(ctx context.Context) (service.MatchView, error)
	DrunkardStart(ctx context.Context, bet int) error
	DrunkardReveal(ctx context.Context) (service.DrunkardRound, *service.DrunkardResult, error)
	DrunkardSurrender(ctx context.Context) (service.DrunkardResult, error)
}

type amenityDesk interface {
	Station(k amenity.Kind) (*amenity.Station, bool)
	Visit(ctx context.Context, k amenity.Kind, choice int) (amenity.VisitID, error)
	WaitAndVisit(ctx context.Context, k amenity.Kind, choice int) error
}

const (
	menuSave     = 7
	menuLoad     = 8
	menuLodging  = 9
	menuDining   = 10
	menuGrooming = 11
	menuLast     = menuGrooming
)

const turnMenu = `
1. Move units         2. Recruit       3. Skip turn
4. Attack             5. Build         6. Move and attack
7. Save game          8. Load game
9. Lodging            10. Dining       11. Grooming
0. Quit
your choice: `

type console struct {
	p     *prompter
	match matchClient
	desk  amenityDesk
}

// askName 空输入用配置里的默认名。
func askName(p *prompter, fallback string) (string, error) {
	p.printf("Welcome to Stronghold!\n")
	for {
		name, err := p.line(fmt.Sprintf("enter your name [%s]: ", fallback))
		if err != nil {
			return "", err
		}
		if name == "" {
			name = fallback
		}
		if err := entity.CheckPlayerName(name); err != nil {
			if errors.Is(err, entity.ErrReservedPlayerName) {
				p.printf("the name %q is taken by the computer\n", name)
			} else {
				p.printf("the name cannot contain ; / \\ or :\n")
			}
			continue
		}
		p.printf("Hello, %s!\n", name)
		return name, nil
	}
}

func showBestScores(ctx context.Context, p *prompter, board port.LeaderboardRepository) {
	rows, err := board.BestScores(ctx)
	if err != nil {
		p.printf("cannot read the leaderboard: %v\n", err)
		return
	}
	if len(rows) == 0 {
		p.printf("The leaderboard is empty.\n")
		return
	}
	p.printf("\nBest results:\n")
	for i, r := range rows {
		p.printf("%2d. %-16s %5d  %s\n", i+1, r.Username, r.Points, r.Map)
	}
}

// chooseMap 返回地图名与地形；两者都为空表示随机生成标准地图。
func chooseMap(ctx context.Context, p *prompter, maps port.MapRepository) (string, [][]world.CellType, error) {
	for {
		p.printf("\nMap menu:\n1. Choose a map\n2. Create a map\n3. Standard random map\n")
		choice, err := p.intIn("your choice: ", 1, 3)
		if err != nil {
			return "", nil, err
		}
		switch choice {
		case 1:
			name, cells, err := pickMap(ctx, p, maps)
			if err != nil {
				return "", nil, err
			}
			if cells != nil {
				p.printf("Map selected: %s\n", name)
				return name, cells, nil
			}
		case 2:
			if err := editMap(ctx, p, maps); err != nil {
				return "", nil, err
			}
		case 3:
			return "", nil, nil
		}
	}
}

func pickMap(ctx context.Context, p *prompter, maps port.MapRepository) (string, [][]world.CellType, error) {
	names, err := maps.List(ctx)
	if err != nil {
		p.printf("cannot list maps: %v\n", err)
		return "", nil, nil
	}
	if len(names) == 0 {
		p.printf("No maps yet.\n")
		return "", nil, nil
	}
	p.printf("\nAvailable maps:\n")
	for i, n := range names {
		p.printf("%d. %s\n", i+1, n)
	}
	choice, err := p.intIn("map number, or 0 to go back: ", 0, len(names))
	if err != nil || choice == 0 {
		return "", nil, err
	}
	name := names[choice-1]
	cells, err := maps.Load(ctx, name)
	if err != nil {
		p.printf("cannot load map %s: %v\n", name, err)
		return "", nil, nil
	}
	return name, cells, nil
}

var editorTiles = []world.CellType{world.Road, world.Obstacle, world.StrongholdHome, world.StrongholdEnemy}

// editMap 在全草地上逐格放置地形，选 5 保存退出。
func editMap(ctx context.Context, p *prompter, maps port.MapRepository) error {
	p.printf("\nMap editor\n")
	var name string
	for name == "" {
		s, err := p.line("map name: ")
		if err != nil {
			return err
		}
		name = s
	}
	g := world.NewGrid()
	for {
		p.printf("\n1. Add road\n2. Add obstacle\n3. Add your stronghold\n4. Add enemy stronghold\n5. Save and exit\n")
		choice, err := p.intIn("your choice: ", 1, 5)
		if err != nil {
			return err
		}
		if choice == 5 {
			if err := maps.Save(ctx, name, g.Rows()); err != nil {
				p.printf("cannot save map: %v\n", err)
			} else {
				p.printf("Map %s saved.\n", name)
			}
			return nil
		}
		pt, ok, err := p.point("coordinates x y: ")
		if err != nil {
			return err
		}
		if ok {
			g.SetCell(pt.X, pt.Y, editorTiles[choice-1])
			p.printf("cell (%d,%d) is now %s\n", pt.X, pt.Y, editorTiles[choice-1])
		}
		for _, row := range g.Render() {
			p.printf("%s\n", row)
		}
	}
}

// play 跑回合循环，直到对局结束、玩家退出或输入结束。
func (c *console) play(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		ts, err := c.match.BeginTurn(ctx)
		if err != nil {
			return err
		}
		if ts.Bonus != nil {
			c.p.printf("\n-- bonus turn --\n")
			c.report(*ts.Bonus)
		}
		if ts.Over {
			c.outcome(ctx, ts)
			return nil
		}
		if ts.Faction == world.Enemy {
			rep, err := c.match.ComputerTurn(ctx)
			if err != nil && !errx.IsBiz(err) {
				return err
			}
			c.p.printf("\n-- computer turn --\n")
			c.report(rep)
			continue
		}

		v, err := c.match.State(ctx)
		if err != nil {
			return err
		}
		c.render(v)
		if err := c.playerTurn(ctx, v); err != nil {
			if errors.Is(err, errQuit) {
				return nil
			}
			return err
		}
	}
}

func (c *console) playerTurn(ctx context.Context, v service.MatchView) error {
	for {
		choice, err := c.p.intIn(turnMenu, 0, menuLast)
		if err != nil {
			return err
		}
		switch choice {
		case 0:
			return errQuit
		case menuSave:
			if err := c.match.Save(ctx); err != nil {
				c.p.printf("save failed: %v\n", err)
			} else {
				c.p.printf("Game saved.\n")
			}
		case menuLoad:
			if err := c.match.Load(ctx); err != nil {
				c.p.printf("load failed: %v\n", err)
				continue
			}
			c.p.printf("Game loaded.\n")
			return nil
		case menuLodging:
			if err := c.visit(ctx, amenity.Lodging); err != nil {
				return err
			}
		case menuDining:
			if err := c.visit(ctx, amenity.Dining); err != nil {
				return err
			}
		case menuGrooming:
			if err := c.visit(ctx, amenity.Grooming); err != nil {
				return err
			}
		default:
			cmd, err := c.command(service.Action(choice), v)
			if err != nil {
				return err
			}
			rep, err := c.match.Act(ctx, cmd)
			if err != nil {
				c.p.printf("%v\n", err)
				return nil
			}
			c.report(rep)
			if rep.DrunkardOffered {
				return c.drunkard(ctx)
			}
			return nil
		}
	}
}

func (c *console) command(a service.Action, v service.MatchView) (service.Command, error) {
	cmd := service.Command{Action: a}
	switch a {
	case service.ActionMove, service.ActionAttack, service.ActionMoveAttack:
		for _, u := range v.Home.Units {
			o := service.Order{Stay: true, HoldFire: true}
			label := fmt.Sprintf("%s at (%d,%d)", u.Tier, u.X, u.Y)
			if a != service.ActionAttack {
				pt, ok, err := c.p.point(fmt.Sprintf("move %s to x y (empty to stay): ", label))
				if err != nil {
					return cmd, err
				}
				o.To, o.Stay = pt, !ok
			}
			if a != service.ActionMove {
				pt, ok, err := c.p.point(fmt.Sprintf("%s attacks x y (empty to hold fire): ", label))
				if err != nil {
					return cmd, err
				}
				o.Target, o.HoldFire = pt, !ok
			}
			cmd.Orders = append(cmd.Orders, o)
		}
	case service.ActionRecruit:
		tiers := world.AllTiers()
		for i, t := range tiers {
			pr := t.Profile()
			c.p.printf("%d. %-12s cost %3d  hp %3d  atk %2d  move %d  range %d  needs %s\n",
				i+1, pr.Name, pr.Cost, pr.HP, pr.Attack, pr.Movement, pr.AttackRange, world.RequiredStructure(t))
		}
		n, err := c.p.intIn("recruit which unit: ", 1, len(tiers))
		if err != nil {
			return cmd, err
		}
		cmd.Tier = tiers[n-1]
	case service.ActionBuild:
		structures := world.AllStructures()
		for i, s := range structures {
			c.p.printf("%d. %-14s cost %3d\n", i+1, s, s.Profile().Cost)
		}
		n, err := c.p.intIn("build which structure: ", 1, len(structures))
		if err != nil {
			return cmd, err
		}
		cmd.Structure = structures[n-1].String()
	}
	return cmd, nil
}

func (c *console) visit(ctx context.Context, k amenity.Kind) error {
	offers := amenity.Offers(k)
	c.p.printf("\n%s:\n", k)
	c.occupancy(k)
	for _, o := range offers {
		c.p.printf("%d. %s (%s)\n", o.Choice, o.Label, o.Duration)
	}
	choice, err := c.p.intIn("your choice, or 0 to go back: ", 0, len(offers))
	if err != nil || choice == 0 {
		return err
	}
	_, err = c.desk.Visit(ctx, k, choice)
	switch {
	case err == nil:
		c.p.printf("Your visit to the %s has started.\n", k)
	case errors.Is(err, amenity.ErrStationFull):
		wait, err := c.p.intIn(fmt.Sprintf("the %s is full. 1. wait for a free slot  2. give up: ", k), 1, 2)
		if err != nil {
			return err
		}
		if wait == 1 {
			if err := c.desk.WaitAndVisit(ctx, k, choice); err != nil {
				c.p.printf("%v\n", err)
			} else {
				c.p.printf("Waiting for a free slot at the %s.\n", k)
			}
		}
	default:
		c.p.printf("%v\n", err)
	}
	return nil
}

// occupancy 先取到访快照（住宿会顺带回收到期的房间），再打印空位。
func (c *console) occupancy(k amenity.Kind) {
	st, ok := c.desk.Station(k)
	if !ok {
		return
	}
	visits := st.ActiveVisits()
	stats := st.Stats()
	c.p.printf("free slots: %d/%d\n", stats.Available, stats.Capacity)
	for _, v := range visits {
		switch {
		case !v.Started:
			c.p.printf("  - %s (waiting)\n", v.Visitor)
		case v.Label != "":
			c.p.printf("  - %s, %s, %s left\n", v.Visitor, v.Label, v.Remaining.Round(time.Second))
		default:
			c.p.printf("  - %s, %s left\n", v.Visitor, v.Remaining.Round(time.Second))
		}
	}
}

// drunkard 建好酒馆后的翻牌小游戏，赌注 0 表示不玩。
func (c *console) drunkard(ctx context.Context) error {
	v, err := c.match.State(ctx)
	if err != nil {
		return err
	}
	if v.Home.Gold <= 0 {
		return c.match.DrunkardStart(ctx, 0)
	}
	c.p.printf("\nThe tavern keeper offers a game of Drunkard.\n")
	bet, err := c.p.intIn(fmt.Sprintf("your bet (1..%d, 0 to decline): ", v.Home.Gold), 0, v.Home.Gold)
	if err != nil {
		return err
	}
	if err := c.match.DrunkardStart(ctx, bet); err != nil || bet == 0 {
		return err
	}
	for {
		choice, err := c.p.intIn("1. reveal next card  2. surrender: ", 1, 2)
		if err != nil {
			return err
		}
		if choice == 2 {
			res, err := c.match.DrunkardSurrender(ctx)
			if err != nil {
				return err
			}
			c.drunkardResult(res)
			return nil
		}
		round, res, err := c.match.DrunkardReveal(ctx)
		if err != nil {
			return err
		}
		winner := "tie"
		switch round.Winner {
		case 1:
			winner = "you win the round"
		case -1:
			winner = "the computer wins the round"
		}
		c.p.printf("round %d: you %d vs computer %d, %s\n", round.Round, round.PlayerCard, round.ComputerCard, winner)
		if res != nil {
			c.drunkardResult(*res)
			return nil
		}
	}
}

func (c *console) drunkardResult(r service.DrunkardResult) {
	c.p.printf("Drunkard over after %d rounds: you %d, computer %d. Gold change %+d.\n",
		r.Rounds, r.PlayerWins, r.ComputerWins, r.Payout)
}

func (c *console) report(rep service.Report) {
	for _, l := range rep.Lines {
		c.p.printf("%s\n", l)
	}
}

func (c *console) render(v service.MatchView) {
	c.p.printf("\n== turn %d ==\n   ", v.Turn)
	for x := 0; x < world.Width; x++ {
		c.p.printf("%d", x)
	}
	c.p.printf("\n")
	for y, row := range v.Rows {
		c.p.printf("%2d %s\n", y, row)
	}
	for _, s := range []service.StrongholdView{v.Home, v.Enemy} {
		c.p.printf("%s: gold %d, score %d, steps %d, structures %s, occupation %d/%d\n",
			s.Owner, s.Gold, s.Score, s.Steps, strings.Join(s.Structures, ","), s.Occupation, s.CaptureTurns)
		for _, u := range s.Units {
			c.p.printf("   %s %s at (%d,%d) hp %d move %d\n", u.Glyph, u.Tier, u.X, u.Y, u.HP, u.Movement)
		}
	}
}

func (c *console) outcome(ctx context.Context, ts service.TurnStart) {
	c.p.printf("\n%s\n", ts.Reason)
	switch ts.Outcome {
	case entity.OutcomeVictory:
		c.p.printf("Victory!\n")
	case entity.OutcomeDefeat:
		c.p.printf("Defeat...\n")
	}
	if v, err := c.match.State(ctx); err == nil {
		c.p.printf("Final score: %d\n", v.Home.Score)
	}
}
