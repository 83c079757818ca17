package file

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"

	"Stronghold/internal/match/entity"
)

const leaderboardHeader = "username;points;map"

// LeaderboardRepository 把每局结果追加到一份分号分隔的文本里。
type LeaderboardRepository struct {
	mu   sync.Mutex
	path string
}

func NewLeaderboardRepository(path string) *LeaderboardRepository {
	return &LeaderboardRepository{path: path}
}

func (r *LeaderboardRepository) Record(ctx context.Context, e entity.ScoreEntry) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()

	if dir := filepath.Dir(r.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return wrap(OpRecordScore, err)
		}
	}
	f, err := os.OpenFile(r.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return wrap(OpRecordScore, err)
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return wrap(OpRecordScore, err)
	}
	w := bufio.NewWriter(f)
	if st.Size() == 0 {
		fmt.Fprintln(w, leaderboardHeader)
	}
	fmt.Fprintf(w, "%s;%d;%s\n", e.Username, e.Points, e.Map)
	if err := w.Flush(); err != nil {
		return wrap(OpRecordScore, err)
	}
	return nil
}

// BestScores 每个玩家只留最高一局，按积分降序，同分按名字。
func (r *LeaderboardRepository) BestScores(ctx context.Context) ([]entity.ScoreEntry, error) {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()

	f, err := os.Open(r.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, wrap(OpBestScores, err)
	}
	defer f.Close()

	var rows []entity.ScoreEntry
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || line == leaderboardHeader {
			continue
		}
		parts := strings.Split(line, sep)
		if len(parts) < 2 {
			continue
		}
		pts, err := strconv.Atoi(strings.TrimSpace(parts[1]))
		if err != nil {
			continue
		}
		e := entity.ScoreEntry{Username: parts[0], Points: pts}
		if len(parts) > 2 {
			e.Map = parts[2]
		}
		rows = append(rows, e)
	}
	if err := sc.Err(); err != nil {
		return nil, wrap(OpBestScores, err)
	}
	return BestPerUser(rows), nil
}

// BestPerUser 对任意来源的成绩行做“每人最高分 + 降序”归并。
func BestPerUser(rows []entity.ScoreEntry) []entity.ScoreEntry {
	best := make(map[string]entity.ScoreEntry, len(rows))
	for _, e := range rows {
		if cur, ok := best[e.Username]; !ok || e.Points > cur.Points {
			best[e.Username] = e
		}
	}
	out := make([]entity.ScoreEntry, 0, len(best))
	for _, e := range best {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Points != out[j].Points {
			return out[i].Points > out[j].Points
		}
		return out[i].Username < out[j].Username
	})
	return out
}
