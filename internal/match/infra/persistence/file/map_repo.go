package file

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	world "Stronghold/internal/world/entity"
)

const mapExt = ".csv"

// MapRepository 地图是一份 10 行、每行 10 个分号分隔地形名的文件。
type MapRepository struct {
	dir string
}

func NewMapRepository(dir string) *MapRepository {
	return &MapRepository{dir: dir}
}

func (r *MapRepository) List(ctx context.Context) ([]string, error) {
	_ = ctx
	entries, err := os.ReadDir(r.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, wrap(OpListMaps, err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), mapExt) {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), mapExt))
	}
	sort.Strings(names)
	return names, nil
}

func (r *MapRepository) Load(ctx context.Context, name string) ([][]world.CellType, error) {
	_ = ctx
	if !validName(name) {
		return nil, ErrBadName.WithData("value", name)
	}
	f, err := os.Open(filepath.Join(r.dir, name+mapExt))
	if err != nil {
		return nil, wrap(OpLoadMap, err)
	}
	defer f.Close()

	cells := blankCells()
	y := 0
	sc := bufio.NewScanner(f)
	for sc.Scan() && y < world.Height {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		decodeRow(cells[y], strings.Split(line, sep))
		y++
	}
	if err := sc.Err(); err != nil {
		return nil, wrap(OpLoadMap, err)
	}
	if y < world.Height {
		return nil, corrupt(OpLoadMap, map[string]any{"map": name, "rows": y})
	}
	return cells, nil
}

func (r *MapRepository) Save(ctx context.Context, name string, cells [][]world.CellType) error {
	_ = ctx
	if !validName(name) {
		return ErrBadName.WithData("value", name)
	}
	var buf bytes.Buffer
	writeCells(&buf, cells)
	if err := writeAtomic(filepath.Join(r.dir, name+mapExt), buf.Bytes()); err != nil {
		return wrap(OpSaveMap, err)
	}
	return nil
}
