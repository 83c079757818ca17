package file

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"Stronghold/internal/match/entity"
)

// SaveRepository 每个玩家一份存档：<dir>/game.<player>.csv。
type SaveRepository struct {
	dir string
}

func NewSaveRepository(dir string) *SaveRepository {
	return &SaveRepository{dir: dir}
}

func (r *SaveRepository) path(player string) (string, error) {
	if !validName(player) {
		return "", ErrBadName.WithData("value", player)
	}
	return filepath.Join(r.dir, "game."+player+".csv"), nil
}

func (r *SaveRepository) LoadMatch(ctx context.Context, player string) (entity.MatchState, error) {
	_ = ctx
	p, err := r.path(player)
	if err != nil {
		return entity.MatchState{}, err
	}
	f, err := os.Open(p)
	if errors.Is(err, fs.ErrNotExist) {
		return entity.MatchState{}, entity.ErrSaveNotFound.WithData("player", player)
	}
	if err != nil {
		return entity.MatchState{}, wrap(OpLoadSave, err)
	}
	defer f.Close()

	s, err := DecodeSave(f)
	if err != nil {
		return entity.MatchState{}, err
	}
	if s.Player == "" {
		s.Player = player
	}
	return s, nil
}

// Snapshot 先写临时文件再 rename，写一半的存档不会覆盖旧档。
func (r *SaveRepository) Snapshot(ctx context.Context, s *entity.MatchPersistSnapshot) error {
	_ = ctx
	if s == nil {
		return nil
	}
	p, err := r.path(s.Player)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := EncodeSave(&buf, s.State); err != nil {
		return wrap(OpSnapshot, err)
	}
	if err := writeAtomic(p, buf.Bytes()); err != nil {
		return wrap(OpSnapshot, err)
	}
	return nil
}

func writeAtomic(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}

func validName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	return !strings.ContainsAny(name, `/\:`+"\x00")
}
