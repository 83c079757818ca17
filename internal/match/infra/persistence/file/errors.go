package file

import "Stronghold/modules/kit/errx"

const (
	OpLoadSave    = "repo.file.LoadMatch"
	OpSnapshot    = "repo.file.Snapshot"
	OpRecordScore = "repo.file.Record"
	OpBestScores  = "repo.file.BestScores"
	OpListMaps    = "repo.file.ListMaps"
	OpLoadMap     = "repo.file.LoadMap"
	OpSaveMap     = "repo.file.SaveMap"
)

// ErrBadName 玩家名或地图名含路径分隔符等不能当文件名的字符。
var ErrBadName = errx.ErrInvalidInput.WithData("field", "name")

func wrap(op string, err error) error {
	return errx.ErrUnavailable.WithCause(err).WithData("op", op)
}

func corrupt(op string, data map[string]any) error {
	return errx.ErrCorrupt.WithDataMap(data).WithData("op", op)
}
