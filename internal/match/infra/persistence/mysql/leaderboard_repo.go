package mysql

import (
	"context"

	"Stronghold/internal/match/entity"
	"Stronghold/internal/match/infra/persistence/model"
	"Stronghold/modules/kit/errx"

	"gorm.io/gorm"
)

const (
	OpMigrate     = "repo.mysql.AutoMigrate"
	OpRecordScore = "repo.mysql.Record"
	OpBestScores  = "repo.mysql.BestScores"
)

type LeaderboardRepository struct {
	db *gorm.DB
}

func NewLeaderboardRepository(db *gorm.DB) *LeaderboardRepository {
	return &LeaderboardRepository{db: db}
}

// Migrate 建 rating 表。
func (r *LeaderboardRepository) Migrate(ctx context.Context) error {
	if err := r.db.WithContext(ctx).AutoMigrate(&model.Rating{}); err != nil {
		return errx.ErrUnavailable.WithCause(err).WithData("op", OpMigrate)
	}
	return nil
}

func (r *LeaderboardRepository) Record(ctx context.Context, e entity.ScoreEntry) error {
	row := model.Rating{Username: e.Username, Points: e.Points, Map: e.Map}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return errx.ErrUnavailable.WithCause(err).WithData("op", OpRecordScore)
	}
	return nil
}

// BestScores 每人取最高分那一行；同一最高分出现多次时地图取字典序最大的一张。
func (r *LeaderboardRepository) BestScores(ctx context.Context) ([]entity.ScoreEntry, error) {
	var rows []entity.ScoreEntry
	best := r.db.Model(&model.Rating{}).
		Select("username, MAX(points) AS points").
		Group("username")
	err := r.db.WithContext(ctx).
		Table("rating AS r").
		Select("r.username AS username, r.points AS points, MAX(r.map) AS map").
		Joins("JOIN (?) AS b ON b.username = r.username AND b.points = r.points", best).
		Group("r.username, r.points").
		Order("points DESC, username ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, errx.ErrUnavailable.WithCause(err).WithData("op", OpBestScores)
	}
	return rows, nil
}
