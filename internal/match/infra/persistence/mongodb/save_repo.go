package mongodb

import (
	"context"
	"errors"
	"time"

	"Stronghold/internal/match/entity"
	"Stronghold/internal/match/infra/persistence/model"
	"Stronghold/modules/kit/errx"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const defaultCollectionName = "saves"

const (
	OpLoadSave = "repo.mongodb.LoadMatch"
	OpSnapshot = "repo.mongodb.Snapshot"
)

var errNilCollection = errors.New("mongodb saves collection is nil")

type SaveRepository struct {
	coll *mongo.Collection
}

func NewSaveRepository(db *mongo.Database) *SaveRepository {
	return &SaveRepository{
		coll: db.Collection(defaultCollectionName),
	}
}

func (r *SaveRepository) LoadMatch(ctx context.Context, player string) (entity.MatchState, error) {
	if r == nil || r.coll == nil {
		return entity.MatchState{}, errx.ErrUnavailable.WithCause(errNilCollection).WithData("op", OpLoadSave)
	}

	var doc model.SaveDoc
	err := r.coll.FindOne(ctx, bson.M{"_id": player}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return entity.MatchState{}, entity.ErrSaveNotFound.WithData("player", player)
	}
	if err != nil {
		return entity.MatchState{}, errx.ErrUnavailable.WithCause(err).WithData("op", OpLoadSave)
	}
	return model.SaveDocToState(doc), nil
}

func (r *SaveRepository) Snapshot(ctx context.Context, s *entity.MatchPersistSnapshot) error {
	if s == nil {
		return nil
	}
	if r == nil || r.coll == nil {
		return errx.ErrUnavailable.WithCause(errNilCollection).WithData("op", OpSnapshot)
	}

	doc := model.SnapshotToDoc(s, time.Now())
	_, err := r.coll.ReplaceOne(
		ctx,
		bson.M{"_id": doc.Player},
		doc,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return errx.ErrUnavailable.WithCause(err).WithData("op", OpSnapshot)
	}
	return nil
}
