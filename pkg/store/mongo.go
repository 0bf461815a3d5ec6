package store

import (
	"context"
	stderrors "errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dragswitch/dragswitch/pkg/errors"
)

// Mongo defaults.
const (
	DefaultMongoDatabase   = "dragswitch"
	DefaultMongoCollection = "arrangements"
)

// MongoStore keeps one document per board, keyed by board id.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoStore connects to uri and uses the arrangements collection of
// database.
func NewMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, wrapErr(err, "connect mongo")
	}
	if database == "" {
		database = DefaultMongoDatabase
	}
	return &MongoStore{
		client: client,
		coll:   client.Database(database).Collection(DefaultMongoCollection),
	}, nil
}

func (s *MongoStore) Get(ctx context.Context, board string) (*Arrangement, error) {
	if err := errors.ValidateID(board); err != nil {
		return nil, err
	}
	var arr Arrangement
	err := s.coll.FindOne(ctx, bson.M{"_id": board}).Decode(&arr)
	if stderrors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, wrapErr(err, "mongo find %s", board)
	}
	return &arr, nil
}

func (s *MongoStore) Set(ctx context.Context, arr *Arrangement) error {
	if err := validate(arr); err != nil {
		return err
	}
	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": arr.Board}, arr, options.Replace().SetUpsert(true))
	if err != nil {
		return wrapErr(err, "mongo replace %s", arr.Board)
	}
	return nil
}

func (s *MongoStore) Delete(ctx context.Context, board string) error {
	if err := errors.ValidateID(board); err != nil {
		return err
	}
	if _, err := s.coll.DeleteOne(ctx, bson.M{"_id": board}); err != nil {
		return wrapErr(err, "mongo delete %s", board)
	}
	return nil
}

func (s *MongoStore) Close() error {
	return s.client.Disconnect(context.Background())
}

var _ Store = (*MongoStore)(nil)
