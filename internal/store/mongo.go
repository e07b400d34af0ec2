package store

import (
	"context"
	"errors"
	"fmt"

	"bitwise74/social-api/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	usersCollection         = "users"
	relationshipsCollection = "friends"
	articlesCollection      = "articles"
	commentsCollection      = "comments"
)

// NewMongo returns a Store backed by db. EnsureIndexes should run once
// before the store is used so email and user id uniqueness is enforced.
func NewMongo(client *mongo.Client, db *mongo.Database) *Store {
	return &Store{
		Users:         &mongoUsers{c: db.Collection(usersCollection)},
		Relationships: &mongoRelationships{c: db.Collection(relationshipsCollection)},
		Articles:      &mongoArticles{c: db.Collection(articlesCollection)},
		Comments:      &mongoComments{c: db.Collection(commentsCollection)},
		close:         client.Disconnect,
	}
}

// EnsureIndexes creates the unique and lookup indexes the stores rely on
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := map[string][]mongo.IndexModel{
		usersCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		relationshipsCollection: {
			{Keys: bson.D{{Key: "userId", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		articlesCollection: {
			{Keys: bson.D{{Key: "userId", Value: 1}}},
		},
		commentsCollection: {
			{Keys: bson.D{{Key: "articleId", Value: 1}}},
		},
	}

	for coll, models := range indexes {
		if _, err := db.Collection(coll).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("failed to create indexes on %s, %w", coll, err)
		}
	}

	return nil
}

func mongoErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return fmt.Errorf("%w, %w", ErrDuplicate, err)
	default:
		return err
	}
}

func findOne[T any](ctx context.Context, c *mongo.Collection, filter bson.M) (*T, error) {
	var out T
	if err := c.FindOne(ctx, filter).Decode(&out); err != nil {
		return nil, mongoErr(err)
	}

	return &out, nil
}

func findMany[T any](ctx context.Context, c *mongo.Collection, filter bson.M) ([]T, error) {
	cur, err := c.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []T
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}

	return out, nil
}

func replaceByID(ctx context.Context, c *mongo.Collection, id string, doc any) error {
	r, err := c.ReplaceOne(ctx, bson.M{"_id": id}, doc)
	if err != nil {
		return mongoErr(err)
	}

	if r.MatchedCount == 0 {
		return ErrNotFound
	}

	return nil
}

func deleteOneByID(ctx context.Context, c *mongo.Collection, id string) error {
	r, err := c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}

	if r.DeletedCount == 0 {
		return ErrNotFound
	}

	return nil
}

type mongoUsers struct{ c *mongo.Collection }

func (s *mongoUsers) Create(ctx context.Context, u *model.User) error {
	_, err := s.c.InsertOne(ctx, u)
	return mongoErr(err)
}

func (s *mongoUsers) FindByID(ctx context.Context, id string) (*model.User, error) {
	return findOne[model.User](ctx, s.c, bson.M{"_id": id})
}

func (s *mongoUsers) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return findOne[model.User](ctx, s.c, bson.M{"email": email})
}

func (s *mongoUsers) List(ctx context.Context) ([]model.User, error) {
	return findMany[model.User](ctx, s.c, bson.M{})
}

func (s *mongoUsers) Update(ctx context.Context, u *model.User) error {
	return replaceByID(ctx, s.c, u.ID, u)
}

func (s *mongoUsers) Delete(ctx context.Context, id string) error {
	return deleteOneByID(ctx, s.c, id)
}

type mongoRelationships struct{ c *mongo.Collection }

func (s *mongoRelationships) Create(ctx context.Context, r *model.Relationship) error {
	_, err := s.c.InsertOne(ctx, r)
	return mongoErr(err)
}

func (s *mongoRelationships) FindByUserID(ctx context.Context, userID string) (*model.Relationship, error) {
	return findOne[model.Relationship](ctx, s.c, bson.M{"userId": userID})
}

// Save writes the records one after another. A failure part way through
// leaves the earlier records written.
func (s *mongoRelationships) Save(ctx context.Context, rs ...*model.Relationship) error {
	for _, r := range rs {
		_, err := s.c.ReplaceOne(ctx, bson.M{"_id": r.ID}, r, options.Replace().SetUpsert(true))
		if err != nil {
			return mongoErr(err)
		}
	}

	return nil
}

type mongoArticles struct{ c *mongo.Collection }

func (s *mongoArticles) Create(ctx context.Context, a *model.Article) error {
	_, err := s.c.InsertOne(ctx, a)
	return mongoErr(err)
}

func (s *mongoArticles) FindByID(ctx context.Context, id string) (*model.Article, error) {
	return findOne[model.Article](ctx, s.c, bson.M{"_id": id})
}

func (s *mongoArticles) List(ctx context.Context) ([]model.Article, error) {
	return findMany[model.Article](ctx, s.c, bson.M{})
}

func (s *mongoArticles) ListByUser(ctx context.Context, userID string) ([]model.Article, error) {
	return findMany[model.Article](ctx, s.c, bson.M{"userId": userID})
}

func (s *mongoArticles) Update(ctx context.Context, a *model.Article) error {
	return replaceByID(ctx, s.c, a.ID, a)
}

func (s *mongoArticles) Delete(ctx context.Context, id string) error {
	return deleteOneByID(ctx, s.c, id)
}

type mongoComments struct{ c *mongo.Collection }

func (s *mongoComments) Create(ctx context.Context, c *model.Comment) error {
	_, err := s.c.InsertOne(ctx, c)
	return mongoErr(err)
}

func (s *mongoComments) ListByArticle(ctx context.Context, articleID string) ([]model.Comment, error) {
	return findMany[model.Comment](ctx, s.c, bson.M{"articleId": articleID})
}

func (s *mongoComments) Delete(ctx context.Context, id string) error {
	return deleteOneByID(ctx, s.c, id)
}
