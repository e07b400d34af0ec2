// Package store persists the application's records. Every backend reports a
// missing record as ErrNotFound and a unique key violation as ErrDuplicate.
package store

import (
	"context"
	"errors"

	"bitwise74/social-api/internal/model"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)

type Users interface {
	Create(ctx context.Context, u *model.User) error
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	// Update overwrites every column of the stored record with u
	Update(ctx context.Context, u *model.User) error
	Delete(ctx context.Context, id string) error
}

type Relationships interface {
	Create(ctx context.Context, r *model.Relationship) error
	FindByUserID(ctx context.Context, userID string) (*model.Relationship, error)
	// Save persists all records together. SQL backends do it in one
	// transaction.
	Save(ctx context.Context, rs ...*model.Relationship) error
}

type Articles interface {
	Create(ctx context.Context, a *model.Article) error
	FindByID(ctx context.Context, id string) (*model.Article, error)
	List(ctx context.Context) ([]model.Article, error)
	ListByUser(ctx context.Context, userID string) ([]model.Article, error)
	Update(ctx context.Context, a *model.Article) error
	Delete(ctx context.Context, id string) error
}

type Comments interface {
	Create(ctx context.Context, c *model.Comment) error
	ListByArticle(ctx context.Context, articleID string) ([]model.Comment, error)
	Delete(ctx context.Context, id string) error
}

// Store bundles every collection of one backend
type Store struct {
	Users         Users
	Relationships Relationships
	Articles      Articles
	Comments      Comments

	close func(ctx context.Context) error
}

func (s *Store) Close(ctx context.Context) error {
	if s.close == nil {
		return nil
	}

	return s.close(ctx)
}
