package store

import (
	"context"
	"errors"
	"fmt"

	"bitwise74/social-api/internal/model"

	"gorm.io/gorm"
)

// NewGorm returns a Store backed by db. db must be opened with
// TranslateError so unique violations surface as gorm.ErrDuplicatedKey.
func NewGorm(db *gorm.DB) *Store {
	return &Store{
		Users:         &gormUsers{db: db},
		Relationships: &gormRelationships{db: db},
		Articles:      &gormArticles{db: db},
		Comments:      &gormComments{db: db},
		close: func(context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}

			return sqlDB.Close()
		},
	}
}

func gormErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w, %w", ErrDuplicate, err)
	default:
		return err
	}
}

// deleteByID removes the row with id and reports ErrNotFound when there was none
func deleteByID[T any](ctx context.Context, db *gorm.DB, id string) error {
	var zero T

	r := db.WithContext(ctx).Where("id = ?", id).Delete(&zero)
	if r.Error != nil {
		return r.Error
	}

	if r.RowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

type gormUsers struct{ db *gorm.DB }

func (s *gormUsers) Create(ctx context.Context, u *model.User) error {
	return gormErr(s.db.WithContext(ctx).Create(u).Error)
}

func (s *gormUsers) FindByID(ctx context.Context, id string) (*model.User, error) {
	var u model.User
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		return nil, gormErr(err)
	}

	return &u, nil
}

func (s *gormUsers) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var u model.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		return nil, gormErr(err)
	}

	return &u, nil
}

func (s *gormUsers) List(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := s.db.WithContext(ctx).Order("created_at").Find(&users).Error; err != nil {
		return nil, err
	}

	return users, nil
}

func (s *gormUsers) Update(ctx context.Context, u *model.User) error {
	r := s.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", u.ID).
		Select("*").Omit("id", "created_at").Updates(u)
	if r.Error != nil {
		return gormErr(r.Error)
	}

	if r.RowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

func (s *gormUsers) Delete(ctx context.Context, id string) error {
	return deleteByID[model.User](ctx, s.db, id)
}

type gormRelationships struct{ db *gorm.DB }

func (s *gormRelationships) Create(ctx context.Context, r *model.Relationship) error {
	return gormErr(s.db.WithContext(ctx).Create(r).Error)
}

func (s *gormRelationships) FindByUserID(ctx context.Context, userID string) (*model.Relationship, error) {
	var r model.Relationship
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&r).Error; err != nil {
		return nil, gormErr(err)
	}

	return &r, nil
}

func (s *gormRelationships) Save(ctx context.Context, rs ...*model.Relationship) error {
	return gormErr(s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, r := range rs {
			if err := tx.Save(r).Error; err != nil {
				return err
			}
		}

		return nil
	}))
}

type gormArticles struct{ db *gorm.DB }

func (s *gormArticles) Create(ctx context.Context, a *model.Article) error {
	return gormErr(s.db.WithContext(ctx).Create(a).Error)
}

func (s *gormArticles) FindByID(ctx context.Context, id string) (*model.Article, error) {
	var a model.Article
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&a).Error; err != nil {
		return nil, gormErr(err)
	}

	return &a, nil
}

func (s *gormArticles) List(ctx context.Context) ([]model.Article, error) {
	var articles []model.Article
	if err := s.db.WithContext(ctx).Order("created_at").Find(&articles).Error; err != nil {
		return nil, err
	}

	return articles, nil
}

func (s *gormArticles) ListByUser(ctx context.Context, userID string) ([]model.Article, error) {
	var articles []model.Article
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at").Find(&articles).Error; err != nil {
		return nil, err
	}

	return articles, nil
}

func (s *gormArticles) Update(ctx context.Context, a *model.Article) error {
	r := s.db.WithContext(ctx).Model(&model.Article{}).Where("id = ?", a.ID).
		Select("*").Omit("id", "created_at").Updates(a)
	if r.Error != nil {
		return gormErr(r.Error)
	}

	if r.RowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

func (s *gormArticles) Delete(ctx context.Context, id string) error {
	return deleteByID[model.Article](ctx, s.db, id)
}

type gormComments struct{ db *gorm.DB }

func (s *gormComments) Create(ctx context.Context, c *model.Comment) error {
	return gormErr(s.db.WithContext(ctx).Create(c).Error)
}

func (s *gormComments) ListByArticle(ctx context.Context, articleID string) ([]model.Comment, error) {
	var comments []model.Comment
	if err := s.db.WithContext(ctx).Where("article_id = ?", articleID).Order("created_at").Find(&comments).Error; err != nil {
		return nil, err
	}

	return comments, nil
}

func (s *gormComments) Delete(ctx context.Context, id string) error {
	return deleteByID[model.Comment](ctx, s.db, id)
}
