package service

import (
	"context"
	"errors"
	"time"

	"bitwise74/social-api/internal/model"
	"bitwise74/social-api/internal/store"
	"bitwise74/social-api/pkg/util"
	"bitwise74/social-api/pkg/validators"
)

const (
	MsgSuccess        = "Success"
	MsgArticleDeleted = "Post successfully deleted"
)

type ArticleInput struct {
	Title      string `json:"title"`
	Content    string `json:"content"`
	UserID     string `json:"userId"`
	AuthorName string `json:"authorName"`
	Date       string `json:"date"`
}

type ArticleService struct {
	articles store.Articles
}

func NewArticleService(s store.Articles) *ArticleService {
	return &ArticleService{articles: s}
}

func (s *ArticleService) Create(ctx context.Context, in ArticleInput) (*model.Article, error) {
	missing := validators.MissingFields(
		validators.Field{Name: "title", Value: in.Title},
		validators.Field{Name: "content", Value: in.Content},
		validators.Field{Name: "userId", Value: in.UserID},
		validators.Field{Name: "authorName", Value: in.AuthorName},
	)
	if len(missing) > 0 {
		return nil, validationErr(validators.MissingMessage(missing))
	}

	id, err := util.NewID()
	if err != nil {
		return nil, internalErr("Failed to generate article ID", err)
	}

	now := time.Now()
	if in.Date == "" {
		in.Date = now.UTC().Format(time.RFC3339)
	}

	a := &model.Article{
		ID:         id,
		Title:      in.Title,
		Content:    in.Content,
		UserID:     in.UserID,
		AuthorName: in.AuthorName,
		Likes:      0,
		LikesUsers: model.StringSlice{},
		Date:       in.Date,
		CreatedAt:  now,
	}

	if err := s.articles.Create(ctx, a); err != nil {
		return nil, internalErr("Failed to create article", err)
	}

	return a, nil
}

func (s *ArticleService) List(ctx context.Context) ([]model.Article, error) {
	articles, err := s.articles.List(ctx)
	if err != nil {
		return nil, internalErr("Failed to fetch articles", err)
	}

	if len(articles) == 0 {
		return nil, notFoundErr("Post not found")
	}

	return articles, nil
}

func (s *ArticleService) Get(ctx context.Context, id string) (*model.Article, error) {
	return s.find(ctx, id, "Post not found")
}

func (s *ArticleService) ListByUser(ctx context.Context, userID string) ([]model.Article, error) {
	if !util.ValidID(userID) {
		return nil, validationErr("Invalid ID format")
	}

	articles, err := s.articles.ListByUser(ctx, userID)
	if err != nil {
		return nil, internalErr("Failed to fetch articles", err)
	}

	if len(articles) == 0 {
		return nil, notFoundErr("Post not found")
	}

	return articles, nil
}

// ToggleLike likes the article for userID, or takes the like back if they
// already liked it
func (s *ArticleService) ToggleLike(ctx context.Context, id, userID string) (*model.Article, error) {
	if userID == "" {
		return nil, validationErr(validators.MissingMessage([]string{"userId"}))
	}

	a, err := s.find(ctx, id, "Article not found")
	if err != nil {
		return nil, err
	}

	if a.LikesUsers.Has(userID) {
		a.LikesUsers = a.LikesUsers.Remove(userID)
	} else {
		a.LikesUsers = a.LikesUsers.Add(userID)
	}
	a.Likes = len(a.LikesUsers)

	if err := s.articles.Update(ctx, a); err != nil {
		return nil, internalErr("Failed to update article", err)
	}

	return a, nil
}

func (s *ArticleService) Delete(ctx context.Context, id string) error {
	if !util.ValidID(id) {
		return validationErr("Invalid ID format")
	}

	if err := s.articles.Delete(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return notFoundErr("Post not found")
		}

		return internalErr("Failed to delete article", err)
	}

	return nil
}

func (s *ArticleService) find(ctx context.Context, id, notFound string) (*model.Article, error) {
	if !util.ValidID(id) {
		return nil, validationErr("Invalid ID format")
	}

	a, err := s.articles.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, notFoundErr(notFound)
		}

		return nil, internalErr("Failed to fetch article", err)
	}

	if a.LikesUsers == nil {
		a.LikesUsers = model.StringSlice{}
	}

	return a, nil
}
