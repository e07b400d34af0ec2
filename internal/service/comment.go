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

const MsgCommentDeleted = "Comment successfully deleted"

type CommentInput struct {
	Text      string `json:"text"`
	ArticleID string `json:"articleId"`
	UserID    string `json:"userId"`
	Date      string `json:"date"`
}

type CommentService struct {
	comments store.Comments
	articles *ArticleService
}

func NewCommentService(s store.Comments, a *ArticleService) *CommentService {
	return &CommentService{comments: s, articles: a}
}

func (s *CommentService) Add(ctx context.Context, in CommentInput) (*model.Comment, error) {
	missing := validators.MissingFields(
		validators.Field{Name: "text", Value: in.Text},
		validators.Field{Name: "articleId", Value: in.ArticleID},
		validators.Field{Name: "userId", Value: in.UserID},
	)
	if len(missing) > 0 {
		return nil, validationErr(validators.MissingMessage(missing))
	}

	if _, err := s.articles.Get(ctx, in.ArticleID); err != nil {
		return nil, err
	}

	id, err := util.NewID()
	if err != nil {
		return nil, internalErr("Failed to generate comment ID", err)
	}

	now := time.Now()
	if in.Date == "" {
		in.Date = now.UTC().Format(time.RFC3339)
	}

	c := &model.Comment{
		ID:        id,
		Text:      in.Text,
		ArticleID: in.ArticleID,
		UserID:    in.UserID,
		Date:      in.Date,
		CreatedAt: now,
	}

	if err := s.comments.Create(ctx, c); err != nil {
		return nil, internalErr("Failed to create comment", err)
	}

	return c, nil
}

// ForArticle lists the comments of an existing article, oldest first
func (s *CommentService) ForArticle(ctx context.Context, articleID string) ([]model.Comment, error) {
	if _, err := s.articles.Get(ctx, articleID); err != nil {
		return nil, err
	}

	comments, err := s.comments.ListByArticle(ctx, articleID)
	if err != nil {
		return nil, internalErr("Failed to fetch comments", err)
	}

	if comments == nil {
		comments = []model.Comment{}
	}

	return comments, nil
}

func (s *CommentService) Delete(ctx context.Context, id string) error {
	if !util.ValidID(id) {
		return validationErr("Invalid ID format")
	}

	if err := s.comments.Delete(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return notFoundErr("Comment not found")
		}

		return internalErr("Failed to delete comment", err)
	}

	return nil
}
