package internal

import (
	"bitwise74/social-api/config"
	"bitwise74/social-api/internal/service"
	"bitwise74/social-api/internal/store"
	"bitwise74/social-api/pkg/security"
)

type Deps struct {
	Config *config.Config
	Store  *store.Store
	Tokens *security.TokenIssuer

	Auth          *service.AuthService
	Relationships *service.RelationshipService
	Users         *service.UserService
	Articles      *service.ArticleService
	Comments      *service.CommentService
	Events        *service.EventsService
}

// NewDeps wires every service on top of s. uploader may be nil when object
// storage is disabled.
func NewDeps(cfg *config.Config, s *store.Store, mailer service.Mailer, uploader service.ObjectUploader) *Deps {
	return NewDepsWithHasher(cfg, s, mailer, uploader, security.New())
}

func NewDepsWithHasher(cfg *config.Config, s *store.Store, mailer service.Mailer, uploader service.ObjectUploader, hasher service.PasswordHasher) *Deps {
	tokens := security.NewTokenIssuer(cfg.JWT.Secret, cfg.JWT.AccessTTL, cfg.JWT.RefreshTTL)

	var photos *service.PhotoService
	if uploader != nil {
		photos = service.NewPhotoService(uploader)
	}

	relationships := service.NewRelationshipService(s.Relationships)
	articles := service.NewArticleService(s.Articles)

	return &Deps{
		Config:        cfg,
		Store:         s,
		Tokens:        tokens,
		Auth:          service.NewAuthService(s.Users, relationships, hasher, tokens, mailer, photos),
		Relationships: relationships,
		Users:         service.NewUserService(s.Users, hasher, photos),
		Articles:      articles,
		Comments:      service.NewCommentService(s.Comments, articles),
		Events:        service.NewEventsService(service.NewHub(), s.Users, cfg.Events.BroadcastInterval),
	}
}
