package service

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"bitwise74/social-api/internal/store"
	"bitwise74/social-api/internal/testutil"
	"bitwise74/social-api/pkg/security"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMailer struct {
	mu   sync.Mutex
	sent []MailMessage
	err  error
}

func (f *fakeMailer) Send(_ context.Context, m MailMessage) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.err != nil {
		return f.err
	}

	f.sent = append(f.sent, m)
	return nil
}

type fakeUploader struct {
	keys []string
	err  error
}

func (f *fakeUploader) Upload(_ context.Context, key, _ string, body io.Reader) (string, error) {
	if f.err != nil {
		return "", f.err
	}

	if _, err := io.ReadAll(body); err != nil {
		return "", err
	}

	f.keys = append(f.keys, key)
	return "https://cdn.test/" + key, nil
}

type env struct {
	store    *store.Store
	hasher   *security.ArgonHash
	tokens   *security.TokenIssuer
	mailer   *fakeMailer
	uploader *fakeUploader

	auth          *AuthService
	relationships *RelationshipService
	users         *UserService
	articles      *ArticleService
	comments      *CommentService
}

func newEnv(t *testing.T) *env {
	t.Helper()

	e := &env{
		store:    testutil.NewStore(t),
		hasher:   &security.ArgonHash{Memory: 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32},
		tokens:   security.NewTokenIssuer("test-secret", 24*time.Hour, 30*24*time.Hour),
		mailer:   &fakeMailer{},
		uploader: &fakeUploader{},
	}

	photos := NewPhotoService(e.uploader)
	e.relationships = NewRelationshipService(e.store.Relationships)
	e.auth = NewAuthService(e.store.Users, e.relationships, e.hasher, e.tokens, e.mailer, photos)
	e.users = NewUserService(e.store.Users, e.hasher, photos)
	e.articles = NewArticleService(e.store.Articles)
	e.comments = NewCommentService(e.store.Comments, e.articles)

	return e
}

// register creates an account and returns its id
func (e *env) register(t *testing.T, email string) string {
	t.Helper()

	res, err := e.auth.Registration(context.Background(), RegisterInput{
		Email:     email,
		Password:  "password1",
		FirstName: "First",
		LastName:  "Last",
	})
	require.NoError(t, err)

	return res.UserID
}

func assertKind(t *testing.T, err error, kind Kind, msg string) {
	t.Helper()

	var se *Error
	require.True(t, errors.As(err, &se), "expected *service.Error, got %v", err)
	assert.Equal(t, kind, se.Kind)
	if msg != "" {
		assert.Equal(t, msg, se.Message)
	}
}
