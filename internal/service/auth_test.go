package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"bitwise74/social-api/internal/model"
	"bitwise74/social-api/internal/store"
	"bitwise74/social-api/pkg/security"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistration(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)

	res, err := e.auth.Registration(ctx, RegisterInput{
		Email:     "ann@x.io",
		Password:  "password1",
		FirstName: "Ann",
		LastName:  "Lee",
		Phone:     "555",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, res.UserID)
	assert.NotEmpty(t, res.Token)
	assert.NotEmpty(t, res.RefreshToken)

	user, err := e.store.Users.FindByID(ctx, res.UserID)
	require.NoError(t, err)
	assert.Equal(t, "555", user.Phone)
	assert.NotEqual(t, "password1", user.PasswordHash)

	rel, err := e.store.Relationships.FindByUserID(ctx, res.UserID)
	require.NoError(t, err)
	assert.Equal(t, rel.ID, user.Friends)
	assert.Empty(t, rel.Accepted)
	assert.Empty(t, rel.Requested)
}

func TestRegistrationDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)

	e.register(t, "ann@x.io")

	_, err := e.auth.Registration(ctx, RegisterInput{
		Email: "ann@x.io", Password: "other", FirstName: "A", LastName: "B",
	})
	assertKind(t, err, KindConflict, "This user already exists")

	users, err := e.store.Users.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestRegistrationMissingFields(t *testing.T) {
	e := newEnv(t)

	_, err := e.auth.Registration(context.Background(), RegisterInput{Email: "ann@x.io", FirstName: "Ann"})
	assertKind(t, err, KindValidation, "Missing fields: password, lastName")

	_, err = e.auth.Registration(context.Background(), RegisterInput{
		Email: "not-an-email", Password: "p", FirstName: "A", LastName: "B",
	})
	assertKind(t, err, KindValidation, "")
}

type failingRelationships struct{ store.Relationships }

func (failingRelationships) Create(context.Context, *model.Relationship) error {
	return errors.New("disk on fire")
}

func TestRegistrationRollsBackUser(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)

	rel := NewRelationshipService(failingRelationships{e.store.Relationships})
	auth := NewAuthService(e.store.Users, rel, e.hasher, e.tokens, e.mailer, nil)

	_, err := auth.Registration(ctx, RegisterInput{
		Email: "ann@x.io", Password: "p", FirstName: "A", LastName: "B",
	})
	assertKind(t, err, KindInternal, "")

	_, err = e.store.Users.FindByEmail(ctx, "ann@x.io")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

// racingUsers hides existing accounts from the pre-check so Create is the
// one that sees the duplicate
type racingUsers struct{ store.Users }

func (racingUsers) FindByEmail(context.Context, string) (*model.User, error) {
	return nil, store.ErrNotFound
}

func TestRegistrationPhoto(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)

	res, err := e.auth.Registration(ctx, RegisterInput{
		Email: "ann@x.io", Password: "p", FirstName: "A", LastName: "B",
		Photo: "data:image/png;base64," + pngPixel,
	})
	require.NoError(t, err)
	require.Len(t, e.uploader.keys, 1)
	assert.True(t, strings.HasPrefix(e.uploader.keys[0], "users-app/"+res.UserID+"/"))

	user, err := e.store.Users.FindByID(ctx, res.UserID)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.test/"+e.uploader.keys[0], user.Photo)
	assert.NotEmpty(t, user.Friends)
}

func TestRegistrationDuplicateSkipsUpload(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	e.register(t, "ann@x.io")

	auth := NewAuthService(racingUsers{e.store.Users}, e.relationships, e.hasher, e.tokens, e.mailer, NewPhotoService(e.uploader))

	_, err := auth.Registration(ctx, RegisterInput{
		Email: "ann@x.io", Password: "p", FirstName: "A", LastName: "B",
		Photo: "data:image/png;base64," + pngPixel,
	})
	assertKind(t, err, KindConflict, "This user already exists")
	assert.Empty(t, e.uploader.keys)
}

func TestRegistrationBadPhotoRemovesUser(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)

	_, err := e.auth.Registration(ctx, RegisterInput{
		Email: "ann@x.io", Password: "p", FirstName: "A", LastName: "B",
		Photo: "data:text/plain;base64,aGVsbG8gd29ybGQ=",
	})
	assertKind(t, err, KindValidation, "Photo must be an image")

	_, err = e.store.Users.FindByEmail(ctx, "ann@x.io")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	id := e.register(t, "ann@x.io")

	res, err := e.auth.Login(ctx, "ann@x.io", "password1")
	require.NoError(t, err)
	assert.Equal(t, id, res.UserID)

	claims, err := e.tokens.Verify(res.Token)
	require.NoError(t, err)
	assert.Equal(t, "ann@x.io", claims.Email)
	assert.Equal(t, id, claims.UserID)

	_, err = e.auth.Login(ctx, "ann@x.io", "wrong")
	assertKind(t, err, KindAuth, "Incorrect password")

	_, err = e.auth.Login(ctx, "bob@x.io", "password1")
	assertKind(t, err, KindAuth, "Incorrect email")

	_, err = e.auth.Login(ctx, "", "")
	assertKind(t, err, KindValidation, "Missing fields: email, password")

	_, err = e.auth.Login(ctx, "ann@x.io", "")
	assertKind(t, err, KindValidation, "Missing fields: password")
}

func TestRefreshToken(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	id := e.register(t, "ann@x.io")

	login, err := e.auth.Login(ctx, "ann@x.io", "password1")
	require.NoError(t, err)

	res, err := e.auth.RefreshToken(ctx, login.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, id, res.UserID)

	// the old refresh token keeps working
	_, err = e.auth.RefreshToken(ctx, login.RefreshToken)
	require.NoError(t, err)

	_, err = e.auth.RefreshToken(ctx, "")
	assertKind(t, err, KindValidation, "Refresh token is missing")

	_, err = e.auth.RefreshToken(ctx, "garbage")
	assertKind(t, err, KindAuth, "Invalid refresh token")

	expired, err := e.tokens.Sign("ann@x.io", id, -time.Second)
	require.NoError(t, err)
	_, err = e.auth.RefreshToken(ctx, expired)
	assertKind(t, err, KindAuth, "Invalid refresh token")

	foreign, err := security.NewTokenIssuer("other", time.Hour, time.Hour).Sign("ann@x.io", id, time.Hour)
	require.NoError(t, err)
	_, err = e.auth.RefreshToken(ctx, foreign)
	assertKind(t, err, KindAuth, "Invalid refresh token")

	require.NoError(t, e.store.Users.Delete(ctx, id))
	_, err = e.auth.RefreshToken(ctx, login.RefreshToken)
	assertKind(t, err, KindAuth, "User not found")
}

func TestRefreshTokenAfterEmailChange(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	id := e.register(t, "ann@x.io")

	login, err := e.auth.Login(ctx, "ann@x.io", "password1")
	require.NoError(t, err)

	require.NoError(t, e.users.Update(ctx, id, UserUpdate{Email: ptr("bob@x.io")}))

	_, err = e.auth.RefreshToken(ctx, login.RefreshToken)
	assertKind(t, err, KindAuth, "User not found")

	login, err = e.auth.Login(ctx, "bob@x.io", "password1")
	require.NoError(t, err)

	res, err := e.auth.RefreshToken(ctx, login.RefreshToken)
	require.NoError(t, err)

	claims, err := e.tokens.Verify(res.Token)
	require.NoError(t, err)
	assert.Equal(t, "bob@x.io", claims.Email)
	assert.Equal(t, id, claims.UserID)
}

func TestForgot(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	e.register(t, "ann@x.io")
	e.auth.GeneratePassword = func() (string, error) { return "Abcdef1g", nil }

	require.NoError(t, e.auth.Forgot(ctx, "ann@x.io"))

	require.Len(t, e.mailer.sent, 1)
	assert.Equal(t, "ann@x.io", e.mailer.sent[0].To)
	assert.True(t, strings.Contains(e.mailer.sent[0].HTML, "Abcdef1g"))

	_, err := e.auth.Login(ctx, "ann@x.io", "Abcdef1g")
	require.NoError(t, err)

	_, err = e.auth.Login(ctx, "ann@x.io", "password1")
	assertKind(t, err, KindAuth, "Incorrect password")

	err = e.auth.Forgot(ctx, "nobody@x.io")
	assertKind(t, err, KindAuth, "User not found")
}

func TestForgotMailFailureKeepsNewPassword(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	e.register(t, "ann@x.io")
	e.auth.GeneratePassword = func() (string, error) { return "Xyzabc9d", nil }
	e.mailer.err = errors.New("smtp down")

	err := e.auth.Forgot(ctx, "ann@x.io")
	assertKind(t, err, KindService, "Error")

	_, err = e.auth.Login(ctx, "ann@x.io", "Xyzabc9d")
	assert.NoError(t, err)
}
