package service

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 1x1 transparent PNG
const pngPixel = "iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNkYPhfDwAChwGA60e6kgAAAABJRU5ErkJggg=="

func ptr(s string) *string { return &s }

func TestUserListAndGet(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)

	_, err := e.users.List(ctx)
	assertKind(t, err, KindNotFound, "Users not found")

	id := e.register(t, "a@x.io")

	users, err := e.users.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)

	u, err := e.users.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "a@x.io", u.Email)

	_, err = e.users.Get(ctx, "bad id")
	assertKind(t, err, KindValidation, "Invalid ID format")

	_, err = e.users.Get(ctx, "missingmissing00")
	assertKind(t, err, KindNotFound, "User not found")
}

func TestUserUpdate(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	id := e.register(t, "a@x.io")
	e.register(t, "b@x.io")

	err := e.users.Update(ctx, id, UserUpdate{})
	assertKind(t, err, KindValidation, "Enter your data")

	require.NoError(t, e.users.Update(ctx, id, UserUpdate{FirstName: ptr("Zed"), Phone: ptr("777")}))

	u, err := e.users.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Zed", u.FirstName)
	assert.Equal(t, "Last", u.LastName)
	assert.Equal(t, "777", u.Phone)

	err = e.users.Update(ctx, id, UserUpdate{Email: ptr("b@x.io")})
	assertKind(t, err, KindConflict, "")

	require.NoError(t, e.users.Update(ctx, id, UserUpdate{Email: ptr("new@x.io")}))
	_, err = e.auth.Login(ctx, "new@x.io", "password1")
	assert.NoError(t, err)
}

func TestUserUpdatePhoto(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	id := e.register(t, "a@x.io")

	require.NoError(t, e.users.Update(ctx, id, UserUpdate{Photo: ptr("data:image/png;base64," + pngPixel)}))

	u, err := e.users.Get(ctx, id)
	require.NoError(t, err)
	require.Len(t, e.uploader.keys, 1)
	assert.True(t, strings.HasPrefix(e.uploader.keys[0], "users-app/"+id+"/"))
	assert.True(t, strings.HasSuffix(u.Photo, ".png"))
	assert.True(t, strings.HasPrefix(u.Photo, "https://cdn.test/"))

	require.NoError(t, e.users.Update(ctx, id, UserUpdate{Photo: ptr("https://elsewhere.test/me.jpg")}))
	u, err = e.users.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "https://elsewhere.test/me.jpg", u.Photo)

	notImage := "data:text/plain;base64," + base64.StdEncoding.EncodeToString([]byte("hello there"))
	err = e.users.Update(ctx, id, UserUpdate{Photo: ptr(notImage)})
	assertKind(t, err, KindValidation, "Photo must be an image")

	e.uploader.err = errors.New("bucket gone")
	err = e.users.Update(ctx, id, UserUpdate{Photo: ptr("data:image/png;base64," + pngPixel)})
	assertKind(t, err, KindService, "File upload failed")
}

func TestChangePassword(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	id := e.register(t, "a@x.io")

	err := e.users.ChangePassword(ctx, id, "wrong", "next")
	assertKind(t, err, KindAuth, "Incorrect old password")

	err = e.users.ChangePassword(ctx, id, "password1", "password1")
	assertKind(t, err, KindValidation, "Old and new passwords are the same")

	err = e.users.ChangePassword(ctx, id, "", "")
	assertKind(t, err, KindValidation, "Missing fields: oldPassword, newPassword")

	require.NoError(t, e.users.ChangePassword(ctx, id, "password1", "password2"))

	_, err = e.auth.Login(ctx, "a@x.io", "password2")
	assert.NoError(t, err)
}

func TestUserDelete(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	id := e.register(t, "a@x.io")

	require.NoError(t, e.users.Delete(ctx, id))

	err := e.users.Delete(ctx, id)
	assertKind(t, err, KindNotFound, "User not found")

	// the relationship record outlives the account
	_, err = e.relationships.List(ctx, id)
	assert.NoError(t, err)
}

func TestPhotoWithoutUploader(t *testing.T) {
	var p *PhotoService

	url, err := p.Resolve(context.Background(), "u", "https://x.test/a.png")
	require.NoError(t, err)
	assert.Equal(t, "https://x.test/a.png", url)

	_, err = p.Resolve(context.Background(), "u", "data:image/png;base64,"+pngPixel)
	assertKind(t, err, KindService, "File upload failed")

	_, err = p.Resolve(context.Background(), "u", "data:image/png,rawdata")
	assertKind(t, err, KindValidation, "")
}
