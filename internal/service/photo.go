package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"bitwise74/social-api/pkg/util"

	"github.com/gabriel-vasile/mimetype"
)

const (
	photoFolder  = "users-app"
	maxPhotoSize = 5 << 20
)

var errNoUploader = errors.New("object storage is not configured")

// PhotoService turns photos sent as data URIs into stored objects. A nil
// PhotoService or one without an uploader accepts plain URLs only.
type PhotoService struct {
	uploader ObjectUploader
}

func NewPhotoService(u ObjectUploader) *PhotoService {
	return &PhotoService{uploader: u}
}

// Resolve returns the URL to store for photo. Empty values and plain URLs
// are returned unchanged, data URIs are uploaded under the user's folder.
func (p *PhotoService) Resolve(ctx context.Context, userID, photo string) (string, error) {
	if photo == "" || !strings.HasPrefix(photo, "data:") {
		return photo, nil
	}

	header, payload, ok := strings.Cut(photo, ",")
	if !ok || !strings.HasSuffix(header, ";base64") {
		return "", validationErr("Photo must be a base64 data URI")
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", validationErr("Photo must be a base64 data URI")
	}

	if len(data) > maxPhotoSize {
		return "", validationErr("Photo is too large")
	}

	mime := mimetype.Detect(data)
	if !strings.HasPrefix(mime.String(), "image/") {
		return "", validationErr("Photo must be an image")
	}

	if p == nil || p.uploader == nil {
		return "", serviceErr("File upload failed", errNoUploader)
	}

	name, err := util.NewID()
	if err != nil {
		return "", internalErr("Failed to generate file name", err)
	}

	key := fmt.Sprintf("%s/%s/%s%s", photoFolder, userID, name, mime.Extension())

	url, err := p.uploader.Upload(ctx, key, mime.String(), bytes.NewReader(data))
	if err != nil {
		return "", serviceErr("File upload failed", err)
	}

	return url, nil
}
