package application

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"contacts-api/internal/domain/entity"
	repo "contacts-api/internal/domain/repository"
	"contacts-api/pkg/helpers"
)

// ProfileService handles the authenticated user's own profile.
type ProfileService struct {
	Repo      repo.UserRepository
	GCS       *storage.Client
	GCSBucket string
	Logger    *logrus.Logger
}

func NewProfileService(r repo.UserRepository, gcs *storage.Client, bucket string, logger *logrus.Logger) *ProfileService {
	return &ProfileService{Repo: r, GCS: gcs, GCSBucket: bucket, Logger: logger}
}

// UploadAvatar stores the image in GCS and records the public URL on the user.
func (s *ProfileService) UploadAvatar(ctx context.Context, u *entity.User, r io.Reader, filename, contentType string) (string, error) {
	if s.GCS == nil || s.GCSBucket == "" {
		return "", errors.New("avatar storage not configured")
	}
	ext := strings.ToLower(filepath.Ext(filename))
	objectPath := filepath.ToSlash(filepath.Join("avatars", strconv.FormatInt(u.ID, 10), uuid.NewString()+ext))
	url, err := helpers.UploadObject(ctx, s.GCS, s.GCSBucket, objectPath, contentType, r)
	if err != nil {
		return "", err
	}
	if err := s.Repo.UpdateAvatar(ctx, u.ID, url); err != nil {
		return "", err
	}
	u.Avatar = url
	return url, nil
}
