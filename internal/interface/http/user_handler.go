package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"contacts-api/internal/application"
	"contacts-api/internal/interface/middleware"
	"contacts-api/pkg/response"
)

type UserHandler struct {
	Svc    *application.ProfileService
	Logger *logrus.Logger
}

func NewUserHandler(svc *application.ProfileService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

// GetProfile GET /api/profile
func (h *UserHandler) GetProfile(c *gin.Context) {
	u := middleware.CurrentUser(c)
	response.Success(c, http.StatusOK, toUserResponse(u), "profile", nil)
}

// UploadAvatar POST /api/profile/avatar (multipart field "file")
func (h *UserHandler) UploadAvatar(c *gin.Context) {
	u := middleware.CurrentUser(c)
	fh, err := c.FormFile("file")
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "file is required", nil)
		return
	}
	f, err := fh.Open()
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "failed to read file", nil)
		return
	}
	defer func() { _ = f.Close() }()

	contentType := fh.Header.Get("Content-Type")
	url, err := h.Svc.UploadAvatar(c.Request.Context(), u, f, fh.Filename, contentType)
	if err != nil {
		h.Logger.WithError(err).WithField("user_id", u.ID).Error("avatar upload failed")
		response.Error[any](c, http.StatusInternalServerError, "avatar upload failed", nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"avatar": url}, "avatar updated", nil)
}
