package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"contacts-api/internal/application"
	"contacts-api/internal/domain/entity"
	repo "contacts-api/internal/domain/repository"
	"contacts-api/internal/interface/middleware"
	"contacts-api/pkg/response"
	"contacts-api/pkg/validation"
)

const birthdayLayout = "2006-01-02"

type ContactHandler struct {
	Svc    *application.ContactService
	Logger *logrus.Logger
}

func NewContactHandler(svc *application.ContactService, logger *logrus.Logger) *ContactHandler {
	return &ContactHandler{Svc: svc, Logger: logger}
}

type contactRequest struct {
	Name        string `json:"name" binding:"required,max=50"`
	Surname     string `json:"surname" binding:"required,max=50"`
	PhoneNumber string `json:"phone_number" binding:"required,phone"`
	Email       string `json:"email" binding:"required,email,max=100"`
	Birthday    string `json:"birthday" binding:"required,datetime=2006-01-02"`
}

func (r contactRequest) toInput() application.ContactInput {
	// binding already validated the layout
	bd, _ := time.Parse(birthdayLayout, r.Birthday)
	return application.ContactInput{
		Name:        r.Name,
		Surname:     r.Surname,
		PhoneNumber: r.PhoneNumber,
		Email:       r.Email,
		Birthday:    bd,
	}
}

type contactResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Surname     string `json:"surname"`
	PhoneNumber string `json:"phone_number"`
	Email       string `json:"email"`
	Birthday    string `json:"birthday"`
}

func toContactResponse(c *entity.Contact) contactResponse {
	return contactResponse{
		ID:          c.ID,
		Name:        c.Name,
		Surname:     c.Surname,
		PhoneNumber: c.PhoneNumber,
		Email:       c.Email,
		Birthday:    c.Birthday.Format(birthdayLayout),
	}
}

func toContactResponses(cs []entity.Contact) []contactResponse {
	out := make([]contactResponse, 0, len(cs))
	for i := range cs {
		out = append(out, toContactResponse(&cs[i]))
	}
	return out
}

func pagination(c *gin.Context) (skip, limit int) {
	skip, _ = strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "100"))
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = 100
	}
	return skip, limit
}

func contactID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error[any](c, http.StatusBadRequest, "invalid contact id", nil)
		return 0, false
	}
	return id, true
}

type listFn func(ownerID int64, skip, limit int) ([]entity.Contact, error)

func (h *ContactHandler) respondList(c *gin.Context, fn listFn) {
	u := middleware.CurrentUser(c)
	skip, limit := pagination(c)
	contacts, err := fn(u.ID, skip, limit)
	if err != nil {
		h.Logger.WithError(err).Error("list contacts failed")
		response.Error[any](c, http.StatusInternalServerError, "failed to load contacts", nil)
		return
	}
	response.Success(c, http.StatusOK, toContactResponses(contacts), "contacts",
		map[string]any{"skip": skip, "limit": limit, "count": len(contacts)})
}

// List GET /api/contacts
func (h *ContactHandler) List(c *gin.Context) {
	h.respondList(c, func(ownerID int64, skip, limit int) ([]entity.Contact, error) {
		return h.Svc.List(c.Request.Context(), ownerID, skip, limit)
	})
}

// UpcomingBirthdays GET /api/contacts/days_to_birthday
func (h *ContactHandler) UpcomingBirthdays(c *gin.Context) {
	h.respondList(c, func(ownerID int64, skip, limit int) ([]entity.Contact, error) {
		return h.Svc.UpcomingBirthdays(c.Request.Context(), ownerID, skip, limit)
	})
}

// FindByName GET /api/contacts/get_by_name?name=
func (h *ContactHandler) FindByName(c *gin.Context) {
	name := c.Query("name")
	h.respondList(c, func(ownerID int64, skip, limit int) ([]entity.Contact, error) {
		return h.Svc.FindByName(c.Request.Context(), ownerID, skip, limit, name)
	})
}

// FindBySurname GET /api/contacts/get_by_surname?surname=
func (h *ContactHandler) FindBySurname(c *gin.Context) {
	surname := c.Query("surname")
	h.respondList(c, func(ownerID int64, skip, limit int) ([]entity.Contact, error) {
		return h.Svc.FindBySurname(c.Request.Context(), ownerID, skip, limit, surname)
	})
}

// FindByEmail GET /api/contacts/get_by_email?email=
func (h *ContactHandler) FindByEmail(c *gin.Context) {
	email := c.Query("email")
	h.respondList(c, func(ownerID int64, skip, limit int) ([]entity.Contact, error) {
		return h.Svc.FindByEmail(c.Request.Context(), ownerID, skip, limit, email)
	})
}

// Search GET /api/contacts/search?q=
func (h *ContactHandler) Search(c *gin.Context) {
	u := middleware.CurrentUser(c)
	q := c.Query("q")
	if q == "" {
		response.Error[any](c, http.StatusBadRequest, "query parameter q is required", nil)
		return
	}
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))
	hits, err := h.Svc.Search(c.Request.Context(), u.ID, q, size)
	if err != nil {
		h.Logger.WithError(err).Error("contact search failed")
		response.Error[any](c, http.StatusInternalServerError, "search failed", nil)
		return
	}
	response.Success(c, http.StatusOK, hits, "search results", map[string]any{"count": len(hits)})
}

// GetByID GET /api/contacts/:id
func (h *ContactHandler) GetByID(c *gin.Context) {
	u := middleware.CurrentUser(c)
	id, ok := contactID(c)
	if !ok {
		return
	}
	contact, err := h.Svc.GetByID(c.Request.Context(), u.ID, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			response.Error[any](c, http.StatusNotFound, "contact not found", nil)
			return
		}
		h.Logger.WithError(err).Error("get contact failed")
		response.Error[any](c, http.StatusInternalServerError, "failed to load contact", nil)
		return
	}
	response.Success(c, http.StatusOK, toContactResponse(contact), "contact", nil)
}

// Create POST /api/contacts
func (h *ContactHandler) Create(c *gin.Context) {
	u := middleware.CurrentUser(c)
	var req contactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	contact, err := h.Svc.Create(c.Request.Context(), u.ID, req.toInput())
	if err != nil {
		h.Logger.WithError(err).Error("create contact failed")
		response.Error[any](c, http.StatusInternalServerError, "failed to create contact", nil)
		return
	}
	response.Success(c, http.StatusCreated, toContactResponse(contact), "contact created", nil)
}

// Update PUT /api/contacts/:id
func (h *ContactHandler) Update(c *gin.Context) {
	u := middleware.CurrentUser(c)
	id, ok := contactID(c)
	if !ok {
		return
	}
	var req contactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	contact, err := h.Svc.Update(c.Request.Context(), u.ID, id, req.toInput())
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			response.Error[any](c, http.StatusNotFound, "contact not found", nil)
			return
		}
		h.Logger.WithError(err).Error("update contact failed")
		response.Error[any](c, http.StatusInternalServerError, "failed to update contact", nil)
		return
	}
	response.Success(c, http.StatusOK, toContactResponse(contact), "contact updated", nil)
}

// Remove DELETE /api/contacts/:id
func (h *ContactHandler) Remove(c *gin.Context) {
	u := middleware.CurrentUser(c)
	id, ok := contactID(c)
	if !ok {
		return
	}
	contact, err := h.Svc.Remove(c.Request.Context(), u.ID, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			response.Error[any](c, http.StatusNotFound, "contact not found", nil)
			return
		}
		h.Logger.WithError(err).Error("remove contact failed")
		response.Error[any](c, http.StatusInternalServerError, "failed to remove contact", nil)
		return
	}
	response.Success(c, http.StatusOK, toContactResponse(contact), "contact removed", nil)
}
