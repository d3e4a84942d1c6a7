package application

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/sirupsen/logrus"

	"contacts-api/internal/domain/entity"
	repo "contacts-api/internal/domain/repository"
)

// ContactService executes contact operations scoped to one owner. Every call
// carries the owner id down to the repository as a mandatory predicate.
// Contacts are mirrored into Elasticsearch when a client is configured; the
// SQL store stays the source of truth.
type ContactService struct {
	Repo    repo.ContactRepository
	ES      *elasticsearch.Client
	ESIndex string
	Logger  *logrus.Logger
}

func NewContactService(r repo.ContactRepository, es *elasticsearch.Client, esIndex string, logger *logrus.Logger) *ContactService {
	return &ContactService{Repo: r, ES: es, ESIndex: esIndex, Logger: logger}
}

// ContactInput carries the mutable contact fields for create and update.
type ContactInput struct {
	Name        string
	Surname     string
	PhoneNumber string
	Email       string
	Birthday    time.Time
}

func (s *ContactService) List(ctx context.Context, ownerID int64, skip, limit int) ([]entity.Contact, error) {
	return s.Repo.List(ctx, ownerID, skip, limit)
}

// UpcomingBirthdays returns contacts from the requested page whose birthday,
// projected onto the current year, falls within the next seven days inclusive.
// Pagination applies before the date filter, so a page can hold fewer than
// limit matches even when more upcoming birthdays exist past the page window.
func (s *ContactService) UpcomingBirthdays(ctx context.Context, ownerID int64, skip, limit int) ([]entity.Contact, error) {
	page, err := s.Repo.List(ctx, ownerID, skip, limit)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	out := []entity.Contact{}
	for _, c := range page {
		bd := time.Date(today.Year(), c.Birthday.Month(), c.Birthday.Day(), 0, 0, 0, 0, time.UTC)
		days := int(bd.Sub(today).Hours() / 24)
		if days >= 0 && days <= 7 {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *ContactService) FindByName(ctx context.Context, ownerID int64, skip, limit int, name string) ([]entity.Contact, error) {
	return s.Repo.FindByName(ctx, ownerID, skip, limit, name)
}

func (s *ContactService) FindBySurname(ctx context.Context, ownerID int64, skip, limit int, surname string) ([]entity.Contact, error) {
	return s.Repo.FindBySurname(ctx, ownerID, skip, limit, surname)
}

func (s *ContactService) FindByEmail(ctx context.Context, ownerID int64, skip, limit int, email string) ([]entity.Contact, error) {
	return s.Repo.FindByEmail(ctx, ownerID, skip, limit, email)
}

func (s *ContactService) GetByID(ctx context.Context, ownerID, contactID int64) (*entity.Contact, error) {
	return s.Repo.GetByID(ctx, ownerID, contactID)
}

func (s *ContactService) Create(ctx context.Context, ownerID int64, in ContactInput) (*entity.Contact, error) {
	c := &entity.Contact{
		Name:        in.Name,
		Surname:     in.Surname,
		PhoneNumber: in.PhoneNumber,
		Email:       in.Email,
		Birthday:    in.Birthday,
		UserID:      ownerID,
	}
	if err := s.Repo.Create(ctx, c); err != nil {
		return nil, err
	}
	s.indexContact(ctx, c)
	return c, nil
}

func (s *ContactService) Update(ctx context.Context, ownerID, contactID int64, in ContactInput) (*entity.Contact, error) {
	c, err := s.Repo.Update(ctx, ownerID, contactID, &entity.Contact{
		Name:        in.Name,
		Surname:     in.Surname,
		PhoneNumber: in.PhoneNumber,
		Email:       in.Email,
		Birthday:    in.Birthday,
	})
	if err != nil {
		return nil, err
	}
	s.indexContact(ctx, c)
	return c, nil
}

func (s *ContactService) Remove(ctx context.Context, ownerID, contactID int64) (*entity.Contact, error) {
	c, err := s.Repo.Remove(ctx, ownerID, contactID)
	if err != nil {
		return nil, err
	}
	s.deleteFromIndex(ctx, c.ID)
	return c, nil
}

func (s *ContactService) indexContact(ctx context.Context, c *entity.Contact) {
	if s.ES == nil || s.ESIndex == "" {
		return
	}
	doc := map[string]any{
		"id":       c.ID,
		"name":     c.Name,
		"surname":  c.Surname,
		"email":    c.Email,
		"phone":    c.PhoneNumber,
		"birthday": c.Birthday.Format("2006-01-02"),
		"user_id":  c.UserID,
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{
		Index:      s.ESIndex,
		DocumentID: strconv.FormatInt(c.ID, 10),
		Body:       strings.NewReader(string(b)),
		Refresh:    "false",
	}
	cctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(cctx, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("contact_id", c.ID).Warn("es index failed")
		}
		return
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("contact_id", c.ID).Warn("es index response error")
	}
}

func (s *ContactService) deleteFromIndex(ctx context.Context, contactID int64) {
	if s.ES == nil || s.ESIndex == "" {
		return
	}
	req := esapi.DeleteRequest{Index: s.ESIndex, DocumentID: strconv.FormatInt(contactID, 10)}
	cctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(cctx, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("contact_id", contactID).Warn("es delete failed")
		}
		return
	}
	_ = res.Body.Close()
}

// Search performs a fuzzy multi_match over name, surname, and email, always
// filtered to the owner.
func (s *ContactService) Search(ctx context.Context, ownerID int64, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"bool": map[string]any{
				"must": map[string]any{
					"multi_match": map[string]any{
						"query":     q,
						"fields":    []string{"name^2", "surname^2", "email"},
						"fuzziness": "AUTO",
					},
				},
				"filter": map[string]any{
					"term": map[string]any{"user_id": ownerID},
				},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	cctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(
		s.ES.Search.WithContext(cctx),
		s.ES.Search.WithIndex(s.ESIndex),
		s.ES.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}
