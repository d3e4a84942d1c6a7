package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contacts-api/internal/domain/entity"
	repo "contacts-api/internal/domain/repository"
)

// fakeContactRepo is an in-memory ContactRepository preserving insertion order.
type fakeContactRepo struct {
	contacts []entity.Contact
	nextID   int64
}

func newFakeContactRepo() *fakeContactRepo {
	return &fakeContactRepo{nextID: 1}
}

func (r *fakeContactRepo) page(items []entity.Contact, skip, limit int) []entity.Contact {
	if skip >= len(items) {
		return []entity.Contact{}
	}
	items = items[skip:]
	if limit < len(items) {
		items = items[:limit]
	}
	out := make([]entity.Contact, len(items))
	copy(out, items)
	return out
}

func (r *fakeContactRepo) owned(ownerID int64) []entity.Contact {
	var out []entity.Contact
	for _, c := range r.contacts {
		if c.UserID == ownerID {
			out = append(out, c)
		}
	}
	return out
}

func (r *fakeContactRepo) List(_ context.Context, ownerID int64, skip, limit int) ([]entity.Contact, error) {
	return r.page(r.owned(ownerID), skip, limit), nil
}

func (r *fakeContactRepo) findBy(ownerID int64, skip, limit int, match func(entity.Contact) bool) []entity.Contact {
	var out []entity.Contact
	for _, c := range r.owned(ownerID) {
		if match(c) {
			out = append(out, c)
		}
	}
	return r.page(out, skip, limit)
}

func (r *fakeContactRepo) FindByName(_ context.Context, ownerID int64, skip, limit int, name string) ([]entity.Contact, error) {
	return r.findBy(ownerID, skip, limit, func(c entity.Contact) bool {
		return c.Name == name
	}), nil
}

func (r *fakeContactRepo) FindBySurname(_ context.Context, ownerID int64, skip, limit int, surname string) ([]entity.Contact, error) {
	return r.findBy(ownerID, skip, limit, func(c entity.Contact) bool {
		return c.Surname == surname
	}), nil
}

func (r *fakeContactRepo) FindByEmail(_ context.Context, ownerID int64, skip, limit int, email string) ([]entity.Contact, error) {
	return r.findBy(ownerID, skip, limit, func(c entity.Contact) bool {
		return c.Email == email
	}), nil
}

func (r *fakeContactRepo) GetByID(_ context.Context, ownerID, contactID int64) (*entity.Contact, error) {
	for _, c := range r.contacts {
		if c.ID == contactID && c.UserID == ownerID {
			cp := c
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (r *fakeContactRepo) Create(_ context.Context, c *entity.Contact) error {
	c.ID = r.nextID
	r.nextID++
	r.contacts = append(r.contacts, *c)
	return nil
}

func (r *fakeContactRepo) Update(_ context.Context, ownerID, contactID int64, in *entity.Contact) (*entity.Contact, error) {
	for i, c := range r.contacts {
		if c.ID == contactID && c.UserID == ownerID {
			c.Name = in.Name
			c.Surname = in.Surname
			c.PhoneNumber = in.PhoneNumber
			c.Email = in.Email
			c.Birthday = in.Birthday
			r.contacts[i] = c
			cp := c
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (r *fakeContactRepo) Remove(_ context.Context, ownerID, contactID int64) (*entity.Contact, error) {
	for i, c := range r.contacts {
		if c.ID == contactID && c.UserID == ownerID {
			cp := c
			r.contacts = append(r.contacts[:i], r.contacts[i+1:]...)
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

func newContactService() (*ContactService, *fakeContactRepo) {
	r := newFakeContactRepo()
	return NewContactService(r, nil, "", nil), r
}

func bday(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestContactCreateAndGet(t *testing.T) {
	s, _ := newContactService()
	ctx := context.Background()

	created, err := s.Create(ctx, 1, ContactInput{
		Name:        "Olya",
		Surname:     "Shevchenko",
		PhoneNumber: "+380971112233",
		Email:       "olya@example.com",
		Birthday:    bday(1995, time.March, 14),
	})
	require.NoError(t, err)
	require.NotZero(t, created.ID)
	assert.Equal(t, int64(1), created.UserID)

	got, err := s.GetByID(ctx, 1, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestContactOwnerIsolation(t *testing.T) {
	s, _ := newContactService()
	ctx := context.Background()

	mine, err := s.Create(ctx, 1, ContactInput{Name: "Olya", Surname: "Shevchenko", Email: "olya@example.com", Birthday: bday(1995, time.March, 14)})
	require.NoError(t, err)

	_, err = s.Create(ctx, 2, ContactInput{Name: "Ivan", Surname: "Ivanov", Email: "ivan@example.com", Birthday: bday(1990, time.July, 1)})
	require.NoError(t, err)

	// another owner cannot read, update, or delete the contact
	_, err = s.GetByID(ctx, 2, mine.ID)
	assert.ErrorIs(t, err, repo.ErrNotFound)

	_, err = s.Update(ctx, 2, mine.ID, ContactInput{Name: "Hacked"})
	assert.ErrorIs(t, err, repo.ErrNotFound)

	_, err = s.Remove(ctx, 2, mine.ID)
	assert.ErrorIs(t, err, repo.ErrNotFound)

	list, err := s.List(ctx, 2, 0, 100)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Ivan", list[0].Name)
}

func TestContactListPagination(t *testing.T) {
	s, _ := newContactService()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := s.Create(ctx, 1, ContactInput{Name: "Contact", Surname: "Number", Email: "c@example.com", Birthday: bday(1990, time.January, 1)})
		require.NoError(t, err)
	}

	page, err := s.List(ctx, 1, 2, 2)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, int64(3), page[0].ID)
	assert.Equal(t, int64(4), page[1].ID)

	empty, err := s.List(ctx, 1, 10, 2)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestContactUpdateReturnsNewState(t *testing.T) {
	s, _ := newContactService()
	ctx := context.Background()

	created, err := s.Create(ctx, 1, ContactInput{Name: "Olya", Surname: "Shevchenko", PhoneNumber: "+380971112233", Email: "olya@example.com", Birthday: bday(1995, time.March, 14)})
	require.NoError(t, err)

	updated, err := s.Update(ctx, 1, created.ID, ContactInput{
		Name:        "Olha",
		Surname:     "Shevchenko",
		PhoneNumber: "+380979998877",
		Email:       "olha@example.com",
		Birthday:    bday(1995, time.March, 14),
	})
	require.NoError(t, err)
	assert.Equal(t, "Olha", updated.Name)
	assert.Equal(t, "+380979998877", updated.PhoneNumber)

	got, err := s.GetByID(ctx, 1, created.ID)
	require.NoError(t, err)
	assert.Equal(t, updated, got)
}

func TestContactUpdateAbsent(t *testing.T) {
	s, _ := newContactService()

	_, err := s.Update(context.Background(), 1, 42, ContactInput{Name: "Ghost"})
	assert.ErrorIs(t, err, repo.ErrNotFound)
}

func TestContactRemoveReturnsSnapshot(t *testing.T) {
	s, _ := newContactService()
	ctx := context.Background()

	created, err := s.Create(ctx, 1, ContactInput{Name: "Olya", Surname: "Shevchenko", Email: "olya@example.com", Birthday: bday(1995, time.March, 14)})
	require.NoError(t, err)

	removed, err := s.Remove(ctx, 1, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, removed)

	_, err = s.GetByID(ctx, 1, created.ID)
	assert.ErrorIs(t, err, repo.ErrNotFound)

	_, err = s.Remove(ctx, 1, created.ID)
	assert.ErrorIs(t, err, repo.ErrNotFound)
}

func TestContactFindByFields(t *testing.T) {
	s, _ := newContactService()
	ctx := context.Background()

	_, err := s.Create(ctx, 1, ContactInput{Name: "Olya", Surname: "Shevchenko", Email: "olya@example.com", Birthday: bday(1995, time.March, 14)})
	require.NoError(t, err)
	_, err = s.Create(ctx, 1, ContactInput{Name: "Ivan", Surname: "Ivanov", Email: "ivan@example.com", Birthday: bday(1990, time.July, 1)})
	require.NoError(t, err)

	byName, err := s.FindByName(ctx, 1, 0, 100, "Olya")
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, "olya@example.com", byName[0].Email)

	bySurname, err := s.FindBySurname(ctx, 1, 0, 100, "Ivanov")
	require.NoError(t, err)
	require.Len(t, bySurname, 1)
	assert.Equal(t, "Ivan", bySurname[0].Name)

	byEmail, err := s.FindByEmail(ctx, 1, 0, 100, "ivan@example.com")
	require.NoError(t, err)
	require.Len(t, byEmail, 1)
	assert.Equal(t, "Ivan", byEmail[0].Name)

	// matches are exact, not substring
	partial, err := s.FindByEmail(ctx, 1, 0, 100, "ivan@")
	require.NoError(t, err)
	assert.Empty(t, partial)

	none, err := s.FindByName(ctx, 2, 0, 100, "Olya")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestUpcomingBirthdaysWindow(t *testing.T) {
	s, _ := newContactService()
	ctx := context.Background()

	now := time.Now().UTC()
	// birthdays project onto the current calendar year, so an offset that
	// crosses into January lands in the past and falls out of the window
	expected := map[string]bool{}
	add := func(name string, offsetDays int) {
		d := now.AddDate(0, 0, offsetDays)
		_, err := s.Create(ctx, 1, ContactInput{
			Name:     name,
			Surname:  "Test",
			Email:    name + "@example.com",
			Birthday: bday(1990, d.Month(), d.Day()),
		})
		require.NoError(t, err)
		expected[name] = offsetDays >= 0 && offsetDays <= 7 && d.Year() == now.Year()
	}

	add("today", 0)
	add("inThree", 3)
	add("inSeven", 7)
	add("inNine", 9)
	add("monthAgo", -30)

	got, err := s.UpcomingBirthdays(ctx, 1, 0, 100)
	require.NoError(t, err)

	names := make([]string, 0, len(got))
	for _, c := range got {
		names = append(names, c.Name)
	}
	for name, want := range expected {
		if want {
			assert.Contains(t, names, name)
		} else {
			assert.NotContains(t, names, name)
		}
	}
}

func TestUpcomingBirthdaysPaginatesBeforeFiltering(t *testing.T) {
	s, _ := newContactService()
	ctx := context.Background()

	now := time.Now().UTC()
	// a birthday exactly today always matches regardless of the season; rows
	// thirty days back never do
	far := now.AddDate(0, 0, -30)

	// two non-matching rows fill the first page; the match sits on page two
	for i := 0; i < 2; i++ {
		_, err := s.Create(ctx, 1, ContactInput{Name: "far", Surname: "Test", Email: "far@example.com", Birthday: bday(1990, far.Month(), far.Day())})
		require.NoError(t, err)
	}
	_, err := s.Create(ctx, 1, ContactInput{Name: "near", Surname: "Test", Email: "near@example.com", Birthday: bday(1990, now.Month(), now.Day())})
	require.NoError(t, err)

	firstPage, err := s.UpcomingBirthdays(ctx, 1, 0, 2)
	require.NoError(t, err)
	assert.Empty(t, firstPage)

	secondPage, err := s.UpcomingBirthdays(ctx, 1, 2, 2)
	require.NoError(t, err)
	require.Len(t, secondPage, 1)
	assert.Equal(t, "near", secondPage[0].Name)
}

func TestSearchWithoutBackendReturnsEmpty(t *testing.T) {
	s, _ := newContactService()

	got, err := s.Search(context.Background(), 1, "olya", 10)
	require.NoError(t, err)
	assert.Empty(t, got)
}
