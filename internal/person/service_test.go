package person_test

import (
	"context"
	"sort"
	"testing"

	"github.com/uday-rana/employees/internal/person"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRepository is an in-memory Repository for handler and service tests.
type fakeRepository struct {
	nextID  int
	records map[int]*person.Person
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		nextID:  1,
		records: make(map[int]*person.Person),
	}
}

func (f *fakeRepository) List(ctx context.Context, spec person.SortSpec) ([]person.Person, error) {
	persons := make([]person.Person, 0, len(f.records))
	for _, p := range f.records {
		persons = append(persons, *p)
	}
	// Only id ordering is reproduced; the allow list runs before List is
	// ever reached, so column fidelity is covered by the integration tests.
	sort.Slice(persons, func(i, j int) bool {
		if spec.Direction == "ASC" {
			return persons[i].ID < persons[j].ID
		}
		return persons[i].ID > persons[j].ID
	})
	return persons, nil
}

func (f *fakeRepository) Create(ctx context.Context, p *person.Person) (*person.Person, error) {
	p.ID = f.nextID
	f.nextID++
	stored := *p
	f.records[p.ID] = &stored
	return p, nil
}

func (f *fakeRepository) GetByID(ctx context.Context, id int) (*person.Person, error) {
	p, ok := f.records[id]
	if !ok {
		return nil, person.ErrNotFound
	}
	found := *p
	return &found, nil
}

func (f *fakeRepository) UpdateFields(ctx context.Context, id int, updates []person.FieldUpdate) error {
	p, ok := f.records[id]
	if !ok {
		return person.ErrNotFound
	}
	for _, update := range updates {
		switch update.Column {
		case "first_name":
			p.FirstName = update.Value.(string)
		case "last_name":
			p.LastName = update.Value.(string)
		case "email":
			p.Email = update.Value.(string)
		case "phone":
			p.Phone = update.Value.(string)
		case "department":
			p.Department = update.Value.(string)
		case "age":
			p.Age = update.Value.(int)
		}
	}
	return nil
}

func (f *fakeRepository) Delete(ctx context.Context, id int) error {
	if _, ok := f.records[id]; !ok {
		return person.ErrNotFound
	}
	delete(f.records, id)
	return nil
}

func validForm() *person.Form {
	return &person.Form{
		FirstName:  "jane",
		LastName:   "doe",
		Email:      "jane@x.com",
		Phone:      "555-123-4567",
		Department: "R&D",
	}
}

func TestService_CreateAndGet(t *testing.T) {
	repo := newFakeRepository()
	svc := person.NewService(repo, person.NameModeAnchored, nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, validForm())
	require.NoError(t, err)
	assert.Equal(t, "Jane", created.FirstName)
	assert.Equal(t, "Doe", created.LastName)
	assert.Equal(t, "jane@x.com", created.Email)
	assert.Equal(t, "555-123-4567", created.Phone)
	assert.Equal(t, "R&D", created.Department)

	fetched, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, fetched)

	persons, err := svc.List(ctx, person.DefaultSort)
	require.NoError(t, err)
	assert.Len(t, persons, 1)
}

func TestService_CreateRejectsAnyInvalidField(t *testing.T) {
	repo := newFakeRepository()
	svc := person.NewService(repo, person.NameModeAnchored, nil)
	ctx := context.Background()

	form := validForm()
	form.Email = "not-an-email"

	_, err := svc.Create(ctx, form)
	assert.ErrorIs(t, err, person.ErrValidationFailed)
	assert.Empty(t, repo.records)
}

func TestService_CreateWithAge(t *testing.T) {
	repo := newFakeRepository()
	svc := person.NewService(repo, person.NameModeAnchored, nil)
	ctx := context.Background()

	form := validForm()
	form.Age = "34"

	created, err := svc.Create(ctx, form)
	require.NoError(t, err)
	assert.Equal(t, 34, created.Age)

	form = validForm()
	form.Age = "0"
	_, err = svc.Create(ctx, form)
	assert.ErrorIs(t, err, person.ErrValidationFailed)
}

func TestService_GetInvalidID(t *testing.T) {
	svc := person.NewService(newFakeRepository(), person.NameModeAnchored, nil)

	_, err := svc.Get(context.Background(), 0)
	assert.ErrorIs(t, err, person.ErrInvalidID)

	_, err = svc.Get(context.Background(), -7)
	assert.ErrorIs(t, err, person.ErrInvalidID)
}

func TestService_UpdateAppliesOnlyValidFields(t *testing.T) {
	repo := newFakeRepository()
	svc := person.NewService(repo, person.NameModeAnchored, nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, validForm())
	require.NoError(t, err)

	result, err := svc.Update(ctx, created.ID, &person.Form{
		FirstName:  "janet",
		LastName:   "d0e",          // digit, skipped
		Email:      "janet@",       // malformed, skipped
		Phone:      "555-123-4567", // no country code, skipped on update
		Department: "Engineering",
	})
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"firstName", "department"}, result.Applied)
	assert.ElementsMatch(t, []string{"lastName", "email", "phone"}, result.Skipped)

	updated, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Janet", updated.FirstName)
	assert.Equal(t, "Engineering", updated.Department)
	// Skipped fields keep their previous values.
	assert.Equal(t, "Doe", updated.LastName)
	assert.Equal(t, "jane@x.com", updated.Email)
	assert.Equal(t, "555-123-4567", updated.Phone)
}

func TestService_UpdateMissingRecord(t *testing.T) {
	svc := person.NewService(newFakeRepository(), person.NameModeAnchored, nil)

	_, err := svc.Update(context.Background(), 42, validForm())
	assert.ErrorIs(t, err, person.ErrNotFound)

	_, err = svc.Update(context.Background(), 0, validForm())
	assert.ErrorIs(t, err, person.ErrInvalidID)
}

func TestService_DeleteMissingLeavesStoreUnchanged(t *testing.T) {
	repo := newFakeRepository()
	svc := person.NewService(repo, person.NameModeAnchored, nil)
	ctx := context.Background()

	_, err := svc.Create(ctx, validForm())
	require.NoError(t, err)

	err = svc.Delete(ctx, 99)
	assert.ErrorIs(t, err, person.ErrNotFound)
	assert.Len(t, repo.records, 1)

	err = svc.Delete(ctx, 0)
	assert.ErrorIs(t, err, person.ErrInvalidID)
	assert.Len(t, repo.records, 1)
}

func TestService_SubstringModeAcceptsNoisyNames(t *testing.T) {
	repo := newFakeRepository()
	svc := person.NewService(repo, person.NameModeSubstring, nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, validForm())
	require.NoError(t, err)

	result, err := svc.Update(ctx, created.ID, &person.Form{FirstName: "j4ne!"})
	require.NoError(t, err)
	assert.Contains(t, result.Applied, "firstName")

	updated, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "J4ne!", updated.FirstName)
}

type capturedEvent struct {
	events []person.Event
}

func (c *capturedEvent) SendMessage(ctx context.Context, value interface{}) error {
	c.events = append(c.events, value.(person.Event))
	return nil
}

func TestService_PublishesChangeEvents(t *testing.T) {
	repo := newFakeRepository()
	capture := &capturedEvent{}
	svc := person.NewService(repo, person.NameModeAnchored, capture)
	ctx := context.Background()

	created, err := svc.Create(ctx, validForm())
	require.NoError(t, err)

	_, err = svc.Update(ctx, created.ID, validFormWithPhoneUpdate())
	require.NoError(t, err)

	err = svc.Delete(ctx, created.ID)
	require.NoError(t, err)

	require.Len(t, capture.events, 3)
	assert.Equal(t, person.EventCreated, capture.events[0].Action)
	assert.Equal(t, person.EventUpdated, capture.events[1].Action)
	assert.Equal(t, person.EventDeleted, capture.events[2].Action)
	assert.Equal(t, created.ID, capture.events[2].ID)
}

func validFormWithPhoneUpdate() *person.Form {
	form := validForm()
	form.Phone = "+1 555-123-4567"
	return form
}
