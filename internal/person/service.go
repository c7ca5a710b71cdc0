package person

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

var (
	ErrNotFound          = errors.New("a person with this ID does not exist")
	ErrInvalidID         = errors.New("ID must be greater than zero")
	ErrInvalidSortColumn = errors.New("sort parameter must be an existing column")
	ErrValidationFailed  = errors.New("received invalid values for person")
)

// sortColumns is the allow list mapping the field names exposed in the query
// string to database columns. Anything outside it is rejected before the
// store is reached.
var sortColumns = map[string]string{
	"id":         "id",
	"firstName":  "first_name",
	"lastName":   "last_name",
	"email":      "email",
	"phone":      "phone",
	"department": "department",
	"age":        "age",
}

// DefaultSort orders newest records first.
var DefaultSort = SortSpec{Column: "id", Direction: "DESC"}

// ParseSort parses a "column,direction" query value against the allow list.
// An empty value yields DefaultSort; a column without a direction sorts
// descending.
func ParseSort(raw string) (SortSpec, error) {
	if raw == "" {
		return DefaultSort, nil
	}

	column, direction, _ := strings.Cut(raw, ",")
	dbColumn, ok := sortColumns[column]
	if !ok {
		return SortSpec{}, ErrInvalidSortColumn
	}

	switch strings.ToUpper(strings.TrimSpace(direction)) {
	case "", "DESC":
		direction = "DESC"
	case "ASC":
		direction = "ASC"
	default:
		return SortSpec{}, ErrInvalidSortColumn
	}

	return SortSpec{Column: dbColumn, Direction: direction}, nil
}

// UpdateResult reports which fields a best-effort update applied and which
// were skipped because their submitted values failed validation.
type UpdateResult struct {
	Applied []string
	Skipped []string
}

// Publisher sends person change events to the message bus.
type Publisher interface {
	SendMessage(ctx context.Context, value interface{}) error
}

type Service interface {
	List(ctx context.Context, sort SortSpec) ([]Person, error)
	Get(ctx context.Context, id int) (*Person, error)
	Create(ctx context.Context, form *Form) (*Person, error)
	Update(ctx context.Context, id int, form *Form) (*UpdateResult, error)
	Delete(ctx context.Context, id int) error
}

type service struct {
	repo     Repository
	validate *validator.Validate
	nameMode NameMode
	events   Publisher
}

// NewService constructs the person service. events may be nil, in which case
// no change events are published.
func NewService(repo Repository, nameMode NameMode, events Publisher) Service {
	return &service{
		repo:     repo,
		validate: NewFormValidator(nameMode),
		nameMode: nameMode,
		events:   events,
	}
}

func (s *service) List(ctx context.Context, sort SortSpec) ([]Person, error) {
	return s.repo.List(ctx, sort)
}

func (s *service) Get(ctx context.Context, id int) (*Person, error) {
	if id <= 0 {
		return nil, ErrInvalidID
	}
	return s.repo.GetByID(ctx, id)
}

// Create adds a person only if every submitted field validates.
func (s *service) Create(ctx context.Context, form *Form) (*Person, error) {
	if err := s.validate.Struct(form); err != nil {
		return nil, ErrValidationFailed
	}

	person := &Person{
		FirstName:  capitalizeFirst(form.FirstName),
		LastName:   capitalizeFirst(form.LastName),
		Email:      form.Email,
		Phone:      form.Phone,
		Department: form.Department,
	}
	if form.Age != "" {
		person.Age, _ = strconv.Atoi(form.Age)
	}

	created, err := s.repo.Create(ctx, person)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, Event{Action: EventCreated, ID: created.ID, Person: created})
	return created, nil
}

// Update applies each submitted field independently: fields whose values
// validate are written in one batched statement, the rest are reported as
// skipped. The record must exist before any field is touched.
func (s *service) Update(ctx context.Context, id int, form *Form) (*UpdateResult, error) {
	if id <= 0 {
		return nil, ErrInvalidID
	}
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return nil, err
	}

	result := &UpdateResult{}
	var updates []FieldUpdate

	consider := func(field, column string, value interface{}, valid bool) {
		if valid {
			updates = append(updates, FieldUpdate{Column: column, Value: value})
			result.Applied = append(result.Applied, field)
			return
		}
		result.Skipped = append(result.Skipped, field)
	}

	consider("firstName", "first_name", capitalizeFirst(form.FirstName), ValidName(form.FirstName, s.nameMode))
	consider("lastName", "last_name", capitalizeFirst(form.LastName), ValidName(form.LastName, s.nameMode))
	consider("email", "email", form.Email, ValidEmail(form.Email))
	consider("phone", "phone", form.Phone, ValidPhoneUpdate(form.Phone))
	consider("department", "department", form.Department, ValidDepartment(form.Department))
	if form.Age != "" {
		age, _ := strconv.Atoi(form.Age)
		consider("age", "age", age, ValidAge(form.Age))
	}

	if len(updates) > 0 {
		if err := s.repo.UpdateFields(ctx, id, updates); err != nil {
			return nil, err
		}
	}

	s.publish(ctx, Event{Action: EventUpdated, ID: id})
	return result, nil
}

func (s *service) Delete(ctx context.Context, id int) error {
	if id <= 0 {
		return ErrInvalidID
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.publish(ctx, Event{Action: EventDeleted, ID: id})
	return nil
}

// publish is best effort; the producer logs its own failures.
func (s *service) publish(ctx context.Context, event Event) {
	if s.events == nil {
		return
	}
	_ = s.events.SendMessage(ctx, event)
}

func capitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}
