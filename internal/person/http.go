package person

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/uday-rana/employees/internal/view"

	"github.com/go-chi/chi/v5"
)

// returnToTopThreshold is the record count above which the list page gets a
// "return to top" link.
const returnToTopThreshold = 10

type Handler struct {
	service Service
	views   *view.Renderer
	logger  *slog.Logger
}

func NewHandler(service Service, views *view.Renderer, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		views:   views,
		logger:  logger,
	}
}

func (h *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", h.Index)
	router.Get("/persons", h.ListPersons)
	router.Post("/add", h.AddPerson)
	router.Get("/update", h.UpdateForm)
	router.Post("/update", h.UpdatePerson)
	// GET delete is kept for compatibility with the list page links; POST is
	// the state-changing method the update page uses.
	router.Get("/delete", h.DeletePerson)
	router.Post("/delete", h.DeletePerson)
}

type indexData struct {
	Title string
}

type listData struct {
	Title           string
	Persons         []Person
	ShowReturnToTop bool
}

type formData struct {
	Title  string
	Person *Person
}

type errorData struct {
	Title   string
	Message string
}

func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "index", indexData{Title: "Home | Persons"})
}

func (h *Handler) ListPersons(w http.ResponseWriter, r *http.Request) {
	sort, err := ParseSort(r.URL.Query().Get("sort"))
	if err != nil {
		h.renderError(w, r, http.StatusBadRequest, "Sort parameter must be an existing column. Please try again.")
		return
	}

	persons, err := h.service.List(r.Context(), sort)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to list persons", "error", err)
		h.renderError(w, r, http.StatusBadRequest, "Sort parameter must be an existing column. Please try again.")
		return
	}

	h.render(w, r, http.StatusOK, "persons", listData{
		Title:           "Your Persons | Persons",
		Persons:         persons,
		ShowReturnToTop: len(persons) > returnToTopThreshold,
	})
}

func (h *Handler) AddPerson(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderError(w, r, http.StatusForbidden, "Received invalid values for adding person. Please try again.")
		return
	}

	created, err := h.service.Create(r.Context(), formFromRequest(r))
	if err != nil {
		h.logger.InfoContext(r.Context(), "rejected person add", "error", err)
		h.renderError(w, r, http.StatusForbidden, "Received invalid values for adding person. Please try again.")
		return
	}

	h.logger.InfoContext(r.Context(), "person added",
		"id", created.ID,
		"first_name", created.FirstName,
		"last_name", created.LastName,
	)
	http.Redirect(w, r, "/persons", http.StatusFound)
}

func (h *Handler) UpdateForm(w http.ResponseWriter, r *http.Request) {
	// The id arrives as a query parameter, not a path parameter; the
	// originals' router resolved /update/:id against static assets.
	id, err := parseID(r.URL.Query().Get("id"))
	if err != nil {
		h.renderError(w, r, http.StatusBadRequest, errorMessage(err))
		return
	}

	person, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.renderError(w, r, http.StatusBadRequest, errorMessage(err))
		return
	}

	h.render(w, r, http.StatusOK, "update", formData{
		Title:  "Update | Persons",
		Person: person,
	})
}

func (h *Handler) UpdatePerson(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderError(w, r, http.StatusBadRequest, errorMessage(ErrInvalidID))
		return
	}

	id, err := parseID(r.PostFormValue("id"))
	if err != nil {
		h.renderError(w, r, http.StatusBadRequest, errorMessage(err))
		return
	}

	result, err := h.service.Update(r.Context(), id, formFromRequest(r))
	if err != nil {
		h.renderError(w, r, http.StatusBadRequest, errorMessage(err))
		return
	}

	h.logger.InfoContext(r.Context(), "person updated",
		"id", id,
		"applied", result.Applied,
		"skipped", result.Skipped,
	)
	http.Redirect(w, r, "/persons", http.StatusFound)
}

func (h *Handler) DeletePerson(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("id")
	if raw == "" {
		raw = r.PostFormValue("id")
	}

	id, err := parseID(raw)
	if err != nil {
		h.renderError(w, r, http.StatusBadRequest, errorMessage(err))
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.renderError(w, r, http.StatusBadRequest, errorMessage(err))
		return
	}

	h.logger.InfoContext(r.Context(), "person deleted", "id", id)
	http.Redirect(w, r, "/persons", http.StatusFound)
}

func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.renderError(w, r, http.StatusNotFound, "Page not found :/")
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, page string, data any) {
	if err := h.views.Render(w, status, page, data); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to render view", "view", page, "error", err)
	}
}

func (h *Handler) renderError(w http.ResponseWriter, r *http.Request, status int, message string) {
	h.render(w, r, status, "error", errorData{
		Title:   "Error | Persons",
		Message: message,
	})
}

// errorMessage maps service errors to the messages shown on the error page.
func errorMessage(err error) string {
	switch {
	case errors.Is(err, ErrInvalidID):
		return "ID must be greater than zero."
	case errors.Is(err, ErrNotFound):
		return "A person with this ID does not exist."
	default:
		return "Something went wrong. Please try again."
	}
}

// parseID maps non-numeric and non-positive values to ErrInvalidID.
func parseID(raw string) (int, error) {
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, ErrInvalidID
	}
	return id, nil
}

func formFromRequest(r *http.Request) *Form {
	return &Form{
		FirstName:  r.PostFormValue("firstName"),
		LastName:   r.PostFormValue("lastName"),
		Email:      r.PostFormValue("email"),
		Phone:      r.PostFormValue("phone"),
		Department: r.PostFormValue("department"),
		Age:        r.PostFormValue("age"),
	}
}
