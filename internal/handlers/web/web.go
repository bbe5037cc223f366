package web

import (
	"context"
	"embed"
	"html/template"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/Funda-work-inc/smdl-simple-app/internal/domain"
	"github.com/Funda-work-inc/smdl-simple-app/internal/logging"
	"github.com/Funda-work-inc/smdl-simple-app/internal/operator/actions"
	"github.com/Funda-work-inc/smdl-simple-app/internal/service"
)

//go:embed templates/*.html
var templatesFS embed.FS

// transactionFinder is the read side for the detail view.
type transactionFinder interface {
	FindTransaction(ctx context.Context, id int64) (*service.Transaction, error)
}

// actionProcessor runs a write action inside a storage transaction.
type actionProcessor interface {
	Process(ctx context.Context, action actions.IAction) error
}

// Handler serves the user-facing form: a registration form, the create
// submission, and a detail view. It submits the same amount+items shape
// as the JSON API and goes through the same atomic create action, but
// is not audited.
type Handler struct {
	Transactions transactionFinder
	Operator     actionProcessor
	templates    *template.Template
}

func NewHandler(finder transactionFinder, op actionProcessor) *Handler {
	return &Handler{
		Transactions: finder,
		Operator:     op,
		templates:    template.Must(template.ParseFS(templatesFS, "templates/*.html")),
	}
}

type formItem struct {
	Name  string
	Count string
	Price string
}

type newPageData struct {
	Errors []string
	Amount string
	Items  []formItem
}

// New handles GET /simple_transactions/new, rendering the form with one
// blank item row.
func (h *Handler) New(w http.ResponseWriter, req *http.Request, logData *logging.LogData) error {
	return h.renderNew(w, http.StatusOK, newPageData{Items: []formItem{{}}})
}

// Create handles POST /simple_transactions. On success it redirects to
// the detail view; on validation failure it re-renders the form with
// the message list and the submitted values.
func (h *Handler) Create(w http.ResponseWriter, req *http.Request, logData *logging.LogData) error {
	if err := req.ParseForm(); err != nil {
		writeUnprocessable(w)
		return err
	}

	amountRaw := req.PostFormValue("amount")
	names := req.PostForm["item_name"]
	counts := req.PostForm["item_count"]
	prices := req.PostForm["item_price"]

	submitted := submittedItems(names, counts, prices)

	amount, items, parseErrors := parseForm(amountRaw, submitted)
	if len(parseErrors) > 0 {
		logData.AddData("httpStatus", http.StatusUnprocessableEntity)
		return h.renderNew(w, http.StatusUnprocessableEntity, newPageData{
			Errors: parseErrors,
			Amount: amountRaw,
			Items:  formItemsForRender(submitted),
		})
	}

	action := &actions.CreateTransactionWithItems{Amount: amount, Items: items}

	stopTimer := logData.AddTiming("createTransactionMs")
	err := h.Operator.Process(req.Context(), action)
	stopTimer()

	if err != nil {
		if verr, ok := domain.AsValidationErrors(err); ok {
			logData.AddData("httpStatus", http.StatusUnprocessableEntity)
			renderErr := h.renderNew(w, http.StatusUnprocessableEntity, newPageData{
				Errors: verr.Messages,
				Amount: amountRaw,
				Items:  formItemsForRender(submitted),
			})
			if renderErr != nil {
				return renderErr
			}
			return err
		}
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return err
	}

	logData.AddData("transactionID", action.Created.ID)
	http.Redirect(w, req, "/simple_transactions/"+strconv.FormatInt(action.Created.ID, 10), http.StatusSeeOther)
	return nil
}

// Show handles GET /simple_transactions/{id}.
func (h *Handler) Show(w http.ResponseWriter, req *http.Request, logData *logging.LogData) error {
	idParam := mux.Vars(req)["id"]
	id, err := strconv.ParseInt(idParam, 10, 64)
	if err != nil {
		http.NotFound(w, req)
		return err
	}

	tr, err := h.Transactions.FindTransaction(req.Context(), id)
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return err
	}
	if tr == nil {
		http.NotFound(w, req)
		return domain.ErrTransactionNotFound
	}

	return h.templates.ExecuteTemplate(w, "show.html", tr)
}

func (h *Handler) renderNew(w http.ResponseWriter, status int, data newPageData) error {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	return h.templates.ExecuteTemplate(w, "new.html", data)
}

func writeUnprocessable(w http.ResponseWriter) {
	http.Error(w, "Unable to read form submission", http.StatusUnprocessableEntity)
}

// submittedItems zips the parallel field arrays and drops rows where
// every field is blank, so the default empty row does not validate.
func submittedItems(names, counts, prices []string) []formItem {
	rows := len(names)
	if len(counts) > rows {
		rows = len(counts)
	}
	if len(prices) > rows {
		rows = len(prices)
	}

	var items []formItem
	for i := 0; i < rows; i++ {
		item := formItem{Name: at(names, i), Count: at(counts, i), Price: at(prices, i)}
		if item.Name == "" && item.Count == "" && item.Price == "" {
			continue
		}
		items = append(items, item)
	}
	return items
}

func at(values []string, i int) string {
	if i < len(values) {
		return values[i]
	}
	return ""
}

// parseForm converts raw form values to domain input. Non-numeric
// values are reported here; blanks become nil so domain validation
// reports them as missing.
func parseForm(amountRaw string, submitted []formItem) (*int, []domain.ItemInput, []string) {
	var parseErrors []string

	var amount *int
	if amountRaw != "" {
		value, err := strconv.Atoi(amountRaw)
		if err != nil {
			parseErrors = append(parseErrors, "Amount is not a number")
		} else {
			amount = &value
		}
	}

	items := make([]domain.ItemInput, len(submitted))
	for i, item := range submitted {
		input := domain.ItemInput{}
		if item.Name != "" {
			name := item.Name
			input.Name = &name
		}
		if item.Count != "" {
			count, err := strconv.Atoi(item.Count)
			if err != nil {
				parseErrors = append(parseErrors, "Item count is not a number")
			} else {
				input.Count = &count
			}
		}
		if item.Price != "" {
			price, err := strconv.Atoi(item.Price)
			if err != nil {
				parseErrors = append(parseErrors, "Item price is not a number")
			} else {
				input.Price = &price
			}
		}
		items[i] = input
	}

	return amount, items, parseErrors
}

// formItemsForRender guarantees at least one row so the re-rendered
// form always shows an item fieldset.
func formItemsForRender(submitted []formItem) []formItem {
	if len(submitted) == 0 {
		return []formItem{{}}
	}
	return submitted
}
