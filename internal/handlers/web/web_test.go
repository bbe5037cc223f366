package web

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Funda-work-inc/smdl-simple-app/internal/domain"
	"github.com/Funda-work-inc/smdl-simple-app/internal/logging"
	"github.com/Funda-work-inc/smdl-simple-app/internal/operator/actions"
	"github.com/Funda-work-inc/smdl-simple-app/internal/service"
)

type mockTransactionFinder struct {
	mock.Mock
}

func (m *mockTransactionFinder) FindTransaction(ctx context.Context, id int64) (*service.Transaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Transaction), args.Error(1)
}

type mockActionProcessor struct {
	mock.Mock
}

func (m *mockActionProcessor) Process(ctx context.Context, action actions.IAction) error {
	args := m.Called(ctx, action)
	return args.Error(0)
}

func newLogData() *logging.LogData {
	return logging.NewLogData(logging.SetupLogging("info"))
}

func formRequest(form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/simple_transactions", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestNew_RendersForm(t *testing.T) {
	handler := NewHandler(&mockTransactionFinder{}, &mockActionProcessor{})
	resp := httptest.NewRecorder()

	err := handler.New(resp, httptest.NewRequest(http.MethodGet, "/simple_transactions/new", nil), newLogData())

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "取引登録")
	assert.Contains(t, resp.Body.String(), `name="item_name"`)
}

func TestCreate_RedirectsToDetail(t *testing.T) {
	op := &mockActionProcessor{}
	op.On("Process", mock.Anything, mock.AnythingOfType("*actions.CreateTransactionWithItems")).
		Run(func(args mock.Arguments) {
			action := args.Get(1).(*actions.CreateTransactionWithItems)
			require.NotNil(t, action.Amount)
			assert.Equal(t, 10000, *action.Amount)
			require.Len(t, action.Items, 1)
			assert.Equal(t, "テスト商品1", *action.Items[0].Name)
			action.Created = &domain.Transaction{ID: 42, Amount: 10000, Status: domain.StatusActive}
		}).Return(nil)

	form := url.Values{
		"amount":     {"10000"},
		"item_name":  {"テスト商品1"},
		"item_count": {"2"},
		"item_price": {"3000"},
	}
	resp := httptest.NewRecorder()

	handler := NewHandler(&mockTransactionFinder{}, op)
	err := handler.Create(resp, formRequest(form), newLogData())

	require.NoError(t, err)
	assert.Equal(t, http.StatusSeeOther, resp.Code)
	assert.Equal(t, "/simple_transactions/42", resp.Header().Get("Location"))
}

func TestCreate_BlankItemRowIgnored(t *testing.T) {
	op := &mockActionProcessor{}
	op.On("Process", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			action := args.Get(1).(*actions.CreateTransactionWithItems)
			assert.Empty(t, action.Items)
			action.Created = &domain.Transaction{ID: 7, Amount: 500, Status: domain.StatusActive}
		}).Return(nil)

	form := url.Values{
		"amount":     {"500"},
		"item_name":  {""},
		"item_count": {""},
		"item_price": {""},
	}
	resp := httptest.NewRecorder()

	handler := NewHandler(&mockTransactionFinder{}, op)
	err := handler.Create(resp, formRequest(form), newLogData())

	require.NoError(t, err)
	assert.Equal(t, http.StatusSeeOther, resp.Code)
}

func TestCreate_ValidationErrorRerendersForm(t *testing.T) {
	op := &mockActionProcessor{}
	op.On("Process", mock.Anything, mock.Anything).
		Return(&domain.ValidationErrors{Messages: []string{
			"Amount can't be blank",
			"Item price must be greater than 0",
		}})

	form := url.Values{
		"item_name":  {"テスト商品1"},
		"item_count": {"2"},
		"item_price": {"0"},
	}
	resp := httptest.NewRecorder()

	handler := NewHandler(&mockTransactionFinder{}, op)
	err := handler.Create(resp, formRequest(form), newLogData())

	require.Error(t, err)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	assert.Contains(t, resp.Body.String(), "Amount can&#39;t be blank")
	assert.Contains(t, resp.Body.String(), "Item price must be greater than 0")
	assert.Contains(t, resp.Body.String(), "テスト商品1")
}

func TestCreate_NonNumericAmountRejectedBeforeDispatch(t *testing.T) {
	op := &mockActionProcessor{}

	form := url.Values{"amount": {"abc"}}
	resp := httptest.NewRecorder()

	handler := NewHandler(&mockTransactionFinder{}, op)
	err := handler.Create(resp, formRequest(form), newLogData())

	require.NoError(t, err)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	assert.Contains(t, resp.Body.String(), "Amount is not a number")
	op.AssertNotCalled(t, "Process", mock.Anything, mock.Anything)
}

func TestShow_RendersDetail(t *testing.T) {
	finder := &mockTransactionFinder{}
	finder.On("FindTransaction", mock.Anything, int64(42)).Return(&service.Transaction{
		ID:                   42,
		Amount:               10000,
		RegistrationDatetime: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		Status:               "active",
		Items: []service.Item{
			{ID: 1, Name: "テスト商品1", Count: 2, Price: 3000},
		},
	}, nil)

	req := mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/simple_transactions/42", nil),
		map[string]string{"id": "42"})
	resp := httptest.NewRecorder()

	handler := NewHandler(finder, &mockActionProcessor{})
	err := handler.Show(resp, req, newLogData())

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "取引詳細")
	assert.Contains(t, resp.Body.String(), "テスト商品1")
}

func TestShow_NotFound(t *testing.T) {
	finder := &mockTransactionFinder{}
	finder.On("FindTransaction", mock.Anything, int64(99999)).Return(nil, nil)

	req := mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/simple_transactions/99999", nil),
		map[string]string{"id": "99999"})
	resp := httptest.NewRecorder()

	handler := NewHandler(finder, &mockActionProcessor{})
	err := handler.Show(resp, req, newLogData())

	assert.ErrorIs(t, err, domain.ErrTransactionNotFound)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}
