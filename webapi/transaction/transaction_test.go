package transaction_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/mvallejo/bancore/internal/fixtures"
	"github.com/mvallejo/bancore/pkg/money"
	accountsvc "github.com/mvallejo/bancore/pkg/service/account"
	usersvc "github.com/mvallejo/bancore/pkg/service/user"
	"github.com/mvallejo/bancore/webapi"
	"github.com/mvallejo/bancore/webapi/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(store *fixtures.Store) *fiber.App {
	uow := fixtures.NewUnitOfWork(store)
	return webapi.New(
		accountsvc.NewService(uow, nil, slog.Default()),
		usersvc.New(uow, slog.Default()),
	)
}

func makeRequest(t *testing.T, app *fiber.App, method, path, body string) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func seedPair(store *fixtures.Store) {
	owner := store.SeedUser()
	store.SeedAccount(owner.ID, "4512345678-11", money.Must(100))
	store.SeedAccount(owner.ID, "4587654321-22", money.Must(20))
}

func TestTransferEndpoint(t *testing.T) {
	store := fixtures.NewStore()
	seedPair(store)
	app := newTestApp(store)

	resp := makeRequest(t, app, "POST", "/api/transactions/transfer",
		`{"source_account_number":"4512345678-11","target_account_number":"4587654321-22","amount":30}`)
	defer resp.Body.Close() //nolint:errcheck
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var envelope common.Response
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	data, _ := envelope.Data.(map[string]any)
	assert.Equal(t, "Transferencia de 4512345678-11 a 4587654321-22", data["description"])
	require.Len(t, store.Transactions, 1)
}

func TestTransferEndpoint_SameAccount(t *testing.T) {
	store := fixtures.NewStore()
	seedPair(store)
	app := newTestApp(store)

	resp := makeRequest(t, app, "POST", "/api/transactions/transfer",
		`{"source_account_number":"4512345678-11","target_account_number":"4512345678-11","amount":30}`)
	defer resp.Body.Close() //nolint:errcheck
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestTransferEndpoint_InsufficientFunds(t *testing.T) {
	store := fixtures.NewStore()
	seedPair(store)
	app := newTestApp(store)

	resp := makeRequest(t, app, "POST", "/api/transactions/transfer",
		`{"source_account_number":"4512345678-11","target_account_number":"4587654321-22","amount":1000}`)
	defer resp.Body.Close() //nolint:errcheck
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	assert.Empty(t, store.Transactions)
}

func TestHistoryEndpoint(t *testing.T) {
	store := fixtures.NewStore()
	seedPair(store)
	app := newTestApp(store)

	deposit := makeRequest(t, app, "POST", "/api/accounts/deposit",
		`{"account_number":"4512345678-11","amount":10}`)
	deposit.Body.Close() //nolint:errcheck

	resp := makeRequest(t, app, "GET", "/api/transactions/history/4512345678-11", "")
	defer resp.Body.Close() //nolint:errcheck
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var envelope common.Response
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	items, _ := envelope.Data.([]any)
	assert.Len(t, items, 1)
}

func TestHistoryEndpoint_UnknownAccount(t *testing.T) {
	app := newTestApp(fixtures.NewStore())

	resp := makeRequest(t, app, "GET", "/api/transactions/history/4500000000-00", "")
	defer resp.Body.Close() //nolint:errcheck
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	var pd common.ProblemDetails
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&pd))
	assert.Contains(t, pd.Detail, "Cuenta Bancaria con el identificador '4500000000-00' no encontrado.")
}

func TestGetTransactionEndpoint(t *testing.T) {
	store := fixtures.NewStore()
	seedPair(store)
	app := newTestApp(store)

	deposit := makeRequest(t, app, "POST", "/api/accounts/deposit",
		`{"account_number":"4512345678-11","amount":10}`)
	deposit.Body.Close() //nolint:errcheck
	require.Len(t, store.Transactions, 1)

	resp := makeRequest(t, app, "GET", "/api/transactions/"+store.Transactions[0].ID.String(), "")
	defer resp.Body.Close() //nolint:errcheck
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	bad := makeRequest(t, app, "GET", "/api/transactions/not-a-uuid", "")
	defer bad.Body.Close() //nolint:errcheck
	assert.Equal(t, fiber.StatusBadRequest, bad.StatusCode)
}
