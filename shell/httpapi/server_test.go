package httpapi_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/school-library-lending/core"
	"github.com/AntonStoeckl/school-library-lending/inventory"
	"github.com/AntonStoeckl/school-library-lending/shell/httpapi"
	. "github.com/AntonStoeckl/school-library-lending/testutil/helper" //nolint:revive
)

type responseEnvelope struct {
	Code    int                 `json:"code"`
	Status  string              `json:"status"`
	Message string              `json:"message"`
	Data    jsoniter.RawMessage `json:"data"`
	Errors  map[string]string   `json:"errors"`
}

type apiFixture struct {
	store    *inventory.Store
	server   *httpapi.Server
	recorder *EventRecorderSpy
}

func givenAPI(t *testing.T, opts ...httpapi.Option) apiFixture {
	t.Helper()

	store := inventory.NewStore()
	recorder := NewEventRecorderSpy()
	handlers := httpapi.NewHandlers(store, httpapi.HandlerSettings{Recorder: recorder})
	opts = append([]httpapi.Option{httpapi.WithClock(FakeClock)}, opts...)

	return apiFixture{store: store, server: httpapi.NewServer(handlers, opts...), recorder: recorder}
}

func (f apiFixture) do(t *testing.T, method string, target string, body string) (int, responseEnvelope, http.Header) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := f.server.App().Test(req, -1)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var env responseEnvelope
	if len(raw) > 0 && strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		require.NoError(t, jsoniter.Unmarshal(raw, &env))
	}

	return resp.StatusCode, env, resp.Header
}

func decodeData[T any](t *testing.T, env responseEnvelope) T {
	t.Helper()

	var data T
	require.NoError(t, jsoniter.Unmarshal(env.Data, &data))

	return data
}

func Test_LendAndReturn(t *testing.T) {
	// arrange
	api := givenAPI(t)
	GivenBook(t, api.store, "1", "Dune", 1)
	GivenStudent(t, api.store, "CS25-001")
	GivenStudent(t, api.store, "CS25-002")

	// act
	lendStatus, lendEnv, _ := api.do(t, http.MethodPost, "/api/issues/CS25-001/1", "")
	againStatus, _, _ := api.do(t, http.MethodPost, "/api/issues/CS25-001/1", "")
	outOfStockStatus, _, _ := api.do(t, http.MethodPost, "/api/issues/CS25-002/1", "")
	returnStatus, returnEnv, _ := api.do(t, http.MethodPost, "/api/returns/CS25-001/1", "")
	returnAgainStatus, returnAgainEnv, _ := api.do(t, http.MethodPost, "/api/returns/CS25-001/1", "")

	// assert
	assert.Equal(t, http.StatusCreated, lendStatus)
	lent := decodeData[map[string]any](t, lendEnv)
	assert.Equal(t, "1", lent["book_id"])
	assert.Equal(t, "CS25-001", lent["student_id"])
	assert.Equal(t, "2025-03-17T09:00:00Z", lent["due_at"])

	assert.Equal(t, http.StatusConflict, againStatus)
	assert.Equal(t, http.StatusUnprocessableEntity, outOfStockStatus)

	assert.Equal(t, http.StatusOK, returnStatus)
	returned := decodeData[map[string]any](t, returnEnv)
	assert.Equal(t, "2025-03-03T09:00:00Z", returned["returned_at"])

	assert.Equal(t, http.StatusConflict, returnAgainStatus)
	assert.Equal(t, "error", returnAgainEnv.Status)

	book, err := api.store.GetBook("1")
	require.NoError(t, err)
	assert.Equal(t, 1, book.AvailableCopies)
	assert.Contains(t, api.recorder.EventTypes(), core.BookReturnedByStudentEventType)
	assert.Equal(t, core.ReturningBookFromStudentFailedEventType, api.recorder.Last().IsEventType())
}

func Test_ErrorMapping(t *testing.T) {
	api := givenAPI(t)
	GivenBook(t, api.store, "1", "Dune", 1)
	GivenStudent(t, api.store, "CS25-001")

	testCases := []struct {
		description    string
		method         string
		target         string
		body           string
		expectedStatus int
	}{
		{"unknown student", http.MethodPost, "/api/issues/CS25-404/1", "", http.StatusNotFound},
		{"unknown book", http.MethodPost, "/api/issues/CS25-001/404", "", http.StatusNotFound},
		{"unknown student borrows", http.MethodGet, "/api/students/CS25-404/issues", "", http.StatusNotFound},
		{"unknown book history", http.MethodGet, "/api/books/404/history", "", http.StatusNotFound},
		{"malformed body", http.MethodPost, "/api/books", "{", http.StatusBadRequest},
		{"malformed student id", http.MethodPost, "/api/students", `{"id":"bad","name":"X"}`, http.StatusBadRequest},
		{"duplicate book", http.MethodPost, "/api/books", `{"id":"1","title":"Other","copies":1}`, http.StatusConflict},
		{"negative top", http.MethodGet, "/api/reports/usage?top=-1", "", http.StatusBadRequest},
		{"bad overdue time", http.MethodGet, "/api/issues/overdue?at=yesterday", "", http.StatusBadRequest},
		{"unknown route", http.MethodGet, "/api/nothing", "", http.StatusNotFound},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			// act
			status, env, _ := api.do(t, tc.method, tc.target, tc.body)

			// assert
			assert.Equal(t, tc.expectedStatus, status)
			assert.Equal(t, tc.expectedStatus, env.Code)
			assert.Equal(t, "error", env.Status)
		})
	}
}

func Test_AddBook_ValidationDetails(t *testing.T) {
	// arrange
	api := givenAPI(t)

	// act
	status, env, _ := api.do(t, http.MethodPost, "/api/books", `{"id":"1"}`)

	// assert
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "required", env.Errors["Title"])
	assert.Equal(t, "required", env.Errors["Copies"])
}

func Test_CatalogAndMembers(t *testing.T) {
	// arrange
	api := givenAPI(t)

	// act
	addStatus, _, _ := api.do(t, http.MethodPost, "/api/books", `{"id":"7","title":"Dune","author":"Frank Herbert","copies":2}`)
	enrollStatus, enrollEnv, _ := api.do(t, http.MethodPost, "/api/students", `{"id":"CS25-001","name":"Ada Lovelace"}`)
	_, booksEnv, _ := api.do(t, http.MethodGet, "/api/books?q=herbert", "")
	_, studentsEnv, _ := api.do(t, http.MethodGet, "/api/students?q=ada", "")

	// assert
	assert.Equal(t, http.StatusCreated, addStatus)
	assert.Equal(t, http.StatusCreated, enrollStatus)
	assert.Equal(t, "Batch 2025", decodeData[map[string]any](t, enrollEnv)["class_label"])

	books := decodeData[[]map[string]any](t, booksEnv)
	require.Len(t, books, 1)
	assert.Equal(t, "7", books[0]["id"])
	assert.EqualValues(t, 2, books[0]["available_copies"])

	students := decodeData[[]map[string]any](t, studentsEnv)
	require.Len(t, students, 1)
	assert.Equal(t, "CS25-001", students[0]["id"])
}

func Test_Queries(t *testing.T) {
	// arrange
	api := givenAPI(t, httpapi.WithDefaultTopN(1))
	GivenBook(t, api.store, "1", "Dune", 3)
	GivenBook(t, api.store, "2", "Emma", 3)
	GivenStudent(t, api.store, "CS25-001")
	GivenStudent(t, api.store, "CS25-002")
	GivenStudent(t, api.store, "CS26-001")
	GivenBookLent(t, api.store, "1", "CS25-001", FakeClock().Add(-20*24*time.Hour))
	GivenBookLent(t, api.store, "1", "CS25-002", FakeClock().Add(-15*24*time.Hour))
	GivenBookLent(t, api.store, "2", "CS25-001", FakeClock())
	GivenBookLent(t, api.store, "2", "CS26-001", FakeClock())

	t.Run("overdue", func(t *testing.T) {
		_, env, _ := api.do(t, http.MethodGet, "/api/issues/overdue", "")
		entries := decodeData[[]map[string]any](t, env)
		require.Len(t, entries, 2)
		assert.EqualValues(t, 6, entries[0]["days_overdue"])
		assert.EqualValues(t, 1, entries[1]["days_overdue"])
		assert.Equal(t, "Dune", entries[0]["title"])
	})

	t.Run("overdue with limit", func(t *testing.T) {
		_, env, _ := api.do(t, http.MethodGet, "/api/issues/overdue?limit=1", "")
		assert.Len(t, decodeData[[]map[string]any](t, env), 1)
	})

	t.Run("overdue at an earlier time", func(t *testing.T) {
		_, env, _ := api.do(t, http.MethodGet, "/api/issues/overdue?at=2025-02-20T09:00:00Z", "")
		assert.Empty(t, decodeData[[]map[string]any](t, env))
	})

	t.Run("batch", func(t *testing.T) {
		_, env, _ := api.do(t, http.MethodGet, "/api/issues/batch/26", "")
		batch := decodeData[map[string]any](t, env)
		assert.Equal(t, "Batch 2026", batch["class_name"])
		assert.EqualValues(t, 1, batch["count"])
	})

	t.Run("student borrows", func(t *testing.T) {
		_, env, _ := api.do(t, http.MethodGet, "/api/students/CS25-001/issues", "")
		borrows := decodeData[[]map[string]any](t, env)
		require.Len(t, borrows, 2)
		assert.Equal(t, "1", borrows[0]["book_id"])
		assert.Equal(t, "2", borrows[1]["book_id"])
	})

	t.Run("usage report uses default top", func(t *testing.T) {
		_, env, _ := api.do(t, http.MethodGet, "/api/reports/usage", "")
		classes := decodeData[[]map[string]any](t, env)
		require.Len(t, classes, 2)
		assert.Equal(t, "25", classes[0]["class_id"])
		assert.EqualValues(t, 3, classes[0]["total_borrowed"])
		assert.Len(t, classes[0]["top_books"], 1)
	})

	t.Run("usage report with explicit top", func(t *testing.T) {
		_, env, _ := api.do(t, http.MethodGet, "/api/reports/usage?top=0", "")
		classes := decodeData[[]map[string]any](t, env)
		assert.Len(t, classes[0]["top_books"], 2)
	})

	t.Run("borrowed books", func(t *testing.T) {
		_, env, _ := api.do(t, http.MethodGet, "/api/books/borrowed", "")
		assert.Len(t, decodeData[[]map[string]any](t, env), 2)
	})

	t.Run("book history", func(t *testing.T) {
		_, env, _ := api.do(t, http.MethodGet, "/api/books/1/history", "")
		assert.Len(t, decodeData[[]map[string]any](t, env), 2)
	})
}

func Test_RequestIDAndLogging(t *testing.T) {
	// arrange
	logger, logHandler := NewTestLogger()
	api := givenAPI(t, httpapi.WithLogger(logger))

	// act
	_, _, header := api.do(t, http.MethodGet, "/api/books", "")

	// assert
	assert.NotEmpty(t, header.Get("X-Request-ID"))
	assert.True(t, logHandler.HasInfoLogWithMessage("http: request handled").
		WithAttr("path", "/api/books").
		WithAttr("status", "200").
		WithAttr("request_id", header.Get("X-Request-ID")).
		WithDurationMS().
		Assert())
}

func Test_StatusFor(t *testing.T) {
	testCases := []struct {
		err      error
		expected int
	}{
		{nil, http.StatusOK},
		{core.ErrUnknownBook, http.StatusNotFound},
		{core.ErrNoActiveBorrow, http.StatusConflict},
		{core.ErrBorrowLimitReached, http.StatusUnprocessableEntity},
		{core.ErrOverRelease, http.StatusInternalServerError},
		{inventory.ErrUnbalancedTransaction, http.StatusInternalServerError},
		{core.ErrInvalidStudentID, http.StatusBadRequest},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.expected, httpapi.StatusFor(tc.err), "%v", tc.err)
	}
}
