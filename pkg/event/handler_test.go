package event

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Test setup helper
func setupHandlerTest(t *testing.T) (*mux.Router, *RepositoryStub) {
	repo := NewRepositoryStub()
	service := NewService(repo, nil)
	handler := NewHandler(service)

	r := mux.NewRouter()
	r.HandleFunc("/event/fetchAll", handler.FetchAll).Methods("GET")
	r.HandleFunc("/event/fetch/{eventId}", handler.Fetch).Methods("GET")
	r.HandleFunc("/event/create", handler.Create).Methods("POST")
	r.HandleFunc("/event/update/{eventId}", handler.Update).Methods("POST")
	r.HandleFunc("/event/delete/{eventId}", handler.Delete).Methods("DELETE")
	return r, repo
}

type envelope struct {
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Errors  []FieldError    `json:"errors"`
}

func doRequest(t *testing.T, router *mux.Router, method, path string, body any) (int, envelope) {
	var reader *bytes.Buffer
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewBuffer(encoded)
	} else {
		reader = bytes.NewBuffer(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.NewDecoder(w.Body).Decode(&env))
	return w.Code, env
}

func createEvent(t *testing.T, router *mux.Router, input Input) Event {
	code, env := doRequest(t, router, http.MethodPost, "/event/create", input)
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, "Event Created Successfully", env.Message)

	var created Event
	require.NoError(t, json.Unmarshal(env.Data, &created))
	require.False(t, created.ID.IsZero())
	return created
}

func TestFetchAll(t *testing.T) {
	t.Run("empty store returns empty list", func(t *testing.T) {
		router, _ := setupHandlerTest(t)

		code, env := doRequest(t, router, http.MethodGet, "/event/fetchAll", nil)
		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, "All Events Fetched Successfully", env.Message)
		assert.Equal(t, "[]", string(env.Data))
	})

	t.Run("returns events in insertion order", func(t *testing.T) {
		router, _ := setupHandlerTest(t)

		for i := 0; i < 3; i++ {
			input := validInput()
			input.Name = fmt.Sprintf("Event %d", i)
			createEvent(t, router, input)
		}

		code, env := doRequest(t, router, http.MethodGet, "/event/fetchAll", nil)
		assert.Equal(t, http.StatusOK, code)

		var events []Event
		require.NoError(t, json.Unmarshal(env.Data, &events))
		require.Len(t, events, 3)
		for i, e := range events {
			assert.Equal(t, fmt.Sprintf("Event %d", i), e.Name)
		}
	})

	t.Run("repository failure yields 500 envelope", func(t *testing.T) {
		router, repo := setupHandlerTest(t)
		repo.SetError(fmt.Errorf("connection reset"))

		code, env := doRequest(t, router, http.MethodGet, "/event/fetchAll", nil)
		assert.Equal(t, http.StatusInternalServerError, code)
		assert.Equal(t, "Internal Server Error", env.Message)
		assert.Contains(t, env.Error, "connection reset")
	})
}

func TestFetch(t *testing.T) {
	t.Run("create then fetch returns the input plus an assigned id", func(t *testing.T) {
		router, _ := setupHandlerTest(t)
		input := validInput()
		created := createEvent(t, router, input)

		code, env := doRequest(t, router, http.MethodGet, "/event/fetch/"+created.ID.Hex(), nil)
		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, "Event Fetched Successfully", env.Message)

		var fetched Event
		require.NoError(t, json.Unmarshal(env.Data, &fetched))
		assert.Equal(t, created.ID, fetched.ID)
		assert.Equal(t, input.Name, fetched.Name)
		assert.Equal(t, input.Date, fetched.Date)
		assert.Equal(t, input.Time, fetched.Time)
		assert.Equal(t, Duration(input.Duration), fetched.Duration)
		assert.Equal(t, input.Location, fetched.Location)
		assert.Equal(t, input.Notification, fetched.Notification)
		assert.Equal(t, input.Reminder, fetched.Reminder)
	})

	t.Run("unknown id returns does-not-exist, not 500", func(t *testing.T) {
		router, _ := setupHandlerTest(t)

		code, env := doRequest(t, router, http.MethodGet, "/event/fetch/"+primitive.NewObjectID().Hex(), nil)
		assert.Equal(t, http.StatusBadRequest, code)
		assert.Equal(t, "Event Does Not Exist", env.Message)
		assert.Empty(t, env.Data)
	})

	t.Run("malformed id is an internal error", func(t *testing.T) {
		router, _ := setupHandlerTest(t)

		code, env := doRequest(t, router, http.MethodGet, "/event/fetch/not-an-object-id", nil)
		assert.Equal(t, http.StatusInternalServerError, code)
		assert.Equal(t, "Internal Server Error", env.Message)
	})
}

func TestCreate(t *testing.T) {
	t.Run("invalid payload leaves the store unmodified", func(t *testing.T) {
		router, repo := setupHandlerTest(t)

		input := validInput()
		input.Name = ""
		code, env := doRequest(t, router, http.MethodPost, "/event/create", input)
		assert.Equal(t, http.StatusBadRequest, code)
		assert.Equal(t, "Validation error", env.Message)
		assert.Equal(t, "Required", FieldErrors(env.Errors).Get("name"))
		assert.Equal(t, 0, repo.Count())
	})

	t.Run("absent guest and attachment default to empty lists", func(t *testing.T) {
		router, _ := setupHandlerTest(t)

		input := validInput()
		input.Guest = nil
		input.Attachment = nil
		created := createEvent(t, router, input)
		assert.Equal(t, []string{}, created.Guest)
		assert.Equal(t, []Attachment{}, created.Attachment)
	})

	t.Run("null location is stored as null", func(t *testing.T) {
		router, _ := setupHandlerTest(t)

		input := validInput()
		input.Location = nil
		created := createEvent(t, router, input)
		assert.Nil(t, created.Location)
	})

	t.Run("malformed body is rejected before validation", func(t *testing.T) {
		router, repo := setupHandlerTest(t)

		req := httptest.NewRequest(http.MethodPost, "/event/create", bytes.NewBufferString("{not json"))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, 0, repo.Count())
	})
}

func TestUpdate(t *testing.T) {
	t.Run("is idempotent for identical payloads", func(t *testing.T) {
		router, _ := setupHandlerTest(t)
		created := createEvent(t, router, validInput())

		changed := validInput()
		changed.Name = "Standup (moved)"

		code, env := doRequest(t, router, http.MethodPost, "/event/update/"+created.ID.Hex(), changed)
		require.Equal(t, http.StatusOK, code)
		require.Equal(t, "Event Updated Successfully", env.Message)
		var first Event
		require.NoError(t, json.Unmarshal(env.Data, &first))

		code, env = doRequest(t, router, http.MethodPost, "/event/update/"+created.ID.Hex(), changed)
		require.Equal(t, http.StatusOK, code)
		var second Event
		require.NoError(t, json.Unmarshal(env.Data, &second))

		assert.Equal(t, first, second)

		_, env = doRequest(t, router, http.MethodGet, "/event/fetch/"+created.ID.Hex(), nil)
		var fetched Event
		require.NoError(t, json.Unmarshal(env.Data, &fetched))
		assert.Equal(t, first, fetched)
	})

	t.Run("invalid payload leaves the stored event unmodified", func(t *testing.T) {
		router, _ := setupHandlerTest(t)
		created := createEvent(t, router, validInput())

		invalid := validInput()
		invalid.Reminder = ""
		code, env := doRequest(t, router, http.MethodPost, "/event/update/"+created.ID.Hex(), invalid)
		assert.Equal(t, http.StatusBadRequest, code)
		assert.Equal(t, "Validation error", env.Message)

		_, env = doRequest(t, router, http.MethodGet, "/event/fetch/"+created.ID.Hex(), nil)
		var fetched Event
		require.NoError(t, json.Unmarshal(env.Data, &fetched))
		assert.Equal(t, created, fetched)
	})

	t.Run("unknown id returns does-not-exist", func(t *testing.T) {
		router, _ := setupHandlerTest(t)

		code, env := doRequest(t, router, http.MethodPost, "/event/update/"+primitive.NewObjectID().Hex(), validInput())
		assert.Equal(t, http.StatusBadRequest, code)
		assert.Equal(t, "Event Does Not Exist", env.Message)
	})
}

func TestDelete(t *testing.T) {
	t.Run("returns prior content and removes the record", func(t *testing.T) {
		router, _ := setupHandlerTest(t)
		created := createEvent(t, router, validInput())

		code, env := doRequest(t, router, http.MethodDelete, "/event/delete/"+created.ID.Hex(), nil)
		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, "Event Deleted Successfully", env.Message)

		var deleted Event
		require.NoError(t, json.Unmarshal(env.Data, &deleted))
		assert.Equal(t, created, deleted)

		code, env = doRequest(t, router, http.MethodGet, "/event/fetch/"+created.ID.Hex(), nil)
		assert.Equal(t, http.StatusBadRequest, code)
		assert.Equal(t, "Event Does Not Exist", env.Message)
	})

	t.Run("unknown id returns does-not-exist", func(t *testing.T) {
		router, _ := setupHandlerTest(t)

		code, env := doRequest(t, router, http.MethodDelete, "/event/delete/"+primitive.NewObjectID().Hex(), nil)
		assert.Equal(t, http.StatusBadRequest, code)
		assert.Equal(t, "Event Does Not Exist", env.Message)
	})
}

// End-to-end walk over the whole surface: create, list, delete, list.
func TestEventLifecycle(t *testing.T) {
	router, _ := setupHandlerTest(t)

	created := createEvent(t, router, validInput())

	_, env := doRequest(t, router, http.MethodGet, "/event/fetchAll", nil)
	var events []Event
	require.NoError(t, json.Unmarshal(env.Data, &events))
	require.Len(t, events, 1)
	assert.Equal(t, created.ID, events[0].ID)

	code, _ := doRequest(t, router, http.MethodDelete, "/event/delete/"+created.ID.Hex(), nil)
	assert.Equal(t, http.StatusOK, code)

	_, env = doRequest(t, router, http.MethodGet, "/event/fetchAll", nil)
	require.NoError(t, json.Unmarshal(env.Data, &events))
	assert.Empty(t, events)
}
