package server_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Saroj-jagadish-mandal/ShopWise-AI/internal/platform/models"
	"github.com/Saroj-jagadish-mandal/ShopWise-AI/internal/platform/storage"
	"github.com/Saroj-jagadish-mandal/ShopWise-AI/internal/server"
	"github.com/Saroj-jagadish-mandal/ShopWise-AI/internal/server/mocks"
	"github.com/Saroj-jagadish-mandal/ShopWise-AI/internal/tasks"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var logger = zerolog.Nop()

type testServer struct {
	router    *gin.Engine
	store     *storage.Store
	submitter *mocks.Submitter
	responder *mocks.Responder
	tracker   *mocks.TaskStore
	embedder  *mocks.Embedder
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(
		sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", t.Name())),
		&gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)},
	)
	require.NoError(t, err, "can't open test database")

	store := storage.NewStore(db)
	require.NoError(t, store.Migrate(), "can't migrate test database")

	ts := &testServer{
		store:     store,
		submitter: mocks.NewSubmitter(t),
		responder: mocks.NewResponder(t),
		tracker:   mocks.NewTaskStore(t),
		embedder:  mocks.NewEmbedder(t),
	}
	ts.router = server.NewServer(store, ts.submitter, ts.responder, ts.tracker, ts.embedder, &logger).Router()

	return ts
}

func (ts *testServer) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	recorder := httptest.NewRecorder()
	ts.router.ServeHTTP(recorder, req)

	return recorder
}

func decodeBody(t *testing.T, recorder *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body), "response should be json")

	return body
}

func TestCreateProduct(t *testing.T) {
	ts := newTestServer(t)
	url := "https://www.amazon.com/dp/B000000001"

	ts.tracker.On("Set", mock.Anything, mock.Anything, "queued", "").Return(nil).Once()
	ts.submitter.On("SendScrapeCommand", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()

	first := ts.do(t, http.MethodPost, "/api/products/", gin.H{"url": url})

	require.Equal(t, http.StatusCreated, first.Code, "first submit should create")
	body := decodeBody(t, first)
	assert.Equal(t, "Product scraping started", body["message"], "should report the started run")
	assert.NotEmpty(t, body["task_id"], "should return the task id")

	// resubmitting the same url must not create a second row or run
	second := ts.do(t, http.MethodPost, "/api/products/", gin.H{"url": url})

	require.Equal(t, http.StatusOK, second.Code, "second submit should not create")
	body = decodeBody(t, second)
	assert.Equal(t, "Product is being processed", body["message"], "pending product should report processing")

	_, total, err := ts.store.ListProducts(context.TODO(), storage.ListProductsParams{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total, "should have exactly one row for the url")
}

func TestCreateProductCompletedReportsExisting(t *testing.T) {
	ts := newTestServer(t)
	url := "https://www.amazon.com/dp/B000000002"

	product, _, err := ts.store.CreateProduct(context.TODO(), url)
	require.NoError(t, err)
	require.NoError(t, ts.store.MarkProductCompleted(context.TODO(), product.ID, "ns", 3))

	recorder := ts.do(t, http.MethodPost, "/api/products/", gin.H{"url": url})

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "Product already exists", decodeBody(t, recorder)["message"], "completed product should report existing")
	ts.submitter.AssertNotCalled(t, "SendScrapeCommand")
}

func TestCreateProductRejectsBadURLs(t *testing.T) {
	tests := map[string]struct {
		body gin.H
	}{
		"missing url":    {body: gin.H{}},
		"not a url":      {body: gin.H{"url": "://"}},
		"wrong scheme":   {body: gin.H{"url": "ftp://www.amazon.com/dp/B01"}},
		"not amazon":     {body: gin.H{"url": "https://www.example.com/dp/B01"}},
		"no host at all": {body: gin.H{"url": "amazon"}},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			ts := newTestServer(t)

			recorder := ts.do(t, http.MethodPost, "/api/products/", tt.body)

			require.Equal(t, http.StatusBadRequest, recorder.Code, "should reject the url")
			ts.submitter.AssertNotCalled(t, "SendScrapeCommand")
		})
	}
}

func TestGetProduct(t *testing.T) {
	ts := newTestServer(t)
	product, _, err := ts.store.CreateProduct(context.TODO(), "https://www.amazon.com/dp/B000000003")
	require.NoError(t, err)

	recorder := ts.do(t, http.MethodGet, "/api/products/"+product.ID.String(), nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, product.ID.String(), decodeBody(t, recorder)["id"], "should return the product")

	t.Run("unknown id", func(t *testing.T) {
		recorder := ts.do(t, http.MethodGet, "/api/products/"+uuid.NewString(), nil)
		require.Equal(t, http.StatusNotFound, recorder.Code)
	})

	t.Run("invalid id", func(t *testing.T) {
		recorder := ts.do(t, http.MethodGet, "/api/products/not-a-uuid", nil)
		require.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}

func TestGetProductStatus(t *testing.T) {
	ts := newTestServer(t)
	product, _, err := ts.store.CreateProduct(context.TODO(), "https://www.amazon.com/dp/B000000004")
	require.NoError(t, err)
	taskID := uuid.NewString()
	require.NoError(t, ts.store.SetProductTask(context.TODO(), product.ID, taskID))

	ts.tracker.On("Get", mock.Anything, taskID).
		Return(&tasks.Status{State: tasks.StateRunning, Info: ""}, nil).Once()

	recorder := ts.do(t, http.MethodGet, "/api/products/"+product.ID.String()+"/status/", nil)

	require.Equal(t, http.StatusOK, recorder.Code)
	body := decodeBody(t, recorder)
	assert.Equal(t, models.StatusPending, body["status"], "should report the product status")
	assert.Equal(t, tasks.StateRunning, body["task_status"], "processing product should include the task state")

	t.Run("terminal status skips the tracker", func(t *testing.T) {
		require.NoError(t, ts.store.MarkProductCompleted(context.TODO(), product.ID, "ns", 3))

		recorder := ts.do(t, http.MethodGet, "/api/products/"+product.ID.String()+"/status/", nil)

		require.Equal(t, http.StatusOK, recorder.Code)
		body := decodeBody(t, recorder)
		assert.Equal(t, models.StatusCompleted, body["status"], "should report the product status")
		assert.NotContains(t, body, "task_status", "completed product should not include a task state")
	})
}

func TestRetryProduct(t *testing.T) {
	ts := newTestServer(t)
	product, _, err := ts.store.CreateProduct(context.TODO(), "https://www.amazon.com/dp/B000000005")
	require.NoError(t, err)

	t.Run("not failed", func(t *testing.T) {
		recorder := ts.do(t, http.MethodPost, "/api/products/"+product.ID.String()+"/retry/", nil)
		require.Equal(t, http.StatusBadRequest, recorder.Code, "pending product should not retry")
	})

	t.Run("failed product retries", func(t *testing.T) {
		require.NoError(t, ts.store.MarkProductFailed(context.TODO(), product.ID, "boom"))

		ts.tracker.On("Set", mock.Anything, mock.Anything, "queued", "").Return(nil).Once()
		ts.submitter.On("SendScrapeCommand", mock.Anything, product.ID.String(), mock.Anything).Return(nil).Once()

		recorder := ts.do(t, http.MethodPost, "/api/products/"+product.ID.String()+"/retry/", nil)

		require.Equal(t, http.StatusOK, recorder.Code)
		assert.NotEmpty(t, decodeBody(t, recorder)["task_id"], "should return the new task id")

		reset, err := ts.store.GetProduct(context.TODO(), product.ID)
		require.NoError(t, err)
		assert.Equal(t, models.StatusPending, reset.Status, "product should be pending again")
	})
}

func TestDeleteProduct(t *testing.T) {
	ts := newTestServer(t)
	product, _, err := ts.store.CreateProduct(context.TODO(), "https://www.amazon.com/dp/B000000006")
	require.NoError(t, err)

	// a namespace deletion failure must not keep the row alive
	ts.embedder.On("DeleteNamespace", mock.Anything, product.ID.String()).Return(assert.AnError).Once()

	recorder := ts.do(t, http.MethodDelete, "/api/products/"+product.ID.String(), nil)

	require.Equal(t, http.StatusNoContent, recorder.Code)
	_, err = ts.store.GetProduct(context.TODO(), product.ID)
	require.Error(t, err, "product row should be gone")
}

func TestAskQuestion(t *testing.T) {
	ts := newTestServer(t)
	product, _, err := ts.store.CreateProduct(context.TODO(), "https://www.amazon.com/dp/B000000007")
	require.NoError(t, err)

	t.Run("product not ready", func(t *testing.T) {
		recorder := ts.do(t, http.MethodPost, "/api/products/"+product.ID.String()+"/ask/", gin.H{"question": "is it blue"})

		require.Equal(t, http.StatusBadRequest, recorder.Code, "pending product should reject questions")
		ts.responder.AssertNotCalled(t, "Answer")
	})

	require.NoError(t, ts.store.MarkProductCompleted(context.TODO(), product.ID, "ns", 3))

	t.Run("missing question", func(t *testing.T) {
		recorder := ts.do(t, http.MethodPost, "/api/products/"+product.ID.String()+"/ask/", gin.H{})
		require.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("answer with fresh session", func(t *testing.T) {
		result := &models.QAResult{
			Answer:        "Yes, it is blue.",
			ContextChunks: []models.ContextChunk{{Text: "the widget is blue", Score: 0.9}},
		}
		ts.responder.On("Answer", mock.Anything, product.ID.String(), "is it blue", mock.Anything).
			Return(result, nil).Once()

		recorder := ts.do(t, http.MethodPost, "/api/products/"+product.ID.String()+"/ask/", gin.H{"question": "is it blue"})

		require.Equal(t, http.StatusOK, recorder.Code)
		body := decodeBody(t, recorder)
		assert.Equal(t, "Yes, it is blue.", body["answer"], "should return the answer")
		require.NotEmpty(t, body["session_id"], "should return a session id")

		sessionID := body["session_id"].(string)
		session, err := ts.store.GetSessionByExternalID(context.TODO(), product.ID, sessionID)
		require.NoError(t, err, "session should be persisted")

		transcript, err := ts.store.ListMessages(context.TODO(), session.ID, 0)
		require.NoError(t, err)
		require.Len(t, transcript, 2, "question and answer should be stored")
		assert.Equal(t, models.RoleUser, transcript[0].Role, "question should come first")
		assert.Equal(t, models.RoleAssistant, transcript[1].Role, "answer should follow")
		assert.Equal(t, "Yes, it is blue.", transcript[1].Content, "answer content should be stored")
	})

	t.Run("supplied session id resumes history", func(t *testing.T) {
		session, err := ts.store.CreateSession(context.TODO(), product.ID, uuid.NewString())
		require.NoError(t, err)
		_, err = ts.store.CreateMessage(context.TODO(), session.ID, models.RoleUser, "earlier question", nil)
		require.NoError(t, err)

		var history []models.ChatTurn
		ts.responder.On("Answer", mock.Anything, product.ID.String(), "follow up", mock.Anything).
			Run(func(args mock.Arguments) { history = args.Get(3).([]models.ChatTurn) }).
			Return(&models.QAResult{Answer: "ok", ContextChunks: []models.ContextChunk{}}, nil).Once()

		recorder := ts.do(t, http.MethodPost, "/api/products/"+product.ID.String()+"/ask/", gin.H{
			"question":   "follow up",
			"session_id": session.SessionID,
		})

		require.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, session.SessionID, decodeBody(t, recorder)["session_id"], "should keep the supplied session id")

		require.NotEmpty(t, history, "responder should receive history")
		assert.Equal(t, "earlier question", history[0].Content, "history should include earlier turns")
	})

	t.Run("responder failure", func(t *testing.T) {
		ts.responder.On("Answer", mock.Anything, product.ID.String(), "broken", mock.Anything).
			Return(nil, assert.AnError).Once()

		recorder := ts.do(t, http.MethodPost, "/api/products/"+product.ID.String()+"/ask/", gin.H{"question": "broken"})

		require.Equal(t, http.StatusInternalServerError, recorder.Code)
		assert.Equal(t, "Failed to generate answer", decodeBody(t, recorder)["error"], "should report the failure")
	})
}

func TestListReviewsEndpoint(t *testing.T) {
	ts := newTestServer(t)
	product, _, err := ts.store.CreateProduct(context.TODO(), "https://www.amazon.com/dp/B000000008")
	require.NoError(t, err)
	require.NoError(t, ts.store.CreateReviews(context.TODO(), product.ID, []models.Review{
		{Text: "Great", CustomerName: "Al"},
	}))

	recorder := ts.do(t, http.MethodGet, "/api/products/"+product.ID.String()+"/reviews/", nil)

	require.Equal(t, http.StatusOK, recorder.Code)
	body := decodeBody(t, recorder)
	assert.EqualValues(t, 1, body["count"], "should count the reviews")
}

func TestChatSessionEndpoints(t *testing.T) {
	ts := newTestServer(t)
	product, _, err := ts.store.CreateProduct(context.TODO(), "https://www.amazon.com/dp/B000000009")
	require.NoError(t, err)

	session, err := ts.store.CreateSession(context.TODO(), product.ID, uuid.NewString())
	require.NoError(t, err)
	_, err = ts.store.CreateMessage(context.TODO(), session.ID, models.RoleUser, "hello", nil)
	require.NoError(t, err)

	sessionsResp := ts.do(t, http.MethodGet, "/api/products/"+product.ID.String()+"/chat-sessions/", nil)
	require.Equal(t, http.StatusOK, sessionsResp.Code)
	assert.EqualValues(t, 1, decodeBody(t, sessionsResp)["count"], "should list the session")

	messagesResp := ts.do(t, http.MethodGet, "/api/chat-sessions/"+session.SessionID+"/messages/", nil)
	require.Equal(t, http.StatusOK, messagesResp.Code)
	assert.EqualValues(t, 1, decodeBody(t, messagesResp)["count"], "should list the message")

	t.Run("unknown session", func(t *testing.T) {
		recorder := ts.do(t, http.MethodGet, "/api/chat-sessions/"+uuid.NewString()+"/messages/", nil)
		require.Equal(t, http.StatusNotFound, recorder.Code)
	})
}
