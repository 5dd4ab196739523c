package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"dentrack/internal/domain"
	"dentrack/internal/handler"
	"dentrack/internal/service"
	"dentrack/mocks"
)

func newProcessHandler() (*handler.ProcessHandler, *mocks.MockIngestService, *mocks.MockProcessService) {
	ingestSvc := new(mocks.MockIngestService)
	processSvc := new(mocks.MockProcessService)
	h := handler.NewProcessHandler(ingestSvc, processSvc)
	return h, ingestSvc, processSvc
}

func TestProcessHandler_Ingest_Success(t *testing.T) {
	h, ingestSvc, _ := newProcessHandler()

	uploads := []domain.Upload{
		{ID: uuid.New(), Filename: "weekly_2024-02-05.png", Status: domain.UploadStatusNew},
	}
	ingestSvc.On("RegisterIncoming", mock.Anything).Return(uploads, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/ingest", nil)

	h.Ingest(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			Registered int `json:"registered"`
		} `json:"data"`
	}
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Data.Registered)
}

func TestProcessHandler_Ingest_NoClinics(t *testing.T) {
	h, ingestSvc, _ := newProcessHandler()

	ingestSvc.On("RegisterIncoming", mock.Anything).Return(nil, domain.ErrNoClinicsConfigured)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/ingest", nil)

	h.Ingest(c)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestProcessHandler_Process_ReportsPerItemOutcomes(t *testing.T) {
	h, _, processSvc := newProcessHandler()

	report := &service.BatchReport{Items: []service.BatchItemResult{
		{UploadID: uuid.New(), Filename: "ok.png", Status: domain.UploadStatusProcessed},
		{UploadID: uuid.New(), Filename: "bad.png", Status: domain.UploadStatusFailed, Reason: "image not found"},
	}}
	processSvc.On("ProcessNewUploads", mock.Anything).Return(report, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/process", nil)

	h.Process(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			Processed int                       `json:"processed"`
			Failed    int                       `json:"failed"`
			Items     []service.BatchItemResult `json:"items"`
		} `json:"data"`
	}
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Data.Processed)
	assert.Equal(t, 1, resp.Data.Failed)
	require.Len(t, resp.Data.Items, 2)
	assert.Equal(t, "image not found", resp.Data.Items[1].Reason)
}
