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

func newUploadHandler() (*handler.UploadHandler, *mocks.MockUploadRepo, *mocks.MockProcessService) {
	uploadRepo := new(mocks.MockUploadRepo)
	processSvc := new(mocks.MockProcessService)
	h := handler.NewUploadHandler(uploadRepo, processSvc)
	return h, uploadRepo, processSvc
}

func TestUploadHandler_List_Success(t *testing.T) {
	h, uploadRepo, _ := newUploadHandler()

	uploads := []domain.Upload{
		{ID: uuid.New(), Filename: "report.png", Status: domain.UploadStatusProcessed},
	}
	uploadRepo.On("List", mock.Anything).Return(uploads, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/entries", nil)

	h.List(c)

	assert.Equal(t, http.StatusOK, w.Code)
	uploadRepo.AssertExpectations(t)
}

func TestUploadHandler_GetByID_IncludesLineItems(t *testing.T) {
	h, uploadRepo, _ := newUploadHandler()

	id := uuid.New()
	upload := &domain.Upload{ID: id, Filename: "report.png", Status: domain.UploadStatusProcessed}
	items := []domain.LineItem{{ID: uuid.New(), UploadID: id, Description: "crown prep"}}
	uploadRepo.On("GetByID", mock.Anything, id).Return(upload, nil)
	uploadRepo.On("ListLineItems", mock.Anything, id).Return(items, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/entries/"+id.String(), nil)
	c.Params = gin.Params{{Key: "id", Value: id.String()}}

	h.GetByID(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			Filename  string            `json:"filename"`
			LineItems []domain.LineItem `json:"line_items"`
		} `json:"data"`
	}
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, "report.png", resp.Data.Filename)
	require.Len(t, resp.Data.LineItems, 1)
	assert.Equal(t, "crown prep", resp.Data.LineItems[0].Description)
}

func TestUploadHandler_GetByID_InvalidID(t *testing.T) {
	h, _, _ := newUploadHandler()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/entries/not-a-uuid", nil)
	c.Params = gin.Params{{Key: "id", Value: "not-a-uuid"}}

	h.GetByID(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUploadHandler_GetByID_NotFound(t *testing.T) {
	h, uploadRepo, _ := newUploadHandler()

	id := uuid.New()
	uploadRepo.On("GetByID", mock.Anything, id).Return(nil, domain.ErrUploadNotFound)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/entries/"+id.String(), nil)
	c.Params = gin.Params{{Key: "id", Value: id.String()}}

	h.GetByID(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUploadHandler_Reprocess_NotFound(t *testing.T) {
	h, _, processSvc := newUploadHandler()

	id := uuid.New()
	processSvc.On("ReprocessUpload", mock.Anything, id).Return(false, nil, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/entries/"+id.String()+"/reprocess", nil)
	c.Params = gin.Params{{Key: "id", Value: id.String()}}

	h.Reprocess(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUploadHandler_Reprocess_FailureIsStillOK(t *testing.T) {
	h, _, processSvc := newUploadHandler()

	id := uuid.New()
	result := &service.BatchItemResult{
		UploadID: id,
		Filename: "report.png",
		Status:   domain.UploadStatusFailed,
		Reason:   "image not found",
	}
	processSvc.On("ReprocessUpload", mock.Anything, id).Return(true, result, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/entries/"+id.String()+"/reprocess", nil)
	c.Params = gin.Params{{Key: "id", Value: id.String()}}

	h.Reprocess(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data service.BatchItemResult `json:"data"`
	}
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, domain.UploadStatusFailed, resp.Data.Status)
	assert.Equal(t, "image not found", resp.Data.Reason)
}
