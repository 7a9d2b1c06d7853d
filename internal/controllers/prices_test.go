package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/thiagarajant/qqq-tqqq-allocation-sub000/prices"
	"github.com/thiagarajant/qqq-tqqq-allocation-sub000/prices/mocks"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

func setupRouter(ctrl *Controller) *gin.Engine {
	r := gin.New()
	r.POST("/prices/bulk", ctrl.BulkUpload)
	r.POST("/prices/dedup", ctrl.Deduplicate)
	return r
}

func TestController_BulkUpload(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("invalid body returns 400", func(t *testing.T) {
		ctrl := NewController(nil, zap.NewNop())
		router := setupRouter(ctrl)

		req := httptest.NewRequest(http.MethodPost, "/prices/bulk", bytes.NewBufferString("{not json"))
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "invalid request body")
	})

	t.Run("empty stocks returns 400", func(t *testing.T) {
		ctrl := NewController(nil, zap.NewNop())
		router := setupRouter(ctrl)

		body, _ := json.Marshal(prices.BulkRequest{FolderName: "daily-us"})
		req := httptest.NewRequest(http.MethodPost, "/prices/bulk", bytes.NewBuffer(body))
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "stocks is required")
	})

	t.Run("store error returns 500", func(t *testing.T) {
		ctrlMock := gomock.NewController(t)
		defer ctrlMock.Finish()
		store := mocks.NewMockRepository(ctrlMock)

		store.EXPECT().
			SaveBatch(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(0, int64(0), assert.AnError)

		ctrl := NewController(store, zap.NewNop())
		router := setupRouter(ctrl)

		body, _ := json.Marshal(prices.BulkRequest{
			Stocks: []prices.SymbolBatch{{Symbol: "QQQ", Records: []prices.Record{{Date: "2020-01-02", Close: 10}}}},
		})
		req := httptest.NewRequest(http.MethodPost, "/prices/bulk", bytes.NewBuffer(body))
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), "assert.AnError")
	})

	t.Run("successful upload returns 200", func(t *testing.T) {
		ctrlMock := gomock.NewController(t)
		defer ctrlMock.Finish()
		store := mocks.NewMockRepository(ctrlMock)

		store.EXPECT().
			SaveBatch(gomock.Any(), gomock.Any(), prices.SaveOptions{
				ConvertToUppercase: true,
				PreventDuplicates:  true,
				FolderName:         "daily-us",
			}).
			Return(2, int64(500), nil)

		ctrl := NewController(store, zap.NewNop())
		router := setupRouter(ctrl)

		body, _ := json.Marshal(prices.BulkRequest{
			Stocks: []prices.SymbolBatch{
				{Symbol: "qqq", Records: []prices.Record{{Date: "2020-01-02", Close: 10}}},
				{Symbol: "tqqq", Records: []prices.Record{{Date: "2020-01-02", Close: 30}}},
			},
			ConvertToUppercase: true,
			PreventDuplicates:  true,
			FolderName:         "daily-us",
		})
		req := httptest.NewRequest(http.MethodPost, "/prices/bulk", bytes.NewBuffer(body))
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp prices.BulkResponse
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, 2, resp.SymbolsAdded)
		assert.Equal(t, int64(500), resp.RecordsAdded)
	})
}

func TestController_Deduplicate(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("store error returns 500", func(t *testing.T) {
		ctrlMock := gomock.NewController(t)
		defer ctrlMock.Finish()
		store := mocks.NewMockRepository(ctrlMock)

		store.EXPECT().
			Deduplicate(gomock.Any()).
			Return(int64(0), assert.AnError)

		ctrl := NewController(store, zap.NewNop())
		router := setupRouter(ctrl)

		req := httptest.NewRequest(http.MethodPost, "/prices/dedup", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})

	t.Run("successful dedup returns counts", func(t *testing.T) {
		ctrlMock := gomock.NewController(t)
		defer ctrlMock.Finish()
		store := mocks.NewMockRepository(ctrlMock)

		store.EXPECT().
			Deduplicate(gomock.Any()).
			Return(int64(42), nil)

		ctrl := NewController(store, zap.NewNop())
		router := setupRouter(ctrl)

		req := httptest.NewRequest(http.MethodPost, "/prices/dedup", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp prices.DedupResponse
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, int64(42), resp.DuplicatesRemoved)
		assert.GreaterOrEqual(t, resp.ProcessingTimeMs, int64(0))
	})
}
