package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/thiagarajant/qqq-tqqq-allocation-sub000/prices"
	"go.uber.org/zap"
)

type Controller struct {
	store  prices.Repository
	logger *zap.Logger
}

func NewController(store prices.Repository, logger *zap.Logger) *Controller {
	return &Controller{
		store:  store,
		logger: logger,
	}
}

// BulkUpload ingests one aggregated batch of symbol data.
func (ctrl *Controller) BulkUpload(ctx *gin.Context) {
	var req prices.BulkRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if len(req.Stocks) == 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "stocks is required"})
		return
	}

	ctrl.logger.Info("bulk upload received",
		zap.Int("stocks", len(req.Stocks)),
		zap.String("folder", req.FolderName))

	symbols, records, err := ctrl.store.SaveBatch(ctx.Request.Context(), req.Stocks, prices.SaveOptions{
		ConvertToUppercase: req.ConvertToUppercase,
		PreventDuplicates:  req.PreventDuplicates,
		FolderName:         req.FolderName,
	})
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, prices.BulkResponse{
		SymbolsAdded: symbols,
		RecordsAdded: records,
	})
}

// Deduplicate collapses duplicate (symbol, date) rows table-wide.
func (ctrl *Controller) Deduplicate(ctx *gin.Context) {
	start := time.Now()

	removed, err := ctrl.store.Deduplicate(ctx.Request.Context())
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctrl.logger.Info("deduplication finished",
		zap.Int64("removed", removed),
		zap.Duration("took", time.Since(start)))

	ctx.JSON(http.StatusOK, prices.DedupResponse{
		DuplicatesRemoved: removed,
		ProcessingTimeMs:  time.Since(start).Milliseconds(),
	})
}
