package rest

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rocketscienceinc/connectfour-backend/internal/apperror"
	"github.com/rocketscienceinc/connectfour-backend/internal/repository"
)

const maxBodySize = 1 << 20

type dataHandler struct {
	logger *slog.Logger
	repo   repository.KeyValueRepository
}

func newDataHandler(logger *slog.Logger, repo repository.KeyValueRepository) *dataHandler {
	return &dataHandler{
		logger: logger.With("handler", "data"),
		repo:   repo,
	}
}

func (that *dataHandler) get(ctx *gin.Context) {
	key := ctx.Param("key")

	value, err := that.repo.Get(ctx.Request.Context(), key)
	if errors.Is(err, apperror.ErrKeyNotFound) {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Key not found"})
		return
	}
	if err != nil {
		that.logger.Error("failed to get key", "key", key, "error", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}

	ctx.Data(http.StatusOK, "application/json; charset=utf-8", value)
}

func (that *dataHandler) put(ctx *gin.Context) {
	key := ctx.Param("key")

	body, err := io.ReadAll(http.MaxBytesReader(ctx.Writer, ctx.Request.Body, maxBodySize))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			ctx.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "Body too large"})
			return
		}
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Could not read body"})
		return
	}

	if !json.Valid(body) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Body must be valid JSON"})
		return
	}

	if err = that.repo.Put(ctx.Request.Context(), key, body); err != nil {
		that.logger.Error("failed to put key", "key", key, "error", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true, "key": key})
}

func (that *dataHandler) delete(ctx *gin.Context) {
	key := ctx.Param("key")

	err := that.repo.Delete(ctx.Request.Context(), key)
	if errors.Is(err, apperror.ErrKeyNotFound) {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Key not found"})
		return
	}
	if err != nil {
		that.logger.Error("failed to delete key", "key", key, "error", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true, "key": key})
}
