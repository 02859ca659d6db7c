package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/delimatsuo/headhunter/internal/http/dto"
	"github.com/delimatsuo/headhunter/internal/model"
	"github.com/delimatsuo/headhunter/internal/search"
)

// SearchPipeline is the funnel surface the handler needs; satisfied by
// *search.Pipeline.
type SearchPipeline interface {
	Search(ctx context.Context, query model.QueryContext, opts search.Options) (*model.SearchResponse, error)
}

type SearchHandler struct {
	pipeline SearchPipeline
}

func NewSearchHandler(pipeline SearchPipeline) *SearchHandler {
	return &SearchHandler{pipeline: pipeline}
}

func (h *SearchHandler) Search(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.WarnContext(ctx, "invalid search request", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.pipeline.Search(ctx, req.ToQueryContext(), search.Options{
		Debug:            req.Debug,
		IncludeRationale: req.IncludeRationale,
	})
	if err != nil {
		if errors.Is(err, search.ErrInvalidQuery) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		slog.ErrorContext(ctx, "search failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "search failed"})
		return
	}

	c.JSON(http.StatusOK, resp)
}
