package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/joe-black-jb/mops-revenue/internal"
	"github.com/joe-black-jb/mops-revenue/internal/mops"
	"github.com/joe-black-jb/mops-revenue/internal/revenue"
	"github.com/joe-black-jb/mops-revenue/internal/storage"
)

var errCatalogDisabled = errors.New("download catalog is not configured")

func abortWithError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, internal.Error{Status: status, Message: message})
}

func (s *Server) IndexGin(c *gin.Context) {
	now := time.Now()
	c.HTML(http.StatusOK, "index.html", gin.H{
		"ROCYear":      revenue.ToROC(now.Year()),
		"Month":        int(now.Month()),
		"AuthRequired": s.tokenSecret != "",
	})
}

func (s *Server) DownloadGin(c *gin.Context) {
	var reqBody internal.DownloadRequest
	// リクエストボディをバインドする
	if err := c.ShouldBindJSON(&reqBody); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	params, msg, ok := ConvertDownloadBody(&reqBody)
	if !ok {
		abortWithError(c, http.StatusBadRequest, msg)
		return
	}

	result, err := s.DownloadProcessor(c.Request.Context(), params)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, result)
	case errors.Is(err, mops.ErrDownloadFailed):
		s.log.Warn("download failed", "error", err)
		abortWithError(c, http.StatusBadGateway, "Failed to download data")
	case errors.Is(err, mops.ErrNoData), errors.Is(err, storage.ErrEmptyTable):
		s.log.Warn("no data", "error", err)
		abortWithError(c, http.StatusInternalServerError, "No data for this period")
	default:
		s.log.Error("download request failed", "market", params.Market, "year", params.Year, "month", params.Month, "error", err)
		abortWithError(c, http.StatusInternalServerError, "Failed to process data")
	}
}

func (s *Server) GetDownloadsGin(c *gin.Context) {
	var market revenue.Market
	if q := c.Query("market"); q != "" {
		m, err := revenue.ParseMarket(q)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "Invalid market type")
			return
		}
		market = m
	}

	entries, err := s.ListDownloadsProcessor(c.Request.Context(), market)
	if errors.Is(err, errCatalogDisabled) {
		abortWithError(c, http.StatusServiceUnavailable, err.Error())
		return
	}
	if err != nil {
		s.log.Error("list downloads failed", "error", err)
		abortWithError(c, http.StatusInternalServerError, "Failed to list downloads")
		return
	}
	c.IndentedJSON(http.StatusOK, entries)
}
