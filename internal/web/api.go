package web

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/Veraticus/product-monitor/internal/common"
	"github.com/Veraticus/product-monitor/internal/dashboard"
	"github.com/Veraticus/product-monitor/internal/model"
	"github.com/labstack/echo/v4"
)

// ResponseError is the JSON error body.
type ResponseError struct {
	Message string `json:"message"`
}

// ClassificationRequest is the body of a manual classification.
type ClassificationRequest struct {
	Classification string `json:"classification" form:"classification" validate:"required"`
}

// BucketSummary describes one bucket in the bucket listing.
type BucketSummary struct {
	Name     string   `json:"name"`
	Keywords []string `json:"keywords"`
	Count    int      `json:"count"`
}

// BucketsResponse lists buckets in display order.
type BucketsResponse struct {
	LastCollected string          `json:"last_collected,omitempty"`
	Buckets       []BucketSummary `json:"buckets"`
}

// ProductsResponse is one window of a bucket's sorted products.
type ProductsResponse struct {
	Bucket   string           `json:"bucket"`
	Sort     model.SortConfig `json:"sort"`
	Products []model.Product  `json:"products"`
	Total    int              `json:"total"`
	Offset   int              `json:"offset"`
	Limit    int              `json:"limit"`
}

// ActionResponse confirms an operator action.
type ActionResponse struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

// ReloadResponse reports a full reload. Errors lists fetches that failed and
// were replaced by empty data.
type ReloadResponse struct {
	Errors   []string `json:"errors,omitempty"`
	Buckets  int      `json:"buckets"`
	Products int      `json:"products"`
}

func (s *Server) handleBuckets(c echo.Context) error {
	s.mu.RLock()
	buckets := s.state.Buckets()
	products := s.state.AllProducts()
	last := s.state.LastCollectedText()
	s.mu.RUnlock()

	resp := BucketsResponse{
		LastCollected: last,
		Buckets:       make([]BucketSummary, 0, len(buckets)),
	}
	for _, b := range buckets {
		resp.Buckets = append(resp.Buckets, BucketSummary{
			Name:     b.Name,
			Keywords: b.Keywords,
			Count:    len(dashboard.FilterBucket(products, b.Name)),
		})
	}

	return c.JSON(http.StatusOK, resp)
}

func (s *Server) handleBucketProducts(c echo.Context) error {
	name := c.Param("name")

	cfg, err := sortFromQuery(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	offset, err := intQuery(c, "offset")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	limit, err := intQuery(c, "limit")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	s.mu.RLock()
	known := s.state.Buckets().Has(name)
	products := s.state.AllProducts()
	s.mu.RUnlock()

	if !known {
		return c.JSON(http.StatusNotFound, ResponseError{Message: common.ErrUnknownBucket.Error() + ": " + name})
	}

	sorted := dashboard.ProductsFor(products, name, cfg)
	return c.JSON(http.StatusOK, ProductsResponse{
		Bucket:   name,
		Sort:     cfg,
		Products: dashboard.Window(sorted, offset, limit),
		Total:    len(sorted),
		Offset:   offset,
		Limit:    limit,
	})
}

func (s *Server) handleLeaderboard(c echo.Context) error {
	s.mu.RLock()
	rows := s.state.Leaderboard()
	s.mu.RUnlock()

	return c.JSON(http.StatusOK, map[string]any{"rows": rows})
}

func (s *Server) handleIgnore(c echo.Context) error {
	code := strings.TrimSpace(c.Param("code"))
	if code == "" {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "product code is required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), s.timeout)
	defer cancel()

	if err := s.ignore(ctx, code); err != nil {
		return c.JSON(http.StatusBadGateway, ResponseError{Message: common.UserMessage(err)})
	}

	return c.JSON(http.StatusOK, ActionResponse{Code: code, Message: dashboard.IgnoredNotice(code)})
}

func (s *Server) handleClassification(c echo.Context) error {
	code := strings.TrimSpace(c.Param("code"))
	if code == "" {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "product code is required"})
	}

	var req ClassificationRequest
	if err := c.Bind(&req); err != nil {
		slog.Debug("Failed to bind classification request", "error", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid request body"})
	}
	if err := s.validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "classification is required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), s.timeout)
	defer cancel()

	if err := s.reclassify(ctx, code, req.Classification); err != nil {
		return c.JSON(http.StatusBadGateway, ResponseError{Message: common.UserMessage(err)})
	}

	return c.JSON(http.StatusOK, ActionResponse{
		Code:    code,
		Message: dashboard.ReclassifiedNotice(code, req.Classification),
	})
}

func (s *Server) handleReload(c echo.Context) error {
	if s.loader == nil {
		return c.JSON(http.StatusServiceUnavailable, ResponseError{Message: "reload is not configured"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), s.timeout)
	defer cancel()

	s.mu.Lock()
	err := s.state.Reload(ctx, s.loader)
	resp := ReloadResponse{
		Buckets:  len(s.state.Buckets()),
		Products: len(s.state.AllProducts()),
	}
	s.mu.Unlock()

	if err != nil {
		slog.Warn("Reload finished with errors", "error", err)
		resp.Errors = strings.Split(err.Error(), "\n")
	}

	return c.JSON(http.StatusOK, resp)
}

// sortFromQuery reads sort and dir. An absent key selects the default order.
func sortFromQuery(c echo.Context) (model.SortConfig, error) {
	raw := c.QueryParam("sort")
	if raw == "" {
		cfg := model.DefaultSort()
		if dir := c.QueryParam("dir"); dir != "" {
			cfg.Direction = dashboard.ParseDirection(dir)
		}
		return cfg, nil
	}

	key, err := dashboard.ParseSortKey(raw)
	if err != nil {
		return model.SortConfig{}, err
	}
	return model.SortConfig{Key: key, Direction: dashboard.ParseDirection(c.QueryParam("dir"))}, nil
}

var errBadInteger = errors.New("must be a non-negative integer")

func intQuery(c echo.Context, name string) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%s %w", name, errBadInteger)
	}
	return n, nil
}
