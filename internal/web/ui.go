package web

import (
	"context"
	"html/template"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/Veraticus/product-monitor/internal/common"
	"github.com/Veraticus/product-monitor/internal/dashboard"
	"github.com/Veraticus/product-monitor/internal/model"
	"github.com/labstack/echo/v4"
)

const dashboardPage = "dashboard.html"

var templateFuncs = template.FuncMap{
	"inc": func(i int) int { return i + 1 },
}

// renderer adapts html/template to echo.Renderer.
type renderer struct {
	pages *template.Template
}

func (r *renderer) Render(w io.Writer, name string, data any, _ echo.Context) error {
	return r.pages.ExecuteTemplate(w, name, data)
}

type tabView struct {
	Name   string
	URL    string
	Count  int
	Active bool
}

type columnView struct {
	Title  string
	URL    string
	Marker string
	Active bool
}

type rowView struct {
	Code      string
	Link      string
	Cells     []string
	HasCoupon bool
}

type slotView struct {
	Text      string
	Link      string
	Title     string
	HasCoupon bool
	Empty     bool
}

type leaderView struct {
	Bucket      string
	Comparative string
	Active      bool
	Slots       []slotView
}

type pageData struct {
	Title         string
	LastCollected string
	Notice        string
	Error         string
	Active        string
	Dir           string
	SortKey       string
	Tabs          []tabView
	Columns       []columnView
	Rows          []rowView
	Leaderboard   []leaderView
	BucketNames   []string
}

func (s *Server) handleDashboard(c echo.Context) error {
	s.mu.RLock()
	buckets := s.state.Buckets()
	products := s.state.AllProducts()
	last := s.state.LastCollectedText()
	board := s.state.Leaderboard()
	s.mu.RUnlock()

	active := c.QueryParam("bucket")
	if !buckets.Has(active) {
		active = buckets.First()
	}

	cfg, err := sortFromQuery(c)
	if err != nil {
		cfg = model.DefaultSort()
	}

	data := pageData{
		Title:         "Monitor de Produtos",
		LastCollected: last,
		Notice:        c.QueryParam("msg"),
		Error:         c.QueryParam("err"),
		Active:        active,
		SortKey:       string(cfg.Key),
		Dir:           string(cfg.Direction),
		BucketNames:   buckets.Names(),
	}

	for _, b := range buckets {
		data.Tabs = append(data.Tabs, tabView{
			Name:   b.Name,
			URL:    dashboardURL(b.Name, cfg, "", ""),
			Count:  len(dashboard.FilterBucket(products, b.Name)),
			Active: b.Name == active,
		})
	}

	for _, col := range dashboard.ProductColumns {
		view := columnView{Title: col.Title}
		if col.Key != "" {
			view.URL = dashboardURL(active, cfg.Toggle(col.Key), "", "")
			if col.Key == cfg.Key {
				view.Active = true
				view.Marker = "▲"
				if cfg.Direction == model.Descending {
					view.Marker = "▼"
				}
			}
		}
		data.Columns = append(data.Columns, view)
	}

	if active != "" {
		for _, p := range dashboard.ProductsFor(products, active, cfg) {
			data.Rows = append(data.Rows, rowView{
				Code:      p.Code,
				Link:      p.Link,
				Cells:     dashboard.ProductCells(p),
				HasCoupon: p.HasCoupon(),
			})
		}
	}

	for _, row := range board {
		view := leaderView{Bucket: row.Bucket, Comparative: row.Comparative, Active: row.Bucket == active}
		for i := 0; i < dashboard.LeaderboardSize; i++ {
			entry, ok := row.Slot(i)
			view.Slots = append(view.Slots, slotView{
				Text:      row.SlotText(i),
				Link:      entry.Link,
				Title:     entry.Title,
				HasCoupon: entry.HasCoupon,
				Empty:     !ok,
			})
		}
		data.Leaderboard = append(data.Leaderboard, view)
	}

	return c.Render(http.StatusOK, dashboardPage, data)
}

func (s *Server) handleUIIgnore(c echo.Context) error {
	code := strings.TrimSpace(c.Param("code"))
	bucket, cfg := viewFromForm(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), s.timeout)
	defer cancel()

	if err := s.ignore(ctx, code); err != nil {
		return c.Redirect(http.StatusSeeOther, dashboardURL(bucket, cfg, "", common.UserMessage(err)))
	}
	return c.Redirect(http.StatusSeeOther, dashboardURL(bucket, cfg, dashboard.IgnoredNotice(code), ""))
}

func (s *Server) handleUIClassify(c echo.Context) error {
	code := strings.TrimSpace(c.Param("code"))
	bucket, cfg := viewFromForm(c)

	var req ClassificationRequest
	if err := c.Bind(&req); err != nil || s.validate.Struct(&req) != nil {
		return c.Redirect(http.StatusSeeOther, dashboardURL(bucket, cfg, "", "Selecione uma classificação."))
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), s.timeout)
	defer cancel()

	if err := s.reclassify(ctx, code, req.Classification); err != nil {
		return c.Redirect(http.StatusSeeOther, dashboardURL(bucket, cfg, "", common.UserMessage(err)))
	}
	return c.Redirect(http.StatusSeeOther, dashboardURL(bucket, cfg, dashboard.ReclassifiedNotice(code, req.Classification), ""))
}

// viewFromForm recovers the page view the form was posted from.
func viewFromForm(c echo.Context) (string, model.SortConfig) {
	cfg := model.DefaultSort()
	if key, err := dashboard.ParseSortKey(c.FormValue("sort")); err == nil {
		cfg = model.SortConfig{Key: key, Direction: dashboard.ParseDirection(c.FormValue("dir"))}
	}
	return c.FormValue("bucket"), cfg
}

// dashboardURL builds a link back to the page with the given view and flash.
func dashboardURL(bucket string, cfg model.SortConfig, notice, errMsg string) string {
	q := url.Values{}
	if bucket != "" {
		q.Set("bucket", bucket)
	}
	if cfg != model.DefaultSort() {
		q.Set("sort", string(cfg.Key))
		q.Set("dir", string(cfg.Direction))
	}
	if notice != "" {
		q.Set("msg", notice)
	}
	if errMsg != "" {
		q.Set("err", errMsg)
	}
	if len(q) == 0 {
		return "/"
	}
	return "/?" + q.Encode()
}
