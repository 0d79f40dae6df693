package router

import (
	"net/http"
	"strconv"
	"time"

	"github.com/cryptopulse/newsfeed/internal/aggregator"
	"github.com/cryptopulse/newsfeed/internal/apperr"
	"github.com/cryptopulse/newsfeed/internal/news"
	"github.com/cryptopulse/newsfeed/internal/storage"
	"github.com/cryptopulse/newsfeed/pkg/pagination"
	"github.com/cryptopulse/newsfeed/pkg/stringsutil"
	"github.com/labstack/echo/v4"
)

// dateOnly accepts bare dashboard date-picker values alongside RFC3339.
const dateOnly = "2006-01-02"

type NewsRouter struct {
	e   *echo.Echo
	svc *news.Service
	agg *aggregator.Aggregator
}

func NewNewsRouter(e *echo.Echo, svc *news.Service, agg *aggregator.Aggregator) *NewsRouter {
	return &NewsRouter{
		e:   e,
		svc: svc,
		agg: agg,
	}
}

func (r *NewsRouter) Bind() {
	g := r.e.Group("/api/news")
	g.GET("", r.listHandler)
	g.GET("/categories", r.categoriesHandler)
	g.GET("/sources", r.sourcesHandler)
	g.GET("/stats", r.statsHandler)
	g.POST("/aggregate", r.aggregateHandler)
}

// listHandler godoc
// @Summary List news articles
// @Description Filtered, sorted, paginated view over active articles
// @Tags news
// @Param sources query string false "comma-separated source slugs"
// @Param categories query string false "comma-separated categories"
// @Param sentiment query string false "positive|negative|neutral, empty string matches unset"
// @Param dateFrom query string false "inclusive lower bound (RFC3339 or YYYY-MM-DD)"
// @Param dateTo query string false "inclusive upper bound (RFC3339 or YYYY-MM-DD)"
// @Param search query string false "substring match on title or summary"
// @Param sort query string false "publishedAt|impact|sentiment|source"
// @Param direction query string false "asc|desc"
// @Param page query int false "page number, 1-based"
// @Param pageSize query int false "page size"
// @Success 200 {object} dto.NewsPage
// @Router /api/news [get]
func (r *NewsRouter) listHandler(c echo.Context) error {
	filter, err := parseFilter(c)
	if err != nil {
		return err
	}

	page, err := parsePage(c)
	if err != nil {
		return err
	}

	sort := storage.Sort(c.QueryParam("sort"))
	dir := storage.Direction(c.QueryParam("direction"))

	result, err := r.svc.GetNews(c.Request().Context(), filter, sort, dir, page)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

// categoriesHandler godoc
// @Summary List categories present among active articles
// @Tags news
// @Success 200 {array} dto.Facet
// @Router /api/news/categories [get]
func (r *NewsRouter) categoriesHandler(c echo.Context) error {
	facets, err := r.svc.GetCategories(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, facets)
}

// sourcesHandler godoc
// @Summary List sources present among active articles
// @Tags news
// @Success 200 {array} dto.Facet
// @Router /api/news/sources [get]
func (r *NewsRouter) sourcesHandler(c echo.Context) error {
	facets, err := r.svc.GetSources(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, facets)
}

// statsHandler godoc
// @Summary Feed statistics
// @Tags news
// @Success 200 {object} dto.NewsStats
// @Router /api/news/stats [get]
func (r *NewsRouter) statsHandler(c echo.Context) error {
	stats, err := r.svc.GetStats(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}

// aggregateHandler godoc
// @Summary Trigger an aggregation run
// @Description Fetches all sources, classifies and persists new articles
// @Tags news
// @Success 200 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /api/news/aggregate [post]
func (r *NewsRouter) aggregateHandler(c echo.Context) error {
	if err := r.agg.Run(c.Request().Context()); err != nil {
		return c.JSON(http.StatusBadGateway, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "completed"})
}

func parseFilter(c echo.Context) (storage.Filter, error) {
	filter := storage.Filter{
		Sources:    stringsutil.SplitCSV(c.QueryParam("sources")),
		Categories: stringsutil.SplitCSV(c.QueryParam("categories")),
		Search:     c.QueryParam("search"),
	}

	// sentiment is special: present-but-empty means "no sentiment"
	if values, ok := c.QueryParams()["sentiment"]; ok && len(values) > 0 {
		filter.Sentiment = &values[0]
	}

	from, err := parseDate(c.QueryParam("dateFrom"))
	if err != nil {
		return storage.Filter{}, apperr.NewValidationWrap("invalid dateFrom", err)
	}
	filter.DateFrom = from

	to, err := parseDate(c.QueryParam("dateTo"))
	if err != nil {
		return storage.Filter{}, apperr.NewValidationWrap("invalid dateTo", err)
	}
	filter.DateTo = to

	return filter, nil
}

func parsePage(c echo.Context) (*pagination.OffsetRequest, error) {
	page := &pagination.OffsetRequest{Page: 1, Size: pagination.PageDefaultSize}

	if raw := c.QueryParam("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return nil, apperr.NewValidation("page must be a positive integer")
		}
		page.Page = n
	}
	if raw := c.QueryParam("pageSize"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return nil, apperr.NewValidation("pageSize must be a positive integer")
		}
		page.Size = n
	}

	page.Validate()
	return page, nil
}

func parseDate(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	t, err := time.Parse(dateOnly, raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
