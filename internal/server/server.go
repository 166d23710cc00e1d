package server

import (
	"fmt"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	appconfig "github.com/mohammad-safakhou/briefer/config"
	agentcore "github.com/mohammad-safakhou/briefer/internal/agent/core"
	agenttele "github.com/mohammad-safakhou/briefer/internal/agent/telemetry"
	"github.com/mohammad-safakhou/briefer/internal/knowledge"
	"github.com/mohammad-safakhou/briefer/provider"
	"github.com/mohammad-safakhou/briefer/tools/web_fetch"
	"github.com/mohammad-safakhou/briefer/tools/web_search"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Run wires the full pipeline and serves the HTTP API.
func Run(cfg appconfig.Config, addr string) error {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	// Unified HTTP error handler with structured JSON and logging
	baseLogger := log.New(log.Writer(), "[HTTP] ", log.LstdFlags)
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		code := http.StatusInternalServerError
		msg := "internal error"
		if he, ok := err.(*echo.HTTPError); ok {
			code = he.Code
			if he.Message != nil {
				msg = fmt.Sprint(he.Message)
			}
		}
		req := c.Request()
		baseLogger.Printf("%d %s %s from %s: %v", code, req.Method, req.URL.Path, c.RealIP(), err)
		if !c.Response().Committed {
			_ = c.JSON(code, map[string]interface{}{"error": msg})
		}
	}
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type"},
		AllowCredentials: true,
	}))

	tele := agenttele.New(cfg.Telemetry.Enabled)

	e.GET("/healthz", func(c echo.Context) error { return c.String(200, "ok") })
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(tele.Registry(), promhttp.HandlerOpts{})))

	llm := provider.NewLLM(cfg.LLM)
	if !llm.Available() {
		baseLogger.Printf("no LLM key configured, running with deterministic mock")
	}

	searchKey := cfg.Sources.SerperAPIKey
	if web_search.Provider(cfg.Sources.Provider) == web_search.BraveProvider {
		searchKey = cfg.Sources.BraveAPIKey
	}
	searcher, err := web_search.NewSearcher(web_search.Provider(cfg.Sources.Provider), searchKey, cfg.Sources.LocalCorpus)
	if err != nil {
		return fmt.Errorf("failed to create searcher: %w", err)
	}

	scraper, err := web_fetch.NewScraper(web_fetch.FetcherType(cfg.Scraper.Fetcher), cfg.Scraper.Timeout, cfg.Scraper.MaxChars)
	if err != nil {
		return fmt.Errorf("failed to create scraper: %w", err)
	}

	orch := agentcore.NewOrchestrator(cfg.Research, llm, searcher, scraper, knowledge.Builder{}, tele)

	var cache *RunCache
	if cfg.Storage.Redis.Host != "" {
		cache, err = NewRunCache(cfg.Storage.Redis)
		if err != nil {
			// The cache is an optimization; a dead redis must not block serving.
			baseLogger.Printf("run cache disabled: %v", err)
			cache = nil
		}
	}

	h := &DetectHandler{
		Orch:    orch,
		Scraper: scraper,
		Cache:   cache,
		Tele:    tele,
	}

	api := e.Group("/api")
	api.POST("/detect", h.Detect)
	api.POST("/agentic_detect", h.AgenticDetect)

	if addr == "" {
		addr = cfg.Server.Address
	}
	log.Printf("listening on %s", addr)
	return e.Start(addr)
}
