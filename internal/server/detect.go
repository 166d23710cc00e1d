package server

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	agentcore "github.com/mohammad-safakhou/briefer/internal/agent/core"
	agenttele "github.com/mohammad-safakhou/briefer/internal/agent/telemetry"
	"github.com/mohammad-safakhou/briefer/utils"
)

// DetectHandler serves both detection modes: single-article analysis of a URL
// and full agentic research of a free-text query.
type DetectHandler struct {
	Orch    *agentcore.Orchestrator
	Scraper agentcore.Scraper
	Cache   *RunCache
	Tele    *agenttele.Telemetry
}

type detectRequest struct {
	URL string `json:"url"`
}

type agenticRequest struct {
	Query string `json:"query"`
	URL   string `json:"url"`
}

// Detect handles POST /api/detect: fetch one article and analyze it.
func (h *DetectHandler) Detect(c echo.Context) error {
	var req detectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	req.URL = strings.TrimSpace(req.URL)
	if req.URL == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "url is required")
	}
	return h.analyzeURL(c, req.URL)
}

// AgenticDetect handles POST /api/agentic_detect: a url triggers article
// analysis, otherwise a query triggers the full research pipeline.
func (h *DetectHandler) AgenticDetect(c echo.Context) error {
	var req agenticRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	req.Query = strings.TrimSpace(req.Query)
	req.URL = strings.TrimSpace(req.URL)

	if req.URL != "" {
		return h.analyzeURL(c, req.URL)
	}
	if req.Query == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "either query or url is required")
	}

	ctx := c.Request().Context()

	if h.Cache != nil {
		if res, ok := h.Cache.Get(ctx, req.Query); ok {
			h.Tele.RecordCacheLookup("hit")
			return c.JSON(http.StatusOK, researchResponse(res, true))
		}
		h.Tele.RecordCacheLookup("miss")
	}

	res, err := h.Orch.Run(ctx, req.Query)
	if err != nil {
		if err == agentcore.ErrEmptyQuery {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "research run failed")
	}
	if h.Cache != nil {
		h.Cache.Set(ctx, req.Query, res)
	}
	return c.JSON(http.StatusOK, researchResponse(res, false))
}

func (h *DetectHandler) analyzeURL(c echo.Context, url string) error {
	ctx := c.Request().Context()
	page, err := h.Scraper.Scrape(ctx, url)
	if err != nil {
		h.Tele.RecordToolFailure("scraper")
		return echo.NewHTTPError(http.StatusBadGateway, "failed to fetch article")
	}
	article := agentcore.Article{URL: url, Title: page.Title, Text: page.Text}
	analysis := h.Orch.Analyst().Analyze(ctx, article)
	h.Tele.RecordDetection()

	return c.JSON(http.StatusOK, map[string]interface{}{
		"mode":              "url-article-analysis",
		"url":               url,
		"domain":            utils.Domain(url),
		"title":             page.Title,
		"summary":           analysis.Summary,
		"snippets":          analysis.Snippets,
		"evidence":          analysis.Evidence,
		"contradictions":    analysis.Contradictions,
		"credibility_score": analysis.Credibility,
		"knowledge_graph":   analysis.KnowledgeGraph,
		"stance":            analysis.Stance,
		"bias_note":         analysis.BiasNote,
	})
}

func researchResponse(res agentcore.RunResult, cached bool) map[string]interface{} {
	return map[string]interface{}{
		"mode":              "deep-research",
		"cached":            cached,
		"id":                res.ID,
		"query":             res.Query,
		"plan":              res.Plan,
		"task_results":      res.TaskResults,
		"brief":             res.Brief,
		"credibility_score": res.TopLevelCredibility,
		"timestamp":         res.Timestamp,
	}
}
