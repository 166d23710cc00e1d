package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/mohammad-safakhou/briefer/config"
	agentcore "github.com/mohammad-safakhou/briefer/internal/agent/core"
	"github.com/mohammad-safakhou/briefer/internal/agent/telemetry"
	"github.com/mohammad-safakhou/briefer/internal/knowledge"
	"github.com/mohammad-safakhou/briefer/provider"
	"github.com/mohammad-safakhou/briefer/tools/web_fetch"
	"github.com/mohammad-safakhou/briefer/tools/web_search"
	"github.com/spf13/cobra"
)

func researchCMD() *cobra.Command {
	var cfgPath string
	var research = &cobra.Command{
		Use:   "research [query...]",
		Short: "Run one research pipeline pass and print the result as JSON",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgPath)
			if err != nil {
				return err
			}
			query := strings.Join(args, " ")

			llm := provider.NewLLM(cfg.LLM)

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

			orch := agentcore.NewOrchestrator(cfg.Research, llm, searcher, scraper, knowledge.Builder{}, telemetry.New(false))

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			res, err := orch.Run(ctx, query)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(res)
		},
	}
	research.PersistentFlags().StringVarP(&cfgPath, "config", "c", getenv("BRIEFER_CONFIG", ""), "config file (default is .)")

	return research
}
