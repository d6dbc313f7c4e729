package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/steneberg/webharvest/pkg/fetch"
	"github.com/steneberg/webharvest/pkg/harvest"
	"github.com/steneberg/webharvest/pkg/logging"
)

func rootCmd() *cobra.Command {
	var (
		configPath  string
		logLevel    string
		pretty      bool
		metricsAddr string
		userAgent   string
	)

	cmd := &cobra.Command{
		Use:   "webharvest",
		Short: "Scrape static HTML listings into CSV files",
		Long: `webharvest fetches static HTML pages, extracts structured records
using selector schemas, paginates through a fixed page range and writes
the results to CSV files.

Without a config file it scrapes the built-in quote and book listing
targets against the toscrape.com demo sites.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logging.Setup(logging.Config{
				Level:  logging.LogLevel(logLevel),
				Pretty: pretty,
				Output: os.Stderr,
			})

			targets := harvest.DefaultTargets()
			if configPath != "" {
				cfg, err := loadConfig(configPath)
				if err != nil {
					log.Error().Err(err).Str("path", configPath).Msg("Failed to load config")
					return err
				}
				targets = cfg.Targets
			}

			if metricsAddr != "" {
				mux := http.NewServeMux()
				mux.Handle("/metrics", promhttp.Handler())
				go func() {
					log.Info().Str("addr", metricsAddr).Msg("Serving metrics")
					if err := http.ListenAndServe(metricsAddr, mux); err != nil {
						log.Warn().Err(err).Msg("Metrics server stopped")
					}
				}()
			}

			fetcher := fetch.New(fetch.Config{UserAgent: userAgent})
			runner := harvest.NewRunner(fetcher)

			summaries, err := runner.RunAll(cmd.Context(), targets)
			if err != nil {
				log.Error().Err(err).Msg("Run aborted")
				return err
			}

			// Best-effort semantics: per-target failures are reported but
			// do not change the exit code.
			for _, s := range summaries {
				if s.Err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "target %s failed: %v\n", s.Target, s.Err)
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "target %s: %d records -> %s (%s)\n",
					s.Target, s.Records, s.Output, s.Elapsed.Round(time.Millisecond))
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&configPath, "config", "c", getEnv("WEBHARVEST_CONFIG", ""), "yaml config file with scrape targets")
	flags.StringVar(&logLevel, "log-level", getEnv("WEBHARVEST_LOG_LEVEL", "info"), "log level (debug, info, warn, error)")
	flags.BoolVar(&pretty, "pretty", false, "human-readable console logs instead of JSON")
	flags.StringVar(&metricsAddr, "metrics-addr", getEnv("WEBHARVEST_METRICS_ADDR", ""), "serve Prometheus metrics on this address during the run")
	flags.StringVar(&userAgent, "user-agent", getEnv("WEBHARVEST_USER_AGENT", ""), "override the request User-Agent")

	return cmd
}
