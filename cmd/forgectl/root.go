package main

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/forgectl/forgectl/internal/config"
	"github.com/forgectl/forgectl/internal/metrics"
	"github.com/forgectl/forgectl/internal/remote"
	"github.com/forgectl/forgectl/internal/xtime"
)

var (
	flagDomain       string
	flagPath         string
	flagConfigDir    string
	flagLogLevel     string
	flagNoCache      bool
	flagServeMetrics bool
	flagMetricsAddr  string
)

// log and rf are resolved once in rootCmd's PersistentPreRunE and read
// by every subcommand's RunE; cobra runs a single command per process
// invocation, so there is no concurrent-init hazard.
var (
	log *logrus.Entry
	rf  *remote.Forge
	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:               "forgectl",
	Short:             "Uniform CLI client for GitHub and GitLab",
	PersistentPreRunE: setup,
	SilenceUsage:      true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDomain, "domain", "", "forge domain, e.g. github.com or gitlab.example.com")
	rootCmd.PersistentFlags().StringVar(&flagPath, "path", "", "project path, e.g. owner/repo")
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "config directory (default "+config.DefaultConfigDir+")")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "log level: panic, fatal, error, warn, info, debug, trace")
	rootCmd.PersistentFlags().BoolVar(&flagNoCache, "no-cache", false, "bypass the on-disk response cache")
	rootCmd.PersistentFlags().BoolVar(&flagServeMetrics, "serve-metrics", false, "serve prometheus metrics on --metrics-addr")
	rootCmd.PersistentFlags().StringVar(&flagMetricsAddr, "metrics-addr", ":9090", "address to serve /metrics on")
	_ = rootCmd.MarkPersistentFlagRequired("domain")
	_ = rootCmd.MarkPersistentFlagRequired("path")

	rootCmd.AddCommand(mergeRequestCmd)
	rootCmd.AddCommand(pipelineCmd)
	rootCmd.AddCommand(runnerCmd)
	rootCmd.AddCommand(releaseCmd)
	rootCmd.AddCommand(registryCmd)
	rootCmd.AddCommand(projectCmd)
	rootCmd.AddCommand(gistCmd)
	rootCmd.AddCommand(userCmd)
	rootCmd.AddCommand(commentCmd)
	rootCmd.AddCommand(browseCmd)
	rootCmd.AddCommand(cacheCmd)
}

func setup(cmd *cobra.Command, _ []string) error {
	level, err := logrus.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	base := logrus.New()
	base.SetLevel(level)
	log = base.WithField("component", "cli")

	if flagServeMetrics {
		reg := prometheus.NewRegistry()
		metrics.Register(reg)
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		go func() {
			log.WithField("addr", flagMetricsAddr).Info("serving metrics")
			if err := http.ListenAndServe(flagMetricsAddr, mux); err != nil {
				log.WithError(err).Error("metrics server exited")
			}
		}()
	}

	configDir := flagConfigDir
	if configDir == "" {
		configDir = expandHome(config.DefaultConfigDir)
	}

	cfg, err = config.Resolve(configDir, flagDomain, flagPath)
	if err != nil {
		return err
	}

	cacheType := remote.CacheFile
	if flagNoCache {
		cacheType = remote.CacheNone
	}

	rf, err = remote.New(remote.RemoteURL{Domain: flagDomain, Path: flagPath}, cfg, cacheType, xtime.RealClock{}, log)
	return err
}

func expandHome(p string) string {
	if !strings.HasPrefix(p, "~") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}
