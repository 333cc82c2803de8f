package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/forgectl/forgectl/internal/errorsx"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect or clear the on-disk response cache",
}

var cachePathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the resolved cache location for this (domain, path)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return printResult(map[string]string{"cache_location": cfg.CacheLocation})
	},
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every entry in the resolved cache location",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.CacheLocation == "" {
			return &errorsx.ConfigurationError{Msg: "no cache_location configured for this domain"}
		}
		if err := os.RemoveAll(cfg.CacheLocation); err != nil {
			return err
		}
		return printResult(map[string]string{"cleared": cfg.CacheLocation})
	},
}

func init() {
	cacheCmd.AddCommand(cachePathCmd, cacheClearCmd)
}
