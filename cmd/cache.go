package cmd

import (
	"fmt"
	"time"

	"deckmaker/internal/imagecache"
	"deckmaker/pkg/config"

	"github.com/spf13/cobra"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the image cache",
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all cached images",
	RunE:  runCacheClear,
}

var cachePruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Remove cached images past their retention age",
	RunE:  runCachePrune,
}

func init() {
	cacheCmd.AddCommand(cacheClearCmd)
	cacheCmd.AddCommand(cachePruneCmd)
	rootCmd.AddCommand(cacheCmd)
}

func openCache() (*imagecache.Cache, error) {
	cfg := config.Load()
	return imagecache.New(imagecache.Config{
		Dir:       cfg.Images.CacheDir,
		Retention: time.Duration(cfg.Images.RetentionHours) * time.Hour,
		MaxWidth:  cfg.Images.MaxWidth,
	}, nil)
}

func runCacheClear(cmd *cobra.Command, args []string) error {
	cache, err := openCache()
	if err != nil {
		return err
	}
	defer func() { _ = cache.Close() }()

	count, err := cache.Clear()
	if err != nil {
		return err
	}
	fmt.Printf("Removed %d cached image(s)\n", count)
	return nil
}

func runCachePrune(cmd *cobra.Command, args []string) error {
	cache, err := openCache()
	if err != nil {
		return err
	}
	defer func() { _ = cache.Close() }()

	if err := cache.Cleanup(); err != nil {
		return err
	}
	remaining, err := cache.Len()
	if err != nil {
		return err
	}
	fmt.Printf("Pruned cache, %d image(s) remaining\n", remaining)
	return nil
}
