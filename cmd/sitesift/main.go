package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/sitesift/sitesift/internal/config"
	"github.com/sitesift/sitesift/pkg/extractor"
	"github.com/sitesift/sitesift/pkg/fetcher"
	"github.com/sitesift/sitesift/pkg/reporter"
	"github.com/sitesift/sitesift/pkg/scraper"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "sitesift",
	Short: "SiteSift - Visit Site link scraper for showcase listings",
	Long: `SiteSift crawls paginated showcase listing pages, discovers the
detail page behind each entry, and extracts its outbound "Visit Site" link
into a JSON mapping of detail URL to destination.`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
}

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Scrape Visit Site links from a range of listing pages",
	RunE: func(cmd *cobra.Command, args []string) error {
		startPage, _ := cmd.Flags().GetInt("start-page")
		endPage, _ := cmd.Flags().GetInt("end-page")
		delaySecs, _ := cmd.Flags().GetFloat64("delay")
		maxSites, _ := cmd.Flags().GetInt("max-sites")
		output, _ := cmd.Flags().GetString("output")
		configPath, _ := cmd.Flags().GetString("config")
		verbose, _ := cmd.Flags().GetBool("verbose")

		if endPage == 0 {
			endPage = startPage
		}
		if err := scraper.ValidatePageRange(startPage, endPage); err != nil {
			return fmt.Errorf("invalid page range: %w", err)
		}

		cfg, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		logger := log.New(io.Discard, "", 0)
		if verbose || cfg.Logging.Verbose {
			logger = log.New(os.Stderr, "", 0)
		}

		ex, err := extractor.New(cfg.Scraper.BaseURL, cfg.Scraper.DetailPathMarker, cfg.Scraper.VisitLabel)
		if err != nil {
			return fmt.Errorf("failed to create extractor: %w", err)
		}

		f := fetcher.New(cfg.HTTP, logger)
		s := scraper.New(f, ex, cfg.Scraper.ListingTemplate, scraper.Options{
			Delay:    time.Duration(delaySecs * float64(time.Second)),
			MaxSites: maxSites,
		}, logger)

		results, err := s.Scrape(cmd.Context(), scraper.PageRange(startPage, endPage))
		if err != nil {
			return fmt.Errorf("scrape failed: %w", err)
		}

		r := reporter.New()
		if err := r.WriteJSON(results, output); err != nil {
			return err
		}
		if output != "" {
			fmt.Printf("Results saved to %s\n", output)
		}

		if verbose || cfg.Logging.Verbose {
			for _, dc := range r.DomainSummary(results) {
				fmt.Fprintf(os.Stderr, "%s\t%d\n", dc.Domain, dc.Count)
			}
		}
		return nil
	},
}

func init() {
	scrapeCmd.Flags().Int("start-page", 1, "First listing page to scrape (inclusive)")
	scrapeCmd.Flags().Int("end-page", 0, "Last listing page to scrape (inclusive, defaults to start page)")
	scrapeCmd.Flags().Float64("delay", 0, "Seconds to sleep between detail-page requests")
	scrapeCmd.Flags().Int("max-sites", 0, "Cap on the total number of detail pages to fetch (0 = unlimited)")
	scrapeCmd.Flags().String("output", "", "Path to write JSON results (prints to stdout when omitted)")

	rootCmd.AddCommand(scrapeCmd)

	rootCmd.PersistentFlags().String("config", "", "Config file path")
	rootCmd.PersistentFlags().Bool("verbose", false, "Enable verbose output")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
