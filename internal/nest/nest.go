package nest

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"quotenest/internal/cli/scheme/colours"
	"quotenest/internal/config"
	"quotenest/internal/domain/library"
	"quotenest/internal/domain/library/cache"
	"quotenest/internal/domain/library/toscrape"
	"quotenest/internal/domain/quote"
	"quotenest/internal/game"
	"quotenest/internal/tts"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// QuoteNest main application structure
type QuoteNest struct {
	cfg   *config.Config
	cache *cache.Cache
	in    io.Reader
	out   io.Writer
	log   logrus.FieldLogger

	newEngine func(context.Context, tts.Config) (tts.Engine, error)

	mu     sync.Mutex
	engine tts.Engine

	ctx    context.Context
	Cancel context.CancelFunc
}

// NewSource builds the scraper the cache falls back to on a miss.
func NewSource(cfg *config.Config, log logrus.FieldLogger) (library.PageSource, error) {
	client := toscrape.NewCollyFetcher(cfg.Source.UserAgent, cfg.Source.Timeout, log)
	fetcher, err := toscrape.NewPageFetcher(cfg.Source.Origin, client, log)
	if err != nil {
		return nil, err
	}
	return fetcher, nil
}

func NewQuoteNest(cfg *config.Config, source library.PageSource, in io.Reader, out io.Writer, log logrus.FieldLogger) *QuoteNest {
	ctx, cancel := context.WithCancel(context.Background())
	return &QuoteNest{
		cfg:       cfg,
		cache:     cache.New(cfg.Cache.Dir, source, log),
		in:        in,
		out:       out,
		log:       log,
		newEngine: tts.NewEngine,
		ctx:       ctx,
		Cancel:    cancel,
	}
}

func (qn *QuoteNest) ShowWelcome(cmd *cobra.Command, args []string) {
	fmt.Fprintln(qn.out)
	colours.Title.Fprintln(qn.out, "Welcome to QuoteNest!")
	fmt.Fprintln(qn.out)
	colours.Info.Fprintln(qn.out, "Available commands:")
	fmt.Fprintln(qn.out, "  • quotenest play          - Guess who said it")
	fmt.Fprintln(qn.out, "  • quotenest list          - Browse the scraped quotes")
	fmt.Fprintln(qn.out, "  • quotenest cache status  - Show where the quotes are stored")
	fmt.Fprintln(qn.out, "  • quotenest cache refresh - Scrape the quotes again")
	fmt.Fprintln(qn.out, "  • quotenest cache clear   - Delete the stored quotes")
	fmt.Fprintln(qn.out)
}

// Play loads the quotes, scraping them on first use, and starts the game.
func (qn *QuoteNest) Play(cmd *cobra.Command, args []string) error {
	quotes, err := qn.loadQuotes()
	if err != nil {
		return err
	}

	speak, _ := cmd.Flags().GetBool("speak")

	var opts []game.Option
	engine, err := qn.speechEngine(speak)
	if err != nil {
		colours.Warning.Fprintf(qn.out, "Quotes will not be read aloud: %v\n", err)
	} else if engine != nil {
		opts = append(opts, game.WithNarrator(engine))
	}

	return game.New(quotes, qn.in, qn.out, qn.log, opts...).Run(qn.ctx)
}

func (qn *QuoteNest) ListQuotes(cmd *cobra.Command, args []string) error {
	author, _ := cmd.Flags().GetString("author")

	quotes, err := qn.loadQuotes()
	if err != nil {
		return err
	}

	fmt.Fprintln(qn.out)
	colours.Title.Fprintln(qn.out, "Scraped Quotes")
	fmt.Fprintln(qn.out)

	count := 0
	for _, record := range quotes.Records() {
		if author != "" && !strings.Contains(strings.ToLower(record.Author), strings.ToLower(author)) {
			continue
		}

		count++
		fmt.Fprintf(qn.out, "  %d. ", count)
		colours.Quote.Fprint(qn.out, record.Text)
		fmt.Fprint(qn.out, "\n     by ")
		colours.Author.Fprintln(qn.out, record.Author)
		colours.Info.Fprintf(qn.out, "     %s\n", record.BirthDetail)
		fmt.Fprintln(qn.out)
	}

	if count == 0 {
		colours.Warning.Fprintln(qn.out, "No quotes found matching your criteria.")
	} else {
		colours.Success.Fprintf(qn.out, "Found %d quotes.\n", count)
	}
	return nil
}

// ShowCacheStatus displays information about the quote cache
func (qn *QuoteNest) ShowCacheStatus(cmd *cobra.Command, args []string) error {
	colours.Title.Fprintln(qn.out, "Quote Cache Status")

	info, err := qn.cache.Info()
	if err != nil {
		return fmt.Errorf("failed to get cache info: %w", err)
	}

	colours.Info.Fprintf(qn.out, "Location: %s\n", info.Path)
	if !info.Exists {
		colours.Warning.Fprintln(qn.out, "Cache does not exist")
		colours.Info.Fprintln(qn.out, "Run 'quotenest cache refresh' to create it")
		return nil
	}

	colours.Success.Fprintln(qn.out, "Cache exists")
	colours.Info.Fprintf(qn.out, "Size: %d bytes\n", info.Size)
	colours.Info.Fprintf(qn.out, "Last modified: %s\n", info.ModTime.Format("2006-01-02 15:04:05"))
	return nil
}

// RefreshCache throws away the stored quotes and scrapes them again.
func (qn *QuoteNest) RefreshCache(cmd *cobra.Command, args []string) error {
	colours.Info.Fprintf(qn.out, "Refreshing quotes from %s...\n", qn.cfg.Source.Origin)

	quotes, err := qn.cache.Refresh(qn.ctx)
	if err != nil {
		return fmt.Errorf("failed to refresh cache: %w", err)
	}

	colours.Success.Fprintf(qn.out, "Cache refreshed! Stored %d quotes\n", quotes.Len())
	return nil
}

func (qn *QuoteNest) ClearCache(cmd *cobra.Command, args []string) error {
	if err := qn.cache.Clear(); err != nil {
		return fmt.Errorf("failed to clear cache: %w", err)
	}
	colours.Success.Fprintln(qn.out, "Cache cleared")
	return nil
}

// AddCacheCommands registers the cache management commands on rootCmd. app is
// called when a command runs, after the root command has built it.
func AddCacheCommands(rootCmd *cobra.Command, app func() *QuoteNest) {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the local quote cache",
		Long:  "Inspect or rebuild the file holding the scraped quotes",
	}

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show cache status",
		Long:  "Display information about the local quote cache",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app().ShowCacheStatus(cmd, args)
		},
	}

	refreshCmd := &cobra.Command{
		Use:   "refresh",
		Short: "Scrape the quotes again",
		Long:  "Delete the local cache and scrape every page of the quote site",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app().RefreshCache(cmd, args)
		},
	}

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete the local cache",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app().ClearCache(cmd, args)
		},
	}

	cacheCmd.AddCommand(statusCmd, refreshCmd, clearCmd)
	rootCmd.AddCommand(cacheCmd)
}

// Stop silences any quote being read aloud.
func (qn *QuoteNest) Stop() {
	qn.mu.Lock()
	defer qn.mu.Unlock()

	if qn.engine != nil {
		if err := qn.engine.Stop(); err != nil {
			qn.log.WithError(err).Debug("Failed to stop speech")
		}
	}
}

// Close releases the speech engine.
func (qn *QuoteNest) Close() error {
	qn.mu.Lock()
	defer qn.mu.Unlock()

	if qn.engine == nil {
		return nil
	}
	err := qn.engine.Close()
	qn.engine = nil
	return err
}

func (qn *QuoteNest) loadQuotes() (quote.Dataset, error) {
	info, err := qn.cache.Info()
	if err != nil {
		return quote.Dataset{}, err
	}
	if !info.Exists {
		colours.Info.Fprintf(qn.out, "No quote cache found, scraping %s...\n", qn.cfg.Source.Origin)
	}

	return qn.cache.LoadOrBuild(qn.ctx)
}

// speechEngine returns nil when quotes should not be read aloud. The --speak
// flag turns on automatic engine selection unless an engine is configured.
func (qn *QuoteNest) speechEngine(speak bool) (tts.Engine, error) {
	engineType := qn.cfg.Speech.Engine
	if engineType == tts.EngineTypeNone.String() {
		if !speak {
			return nil, nil
		}
		engineType = tts.EngineTypeAuto.String()
	}

	engine, err := qn.newEngine(qn.ctx, tts.Config{
		Type:      engineType,
		Voice:     qn.cfg.Speech.Voice,
		Speed:     qn.cfg.Speech.Speed,
		Volume:    qn.cfg.Speech.Volume,
		CachePath: qn.cfg.Speech.CachePath,
	})
	if err != nil {
		return nil, err
	}

	qn.mu.Lock()
	qn.engine = engine
	qn.mu.Unlock()
	return engine, nil
}
