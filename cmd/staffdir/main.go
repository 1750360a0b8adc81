package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/staffdir"
	"github.com/fwojciec/staffdir/goquery"
	"github.com/fwojciec/staffdir/htmltomarkdown"
	sdhttp "github.com/fwojciec/staffdir/http"
	"github.com/fwojciec/staffdir/rod"
	"github.com/fwojciec/staffdir/scrape"
	sdslog "github.com/fwojciec/staffdir/slog"
	"github.com/fwojciec/staffdir/sqlite"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Default database path. Overridden by --db or STAFFDIR_DB.
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Fetcher overrides the renderer built from flags. Used in tests.
	Fetcher staffdir.Fetcher
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("staffdir"),
		kong.Description("Extract staff names, job titles and emails from school district directories."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Vars{"db_path": m.DBPath},
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		err := staffdir.Errorf(staffdir.EINVALID, "no command specified. Run 'staffdir --help' to see available commands")
		fmt.Fprintf(stderr, "error: %s\n", staffdir.ErrorMessage(err))
		return err
	}

	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		fmt.Fprintf(stderr, "error: %s\n", err)
		return err
	}
	cmd := strings.Fields(kongCtx.Command())[0]

	deps.Logger = newLogger(stderr, cmd, cli.Verbose)

	if cli.DB != ":memory:" {
		_ = os.MkdirAll(filepath.Dir(cli.DB), 0755)
	}
	m.DB = sqlite.NewDB(cli.DB)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set STAFFDIR_DB to use a different database path\n")
		fmt.Fprintf(stderr, "error: failed to open database at %q: %s\n", cli.DB, err)
		return err
	}
	defer m.Close()
	deps.DB = m.DB

	selectors := sqlite.NewSelectorService(m.DB)
	if seeded, err := selectors.SeedSelectorConfig(ctx, staffdir.DefaultSelectorConfig()); err != nil {
		fmt.Fprintf(stderr, "error: %s\n", staffdir.ErrorMessage(err))
		return err
	} else if seeded {
		deps.Logger.Info("seeded selector config", "db", cli.DB)
	}
	deps.Selectors = sdslog.NewLoggingSelectorService(selectors, deps.Logger)

	var flags *FetchFlags
	switch cmd {
	case "scrape":
		flags = &cli.Scrape.FetchFlags
	case "serve":
		flags = &cli.Serve.FetchFlags
	case "snippets":
		flags = &cli.Snippets.FetchFlags
	}

	if flags != nil {
		fetcher := m.Fetcher
		if fetcher == nil {
			fetcher, err = newFetcher(flags)
			if err != nil {
				fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed, or pass --no-browser")
				fmt.Fprintf(stderr, "error: failed to start browser: %s\n", err)
				return err
			}
			defer fetcher.Close()
		}
		deps.Fetcher = sdslog.NewLoggingFetcher(fetcher, deps.Logger)
		deps.Snippets = goquery.NewSnippetFinder(htmltomarkdown.NewConverter())
	}

	switch cmd {
	case "scrape":
		scraper := newScraper(deps, cli.Scrape.RequireSelector, cli.Scrape.FetchFlags)
		scraper.Progress = progressPrinter(stderr)
		deps.Scraper = sdslog.NewLoggingScraper(scraper, deps.Logger)
	case "serve":
		scraper := newScraper(deps, cli.Serve.RequireSelector, cli.Serve.FetchFlags)
		deps.Scraper = sdslog.NewLoggingScraper(scraper, deps.Logger)
	}

	return kongCtx.Run(deps)
}

func newScraper(deps *Dependencies, requireSelector bool, flags FetchFlags) *scrape.Scraper {
	return &scrape.Scraper{
		Fetcher:         deps.Fetcher,
		Extractor:       goquery.NewExtractor(),
		Selectors:       deps.Selectors,
		Links:           goquery.NewLinkFinder(),
		RateLimiter:     scrape.NewHostLimiter(flags.RequestsPerSecond),
		RequireSelector: requireSelector,
		MaxPages:        flags.MaxPages,
		MaxSubPages:     flags.MaxSubPages,
		Concurrency:     flags.Concurrency,
	}
}

func newFetcher(flags *FetchFlags) (staffdir.Fetcher, error) {
	if flags.NoBrowser {
		return sdhttp.NewFetcher(sdhttp.WithTimeout(flags.Timeout)), nil
	}
	f, err := rod.NewFetcher(
		rod.WithFetchTimeout(flags.Timeout),
		rod.WithNavigationTimeout(flags.NavTimeout),
		rod.WithRenderTimeout(flags.RenderTimeout),
		rod.WithMaxConcurrentPages(int64(flags.Concurrency)+1),
	)
	if err != nil {
		return nil, err
	}
	return f, nil
}

// newLogger logs to stderr. The server logs requests at info level; other
// commands only surface warnings unless --verbose is set.
func newLogger(w io.Writer, cmd string, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if cmd == "serve" {
		level = slog.LevelInfo
	}
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// progressPrinter reports skipped and retried pages on w.
func progressPrinter(w io.Writer) scrape.ProgressFunc {
	var mu sync.Mutex
	return func(event scrape.ProgressEvent) {
		mu.Lock()
		defer mu.Unlock()
		switch event.Type {
		case scrape.ProgressPage:
			fmt.Fprintf(w, "  %s: %d records\n", event.URL, event.Records)
		case scrape.ProgressRetry:
			fmt.Fprintf(w, "  retry %s (attempt %d): %v\n", event.URL, event.Attempt, event.Error)
		case scrape.ProgressFailed:
			fmt.Fprintf(w, "  skip %s: %v\n", event.URL, event.Error)
		}
	}
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "staffdir.db"
	}
	return filepath.Join(home, ".staffdir", "staffdir.db")
}
