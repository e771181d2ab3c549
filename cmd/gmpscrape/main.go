package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	gmp "github.com/Roshiii-8511/ipo-gmp-scraper"
	"github.com/Roshiii-8511/ipo-gmp-scraper/fs"
	"github.com/Roshiii-8511/ipo-gmp-scraper/goquery"
	gmphttp "github.com/Roshiii-8511/ipo-gmp-scraper/http"
	"github.com/Roshiii-8511/ipo-gmp-scraper/rod"
	"github.com/Roshiii-8511/ipo-gmp-scraper/scrape"
	gmpslog "github.com/Roshiii-8511/ipo-gmp-scraper/slog"
	"github.com/alecthomas/kong"
	"github.com/google/uuid"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Fetcher overrides the fetcher selected by the CLI flags.
	// Set before calling Run().
	Fetcher gmp.Fetcher

	// Now returns the envelope timestamp. Defaults to time.Now.
	Now func() time.Time
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		Now: time.Now,
	}
}

// Run executes the CLI with the given arguments.
// A failed scrape returns an error after the failure envelope is written.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("gmpscrape"),
		kong.Description("Scrape the live IPO grey market premium listing into a JSON file.\n\n"+
			"Invalid flags or GMP_* values are rejected before the run and no output file is written. "+
			"A failed fetch or extraction still writes a failure envelope."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Vars{
			"url":              scrape.DefaultURL,
			"user_agent":       scrape.DefaultUserAgent,
			"timeout":          scrape.DefaultTimeout.String(),
			"output":           scrape.DefaultOutputPath,
			"name_indicators":  strings.Join(gmp.DefaultIndicators.Name, ","),
			"value_indicators": strings.Join(gmp.DefaultIndicators.Value, ","),
		},
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle help flags
	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	if _, err := parser.Parse(args); err != nil {
		return err
	}

	cfg := cli.Config()
	if err := cfg.Validate(); err != nil {
		return err
	}

	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})).
		With("run_id", uuid.NewString())

	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
		Now:    m.Now,
	}

	writer := fs.NewEnvelopeWriter(cfg.OutputPath)
	deps.Writer = gmpslog.NewLoggingEnvelopeWriter(writer, cfg.OutputPath, logger)
	deps.Extractor = gmpslog.NewLoggingExtractor(goquery.NewExtractor(goquery.WithIndicators(cfg.Indicators)), logger)

	fetcher := m.Fetcher
	if fetcher == nil {
		if cli.Browser {
			rodFetcher, err := rod.NewFetcher(
				rod.WithFetchTimeout(cfg.Timeout),
				rod.WithUserAgent(cfg.UserAgent),
			)
			if err != nil {
				fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
				// The output file must still describe this run.
				fetcher = &failingFetcher{err: fmt.Errorf("failed to start browser: %w", err)}
			} else {
				fetcher = rodFetcher
			}
		} else {
			fetcher = gmphttp.NewFetcher(
				gmphttp.WithTimeout(cfg.Timeout),
				gmphttp.WithUserAgent(cfg.UserAgent),
			)
		}
	}
	deps.Fetcher = gmpslog.NewLoggingFetcher(fetcher, logger)
	defer deps.Fetcher.Close()

	cmd := &ScrapeCmd{
		URL:        cfg.URL,
		OutputPath: cfg.OutputPath,
	}
	return cmd.Run(deps)
}

// CLI defines the command-line interface structure for Kong.
// Every option defaults to the live IPO GMP report, so a bare invocation
// needs no flags.
type CLI struct {
	URL             string        `default:"${url}" env:"GMP_URL" help:"Page to scrape"`
	Output          string        `short:"o" default:"${output}" env:"GMP_OUTPUT" help:"Output JSON file, overwritten on every run"`
	Timeout         time.Duration `short:"t" default:"${timeout}" env:"GMP_TIMEOUT" help:"Fetch timeout"`
	UserAgent       string        `default:"${user_agent}" env:"GMP_USER_AGENT" help:"User-Agent request header"`
	NameIndicators  []string      `sep:"," default:"${name_indicators}" env:"GMP_NAME_INDICATORS" help:"Header tokens identifying the name column, in priority order"`
	ValueIndicators []string      `sep:"," default:"${value_indicators}" env:"GMP_VALUE_INDICATORS" help:"Header tokens identifying the value column, in priority order"`
	Browser         bool          `short:"b" env:"GMP_BROWSER" help:"Render the page in headless Chrome before extraction"`
	Verbose         bool          `short:"v" help:"Log each step to stderr"`
}

// Config converts parsed flags into a run configuration.
func (c *CLI) Config() scrape.Config {
	return scrape.Config{
		URL:        c.URL,
		UserAgent:  c.UserAgent,
		Timeout:    c.Timeout,
		OutputPath: c.Output,
		Indicators: gmp.Indicators{
			Name:  lowerAll(c.NameIndicators),
			Value: lowerAll(c.ValueIndicators),
		},
	}
}

func lowerAll(tokens []string) []string {
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if t = strings.ToLower(strings.TrimSpace(t)); t != "" {
			out = append(out, t)
		}
	}
	return out
}

var _ gmp.Fetcher = (*failingFetcher)(nil)

// failingFetcher reports err for every fetch.
type failingFetcher struct {
	err error
}

func (f *failingFetcher) Fetch(ctx context.Context, url string) (string, error) {
	return "", f.err
}

func (f *failingFetcher) Close() error {
	return nil
}
