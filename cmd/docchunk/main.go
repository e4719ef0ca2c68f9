package main

import (
	"context"
	"fmt"
	"io"
	stdlog "log/slog"
	"net/url"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/docchunk"
	"github.com/fwojciec/docchunk/crawl"
	"github.com/fwojciec/docchunk/goquery"
	"github.com/fwojciec/docchunk/htmltomarkdown"
	dochttp "github.com/fwojciec/docchunk/http"
	"github.com/fwojciec/docchunk/jsonl"
	"github.com/fwojciec/docchunk/readability"
	docslog "github.com/fwojciec/docchunk/slog"
	"github.com/fwojciec/docchunk/sqlite"
	"github.com/fwojciec/docchunk/trafilatura"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct{}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Out          string        `short:"o" default:"chunks.jsonl" help:"Output JSONL file"`
	Source       string        `short:"s" help:"Source label stored in chunk metadata (default: the site host)"`
	Extractor    string        `default:"readability" enum:"readability,trafilatura" help:"Primary content extractor"`
	Delay        time.Duration `short:"d" default:"500ms" help:"Pause between requests"`
	MaxPages     int           `default:"5000" help:"Maximum number of pages to visit"`
	MinTokens    int           `default:"250" help:"Minimum chunk size in approximate tokens"`
	MaxTokens    int           `default:"900" help:"Maximum chunk size in approximate tokens"`
	MinContent   int           `default:"200" help:"Minimum extracted characters for a page to produce chunks"`
	Timeout      time.Duration `short:"t" default:"30s" help:"Fetch timeout per page"`
	UserAgent    string        `default:"docchunk/1.0" help:"User-Agent header sent with every request"`
	Cookies      string        `type:"existingfile" help:"Netscape cookie file to preload the cookie jar"`
	CookieHeader string        `help:"Raw Cookie header sent with every request"`
	DB           string        `help:"Also store chunks in this SQLite database"`
	Verbose      bool          `short:"v" help:"Log each fetch to stderr instead of showing a spinner"`
	URL          string        `arg:"" required:"" help:"Documentation site base URL"`
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("docchunk"),
		kong.Description("Crawl a documentation site into token-bounded JSONL chunks"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle no arguments
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no arguments provided")
	}

	// Handle help flags
	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	if _, err := parser.Parse(args); err != nil {
		return err
	}

	base, err := docchunk.Normalize(cli.URL)
	if err != nil {
		return fmt.Errorf("%s", docchunk.ErrorMessage(err))
	}

	source := cli.Source
	if source == "" {
		if u, err := url.Parse(base); err == nil {
			source = u.Host
		}
	}

	// Fetcher, optionally authenticated via a cookie file or raw header.
	fetchOpts := []dochttp.Option{
		dochttp.WithTimeout(cli.Timeout),
		dochttp.WithUserAgent(cli.UserAgent),
	}
	if cli.Cookies != "" {
		cookies, err := dochttp.LoadCookieFile(cli.Cookies)
		if err != nil {
			return fmt.Errorf("failed to load cookie file: %w", err)
		}
		fetchOpts = append(fetchOpts, dochttp.WithCookies(cookies))
	}
	if cli.CookieHeader != "" {
		fetchOpts = append(fetchOpts, dochttp.WithCookieHeader(cli.CookieHeader))
	}

	var fetcher docchunk.Fetcher
	fetcher, err = dochttp.NewFetcher(fetchOpts...)
	if err != nil {
		return fmt.Errorf("failed to create fetcher: %w", err)
	}
	defer fetcher.Close()

	var sitemaps docchunk.SitemapService = dochttp.NewSitemapService(fetcher)

	if cli.Verbose {
		logger := stdlog.New(stdlog.NewTextHandler(stderr, nil))
		fetcher = docslog.NewLoggingFetcher(fetcher, logger)
		sitemaps = docslog.NewLoggingSitemapService(sitemaps, logger)
	}

	// Primary extractor plus a structural fallback for pages the
	// readability heuristic misjudges.
	var primary docchunk.Extractor
	switch cli.Extractor {
	case "trafilatura":
		primary = trafilatura.NewExtractor()
	default:
		primary = readability.NewExtractor()
	}
	content := &docchunk.ContentExtractor{
		Chain:             []docchunk.Extractor{primary, goquery.NewFallbackExtractor()},
		Converter:         htmltomarkdown.NewConverter(),
		FallbackThreshold: cli.MinContent,
	}

	// Output sinks: JSONL always, SQLite when requested.
	jsonlWriter, err := jsonl.OpenFile(cli.Out)
	if err != nil {
		return fmt.Errorf("failed to open output file: %w", err)
	}
	defer jsonlWriter.Close()

	writers := docchunk.MultiWriter{jsonlWriter}

	var store *sqlite.ChunkStore
	if cli.DB != "" {
		db := sqlite.NewDB(cli.DB)
		if err := db.Open(); err != nil {
			return err
		}
		defer db.Close()

		store, err = sqlite.NewChunkStore(ctx, db, base, source)
		if err != nil {
			return fmt.Errorf("failed to record crawl run: %w", err)
		}
		writers = append(writers, store)
	}

	crawler := &crawl.Crawler{
		Sitemaps:   sitemaps,
		Fetcher:    fetcher,
		Links:      goquery.NewLinkExtractor(),
		Content:    content,
		Chunks:     writers,
		Pacer:      crawl.NewPacer(cli.Delay),
		Rules:      docchunk.DefaultPathRules(),
		Source:     source,
		MaxPages:   cli.MaxPages,
		MinContent: cli.MinContent,
		ChunkOpts: docchunk.ChunkOptions{
			MinTokens: cli.MinTokens,
			MaxTokens: cli.MaxTokens,
		},
	}

	progress, done := newProgress(stderr, cli.Verbose)
	result, err := crawler.Crawl(ctx, base, progress)
	done()
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "Crawled %d pages (%d skipped), wrote %d chunks to %s\n",
		result.Pages, result.Skipped, result.Chunks, cli.Out)
	if store != nil {
		fmt.Fprintf(stdout, "Stored crawl run %s in %s\n", store.CrawlID(), cli.DB)
	}

	return nil
}
