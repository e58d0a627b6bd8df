package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/adrg/xdg"
	"github.com/alecthomas/kong"
	"github.com/hhaeri/HydroAgent"
	"github.com/hhaeri/HydroAgent/goquery"
	hhttp "github.com/hhaeri/HydroAgent/http"
	"github.com/hhaeri/HydroAgent/hunt"
	"github.com/hhaeri/HydroAgent/lru"
	"github.com/hhaeri/HydroAgent/rod"
	hslog "github.com/hhaeri/HydroAgent/slog"
	"github.com/hhaeri/HydroAgent/sqlite"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !IsReported(err) {
			fmt.Fprintln(os.Stderr, err)
		}
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Browser backs the hunt command. Nil launches Chrome on demand.
	Browser hydroagent.Browser

	// Services for end-to-end testing.
	HuntService hydroagent.HuntService
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
		kong.Name("hydroagent"),
		kong.Description("Find SGMA annual reports and groundwater sustainability plans by basin."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'hydroagent --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	logger, closeLog, err := setupLogging(defaultLogConfig(cli.LogLevel, cli.LogFile), stderr)
	if err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}
	defer closeLog()
	deps.Logger = logger

	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set HYDROAGENT_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	m.HuntService = sqlite.NewHuntService(m.DB)
	deps.Hunts = m.HuntService

	if kongCtx.Selected() != nil && kongCtx.Selected().Name == "hunt" {
		browser := m.Browser
		if browser == nil {
			b, err := rod.NewBrowser(rod.WithHeadless(!cli.Hunt.Headful))
			if err != nil {
				fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
				return fmt.Errorf("failed to start browser: %w", err)
			}
			defer b.Close()
			browser = b
		}
		deps.Hunter = newHunter(browser, &cli.Hunt, logger)
	}

	return kongCtx.Run(deps)
}

// newHunter assembles the query pipeline: logging, then the in-run cache,
// then retries, then the page-level hunter.
func newHunter(browser hydroagent.Browser, cmd *HuntCmd, logger *slog.Logger) hydroagent.Hunter {
	harvester := &hunt.Harvester{
		Outlines:       goquery.NewOutlineReader(),
		DetailTimeout:  cmd.DetailTimeout,
		FollowPlanPage: cmd.FollowPlan,
		Logger:         logger,
	}
	if cmd.Probe {
		harvester.Prober = hhttp.NewProber()
	}

	var h hydroagent.Hunter = &hunt.Hunter{
		Browser: hslog.NewLoggingBrowser(browser, logger),
		Resolver: &hunt.Scout{
			Tables: goquery.NewTableReader(""),
			Logger: logger,
		},
		Harvester: harvester,
	}
	if cmd.Retries > 0 {
		delays := hunt.DefaultRetryDelays()
		for len(delays) < cmd.Retries {
			delays = append(delays, delays[len(delays)-1]*2)
		}
		h = &hunt.Retrier{Hunter: h, Delays: delays[:cmd.Retries], Logger: logger}
	}
	h = lru.NewCachingHunter(h, len(cmd.Identifiers), 0)
	return hslog.NewLoggingHunter(h, logger)
}

func defaultDBPath() string {
	if path := os.Getenv("HYDROAGENT_DB"); path != "" {
		return path
	}
	path, err := xdg.DataFile("hydroagent/history.db")
	if err != nil {
		return "hydroagent.db"
	}
	return path
}
