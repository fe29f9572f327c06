package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/harrisonrobin/taskbot/pkg/app"
	"github.com/harrisonrobin/taskbot/pkg/auth"
	"github.com/harrisonrobin/taskbot/pkg/config"
	"github.com/harrisonrobin/taskbot/pkg/google"
	"github.com/harrisonrobin/taskbot/pkg/index"
	"github.com/harrisonrobin/taskbot/pkg/logging"
	"github.com/harrisonrobin/taskbot/pkg/storage"
	"github.com/harrisonrobin/taskbot/pkg/task"
	"github.com/harrisonrobin/taskbot/pkg/ui"
	"github.com/mattn/go-isatty"
)

func main() {
	// 1. Parse Flags
	configPath := flag.String("config", "", "Path to the config file (default ~/.config/taskbot/config.toml)")
	dataFile := flag.String("file", "", "Task save file (overrides config)")
	logLevel := flag.String("log-level", "", "Diagnostic log level: debug, info, warn, error (overrides config)")
	calendarName := flag.String("calendar", "", "Google Calendar name to publish to (overrides config)")
	setCalendar := flag.String("set-calendar", "", "Set the default Google Calendar name")
	doSync := flag.Bool("sync", false, "Publish deadlines and events to Google Calendar and exit")
	doAuth := flag.Bool("auth", false, "Authenticate with Google Calendar and exit")
	noColor := flag.Bool("no-color", false, "Disable coloured output")
	flag.Parse()

	// 2. Resolve Config (Priority: Flag > Env > Config file > Default)
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *dataFile != "" {
		cfg.DataFile = *dataFile
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	if *calendarName != "" {
		cfg.Calendar = *calendarName
	}
	if *noColor {
		cfg.Color = false
	}

	logger, err := logging.New(os.Stderr, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// 3. Handle Set Calendar
	if *setCalendar != "" {
		cfg.Calendar = *setCalendar
		if err := config.Save(cfg, *configPath); err != nil {
			logger.Fatal("error saving config", "err", err)
		}
		fmt.Printf("Default calendar set to: %s\n", *setCalendar)
		return
	}

	stateDir, err := config.GetXdgHome()
	if err != nil {
		logger.Fatal("could not find configuration directory", "err", err)
	}

	// 4. Handle Authentication
	if *doAuth {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		a := &auth.Authenticator{Dir: stateDir, Logger: logger}
		if err := a.Reset(); err != nil {
			logger.Fatal("could not reset token", "err", err)
		}
		if _, err := a.GetCalendarService(ctx); err != nil {
			logger.Fatal("authentication failed", "err", err)
		}
		fmt.Printf("Authentication successful! Token saved to %s\n", a.TokenPath())
		return
	}

	store := storage.NewFile(cfg.DataFile)
	list, err := store.Load()
	if err != nil {
		logger.Fatal("could not load tasks; fix or move the save file and try again", "path", cfg.DataFile, "err", err)
	}
	logger.Debug("loaded tasks", "path", cfg.DataFile, "count", list.Len())

	// 5. Handle Calendar Sync
	if *doSync {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		if err := runSync(ctx, cfg, stateDir, list, logger); err != nil {
			logger.Fatal("calendar sync failed", "err", err)
		}
		return
	}

	// 6. Interactive Session
	styles := ui.PlainStyles()
	if cfg.Color {
		styles = ui.DefaultStyles()
	}

	var prompter ui.Prompter
	if isatty.IsTerminal(os.Stdin.Fd()) {
		prompter = ui.NewLinePrompter(cfg.HistoryFile)
	} else {
		prompter = ui.NewScannerPrompter(os.Stdin, nil)
	}
	defer func() {
		if err := prompter.Close(); err != nil {
			logger.Warn("could not save input history", "err", err)
		}
	}()

	session := &app.Session{
		List:     list,
		Store:    store,
		Prompter: prompter,
		Renderer: ui.NewRenderer(os.Stdout, styles),
		Logger:   logger,
	}
	if err := session.Run(); err != nil {
		logger.Error("session ended", "err", err)
	}
}

func runSync(ctx context.Context, cfg *config.Config, stateDir string, list *task.List, logger *log.Logger) error {
	evtIndex, err := index.NewEventIndex(filepath.Join(stateDir, index.FileName))
	if err != nil {
		return fmt.Errorf("failed to open event index: %w", err)
	}

	a := &auth.Authenticator{Dir: stateDir, Logger: logger}
	srv, err := a.GetCalendarService(ctx)
	if err != nil {
		return err
	}
	client, err := google.NewClient(ctx, srv, cfg.Calendar, evtIndex, logger)
	if err != nil {
		return err
	}

	summary, syncErr := client.Sync(ctx, list, time.Now())
	// keep the mappings made before a failure
	if err := evtIndex.Save(); err != nil {
		logger.Warn("failed to save event index", "err", err)
	}
	if syncErr != nil {
		return syncErr
	}
	fmt.Printf("Synced to calendar %q: %s\n", cfg.Calendar, summary)
	return nil
}
