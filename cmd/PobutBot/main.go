package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/pobut/PobutBot/internal/finance"
	"github.com/pobut/PobutBot/internal/flow"
	"github.com/pobut/PobutBot/internal/messaging"
	"github.com/pobut/PobutBot/internal/scheduler"
	"github.com/pobut/PobutBot/internal/store"
	"github.com/pobut/PobutBot/internal/util"
	"github.com/pobut/PobutBot/internal/weather"
)

// Default configuration constants
const (
	// DefaultStateDir is the default directory for PobutBot state data
	DefaultStateDir = "/var/lib/pobutbot"
	// DefaultDBFileName is the default SQLite database filename
	DefaultDBFileName = "pobutbot.db"
	// DefaultTimezone is the deployment timezone for schedules and record dates
	DefaultTimezone = "Europe/Dublin"
	// Default weather coordinates (Longford, Ireland)
	DefaultLatitude  = 53.727
	DefaultLongitude = -7.798
)

func main() {
	// Initialize structured logger
	initializeLogger()

	// Load environment configuration
	config := loadEnvironmentConfig()

	// Parse command line flags
	flags := parseCommandLineFlags(config)

	if *flags.botToken == "" {
		slog.Error("BOT_TOKEN is required")
		os.Exit(1)
	}
	if *flags.adminChatID == 0 {
		slog.Error("ADMIN_CHAT_ID is required")
		os.Exit(1)
	}

	loc, err := time.LoadLocation(*flags.timezone)
	if err != nil {
		slog.Error("Invalid timezone", "error", err, "timezone", *flags.timezone)
		os.Exit(1)
	}

	slog.Info("Bootstrapping PobutBot with configured modules")
	if err := run(flags, loc); err != nil {
		slog.Error("PobutBot failed to run", "error", err)
		os.Exit(1)
	}
	slog.Info("PobutBot exited successfully")
}

// Config holds environment configuration
type Config struct {
	BotToken       string
	AdminChatID    int64
	DatabaseURL    string
	StateDir       string
	Timezone       string
	Latitude       float64
	Longitude      float64
	FlowTimeout    time.Duration
	RatesBroadcast bool
}

// Flags holds command line flag values
type Flags struct {
	botToken       *string
	adminChatID    *int64
	dbDSN          *string
	stateDir       *string
	timezone       *string
	latitude       *float64
	longitude      *float64
	flowTimeout    *time.Duration
	ratesBroadcast *bool
}

// initializeLogger sets up structured logging with the level from the environment
func initializeLogger() {
	level := slog.LevelInfo
	switch strings.ToLower(os.Getenv("POBUTBOT_LOG_LEVEL")) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
}

// loadEnvironmentConfig loads configuration from environment variables and .env file
func loadEnvironmentConfig() Config {
	if err := godotenv.Load(); err != nil {
		slog.Debug("failed to load .env file", "error", err)
	} else {
		slog.Debug("successfully loaded .env file")
	}

	config := Config{
		BotToken:       os.Getenv("BOT_TOKEN"),
		AdminChatID:    util.ParseInt64Env("ADMIN_CHAT_ID", 0),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		StateDir:       os.Getenv("POBUTBOT_STATE_DIR"),
		Timezone:       os.Getenv("TIMEZONE"),
		Latitude:       util.ParseFloatEnv("LATITUDE", DefaultLatitude),
		Longitude:      util.ParseFloatEnv("LONGITUDE", DefaultLongitude),
		FlowTimeout:    util.ParseDurationEnv("POBUTBOT_FLOW_TIMEOUT", flow.DefaultIdleTimeout),
		RatesBroadcast: util.ParseBoolEnv("POBUTBOT_RATES_BROADCAST", false),
	}

	if config.StateDir == "" {
		config.StateDir = DefaultStateDir
		slog.Debug("No POBUTBOT_STATE_DIR set, using default", "default_state_dir", config.StateDir)
	}
	if config.Timezone == "" {
		config.Timezone = DefaultTimezone
	}
	// If no database URL is provided, default to SQLite in the state directory
	if config.DatabaseURL == "" {
		config.DatabaseURL = filepath.Join(config.StateDir, DefaultDBFileName)
		slog.Debug("No database DSN provided, defaulting to SQLite", "sqlite_path", config.DatabaseURL)
	}

	slog.Debug("environment variables loaded",
		"BOT_TOKEN_SET", config.BotToken != "",
		"ADMIN_CHAT_ID_SET", config.AdminChatID != 0,
		"DATABASE_URL_SET", config.DatabaseURL != "",
		"POBUTBOT_STATE_DIR", config.StateDir,
		"TIMEZONE", config.Timezone,
		"POBUTBOT_FLOW_TIMEOUT", config.FlowTimeout,
		"POBUTBOT_RATES_BROADCAST", config.RatesBroadcast)

	return config
}

// parseCommandLineFlags parses command line arguments with environment defaults
func parseCommandLineFlags(config Config) Flags {
	flags := Flags{
		botToken:       flag.String("bot-token", config.BotToken, "Telegram bot token (overrides $BOT_TOKEN)"),
		adminChatID:    flag.Int64("admin-chat-id", config.AdminChatID, "admin chat ID, the sole conversation partner (overrides $ADMIN_CHAT_ID)"),
		dbDSN:          flag.String("db-dsn", config.DatabaseURL, "database DSN, SQLite path or Postgres URL (overrides $DATABASE_URL)"),
		stateDir:       flag.String("state-dir", config.StateDir, "state directory for PobutBot data (overrides $POBUTBOT_STATE_DIR)"),
		timezone:       flag.String("timezone", config.Timezone, "deployment timezone for schedules and record dates (overrides $TIMEZONE)"),
		latitude:       flag.Float64("latitude", config.Latitude, "weather location latitude (overrides $LATITUDE)"),
		longitude:      flag.Float64("longitude", config.Longitude, "weather location longitude (overrides $LONGITUDE)"),
		flowTimeout:    flag.Duration("flow-timeout", config.FlowTimeout, "idle timeout clearing an abandoned flow, 0 disables (overrides $POBUTBOT_FLOW_TIMEOUT)"),
		ratesBroadcast: flag.Bool("rates-broadcast", config.RatesBroadcast, "enable the hourly exchange-rates broadcast (overrides $POBUTBOT_RATES_BROADCAST)"),
	}

	flag.Parse()

	slog.Debug("flags parsed",
		"botTokenSet", *flags.botToken != "",
		"adminChatID", *flags.adminChatID,
		"dbDSN_set", *flags.dbDSN != "",
		"stateDir", *flags.stateDir,
		"timezone", *flags.timezone,
		"flowTimeout", *flags.flowTimeout,
		"ratesBroadcast", *flags.ratesBroadcast)

	return flags
}

// buildStore selects the store backend from the DSN shape
func buildStore(dsn string) (store.Store, error) {
	if store.DetectDSNType(dsn) == "postgres" {
		slog.Debug("Detected PostgreSQL DSN, configuring PostgreSQL store", "dsn_type", "postgresql")
		return store.NewPostgresStore(store.WithPostgresDSN(dsn))
	}
	slog.Debug("Detected SQLite DSN, configuring SQLite store", "dsn_type", "sqlite", "db_path", dsn)
	return store.NewSQLiteStore(store.WithSQLiteDSN(dsn))
}

// run wires the modules together and blocks until shutdown
func run(flags Flags, loc *time.Location) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := buildStore(*flags.dbDSN)
	if err != nil {
		return err
	}
	defer st.Close()

	svc, err := messaging.NewTelegramService(
		messaging.WithToken(*flags.botToken),
		messaging.WithAdminChatID(*flags.adminChatID),
	)
	if err != nil {
		return err
	}

	engine := flow.NewEngine(flow.NewStateStore(), st, svc,
		flow.WithIdleTimeout(*flags.flowTimeout),
		flow.WithLocation(loc),
	)

	weatherClient := weather.NewClient(weather.WithCoordinates(*flags.latitude, *flags.longitude))
	financeClient := finance.NewClient()

	sched := scheduler.NewScheduler(loc)
	defer sched.Stop()
	bridge := scheduler.NewBridge(sched, engine, svc, st, weatherClient, financeClient,
		scheduler.WithRatesBroadcast(*flags.ratesBroadcast),
		scheduler.WithBridgeLocation(loc),
	)
	if err := bridge.RegisterTriggers(); err != nil {
		return err
	}

	if err := svc.Start(ctx); err != nil {
		return err
	}
	defer svc.Stop()

	pump := messaging.NewEventPump(svc, engine)
	pump.Run(ctx)
	return nil
}
