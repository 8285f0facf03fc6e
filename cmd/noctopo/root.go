package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"noctopo/internal/config"
	"noctopo/internal/i18n"
	"noctopo/internal/logging"
	"noctopo/internal/projection"
	"noctopo/internal/repository/sqlite"
	"noctopo/internal/service"
	"noctopo/internal/topology"
)

var (
	cfgFile  string
	dbPath   string
	panelID  string
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:   "noctopo",
	Short: "Network topology panel with live metrics",
	Long: `noctopo keeps an editable network topology, colours its devices and
links from monitoring series and stores the panel in SQLite.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default: search $NOCTOPO_CONFIG, ./noctopo.yaml, XDG, /etc)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "SQLite database path")
	rootCmd.PersistentFlags().StringVar(&panelID, "panel", "", "panel id")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")

	rootCmd.AddCommand(serveCmd, exportCmd, importCmd, initCmd)
}

// loadConfig reads the config file and applies flag overrides
func loadConfig() (*config.Config, string, error) {
	var (
		cfg  *config.Config
		path string
		err  error
	)
	if cfgFile != "" {
		cfg, path, err = config.LoadFromPath(cfgFile)
	} else {
		cfg, path, err = config.Load()
	}
	if err != nil {
		return nil, "", err
	}

	if dbPath != "" {
		cfg.Database.Path = dbPath
	}
	if panelID != "" {
		cfg.Panel.ID = panelID
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	return cfg, path, nil
}

// app is the wiring shared by every subcommand
type app struct {
	cfg    *config.Config
	logger *zap.Logger
	repo   *sqlite.Repository
	tr     *i18n.Translator
	bus    *service.EventBus
	svc    *service.PanelService
}

func newApp(cmd *cobra.Command) (*app, error) {
	cfg, path, err := loadConfig()
	if err != nil {
		return nil, err
	}

	logger := logging.New(cfg.Log)
	if path != "" {
		logger.Info("config loaded", zap.String("path", path))
	} else {
		logger.Info("no config file found, using defaults")
	}

	repo, err := sqlite.New(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	logger.Info("database opened", zap.String("path", cfg.Database.Path))

	tr := i18n.New()
	engine := topology.New(projection.New(nil, tr), topology.Config{
		Center:   cfg.Panel.Canvas.Center(),
		Language: cfg.Theme.Language,
	})
	bus := service.NewEventBus()
	svc := service.NewPanelService(engine, repo, bus, logger, service.Options{
		PanelID: cfg.Panel.ID,
		Theme:   cfg.Theme,
	})

	if err := svc.Load(cmd.Context()); err != nil {
		repo.Close()
		return nil, fmt.Errorf("load panel %s: %w", cfg.Panel.ID, err)
	}

	return &app{cfg: cfg, logger: logger, repo: repo, tr: tr, bus: bus, svc: svc}, nil
}

func (a *app) Close() {
	if err := a.repo.Close(); err != nil {
		a.logger.Warn("database close failed", zap.Error(err))
	}
	_ = a.logger.Sync()
}
