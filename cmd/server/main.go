package main

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/pedro-visualizer/backend/internal/api"
	"github.com/pedro-visualizer/backend/internal/config"
	"github.com/pedro-visualizer/backend/internal/macro"
	"github.com/pedro-visualizer/backend/internal/scan"
	"github.com/pedro-visualizer/backend/internal/storage"
)

// Set with -ldflags at release time.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

const configFileName = "PedroPathVisualizer.config"

func fatalf(format string, args ...any) {
	fmt.Printf("[Server] "+format+"\n", args...)
	os.Exit(1)
}

// resolveConfigPath prefers CONFIG_PATH, otherwise the config next to the binary.
func resolveConfigPath() string {
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		return p
	}
	exe, err := os.Executable()
	if err != nil {
		fatalf("cannot locate executable: %v", err)
	}
	return filepath.Join(filepath.Dir(exe), configFileName)
}

func main() {
	configPath := resolveConfigPath()
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		fatalf("config %s: %v", configPath, err)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		fatalf("data directories: %v", err)
	}

	pathStore, err := storage.NewLocalStore(cfg.GetPathsDir())
	if err != nil {
		fatalf("path store: %v", err)
	}
	settings, err := api.NewSettingsStore(cfg.Simulation.SettingsFile)
	if err != nil {
		fatalf("robot profile %s: %v", cfg.Simulation.SettingsFile, err)
	}

	scans := scan.NewManager(pathStore, cfg.Simulation.MaxConcurrentReads)
	go pruneScanJobs(scans, cfg.Simulation)

	handlers := api.NewHandlers(&api.Dependencies{
		Store:             pathStore,
		Scans:             scans,
		Settings:          settings,
		Importer:          macro.NewImporter(macro.UUIDGenerator{}),
		PathsDir:          cfg.GetPathsDir(),
		MacrosDir:         cfg.Storage.MacrosDirectory,
		Version:           Version,
		AllowFileDeletion: cfg.Storage.AllowFileDeletion,
		LiveInterval:      time.Duration(cfg.Simulation.LiveSimulationIntervalMs) * time.Millisecond,
		WSMaxMessageKB:    cfg.Advanced.WebSocketMaxMessageSize,
	})

	e := echo.New()
	e.HideBanner = true
	e.Logger.SetLevel(cfg.GetLogLevel())
	api.SetupMiddleware(e)
	useMiddleware(e, cfg)
	api.RegisterRoutes(e, handlers)

	srv := &http.Server{
		Addr:         cfg.GetServerAddr(),
		ReadTimeout:  seconds(cfg.Server.ReadTimeout),
		WriteTimeout: seconds(cfg.Server.WriteTimeout),
		IdleTimeout:  seconds(cfg.Server.IdleTimeout),
	}

	printBanner(configPath, cfg)
	e.Logger.Fatal(e.StartServer(srv))
}

func seconds(n int) time.Duration {
	return time.Duration(n) * time.Second
}

// pruneScanJobs drops finished scan jobs older than the configured retention.
func pruneScanJobs(scans *scan.Manager, sim config.SimulationConfig) {
	every := time.Duration(sim.CleanupIntervalMinutes) * time.Minute
	if every <= 0 {
		every = 5 * time.Minute
	}
	retention := time.Duration(sim.ScanJobRetentionMinutes) * time.Minute

	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for range ticker.C {
		scans.CleanupOldJobs(retention)
	}
}

func useMiddleware(e *echo.Echo, cfg *config.AppConfig) {
	// health checks and scan polling are too chatty to log
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Skipper: func(c echo.Context) bool {
			if !cfg.Advanced.EnableRequestLogging {
				return true
			}
			p := c.Request().URL.Path
			return p == "/api/health" || strings.HasPrefix(p, "/api/events/scan/")
		},
	}))
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{StackSize: 4 << 10, LogLevel: log.ERROR}))

	if cfg.Advanced.EnableCompression {
		e.Use(middleware.GzipWithConfig(middleware.GzipConfig{
			Level: cfg.Advanced.CompressionLevel,
			Skipper: func(c echo.Context) bool {
				return strings.HasPrefix(c.Request().URL.Path, "/api/ws/")
			},
		}))
	}
	e.Use(middleware.BodyLimit(cfg.Server.BodyLimit))

	if cfg.Server.EnableCORS {
		e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins: corsOrigins(cfg.Server.AllowOrigins),
			AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
			AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
		}))
	}
}

// corsOrigins splits a comma separated origin list; empty means any origin.
func corsOrigins(list string) []string {
	var origins []string
	for _, o := range strings.Split(list, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

func printBanner(configPath string, cfg *config.AppConfig) {
	rows := [][2]string{
		{"Version", Version},
		{"Built", BuildTime},
		{"Config", configPath},
		{"Listen", "http://" + cfg.GetServerAddr()},
		{"Paths", cfg.GetPathsDir()},
		{"Settings", cfg.Simulation.SettingsFile},
	}
	fmt.Println()
	fmt.Println("  Pedro Path Visualizer Server")
	fmt.Println("  ----------------------------")
	for _, r := range rows {
		fmt.Printf("  %-9s %s\n", r[0]+":", r[1])
	}
	fmt.Println()
}
