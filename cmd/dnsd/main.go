package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/cepharum/dnsd/internal/dns/common/clock"
	"github.com/cepharum/dnsd/internal/dns/common/log"
	"github.com/cepharum/dnsd/internal/dns/config"
	"github.com/cepharum/dnsd/internal/dns/repos/zonestore"
	"github.com/cepharum/dnsd/internal/dns/server"
)

const (
	version = "0.1.0-dev"
	appName = "dnsd"
)

// Application holds the daemon's components.
type Application struct {
	config *config.AppConfig
	server *server.Server
	store  *zonestore.Store
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}

	if err := log.Configure(cfg.Env, cfg.LogLevel); err != nil {
		fmt.Fprintf(os.Stderr, "Logging configuration error: %v\n", err)
		os.Exit(1)
	}

	log.Info(map[string]any{
		"app":       appName,
		"version":   version,
		"env":       cfg.Env,
		"log_level": cfg.LogLevel,
		"addr":      cfg.Addr,
		"port":      cfg.Port,
		"ttl":       cfg.TTL,
		"zone_db":   cfg.ZoneDB,
	}, "Starting dnsd")

	app, err := buildApplication(cfg)
	if err != nil {
		log.Fatal(map[string]any{"error": err.Error()}, "Failed to build application")
	}

	if err := app.Run(); err != nil {
		log.Fatal(map[string]any{"error": err.Error()}, "Server failed")
	}

	log.Info(nil, "dnsd stopped gracefully")
}

// buildApplication constructs all components and wires them together.
func buildApplication(cfg *config.AppConfig) (*Application, error) {
	logger := log.GetLogger()

	srv := server.NewServer(authoritativeHandler, server.Options{
		TTL:    cfg.TTL,
		Logger: logger,
		Clock:  clock.RealClock{},
	})

	var store *zonestore.Store
	if cfg.ZoneDB != "" {
		var err error
		store, err = zonestore.Open(cfg.ZoneDB)
		if err != nil {
			return nil, fmt.Errorf("failed to open zone store: %w", err)
		}
		zones, err := store.All()
		if err != nil {
			return nil, fmt.Errorf("failed to load zones: %w", err)
		}
		for _, zone := range zones {
			if err := srv.RegisterZone(zone); err != nil {
				return nil, fmt.Errorf("failed to register zone %q: %w", zone.Name, err)
			}
		}
		log.Info(map[string]any{
			"zone_db": cfg.ZoneDB,
			"zones":   len(zones),
		}, "Zone registry loaded")
	}

	return &Application{config: cfg, server: srv, store: store}, nil
}

// authoritativeHandler relies entirely on the response conveniences:
// SOA questions for registered apexes answer themselves, covered
// questions without answers get the SOA as authority, and anything
// outside the registered zones stays silent.
func authoritativeHandler(req *server.Request, res *server.Response) {
	if err := res.End(); err != nil {
		log.Warn(map[string]any{
			"client": req.Conn.RemoteAddr().String(),
			"error":  err.Error(),
		}, "Failed to answer query")
	}
}

// Run starts the server and blocks until a shutdown signal arrives.
func (app *Application) Run() error {
	if err := app.server.Listen(app.config.Port, app.config.Addr); err != nil {
		return fmt.Errorf("failed to start listening: %w", err)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	events := app.server.Events()
	for {
		select {
		case sig := <-sigChan:
			log.Info(map[string]any{"signal": sig.String()}, "Shutdown signal received")
			_ = app.server.Close()
			app.server.Wait()
			if app.store != nil {
				_ = app.store.Close()
			}
			return nil
		case ev := <-events:
			switch ev.Kind {
			case server.EventListening:
				log.Info(nil, "Server ready")
			case server.EventError:
				log.Warn(map[string]any{"error": ev.Err.Error()}, "Server error")
			case server.EventClose:
				log.Info(nil, "Server closed")
			}
		}
	}
}
