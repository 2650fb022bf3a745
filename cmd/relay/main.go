// Command relay runs a standalone OMEGA relay service.
//
// The relay is a blind store-and-forward hub: it verifies envelope
// signatures, archives accepted envelopes and fans every envelope out to all
// registered nodes. It never learns which node a message is for; receivers
// discard non-resonant vectors locally.
//
// # Usage
//
//	go run ./cmd/relay --addr=:8080 --metrics-addr=:9090
//
// With --postgres-host set the relay archives envelopes to PostgreSQL;
// otherwise it keeps the archive in memory.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/LashSesh/omega-protocol/api/httpserver"
	"github.com/LashSesh/omega-protocol/cmd/common"
	"github.com/LashSesh/omega-protocol/relay"
)

func main() {
	var (
		addr        = flag.String("addr", ":8080", "HTTP listen address")
		metricsAddr = flag.String("metrics-addr", "", "Metrics listen address (empty disables metrics)")
		enablePprof = flag.Bool("pprof", false, "Enable the pprof debug API")
		logJSON     = flag.Bool("log-json", false, "Log in JSON format")
		logDebug    = flag.Bool("log-debug", false, "Log at debug level")

		pgHost     = flag.String("postgres-host", "", "PostgreSQL host (empty uses the in-memory archive)")
		pgPort     = flag.Int("postgres-port", 5432, "PostgreSQL port")
		pgUser     = flag.String("postgres-user", "omega", "PostgreSQL user")
		pgPassword = flag.String("postgres-password", "", "PostgreSQL password")
		pgDatabase = flag.String("postgres-db", "omega", "PostgreSQL database name")
		pgSSLMode  = flag.String("postgres-sslmode", "disable", "PostgreSQL SSL mode")
	)
	flag.Parse()

	log := common.NewLogger(*logJSON, *logDebug)

	var store relay.EnvelopeStore
	if *pgHost != "" {
		pgStore, err := relay.NewPostgresStore(&relay.PostgresConfig{
			Host:     *pgHost,
			Port:     *pgPort,
			User:     *pgUser,
			Password: *pgPassword,
			Database: *pgDatabase,
			SSLMode:  *pgSSLMode,
		})
		if err != nil {
			log.Error("Connecting to PostgreSQL failed", "err", err)
			os.Exit(1)
		}
		store = pgStore
		log.Info("Envelope archive backed by PostgreSQL", "host", *pgHost, "db", *pgDatabase)
	} else {
		store = relay.NewInMemoryStore()
		log.Info("Envelope archive kept in memory")
	}
	defer store.Close()

	rl, err := relay.New(log, store)
	if err != nil {
		log.Error("Creating relay failed", "err", err)
		os.Exit(1)
	}

	fmt.Printf("Relay public key: %s\n", rl.PublicKey().String())

	srv, err := httpserver.New(&httpserver.HTTPServerConfig{
		ListenAddr:               *addr,
		MetricsAddr:              *metricsAddr,
		EnablePprof:              *enablePprof,
		Log:                      log,
		DrainDuration:            10 * time.Second,
		GracefulShutdownDuration: 30 * time.Second,
		ReadTimeout:              15 * time.Second,
		WriteTimeout:             15 * time.Second,
	}, relay.NewHandler(rl, log))
	if err != nil {
		log.Error("Creating HTTP server failed", "err", err)
		os.Exit(1)
	}

	srv.RunInBackground()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	log.Info("Shutting down relay")
	srv.Shutdown()
}
