// Command node runs one OMEGA node against a relay.
//
// In its default mode the node registers with the relay and polls for
// vectors, printing every message that resonates with its local frequency.
// With --send the node pushes a single message toward the target frequency
// and exits.
//
// # Usage
//
//	go run ./cmd/node --relay=http://localhost:8080 --frequency=1.5
//	go run ./cmd/node --relay=http://localhost:8080 --send="Hello" --target-freq=1.5
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/LashSesh/omega-protocol/cmd/common"
	"github.com/LashSesh/omega-protocol/node"
	"github.com/LashSesh/omega-protocol/transport"
)

func main() {
	var (
		configPath    = flag.String("config", "", "YAML configuration file")
		relayURL      = flag.String("relay", "", "Relay base URL (overrides config)")
		frequency     = flag.Float64("frequency", 0, "Local resonance frequency (overrides config)")
		epsilon       = flag.Float64("epsilon", 0, "Resonance bandwidth (overrides config)")
		signingKeyHex = flag.String("signing-key", "", "Ed25519 signing key (hex, generates if empty)")
		pollInterval  = flag.Duration("poll-interval", 0, "Relay poll interval (overrides config)")
		sendMessage   = flag.String("send", "", "Send this message and exit")
		targetFreq    = flag.Float64("target-freq", 0, "Target frequency for --send")
		logJSON       = flag.Bool("log-json", false, "Log in JSON format")
		logDebug      = flag.Bool("log-debug", false, "Log at debug level")
	)
	flag.Parse()

	log := common.NewLogger(*logJSON, *logDebug)

	cfg, err := common.LoadConfig(*configPath)
	if err != nil {
		log.Error("Loading config failed", "err", err)
		os.Exit(1)
	}
	if *relayURL != "" {
		cfg.RelayURL = *relayURL
	}
	if *frequency > 0 {
		cfg.Node.Omega = *frequency
		cfg.Node.Params.Resonance.Omega = *frequency
	}
	if *epsilon > 0 {
		cfg.Node.Params.Resonance.Epsilon = *epsilon
	}
	if *pollInterval > 0 {
		cfg.PollInterval = *pollInterval
	}
	if cfg.RelayURL == "" {
		fmt.Fprintln(os.Stderr, "Error: --relay (or relay_url in the config file) is required")
		os.Exit(1)
	}

	signingKey, err := common.LoadOrGenerateSigningKey(*signingKeyHex)
	if err != nil {
		log.Error("Loading signing key failed", "err", err)
		os.Exit(1)
	}
	pubKey, err := signingKey.PublicKey()
	if err != nil {
		log.Error("Deriving public key failed", "err", err)
		os.Exit(1)
	}
	fmt.Printf("Node public key: %s\n", pubKey.String())

	client, err := transport.NewRelayClient(cfg.RelayURL, signingKey)
	if err != nil {
		log.Error("Creating relay client failed", "err", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := client.Register(ctx); err != nil {
		log.Error("Registering with relay failed", "err", err, "relay", cfg.RelayURL)
		os.Exit(1)
	}
	log.Info("Registered with relay", "relay", cfg.RelayURL)

	n, err := node.New(log, cfg.Node, client)
	if err != nil {
		log.Error("Creating node failed", "err", err)
		os.Exit(1)
	}

	if *sendMessage != "" {
		freq := *targetFreq
		if freq <= 0 {
			freq = cfg.Node.Omega
		}
		if err := n.SendMessage(ctx, []byte(*sendMessage), freq); err != nil {
			log.Error("Sending message failed", "err", err)
			os.Exit(1)
		}
		fmt.Printf("Message sent toward frequency %.4f\n", freq)
		return
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		cancel()
	}()

	log.Info("Listening", "frequency", n.Frequency(), "pollInterval", cfg.PollInterval)

	ticker := time.NewTicker(cfg.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info("Shutting down node")
			return
		case <-ticker.C:
			message, err := n.ReceiveMessage(ctx)
			if err != nil {
				log.Error("Receiving message failed", "err", err)
				continue
			}
			if message == nil {
				continue
			}
			fmt.Printf("[%s] resonant message: %q\n", time.Now().Format(time.RFC3339), string(message))
		}
	}
}
