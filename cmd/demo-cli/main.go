// Command omega provides CLI tools for interacting with an OMEGA deployment.
//
// # Commands
//
// demo: Run a self-contained in-process demonstration of the pipeline.
//
//	omega demo
//
// send: Submit a message toward a target frequency via a relay.
//
//	omega send --relay=http://localhost:8080 --message="Hello" --freq=1.5
//
// listen: Poll a relay and print every resonant message.
//
//	omega listen --relay=http://localhost:8080 --freq=1.5
//
// monitor: Stream every envelope a relay accepts over websocket.
//
//	omega monitor --relay=http://localhost:8080
//
// status: Display relay health and archive summary.
//
//	omega status --relay=http://localhost:8080
package main

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gorilla/websocket"

	"github.com/LashSesh/omega-protocol/cmd/common"
	"github.com/LashSesh/omega-protocol/crypto"
	"github.com/LashSesh/omega-protocol/node"
	"github.com/LashSesh/omega-protocol/omega"
	"github.com/LashSesh/omega-protocol/transport"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	var err error
	switch cmd {
	case "demo":
		err = runDemo(args)
	case "send":
		err = runSend(args)
	case "listen":
		err = runListen(args)
	case "monitor":
		err = runMonitor(args)
	case "status":
		err = runStatus(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`omega - CLI tools for the OMEGA protocol

Usage:
  omega <command> [options]

Commands:
  demo      Run an in-process pipeline demonstration
  send      Send a message toward a target frequency via a relay
  listen    Poll a relay and print resonant messages
  monitor   Stream every accepted envelope over websocket
  status    Display relay health and archive summary

Run 'omega <command> --help' for command-specific options.`)
}

// --- Demo Command ---

func runDemo(args []string) error {
	for _, arg := range args {
		if arg == "--help" || arg == "-h" {
			fmt.Println(`omega demo - Run an in-process pipeline demonstration

Two receivers share one sender: a tuned receiver on the sender's target
frequency and a detuned one far off it. The demo shows the tuned receiver
recovering the message while the detuned receiver silently drops it.`)
			return nil
		}
	}

	ctx := context.Background()
	log := common.NewLogger(false, false)

	const targetFreq = 1.5

	tunedCfg := omega.DefaultNodeConfig()
	tunedCfg.Omega = targetFreq
	// Short vectors resolve frequencies in coarse steps; open the band wide
	// enough to cover the nearest representable bin.
	tunedCfg.Params.Resonance.Epsilon = 4.0

	detunedCfg := omega.DefaultNodeConfig()
	detunedCfg.Omega = 9.9
	detunedCfg.Params.Resonance.Epsilon = 0.1

	sender, err := node.New(log, tunedCfg, nil)
	if err != nil {
		return fmt.Errorf("creating sender: %w", err)
	}
	tuned, err := node.New(log, tunedCfg, nil)
	if err != nil {
		return fmt.Errorf("creating tuned receiver: %w", err)
	}
	detuned, err := node.New(log, detunedCfg, nil)
	if err != nil {
		return fmt.Errorf("creating detuned receiver: %w", err)
	}

	message := []byte("Hello OMEGA!")
	fmt.Printf("Sending %q toward frequency %.2f\n\n", message, targetFreq)

	if err := sender.SendMessage(ctx, message, targetFreq); err != nil {
		return fmt.Errorf("sending: %w", err)
	}
	if err := sender.TransferMessageTo(tuned); err != nil {
		return err
	}

	received, err := tuned.ReceiveMessage(ctx)
	if err != nil {
		return fmt.Errorf("tuned receive: %w", err)
	}
	if received != nil {
		fmt.Printf("Tuned receiver (freq %.2f):   recovered %d bytes\n", tuned.Frequency(), len(received))
	} else {
		fmt.Printf("Tuned receiver (freq %.2f):   no resonance\n", tuned.Frequency())
	}

	if err := sender.SendMessage(ctx, message, targetFreq); err != nil {
		return fmt.Errorf("sending: %w", err)
	}
	if err := sender.TransferMessageTo(detuned); err != nil {
		return err
	}

	received, err = detuned.ReceiveMessage(ctx)
	if err != nil {
		return fmt.Errorf("detuned receive: %w", err)
	}
	if received != nil {
		fmt.Printf("Detuned receiver (freq %.2f): unexpectedly recovered %d bytes\n", detuned.Frequency(), len(received))
	} else {
		fmt.Printf("Detuned receiver (freq %.2f): dropped (not resonant)\n", detuned.Frequency())
	}

	fmt.Println("\nThe relay never saw an address: delivery is decided by frequency alone.")
	return nil
}

// --- Send Command ---

func runSend(args []string) error {
	var (
		relayURL string
		message  string
		filePath string
		freq     float64
	)

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--relay", "-r":
			i++
			if i < len(args) {
				relayURL = args[i]
			}
		case "--message", "-m":
			i++
			if i < len(args) {
				message = args[i]
			}
		case "--file", "-f":
			i++
			if i < len(args) {
				filePath = args[i]
			}
		case "--freq":
			i++
			if i < len(args) {
				freq, _ = strconv.ParseFloat(args[i], 64)
			}
		case "--help", "-h":
			printSendHelp()
			return nil
		}
	}

	if relayURL == "" {
		relayURL = "http://localhost:8080"
	}
	if message == "" && filePath == "" {
		return fmt.Errorf("--message or --file is required")
	}
	if freq <= 0 {
		return fmt.Errorf("--freq is required and must be > 0")
	}

	var msgBytes []byte
	if filePath != "" {
		data, err := os.ReadFile(filePath)
		if err != nil {
			return fmt.Errorf("reading file: %w", err)
		}
		msgBytes = data
	} else {
		msgBytes = []byte(message)
	}

	ctx := context.Background()
	log := common.NewLogger(false, false)

	_, signingKey, err := crypto.GenerateKeyPair()
	if err != nil {
		return fmt.Errorf("generating key pair: %w", err)
	}

	client, err := transport.NewRelayClient(relayURL, signingKey)
	if err != nil {
		return fmt.Errorf("creating relay client: %w", err)
	}
	if err := client.Register(ctx); err != nil {
		return fmt.Errorf("registering with relay: %w", err)
	}

	cfg := omega.DefaultNodeConfig()
	cfg.Omega = freq
	cfg.Params.Resonance.Omega = freq

	n, err := node.New(log, cfg, client)
	if err != nil {
		return fmt.Errorf("creating node: %w", err)
	}

	if err := n.SendMessage(ctx, msgBytes, freq); err != nil {
		return fmt.Errorf("sending message: %w", err)
	}

	fmt.Printf("Message submitted toward frequency %.4f\n", freq)
	return nil
}

func printSendHelp() {
	fmt.Println(`omega send - Send a message toward a target frequency

Usage:
  omega send --relay=<url> --message=<text> --freq=<frequency>

Options:
  --relay, -r     Relay base URL (default: http://localhost:8080)
  --message, -m   Message text to send
  --file, -f      File to send as message
  --freq          Target frequency (required)

Example:
  omega send -r http://localhost:8080 -m "Hello OMEGA" --freq=1.5`)
}

// --- Listen Command ---

func runListen(args []string) error {
	var (
		relayURL string
		freq     float64
		epsilon  float64
		interval time.Duration
	)

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--relay", "-r":
			i++
			if i < len(args) {
				relayURL = args[i]
			}
		case "--freq":
			i++
			if i < len(args) {
				freq, _ = strconv.ParseFloat(args[i], 64)
			}
		case "--epsilon":
			i++
			if i < len(args) {
				epsilon, _ = strconv.ParseFloat(args[i], 64)
			}
		case "--interval":
			i++
			if i < len(args) {
				interval, _ = time.ParseDuration(args[i])
			}
		case "--help", "-h":
			printListenHelp()
			return nil
		}
	}

	if relayURL == "" {
		relayURL = "http://localhost:8080"
	}
	if freq <= 0 {
		return fmt.Errorf("--freq is required and must be > 0")
	}
	if interval == 0 {
		interval = time.Second
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		cancel()
	}()

	log := common.NewLogger(false, false)

	_, signingKey, err := crypto.GenerateKeyPair()
	if err != nil {
		return fmt.Errorf("generating key pair: %w", err)
	}

	client, err := transport.NewRelayClient(relayURL, signingKey)
	if err != nil {
		return fmt.Errorf("creating relay client: %w", err)
	}
	if err := client.Register(ctx); err != nil {
		return fmt.Errorf("registering with relay: %w", err)
	}

	cfg := omega.DefaultNodeConfig()
	cfg.Omega = freq
	cfg.Params.Resonance.Omega = freq
	if epsilon > 0 {
		cfg.Params.Resonance.Epsilon = epsilon
	}

	n, err := node.New(log, cfg, client)
	if err != nil {
		return fmt.Errorf("creating node: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Listening on frequency %.4f (Ctrl+C to stop)...\n", freq)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			message, err := n.ReceiveMessage(ctx)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Warning: receive failed: %v\n", err)
				continue
			}
			if message == nil {
				continue
			}
			fmt.Printf("[%s] %q\n", time.Now().Format(time.RFC3339), string(message))
		}
	}
}

func printListenHelp() {
	fmt.Println(`omega listen - Poll a relay and print resonant messages

Usage:
  omega listen --relay=<url> --freq=<frequency> [options]

Options:
  --relay, -r     Relay base URL (default: http://localhost:8080)
  --freq          Local resonance frequency (required)
  --epsilon       Resonance bandwidth (default: reference value)
  --interval      Poll interval (default: 1s)

Example:
  omega listen -r http://localhost:8080 --freq=1.5 --epsilon=4.0`)
}

// --- Monitor Command ---

func runMonitor(args []string) error {
	var relayURL string

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--relay", "-r":
			i++
			if i < len(args) {
				relayURL = args[i]
			}
		case "--help", "-h":
			printMonitorHelp()
			return nil
		}
	}

	if relayURL == "" {
		relayURL = "http://localhost:8080"
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		cancel()
	}()

	// The websocket stream is keyed on a registered node, so the monitor
	// registers a throwaway identity first.
	pubKey, signingKey, err := crypto.GenerateKeyPair()
	if err != nil {
		return fmt.Errorf("generating key pair: %w", err)
	}
	client, err := transport.NewRelayClient(relayURL, signingKey)
	if err != nil {
		return fmt.Errorf("creating relay client: %w", err)
	}
	if err := client.Register(ctx); err != nil {
		return fmt.Errorf("registering with relay: %w", err)
	}

	wsURL, err := websocketURL(relayURL, pubKey)
	if err != nil {
		return err
	}

	header := http.Header{}
	header.Set("Authorization", "Bearer "+hex.EncodeToString(client.Token().Bytes()))
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, wsURL, header)
	if err != nil {
		return fmt.Errorf("connecting websocket: %w", err)
	}
	defer conn.Close()

	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	fmt.Fprintln(os.Stderr, "Streaming accepted envelopes (Ctrl+C to stop)...")

	for {
		var env omega.Envelope
		if err := conn.ReadJSON(&env); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("reading stream: %w", err)
		}
		fmt.Printf("[%s] envelope %s epoch=%d vector=%v\n",
			time.Now().Format(time.RFC3339), env.ID, env.Epoch, env.Vector)
	}
}

func printMonitorHelp() {
	fmt.Println(`omega monitor - Stream every accepted envelope over websocket

The monitor sees only masked vectors; without the right frequency and epoch
the stream reveals nothing about message content or recipients.

Usage:
  omega monitor --relay=<url>

Example:
  omega monitor -r http://localhost:8080`)
}

// websocketURL rewrites the relay base URL to its websocket endpoint.
func websocketURL(relayURL string, node crypto.PublicKey) (string, error) {
	u, err := url.Parse(relayURL)
	if err != nil {
		return "", fmt.Errorf("invalid relay URL: %w", err)
	}
	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	default:
		return "", fmt.Errorf("unsupported relay URL scheme %q", u.Scheme)
	}
	u.Path = "/relay/ws"
	u.RawQuery = "node=" + url.QueryEscape(node.String())
	return u.String(), nil
}

// --- Status Command ---

func runStatus(args []string) error {
	var relayURL string

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--relay", "-r":
			i++
			if i < len(args) {
				relayURL = args[i]
			}
		case "--help", "-h":
			printStatusHelp()
			return nil
		}
	}

	if relayURL == "" {
		relayURL = "http://localhost:8080"
	}

	httpClient := &http.Client{Timeout: 10 * time.Second}

	alive := checkHealth(httpClient, relayURL)

	fmt.Printf("Relay: %s\n", relayURL)
	if alive {
		fmt.Println("Status: alive")
	} else {
		fmt.Println("Status: unreachable")
		return nil
	}

	envelopes, err := fetchArchive(httpClient, relayURL)
	if err != nil {
		return fmt.Errorf("fetching archive: %w", err)
	}

	fmt.Printf("Archived envelopes (most recent %d):\n", len(envelopes))
	for _, signed := range envelopes {
		env := signed.Object
		fmt.Printf("  %s  epoch=%d  sent=%s  sender=%s\n",
			env.ID, env.Epoch, env.SentAt.Format(time.RFC3339), signed.PublicKey.String()[:16])
	}

	return nil
}

func printStatusHelp() {
	fmt.Println(`omega status - Display relay health and archive summary

Usage:
  omega status --relay=<url>

Example:
  omega status -r http://localhost:8080`)
}

func checkHealth(httpClient *http.Client, relayURL string) bool {
	resp, err := httpClient.Get(relayURL + "/livez")
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

func fetchArchive(httpClient *http.Client, relayURL string) ([]*omega.Signed[omega.Envelope], error) {
	resp, err := httpClient.Get(relayURL + "/relay/archive")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("relay returned %d", resp.StatusCode)
	}

	var envelopes []*omega.Signed[omega.Envelope]
	if err := json.NewDecoder(resp.Body).Decode(&envelopes); err != nil {
		return nil, err
	}
	return envelopes, nil
}
