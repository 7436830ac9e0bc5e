package main

import (
	"fmt"
	"net"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/gunjam/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Gun Jam SSH server",
	Long: `Start an SSH server that lets users connect and play.

Each SSH connection gets its own session with a gun picker.
Runs are stored per server (all users share the same leaderboard).

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.gunjam/host_key

Examples:
  gunjam serve                           # Listen on :23234 with auto-generated key
  gunjam serve --ssh :2222               # Listen on port 2222
  gunjam serve --host-key ./my_host_key  # Use specific host key
  gunjam serve --db ./runs.db            # Use specific database

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(_ *cobra.Command, _ []string) {
	logger, err := newLogger(os.Stderr)
	if err != nil {
		fatalf("%v", err)
	}

	cfg, err := loadConfig()
	if err != nil {
		fatalf("%v", err)
	}

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}
	saves, err := saveBackend(store)
	if err != nil {
		logger.Warn("could not open save directory", "dir", flagSaveDir, "error", err)
		saves = nil
	}

	srvCfg := tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
		TickRate:    flagFPS,
	}

	server, err := tui.NewSSHServer(srvCfg, cfg.Weapons,
		gameFactory(cfg, saves, loadSettings(saves, logger), logger), store, logger)
	if err != nil {
		fatalf("creating server: %v", err)
	}

	fmt.Printf("Starting Gun Jam SSH server on %s\n", srvCfg.Address)
	fmt.Printf("Connect with: ssh localhost -p %s\n", portOf(srvCfg.Address))
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		logger.Error("server stopped", "error", err)
		if store != nil {
			store.Close()
		}
		os.Exit(1)
	}
}

// portOf returns the port part of a host:port address.
func portOf(addr string) string {
	if _, port, err := net.SplitHostPort(addr); err == nil {
		return port
	}
	return addr
}
