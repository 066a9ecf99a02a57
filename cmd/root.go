package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/boxworks/gobox/internal/box"
	"github.com/boxworks/gobox/internal/boxauth"
	"github.com/boxworks/gobox/internal/instrumentation"
	"github.com/boxworks/gobox/internal/logging"
)

// rootCmd represents the base command for the gobox application
var rootCmd = &cobra.Command{
	Use:   "gobox",
	Short: "Box.com client with OAuth account management",
	Long: `gobox is a client for the Box.com Content API. It manages the OAuth
token lifecycle for one or more Box accounts and exposes folder, file,
search and collaboration operations.

It can run as:
  - A standalone CLI tool (default)
  - An MCP (Model Context Protocol) server for AI assistants`,
	SilenceUsage: true,
}

var (
	flagClientID     string
	flagClientSecret string
	flagPort         int
	flagHost         string
	flagAccount      string
	flagLogLevel     string
	flagTokenStore   string
)

// version will be set by main
var version = "dev"

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "gobox version %s\n" .Version}}`)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&flagClientID, "client-id", "", "Box application client id (env: BOX_CLIENT_ID)")
	rootCmd.PersistentFlags().StringVar(&flagClientSecret, "client-secret", "", "Box application client secret (env: BOX_CLIENT_SECRET)")
	rootCmd.PersistentFlags().IntVar(&flagPort, "port", 9783, "local port for the OAuth callback listener (env: BOX_CALLBACK_PORT)")
	rootCmd.PersistentFlags().StringVar(&flagHost, "host", box.DefaultHost, "local host for the OAuth callback listener")
	rootCmd.PersistentFlags().StringVar(&flagAccount, "account", "default", "Box account to use")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagTokenStore, "token-store", "file", "token persistence backend: file, keyring, memory")

	rootCmd.AddCommand(newAuthCmd())
	rootCmd.AddCommand(newFoldersCmd())
	rootCmd.AddCommand(newSearchCmd())
	rootCmd.AddCommand(newTrashCmd())
	rootCmd.AddCommand(newServeCmd())
}

func initConfig() {
	// A missing .env file is fine; explicit env vars and flags win.
	_ = godotenv.Load()

	logging.Setup(logging.ParseLevel(flagLogLevel))

	if flagClientID == "" {
		flagClientID = os.Getenv("BOX_CLIENT_ID")
	}
	if flagClientSecret == "" {
		flagClientSecret = os.Getenv("BOX_CLIENT_SECRET")
	}
	if env := os.Getenv("BOX_CALLBACK_PORT"); env != "" {
		if port, err := strconv.Atoi(env); err == nil {
			flagPort = port
		}
	}
}

// newBoxClient builds the Box client from flags and environment. metrics
// may be nil for CLI commands that run without instrumentation.
func newBoxClient(metrics *instrumentation.Metrics) (*box.Client, error) {
	store, err := newTokenStore()
	if err != nil {
		return nil, err
	}

	return box.New(box.Config{
		ClientID:     flagClientID,
		ClientSecret: flagClientSecret,
		Port:         flagPort,
		Host:         flagHost,
		RefreshToken: os.Getenv("BOX_REFRESH_TOKEN"),
		TokenStore:   store,
		Metrics:      metrics,
	})
}

func newTokenStore() (boxauth.TokenStore, error) {
	switch flagTokenStore {
	case "file":
		return boxauth.NewFileStore("")
	case "keyring":
		return boxauth.NewKeyringStore("gobox")
	case "memory":
		return boxauth.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown token store %q (supported: file, keyring, memory)", flagTokenStore)
	}
}
