package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/boxworks/gobox/internal/instrumentation"
	"github.com/boxworks/gobox/internal/logging"
	"github.com/boxworks/gobox/internal/server"
	"github.com/boxworks/gobox/internal/tools/account_tools"
	"github.com/boxworks/gobox/internal/tools/file_tools"
	"github.com/boxworks/gobox/internal/tools/folder_tools"
	"github.com/boxworks/gobox/internal/tools/search_tools"
)

func newServeCmd() *cobra.Command {
	var (
		transport   string
		httpAddr    string
		metricsAddr string
		yolo        bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server",
		Long: `Starts an MCP (Model Context Protocol) server exposing Box folder,
file, search and collaboration tools to AI assistants.

By default only read tools are registered. Pass --yolo to also register
tools that create, modify or delete content.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), transport, httpAddr, metricsAddr, yolo)
		},
	}

	cmd.Flags().StringVar(&transport, "transport", "stdio", "transport type: stdio or streamable-http")
	cmd.Flags().StringVar(&httpAddr, "http-addr", ":8080", "listen address for the streamable-http transport")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", server.DefaultMetricsAddr, "listen address for the metrics server")
	cmd.Flags().BoolVar(&yolo, "yolo", false, "register write tools (create, update, delete)")
	return cmd
}

func runServe(ctx context.Context, transport, httpAddr, metricsAddr string, yolo bool) error {
	instrConfig := instrumentation.DefaultConfig()
	instrConfig.ServiceVersion = version
	if err := instrConfig.Validate(); err != nil {
		return fmt.Errorf("invalid instrumentation config: %w", err)
	}

	provider, err := instrumentation.NewProvider(ctx, instrConfig)
	if err != nil {
		return fmt.Errorf("failed to initialize instrumentation: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := provider.Shutdown(shutdownCtx); err != nil {
			slog.Warn("Failed to shut down instrumentation", logging.Err(err))
		}
	}()

	client, err := newBoxClient(provider.Metrics())
	if err != nil {
		return err
	}

	// The callback listener lets MCP clients complete a browser
	// authorization while the server is running.
	if err := client.StartServer(); err != nil {
		return fmt.Errorf("starting callback listener: %w", err)
	}

	sc := server.NewServerContext(ctx, client, provider.Metrics(), slog.Default())
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := sc.Shutdown(shutdownCtx); err != nil {
			slog.Warn("Failed to shut down server context", logging.Err(err))
		}
	}()

	// Transport sessions are bound to the default account until a client
	// selects one via box_use_account; tools resolve the account per call.
	hooks := &mcpserver.Hooks{}
	hooks.AddOnRegisterSession(func(ctx context.Context, session mcpserver.ClientSession) {
		sc.Sessions().Bind(session.SessionID(), "default")
	})
	hooks.AddOnUnregisterSession(func(ctx context.Context, session mcpserver.ClientSession) {
		sc.Sessions().Remove(session.SessionID())
	})

	mcpSrv := mcpserver.NewMCPServer(
		"gobox",
		version,
		mcpserver.WithToolCapabilities(true),
		mcpserver.WithResourceCapabilities(false, false),
		mcpserver.WithHooks(hooks),
	)

	readOnly := !yolo
	if err := registerAllTools(mcpSrv, sc, readOnly); err != nil {
		return fmt.Errorf("failed to register tools: %w", err)
	}
	slog.Info("Registered MCP tools", slog.Bool("readOnly", readOnly))

	var metricsServer *server.MetricsServer
	if provider.Enabled() && instrConfig.MetricsExporter == instrumentation.ExporterPrometheus {
		metricsServer, err = server.NewMetricsServer(server.MetricsServerConfig{
			Addr:                    metricsAddr,
			InstrumentationProvider: provider,
		}, sc)
		if err != nil {
			return fmt.Errorf("failed to create metrics server: %w", err)
		}
		go func() {
			if err := metricsServer.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				slog.Error("Metrics server failed", logging.Err(err))
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := metricsServer.Shutdown(shutdownCtx); err != nil {
				slog.Warn("Failed to shut down metrics server", logging.Err(err))
			}
		}()
	}

	serverDone := make(chan error, 1)

	switch transport {
	case "stdio":
		slog.Info("Starting MCP server on stdio")
		go func() {
			serverDone <- mcpserver.ServeStdio(mcpSrv)
		}()
	case "streamable-http":
		httpSrv := mcpserver.NewStreamableHTTPServer(mcpSrv)
		slog.Info("Starting MCP server", slog.String("transport", transport), slog.String("addr", httpAddr))
		go func() {
			serverDone <- httpSrv.Start(httpAddr)
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := httpSrv.Shutdown(shutdownCtx); err != nil {
				slog.Warn("Failed to shut down HTTP server", logging.Err(err))
			}
		}()
	default:
		return fmt.Errorf("unsupported transport type: %s (supported: stdio, streamable-http)", transport)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case err := <-serverDone:
		if err != nil {
			return fmt.Errorf("MCP server failed: %w", err)
		}
		return nil
	case sig := <-sigCh:
		slog.Info("Received signal, shutting down", slog.String("signal", sig.String()))
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

type toolRegistration struct {
	name     string
	register func() error
}

func registerAllTools(mcpSrv *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	registrations := []toolRegistration{
		{"account", func() error { return account_tools.RegisterAccountTools(mcpSrv, sc) }},
		{"folder", func() error { return folder_tools.RegisterFolderTools(mcpSrv, sc, readOnly) }},
		{"file", func() error { return file_tools.RegisterFileTools(mcpSrv, sc, readOnly) }},
		{"search", func() error { return search_tools.RegisterSearchTools(mcpSrv, sc, readOnly) }},
	}

	for _, reg := range registrations {
		if err := reg.register(); err != nil {
			return fmt.Errorf("failed to register %s tools: %w", reg.name, err)
		}
	}
	return nil
}
