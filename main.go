// Command soulchess starts the Soul Chess puzzle server.
//
// It supports these commands:
//  1. "server" (default) – runs the HTTP server exposing REST API, WebSocket, and an /mcp HTTP endpoint
//  2. "stdio-mcp" – runs an MCP stdio server and spins up an internal HTTP API if none is available
//  3. "generate" – prints one generated puzzle and its solution
//  4. "solve" – runs the solver over layout rows given as arguments
//
// Flags control host/port, config directory, debug logging, and optional
// ngrok tunneling for easy external access during development. Every flag
// can also be set from the environment or a .env file.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/server"
	"github.com/urfave/cli/v3"
	"github.com/wricardo/soulchess/api"
	"github.com/wricardo/soulchess/game/config"
	"github.com/wricardo/soulchess/game/engine"
	"github.com/wricardo/soulchess/game/service"
	"github.com/wricardo/soulchess/game/session"
	"github.com/wricardo/soulchess/transport/mcp"
	"github.com/wricardo/soulchess/transport/websocket"
	"golang.ngrok.com/ngrok"
	ngrokConfig "golang.ngrok.com/ngrok/config"
)

// Version information
const (
	Version = "1.0.0"
	AppName = "Soul Chess Server"
)

const (
	sessionMaxAge          = 24 * time.Hour
	sessionCleanupInterval = time.Hour
)

// serverOptions holds the flag values shared by the server commands
type serverOptions struct {
	port        int
	host        string
	configDir   string
	ngrok       bool
	ngrokAuth   string
	ngrokDomain string
}

func optionsFrom(cmd *cli.Command) serverOptions {
	return serverOptions{
		port:        int(cmd.Int("port")),
		host:        cmd.String("host"),
		configDir:   cmd.String("config-dir"),
		ngrok:       cmd.Bool("ngrok"),
		ngrokAuth:   cmd.String("ngrok-auth"),
		ngrokDomain: cmd.String("ngrok-domain"),
	}
}

// newCommand builds the command tree
func newCommand() *cli.Command {
	return &cli.Command{
		Name:           "soulchess",
		Usage:          AppName,
		Version:        Version,
		DefaultCommand: "server",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "port", Value: 8080, Usage: "HTTP server port", Sources: cli.EnvVars("PORT")},
			&cli.StringFlag{Name: "host", Value: "localhost", Usage: "HTTP server host", Sources: cli.EnvVars("HOST")},
			&cli.StringFlag{Name: "config-dir", Value: "configs", Usage: "Directory containing game configurations", Sources: cli.EnvVars("CONFIG_DIR")},
			&cli.BoolFlag{Name: "debug", Usage: "Enable debug logging", Sources: cli.EnvVars("DEBUG")},
			&cli.BoolFlag{Name: "ngrok", Usage: "Enable ngrok tunnel", Sources: cli.EnvVars("NGROK_ENABLED")},
			&cli.StringFlag{Name: "ngrok-auth", Usage: "Ngrok auth token", Sources: cli.EnvVars("NGROK_AUTHTOKEN", "NGROK_AUTH_TOKEN")},
			&cli.StringFlag{Name: "ngrok-domain", Usage: "Custom ngrok domain (optional)", Sources: cli.EnvVars("NGROK_DOMAIN")},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			if cmd.Bool("debug") {
				log.SetFlags(log.LstdFlags | log.Lshortfile)
			} else {
				log.SetFlags(log.LstdFlags)
			}
			return ctx, nil
		},
		Commands: []*cli.Command{
			{
				Name:    "server",
				Aliases: []string{"http"},
				Usage:   "Run HTTP server with API, WebSocket, and MCP endpoint",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					opts := optionsFrom(cmd)
					log.Printf("Starting %s v%s (mode: server)", AppName, Version)

					gameService, err := initializeServices(ctx, opts.configDir)
					if err != nil {
						return fmt.Errorf("failed to initialize services: %w", err)
					}
					return runHTTPServer(ctx, opts, gameService)
				},
			},
			{
				Name:    "stdio-mcp",
				Aliases: []string{"mcp-stdio", "mcp"},
				Usage:   "Run MCP stdio server with internal HTTP server",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					opts := optionsFrom(cmd)
					log.Printf("Starting %s v%s (mode: stdio-mcp)", AppName, Version)

					gameService, err := initializeServices(ctx, opts.configDir)
					if err != nil {
						return fmt.Errorf("failed to initialize services: %w", err)
					}
					return runStdioMCPWithInternalServer(opts, gameService)
				},
			},
			{
				Name:  "generate",
				Usage: "Generate a puzzle and print it with its solution",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "level", Value: 1, Usage: "difficulty level"},
					&cli.Uint64Flag{Name: "seed", Usage: "random seed (random when unset)"},
					&cli.IntFlag{Name: "size", Usage: "board size override"},
				},
				Action: runGenerate,
			},
			{
				Name:      "solve",
				Usage:     "Solve a layout given as one argument per row",
				ArgsUsage: "<row> [row...]",
				Action:    runSolve,
			},
		},
	}
}

// main loads .env, then runs the selected command
func main() {
	// Load .env file if it exists (ignore error if not found)
	if err := godotenv.Load(); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Printf("Warning: Error loading .env file: %v", err)
		}
	} else {
		log.Println("Loaded environment variables from .env file")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newCommand().Run(ctx, os.Args); err != nil {
		log.Fatal(err)
	}
}

// mcpHandler serves JSON-RPC messages posted to /mcp
func mcpHandler(mcpClient *mcp.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "Failed to read request", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		response := mcpClient.GetMCPServer().HandleMessage(r.Context(), body)
		if response == nil {
			// Notifications get no reply
			w.WriteHeader(http.StatusAccepted)
			return
		}

		responseData, err := json.Marshal(response)
		if err != nil {
			http.Error(w, "Failed to marshal response", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write(responseData)
	}
}

// newRouter combines the REST API, WebSocket endpoint and the /mcp proxy
func newRouter(gameService service.GameService, hub *websocket.Hub, baseURL string) http.Handler {
	mainRouter := http.NewServeMux()
	mainRouter.Handle("/", api.NewServer(gameService, hub))
	mainRouter.HandleFunc("/mcp", mcpHandler(mcp.NewClient(baseURL)))
	return mainRouter
}

// runHTTPServer starts the HTTP server with REST API, WebSocket hub, and an /mcp proxy endpoint.
// If ngrok is enabled, it also provisions a public tunnel. It returns when ctx is cancelled.
func runHTTPServer(ctx context.Context, opts serverOptions, gameService service.GameService) error {
	hub := websocket.NewHub()
	go hub.Run()

	addr := fmt.Sprintf("%s:%d", opts.host, opts.port)
	mainRouter := newRouter(gameService, hub, fmt.Sprintf("http://%s", addr))

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      mainRouter,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	serveErr := make(chan error, 1)

	wg.Add(1)
	go func() {
		defer wg.Done()

		log.Printf("HTTP server listening on %s", addr)
		log.Printf("REST API: http://%s/api", addr)
		log.Printf("WebSocket: ws://%s/ws?session=<session_id>", addr)
		log.Printf("MCP endpoint: http://%s/mcp", addr)

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serveErr <- fmt.Errorf("HTTP server failed: %w", err)
			cancel()
		}
	}()

	if opts.ngrok {
		wg.Add(1)
		go func() {
			defer wg.Done()
			runNgrokTunnel(ctx, opts, mainRouter)
		}()
	}

	<-ctx.Done()
	log.Println("Shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}

	wg.Wait()
	log.Println("Server stopped")

	select {
	case err := <-serveErr:
		return err
	default:
		return nil
	}
}

// runNgrokTunnel serves handler through an ngrok tunnel until ctx is cancelled
func runNgrokTunnel(ctx context.Context, opts serverOptions, handler http.Handler) {
	if opts.ngrokAuth == "" {
		log.Println("WARNING: Ngrok enabled but no auth token provided (use --ngrok-auth, NGROK_AUTHTOKEN, or NGROK_AUTH_TOKEN env var)")
		return
	}

	log.Println("Starting ngrok tunnel...")

	var tunnel ngrokConfig.Tunnel
	if opts.ngrokDomain != "" {
		tunnel = ngrokConfig.HTTPEndpoint(ngrokConfig.WithDomain(opts.ngrokDomain))
		log.Printf("Using custom ngrok domain: %s", opts.ngrokDomain)
	} else {
		tunnel = ngrokConfig.HTTPEndpoint()
	}

	tun, err := ngrok.Listen(ctx, tunnel, ngrok.WithAuthtoken(opts.ngrokAuth))
	if err != nil {
		log.Printf("Failed to start ngrok tunnel: %v", err)
		return
	}

	go func() {
		<-ctx.Done()
		if err := tun.Close(); err != nil {
			log.Printf("Failed to close ngrok tunnel: %v", err)
		}
	}()

	ngrokURL := tun.URL()
	log.Printf("🚀 Ngrok tunnel established: %s", ngrokURL)
	log.Printf("  REST API (ngrok): %s/api", ngrokURL)
	log.Printf("  WebSocket (ngrok): %s/ws?session=<session_id>", ngrokURL)
	log.Printf("  MCP endpoint (ngrok): %s/mcp", ngrokURL)

	if err := http.Serve(tun, handler); err != nil && err != http.ErrServerClosed && ctx.Err() == nil {
		log.Printf("Ngrok server error: %v", err)
	}
	log.Println("Ngrok tunnel closed")
}

// initializeServices wires session/config managers and the game service.
// It also starts a background cleanup routine, stopped with ctx, to prune
// stale sessions.
func initializeServices(ctx context.Context, configDir string) (service.GameService, error) {
	configManager, err := config.NewManager(configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to create config manager: %w", err)
	}

	sessionManager := session.NewManager(engine.WithLogger(log.Default()))
	gameService := service.NewGameService(sessionManager, configManager)

	go sessionCleanupRoutine(ctx, sessionManager, sessionCleanupInterval, sessionMaxAge)

	return gameService, nil
}

// sessionCleanupRoutine periodically removes sessions that have not been accessed
// within maxAge
func sessionCleanupRoutine(ctx context.Context, manager *session.Manager, interval, maxAge time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := manager.CleanupExpiredSessions(maxAge); removed > 0 {
				log.Printf("Cleaned up %d expired sessions", removed)
			}
		}
	}
}

// runStdioMCPWithInternalServer runs an MCP stdio server.
// It tries to reuse an external API at localhost:<port>; if unavailable, it
// starts a minimal internal HTTP API bound to a random loopback port and targets that.
func runStdioMCPWithInternalServer(opts serverOptions, gameService service.GameService) error {
	externalURL := fmt.Sprintf("http://localhost:%d", opts.port)
	log.Printf("Checking for external API server at %s...", externalURL)

	baseURL := externalURL
	testClient := &http.Client{Timeout: 2 * time.Second}
	resp, err := testClient.Get(externalURL + "/api")
	if err == nil && resp.StatusCode < 500 {
		resp.Body.Close()
		log.Printf("External API server found at %s, using it for MCP", externalURL)
	} else {
		if resp != nil {
			resp.Body.Close()
		}
		log.Printf("No external API server found, starting internal HTTP server")

		listener, err := net.Listen("tcp", "127.0.0.1:0")
		if err != nil {
			return fmt.Errorf("failed to get available port: %w", err)
		}

		internalAddr := listener.Addr().String()
		log.Printf("Starting internal HTTP server on %s for MCP stdio", internalAddr)

		hub := websocket.NewHub()
		go hub.Run()

		httpServer := &http.Server{Handler: api.NewServer(gameService, hub)}
		defer httpServer.Close()

		go func() {
			if err := httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
				log.Printf("Internal HTTP server error: %v", err)
			}
		}()

		baseURL = fmt.Sprintf("http://%s", internalAddr)
	}

	mcpClient := mcp.NewClient(baseURL)
	log.Printf("MCP stdio server ready (API at %s)", baseURL)

	if err := server.ServeStdio(mcpClient.GetMCPServer()); err != nil {
		return fmt.Errorf("MCP stdio server error: %w", err)
	}
	return nil
}

// runGenerate prints one puzzle for the requested level
func runGenerate(ctx context.Context, cmd *cli.Command) error {
	level := int(cmd.Int("level"))
	if level < 1 {
		return fmt.Errorf("level must be at least 1, got %d", level)
	}

	seed := cmd.Uint64("seed")
	if !cmd.IsSet("seed") {
		seed = engine.RandomSeed()
	}

	opts := []engine.Option{engine.WithLogger(log.Default())}
	if size := int(cmd.Int("size")); size != 0 {
		if size < engine.MinBoardSize || size > engine.MaxBoardSize {
			return fmt.Errorf("size must be between %d and %d, got %d", engine.MinBoardSize, engine.MaxBoardSize, size)
		}
		opts = append(opts, engine.WithBoardSize(size))
	}

	puzzle := engine.NewGenerator(engine.NewSeededRand(seed), opts...).Generate(level)

	w := cmd.Root().Writer
	fmt.Fprintf(w, "Level %d, seed %d\n\n", puzzle.Level, seed)
	fmt.Fprint(w, puzzle.Board.String())

	if puzzle.Failed() {
		fmt.Fprintf(w, "\nNo puzzle found after %d attempts\n", puzzle.Attempts)
		return nil
	}

	fmt.Fprintf(w, "\nMinimum moves: %d", puzzle.MinMoves)
	if puzzle.Fallback {
		fmt.Fprintf(w, " (fallback, target was %d)", puzzle.Profile.MinMovesThreshold)
	}
	fmt.Fprintf(w, "\nSolution: %s\n", formatPath(puzzle.SolutionPath))
	fmt.Fprintf(w, "Layout: %s\n", strings.Join(puzzle.Board.Layout(), "/"))
	return nil
}

// runSolve solves the layout rows passed as arguments
func runSolve(ctx context.Context, cmd *cli.Command) error {
	rows := cmd.Args().Slice()
	if len(rows) == 1 && strings.Contains(rows[0], "/") {
		rows = strings.Split(rows[0], "/")
	}

	board, err := engine.ParseLayout(rows)
	if err != nil {
		return err
	}

	sol := engine.Solve(board)

	w := cmd.Root().Writer
	fmt.Fprint(w, board.String())
	if !sol.Solvable() {
		fmt.Fprintf(w, "\nNo solution (%s, %d states explored)\n", engine.Classify(board), sol.Explored)
		return nil
	}

	fmt.Fprintf(w, "\nMinimum moves: %d, solutions: %d, explored: %d\n", sol.MinMoves, len(sol.Solutions), sol.Explored)
	for i, path := range sol.Solutions {
		fmt.Fprintf(w, "%d. %s\n", i+1, formatPath(path))
	}
	return nil
}

func formatPath(path []engine.Move) string {
	steps := make([]string, len(path))
	for i, m := range path {
		steps[i] = m.String()
	}
	return strings.Join(steps, " ")
}
