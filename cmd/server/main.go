package main

import (
	"chat-rooms/infrastructure/grpc/chatpb"
	"chat-rooms/infrastructure/grpc/server"
	"chat-rooms/infrastructure/httpserver"
	"chat-rooms/infrastructure/websocket"
	"chat-rooms/internal"
	"chat-rooms/messages"
	"chat-rooms/moderation"
	"chat-rooms/observability"
	"chat-rooms/runtime"
	"chat-rooms/runtime/workers"
	"chat-rooms/services"
	"context"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
	"google.golang.org/grpc"
)

// Exit codes for the server.
const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

func main() {
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
	}
	os.Exit(code)
}

// run wires every component and blocks until SIGINT or SIGTERM.
// Deferred cleanups run before the exit code reaches main.
func run() (int, error) {
	// 1. Configuration & Logger
	// A missing .env file is fine, the environment may already be set
	_ = godotenv.Load()
	config, err := internal.LoadConfig()
	if err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	// 2. Moderation
	censoredChar, err := config.CharacterRune()
	if err != nil {
		return exitConfig, err
	}
	var dictionaries fs.FS = moderation.Dictionaries
	dir := moderation.DefaultDir
	if config.CensoredDir != "" {
		dictionaries, dir = os.DirFS(config.CensoredDir), "."
	}
	censored, err := moderation.NewLoader(dictionaries).LoadAll(dir)
	if err != nil {
		return exitConfig, fmt.Errorf("cannot load censored words: %w", err)
	}
	moderator, err := moderation.NewModerator(censored.Words, censoredChar, log)
	if err != nil {
		return exitConfig, err
	}
	log.Info("Moderation ready", "words", len(censored.Words), "languages", censored.Languages)

	// 3. Core
	metrics := observability.NewMetrics()
	registry := runtime.NewRegistry()
	coordinator := runtime.NewCoordinator(log, registry, moderator, messages.NewFormatter())
	hub := runtime.NewHub(log, config.DeliveryTimeout)
	chatService := services.NewChatService(log, coordinator, hub, metrics)

	probe, err := observability.NewProcessProbe()
	if err != nil {
		return exitRuntime, fmt.Errorf("process probe: %w", err)
	}
	health := observability.NewHealthReporter(registry, hub, probe)

	// 4. Transports
	wsServer := websocket.NewServer(log, chatService, websocket.Config{
		BufferSize:     config.ConnectionBufferSize,
		PingInterval:   config.PingInterval,
		MaxMessageSize: config.MaxMessageSize,
	})
	router := httpserver.NewRouter(log, wsServer, health, metrics.Handler())

	grpcServer := grpc.NewServer(grpc.MaxRecvMsgSize(int(config.MaxMessageSize)))
	chatpb.RegisterChatServiceServer(grpcServer,
		server.NewChatServer(log, chatService, config.ConnectionBufferSize))

	// 5. Context & Signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 6. Supervision
	supervisor := workers.NewSupervisor(log, config.RestartInterval)
	supervisor.Add(
		workers.NewHTTPServerWorker(log, router, config.HTTPAddress(), config.ShutdownTimeout, wsServer.Shutdown),
		workers.NewGRPCServerWorker(log, grpcServer, config.GRPCAddress(), config.ShutdownTimeout),
		workers.NewReporterWorker(log, registry, hub, metrics, health, config.ReportInterval),
	)
	supervised := make(chan struct{})
	go func() {
		defer close(supervised)
		supervisor.Run(context.Background())
	}()

	// 7. Wait for a signal, then stop every worker
	<-ctx.Done()
	log.Info("Shutdown signal received")
	supervisor.Stop()
	<-supervised

	log.Info("Program stopped cleanly")
	return exitOK, nil
}
