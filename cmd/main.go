package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Netflix/go-env"
	"github.com/dgraph-io/badger/v4"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"

	"chat-relay/api"
	"chat-relay/auth"
	"chat-relay/moderation"
	"chat-relay/observability"
	"chat-relay/repositories"
	"chat-relay/runtime"
	"chat-relay/runtime/workers"
	"chat-relay/services"
	"chat-relay/ws"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

// run initializes all components, manages the server lifecycle, and
// centralizes error reporting so every defer executes before the process
// exits.
func run() error {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	censorChar, err := characterRune(config.CharReplacement)
	if err != nil {
		return err
	}

	// 2. Storage (Badger + Bluge)
	db, err := badger.Open(badger.DefaultOptions(config.BadgerFilepath).
		WithLoggingLevel(badger.WARNING))
	if err != nil {
		return fmt.Errorf("database opening failed: %w", err)
	}
	defer func() {
		log.Info("Closing BadgerDB...")
		_ = db.Close()
	}()

	userRepository, err := repositories.NewUserRepository(db)
	if err != nil {
		return fmt.Errorf("user repository init failed: %w", err)
	}
	defer userRepository.Close()

	roomRepository, err := repositories.NewRoomRepository(db)
	if err != nil {
		return fmt.Errorf("room repository init failed: %w", err)
	}
	defer roomRepository.Close()

	messageRepository := repositories.NewMessageRepository(db, log)

	searchIndex, err := repositories.OpenMessageIndex(config.BlugeFilepath, log)
	if err != nil {
		return fmt.Errorf("search index opening failed: %w", err)
	}
	defer func() {
		log.Info("Closing search index...")
		_ = searchIndex.Close()
	}()

	// 3. Moderation
	censoredData, err := moderation.LoadCensoredWords()
	if err != nil {
		return fmt.Errorf("censored words loading failed: %w", err)
	}
	moderator, err := moderation.NewModerator(censoredData.Words, censorChar)
	if err != nil {
		return fmt.Errorf("moderator init failed: %w", err)
	}
	log.Info("Moderation ready", "words", len(censoredData.Words), "languages", censoredData.Languages)

	// 4. Services
	monitor := observability.NewMonitor()
	tokens := auth.NewTokenManager(config.TokenSecret, config.AccessTokenDuration, config.RefreshTokenDuration)
	credentials := auth.NewCredentialValidator(tokens, userRepository, log)
	authService := services.NewAuthService(userRepository, tokens)
	roomService := services.NewRoomService(roomRepository)
	chatService := services.NewChatService(messageRepository, searchIndex, &moderator, monitor, log, config.HistoryLimit)
	registry := runtime.NewRegistry(log, monitor)

	// 5. Background workers
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sup := workers.NewSupervisor(log, config.RestartInterval)
	sup.Add(
		workers.NewStatsReporterWorker(log, monitor, config.StatsInterval),
		workers.NewBadgerGCWorker(log, db, config.GCInterval),
	)
	supDone := make(chan struct{})
	go func() {
		defer close(supDone)
		sup.Run(ctx)
	}()

	// 6. HTTP server
	sessionDeps := runtime.SessionDeps{
		Credentials: credentials,
		Rooms:       roomService,
		Chat:        chatService,
		Registry:    registry,
		Monitor:     monitor,
		Log:         log,
	}
	wsHandler := ws.NewHandler(sessionDeps, log, config.WriteTimeout)
	apiHandler := api.NewHandler(
		api.AuthHandler{Auth: authService},
		api.RoomHandler{Rooms: roomService, Chat: chatService},
		monitor,
		api.SessionAuth{Tokens: tokens, Users: userRepository},
	)

	address := fmt.Sprintf("%s:%d", config.Host, config.Port)
	server := &http.Server{
		Addr:    address,
		Handler: apiHandler.Router(log, wsHandler),
	}

	errChan := make(chan error, 1)
	go func() {
		log.Info("Starting relay server", "address", address, "at", time.Now().UTC())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("server error: %w", err)
		}
	}()

	// 7. Wait for stop or error
	select {
	case <-ctx.Done():
		log.Info("Shutting down gracefully...")
	case err := <-errChan:
		return err
	}

	// 8. Final cleanup
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = server.Shutdown(shutdownCtx)
	sup.Stop()
	<-supDone
	log.Info("Program stopped cleanly")

	return nil
}

func characterRune(str string) (rune, error) {
	r := []rune(str)
	if len(r) != 1 {
		return 0, fmt.Errorf("MODERATION_CHARACTER_REPLACEMENT must be a single character, got %q", str)
	}
	return r[0], nil
}
