// File: branchbook/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"branchbook/config"
	"branchbook/database"
	appointmentRepo "branchbook/database/repository/appointment"
	branchRepo "branchbook/database/repository/branch"
	chatRepo "branchbook/database/repository/chat"
	faqRepo "branchbook/database/repository/faq"
	"branchbook/database/seed"
	"branchbook/handlers"
	"branchbook/middleware"
	"branchbook/routes"
	"branchbook/services/booking"
	"branchbook/services/chat"
	ai "branchbook/services/intelligence"
	"branchbook/services/weather"
	"branchbook/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	defer logger.Sync()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	database.InitDB()
	utils.InitCache()
	utils.InitChatCache()

	rootCtx, stop := context.WithCancel(context.Background())
	defer stop()
	utils.StartHealthMonitor(rootCtx, []*redis.Client{utils.GetCacheClient(), utils.GetChatCacheClient()}, database.MongoClient)

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.RateLimitMiddleware(config.AppConfig.MaxRequestsPerMin))

	// repositories.
	branches := branchRepo.NewMongoBranchRepo()
	appointments := appointmentRepo.NewMongoAppointmentRepo()
	messages := chatRepo.NewMongoChatRepo()
	faqs := faqRepo.NewMongoFAQRepo()

	if config.AppConfig.SeedBranches {
		seedCtx, cancel := context.WithTimeout(rootCtx, 15*time.Second)
		if n, err := seed.Branches(seedCtx, branches); err != nil {
			logger.Error("main: branch seeding failed", zap.Error(err))
		} else if n > 0 {
			logger.Info("main: seeded demo branches", zap.Int("count", n))
		}
		if n, err := seed.FAQs(seedCtx, faqs); err != nil {
			logger.Error("main: faq seeding failed", zap.Error(err))
		} else if n > 0 {
			logger.Info("main: seeded faq entries", zap.Int("count", n))
		}
		cancel()
	}

	// services.
	loc := config.Location()
	bookingService := &booking.DefaultBookingService{
		Branches:     branches,
		Appointments: appointments,
		Location:     loc,
		Now:          time.Now,
		Logger:       logger.Named("booking"),
	}

	weatherClient := weather.NewClient(
		config.AppConfig.WeatherURL,
		utils.GetCacheClient(),
		time.Duration(config.AppConfig.WeatherCacheTTLSeconds)*time.Second,
	)

	completer, closeCompleter := newCompleter(rootCtx, logger)
	defer closeCompleter()

	window := &chat.SessionHistory{
		Window:   ai.NewRedisHistoryStore(utils.GetChatCacheClient(), utils.ChatHistoryTTL, config.AppConfig.ChatHistoryTurns),
		Messages: messages,
		Logger:   logger.Named("history"),
	}
	orchestrator := ai.NewOrchestrator(ai.OrchestratorOptions{
		Completer:    completer,
		History:      window,
		Branches:     branches,
		FAQs:         faqs,
		Now:          time.Now,
		Location:     loc,
		Timeout:      config.AITimeout(),
		HistoryTurns: config.AppConfig.ChatHistoryTurns,
		Logger:       logger.Named("assistant"),
	})

	chatService := &chat.DefaultChatService{
		Messages:  messages,
		Matcher:   ai.NewMatcher(branches, weatherClient, logger.Named("matcher")),
		Assistant: orchestrator,
		Window:    window,
		Now:       time.Now,
		Logger:    logger.Named("chat"),
	}

	bookingHandler := handlers.NewBookingHandler(bookingService)
	chatHandler := handlers.NewChatHandler(chatService)
	weatherHandler := handlers.NewWeatherHandler(weatherClient)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		HealthHandler: handlers.Health,

		ListBranchesHandler: bookingHandler.ListBranches,
		BranchSlotsHandler:  bookingHandler.BranchSlots,

		CreateAppointmentHandler: bookingHandler.CreateAppointment,
		MyAppointmentsHandler:    bookingHandler.MyAppointments,
		CancelAppointmentHandler: bookingHandler.CancelAppointment,

		EmployeeAppointmentsHandler: bookingHandler.EmployeeAppointments,
		AdminAppointmentsHandler:    bookingHandler.AdminAppointments,

		ChatHandler:        chatHandler.Chat,
		ChatHistoryHandler: chatHandler.History,

		WeatherHandler: weatherHandler.Current,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")
	stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Errorf("main: server forced to shutdown: %v", err)
	}
	if err := database.Disconnect(ctx); err != nil {
		logger.Sugar().Warnf("main: mongo disconnect: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}

// newCompleter picks the completion backend from AI_PROVIDER. A missing key
// leaves the completer nil, which makes the assistant answer with its fallback.
func newCompleter(ctx context.Context, logger *zap.Logger) (ai.Completer, func()) {
	noop := func() {}
	switch strings.ToLower(config.AppConfig.AIProvider) {
	case "gemini":
		if config.AppConfig.GeminiAPIKey == "" {
			logger.Warn("main: GEMINI_API_KEY not set, assistant runs in fallback mode")
			return nil, noop
		}
		client, err := ai.NewGeminiClient(ctx, config.AppConfig.GeminiAPIKey, config.AppConfig.GeminiModel)
		if err != nil {
			logger.Error("main: gemini client unavailable", zap.Error(err))
			return nil, noop
		}
		return client, func() { _ = client.Close() }
	default:
		if config.AppConfig.GroqAPIKey == "" {
			logger.Warn("main: GROQ_API_KEY not set, assistant runs in fallback mode")
			return nil, noop
		}
		client := ai.NewOpenAICompatClient(config.AppConfig.GroqBaseURL, config.AppConfig.GroqAPIKey, config.AppConfig.GroqModel, &http.Client{Timeout: config.AITimeout()})
		return client, noop
	}
}
