package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/farellandr/seatsavvy/config"
	"github.com/farellandr/seatsavvy/internal/auth"
	"github.com/farellandr/seatsavvy/internal/clock"
	"github.com/farellandr/seatsavvy/internal/handlers"
	"github.com/farellandr/seatsavvy/internal/middleware"
	"github.com/farellandr/seatsavvy/internal/services"
	"github.com/farellandr/seatsavvy/internal/store"
)

const shutdownTimeout = 10 * time.Second

// Start serves the API until ctx is cancelled, then drains in-flight requests
// and pending cancellations.
func Start(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	db, err := config.InitDatabase(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	st, err := store.New(db)
	if err != nil {
		return err
	}
	// Nothing survives between sessions.
	if err := st.Reset(ctx); err != nil {
		return err
	}
	seed, err := config.LoadSeed(cfg.SeedFile)
	if err != nil {
		return err
	}
	sysClock := clock.NewSystem()
	if err := seed.Apply(ctx, st, sysClock); err != nil {
		return fmt.Errorf("failed to seed catalog: %w", err)
	}

	publisher, err := config.InitPublisher(cfg)
	if err != nil {
		return fmt.Errorf("failed to connect publisher: %w", err)
	}
	defer publisher.Close()

	tokens, err := auth.NewTokens(cfg.JWTSecret, cfg.SessionTTL, sysClock)
	if err != nil {
		return err
	}

	app := services.NewApp(st, publisher, config.InitRenderer(cfg), config.InitConcierge(cfg, logger),
		services.WithClock(sysClock),
		services.WithLogger(logger),
		services.WithCancellationDelay(cfg.CancellationDelay),
		services.WithRenderTimeout(cfg.ExternalTimeout),
		services.WithQRSecret([]byte(cfg.JWTSecret)),
	)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           NewRouter(app, tokens),
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("api listening", "addr", srv.Addr, "store", cfg.StoreDriver, "events", len(seed.Events))

	srvErr := make(chan error, 1)
	go func() {
		srvErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
		logger.Info("shutdown signal received, stopping server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server shutdown error", "error", err)
	}
	if err := app.Cancellations.Drain(shutdownCtx); err != nil {
		logger.Warn("pending cancellations abandoned", "error", err)
	}
	logger.Info("server stopped")
	return nil
}

func NewRouter(app *services.App, tokens *auth.Tokens) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	setupRoutes(r, app, tokens)
	return r
}

func setupRoutes(r *gin.Engine, app *services.App, tokens *auth.Tokens) {
	r.Use(middleware.AppMiddleware(app, tokens))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	public := r.Group("/v1")
	public.Use(middleware.OptionalJWTMiddleware(tokens))
	{
		public.POST("/register", handlers.Register)
		public.POST("/login", handlers.Login)
		public.GET("/categories", handlers.ListCategories)
		public.POST("/concierge", handlers.AskConcierge)

		eventPublic := public.Group("/events")
		{
			eventPublic.GET("", handlers.ListEvents)
			eventPublic.GET("/:id", handlers.GetEvent)
			eventPublic.POST("/:id/purchase", handlers.PurchaseTicket)
		}
	}

	protected := r.Group("/v1")
	protected.Use(middleware.JWTAuthMiddleware(tokens))
	{
		protected.GET("/profile", handlers.GetProfile)
		protected.GET("/dashboard/stats", handlers.DashboardStats)

		eventProtected := protected.Group("/events")
		{
			eventProtected.POST("", handlers.CreateEvent)
			eventProtected.PUT("/:id", handlers.UpdateEvent)
			eventProtected.DELETE("/:id", handlers.CancelEvent)
			eventProtected.GET("/:id/cancellation", handlers.GetCancellation)
		}

		ticketProtected := protected.Group("/tickets")
		{
			ticketProtected.GET("", handlers.ListTickets)
			ticketProtected.POST("/verify", handlers.VerifyTicket)
			ticketProtected.GET("/:id", handlers.GetTicket)
			ticketProtected.GET("/:id/qr.png", handlers.GenerateTicketQR)
			ticketProtected.POST("/:id/redeem", handlers.RedeemTicket)
		}
	}
}
