package main

import (
	"context"
	"embed"
	"errors"
	"io/fs"
	"mime"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"promjum/internal/config"
	"promjum/internal/database"
	"promjum/internal/game"
	"promjum/internal/handlers"
	"promjum/internal/logging"
	"promjum/internal/progress"
	"promjum/internal/repository"
	"promjum/internal/scramble"
)

func main() {
	_ = mime.AddExtensionType(".css", "text/css")

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	logging.Setup(cfg.LogLevel, cfg.LogPretty)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(ctx, database.Config{Type: cfg.DBType, Path: cfg.DBPath, URL: cfg.DBURL})
	if err != nil {
		log.Fatal().Err(err).Msg("open database")
	}
	defer db.Close()
	if _, err := db.RunMigrations(ctx); err != nil {
		log.Fatal().Err(err).Msg("run migrations")
	}

	vocab := repository.NewVocabularyRepository(db)
	if cfg.SeedDeck {
		seedDecks(ctx, vocab)
	}

	xp := progress.NewXPService(repository.NewXPRepository(db))
	reviews := progress.NewReviewService(repository.NewReviewRepository(db))
	results := progress.NewResultService(repository.NewResultRepository(db))
	dispatcher := progress.NewDispatcher(xp, reviews, cfg.TelemetryTimeout)

	store := game.NewStore(
		game.Sources{vocab, game.StarterDeck{}},
		game.Config{
			MaxWords: cfg.SessionWords,
			Pacing: scramble.Pacing{
				Retry:   cfg.RetryDelay,
				Advance: cfg.AdvanceDelay,
				Reveal:  cfg.RevealDelay,
			},
			TTL: cfg.SessionTTL,
		},
		game.WithProgress(dispatcher),
		game.WithResults(results),
	)
	go store.RunJanitor(ctx, time.Minute)

	staticFS, err := fs.Sub(embeddedStatic, "static")
	if err != nil {
		log.Fatal().Err(err).Msg("static files")
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(handlers.AccessLog)
	r.Use(middleware.Recoverer)

	r.Mount("/static", http.StripPrefix("/static", http.FileServer(http.FS(staticFS))))

	homeHandler := handlers.NewHomeHandler(store)
	gameHandler := handlers.NewGameHandler(store, cfg.BaseURL)
	progressHandler := handlers.NewProgressHandler(&progress.Service{XP: xp, Reviews: reviews, Results: results})

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(15 * time.Second))
		homeHandler.RegisterRoutes(r)
		gameHandler.RegisterRoutes(r)
		progressHandler.RegisterRoutes(r)
	})
	r.Group(gameHandler.RegisterStream)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("shutdown")
		}
	}()

	log.Info().Str("addr", server.Addr).Str("env", cfg.Env).Str("db", db.GetDialect().DriverName()).Msg("listening")
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("serve")
	}
	dispatcher.Wait()
	log.Info().Msg("stopped")
}

func seedDecks(ctx context.Context, vocab *repository.VocabularyRepository) {
	for _, deck := range game.SupportedDecks() {
		items, err := game.LoadDeck(deck)
		if err != nil {
			log.Warn().Err(err).Str("deck", deck).Msg("load starter deck")
			continue
		}
		n, err := vocab.Seed(ctx, deck, items)
		if err != nil {
			log.Warn().Err(err).Str("deck", deck).Msg("seed deck")
			continue
		}
		log.Info().Str("deck", deck).Int("words", n).Msg("seeded deck")
	}
}

//go:embed static/*
var embeddedStatic embed.FS
