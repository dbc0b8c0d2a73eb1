package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	auth "Billios/internal/auth"
	batch "Billios/internal/calc/batch"
	fieldtest "Billios/internal/calc/fieldtest"
	importer "Billios/internal/calc/importer"
	report "Billios/internal/calc/report"
	config "Billios/internal/config"
	records "Billios/internal/records"
	repo "Billios/internal/repo"

	"github.com/gorilla/mux"
	"github.com/lmittmann/tint"
)

var wg sync.WaitGroup

func CORS(mux *mux.Router) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		mux.ServeHTTP(w, r)
	})
}

func HandleList(mux *mux.Router, cfg *config.Config, store repo.Repository, log *slog.Logger) {
	cal := cfg.Calibration()

	authEnv := &auth.Authenv{JWTkey: []byte(cfg.TokenKey), Repo: store, Log: log}
	limiter := auth.NewIPRateLimiter(5, 10)

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}).Methods("GET")

	api := mux.PathPrefix("/api").Subrouter()
	api.Use(limiter.LimitMiddleware)

	api.HandleFunc("/login", authEnv.AuthHandler).Methods("POST")
	api.HandleFunc("/register", authEnv.RegisterHandler).Methods("POST")

	secureApi := api.PathPrefix("/user").Subrouter()
	secureApi.Use(authEnv.AuthMiddleware)

	fieldTestH := &fieldtest.Handler{Calibration: cal, Log: log}
	batchH := &batch.Handler{Calibration: cal}
	importH := &importer.Handler{Calibration: cal, Log: log}
	reportH := &report.Handler{Calibration: cal, Log: log}
	recordsH := &records.Handler{Repo: store, Calibration: cal, Log: log}

	secureApi.HandleFunc("/tools/field-test/calc", fieldTestH.Calc).Methods("POST")
	secureApi.HandleFunc("/tools/field-test/batch", batchH.FieldTests).Methods("POST")
	secureApi.HandleFunc("/tools/field-test/import", importH.FieldTests).Methods("POST")
	secureApi.HandleFunc("/tools/field-test/report", reportH.Generate).Methods("POST")

	secureApi.HandleFunc("/field-tests", recordsH.Save).Methods("POST")
	secureApi.HandleFunc("/field-tests", recordsH.List).Methods("GET")
	secureApi.HandleFunc("/field-tests/{id:[0-9]+}", recordsH.Get).Methods("GET")
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("config", "error", err)
		os.Exit(1)
	}

	log := slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      cfg.SlogLevel(),
		TimeFormat: time.DateTime,
	}))
	slog.SetDefault(log)

	if err := cfg.Validate(); err != nil {
		log.Error("invalid config", "error", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	db, err := repo.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("database is not available", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := repo.Migrate(ctx, db); err != nil {
		log.Error("migration failed", "error", err)
		os.Exit(1)
	}

	router := mux.NewRouter()
	HandleList(router, cfg, repo.NewPostgresRepository(db), log)

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           CORS(router),
		ReadHeaderTimeout: 10 * time.Second,
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Info("starting server", "addr", cfg.Addr, "tls", cfg.TLSCert != "")
		var err error
		if cfg.TLSCert != "" {
			err = server.ListenAndServeTLS(cfg.TLSCert, cfg.TLSKey)
		} else {
			err = server.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			cancel()
		}
	}()

	<-ctx.Done()
	log.Info("shutdown signal received, closing active connections")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown failed", "error", err)
	}
	wg.Wait()
	log.Info("server stopped")
}
