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

	auth "Labusch/internal/auth"
	autodesign "Labusch/internal/calc/premium/autodesign"
	batch "Labusch/internal/calc/premium/batch"
	exporter "Labusch/internal/calc/premium/exporter"
	importer "Labusch/internal/calc/premium/importer"
	recommend "Labusch/internal/calc/premium/recommend"
	report "Labusch/internal/calc/report"
	strength "Labusch/internal/calc/strength"
	sweep "Labusch/internal/calc/sweep"
	catalog "Labusch/internal/catalog"
	config "Labusch/internal/config"
	history "Labusch/internal/history"
	logger "Labusch/internal/logger"
	repo "Labusch/internal/repo"

	"github.com/gorilla/mux"
)

var wg sync.WaitGroup

// Store is everything the server persists.
type Store interface {
	repo.Repository
	repo.SweepStore
}

func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func logRequests(log *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Debug("http.request", "method", r.Method, "path", r.URL.Path, "took", time.Since(start))
	})
}

func HandleList(r *mux.Router, cfg config.Config, log *slog.Logger, cat *catalog.Static, store Store) {
	authEnv := &auth.Authenv{JWTkey: []byte(cfg.TokenKey), Repo: store, Log: log}
	runner := sweep.Runner{Catalog: cat, Model: cfg.Model, Step: cfg.Step, Workers: cfg.Workers, MaxPoints: cfg.MaxPoints}
	historyH := &history.Handler{Store: store, Log: log}

	limiter := auth.NewIPRateLimiter(1, 3)

	api := r.PathPrefix("/api").Subrouter()
	api.Use(limiter.LimitMiddleware)

	api.HandleFunc("/login", authEnv.AuthHandler).Methods("POST")
	api.HandleFunc("/register", authEnv.RegisterHandler).Methods("POST")
	api.HandleFunc("/elements", (&catalog.Handler{Catalog: cat}).List).Methods("GET")

	secureApi := r.PathPrefix("/api/user").Subrouter()
	secureApi.Use(authEnv.AuthMiddleware)

	strengthH := &strength.Handler{Catalog: cat, Model: cfg.Model, Log: log}
	sweepH := &sweep.Handler{Runner: runner, Log: log, Record: historyH.Record}
	optimizeH := &autodesign.Handler{Runner: runner}
	batchH := &batch.Handler{Catalog: cat, Model: cfg.Model}
	recommendH := &recommend.Handler{Catalog: cat, Model: cfg.Model, Step: cfg.Step, MaxPoints: cfg.MaxPoints}
	importH := &importer.Handler{Catalog: cat, Model: cfg.Model, Log: log}
	exportH := &exporter.Handler{Runner: runner, Log: log}
	reportH := &report.Handler{Runner: runner, Log: log}

	secureApi.HandleFunc("/tools/strength/calc", strengthH.Calc).Methods("POST")
	secureApi.HandleFunc("/tools/sweep/binary", sweepH.Binary).Methods("POST")
	secureApi.HandleFunc("/tools/sweep/ternary", sweepH.Ternary).Methods("POST")
	secureApi.HandleFunc("/tools/optimize", optimizeH.Optimize).Methods("POST")
	secureApi.HandleFunc("/tools/batch/calc", batchH.Calc).Methods("POST")
	secureApi.HandleFunc("/tools/recommend", recommendH.Pairs).Methods("GET")
	secureApi.HandleFunc("/tools/import/xlsx", importH.Import).Methods("POST")
	secureApi.HandleFunc("/tools/export/xlsx", exportH.Export).Methods("POST")
	secureApi.HandleFunc("/tools/report/pdf", reportH.Generate).Methods("POST")

	secureApi.HandleFunc("/history", historyH.List).Methods("GET")
	secureApi.HandleFunc("/history/{id:[0-9]+}", historyH.Get).Methods("GET")
}

func openStore(ctx context.Context, cfg config.Config, log *slog.Logger) (Store, func(), error) {
	if cfg.DatabaseURL == "" {
		log.Warn("store.memory", "reason", "DATABASE_URL not set; users and history are not persisted")
		return repo.NewMemory(), func() {}, nil
	}
	db, err := repo.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	pg := repo.NewPostgresUserDB(db)
	if err := pg.Migrate(ctx); err != nil {
		db.Close()
		return nil, nil, err
	}
	return pg, func() { db.Close() }, nil
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config", "err", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	slog.SetDefault(log)
	if err := cfg.RequireServer(); err != nil {
		log.Error("config", "err", err)
		os.Exit(1)
	}

	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		log.Error("catalog", "path", cfg.CatalogPath, "err", err)
		os.Exit(1)
	}
	store, closeStore, err := openStore(ctx, cfg, log)
	if err != nil {
		log.Error("store", "err", err)
		os.Exit(1)
	}
	defer closeStore()

	r := mux.NewRouter()
	HandleList(r, cfg, log, cat, store)

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           logRequests(log, CORS(r)),
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Info("server.start", "addr", cfg.Addr, "tls", cfg.TLSCert != "", "elements", cat.Len(),
		"exponent", strength.ExponentLabel(cfg.Model.MisfitExponent), "step", cfg.Step, "workers", cfg.Workers)

	wg.Add(1)
	go func() {
		defer wg.Done()
		var err error
		if cfg.TLSCert != "" {
			err = server.ListenAndServeTLS(cfg.TLSCert, cfg.TLSKey)
		} else {
			err = server.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server", "err", err)
			cancel()
		}
	}()

	<-ctx.Done()
	log.Info("server.shutdown")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("server.shutdown", "err", err)
	}
	wg.Wait()
	log.Info("server.stopped")
}
