package server

import (
	"context"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"labrack/config"
	"labrack/internal/availability"
	"labrack/internal/db"
	"labrack/internal/health"
	"labrack/internal/inventory"
	"labrack/internal/logs"
	"labrack/internal/middleware"
	"labrack/internal/models"
	"labrack/internal/probe"
	"labrack/internal/registry"
	"labrack/internal/reservation"
	"labrack/internal/timeutil"

	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

type App struct {
	cfg        *config.Config
	Router     *mux.Router
	httpServer *http.Server

	db     *gorm.DB
	runner *probe.Runner
	ctx    context.Context
	cancel context.CancelFunc
}

func (a *App) Initialize(cfg *config.Config) {
	a.cfg = cfg

	// 1) Логи
	logs.Init(logs.Options{
		Level:  a.cfg.Logging.Level,
		Format: a.cfg.Logging.Format,
		File:   a.cfg.Logging.File,
	})

	// 2) БД (опционально; без БД — in-memory режим)
	if drv := a.cfg.Database.Driver; drv != "" {
		d, err := db.Open(drv, a.cfg.Database.DSN)
		if err != nil {
			log.Fatalf("db open failed: %v", err)
		}
		a.db = d
	}

	// ---- DB migrations (only if DB is connected) ----
	if a.db != nil {
		if err := db.MigrateLegacyColumns(a.db); err != nil {
			logs.Logger.Warnf("legacy columns migration: %v", err)
		}
		if err := a.db.AutoMigrate(
			&models.Device{},
			&models.DeviceStatus{},
			&models.Reservation{},
			&models.Inventory{},
		); err != nil {
			logs.Logger.Errorf("automigrate: %v", err)
		}
	}

	// 3) Роутер + middleware
	a.Router = mux.NewRouter()
	a.Router.Use(middleware.RequestID)
	a.Router.Use(middleware.Recoverer)
	a.Router.Use(middleware.LoggerMW)
	a.Router.Use(middleware.CORS)

	a.RegisterWebUI("/ui/")

	// 4) Health
	if a.db != nil {
		health.RegisterRoutesWithDB(a.Router, a.db) // /healthz и /readyz
	} else {
		health.RegisterRoutes(a.Router)
	}

	// 5) Stores: GORM при наличии БД, иначе in-memory
	var (
		devStore registry.Store
		resStore reservation.Store
		invStore inventory.Store
	)
	if a.db != nil {
		devStore = registry.NewGormStore(a.db)
		resStore = reservation.NewGormStore(a.db)
		invStore = inventory.NewGormStore(a.db)
	} else {
		ms := registry.NewMemStore()
		resStore = reservation.NewMemStore()
		invStore = inventory.NewMemStore()
		ms.Purger = resStore
		devStore = ms
	}

	if a.cfg.Database.Seed {
		seedDevices(devStore)
	}

	// 6) Доменные ручки
	ledger := reservation.NewLedger(resStore, devStore, timeutil.System)

	registry.NewHTTP(devStore, timeutil.System, a.cfg.Admin.Code).RegisterRoutes(a.Router)
	reservation.NewHTTP(ledger).RegisterRoutes(a.Router)
	availability.NewHTTP(devStore, resStore, timeutil.System).RegisterRoutes(a.Router)
	inventory.NewHTTP(invStore, a.cfg.Admin.Code).RegisterRoutes(a.Router)

	// 7) Ping job
	if a.cfg.Probe.Mode != "off" {
		timeout := time.Duration(a.cfg.Probe.TimeoutSec) * time.Second
		var prober probe.Prober
		if a.cfg.Probe.Mode == "tcp" {
			prober = &probe.TCPProber{Port: a.cfg.Probe.TCPPort, Timeout: timeout}
		} else {
			prober = &probe.ICMPProber{Timeout: timeout}
		}
		a.runner = probe.NewRunner(devStore, prober, timeutil.System,
			time.Duration(a.cfg.Probe.IntervalSec)*time.Second)
	}

	a.Router.Walk(func(rt *mux.Route, r *mux.Router, ancestors []*mux.Route) error {
		path, _ := rt.GetPathTemplate()
		methods, _ := rt.GetMethods()
		log.Printf("route: %-6v %s", methods, path)
		return nil
	})
}

func (a *App) Run() error {
	if a.Router == nil || a.cfg == nil {
		return ErrNotInitialized
	}
	bind := net.JoinHostPort(a.cfg.Server.Address, a.cfg.Server.HTTPPort)

	a.ctx, a.cancel = context.WithCancel(context.Background())
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() { <-sigs; a.cancel() }()

	if a.runner != nil {
		go a.runner.Run(a.ctx)
	}

	a.httpServer = &http.Server{
		Addr:         bind,
		Handler:      a.Router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("HTTP listening on %s", bind)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("http server error: %v", err)
		}
	}()

	<-a.ctx.Done()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = a.httpServer.Shutdown(ctx)
	return nil
}

var ErrNotInitialized = &initError{"server not initialized (call Initialize(cfg) first)"}

type initError struct{ s string }

func (e *initError) Error() string { return e.s }
