package internal

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"blogd/internal/backup/interfaces"
	"blogd/internal/controllers"
	"blogd/internal/providers"
	"blogd/internal/structures"
)

type App struct {
	WebServer *http.Server
	scheduler interfaces.SchedulerInterface
	logger    providers.Logger
	conf      *structures.Config
}

// NewHandler assembles the full HTTP surface: instrumented API routes behind
// an outer mux carrying the infrastructure endpoints.
func NewHandler(router providers.RouterProviderInterface, healthController *controllers.HealthController, conf *structures.Config, logger providers.Logger, metrics providers.MetricsProviderInterface) http.Handler {
	// Inner mux: API routes
	apiMux := http.NewServeMux()
	for _, route := range router.GetRoutes() {
		apiMux.Handle(route.Pattern(), route.Handler)
	}

	instrumentedAPI := providers.MetricsMiddleware(metrics, requestLog(logger, apiMux))

	// Outer mux: infrastructure + instrumented API
	mux := http.NewServeMux()
	mux.HandleFunc("/health", healthController.Health)
	if conf.Metrics.Enabled {
		mux.Handle("/metrics", promhttp.Handler())
	}
	uploads := http.Dir(conf.Storage.PublicDir)
	mux.Handle("GET /uploads/", http.FileServer(uploads))
	mux.Handle("/", instrumentedAPI)
	return mux
}

func requestLog(logger providers.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		logger.Debugf(providers.GetLogTypeByRequestPath(r.URL.Path), "%s %s (%s)", r.Method, r.URL.Path, time.Since(start))
	})
}

func NewApp(handler http.Handler, scheduler interfaces.SchedulerInterface, conf *structures.Config, logger providers.Logger) *App {
	return &App{
		WebServer: &http.Server{
			Addr:         conf.WebServer.Host + ":" + strconv.Itoa(conf.WebServer.Port),
			Handler:      handler,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 60 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		scheduler: scheduler,
		logger:    logger,
		conf:      conf,
	}
}

// Run serves HTTP and the backup schedule until SIGINT or SIGTERM.
func (app *App) Run() error {
	logger := app.logger
	logger.Infof(providers.TypeApp, "Starting %s", app.conf.AppName)

	app.scheduler.Init()

	serverErr := make(chan error, 1)
	go func() {
		logger.Infof(providers.TypeApp, "Listening HTTP clients on %s", app.WebServer.Addr)
		if err := app.WebServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(stop)

	select {
	case <-stop:
		logger.Infof(providers.TypeApp, "Shutdown signal received")
	case err := <-serverErr:
		app.scheduler.Stop()
		return fmt.Errorf("server error: %w", err)
	}

	app.scheduler.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.WebServer.Shutdown(ctx); err != nil {
		return err
	}
	logger.Infof(providers.TypeApp, "gracefully stopped")
	return nil
}
