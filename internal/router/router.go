package router

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"time"

	mem "procurement-timeline/internal/adapters/storage/memory"
	pg "procurement-timeline/internal/adapters/storage/postgres"
	"procurement-timeline/internal/domain/processes"
	"procurement-timeline/internal/domain/timeline"
	"procurement-timeline/internal/middleware"
	"procurement-timeline/internal/platform/logger"
	"procurement-timeline/internal/ports/auth"
	"procurement-timeline/internal/seed"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB

	// Opcional: logger de requests; nil = sin logging.
	Logger logger.Logger

	// DemoData siembra el expediente de demostración (solo in-memory).
	DemoData bool
}

func NewRouter(opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	if opts.Logger != nil {
		r.Use(middleware.RequestLogger(opts.Logger))
	}

	r.Use(middleware.AuthContext(opts.AuthVerifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	var (
		procRepo processes.Repository
		tlRepo   timeline.Repository
	)

	// Si no te pasan DB explícita, intenta por env (para dev/handoff)
	db := opts.DB
	if db == nil {
		if dsn := os.Getenv("DB_DSN"); dsn != "" {
			opened, err := pg.Open(dsn)
			if err == nil {
				db = opened
			}
		}
	}

	demoEvents := []timeline.TimelineEvent(nil)
	if db != nil {
		procRepo = pg.NewProcessesRepo(db)
		tlRepo = pg.NewTimelineRepo(db)
	} else {
		procRepo = mem.NewProcessRepo()
		tlRepo = mem.NewTimelineRepo()

		if opts.DemoData {
			now := time.Now()
			// Falla de seed no tumba el servicio; queda sin demo.
			if err := seed.Demo(context.Background(), procRepo, tlRepo, now); err == nil {
				demoEvents = seed.DemoEvents(seed.DemoProcessID, now)
			}
		}
	}

	procSvc := processes.NewService(procRepo)
	tlSvc := timeline.NewService(tlRepo).WithDemoDataset(demoEvents)

	processes.RegisterRoutes(r, procSvc)
	timeline.RegisterRoutes(r, tlSvc, procSvc)

	return r
}
