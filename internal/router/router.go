package router

import (
	"context"
	"crypto/rand"
	"net/http"
	"time"

	_ "pet-clinic/docs"
	"pet-clinic/internal/adapters/auth/denylist"
	"pet-clinic/internal/adapters/auth/jwt"
	mem "pet-clinic/internal/adapters/storage/memory"
	pg "pet-clinic/internal/adapters/storage/postgres"
	"pet-clinic/internal/domain/appointments"
	authsvc "pet-clinic/internal/domain/auth"
	"pet-clinic/internal/domain/catalog"
	"pet-clinic/internal/domain/clinic"
	"pet-clinic/internal/domain/dashboard"
	"pet-clinic/internal/domain/invoices"
	"pet-clinic/internal/domain/medicalrecords"
	"pet-clinic/internal/domain/owners"
	"pet-clinic/internal/domain/pets"
	"pet-clinic/internal/domain/staff"
	"pet-clinic/internal/middleware"
	"pet-clinic/internal/platform/logger"
	"pet-clinic/internal/platform/metrics"
	"pet-clinic/internal/ports/auth"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	httpSwagger "github.com/swaggo/http-swagger"
	"gorm.io/gorm"
)

type Options struct {
	Logger logger.Logger

	// Opcional: si viene, usa Postgres (gorm). Si no, in-memory.
	DB *gorm.DB

	// Opcional: denylist compartida de tokens. Sin Redis, go-cache local.
	Redis          redis.UniversalClient
	RedisKeyPrefix string

	// JWTSecret vacío => secreto efímero (los tokens mueren con el proceso).
	JWTSecret  []byte
	JWTIssuer  string
	TokenTTL   time.Duration
	BcryptCost int

	// AuthRequired exige sesión (staff u owner) en los CRUD.
	AuthRequired bool

	// Opcional: expone /metrics y mide cada request.
	Metrics *metrics.HTTP
}

type repos struct {
	refs         clinic.RefStore
	owners       owners.Repository
	staff        staff.Repository
	pets         pets.Repository
	services     catalog.Repository
	appointments appointments.Repository
	records      medicalrecords.Repository
	invoices     invoices.Repository
}

func memoryRepos() repos {
	s := mem.NewStore()
	return repos{
		refs:         s,
		owners:       mem.NewOwnerRepo(s),
		staff:        mem.NewStaffRepo(s),
		pets:         mem.NewPetRepo(s),
		services:     mem.NewServiceRepo(s),
		appointments: mem.NewAppointmentRepo(s),
		records:      mem.NewMedicalRecordRepo(s),
		invoices:     mem.NewInvoiceRepo(s),
	}
}

func gormRepos(db *gorm.DB) repos {
	return repos{
		refs:         pg.NewStore(db),
		owners:       pg.NewOwnerRepo(db),
		staff:        pg.NewStaffRepo(db),
		pets:         pg.NewPetRepo(db),
		services:     pg.NewServiceRepo(db),
		appointments: pg.NewAppointmentRepo(db),
		records:      pg.NewMedicalRecordRepo(db),
		invoices:     pg.NewInvoiceRepo(db),
	}
}

func NewRouter(opts Options) http.Handler {
	log := logger.OrNop(opts.Logger)

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(middleware.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.Recover)
	if opts.Metrics != nil {
		r.Use(middleware.Metrics(opts.Metrics))
	}

	var rp repos
	if opts.DB != nil {
		rp = gormRepos(opts.DB)
	} else {
		log.Warn("DB not configured, using in-memory store", nil)
		rp = memoryRepos()
	}

	var revoker auth.Revoker
	if opts.Redis != nil {
		revoker = denylist.NewRedis(opts.Redis, opts.RedisKeyPrefix)
	} else {
		revoker = denylist.NewMemory()
	}

	secret := opts.JWTSecret
	if len(secret) == 0 {
		log.Warn("JWT_SECRET not set, using an ephemeral secret", nil)
		secret = ephemeralSecret()
	}
	tokens := jwt.NewManager(jwt.Config{
		Secret: secret,
		Issuer: opts.JWTIssuer,
		TTL:    opts.TokenTTL,
	}, revoker)

	r.Use(middleware.AuthContext(tokens))

	r.Get("/health", health(opts.DB))
	if opts.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", opts.Metrics.Handler())
	}
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	// Services por módulo
	integrity := clinic.NewIntegrity(rp.refs)
	ownersSvc := owners.NewService(rp.owners, integrity, log, opts.BcryptCost)
	staffSvc := staff.NewService(rp.staff, integrity, log, opts.BcryptCost)
	petsSvc := pets.NewService(rp.pets, integrity, log)
	catalogSvc := catalog.NewService(rp.services, integrity, log)
	apptSvc := appointments.NewService(rp.appointments, integrity, log)
	recordsSvc := medicalrecords.NewService(rp.records, integrity, log)
	invoicesSvc := invoices.NewService(rp.invoices, integrity, log)

	authSvc := authsvc.NewService(staffSvc, ownersSvc, tokens, revoker, log)
	dashSvc := dashboard.NewService(dashboard.Sources{
		Owners:       ownersSvc,
		Pets:         petsSvc,
		Appointments: apptSvc,
		Records:      recordsSvc,
		Invoices:     invoicesSvc,
	})

	// Rutas por módulo
	r.Group(func(cr chi.Router) {
		if opts.AuthRequired {
			cr.Use(middleware.RequirePrincipal())
		}
		owners.RegisterRoutes(cr, ownersSvc)
		staff.RegisterRoutes(cr, staffSvc)
		pets.RegisterRoutes(cr, petsSvc)
		catalog.RegisterRoutes(cr, catalogSvc)
		appointments.RegisterRoutes(cr, apptSvc)
		medicalrecords.RegisterRoutes(cr, recordsSvc)
		invoices.RegisterRoutes(cr, invoicesSvc)
	})
	authsvc.RegisterRoutes(r, authSvc)
	dashboard.RegisterRoutes(r, dashSvc)

	return r
}

func health(db *gorm.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if db != nil {
			sqlDB, err := db.DB()
			if err == nil {
				ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
				err = sqlDB.PingContext(ctx)
				cancel()
			}
			if err != nil {
				logger.FromContext(r.Context(), nil).Error("health: db ping failed", map[string]any{"error": err})
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = w.Write([]byte("db unavailable"))
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}
}

func ephemeralSecret() []byte {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		panic("router: cannot generate jwt secret: " + err.Error())
	}
	return b
}
