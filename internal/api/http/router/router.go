package router

import (
	"net/url"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/healthcheck"
	"github.com/gofiber/fiber/v3/middleware/static"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/Mahsabeigi33/AdminKingsCare/config"
	"github.com/Mahsabeigi33/AdminKingsCare/internal/api/http/handler"
	"github.com/Mahsabeigi33/AdminKingsCare/internal/api/http/middleware"
	"github.com/Mahsabeigi33/AdminKingsCare/internal/service/appointment"
	"github.com/Mahsabeigi33/AdminKingsCare/internal/service/auth"
	"github.com/Mahsabeigi33/AdminKingsCare/internal/service/blog"
	"github.com/Mahsabeigi33/AdminKingsCare/internal/service/catalog"
	"github.com/Mahsabeigi33/AdminKingsCare/internal/service/clinicpage"
	"github.com/Mahsabeigi33/AdminKingsCare/internal/service/doctor"
	svcfile "github.com/Mahsabeigi33/AdminKingsCare/internal/service/file"
	"github.com/Mahsabeigi33/AdminKingsCare/internal/service/patient"
	"github.com/Mahsabeigi33/AdminKingsCare/internal/service/settings"
	"github.com/Mahsabeigi33/AdminKingsCare/internal/service/user"
	"github.com/Mahsabeigi33/AdminKingsCare/internal/validate"
	"github.com/Mahsabeigi33/AdminKingsCare/pkg/authorize"
	"github.com/Mahsabeigi33/AdminKingsCare/pkg/database"
	"github.com/Mahsabeigi33/AdminKingsCare/pkg/session"
)

// Module provides the Router to the fx graph.
var Module = fx.Module("router", fx.Provide(NewRouter))

type Params struct {
	fx.In

	Cfg       *config.Config
	Redis     *redis.Client
	DB        *gorm.DB
	Auth      authorize.IAuthorization
	Sessions  *session.Manager
	Validator *validate.Validator

	AuthSvc        auth.Service
	UserSvc        user.Service
	PatientSvc     patient.Service
	AppointmentSvc appointment.Service
	CatalogSvc     catalog.Service
	DoctorSvc      doctor.Service
	BlogSvc        blog.Service
	ClinicPageSvc  clinicpage.Service
	SettingsSvc    settings.Service
	FileSvc        svcfile.Service
}

type Router struct {
	p Params
}

func NewRouter(p Params) *Router {
	return &Router{p: p}
}

func (r *Router) Register(app *fiber.App) {
	// 1. Health & Metrics
	r.registerSystemRoutes(app)

	// 2. Initialize Middlewares
	authRequired := middleware.AuthRequired(r.p.Sessions, r.p.Cfg)

	// Permission helper
	requirePerm := func(res authorize.Resource, act authorize.Action) fiber.Handler {
		return middleware.RequirePermission(r.p.Auth, res, act)
	}

	// 3. Initialize Handlers
	authH := handler.NewAuthHandler(r.p.AuthSvc, r.p.Validator, r.p.Cfg)
	userH := handler.NewUserHandler(r.p.UserSvc, r.p.Validator)
	patientH := handler.NewPatientHandler(r.p.PatientSvc, r.p.Validator)
	appointmentH := handler.NewAppointmentHandler(r.p.AppointmentSvc, r.p.Validator)
	catalogH := handler.NewCatalogHandler(r.p.CatalogSvc, r.p.Validator)
	doctorH := handler.NewDoctorHandler(r.p.DoctorSvc, r.p.Validator)
	blogH := handler.NewBlogHandler(r.p.BlogSvc, r.p.Validator)
	clinicPageH := handler.NewClinicPageHandler(r.p.ClinicPageSvc, r.p.Validator)
	settingsH := handler.NewSettingsHandler(r.p.SettingsSvc, r.p.Validator)
	fileH := handler.NewFileHandler(r.p.FileSvc)
	publicH := handler.NewPublicHandler(r.p.AppointmentSvc, r.p.AuthSvc, r.p.CatalogSvc, r.p.DoctorSvc, r.p.Validator)

	api := app.Group("/api/v1")

	// 4. Delegate to sub-files
	r.registerAuthRoutes(api, authH, authRequired)
	r.registerUserRoutes(api, userH, authRequired, requirePerm)
	r.registerPatientRoutes(api, patientH, authRequired, requirePerm)
	r.registerAppointmentRoutes(api, appointmentH, authRequired, requirePerm)
	r.registerCatalogRoutes(api, catalogH, authRequired, requirePerm)
	r.registerDoctorRoutes(api, doctorH, authRequired, requirePerm)
	r.registerBlogRoutes(api, blogH, authRequired, requirePerm)
	r.registerClinicPageRoutes(api, clinicPageH, authRequired, requirePerm)
	r.registerSettingsRoutes(api, settingsH, authRequired, requirePerm)
	r.registerFileRoutes(api, fileH, authRequired, requirePerm)

	// 5. Unauthenticated website endpoints
	r.registerPublicRoutes(app, publicH)

	// 6. Locally stored uploads
	r.registerStaticUploads(app)
}

func (r *Router) registerSystemRoutes(app *fiber.App) {
	app.Get(healthcheck.LivenessEndpoint, healthcheck.New())
	app.Get(healthcheck.ReadinessEndpoint, healthcheck.New(healthcheck.Config{
		Probe: func(c fiber.Ctx) bool {
			return database.Ping(c.Context(), r.p.DB) == nil
		},
	}))
	app.Get(healthcheck.StartupEndpoint, healthcheck.New())

	if r.p.Cfg.Observability.Enabled && r.p.Cfg.Observability.Metrics.Enabled {
		path := r.p.Cfg.Observability.Metrics.Path
		if path == "" {
			path = "/metrics"
		}
		app.Get(path, adaptor.HTTPHandler(promhttp.Handler()))
	}
}

func (r *Router) registerPublicRoutes(app *fiber.App, h *handler.PublicHandler) {
	public := app.Group("/public",
		cors.New(cors.Config{AllowOrigins: r.p.Cfg.Server.Public.AllowOrigins}),
		middleware.NewPublicLimiter(r.p.Redis, r.p.Cfg),
	)

	public.Get("/services", h.Services)
	public.Get("/doctors", h.Doctors)
	public.Post("/appointments", h.Book)
	public.Post("/patients/register", h.Register)
}

// registerStaticUploads serves files written by the local storage
// backend. S3-backed deployments serve uploads from the bucket instead.
func (r *Router) registerStaticUploads(app *fiber.App) {
	if r.p.Cfg.Uploads.Backend != "local" {
		return
	}

	mount := "/uploads"
	if u, err := url.Parse(r.p.Cfg.Uploads.BaseURL); err == nil && u.Path != "" {
		mount = u.Path
	}
	dir := r.p.Cfg.Uploads.LocalDir
	if dir == "" {
		dir = "uploads"
	}

	app.Use(mount, static.New(dir))
}
