package app

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/Mahsabeigi33/AdminKingsCare/config"
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
	"github.com/Mahsabeigi33/AdminKingsCare/pkg/email"
	"github.com/Mahsabeigi33/AdminKingsCare/pkg/session"
	"github.com/Mahsabeigi33/AdminKingsCare/pkg/storage"
)

// ServiceModule provides all application service dependencies.
var ServiceModule = fx.Module("services",
	fx.Provide(
		ProvideAuthService,
		ProvideUserService,
		ProvidePatientService,
		ProvideAppointmentService,
		ProvideCatalogService,
		ProvideDoctorService,
		ProvideBlogService,
		ProvideClinicPageService,
		ProvideSettingsService,
		ProvideFileService,
	),
)

func ProvideAuthService(db *gorm.DB, sessions *session.Manager, cfg *config.Config) auth.Service {
	return auth.New(db, sessions, cfg)
}

func ProvideUserService(db *gorm.DB, mail *email.Client, cfg *config.Config, sessions *session.Manager) user.Service {
	return user.New(db, mail, cfg, sessions)
}

func ProvidePatientService(db *gorm.DB) patient.Service {
	return patient.New(db)
}

func ProvideAppointmentService(db *gorm.DB) appointment.Service {
	return appointment.New(db)
}

func ProvideCatalogService(db *gorm.DB) catalog.Service {
	return catalog.New(db)
}

func ProvideDoctorService(db *gorm.DB) doctor.Service {
	return doctor.New(db)
}

func ProvideBlogService(db *gorm.DB) blog.Service {
	return blog.New(db)
}

func ProvideClinicPageService(db *gorm.DB) clinicpage.Service {
	return clinicpage.New(db)
}

func ProvideSettingsService(db *gorm.DB) settings.Service {
	return settings.New(db)
}

func ProvideFileService(backend storage.Backend, cfg *config.Config) svcfile.Service {
	return svcfile.New(backend, cfg)
}
