package system

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/Mahsabeigi33/AdminKingsCare/config"
	"github.com/Mahsabeigi33/AdminKingsCare/internal/model"
	"github.com/Mahsabeigi33/AdminKingsCare/pkg/database"
	"github.com/Mahsabeigi33/AdminKingsCare/pkg/util/password"
)

func NewInitCommand() *cobra.Command {
	var (
		adminEmail    string
		adminPassword string
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create the database, run migrations and seed the first admin",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgPath, err := cmd.Root().PersistentFlags().GetString("config")
			if err != nil {
				return fmt.Errorf("failed to get config flag: %w", err)
			}
			cfg, err := config.ReadConfig(filepath.Dir(cfgPath))
			if err != nil {
				return fmt.Errorf("failed to read config: %w", err)
			}

			fmt.Println("Initializing database...")
			if err := database.InitializeDatabase(cfg); err != nil {
				return fmt.Errorf("failed to initialize database: %w", err)
			}

			db, err := database.Open(database.FromCentralConfig(cfg.Database), slog.Default())
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer database.Close(db)

			if err := model.AutoMigrate(db); err != nil {
				return fmt.Errorf("failed to run migrations: %w", err)
			}

			if err := seedAdmin(db, adminEmail, adminPassword); err != nil {
				return err
			}
			if err := seedSettings(db); err != nil {
				return err
			}

			fmt.Println("Database initialized successfully.")
			return nil
		},
	}

	cmd.Flags().StringVar(&adminEmail, "admin-email", "admin@kingscare.local", "email of the seeded admin account")
	cmd.Flags().StringVar(&adminPassword, "admin-password", "", "password of the seeded admin account, generated when empty")

	return cmd
}

// seedAdmin creates the first ADMIN account. It does nothing when one
// already exists, so init is safe to run more than once.
func seedAdmin(db *gorm.DB, email, pass string) error {
	var count int64
	if err := db.Model(&model.User{}).Where("role = ?", model.RoleAdmin).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count admin accounts: %w", err)
	}
	if count > 0 {
		fmt.Println("An admin account already exists, skipping seed.")
		return nil
	}

	generated := false
	if pass == "" {
		pass = password.Generate(16)
		generated = true
	}

	hash, err := password.Hash(pass)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := model.User{
		Email:        strings.ToLower(strings.TrimSpace(email)),
		Role:         model.RoleAdmin,
		PasswordHash: hash,
	}
	if err := db.Create(&admin).Error; err != nil {
		return fmt.Errorf("failed to create admin account: %w", err)
	}

	fmt.Printf("Seeded admin account %s\n", admin.Email)
	if generated {
		// Printed once and never stored in plain text anywhere else.
		fmt.Printf("Generated admin password: %s\n", pass)
	}
	return nil
}

// seedSettings makes sure the singleton site settings row exists so the
// public site has something to render before anyone saves it.
func seedSettings(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.SiteSettings{}).Where("key = ?", model.SiteSettingsKey).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check site settings: %w", err)
	}
	if count > 0 {
		return nil
	}
	settings := model.SiteSettings{Key: model.SiteSettingsKey, SocialLinks: datatypes.JSON("{}")}
	if err := db.Create(&settings).Error; err != nil {
		return fmt.Errorf("failed to seed site settings: %w", err)
	}
	return nil
}
