package database

import (
	"log/slog"
	"time"

	"risk-assessor/internal/config"
	"risk-assessor/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

const (
	maxConnectAttempts = 10
	connectRetryDelay  = 2 * time.Second
)

// Open connects to the database, retrying while it comes up.
func Open(driver, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case config.DriverPostgres:
		dialector = postgres.Open(dsn)
	case config.DriverSQLite:
		dialector = sqlite.Open(dsn)
	default:
		return nil, goerr.New("unsupported database driver", goerr.V("driver", driver))
	}

	var (
		db  *gorm.DB
		err error
	)
	for i := 1; i <= maxConnectAttempts; i++ {
		slog.Info("connecting to database", "driver", driver, "attempt", i, "max", maxConnectAttempts)

		db, err = gorm.Open(dialector, &gorm.Config{})
		if err == nil {
			slog.Info("connected to database", "driver", driver)
			return db, nil
		}

		slog.Warn("failed to connect to database", "error", err)
		if driver == config.DriverSQLite {
			break
		}
		time.Sleep(connectRetryDelay)
	}

	return nil, goerr.Wrap(err, "failed to connect to database", goerr.V("driver", driver))
}

// Init opens the database, applies migrations and seeds accounts.
func Init(cfg *config.Config) error {
	db, err := Open(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		return err
	}
	DB = db

	if _, err := Migrate(DB); err != nil {
		return err
	}

	if err := SeedAdmin(cfg.AdminUsername, cfg.AdminPassword); err != nil {
		return err
	}
	if cfg.SeedDemoUsers {
		SeedDemoUsers()
	}
	return nil
}

// SeedAdmin creates the admin account unless an admin already exists.
func SeedAdmin(username, password string) error {
	var count int64
	if err := DB.Model(&models.User{}).
		Where("role = ?", models.RoleAdmin).
		Count(&count).Error; err != nil {
		return goerr.Wrap(err, "failed to check admin user")
	}
	if count > 0 {
		return nil
	}

	if _, err := CreateUser(username, password, models.RoleAdmin); err != nil {
		return err
	}

	slog.Info("created default admin user", "username", username)
	return nil
}

// SeedDemoUsers adds one analyst and one viewer account for local demos.
func SeedDemoUsers() {
	users := []struct {
		Username string
		Password string
		Role     models.UserRole
	}{
		{Username: "analyst@risk.local", Password: "Analyst123!", Role: models.RoleAnalyst},
		{Username: "viewer@risk.local", Password: "Viewer123!", Role: models.RoleViewer},
	}

	for _, u := range users {
		var count int64
		if err := DB.Model(&models.User{}).
			Where("username = ?", u.Username).
			Count(&count).Error; err != nil {
			slog.Warn("failed to check demo user", "username", u.Username, "error", err)
			continue
		}
		if count > 0 {
			continue
		}

		if _, err := CreateUser(u.Username, u.Password, u.Role); err != nil {
			slog.Warn("failed to create demo user", "username", u.Username, "error", err)
			continue
		}
		slog.Info("created demo user", "username", u.Username, "role", u.Role)
	}
}

func CreateUser(username, password string, role models.UserRole) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to hash password", goerr.V("username", username))
	}

	user := &models.User{
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := DB.Create(user).Error; err != nil {
		return nil, goerr.Wrap(err, "failed to create user", goerr.V("username", username))
	}
	return user, nil
}

// Authenticate returns the user when the password matches.
func Authenticate(username, password string) (*models.User, bool) {
	var user models.User
	if err := DB.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, false
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, false
	}
	return &user, true
}
