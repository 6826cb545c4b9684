package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	domain "github.com/MilorES/ComandesJSDR-Back/domain/user"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// AuthModule provides authentication and user management services. It owns
// the users table.
type AuthModule struct {
	db        *gorm.DB
	service   *AuthService
	dbPath    string
	jwtConfig JWTConfig
}

// Compile-time interface checks.
var _ mono.Module = (*AuthModule)(nil)
var _ mono.ServiceProviderModule = (*AuthModule)(nil)
var _ mono.HealthCheckableModule = (*AuthModule)(nil)

// NewModule creates a new AuthModule with the given JWT configuration.
func NewModule(jwtConfig JWTConfig) *AuthModule {
	dbPath := os.Getenv("COMANDES_DB_PATH")
	if dbPath == "" {
		dbPath = "comandes.db"
	}
	return &AuthModule{
		dbPath:    dbPath,
		jwtConfig: jwtConfig,
	}
}

// Name returns the module name.
func (m *AuthModule) Name() string {
	return "auth"
}

// Start opens the database, migrates and seeds the users table, and wires
// the service.
func (m *AuthModule) Start(_ context.Context) error {
	db, err := gorm.Open(sqlite.Open(m.dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	m.db = db

	if err := db.AutoMigrate(&domain.User{}); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	repo := NewUserRepository(db)
	if err := seedUsers(repo); err != nil {
		return fmt.Errorf("failed to seed users: %w", err)
	}

	m.service = NewAuthService(repo, NewPasswordHasher(), NewJWTManager(m.jwtConfig))

	log.Printf("[auth] Module started (database: %s)", m.dbPath)
	return nil
}

// Stop closes the database connection.
func (m *AuthModule) Stop(_ context.Context) error {
	if m.db != nil {
		sqlDB, err := m.db.DB()
		if err == nil {
			sqlDB.Close()
		}
	}
	log.Println("[auth] Module stopped")
	return nil
}

// Health returns the health status of the module.
func (m *AuthModule) Health(ctx context.Context) mono.HealthStatus {
	if m.db == nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: "database not initialized",
		}
	}

	sqlDB, err := m.db.DB()
	if err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("failed to get database connection: %v", err),
		}
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("database ping failed: %v", err),
		}
	}

	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"database": m.dbPath,
		},
	}
}

// RegisterServices registers request-reply services in the service container.
func (m *AuthModule) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container, "login", json.Unmarshal, json.Marshal, m.handleLogin,
	); err != nil {
		return fmt.Errorf("failed to register login service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "refresh-token", json.Unmarshal, json.Marshal, m.handleRefresh,
	); err != nil {
		return fmt.Errorf("failed to register refresh-token service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "validate-token", json.Unmarshal, json.Marshal, m.handleValidateToken,
	); err != nil {
		return fmt.Errorf("failed to register validate-token service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "current-user", json.Unmarshal, json.Marshal, m.handleCurrentUser,
	); err != nil {
		return fmt.Errorf("failed to register current-user service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "change-password", json.Unmarshal, json.Marshal, m.handleChangePassword,
	); err != nil {
		return fmt.Errorf("failed to register change-password service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "list-users", json.Unmarshal, json.Marshal, m.handleListUsers,
	); err != nil {
		return fmt.Errorf("failed to register list-users service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "get-user", json.Unmarshal, json.Marshal, m.handleGetUser,
	); err != nil {
		return fmt.Errorf("failed to register get-user service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "create-user", json.Unmarshal, json.Marshal, m.handleCreateUser,
	); err != nil {
		return fmt.Errorf("failed to register create-user service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "update-user", json.Unmarshal, json.Marshal, m.handleUpdateUser,
	); err != nil {
		return fmt.Errorf("failed to register update-user service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "delete-user", json.Unmarshal, json.Marshal, m.handleDeleteUser,
	); err != nil {
		return fmt.Errorf("failed to register delete-user service: %w", err)
	}

	log.Printf("[auth] Registered services: login, refresh-token, validate-token, current-user, change-password, list-users, get-user, create-user, update-user, delete-user")
	return nil
}
