package article

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	domain "github.com/MilorES/ComandesJSDR-Back/domain/article"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ArticleModule provides the article catalog services. It owns the
// articles table.
type ArticleModule struct {
	db     *gorm.DB
	repo   *Repository
	dbPath string
}

// Compile-time interface checks.
var _ mono.Module = (*ArticleModule)(nil)
var _ mono.ServiceProviderModule = (*ArticleModule)(nil)
var _ mono.HealthCheckableModule = (*ArticleModule)(nil)

// NewModule creates a new ArticleModule.
func NewModule() *ArticleModule {
	dbPath := os.Getenv("COMANDES_DB_PATH")
	if dbPath == "" {
		dbPath = "comandes.db"
	}
	return &ArticleModule{
		dbPath: dbPath,
	}
}

// Name returns the module name.
func (m *ArticleModule) Name() string {
	return "article"
}

// Start opens the database, migrates and seeds the articles table.
func (m *ArticleModule) Start(_ context.Context) error {
	db, err := gorm.Open(sqlite.Open(m.dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	m.db = db

	if err := db.AutoMigrate(&domain.Article{}); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	m.repo = NewRepository(db)
	if err := seedArticles(m.repo); err != nil {
		return fmt.Errorf("failed to seed articles: %w", err)
	}

	log.Printf("[article] Module started (database: %s)", m.dbPath)
	return nil
}

// Stop closes the database connection.
func (m *ArticleModule) Stop(_ context.Context) error {
	if m.db != nil {
		sqlDB, err := m.db.DB()
		if err == nil {
			sqlDB.Close()
		}
	}
	log.Println("[article] Module stopped")
	return nil
}

// Health returns the health status of the module.
func (m *ArticleModule) Health(ctx context.Context) mono.HealthStatus {
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
func (m *ArticleModule) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container, "create", json.Unmarshal, json.Marshal, m.createArticle,
	); err != nil {
		return fmt.Errorf("failed to register create service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "get", json.Unmarshal, json.Marshal, m.getArticle,
	); err != nil {
		return fmt.Errorf("failed to register get service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "list", json.Unmarshal, json.Marshal, m.listArticles,
	); err != nil {
		return fmt.Errorf("failed to register list service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "update", json.Unmarshal, json.Marshal, m.updateArticle,
	); err != nil {
		return fmt.Errorf("failed to register update service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "delete", json.Unmarshal, json.Marshal, m.deleteArticle,
	); err != nil {
		return fmt.Errorf("failed to register delete service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "categories", json.Unmarshal, json.Marshal, m.listCategories,
	); err != nil {
		return fmt.Errorf("failed to register categories service: %w", err)
	}

	log.Printf("[article] Registered services: create, get, list, update, delete, categories")
	return nil
}
