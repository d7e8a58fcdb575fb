package api

import (
	"errors"
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/victortedesco/inventory-management/config"
	"github.com/victortedesco/inventory-management/infra/database"
	"github.com/victortedesco/inventory-management/infra/queue"
	"github.com/victortedesco/inventory-management/internal/api/rest/handlers"
	"github.com/victortedesco/inventory-management/internal/api/rest/middleware"
	"github.com/victortedesco/inventory-management/internal/audit"
	"github.com/victortedesco/inventory-management/internal/domain"
	"github.com/victortedesco/inventory-management/internal/helper"
	"github.com/victortedesco/inventory-management/internal/interfaces"
	"github.com/victortedesco/inventory-management/internal/repository"
	"github.com/victortedesco/inventory-management/internal/services"
	"github.com/victortedesco/inventory-management/pkg/cloudinary"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Infra holds the outside services the app talks to. Nil fields disable
// the feature that needs them.
type Infra struct {
	DB        *gorm.DB
	Publisher interfaces.ProducerHandler
	Uploader  interfaces.Uploader
}

func StartServer(cfg config.Config) {
	// ---------- DB ----------
	db, err := OpenDatabase(cfg)
	if err != nil {
		log.Fatalf("database connection error: %v", err)
	}
	log.Println("database connected")

	if err := Migrate(db); err != nil {
		log.Fatalf("migration error: %v", err)
	}
	log.Println("migration successful")

	// ---------- Infra ----------
	infra := Infra{DB: db}

	log.Printf("KafkaBroker=%q KafkaTopic=%q", cfg.KafkaBroker, cfg.KafkaTopic)
	if producer := queue.NewProducer(cfg.KafkaBroker, cfg.KafkaTopic, cfg.KafkaUsername, cfg.KafkaPassword); producer != nil {
		defer producer.Close()
		infra.Publisher = producer
	}

	cld, err := cloudinary.New(cfg.CloudinaryUrl)
	if err != nil {
		log.Fatalf("cloudinary init error: %v", err)
	}
	if cld != nil {
		infra.Uploader = cloudinary.NewCloudinaryUploader(cld)
	}

	app, err := NewApp(cfg, infra)
	if err != nil {
		log.Fatalf("setup error: %v", err)
	}

	// ---------- Listen ----------
	addr := cfg.ServerPort
	log.Println("listening on", addr)
	log.Fatal(app.Listen(addr))
}

// OpenDatabase connects with the driver named by DB_DRIVER.
func OpenDatabase(cfg config.Config) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
		TranslateError: true,
	}

	switch cfg.DBDriver {
	case "postgres", "":
		return gorm.Open(postgres.New(postgres.Config{
			DSN:                  cfg.DatabaseDSN,
			PreferSimpleProtocol: true,
		}), gormCfg)
	case "sqlite":
		return gorm.Open(database.SQLite(cfg.DatabaseDSN), gormCfg)
	}
	return nil, fmt.Errorf("unsupported database driver %q", cfg.DBDriver)
}

// Migrate creates the inventory tables. On postgres it runs under an
// advisory lock so replicas do not migrate concurrently.
func Migrate(db *gorm.DB) error {
	const migrateLockID int64 = 20250314

	if db.Dialector.Name() == "postgres" {
		if err := db.Exec("SELECT pg_advisory_lock(?)", migrateLockID).Error; err != nil {
			return fmt.Errorf("migration lock: %w", err)
		}
		defer func() {
			_ = db.Exec("SELECT pg_advisory_unlock(?)", migrateLockID).Error
		}()
	}

	return db.AutoMigrate(
		&domain.Category{},
		&domain.Product{},
		&domain.Box{},
		&domain.ProductInBox{},
		&domain.AuditLog{},
	)
}

// LoadPolicy prefers AUDIT_POLICY_FILE over the built-in AUDIT_POLICY version.
func LoadPolicy(cfg config.Config) (*audit.Policy, error) {
	if cfg.AuditPolicyFile != "" {
		return audit.LoadPolicyFile(cfg.AuditPolicyFile)
	}
	return audit.PolicyVersion(cfg.AuditPolicy)
}

// NewApp wires repositories, services and routes on a migrated database.
func NewApp(cfg config.Config, infra Infra) (*fiber.App, error) {
	if infra.DB == nil {
		return nil, errors.New("database is required")
	}

	policy, err := LoadPolicy(cfg)
	if err != nil {
		return nil, fmt.Errorf("audit policy: %w", err)
	}
	mode, err := audit.ParseFailureMode(cfg.AuditFailureMode)
	if err != nil {
		return nil, err
	}
	log.Printf("audit policy=%s failureMode=%s", policy.Version, cfg.AuditFailureMode)

	audit.InitMetrics()

	app := fiber.New(fiber.Config{UnescapePath: true})

	// ---------- Middleware ----------
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.BaseURL,
		AllowHeaders:     "Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		AllowCredentials: cfg.BaseURL != "*",
	}))

	// ---------- Repositories ----------
	builder := audit.NewBuilder(policy, audit.WithFailureMode(mode))
	newUnitOfWork := repository.NewUnitOfWorkFactory(infra.DB, builder, infra.Publisher)
	auditRepo := repository.NewAuditLogRepository(infra.DB)

	// ---------- Service ----------
	categorySvc := services.NewCategoryService(newUnitOfWork)
	productSvc := services.NewProductService(newUnitOfWork, infra.Uploader)
	boxSvc := services.NewBoxService(newUnitOfWork)
	auditSvc := services.NewAuditLogService(auditRepo)

	// ---------- Handler ----------
	authHelper := helper.SetupAuth(cfg.AccessSecret)
	v1 := app.Group("/api/v1", middleware.AuthMiddleware(authHelper))

	handlers.NewCategoryHandler(categorySvc, productSvc).SetupRoutes(v1)
	handlers.NewProductHandler(productSvc).SetupRoutes(v1)
	handlers.NewBoxHandler(boxSvc).SetupRoutes(v1)
	handlers.NewAuditLogHandler(auditSvc).SetupRoutes(v1)

	// ---------- Health ----------
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	app.Get("/", func(c *fiber.Ctx) error {
		entries, err := auditSvc.Count(c.UserContext())
		if err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded"})
		}
		return c.JSON(fiber.Map{"status": "ok", "auditEntries": entries})
	})

	return app, nil
}
