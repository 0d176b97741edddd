package server

import (
	"errors"
	"log"
	"net/http"
	"os"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/labstack/echo/v4"

	mwecho "github.com/labstack/echo/v4/middleware"

	"stoxway.com/licserver/internal/backup"
	"stoxway.com/licserver/internal/config"
	"stoxway.com/licserver/internal/demodata"
	"stoxway.com/licserver/internal/license"
	"stoxway.com/licserver/internal/middleware"
	"stoxway.com/licserver/internal/sqlite"
	"stoxway.com/licserver/internal/validation"

	adminhttp "stoxway.com/licserver/internal/http/admin"
	clienthttp "stoxway.com/licserver/internal/http/client"
	webhttp "stoxway.com/licserver/internal/http/web"
)

type Server struct {
	Echo *echo.Echo
	HTTP *http.Server
	DB   *sqlx.DB
}

func Build(cfg *config.Config) (*Server, error) {
	//
	// Validate required configuration
	//
	if cfg.AdminKey == "" {
		return nil, errors.New("admin key is required (set ADMIN_KEY or admin_key in the config file)")
	}
	if cfg.DBPath == "" {
		return nil, errors.New("database path is required (set DB_PATH or db_path in the config file)")
	}

	//
	// Database
	//
	isNewDB := false
	if _, err := os.Stat(cfg.DBPath); os.IsNotExist(err) {
		isNewDB = true
		log.Printf("Creating database '%s' (from %s setting)", cfg.DBPath, cfg.DBPathSource)
	} else {
		log.Printf("Opening database '%s' (from %s setting)", cfg.DBPath, cfg.DBPathSource)
	}
	// busy_timeout goes in the DSN so every pooled connection gets it; it
	// bounds lock waits so a contended write surfaces an error instead of
	// hanging the request
	db, err := sqlx.Connect("sqlite3", cfg.DBPath+"?_busy_timeout=5000")
	if err != nil {
		return nil, err
	}

	// WAL mode is only required once after creating the database, but
	// doesn't hurt to set it each time
	if _, err := db.Exec(`PRAGMA journal_mode=WAL;`); err != nil {
		return nil, err
	}

	if err := sqlite.RunMigrations(db.DB); err != nil {
		return nil, err
	}

	// Load demo data if requested and database is new
	if cfg.DemoMode && isNewDB {
		if err := demodata.Load(db.DB); err != nil {
			return nil, errors.New("failed to load demo data: " + err.Error())
		}
		log.Print("Demo data loaded")
	}

	//
	// Domain services
	//
	licenseSvc := license.NewService(db)
	validationSvc := validation.NewService(licenseSvc)
	backupSvc := backup.NewService(db, cfg.DBPath)
	auth := middleware.NewAuthorizer(cfg.AdminKey)

	//
	// Handlers
	//
	clientHandler := clienthttp.NewHandler(validationSvc)
	adminHandler := adminhttp.NewHandler(auth, licenseSvc, backupSvc)
	webHandler := webhttp.NewHandler()

	//
	// Echo
	//
	e := echo.New()
	e.HideBanner = true

	// Health endpoints
	e.GET("/livez", func(c echo.Context) error {
		return c.String(http.StatusOK, "OK")
	})

	e.GET("/readyz", func(c echo.Context) error {
		if err := db.Ping(); err != nil {
			return c.String(http.StatusServiceUnavailable, "DB not ready")
		}
		return c.String(http.StatusOK, "Ready")
	})

	// Middleware
	e.Use(mwecho.Logger())
	e.Use(mwecho.Recover())
	e.Use(mwecho.CORS())
	e.Use(mwecho.RequestIDWithConfig(mwecho.RequestIDConfig{
		Generator: uuid.NewString,
	}))

	// Client API
	clienthttp.RegisterRoutes(e, clientHandler)

	// Admin console page (unauthenticated; prompts for the key client-side)
	e.GET("/admin", webHandler.Console)

	// Admin API
	adminGroup := e.Group("/admin")
	adminhttp.RegisterRoutes(adminGroup, adminHandler)

	//
	// HTTP server
	//
	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      e,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &Server{
		Echo: e,
		HTTP: srv,
		DB:   db,
	}, nil
}
