package main

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/smart450/site/config"
	"github.com/smart450/site/controllers"
	"github.com/smart450/site/geoip"
	"github.com/smart450/site/mailer"
	sitemiddleware "github.com/smart450/site/middleware"
	"github.com/smart450/site/repositories"
	"github.com/smart450/site/server"
	"github.com/smart450/site/services"
)

func main() {
	cfg := config.Load()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		log.Printf("⚠️  Unknown timezone %q, using local time: %v", cfg.Timezone, err)
		loc = time.Local
	}

	// Optional visitor location for the owner notification
	var locator geoip.Locator = geoip.Noop{}
	if cfg.GeoIPCityDB != "" {
		geo, err := geoip.NewService(cfg.GeoIPCityDB, "it")
		if err != nil {
			log.Printf("⚠️  GeoIP disabled: %v", err)
		} else {
			defer geo.Close()
			locator = geo
		}
	}

	// Initialize mail transport
	smtpCfg := mailer.NewConfig(cfg.SMTP.Service, cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Security, cfg.SMTP.User, cfg.SMTP.Password)
	smtpMailer := mailer.NewSMTPMailer(smtpCfg)
	defer smtpMailer.Close()
	go verifyMailer(ctx, smtpMailer, smtpCfg)

	// Initialize repositories
	repos := repositories.NewRepositories(cfg.DocRoot)
	if contacts, err := repos.Contact.GetAll(ctx); err != nil {
		log.Printf("⚠️  Failed to read contact history: %v", err)
	} else {
		log.Printf("📇 %d contacts on file", len(contacts))
	}

	// Initialize services
	srvs := services.NewServices(repos, smtpMailer, locator, services.ContactOptions{
		From:        cfg.SMTP.From,
		Destination: cfg.DestinationEmail,
		Location:    loc,
	})

	// Initialize controllers
	ctrl := controllers.NewControllers(srvs, cfg.DocRoot)

	r := setupRouter(ctrl, srvs, cfg)

	mode := server.Probe(cfg.TLSKeyFile, cfg.TLSCertFile)
	srv := server.New(mode, r, server.Options{
		HTTPPort:  cfg.HTTPPort,
		HTTPSPort: cfg.HTTPSPort,
	})

	printBanner(cfg, mode)

	if err := srv.Run(ctx); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

// verifyMailer checks the SMTP login once at startup without blocking it
func verifyMailer(ctx context.Context, m *mailer.SMTPMailer, cfg mailer.Config) {
	if err := m.Verify(ctx); err != nil {
		log.Printf("❌ SMTP %s not ready: %v", cfg.Addr(), err)
		return
	}
	log.Printf("✅ SMTP %s ready", cfg.Addr())
}

// setupRouter configures all routes
func setupRouter(ctrl *controllers.Controllers, srvs *services.Services, cfg config.Config) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(sitemiddleware.AccessRecorder(srvs.Access))
	r.Use(middleware.Logger)
	r.Use(sitemiddleware.Recoverer)
	r.Use(sitemiddleware.HTTPSRedirect(cfg.IsProduction()))
	r.Use(middleware.Compress(5))

	r.With(sitemiddleware.SecurityHeaders).Get("/", ctrl.Static.Index)
	r.Get("/health", ctrl.Health.Check)
	r.With(sitemiddleware.BodyLimit(cfg.MaxBodyBytes)).Post("/send-email", ctrl.Contact.Send)

	// Everything else is a file from the document root
	r.NotFound(ctrl.Static.Serve)
	r.MethodNotAllowed(ctrl.Static.Serve)

	return r
}

func printBanner(cfg config.Config, mode server.Mode) {
	fmt.Printf("🚗 Smart Fortwo 450 site starting (%s, %s mode)\n", cfg.Environment, mode)
	fmt.Printf("📂 Document root: %s\n", cfg.DocRoot)
	if mode.Secure {
		fmt.Printf("🔒 HTTPS on port %s, HTTP on port %s redirects to HTTPS\n", cfg.HTTPSPort, cfg.HTTPPort)
	} else {
		fmt.Printf("⚠️  TLS certificate not available, serving plain HTTP on port %s\n", cfg.HTTPPort)
		fmt.Printf("   %v\n", mode.Reason)
	}
	fmt.Printf("📧 Contact emails go to %s\n", cfg.DestinationEmail)
}
