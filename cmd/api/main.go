package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/jwalitptl/hms-api/internal/config"
	"github.com/jwalitptl/hms-api/internal/email"
	appointmentHandler "github.com/jwalitptl/hms-api/internal/handler/appointment"
	authHandler "github.com/jwalitptl/hms-api/internal/handler/auth"
	billingHandler "github.com/jwalitptl/hms-api/internal/handler/billing"
	dashboardHandler "github.com/jwalitptl/hms-api/internal/handler/dashboard"
	departmentHandler "github.com/jwalitptl/hms-api/internal/handler/department"
	doctorHandler "github.com/jwalitptl/hms-api/internal/handler/doctor"
	healthHandler "github.com/jwalitptl/hms-api/internal/handler/health"
	labstaffHandler "github.com/jwalitptl/hms-api/internal/handler/labstaff"
	labtestHandler "github.com/jwalitptl/hms-api/internal/handler/labtest"
	patientHandler "github.com/jwalitptl/hms-api/internal/handler/patient"
	prescriptionHandler "github.com/jwalitptl/hms-api/internal/handler/prescription"
	userHandler "github.com/jwalitptl/hms-api/internal/handler/user"
	"github.com/jwalitptl/hms-api/internal/middleware"
	"github.com/jwalitptl/hms-api/internal/repository/postgres"
	redisrepo "github.com/jwalitptl/hms-api/internal/repository/redis"
	"github.com/jwalitptl/hms-api/internal/router"
	appointmentService "github.com/jwalitptl/hms-api/internal/service/appointment"
	authService "github.com/jwalitptl/hms-api/internal/service/auth"
	billingService "github.com/jwalitptl/hms-api/internal/service/billing"
	dashboardService "github.com/jwalitptl/hms-api/internal/service/dashboard"
	departmentService "github.com/jwalitptl/hms-api/internal/service/department"
	doctorService "github.com/jwalitptl/hms-api/internal/service/doctor"
	labstaffService "github.com/jwalitptl/hms-api/internal/service/labstaff"
	labtestService "github.com/jwalitptl/hms-api/internal/service/labtest"
	patientService "github.com/jwalitptl/hms-api/internal/service/patient"
	prescriptionService "github.com/jwalitptl/hms-api/internal/service/prescription"
	registrationService "github.com/jwalitptl/hms-api/internal/service/registration"
	userService "github.com/jwalitptl/hms-api/internal/service/user"
	"github.com/jwalitptl/hms-api/pkg/auth"
	"github.com/jwalitptl/hms-api/pkg/logger"
	"github.com/jwalitptl/hms-api/pkg/metrics"
	"github.com/jwalitptl/hms-api/pkg/security"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	setupLogging(cfg.Log)

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	redisClient, err := redisrepo.NewClient(redisrepo.Config{
		URL:          cfg.Redis.URL,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()

	// Repositories
	base := postgres.NewBaseRepository(db)
	userRepo := postgres.NewUserRepository(base)
	departmentRepo := postgres.NewDepartmentRepository(base)
	doctorRepo := postgres.NewDoctorRepository(base)
	patientRepo := postgres.NewPatientRepository(base)
	labStaffRepo := postgres.NewLabStaffRepository(base)
	appointmentRepo := postgres.NewAppointmentRepository(base)
	prescriptionRepo := postgres.NewPrescriptionRepository(base)
	labTestRepo := postgres.NewLabTestRepository(base)
	billingRepo := postgres.NewBillingRepository(base)
	tokenRepo := redisrepo.NewTokenRepository(redisClient)

	// Shared infrastructure
	jwtSvc := auth.NewJWTService(auth.Config{
		Secret:        cfg.JWT.Secret,
		RefreshSecret: cfg.JWT.RefreshSecret,
		Expiry:        cfg.JWT.Expiry(),
		RefreshExpiry: cfg.JWT.RefreshExpiry(),
	})
	hasher := security.NewBcryptHasher(cfg.Password.BcryptCost)
	passwordPolicy := security.NewPasswordPolicy(cfg.Password.MinLength)

	var emailSvc email.Service = email.NoopService{}
	if cfg.SMTP.Configured() {
		emailSvc = email.NewService(email.Config{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			Username: cfg.SMTP.Username,
			Password: cfg.SMTP.Password,
			From:     cfg.SMTP.From,
		})
	}

	// Services
	registrationSvc := registrationService.NewService(
		&base, userRepo, doctorRepo, patientRepo, labStaffRepo,
		hasher, passwordPolicy, emailSvc,
	)
	authSvc := authService.NewService(
		userRepo, patientRepo, doctorRepo, labStaffRepo, tokenRepo,
		jwtSvc, hasher, cfg.JWT.RefreshExpiry(),
	)
	userSvc := userService.NewService(userRepo)
	departmentSvc := departmentService.NewService(departmentRepo)
	doctorSvc := doctorService.NewService(doctorRepo)
	patientSvc := patientService.NewService(patientRepo)
	labStaffSvc := labstaffService.NewService(labStaffRepo)
	appointmentSvc := appointmentService.NewService(appointmentRepo)
	prescriptionSvc := prescriptionService.NewService(prescriptionRepo)
	labTestSvc := labtestService.NewService(labTestRepo)
	billingSvc := billingService.NewService(billingRepo)
	dashboardSvc := dashboardService.NewService(
		patientRepo, doctorRepo, departmentRepo, appointmentRepo,
		prescriptionRepo, labTestRepo, billingRepo,
	)

	m := metrics.NewMetrics("hms")
	authMiddleware := middleware.NewAuthMiddleware(jwtSvc, authSvc)

	r := router.New(
		router.Config{
			Mode:       cfg.Server.Mode,
			RateLimit:  rate.Limit(cfg.RateLimit.RPS),
			RateBurst:  cfg.RateLimit.Burst,
			CORSConfig: middleware.DefaultCORSConfig(),
		},
		m,
		authMiddleware,
		healthHandler.NewHandler(db, redisClient),
		[]router.Handler{
			authHandler.NewHandler(authSvc, registrationSvc, m),
		},
		[]router.Handler{
			userHandler.NewHandler(userSvc),
			departmentHandler.NewHandler(departmentSvc),
			doctorHandler.NewHandler(doctorSvc),
			patientHandler.NewHandler(patientSvc),
			labstaffHandler.NewHandler(labStaffSvc),
			appointmentHandler.NewHandler(appointmentSvc),
			prescriptionHandler.NewHandler(prescriptionSvc),
			labtestHandler.NewHandler(labTestSvc),
			billingHandler.NewHandler(billingSvc),
			dashboardHandler.NewHandler(dashboardSvc),
		},
	)
	r.Setup()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  time.Duration(cfg.Server.TimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.TimeoutSeconds) * time.Second,
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}

func setupLogging(cfg config.LogConfig) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	appLogger := logger.NewLogger(&logger.Config{
		Level:      level,
		TimeFormat: time.RFC3339,
		Pretty:     cfg.Pretty,
	})
	log.Logger = *appLogger.Zerolog()
	zerolog.SetGlobalLevel(level)
}
