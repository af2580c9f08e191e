package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"golang.org/x/time/rate"

	"github.com/teame/hospital-api/config"
	appointmentHandler "github.com/teame/hospital-api/internal/handler/appointment"
	authHandler "github.com/teame/hospital-api/internal/handler/auth"
	doctorHandler "github.com/teame/hospital-api/internal/handler/doctor"
	patientHandler "github.com/teame/hospital-api/internal/handler/patient"
	userHandler "github.com/teame/hospital-api/internal/handler/user"
	"github.com/teame/hospital-api/internal/middleware"
	"github.com/teame/hospital-api/internal/repository/postgres"
	"github.com/teame/hospital-api/internal/router"
	appointmentService "github.com/teame/hospital-api/internal/service/appointment"
	authService "github.com/teame/hospital-api/internal/service/auth"
	doctorService "github.com/teame/hospital-api/internal/service/doctor"
	patientService "github.com/teame/hospital-api/internal/service/patient"
	userService "github.com/teame/hospital-api/internal/service/user"
	"github.com/teame/hospital-api/pkg/auth"
	"github.com/teame/hospital-api/pkg/logger"
	"github.com/teame/hospital-api/pkg/metrics"
	"github.com/teame/hospital-api/pkg/security"
	"github.com/teame/hospital-api/pkg/validator"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	lg := logger.NewLogger(&logger.Config{
		Level:      parseLevel(cfg.Logging.Level),
		TimeFormat: time.RFC3339,
		Output:     os.Stdout,
	})

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		lg.Fatal(err, "failed to connect to database")
	}
	defer db.Close()

	base := postgres.NewBaseRepository(db)
	accountRepo := postgres.NewAccountRepository(base)
	doctorRepo := postgres.NewDoctorRepository(base)
	patientRepo := postgres.NewPatientRepository(base)
	appointmentRepo := postgres.NewAppointmentRepository(base)

	tokenSvc := auth.NewJWTService(cfg.JWT.Secret, time.Duration(cfg.JWT.ExpiryHours)*time.Hour)
	hasher := security.NewBcryptHasher(0)

	authSvc := authService.NewService(accountRepo, tokenSvc, hasher)
	appointmentSvc := appointmentService.NewService(appointmentRepo, doctorRepo, patientRepo)
	doctorSvc := doctorService.NewService(doctorRepo)
	patientSvc := patientService.NewService(patientRepo)
	userSvc := userService.NewService(accountRepo, doctorRepo, patientRepo, lg)

	v := validator.New()
	m := metrics.NewMetrics("hospital_api")

	r := router.NewRouter(
		middleware.NewAuthMiddleware(authSvc),
		authHandler.NewHandler(authSvc, v),
		appointmentHandler.NewHandler(appointmentSvc, v),
		doctorHandler.NewHandler(doctorSvc, v),
		patientHandler.NewHandler(patientSvc, v),
		userHandler.NewHandler(userSvc),
		m,
		router.Config{
			RateLimitEnabled: cfg.RateLimit.Enabled,
			RateLimit:        rate.Limit(cfg.RateLimit.RequestsPerSecond),
			RateBurst:        cfg.RateLimit.Burst,
			CORS:             middleware.DefaultCORSConfig(),
		},
	)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		lg.Info("starting server", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			lg.Fatal(err, "server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	lg.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		lg.Error(err, "forced shutdown")
	}
}

func parseLevel(s string) logger.Level {
	switch strings.ToLower(s) {
	case "debug":
		return logger.DebugLevel
	case "warn":
		return logger.WarnLevel
	case "error":
		return logger.ErrorLevel
	default:
		return logger.InfoLevel
	}
}
