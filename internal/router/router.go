package router

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/teame/hospital-api/internal/handler"
	"github.com/teame/hospital-api/internal/handler/appointment"
	"github.com/teame/hospital-api/internal/handler/auth"
	"github.com/teame/hospital-api/internal/handler/doctor"
	"github.com/teame/hospital-api/internal/handler/patient"
	"github.com/teame/hospital-api/internal/handler/user"
	"github.com/teame/hospital-api/internal/middleware"
	"github.com/teame/hospital-api/pkg/metrics"
)

type Config struct {
	RateLimitEnabled bool
	RateLimit        rate.Limit
	RateBurst        int
	CORS             middleware.CORSConfig
}

type Router struct {
	engine       *gin.Engine
	authMW       *middleware.AuthMiddleware
	authH        *auth.Handler
	appointmentH *appointment.Handler
	doctorH      *doctor.Handler
	patientH     *patient.Handler
	userH        *user.Handler
	h            *handler.Handler
	metrics      *metrics.Metrics
	config       Config
}

func NewRouter(
	authMW *middleware.AuthMiddleware,
	authH *auth.Handler,
	appointmentH *appointment.Handler,
	doctorH *doctor.Handler,
	patientH *patient.Handler,
	userH *user.Handler,
	m *metrics.Metrics,
	config Config,
) *Router {
	return &Router{
		engine:       gin.New(),
		authMW:       authMW,
		authH:        authH,
		appointmentH: appointmentH,
		doctorH:      doctorH,
		patientH:     patientH,
		userH:        userH,
		h:            handler.NewHandler(),
		metrics:      m,
		config:       config,
	}
}

func (r *Router) Setup() *gin.Engine {
	r.engine.Use(middleware.RequestID())
	r.engine.Use(middleware.Logger())
	r.engine.Use(middleware.Recovery())
	r.engine.Use(middleware.CORS(r.config.CORS))
	r.engine.Use(r.instrument())

	if r.config.RateLimitEnabled {
		limiter := middleware.NewRateLimiter(r.config.RateLimit, r.config.RateBurst)
		r.engine.Use(limiter.RateLimit())
	}

	r.engine.GET("/health", r.h.Health)
	r.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.engine.Group("/api/v1")

	// routes that work without a token
	r.authH.RegisterRoutes(v1)

	directory := v1.Group("", middleware.Cache(middleware.DefaultCacheConfig()))
	r.doctorH.RegisterPublicRoutes(directory)

	authed := v1.Group("")
	authed.Use(r.authMW.Authenticate())
	r.appointmentH.RegisterRoutes(authed)
	r.doctorH.RegisterRoutes(authed)
	r.patientH.RegisterRoutes(authed)
	r.userH.RegisterRoutes(authed)

	return r.engine
}

func (r *Router) instrument() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		r.metrics.HTTPRequestsTotal.WithLabelValues(
			c.Request.Method, path, strconv.Itoa(c.Writer.Status()),
		).Inc()
		r.metrics.HTTPRequestDuration.WithLabelValues(
			c.Request.Method, path,
		).Observe(time.Since(start).Seconds())
	}
}
