package server

import (
	"net/http"

	"cleanic/internal/config"
	"cleanic/internal/directory"
	"cleanic/internal/handler"
	"cleanic/internal/middleware"
	"cleanic/internal/obs"
	"cleanic/internal/repository"
	"cleanic/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

type Server struct {
	router *gin.Engine
	db     *sqlx.DB
	cfg    *config.Config
	logger *zap.Logger
}

func NewServer(db *sqlx.DB, cfg *config.Config, logger *zap.Logger) *Server {
	router := gin.New()
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.Error("Handler panicked", zap.Any("panic", recovered))
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "internal error"})
	}))
	router.Use(obs.Instrument())

	s := &Server{
		router: router,
		db:     db,
		cfg:    cfg,
		logger: logger,
	}

	s.setupRoutes()

	return s
}

func (s *Server) setupRoutes() {
	// Wire auth components
	dirClient := directory.NewClient(directory.Options{
		URL:          s.cfg.Directory.URL,
		BindDN:       s.cfg.Directory.BindDN,
		BindPassword: s.cfg.Directory.BindPassword,
		SearchBase:   s.cfg.Directory.SearchBase,
		Timeout:      s.cfg.Directory.Timeout,
		SkipVerify:   s.cfg.Directory.SkipVerify,
	}, s.logger)
	tokens := service.NewTokenService(s.cfg.Auth.JWTSecret, s.cfg.Auth.TokenTTL)
	personnelRepo := repository.NewPersonnelRepository(s.db, s.logger)
	authService := service.NewAuthService(dirClient, personnelRepo, tokens, s.logger)
	authHandler := handler.NewAuthHandler(authService, s.logger)

	appointmentRepo := repository.NewAppointmentRepository(s.db, s.logger)
	appointmentHandler := handler.NewAppointmentHandler(appointmentRepo, s.logger)

	patientRepo := repository.NewPatientRepository(s.db, s.logger)
	patientHandler := handler.NewPatientHandler(patientRepo, s.logger)

	// Public routes
	s.router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Cleanic API up")
	})
	s.router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	s.router.GET("/metrics", gin.WrapH(obs.Handler()))
	s.router.POST("/auth/login", authHandler.Login)

	// Bearer-protected routes; role checks happen per handler
	authRequired := s.router.Group("/")
	authRequired.Use(middleware.AuthMiddleware(tokens, s.logger))
	{
		authRequired.GET("/appointments", appointmentHandler.GetAllAppointments)
		authRequired.GET("/appointments/:id", appointmentHandler.GetAppointmentByID)
		authRequired.POST("/appointments", appointmentHandler.CreateAppointment)
		authRequired.PUT("/appointments/:id", appointmentHandler.UpdateAppointment)
		authRequired.DELETE("/appointments/:id", appointmentHandler.DeleteAppointment)

		authRequired.GET("/patients", patientHandler.GetAllPatients)
		authRequired.GET("/patients/:id", patientHandler.GetPatientByID)
		authRequired.POST("/patients", patientHandler.CreatePatient)
	}

	s.router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"message": "route not found"})
	})
}

func (s *Server) Run(addr string) {
	s.logger.Info("Server starting", zap.String("addr", addr))
	if err := s.router.Run(addr); err != nil {
		s.logger.Fatal("Server failed to start", zap.Error(err))
	}
}
