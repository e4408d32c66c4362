package api

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/clubdesk/portal-api/docs"
	v1 "github.com/clubdesk/portal-api/internal/api/handler/v1"
	"github.com/clubdesk/portal-api/internal/api/middleware"
	"github.com/clubdesk/portal-api/internal/config"
	"github.com/clubdesk/portal-api/internal/repository"
	"github.com/clubdesk/portal-api/internal/repository/dao"
	"github.com/clubdesk/portal-api/internal/service"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine
}

func NewServer(conf *config.AppConfig, db *gorm.DB) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
	}

	s.MountMiddlewares()

	authHandler := s.initAuthHandler(db)
	userHandler := s.initUserHandler(db)
	eventHandler := s.initEventHandler(db)
	registrationHandler := s.initRegistrationHandler(db)
	s.MountHandlers(authHandler, userHandler, eventHandler, registrationHandler)

	return s
}

func (s *Server) initAuthHandler(db *gorm.DB) *v1.AuthHandler {
	userDAO := dao.NewUserDAO(db)
	repo := repository.NewUserRepository(userDAO)
	svc := service.NewAuthService(repo)
	handler := v1.NewAuthHandler(s.Config.API, svc)

	return handler
}

func (s *Server) initUserHandler(db *gorm.DB) *v1.UserHandler {
	userDAO := dao.NewUserDAO(db)
	repo := repository.NewUserRepository(userDAO)
	svc := service.NewUserService(repo)
	handler := v1.NewUserHandler(svc)

	return handler
}

func (s *Server) initEventHandler(db *gorm.DB) *v1.EventHandler {
	eventRepo := repository.NewEventRepository(dao.NewEventDAO(db))
	participantRepo := repository.NewParticipantRepository(dao.NewParticipantDAO(db))
	svc := service.NewEventService(eventRepo, participantRepo)
	uSvc := service.NewUserService(repository.NewUserRepository(dao.NewUserDAO(db)))
	handler := v1.NewEventHandler(svc, uSvc)

	return handler
}

func (s *Server) initRegistrationHandler(db *gorm.DB) *v1.RegistrationHandler {
	eventRepo := repository.NewEventRepository(dao.NewEventDAO(db))
	participantRepo := repository.NewParticipantRepository(dao.NewParticipantDAO(db))
	userRepo := repository.NewUserRepository(dao.NewUserDAO(db))
	svc := service.NewRegistrationService(eventRepo, participantRepo, userRepo)
	uSvc := service.NewUserService(repository.NewUserRepository(dao.NewUserDAO(db)))
	handler := v1.NewRegistrationHandler(svc, uSvc)

	return handler
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(authHandler *v1.AuthHandler, userHandler *v1.UserHandler, eventHandler *v1.EventHandler, registrationHandler *v1.RegistrationHandler) {
	const basePath = "/api/v1"

	auth := s.Router.Group(basePath)
	{
		auth.POST("/auth/signup", authHandler.HandleSignup)
		auth.POST("/auth/login", authHandler.HandleLogin)
	}

	users := s.Router.Group(basePath, middleware.NewAuthenticator(s.Config.API.JWTSigningKey).VerifyJWT())
	{
		users.GET("/users/me", userHandler.HandleGetMe)
		users.PUT("/users/me", userHandler.HandleUpdateMe)
		users.GET("/users/me/registrations", registrationHandler.HandleGetMyRegistrations)
	}

	events := s.Router.Group(basePath, middleware.NewAuthenticator(s.Config.API.JWTSigningKey).VerifyJWT())
	{
		events.GET("/events", eventHandler.HandleGetEvents)
		events.GET("/events/:eventID", eventHandler.HandleGetEvent)
		events.POST("/events", eventHandler.HandleCreateEvent)
		events.PUT("/events/:eventID", eventHandler.HandleUpdateEvent)
		events.DELETE("/events/:eventID", eventHandler.HandleDeleteEvent)
		events.GET("/events/:eventID/participants", eventHandler.HandleGetParticipants)

		events.POST("/events/:eventID/register", registrationHandler.HandleRegister)
		events.GET("/events/:eventID/registration", registrationHandler.HandleGetMyRegistration)
		events.POST("/events/:eventID/team/members", registrationHandler.HandleAddMember)
		events.DELETE("/events/:eventID/team/members/:email", registrationHandler.HandleRemoveMember)

		events.DELETE("/participants/:participantID", registrationHandler.HandleCancel)
	}

	s.Router.GET("/", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "Club Portal API"
	docs.SwaggerInfo.Description = "Event registration and team roster management for the club portal."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
