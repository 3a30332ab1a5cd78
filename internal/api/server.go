package api

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/eventhive/eventhive-api/docs"
	v1 "github.com/eventhive/eventhive-api/internal/api/handler/v1"
	"github.com/eventhive/eventhive-api/internal/api/middleware"
	"github.com/eventhive/eventhive-api/internal/config"
	"github.com/eventhive/eventhive-api/internal/domain"
	"github.com/eventhive/eventhive-api/internal/mailer"
	"github.com/eventhive/eventhive-api/internal/pkg/qr"
	"github.com/eventhive/eventhive-api/internal/repository"
	"github.com/eventhive/eventhive-api/internal/repository/dao"
	"github.com/eventhive/eventhive-api/internal/service"
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
	bookingHandler := s.initBookingHandler(db)
	s.MountHandlers(authHandler, userHandler, eventHandler, bookingHandler)

	return s
}

func (s *Server) initAuthHandler(db *gorm.DB) *v1.AuthHandler {
	userDAO := dao.NewUserDAO(db)
	repo := repository.NewUserRepository(userDAO)
	svc := service.NewAuthService(repo, mailer.New(s.Config.SMTP))
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
	ticketRepo := repository.NewTicketRepository(dao.NewTicketDAO(db))
	svc := service.NewEventService(eventRepo, ticketRepo)
	handler := v1.NewEventHandler(svc)

	return handler
}

func (s *Server) initBookingHandler(db *gorm.DB) *v1.BookingHandler {
	ticketRepo := repository.NewTicketRepository(dao.NewTicketDAO(db))
	eventRepo := repository.NewEventRepository(dao.NewEventDAO(db))
	svc := service.NewBookingService(ticketRepo, eventRepo, qr.NewEncoder())
	handler := v1.NewBookingHandler(svc)

	return handler
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(authHandler *v1.AuthHandler, userHandler *v1.UserHandler, eventHandler *v1.EventHandler, bookingHandler *v1.BookingHandler) {
	const basePath = "/api/v1"

	authenticator := middleware.NewAuthenticator(s.Config.API.JWTSigningKey)
	adminOnly := middleware.RequireRoles(domain.RoleAdmin)
	staffOrAdmin := middleware.RequireRoles(domain.RoleStaff, domain.RoleAdmin)

	auth := s.Router.Group(basePath)
	{
		auth.POST("/auth/register", authHandler.HandleRegister)
		auth.POST("/auth/login", authHandler.HandleLogin)
		auth.POST("/auth/logout", authHandler.HandleLogout)
		auth.POST("/auth/forgot-password", authHandler.HandleForgotPassword)
		auth.POST("/auth/reset-password/:token", authHandler.HandleResetPassword)
	}

	users := s.Router.Group(basePath, authenticator.VerifyJWT())
	{
		users.GET("/users/profile", userHandler.HandleGetProfile)
		users.PUT("/users/profile", userHandler.HandleUpdateProfile)
		users.PUT("/users/change-password", authHandler.HandleChangePassword)
		users.GET("/users", adminOnly, userHandler.HandleListUsers)
		users.DELETE("/users/:userID", adminOnly, userHandler.HandleDeleteUser)
	}

	events := s.Router.Group(basePath)
	{
		// Public reads.
		events.GET("/events", eventHandler.HandleGetEvents)
		events.GET("/events/filter", eventHandler.HandleFilterEvents)

		protected := events.Group("", authenticator.VerifyJWT())
		{
			protected.POST("/events", eventHandler.HandleCreateEvent)
			protected.GET("/events/my-events", eventHandler.HandleGetMyEvents)
			protected.GET("/events/my-tickets", bookingHandler.HandleGetMyTickets)
			protected.PUT("/events/:eventID", adminOnly, eventHandler.HandleUpdateEvent)
			protected.DELETE("/events/:eventID", adminOnly, eventHandler.HandleDeleteEvent)
			protected.POST("/events/:eventID/book", bookingHandler.HandleBookTicket)
			protected.GET("/events/:eventID/bookings", adminOnly, bookingHandler.HandleGetEventBookings)
			protected.GET("/events/ticket/:ticketID", bookingHandler.HandleGetTicketQR)
			protected.POST("/events/ticket/:ticketID/check-in", staffOrAdmin, bookingHandler.HandleCheckInTicket)
			protected.DELETE("/events/ticket/:ticketID/cancel", bookingHandler.HandleCancelTicket)
		}

		events.GET("/events/:eventID", eventHandler.HandleGetEvent)
	}

	s.Router.GET("/", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "Event Management API"
	docs.SwaggerInfo.Description = "Event CRUD, ticket booking, QR issuance and check-in."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
