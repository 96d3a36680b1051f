package api

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/vietanh2810/motohub-api/docs"
	v1 "github.com/vietanh2810/motohub-api/internal/api/handler/v1"
	"github.com/vietanh2810/motohub-api/internal/api/middleware"
	"github.com/vietanh2810/motohub-api/internal/config"
	"github.com/vietanh2810/motohub-api/internal/repository"
	"github.com/vietanh2810/motohub-api/internal/repository/dao"
	"github.com/vietanh2810/motohub-api/internal/service"
	"github.com/vietanh2810/motohub-api/internal/storage"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine
}

func NewServer(conf *config.AppConfig, db *gorm.DB, store storage.Store) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
	}

	s.MountMiddlewares()

	galleryDAO := dao.NewGalleryDAO(db)
	galleryRepo := repository.NewGalleryRepository(galleryDAO)
	gallerySvc := service.NewGalleryService(galleryRepo, store)

	userRepo := repository.NewUserRepository(dao.NewUserDAO(db))
	uSvc := service.NewUserService(userRepo)

	vehicleRepo := repository.NewVehicleRepository(dao.NewVehicleDAO(db, galleryDAO))
	postRepo := repository.NewPostRepository(dao.NewPostDAO(db, galleryDAO))

	reactionRepo := repository.NewReactionRepository(dao.NewReactionDAO(db))
	reactionSvc := service.NewReactionService(reactionRepo, vehicleRepo, postRepo)

	authHandler := v1.NewAuthHandler(s.Config.API, service.NewAuthService(userRepo))
	userHandler := v1.NewUserHandler(uSvc)

	vehicleSvc := service.NewVehicleService(vehicleRepo, gallerySvc)
	vehicleHandler := v1.NewVehicleHandler(vehicleSvc, gallerySvc, reactionSvc, uSvc)

	postSvc := service.NewPostService(postRepo, gallerySvc)
	postHandler := v1.NewPostHandler(postSvc, gallerySvc, reactionSvc, uSvc)

	reactionHandler := v1.NewReactionHandler(reactionSvc, uSvc)

	eventRepo := repository.NewEventRepository(dao.NewEventDAO(db), dao.NewTeamDAO(db))
	eventSvc := service.NewEventService(eventRepo, vehicleRepo)
	eventHandler := v1.NewEventHandler(eventSvc, uSvc)

	s.MountHandlers(authHandler, userHandler, vehicleHandler, postHandler, reactionHandler, eventHandler)

	return s
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(
	authHandler *v1.AuthHandler,
	userHandler *v1.UserHandler,
	vehicleHandler *v1.VehicleHandler,
	postHandler *v1.PostHandler,
	reactionHandler *v1.ReactionHandler,
	eventHandler *v1.EventHandler,
) {
	const basePath = "/api/v1"

	auth := s.Router.Group(basePath)
	{
		auth.POST("/auth/signup", authHandler.HandleSignup)
		auth.POST("/auth/login", authHandler.HandleLogin)
	}

	public := s.Router.Group(basePath)
	{
		public.GET("/vehicles", vehicleHandler.HandleListVehicles)
		public.GET("/vehicles/:vehicleID", vehicleHandler.HandleGetVehicle)
		public.GET("/posts", postHandler.HandleListPosts)
		public.GET("/posts/:postID", postHandler.HandleGetPost)
		public.GET("/events", eventHandler.HandleListEvents)
	}

	authed := s.Router.Group(basePath, middleware.NewAuthenticator(s.Config.API.JWTSigningKey).VerifyJWT())
	{
		authed.GET("/me", userHandler.HandleGetMe)
		authed.GET("/me/vehicles", vehicleHandler.HandleGetMyVehicles)
		authed.GET("/me/posts", postHandler.HandleGetMyPosts)
		authed.GET("/me/favorites", reactionHandler.HandleGetMyFavorites)
		authed.GET("/users/:userID", userHandler.HandleGetUser)

		authed.POST("/vehicles", vehicleHandler.HandleCreateVehicle)
		authed.PUT("/vehicles/:vehicleID", vehicleHandler.HandleUpdateVehicle)
		authed.DELETE("/vehicles/:vehicleID", vehicleHandler.HandleDeleteVehicle)

		authed.POST("/posts", postHandler.HandleCreatePost)
		authed.DELETE("/posts/:postID", postHandler.HandleDeletePost)

		authed.POST("/reactions/toggle", reactionHandler.HandleToggleReaction)

		authed.POST("/events", eventHandler.HandleCreateEvent)
		authed.GET("/events/:eventID", eventHandler.HandleGetEvent)
		authed.PUT("/events/:eventID", eventHandler.HandleUpdateEvent)
		authed.POST("/events/:eventID/entries", eventHandler.HandleEnterEvent)
		authed.POST("/events/:eventID/entries/:entryID/vote", eventHandler.HandleToggleVote)
		authed.GET("/events/:eventID/winners", eventHandler.HandleGetWinners)
		authed.POST("/events/:eventID/awards", eventHandler.HandleCreateAward)
		authed.PUT("/events/:eventID/awards/:awardID", eventHandler.HandleUpdateAward)
		authed.DELETE("/events/:eventID/awards/:awardID", eventHandler.HandleDeleteAward)
	}

	s.Router.Static("/media", s.Config.Media.Root)
	s.Router.GET("/", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "MotoHub API"
	docs.SwaggerInfo.Description = "Vehicle community API: galleries, reactions, events."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
