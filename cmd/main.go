package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/MaxKochergin/NNGP-sub002/config"
	"github.com/MaxKochergin/NNGP-sub002/database"
	_ "github.com/MaxKochergin/NNGP-sub002/docs"
	adminctrl "github.com/MaxKochergin/NNGP-sub002/internal/controller/admin"
	authctrl "github.com/MaxKochergin/NNGP-sub002/internal/controller/auth"
	catalogctrl "github.com/MaxKochergin/NNGP-sub002/internal/controller/catalog"
	hrctrl "github.com/MaxKochergin/NNGP-sub002/internal/controller/hr"
	userctrl "github.com/MaxKochergin/NNGP-sub002/internal/controller/user"
	"github.com/MaxKochergin/NNGP-sub002/internal/lock"
	"github.com/MaxKochergin/NNGP-sub002/internal/logger"
	"github.com/MaxKochergin/NNGP-sub002/internal/middleware"
	"github.com/MaxKochergin/NNGP-sub002/internal/model"
	"github.com/MaxKochergin/NNGP-sub002/internal/repository"
	"github.com/MaxKochergin/NNGP-sub002/internal/security"
	"github.com/MaxKochergin/NNGP-sub002/internal/service"
	"github.com/MaxKochergin/NNGP-sub002/internal/validation"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
)

// @title HR Testing Platform API
// @version 1.0
// @description Candidate and employee testing: tests, attempts with automatic grading, profiles, learning materials and reports.
// @contact.name API Support
// @contact.email support@example.com
// @host localhost:8080
// @BasePath /api
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger.Init(os.Getenv("GIN_MODE"))

	app := fx.New(
		fx.NopLogger,
		fx.Provide(
			config.NewConfig,
			database.NewDatabase,
			security.NewJWTManager,
			lock.NewLocker,
			NewGinEngine,
		),

		fx.Provide(
			repository.NewUserRepository,
			repository.NewRoleRepository,
			repository.NewProfileRepository,
			repository.NewSpecializationRepository,
			repository.NewLearningMaterialRepository,
			repository.NewTestRepository,
			repository.NewQuestionRepository,
			repository.NewTestAttemptRepository,
			repository.NewUserAnswerRepository,
			repository.NewAnswerReviewRepository,
			repository.NewInvitationRepository,
		),

		fx.Provide(
			service.NewAuthService,
			service.NewUserService,
			service.NewProfileService,
			service.NewSpecializationService,
			service.NewLearningMaterialService,
			service.NewAdminTestService,
			service.NewQuestionService,
			service.NewUserTestService,
			service.NewScoringService,
			service.NewTestAttemptService,
			service.NewReportService,
			service.NewInvitationService,
			service.NewGeminiLLMService,
			service.NewAnswerReviewService,
		),

		fx.Provide(
			authctrl.NewAuthController,
			adminctrl.NewAdminTestController,
			adminctrl.NewUserController,
			catalogctrl.NewSpecializationController,
			catalogctrl.NewLearningMaterialController,
			hrctrl.NewAttemptController,
			hrctrl.NewInvitationController,
			userctrl.NewUserTestController,
			userctrl.NewProfileController,
			userctrl.NewInvitationController,
		),

		fx.Invoke(func(cfg *config.Config) { logger.Init(cfg.Server.GinMode) }),
		fx.Invoke(database.AutoMigrate),
		fx.Invoke(RegisterRoutesAndStartServer),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
	stopCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := app.Stop(stopCtx); err != nil {
		log.Error().Err(err).Msg("Failed to stop application cleanly")
	}
}

func NewGinEngine(cfg *config.Config) (*gin.Engine, error) {
	gin.SetMode(cfg.Server.GinMode)

	if err := validation.Register(); err != nil {
		return nil, err
	}

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		requestID, _ := param.Keys[middleware.RequestIDKey].(string)
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("user_agent", param.Request.UserAgent()).
			Str("error_message", param.ErrorMessage).
			Str("request_id", requestID).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.Server.PublicURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// URL: http://localhost:PORT/swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r, nil
}

// RegisterRoutesAndStartServer configures API routes and manages server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	jwtManager *security.JWTManager,
	authCtrl *authctrl.AuthController,
	adminTestCtrl *adminctrl.AdminTestController,
	userCtrl *adminctrl.UserController,
	specCtrl *catalogctrl.SpecializationController,
	materialCtrl *catalogctrl.LearningMaterialController,
	attemptCtrl *hrctrl.AttemptController,
	hrInvitationCtrl *hrctrl.InvitationController,
	userTestCtrl *userctrl.UserTestController,
	profileCtrl *userctrl.ProfileController,
	invitationCtrl *userctrl.InvitationController,
) {
	staff := middleware.RequireRoles(model.RoleAdmin, model.RoleHR)
	adminOnly := middleware.RequireRoles(model.RoleAdmin)

	api := router.Group("/api")
	api.POST("/auth/register", authCtrl.Register)
	api.POST("/auth/login", authCtrl.Login)

	authed := api.Group("", middleware.Authenticate(jwtManager))
	{
		authed.GET("/auth/me", authCtrl.Me)

		users := authed.Group("/users")
		users.GET("", staff, userCtrl.ListUsers)
		users.GET("/:id", staff, userCtrl.GetUser)
		users.POST("", adminOnly, userCtrl.CreateUser)
		users.PUT("/:id", adminOnly, userCtrl.UpdateUser)
		users.DELETE("/:id", adminOnly, userCtrl.DeleteUser)

		profiles := authed.Group("/profiles")
		profiles.GET("/me", profileCtrl.GetMyProfile)
		profiles.PUT("/me", profileCtrl.UpdateMyProfile)
		profiles.GET("/:user_id", staff, profileCtrl.GetUserProfile)

		specs := authed.Group("/specializations")
		specs.GET("", specCtrl.ListSpecializations)
		specs.GET("/:id", specCtrl.GetSpecialization)
		specs.POST("", staff, specCtrl.CreateSpecialization)
		specs.PUT("/:id", staff, specCtrl.UpdateSpecialization)
		specs.DELETE("/:id", staff, specCtrl.DeleteSpecialization)

		materials := authed.Group("/learning-materials")
		materials.GET("", materialCtrl.ListMaterials)
		materials.GET("/:id", materialCtrl.GetMaterial)
		materials.POST("", staff, materialCtrl.CreateMaterial)
		materials.PUT("/:id", staff, materialCtrl.UpdateMaterial)
		materials.DELETE("/:id", staff, materialCtrl.DeleteMaterial)

		tests := authed.Group("/tests")
		tests.GET("", userTestCtrl.GetAllTests)
		tests.GET("/:test_id", userTestCtrl.GetTestDetails)
		tests.POST("", staff, adminTestCtrl.CreateTest)
		tests.PUT("/:test_id", staff, adminTestCtrl.UpdateTest)
		tests.DELETE("/:test_id", staff, adminTestCtrl.DeleteTest)
		tests.POST("/:test_id/questions", staff, adminTestCtrl.AddQuestion)
		tests.POST("/:test_id/start", userTestCtrl.StartTest)
		tests.POST("/:test_id/submit", userTestCtrl.SubmitTest)
		tests.GET("/:test_id/my-attempts", userTestCtrl.GetMyAttempts)
		tests.POST("/:test_id/invitations", staff, hrInvitationCtrl.CreateInvitation)

		questions := authed.Group("/questions", staff)
		questions.PUT("/:question_id", adminTestCtrl.UpdateQuestion)
		questions.DELETE("/:question_id", adminTestCtrl.DeleteQuestion)

		attempts := authed.Group("/test-attempts")
		attempts.GET("", staff, attemptCtrl.ListAttempts)
		attempts.GET("/mine", userTestCtrl.GetMyAllAttempts)
		attempts.GET("/:attempt_id", userTestCtrl.GetTestAttemptDetails)
		attempts.GET("/:attempt_id/report", staff, attemptCtrl.AttemptReport)
		attempts.POST("/:attempt_id/reviews", staff, attemptCtrl.ReviewAttempt)
		attempts.GET("/:attempt_id/reviews", staff, attemptCtrl.ListReviews)

		authed.GET("/invitations/:token", invitationCtrl.ResolveInvitation)
		authed.GET("/invitations/:token/qr", invitationCtrl.InvitationQRCode)
	}

	server := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("HR testing API server starting on port %s", cfg.Server.Port)
			log.Info().Msgf("Swagger UI available at http://localhost:%s/swagger/index.html", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatal().Err(err).Msg("Server ListenAndServe failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down...")
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
}
