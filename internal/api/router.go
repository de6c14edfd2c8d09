package api

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/lumusproject/lumus-backend/internal/auth"
	calendarHttp "github.com/lumusproject/lumus-backend/internal/calendar/http"
	"github.com/lumusproject/lumus-backend/internal/course"
	courseHttp "github.com/lumusproject/lumus-backend/internal/course/http"
	"github.com/lumusproject/lumus-backend/internal/file"
	fileHttp "github.com/lumusproject/lumus-backend/internal/file/http"
	"github.com/lumusproject/lumus-backend/internal/lab"
	labHttp "github.com/lumusproject/lumus-backend/internal/lab/http"
	"github.com/lumusproject/lumus-backend/internal/schedule"
	scheduleHttp "github.com/lumusproject/lumus-backend/internal/schedule/http"
	"github.com/lumusproject/lumus-backend/internal/student"
	studentHttp "github.com/lumusproject/lumus-backend/internal/student/http"
	"github.com/lumusproject/lumus-backend/internal/user"
	userHttp "github.com/lumusproject/lumus-backend/internal/user/http"
)

// Config holds everything the router needs to assemble the HTTP surface.
type Config struct {
	IsProduction bool
	ProdOrigins  string

	UserService     user.Service
	LabService      lab.Service
	CourseService   course.Service
	StudentService  student.Service
	ScheduleService schedule.Service
	FileService     file.Service

	JWTManager *auth.JWTManager
}

// NewRouter initializes the HTTP router engine.
// It is responsible for assembling middleware (CORS, Logger, Auth) and registering routes for various modules.
func NewRouter(cfg Config) *gin.Engine {
	r := gin.New()

	// Global Middleware:
	// - Logger: Logs request information to the console.
	// - Recovery: Captures panics to prevent server crashes and returns a 500 error.
	r.Use(gin.Logger(), gin.Recovery())

	// Configure CORS (Cross-Origin Resource Sharing).
	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction && cfg.ProdOrigins != "" {
		corsConfig.AllowOrigins = strings.Split(cfg.ProdOrigins, ",")
	} else {
		corsConfig.AllowOrigins = []string{
			"http://localhost:5173", // Vite dev server
			"http://localhost:8081", // Swagger
		}
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	// authMiddleware: Validates if the request contains a valid JWT.
	authMiddleware := auth.AuthRequired(cfg.JWTManager)
	// optionalAuth: Attaches the user identity when a valid JWT is present,
	// but lets guests through for the read-only surface.
	optionalAuth := auth.OptionalAuth(cfg.JWTManager)
	// sysAdminMiddleware: Further checks if the authenticated user has System Admin privileges.
	sysAdminMiddleware := RequireSystemAdmin(cfg.UserService)

	// Initialize HTTP Handlers for each module (injecting Service dependencies).
	userHandler := userHttp.NewHandler(cfg.UserService, cfg.JWTManager)
	labHandler := labHttp.NewHandler(cfg.LabService, cfg.FileService)
	courseHandler := courseHttp.NewHandler(cfg.CourseService)
	studentHandler := studentHttp.NewHandler(cfg.StudentService)
	scheduleHandler := scheduleHttp.NewHandler(cfg.ScheduleService, cfg.UserService)
	fileHandler := fileHttp.NewHandler(cfg.FileService)
	calendarHandler := calendarHttp.NewHandler()

	// Register API routes under /v1
	v1 := r.Group("/v1")
	{
		userHttp.RegisterRoutes(v1, userHandler, authMiddleware, sysAdminMiddleware)
		labHttp.RegisterRoutes(v1, labHandler, authMiddleware, sysAdminMiddleware)
		courseHttp.RegisterRoutes(v1, courseHandler, authMiddleware, sysAdminMiddleware)
		studentHttp.RegisterRoutes(v1, studentHandler, authMiddleware, sysAdminMiddleware)
		scheduleHttp.RegisterRoutes(v1, scheduleHandler, authMiddleware, optionalAuth)
		fileHttp.RegisterRoutes(v1, fileHandler)
		calendarHttp.RegisterRoutes(v1, calendarHandler)
	}

	return r
}
