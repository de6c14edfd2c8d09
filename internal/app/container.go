package app

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lumusproject/lumus-backend/internal/api"
	"github.com/lumusproject/lumus-backend/internal/auth"
	"github.com/lumusproject/lumus-backend/internal/course"
	"github.com/lumusproject/lumus-backend/internal/file"
	"github.com/lumusproject/lumus-backend/internal/lab"
	"github.com/lumusproject/lumus-backend/internal/pkg/storage"
	"github.com/lumusproject/lumus-backend/internal/schedule"
	"github.com/lumusproject/lumus-backend/internal/student"
	"github.com/lumusproject/lumus-backend/internal/user"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	DBPool       *pgxpool.Pool
	JWTSecret    string
	JWTTTL       time.Duration
	BcryptCost   int
	StoragePath  string

	// RecurrenceOccurrences bounds how many occurrences a repeating
	// reservation expands to, the base booking counted in.
	RecurrenceOccurrences int
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router     *gin.Engine
	JWTManager *auth.JWTManager
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) (*Container, error) {
	// Init Components
	passwordHasher := auth.NewBcryptPasswordHasherWithCost(cfg.BcryptCost)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)

	localStorage, err := storage.NewLocalStorage(cfg.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("failed to init storage: %w", err)
	}

	// User Module
	userRepo := user.NewPgxRepository(cfg.DBPool)
	userService := user.NewService(userRepo, passwordHasher)

	// File Module (lab catalog photos)
	fileRepo := file.NewRepository(cfg.DBPool)
	fileService := file.NewService(fileRepo, localStorage)

	// Lab Module
	labRepo := lab.NewPgxRepository(cfg.DBPool)
	labService := lab.NewService(labRepo)

	// Course Module
	courseRepo := course.NewPgxRepository(cfg.DBPool)
	courseService := course.NewService(courseRepo)

	// Student Module (course rosters)
	studentRepo := student.NewPgxRepository(cfg.DBPool)
	studentService := student.NewService(studentRepo, courseService)

	// Schedule Module
	scheduleStore := schedule.NewPgxStore(cfg.DBPool)
	scheduleService := schedule.NewService(scheduleStore, labService, courseService, cfg.RecurrenceOccurrences)

	// API Router Config
	routerParams := api.Config{
		IsProduction:    cfg.IsProduction,
		ProdOrigins:     cfg.ProdOrigins,
		UserService:     userService,
		LabService:      labService,
		CourseService:   courseService,
		StudentService:  studentService,
		ScheduleService: scheduleService,
		FileService:     fileService,
		JWTManager:      jwtManager,
	}

	// Router
	router := api.NewRouter(routerParams)

	return &Container{
		Router:     router,
		JWTManager: jwtManager,
	}, nil
}
