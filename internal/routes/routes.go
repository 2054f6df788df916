package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/priyankaj04/Gymlogs/internal/config"
	"github.com/priyankaj04/Gymlogs/internal/handlers"
	"github.com/priyankaj04/Gymlogs/internal/middleware"
	"github.com/priyankaj04/Gymlogs/internal/repository"
	"github.com/priyankaj04/Gymlogs/internal/services"
)

func RegisterRoutes(app *fiber.App, cfg *config.Config, db *pgxpool.Pool) error {
	userRepo := repository.NewUserRepository(db)
	exerciseRepo := repository.NewExerciseRepository(db)
	workoutPlanRepo := repository.NewWorkoutPlanRepository(db)

	userService := services.NewUserService(userRepo, cfg.JWTSecret)
	workoutPlanService := services.NewWorkoutPlanService(db, workoutPlanRepo)

	userHandler := handlers.NewUserHandler(userService)
	exerciseHandler := handlers.NewExerciseHandler(exerciseRepo)
	workoutPlanHandler := handlers.NewWorkoutPlanHandler(workoutPlanService)

	authRequired := middleware.AuthRequired(cfg.JWTSecret)

	api := app.Group("/api")

	users := api.Group("/users")
	users.Post("/register", userHandler.Register)
	users.Post("/login", userHandler.Login)
	users.Get("/health", handlers.Health("users"))
	users.Get("/:id", authRequired, userHandler.GetUser)
	users.Put("/:id", authRequired, userHandler.UpdateUser)
	users.Delete("/:id", authRequired, userHandler.DeleteUser)

	exercises := api.Group("/exercises")
	exercises.Get("", exerciseHandler.ListExercises)
	exercises.Get("/health", handlers.Health("exercises"))
	exercises.Get("/constants", exerciseHandler.Constants)
	exercises.Get("/filters", exerciseHandler.FilterValues)
	exercises.Get("/stats", exerciseHandler.Stats)
	exercises.Get("/by-body-part", exerciseHandler.ByBodyPart)
	exercises.Get("/:id", exerciseHandler.GetExercise)
	exercises.Post("", authRequired, exerciseHandler.CreateExercise)
	exercises.Put("/:id", authRequired, exerciseHandler.UpdateExercise)
	exercises.Delete("/:id", authRequired, exerciseHandler.DeleteExercise)

	api.Get("/workout-plans/health", handlers.Health("workout-plans"))
	plans := api.Group("/workout-plans", authRequired)
	plans.Get("", workoutPlanHandler.ListPlans)
	plans.Post("", workoutPlanHandler.CreatePlan)
	plans.Get("/stats", workoutPlanHandler.Stats)
	plans.Get("/:id", workoutPlanHandler.GetPlan)
	plans.Put("/:id", workoutPlanHandler.UpdatePlan)
	plans.Delete("/:id", workoutPlanHandler.DeletePlan)
	plans.Post("/:id/exercises", workoutPlanHandler.AddExercise)
	plans.Put("/:id/exercises/:exerciseId", workoutPlanHandler.UpdateExercise)
	plans.Delete("/:id/exercises/:exerciseId", workoutPlanHandler.RemoveExercise)

	return registerDocsRoutes(app, cfg)
}
