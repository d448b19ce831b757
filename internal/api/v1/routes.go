package v1

import (
	"taskboard/internal/api/v1/handlers"
	"taskboard/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(app *fiber.App) {
	api := app.Group("/api")

	api.Get("/health", handlers.CheckHealth)

	// User
	user := api.Group("/user")
	user.Post("/register", handlers.Register)
	user.Post("/login", handlers.Login)
	user.Get("/refreshToken", handlers.RefreshAccessToken)
	user.Post("/logout", middleware.UseAccessToken, handlers.Logout)
	user.Get("/getUser", middleware.UseAccessToken, handlers.GetCurrentUser)
	user.Put("/changePassword", middleware.UseAccessToken, handlers.ChangeCurrentPassword)
	user.Put("/updateDetails", middleware.UseAccessToken, handlers.UpdateDetails)

	// Task. Every route with a :taskId parameter goes through the ownership
	// check as well.
	task := api.Group("/task", middleware.UseAccessToken)
	task.Post("/createTask", handlers.CreateTask)
	task.Get("/getAllTasks", handlers.GetAllTasks)
	task.Put("/updateTask/:taskId", middleware.VerifyOwner, handlers.UpdateTask)
	task.Patch("/updateTaskStatus/:taskId", middleware.VerifyOwner, handlers.UpdateTaskStatus)
	task.Get("/getTaskStatus/:taskId", middleware.VerifyOwner, handlers.GetTaskStatus)
	task.Delete("/deleteTask/:taskId", middleware.VerifyOwner, handlers.DeleteTask)
}
