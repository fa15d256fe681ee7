package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/DedS3t/monopoly-engine/app/controllers"
)

func GameRoutes(a *fiber.App, games *controllers.GameController) {
	route := a.Group("/game")
	route.Post("/create", games.CreateGame)
	route.Get("/all", games.GetAllAvailGames)
	route.Get("/verify", games.VerifyGame)
	route.Get("/:id", games.GetGame)
	route.Get("/:id/players", games.GetPlayers)
	route.Post("/:id/join", games.JoinGame)
	route.Post("/:id/leave", games.LeaveGame)
	route.Post("/:id/start", games.StartGame)
	route.Post("/:id/action", games.SubmitAction)
	route.Post("/:id/timeout", games.Timeout)
}

// Setup registers the public auth routes, then everything that needs a token.
func Setup(a *fiber.App, secret []byte, auth *controllers.AuthController, games *controllers.GameController) {
	AuthRoutes(a, auth)
	PrivateRoutes(a, secret)
	GameRoutes(a, games)
}
