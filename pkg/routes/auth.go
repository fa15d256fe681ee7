package routes

import (
	"github.com/gofiber/fiber/v2"
	jwtware "github.com/gofiber/jwt/v2"

	"github.com/DedS3t/monopoly-engine/app/controllers"
)

func AuthRoutes(a *fiber.App, auth *controllers.AuthController) {
	route := a.Group("/user")
	route.Post("/register", auth.CreateUser)
	route.Post("/login", auth.Login)
}

// PrivateRoutes puts every route registered after it behind the jwt middleware.
func PrivateRoutes(a *fiber.App, secret []byte) {
	a.Use(jwtware.New(jwtware.Config{
		SigningKey: secret,
	}))
	a.Get("/user/cur", controllers.Cur)
}
