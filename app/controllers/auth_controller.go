package controllers

import (
	"context"
	"errors"
	"strings"
	"time"

	jwt "github.com/form3tech-oss/jwt-go"
	"github.com/gofiber/fiber/v2"
	uuid "github.com/satori/go.uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/DedS3t/monopoly-engine/app/models"
	"github.com/DedS3t/monopoly-engine/platform/queries"
)

const defaultTokenTTL = 72 * time.Hour

type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	UserByEmail(ctx context.Context, email string) (models.User, error)
}

type AuthController struct {
	Users    UserStore
	Secret   []byte
	TokenTTL time.Duration
	Log      logrus.FieldLogger
}

func encrypt(pass string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(pass), bcrypt.DefaultCost)
	return string(hash), err
}

func (a *AuthController) CreateUser(c *fiber.Ctx) error {
	userDto := new(models.UserDto)
	if err := c.BodyParser(userDto); err != nil {
		return c.SendStatus(fiber.StatusBadRequest)
	}
	email := strings.TrimSpace(strings.ToLower(userDto.Email))
	if email == "" || userDto.Pass == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "email and pass are required"})
	}
	if _, err := a.Users.UserByEmail(c.Context(), email); err == nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "email already registered"})
	}

	hash, err := encrypt(userDto.Pass)
	if err != nil {
		return c.SendStatus(fiber.StatusInternalServerError)
	}
	user := &models.User{
		Id:       uuid.NewV4().String(),
		Email:    email,
		Password: hash,
	}
	if err := a.Users.CreateUser(c.Context(), user); err != nil {
		a.Log.WithError(err).Error("creating user failed")
		return c.SendStatus(fiber.StatusInternalServerError)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": user.Id})
}

func (a *AuthController) Login(c *fiber.Ctx) error {
	userDto := new(models.UserDto)
	if err := c.BodyParser(userDto); err != nil {
		return c.SendStatus(fiber.StatusBadRequest)
	}

	user, err := a.Users.UserByEmail(c.Context(), strings.TrimSpace(strings.ToLower(userDto.Email)))
	if errors.Is(err, queries.ErrNotFound) {
		return c.SendStatus(fiber.StatusUnauthorized)
	}
	if err != nil {
		a.Log.WithError(err).Error("looking up user failed")
		return c.SendStatus(fiber.StatusInternalServerError)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(userDto.Pass)) != nil {
		return c.SendStatus(fiber.StatusUnauthorized)
	}

	t, err := a.token(user.Id)
	if err != nil {
		return c.SendStatus(fiber.StatusInternalServerError)
	}
	return c.JSON(fiber.Map{"access_token": t})
}

func (a *AuthController) token(userID string) (string, error) {
	ttl := a.TokenTTL
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	token := jwt.New(jwt.SigningMethodHS256)
	claims := token.Claims.(jwt.MapClaims)
	claims["user_id"] = userID
	claims["exp"] = time.Now().Add(ttl).Unix()
	return token.SignedString(a.Secret)
}

func Cur(c *fiber.Ctx) error {
	userID, ok := UserID(c)
	if !ok {
		return c.SendStatus(fiber.StatusUnauthorized)
	}
	return c.SendString(userID)
}

// UserID reads the user_id claim placed in Locals by the jwt middleware.
func UserID(c *fiber.Ctx) (string, bool) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return "", false
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", false
	}
	id, ok := claims["user_id"].(string)
	return id, ok && id != ""
}
