package auth

import (
	"errors"
	"strings"

	"payroll-backend/internal/audit"
	"payroll-backend/internal/database"
	"payroll-backend/internal/models"
	"payroll-backend/internal/web"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Username string `json:"username" validate:"required,max=100"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" validate:"required"`
}

type userResponse struct {
	ID       uint        `json:"id"`
	Username string      `json:"username"`
	Role     models.Role `json:"role"`
}

func toUserResponse(u *models.User) userResponse {
	return userResponse{ID: u.ID, Username: u.Username, Role: u.Role}
}

func LoginHandler(users UserStore, tokens *TokenService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body LoginRequest
		if err := web.Bind(c, &body); err != nil {
			return err
		}
		body.Username = strings.TrimSpace(body.Username)
		if body.Username == "" || body.Password == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Username and password are required")
		}

		user, err := users.FindByUsername(c.UserContext(), body.Username)
		if err != nil {
			if database.IsNotFound(err) {
				return fiber.NewError(fiber.StatusUnauthorized, "Invalid username or password")
			}
			return web.StoreError("login", "User", err)
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(body.Password)); err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid username or password")
		}

		token, err := tokens.Issue(user)
		if err != nil {
			return err
		}

		return c.JSON(fiber.Map{
			"token": token,
			"user":  toUserResponse(user),
		})
	}
}

func RegisterHandler(users UserStore, rec audit.Recorder) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body RegisterRequest
		if err := web.Bind(c, &body); err != nil {
			return err
		}
		body.Username = strings.TrimSpace(body.Username)
		if body.Username == "" || body.Password == "" || body.Role == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Username, password, and role are required")
		}
		if err := web.Validate(&body); err != nil {
			return err
		}

		role, ok := models.ParseRole(body.Role)
		if !ok {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid role. Must be either admin or employee")
		}

		ctx := c.UserContext()
		if _, err := users.FindByUsername(ctx, body.Username); err == nil {
			return fiber.NewError(fiber.StatusBadRequest, "Username already exists")
		} else if !database.IsNotFound(err) {
			return web.StoreError("register", "User", err)
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}

		user := models.User{
			Username:     body.Username,
			PasswordHash: string(hash),
			Role:         role,
		}
		if err := users.Create(ctx, &user); err != nil {
			// lost a race with a concurrent register
			if errors.Is(err, database.ErrDuplicateKey) {
				return fiber.NewError(fiber.StatusBadRequest, "Username already exists")
			}
			return web.StoreError("register", "User", err)
		}

		rec.Record(ctx, ActorFrom(c), audit.Entry{
			EntityType:  "user",
			EntityID:    user.ID,
			Action:      models.AuditActionCreate,
			Description: "registered user " + user.Username,
			Data:        toUserResponse(&user),
		})

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"message": "User registered successfully",
			"userId":  user.ID,
		})
	}
}

func MeHandler(users UserStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := ClaimsFrom(c)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "Authentication required")
		}

		user, err := users.FindByID(c.UserContext(), claims.ID)
		if err != nil {
			return web.StoreError("fetching current user", "User", err)
		}
		return c.JSON(toUserResponse(user))
	}
}
