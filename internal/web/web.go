// Package web holds the request plumbing shared by every resource router:
// id parsing, body binding, validation and the mapping from store errors to
// HTTP errors.
package web

import (
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"payroll-backend/internal/database"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

const ServerErrorMessage = "Server error"

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// ParseID reads a positive integer route parameter. Ids are INTEGER
// columns, so anything above 2^31-1 is rejected here.
func ParseID(c *fiber.Ctx, name string) (uint, error) {
	raw := c.Params(name)
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || id <= 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "Invalid "+strings.ReplaceAll(name, "_", " "))
	}
	return uint(id), nil
}

// Bind decodes the JSON body into dst.
func Bind(c *fiber.Ctx, dst any) error {
	if err := c.BodyParser(dst); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	return nil
}

// Validate runs struct tags and reports the first failing field.
func Validate(v any) error {
	err := validatorInstance().Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return fiber.NewError(fiber.StatusBadRequest, describe(verrs[0]))
	}
	return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
}

func describe(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "oneof":
		return field + " must be one of: " + fe.Param()
	case "gte", "min":
		return field + " must be at least " + fe.Param()
	case "lte", "max":
		return field + " must be at most " + fe.Param()
	case "gtefield":
		return field + " must not be less than " + fe.Param()
	default:
		return field + " is invalid"
	}
}

// StoreError turns a store failure into the HTTP error the client sees.
// Unexpected failures are logged with op and rendered without detail.
func StoreError(op, entity string, err error) error {
	switch {
	case errors.Is(err, database.ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, entity+" not found")
	case errors.Is(err, database.ErrForeignKey):
		return fiber.NewError(fiber.StatusBadRequest, "Referenced record does not exist")
	case errors.Is(err, database.ErrDuplicateKey):
		return fiber.NewError(fiber.StatusBadRequest, entity+" already exists")
	}
	slog.Error("store error", "op", op, "err", err)
	return fiber.NewError(fiber.StatusInternalServerError, ServerErrorMessage)
}

// Message is the body of every non-resource response.
func Message(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"message": msg})
}

// ErrorHandler renders every error as {"message": ...}. Only *fiber.Error
// messages reach the client.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return Message(c, fe.Code, fe.Message)
	}
	slog.Error("unhandled error", "method", c.Method(), "path", c.Path(), "err", err)
	return Message(c, fiber.StatusInternalServerError, ServerErrorMessage)
}
