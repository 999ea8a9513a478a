package handlers

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"userbase/internal/apperrors"
	"userbase/internal/models"
	"userbase/internal/services"
)

// UserHandler handles HTTP requests for the user collection.
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// RegisterRoutes registers the user routes with the Fiber app.
func (h *UserHandler) RegisterRoutes(router fiber.Router) {
	userRoutes := router.Group("/users")
	userRoutes.Get("/", h.HandleGetUsers)
	userRoutes.Post("/", h.HandleCreateUser)
	userRoutes.Put("/:id", h.HandleUpdateUser)
	userRoutes.Delete("/:id", h.HandleDeleteUser)
}

// HandleGetUsers returns all users, passwords included (contract parity).
func (h *UserHandler) HandleGetUsers(c *fiber.Ctx) error {
	users, err := h.userService.GetAllUsers()
	if err != nil {
		log.Printf("Error getting all users: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Could not retrieve users",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"users": users,
	})
}

// HandleCreateUser creates a new user from the request body.
func (h *UserHandler) HandleCreateUser(c *fiber.Ctx) error {
	var user models.User
	if err := c.BodyParser(&user); err != nil {
		log.Printf("Error parsing create user request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	// IDs and timestamps are storage-assigned, never client-supplied.
	user.ID = ""
	user.CreatedAt = time.Time{}
	user.UpdatedAt = time.Time{}

	if err := h.userService.CreateUser(&user); err != nil {
		return h.errorResponse(c, "create", err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"user": user,
	})
}

// HandleUpdateUser applies a partial or full field set to an existing user.
func (h *UserHandler) HandleUpdateUser(c *fiber.Ctx) error {
	id := c.Params("id")

	var input services.UpdateUserInput
	if err := c.BodyParser(&input); err != nil {
		log.Printf("Error parsing update user request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	user, err := h.userService.UpdateUser(id, input)
	if err != nil {
		return h.errorResponse(c, "update", err)
	}

	return c.JSON(fiber.Map{
		"user": user,
	})
}

// HandleDeleteUser removes a user and confirms the removed id.
func (h *UserHandler) HandleDeleteUser(c *fiber.Ctx) error {
	id := c.Params("id")

	if err := h.userService.DeleteUser(id); err != nil {
		return h.errorResponse(c, "delete", err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"id":      id,
	})
}

// errorResponse maps domain errors onto the HTTP error envelope.
func (h *UserHandler) errorResponse(c *fiber.Ctx, op string, err error) error {
	var ve *apperrors.ValidationError
	switch {
	case errors.As(err, &ve):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Validation failed",
			"errors":  ve.Fields,
		})
	case errors.Is(err, apperrors.ErrEmailExists):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"success": false,
			"message": "Email already exists",
		})
	case errors.Is(err, apperrors.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"message": "User not found",
		})
	default:
		log.Printf("Error during user %s: %v", op, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Could not " + op + " user",
			"error":   err.Error(),
		})
	}
}
