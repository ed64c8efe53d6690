package helper

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// GetUserIDFromToken mengambil user_id yang disimpan middleware auth di Locals.
func GetUserIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	raw, ok := c.Locals("user_id").(string)
	if !ok || raw == "" {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - user_id tidak ditemukan di token")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - user_id tidak valid")
	}
	return id, nil
}

// GetRoleFromToken mengambil role dari Locals (diisi middleware auth).
func GetRoleFromToken(c *fiber.Ctx) string {
	role, _ := c.Locals("user_role").(string)
	return role
}

// ActorIDOrNil: versi longgar untuk audit log (boleh nil saat dipanggil dari webhook).
func ActorIDOrNil(c *fiber.Ctx) *uuid.UUID {
	id, err := GetUserIDFromToken(c)
	if err != nil {
		return nil
	}
	return &id
}
