package server

import "github.com/gofiber/fiber/v2"

// Health reports that the process is serving requests.
func Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}
