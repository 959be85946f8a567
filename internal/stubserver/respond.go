package stubserver

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/zestro/zestro-go/internal/stubserver/store"
)

// Every response the stub emits is the platform envelope:
// {success, message, response}. The custom error handler keeps that true for
// fiber.NewError returns as well, so clients never see a bare text body.

func ok(c *fiber.Ctx, response any) error {
	return c.Status(http.StatusOK).JSON(fiber.Map{
		"success":  true,
		"response": response,
	})
}

func okMsg(c *fiber.Ctx, message string, response any) error {
	return c.Status(http.StatusOK).JSON(fiber.Map{
		"success":  true,
		"message":  message,
		"response": response,
	})
}

func created(c *fiber.Ctx, response any) error {
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"success":  true,
		"response": response,
	})
}

func envelopeErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	message := err.Error()
	if code >= http.StatusInternalServerError {
		message = "internal server error"
	}
	return c.Status(code).JSON(fiber.Map{
		"success":  false,
		"message":  message,
		"response": nil,
	})
}

// pageOf wraps a listing in the paginated collection shape.
func pageOf(data any, total, page, limit int) fiber.Map {
	return fiber.Map{
		"data":    data,
		"total":   total,
		"page":    page,
		"hasMore": page*limit < total,
	}
}

func paging(c *fiber.Ctx) (int, int) {
	return store.NormalizePaging(c.QueryInt("page", 1), c.QueryInt("limit", 10))
}
