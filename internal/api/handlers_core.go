package api

import (
	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// SetLanguage stores the language cookie. With ?next= it redirects back to a
// local path, otherwise it answers with the applied language.
func (handler *Handler) SetLanguage(c *fiber.Ctx) error {
	raw := c.Params("lang")
	if !handler.i18n.IsSupported(raw) {
		return handler.localizedError(c, fiber.StatusBadRequest, errorKeyInvalidRequest)
	}
	language := handler.i18n.NormalizeLanguage(raw)
	handler.setLanguageCookie(c, language)

	if next := c.Query("next"); next != "" {
		return c.Redirect(sanitizeRedirectPath(next, "/"), fiber.StatusSeeOther)
	}
	return c.JSON(fiber.Map{
		"language":  language,
		"supported": handler.i18n.SupportedLanguages(),
	})
}

func (handler *Handler) NotFound(c *fiber.Ctx) error {
	return handler.localizedError(c, fiber.StatusNotFound, errorKeyNotFound)
}

// ClearAllData removes every record of the current device.
func (handler *Handler) ClearAllData(c *fiber.Ctx) error {
	if err := handler.store.DeleteNamespace(c.UserContext(), currentDevice(c)); err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"ok":      true,
		"message": handler.i18n.Translate(currentLanguage(c), "status.cleared"),
	})
}
