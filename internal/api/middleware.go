package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	deviceCookieName   = "ovumcalendar_device"
	languageCookieName = "ovumcalendar_lang"
	contextDeviceKey   = "current_device"
	contextLanguageKey = "current_language"
)

func (handler *Handler) LanguageMiddleware(c *fiber.Ctx) error {
	cookieLanguage := c.Cookies(languageCookieName)
	language := handler.i18n.DetectFromAcceptLanguage(c.Get("Accept-Language"))
	if cookieLanguage != "" {
		language = handler.i18n.NormalizeLanguage(cookieLanguage)
	}

	if cookieLanguage != language {
		handler.setLanguageCookie(c, language)
	}

	c.Locals(contextLanguageKey, language)
	return c.Next()
}

func (handler *Handler) setLanguageCookie(c *fiber.Ctx, language string) {
	c.Cookie(&fiber.Cookie{
		Name:     languageCookieName,
		Value:    handler.i18n.NormalizeLanguage(language),
		Path:     "/",
		HTTPOnly: false,
		Secure:   handler.cookieSecure,
		SameSite: "Lax",
		Expires:  handler.now().AddDate(1, 0, 0),
	})
}

// DeviceSession resolves the device namespace from the session cookie. A
// missing or invalid token starts a new namespace; a token past half of its
// lifetime is re-issued for the same device.
func (handler *Handler) DeviceSession(c *fiber.Ctx) error {
	now := handler.now()
	deviceID, expiresAt, err := handler.parseDeviceToken(c.Cookies(deviceCookieName))
	switch {
	case err != nil:
		deviceID = uuid.NewString()
		if err := handler.setDeviceCookie(c, deviceID, now); err != nil {
			handler.logger.Error("issue device token", zap.Error(err))
			return handler.localizedError(c, fiber.StatusInternalServerError, errorKeyStorage)
		}
	case expiresAt.Sub(now) < handler.deviceTokenTTL/2:
		if err := handler.setDeviceCookie(c, deviceID, now); err != nil {
			handler.logger.Warn("refresh device token", zap.String("device_id", deviceID), zap.Error(err))
		}
	}

	c.Locals(contextDeviceKey, deviceID)
	return c.Next()
}

func (handler *Handler) setDeviceCookie(c *fiber.Ctx, deviceID string, now time.Time) error {
	token, err := handler.issueDeviceToken(deviceID, now)
	if err != nil {
		return err
	}
	c.Cookie(&fiber.Cookie{
		Name:     deviceCookieName,
		Value:    token,
		Path:     "/",
		HTTPOnly: true,
		Secure:   handler.cookieSecure,
		SameSite: "Lax",
		Expires:  now.Add(handler.deviceTokenTTL),
	})
	return nil
}

func currentDevice(c *fiber.Ctx) string {
	deviceID, _ := c.Locals(contextDeviceKey).(string)
	return deviceID
}

func currentLanguage(c *fiber.Ctx) string {
	language, _ := c.Locals(contextLanguageKey).(string)
	return language
}
