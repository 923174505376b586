package api

import (
	"errors"
	"time"

	"github.com/terraincognita07/ovumcalendar/internal/i18n"
	"github.com/terraincognita07/ovumcalendar/internal/services"
	"go.uber.org/zap"
)

const defaultDeviceTokenTTL = 365 * 24 * time.Hour

type HandlerConfig struct {
	SecretKey      string
	Location       *time.Location
	CookieSecure   bool
	DeviceTokenTTL time.Duration
}

type Handler struct {
	store          services.KeyValueStore
	period         *services.PeriodService
	pregnancy      *services.PregnancyService
	intimacy       *services.IntimacyService
	export         *services.ExportService
	i18n           *i18n.Manager
	logger         *zap.Logger
	location       *time.Location
	signingKey     []byte
	cookieSecure   bool
	deviceTokenTTL time.Duration
	now            func() time.Time
}

func NewHandler(store services.KeyValueStore, i18nManager *i18n.Manager, logger *zap.Logger, config HandlerConfig) (*Handler, error) {
	if store == nil {
		return nil, errors.New("store is required")
	}
	if i18nManager == nil {
		return nil, errors.New("i18n manager is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	location := config.Location
	if location == nil {
		location = time.UTC
	}
	ttl := config.DeviceTokenTTL
	if ttl <= 0 {
		ttl = defaultDeviceTokenTTL
	}

	signingKey, err := deriveDeviceSigningKey([]byte(config.SecretKey))
	if err != nil {
		return nil, err
	}

	period := services.NewPeriodService(store, logger)
	pregnancy := services.NewPregnancyService(store, period, logger)
	intimacy := services.NewIntimacyService(store, period, logger)

	return &Handler{
		store:          store,
		period:         period,
		pregnancy:      pregnancy,
		intimacy:       intimacy,
		export:         services.NewExportService(period, pregnancy, intimacy),
		i18n:           i18nManager,
		logger:         logger,
		location:       location,
		signingKey:     signingKey,
		cookieSecure:   config.CookieSecure,
		deviceTokenTTL: ttl,
		now:            time.Now,
	}, nil
}

// today is the civil date of the current request in the configured zone.
func (handler *Handler) today() time.Time {
	return services.TodayAt(handler.now(), handler.location)
}
