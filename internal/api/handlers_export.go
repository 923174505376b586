package api

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/ovumcalendar/internal/services"
	"go.uber.org/zap"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func (handler *Handler) ExportJSON(c *fiber.Ctx) error {
	bundle, ok, err := handler.exportBundle(c)
	if !ok {
		return err
	}

	payload, err := json.MarshalIndent(bundle, "", "  ")
	if err != nil {
		return handler.exportFailed(c, err)
	}
	setExportAttachmentHeaders(c, fiber.MIMEApplicationJSON, buildExportFilename(handler.today(), "json"))
	return c.Send(payload)
}

func (handler *Handler) ExportCSV(c *fiber.Ctx) error {
	bundle, ok, err := handler.exportBundle(c)
	if !ok {
		return err
	}

	var output bytes.Buffer
	writer := csv.NewWriter(&output)
	if err := writer.Write(services.ExportCSVHeaders); err != nil {
		return handler.exportFailed(c, err)
	}
	for _, row := range bundle.CSVRows() {
		if err := writer.Write(row.Columns()); err != nil {
			return handler.exportFailed(c, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return handler.exportFailed(c, err)
	}

	setExportAttachmentHeaders(c, "text/csv", buildExportFilename(handler.today(), "csv"))
	return c.Send(output.Bytes())
}

func (handler *Handler) ExportXLSX(c *fiber.Ctx) error {
	bundle, ok, err := handler.exportBundle(c)
	if !ok {
		return err
	}

	payload, err := bundle.XLSX()
	if err != nil {
		return handler.exportFailed(c, err)
	}
	setExportAttachmentHeaders(c, xlsxContentType, buildExportFilename(handler.today(), "xlsx"))
	return c.Send(payload)
}

// exportBundle loads the bundle of the current device. When ok is false the
// error response has already been written and err is its result.
func (handler *Handler) exportBundle(c *fiber.Ctx) (services.ExportBundle, bool, error) {
	bundle, err := handler.export.BuildBundle(c.UserContext(), currentDevice(c), handler.today())
	if err != nil {
		return services.ExportBundle{}, false, handler.respondServiceError(c, err)
	}
	return bundle, true, nil
}

func (handler *Handler) exportFailed(c *fiber.Ctx, err error) error {
	handler.logger.Error("build export", zap.String("path", c.Path()), zap.Error(err))
	return handler.localizedError(c, fiber.StatusInternalServerError, errorKeyExportFailed)
}

func buildExportFilename(today time.Time, extension string) string {
	return fmt.Sprintf("ovumcalendar-export-%s.%s", today.Format("2006-01-02"), extension)
}

func setExportAttachmentHeaders(c *fiber.Ctx, contentType string, filename string) {
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%s", filename))
}
