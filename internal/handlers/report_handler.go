package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/UCEM-2025/campus-event-service/internal/services"
	"github.com/UCEM-2025/campus-event-service/internal/utils"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReportHandler serves admin xlsx exports.
type ReportHandler struct {
	BaseHandler
	service services.ReportService
}

func NewReportHandler(service services.ReportService, logger utils.Logger) *ReportHandler {
	return &ReportHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

func (h *ReportHandler) EventRegistrationsReport(c *gin.Context) {
	h.LogRequest(c, "Generating event registrations report")

	workbook, err := h.service.EventRegistrationsReport(c.Request.Context())
	if err != nil {
		h.HandleServiceError(c, err, "Failed to generate report")
		return
	}

	h.serveWorkbook(c, "event_registrations", workbook)
}

func (h *ReportHandler) BookingsReport(c *gin.Context) {
	h.LogRequest(c, "Generating bookings report")

	workbook, err := h.service.BookingsReport(c.Request.Context())
	if err != nil {
		h.HandleServiceError(c, err, "Failed to generate report")
		return
	}

	h.serveWorkbook(c, "bookings", workbook)
}

func (h *ReportHandler) serveWorkbook(c *gin.Context, name string, workbook []byte) {
	filename := fmt.Sprintf("%s_%s.xlsx", name, time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, xlsxContentType, workbook)
}
