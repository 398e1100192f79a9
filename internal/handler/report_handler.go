package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"sms-settle-api/internal/constant"
	"sms-settle-api/internal/dto"
	"sms-settle-api/internal/service"
	"sms-settle-api/internal/utils"
)

type ReportHandler struct {
	report *service.ReportService
	export *service.ExportService
}

func NewReportHandler() *ReportHandler {
	return &ReportHandler{
		report: service.NewReportService(),
		export: service.NewExportService(),
	}
}

func (h *ReportHandler) Report(c *gin.Context) {
	var req dto.ReportReq
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.Error(constant.CodeInvalidParam))
		return
	}
	res, err := h.report.Generate(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.FromError(err))
		return
	}
	c.JSON(http.StatusOK, utils.Success(res))
}

func (h *ReportHandler) Overview(c *gin.Context) {
	month := c.Query("month")
	res, err := h.report.Overview(month)
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.FromError(err))
		return
	}
	c.JSON(http.StatusOK, utils.Success(res))
}

// ExportDailyCSV 下载日结算 CSV（UTF-8 带 BOM）
func (h *ReportHandler) ExportDailyCSV(c *gin.Context) {
	start := c.Query("start_date")
	end := c.Query("end_date")
	data, err := h.export.ExportDailyCSV(start, end)
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.FromError(err))
		return
	}
	filename := fmt.Sprintf("daily_settle_%s_%s.csv", start, end)
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
}
