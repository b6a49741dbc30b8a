package handler

import (
	"fmt"
	"net/http"
	"time"

	"maquillarte/internal/apierror"
	"maquillarte/internal/dto"
	"maquillarte/internal/service"

	"github.com/gin-gonic/gin"
)

type ReportesHandler struct{ svc service.ReporteService }

func NewReportesHandler(svc service.ReporteService) *ReportesHandler {
	return &ReportesHandler{svc: svc}
}

func (h *ReportesHandler) bindRango(c *gin.Context) (dto.RangoFilter, bool) {
	var filter dto.RangoFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return filter, false
	}
	if filter.Desde == "" || filter.Hasta == "" {
		// Default: current month
		now := time.Now()
		filter.Desde = now.AddDate(0, 0, -now.Day()+1).Format("2006-01-02")
		filter.Hasta = now.Format("2006-01-02")
	}
	return filter, true
}

func (h *ReportesHandler) ResumenVentas(c *gin.Context) {
	filter, ok := h.bindRango(c)
	if !ok {
		return
	}
	resp, err := h.svc.ResumenVentas(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al generar reporte de ventas"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ReportesHandler) ResumenCompras(c *gin.Context) {
	filter, ok := h.bindRango(c)
	if !ok {
		return
	}
	resp, err := h.svc.ResumenCompras(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al generar reporte de compras"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ReportesHandler) ResumenGastos(c *gin.Context) {
	filter, ok := h.bindRango(c)
	if !ok {
		return
	}
	resp, err := h.svc.ResumenGastos(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al generar reporte de gastos"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ExportarVentasCSV streams the sales of a range as a CSV download.
func (h *ReportesHandler) ExportarVentasCSV(c *gin.Context) {
	filter, ok := h.bindRango(c)
	if !ok {
		return
	}
	data, err := h.svc.ExportarVentasCSV(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al exportar ventas"))
		return
	}
	nombre := fmt.Sprintf("ventas_%s_%s.csv", filter.Desde, filter.Hasta)
	c.Header("Content-Disposition", `attachment; filename="`+nombre+`"`)
	c.Data(http.StatusOK, "text/csv", data)
}

// ExportarVentasExcel streams the sales of a range as an .xlsx download.
func (h *ReportesHandler) ExportarVentasExcel(c *gin.Context) {
	filter, ok := h.bindRango(c)
	if !ok {
		return
	}
	data, err := h.svc.ExportarVentasExcel(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al exportar ventas"))
		return
	}
	nombre := fmt.Sprintf("ventas_%s_%s.xlsx", filter.Desde, filter.Hasta)
	c.Header("Content-Disposition", `attachment; filename="`+nombre+`"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
