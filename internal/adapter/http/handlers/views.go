package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/iPad7/gantt-4team/internal/adapter/http/mapper"
	"github.com/iPad7/gantt-4team/internal/core/ports"
	"github.com/iPad7/gantt-4team/pkg/apierrors"
)

type ViewHandler struct {
	viewService ports.ViewService
}

func NewViewHandler(viewService ports.ViewService) *ViewHandler {
	return &ViewHandler{viewService: viewService}
}

func (h *ViewHandler) Dashboard(c *gin.Context) {
	stats, err := h.viewService.DashboardStats(c.Request.Context())
	if err != nil {
		respondError(c, err, apierrors.MsgFailDashboard)
		return
	}

	c.JSON(http.StatusOK, mapper.ToDashboardResponse(stats))
}

func (h *ViewHandler) Timeline(c *gin.Context) {
	timeline, err := h.viewService.Timeline(c.Request.Context())
	if err != nil {
		respondError(c, err, apierrors.MsgFailTimeline)
		return
	}

	c.JSON(http.StatusOK, mapper.ToTimelineResponse(timeline))
}

func (h *ViewHandler) GanttChart(c *gin.Context) {
	chart, err := h.viewService.GanttChart(c.Request.Context())
	if err != nil {
		respondError(c, err, apierrors.MsgFailGanttChart)
		return
	}

	c.JSON(http.StatusOK, mapper.ToGanttChartResponse(chart))
}
