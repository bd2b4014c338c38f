package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/serenity-studio/yoga-scheduler/internal/httperr"
	"github.com/serenity-studio/yoga-scheduler/internal/httpresp"
	"github.com/serenity-studio/yoga-scheduler/internal/schedule"
	ucReservation "github.com/serenity-studio/yoga-scheduler/internal/usecase/reservation"
)

type ClassHandler struct {
	availUC *ucReservation.CheckAvailability
}

func NewClassHandler(availUC *ucReservation.CheckAvailability) *ClassHandler {
	return &ClassHandler{availUC: availUC}
}

// ListSchedules returns the fixed studio timetable.
func (h *ClassHandler) ListSchedules(c *gin.Context) {
	httpresp.OK(c, schedule.All())
}

func (h *ClassHandler) Availability(c *gin.Context) {
	classType := c.Param("type")
	date := c.Query("date")

	if date == "" {
		httperr.BadRequest(c, "missing_params", "クラスタイプと日付が必要です")
		return
	}

	avail, err := h.availUC.Execute(c.Request.Context(), classType, date)
	if err != nil {
		httperr.FromErr(c, err)
		return
	}

	httpresp.OK(c, avail)
}
