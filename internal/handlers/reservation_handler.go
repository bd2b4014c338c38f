package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/serenity-studio/yoga-scheduler/internal/httperr"
	"github.com/serenity-studio/yoga-scheduler/internal/httpresp"
	ucReservation "github.com/serenity-studio/yoga-scheduler/internal/usecase/reservation"
)

// ======================================================
// HANDLER
// ======================================================

type ReservationHandler struct {
	createUC *ucReservation.CreateReservation
	searchUC *ucReservation.SearchByEmail
	cancelUC *ucReservation.CancelReservation
	exportUC *ucReservation.ExportCSV
}

func NewReservationHandler(
	createUC *ucReservation.CreateReservation,
	searchUC *ucReservation.SearchByEmail,
	cancelUC *ucReservation.CancelReservation,
	exportUC *ucReservation.ExportCSV,
) *ReservationHandler {
	return &ReservationHandler{
		createUC: createUC,
		searchUC: searchUC,
		cancelUC: cancelUC,
		exportUC: exportUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

// Field names match the widget's stored reservation shape. Required-ness is
// not declared here: the usecase reports every violated rule together.
type CreateReservationRequest struct {
	ClassType     string `json:"classType"`
	ScheduleLabel string `json:"scheduleLabel"`
	Date          string `json:"date"`
	Time          string `json:"time"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Notes         string `json:"notes"`
}

// ======================================================
// CREATE
// ======================================================

func (h *ReservationHandler) Create(c *gin.Context) {
	var req CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "無効なJSONフォーマットです")
		return
	}

	created, err := h.createUC.Execute(c.Request.Context(), ucReservation.CreateReservationInput{
		ClassType:     req.ClassType,
		ScheduleLabel: req.ScheduleLabel,
		Date:          req.Date,
		Time:          req.Time,
		Name:          req.Name,
		Email:         req.Email,
		Phone:         req.Phone,
		Notes:         req.Notes,
	})
	if err != nil {
		httperr.FromErr(c, err)
		return
	}

	httpresp.Created(c, created)
}

// ======================================================
// SEARCH / LIST
// ======================================================

func (h *ReservationHandler) Search(c *gin.Context) {
	email := c.Query("email")

	// No email filter: the full collection (export and admin tooling).
	if email == "" {
		all, err := h.searchUC.List(c.Request.Context())
		if err != nil {
			httperr.FromErr(c, err)
			return
		}
		httpresp.OK(c, all)
		return
	}

	includeCancelled := c.Query("status") != "confirmed"

	found, err := h.searchUC.Execute(c.Request.Context(), email, includeCancelled)
	if err != nil {
		httperr.FromErr(c, err)
		return
	}

	httpresp.OK(c, found)
}

// ======================================================
// CANCEL
// ======================================================

func (h *ReservationHandler) Cancel(c *gin.Context) {
	id := c.Param("id")

	cancelled, err := h.cancelUC.Execute(c.Request.Context(), id)
	if err != nil {
		httperr.FromErr(c, err)
		return
	}

	httpresp.OK(c, cancelled)
}

// ======================================================
// EXPORT
// ======================================================

func (h *ReservationHandler) Export(c *gin.Context) {
	data, err := h.exportUC.Execute(c.Request.Context())
	if err != nil {
		httperr.FromErr(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="reservations.csv"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
}
