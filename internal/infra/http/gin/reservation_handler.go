package ginserver

import (
	"log/slog"
	"net/http"

	gin "github.com/gin-gonic/gin"

	"prorent/internal/app/commands"
	"prorent/internal/app/dto"
	reservationsapp "prorent/internal/app/handlers/reservations"
	"prorent/internal/app/queries"
	"prorent/internal/domain/reservation"
)

const IdempotencyHeader = "Idempotency-Key"

type ReservationHandler struct {
	Commands commands.Bus
	Queries  queries.Bus
	Logger   *slog.Logger
}

type createReservationRequest struct {
	RoomTypeID string `json:"room_type_id"`
	CheckIn    string `json:"check_in"`
	CheckOut   string `json:"check_out"`
	Guests     int    `json:"guests"`
}

func (h ReservationHandler) Create(c *gin.Context) {
	var req createReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	checkIn, checkOut, err := parseStay(req.CheckIn, req.CheckOut)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	cmd := reservationsapp.SubmitReservationCommand{
		Token: sessionToken(c),
		Reservation: dto.ReservationForm{
			RoomTypeID: req.RoomTypeID,
			CheckIn:    checkIn,
			CheckOut:   checkOut,
			Guests:     req.Guests,
		},
		IdempotencyKeyV: c.GetHeader(IdempotencyHeader),
	}
	result, err := commands.Dispatch[reservationsapp.SubmitReservationCommand, *reservation.Receipt](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

func (h ReservationHandler) GetDraft(c *gin.Context) {
	query := reservationsapp.GetDraftQuery{Token: sessionToken(c)}
	draft, err := queries.Ask[reservationsapp.GetDraftQuery, reservation.Draft](c.Request.Context(), h.Queries, query)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, draft)
}

func (h ReservationHandler) SaveDraft(c *gin.Context) {
	var form dto.DraftForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cmd := reservationsapp.SaveDraftCommand{Token: sessionToken(c), Draft: form}
	draft, err := commands.Dispatch[reservationsapp.SaveDraftCommand, reservation.Draft](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, draft)
}

func (h ReservationHandler) DiscardDraft(c *gin.Context) {
	cmd := reservationsapp.DiscardDraftCommand{Token: sessionToken(c)}
	if _, err := commands.Dispatch[reservationsapp.DiscardDraftCommand, struct{}](c.Request.Context(), h.Commands, cmd); err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

var _ ReservationHTTP = ReservationHandler{}
