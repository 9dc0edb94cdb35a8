package ginserver

import (
	"log/slog"
	"net/http"
	"strings"

	"cloud.google.com/go/civil"
	gin "github.com/gin-gonic/gin"

	"prorent/internal/app/dto"
	availabilityapp "prorent/internal/app/handlers/availability"
	pricingapp "prorent/internal/app/handlers/pricing"
	"prorent/internal/app/queries"
	"prorent/internal/domain/shared/datekey"
)

type PricingHandler struct {
	Queries queries.Bus
	Logger  *slog.Logger
}

type rangeRequest struct {
	CheckIn  string `json:"check_in"`
	CheckOut string `json:"check_out"`
}

func (h PricingHandler) PriceMap(c *gin.Context) {
	query := pricingapp.GetPriceMapQuery{RoomTypeID: c.Param("id")}
	result, err := queries.Ask[pricingapp.GetPriceMapQuery, dto.PriceMap](c.Request.Context(), h.Queries, query)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h PricingHandler) Calendar(c *gin.Context) {
	from, err := optionalDate(c.Query("from"))
	if err != nil {
		respondError(c, h.Logger, fieldError("from", "datekey"))
		return
	}
	to, err := optionalDate(c.Query("to"))
	if err != nil {
		respondError(c, h.Logger, fieldError("to", "datekey"))
		return
	}
	query := pricingapp.GetPriceCalendarQuery{RoomTypeID: c.Param("id"), From: from, To: to}
	result, err := queries.Ask[pricingapp.GetPriceCalendarQuery, dto.PriceCalendar](c.Request.Context(), h.Queries, query)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h PricingHandler) ValidateRange(c *gin.Context) {
	var req rangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	form, err := req.form()
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	query := availabilityapp.ValidateRangeQuery{RoomTypeID: c.Param("id"), Range: form}
	result, err := queries.Ask[availabilityapp.ValidateRangeQuery, dto.RangeValidation](c.Request.Context(), h.Queries, query)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (r rangeRequest) form() (dto.RangeForm, error) {
	checkIn, checkOut, err := parseStay(r.CheckIn, r.CheckOut)
	if err != nil {
		return dto.RangeForm{}, err
	}
	return dto.RangeForm{CheckIn: checkIn, CheckOut: checkOut}, nil
}

func optionalDate(raw string) (civil.Date, error) {
	if strings.TrimSpace(raw) == "" {
		return civil.Date{}, nil
	}
	return datekey.ParseFlexible(raw)
}

var _ PricingHTTP = PricingHandler{}
