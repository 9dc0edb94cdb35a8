package pricing

import (
	"context"
	"log/slog"
	"time"

	"cloud.google.com/go/civil"

	"prorent/internal/app/dto"
	"prorent/internal/app/handlers/support"
	"prorent/internal/app/policies"
	"prorent/internal/app/queries"
	domainpricing "prorent/internal/domain/pricing"
	"prorent/internal/domain/shared/datekey"
)

const (
	getPriceCalendarKey = "pricing.calendar"
	DefaultWindowDays   = 90
	MaxWindowDays       = 366
)

// GetPriceCalendarQuery asks for one entry per night in [From, To). Zero
// dates default to today and today plus the configured window.
type GetPriceCalendarQuery struct {
	RoomTypeID string
	From       civil.Date
	To         civil.Date
}

func (q GetPriceCalendarQuery) Key() string { return getPriceCalendarKey }

type GetPriceCalendarHandler struct {
	Catalog    policies.Catalog
	WindowDays int
	Now        func() time.Time
	Logger     *slog.Logger
}

func (h *GetPriceCalendarHandler) Handle(ctx context.Context, q GetPriceCalendarQuery) (dto.PriceCalendar, error) {
	id, err := support.RoomTypeID(q.RoomTypeID)
	if err != nil {
		return dto.PriceCalendar{}, err
	}
	from, to, err := h.window(q)
	if err != nil {
		return dto.PriceCalendar{}, err
	}

	rt, blocked, err := support.LoadRoomState(ctx, h.Catalog, id)
	if err != nil {
		return dto.PriceCalendar{}, err
	}
	prices := domainpricing.BuildPriceMap(rt)

	days := make([]dto.PriceCalendarDay, 0, to.DaysSince(from))
	for d := from; d.Before(to); d = d.AddDays(1) {
		key := datekey.KeyOfDate(d)
		days = append(days, dto.PriceCalendarDay{
			Date:      key,
			Price:     prices.PriceFor(key, rt.BasePrice),
			Peak:      prices.Has(key),
			Available: !blocked.Contains(key),
		})
	}
	if h.Logger != nil {
		h.Logger.Debug("price calendar built", "room_type_id", id, "from", from.String(), "to", to.String(), "blocked", blocked.Len())
	}
	return dto.PriceCalendar{
		RoomTypeID: id,
		From:       datekey.KeyOfDate(from),
		To:         datekey.KeyOfDate(to),
		BasePrice:  rt.BasePrice,
		Days:       days,
	}, nil
}

func (h *GetPriceCalendarHandler) window(q GetPriceCalendarQuery) (civil.Date, civil.Date, error) {
	from := q.From
	if from.IsZero() {
		from = datekey.DateOf(h.now())
	}
	to := q.To
	if to.IsZero() {
		to = from.AddDays(h.windowDays())
	}
	if !from.IsValid() || !to.IsValid() {
		return civil.Date{}, civil.Date{}, support.Invalid("calendar window has an invalid date")
	}
	if !from.Before(to) {
		return civil.Date{}, civil.Date{}, support.Invalid("calendar window must end after it starts")
	}
	if to.DaysSince(from) > MaxWindowDays {
		return civil.Date{}, civil.Date{}, support.Invalid("calendar window exceeds %d days", MaxWindowDays)
	}
	return from, to, nil
}

func (h *GetPriceCalendarHandler) windowDays() int {
	if h.WindowDays > 0 && h.WindowDays <= MaxWindowDays {
		return h.WindowDays
	}
	return DefaultWindowDays
}

func (h *GetPriceCalendarHandler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

var _ queries.Handler[GetPriceCalendarQuery, dto.PriceCalendar] = (*GetPriceCalendarHandler)(nil)
