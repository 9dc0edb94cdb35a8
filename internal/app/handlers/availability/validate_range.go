package availability

import (
	"context"
	"log/slog"

	"prorent/internal/app/dto"
	"prorent/internal/app/handlers/support"
	"prorent/internal/app/policies"
	"prorent/internal/app/queries"
	domainavailability "prorent/internal/domain/availability"
	domainpricing "prorent/internal/domain/pricing"
	"prorent/internal/domain/reservation"
	"prorent/internal/domain/shared/datekey"
)

const validateRangeKey = "availability.validate_range"

type ValidateRangeQuery struct {
	RoomTypeID string
	Range      dto.RangeForm
}

func (q ValidateRangeQuery) Key() string { return validateRangeKey }

// Form exposes the date pair to the form validator.
func (q ValidateRangeQuery) Form() any { return q.Range }

type ValidateRangeHandler struct {
	Catalog policies.Catalog
	Logger  *slog.Logger
}

func (h *ValidateRangeHandler) Handle(ctx context.Context, q ValidateRangeQuery) (dto.RangeValidation, error) {
	id, err := support.RoomTypeID(q.RoomTypeID)
	if err != nil {
		return dto.RangeValidation{}, err
	}
	stay, err := domainavailability.CheckRange(q.Range.CheckIn, q.Range.CheckOut)
	if err != nil {
		return dto.RangeValidation{}, support.Invalid("%v", err)
	}

	rt, blocked, err := support.LoadRoomState(ctx, h.Catalog, id)
	if err != nil {
		return dto.RangeValidation{}, err
	}

	var trace domainavailability.Tracer
	if h.Logger != nil {
		trace = func(key string, unavailable bool) {
			h.Logger.Debug("range day checked", "room_type_id", id, "date", key, "unavailable", unavailable)
		}
	}
	conflicts := domainavailability.ValidateDateRangeTraced(stay.CheckIn, stay.CheckOut, blocked, trace)

	return dto.RangeValidation{
		RoomTypeID: id,
		CheckIn:    datekey.ToDateKey(stay.CheckIn),
		CheckOut:   datekey.ToDateKey(stay.CheckOut),
		Nights:     stay.Nights(),
		Bookable:   len(conflicts) == 0,
		Conflicts:  conflicts,
		TotalPrice: reservation.Quote(stay, domainpricing.BuildPriceMap(rt), rt.BasePrice),
	}, nil
}

var _ queries.Handler[ValidateRangeQuery, dto.RangeValidation] = (*ValidateRangeHandler)(nil)
