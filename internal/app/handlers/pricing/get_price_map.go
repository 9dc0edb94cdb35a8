package pricing

import (
	"context"
	"log/slog"

	"prorent/internal/app/dto"
	"prorent/internal/app/handlers/support"
	"prorent/internal/app/policies"
	"prorent/internal/app/queries"
	domainpricing "prorent/internal/domain/pricing"
)

const getPriceMapKey = "pricing.price_map"

type GetPriceMapQuery struct {
	RoomTypeID string
}

func (q GetPriceMapQuery) Key() string { return getPriceMapKey }

type GetPriceMapHandler struct {
	Catalog policies.Catalog
	Logger  *slog.Logger
}

func (h *GetPriceMapHandler) Handle(ctx context.Context, q GetPriceMapQuery) (dto.PriceMap, error) {
	id, err := support.RoomTypeID(q.RoomTypeID)
	if err != nil {
		return dto.PriceMap{}, err
	}
	rt, err := support.LoadRoomType(ctx, h.Catalog, id)
	if err != nil {
		return dto.PriceMap{}, err
	}
	prices := domainpricing.BuildPriceMap(rt)
	if h.Logger != nil {
		h.Logger.Debug("price map built", "room_type_id", id, "peak_rates", len(rt.UpcomingPeakRates), "days", len(prices))
	}
	return dto.MapPriceMap(rt, prices), nil
}

var _ queries.Handler[GetPriceMapQuery, dto.PriceMap] = (*GetPriceMapHandler)(nil)
