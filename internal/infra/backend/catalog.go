package backend

import (
	"context"
	"fmt"
	"net/http"

	"prorent/internal/domain/availability"
	"prorent/internal/domain/pricing"
	"prorent/internal/domain/shared/datekey"
)

type peakRatePayload struct {
	StartDate string  `json:"startDate"`
	EndDate   string  `json:"endDate"`
	RateType  string  `json:"rateType"`
	Value     float64 `json:"value"`
}

type roomTypePayload struct {
	ID                string            `json:"id"`
	PropertyID        string            `json:"propertyId"`
	Name              string            `json:"name"`
	BasePrice         float64           `json:"basePrice"`
	UpcomingPeakRates []peakRatePayload `json:"upcomingPeakRates"`
}

type unavailablePayload struct {
	Dates []string `json:"dates"`
}

// RoomType fetches the room-type snapshot with its upcoming peak rates.
func (c *Client) RoomType(ctx context.Context, id string) (pricing.RoomType, error) {
	v, err := c.shared(ctx, "room-type:"+id, func(ctx context.Context) (any, error) {
		var payload roomTypePayload
		if err := c.do(ctx, http.MethodGet, "/room-types/"+escape(id), "", nil, &payload); err != nil {
			return pricing.RoomType{}, err
		}
		return payload.toDomain()
	})
	if err != nil {
		return pricing.RoomType{}, err
	}
	return v.(pricing.RoomType).Clone(), nil
}

// UnavailableDates fetches the blocked nights of a room type as canonical keys.
func (c *Client) UnavailableDates(ctx context.Context, roomTypeID string) (availability.UnavailableDateSet, error) {
	v, err := c.shared(ctx, "unavailable:"+roomTypeID, func(ctx context.Context) (any, error) {
		var payload unavailablePayload
		if err := c.do(ctx, http.MethodGet, "/room-types/"+escape(roomTypeID)+"/unavailable-dates", "", nil, &payload); err != nil {
			return nil, err
		}
		keys := make([]string, 0, len(payload.Dates))
		for _, raw := range payload.Dates {
			d, err := datekey.ParseFlexible(raw)
			if err != nil {
				return nil, fmt.Errorf("%w: unavailable date: %v", ErrUpstream, err)
			}
			keys = append(keys, datekey.KeyOfDate(d))
		}
		return keys, nil
	})
	if err != nil {
		return nil, err
	}
	return availability.NewUnavailableDateSet(v.([]string)...), nil
}

func (p roomTypePayload) toDomain() (pricing.RoomType, error) {
	rt := pricing.RoomType{
		ID:                p.ID,
		PropertyID:        p.PropertyID,
		Name:              p.Name,
		BasePrice:         p.BasePrice,
		UpcomingPeakRates: make([]pricing.PeakRate, 0, len(p.UpcomingPeakRates)),
	}
	for i, raw := range p.UpcomingPeakRates {
		start, err := datekey.ParseFlexible(raw.StartDate)
		if err != nil {
			return pricing.RoomType{}, fmt.Errorf("%w: peak rate %d start: %v", ErrUpstream, i, err)
		}
		end, err := datekey.ParseFlexible(raw.EndDate)
		if err != nil {
			return pricing.RoomType{}, fmt.Errorf("%w: peak rate %d end: %v", ErrUpstream, i, err)
		}
		rt.UpcomingPeakRates = append(rt.UpcomingPeakRates, pricing.PeakRate{
			StartDate: start,
			EndDate:   end,
			RateType:  pricing.RateType(raw.RateType),
			Value:     raw.Value,
		})
	}
	return rt, nil
}
