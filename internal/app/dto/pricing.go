package dto

import (
	"prorent/internal/domain/pricing"
)

type PriceMap struct {
	RoomTypeID string             `json:"room_type_id"`
	BasePrice  float64            `json:"base_price"`
	Prices     map[string]float64 `json:"prices"`
}

func MapPriceMap(rt pricing.RoomType, prices pricing.PriceMap) PriceMap {
	return PriceMap{RoomTypeID: rt.ID, BasePrice: rt.BasePrice, Prices: prices}
}

type PriceCalendarDay struct {
	Date      string  `json:"date"`
	Price     float64 `json:"price"`
	Peak      bool    `json:"peak"`
	Available bool    `json:"available"`
}

type PriceCalendar struct {
	RoomTypeID string             `json:"room_type_id"`
	From       string             `json:"from"`
	To         string             `json:"to"`
	BasePrice  float64            `json:"base_price"`
	Days       []PriceCalendarDay `json:"days"`
}

type RangeValidation struct {
	RoomTypeID string   `json:"room_type_id"`
	CheckIn    string   `json:"check_in"`
	CheckOut   string   `json:"check_out"`
	Nights     int      `json:"nights"`
	Bookable   bool     `json:"bookable"`
	Conflicts  []string `json:"conflicts"`
	TotalPrice float64  `json:"total_price"`
}
