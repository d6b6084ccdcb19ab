package domain

import "time"

// Shop refresh gates. Planets and the sun rotate on independent timers.
const (
	PlanetRefreshInterval = 15 * time.Minute
	SunRefreshInterval    = 30 * time.Minute

	MinShopPlanets = 6
	MaxShopPlanets = 10
)

// Listing position bounds, in percent of the shop viewport. Listings are
// rolled inside the spawn box and reflected at the float bounds.
const (
	FloatMin = 15.0
	FloatMax = 85.0
)

// PriceForRarity is the fixed rarity to price table for shop planet
// listings. Sun listings cost double.
func PriceForRarity(r Rarity) int {
	switch r {
	case RarityCommon:
		return 75
	case RarityUncommon:
		return 150
	case RarityRare:
		return 500
	case RarityEpic:
		return 1000
	case RarityLegendary:
		return 1600
	default:
		return 100
	}
}

// ShopListing is a shop-rolled purchasable instance of an archetype with a
// price and a floating position on the shop map.
type ShopListing struct {
	InstanceID  string  `json:"instance_id"`
	ArchetypeID string  `json:"archetype_id"`
	Name        string  `json:"name"`
	Subtype     string  `json:"subtype"`
	Rarity      Rarity  `json:"rarity"`
	Power       float64 `json:"power"`
	Color       string  `json:"color"`

	X              float64 `json:"x"`
	Y              float64 `json:"y"`
	Size           float64 `json:"size"`
	Price          int     `json:"price"`
	Purchased      bool    `json:"purchased"`
	FloatSpeed     float64 `json:"float_speed"`
	FloatDirection float64 `json:"float_direction"`
}

// ShopState is the persisted shop inventory: the current sun listing, the
// current planet pool and the last refresh instants.
type ShopState struct {
	Sun               *ShopListing  `json:"sun"`
	Planets           []ShopListing `json:"planets"`
	LastPlanetRefresh time.Time     `json:"last_planet_refresh"`
	LastSunRefresh    time.Time     `json:"last_sun_refresh"`
}
