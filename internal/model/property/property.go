package property

import "time"

// Type is the broad category a listing belongs to.
type Type string

const (
	TypeApartment  Type = "apartment"
	TypeVilla      Type = "villa"
	TypePlot       Type = "plot"
	TypeCommercial Type = "commercial"
)

// Property is a listing shown on the public site and managed from the admin panel.
type Property struct {
	ID          string    `json:"id"`
	Title       string    `json:"title" validate:"required,max=140"`
	Location    string    `json:"location" validate:"required"`
	Type        Type      `json:"type" validate:"required,oneof=apartment villa plot commercial"`
	Bedrooms    int       `json:"bedrooms" validate:"gte=0,lte=20"`
	Price       float64   `json:"price" validate:"gt=0"`
	AreaSqft    float64   `json:"areaSqft" validate:"gte=0"`
	Description string    `json:"description,omitempty" validate:"max=4000"`
	ImageURL    string    `json:"imageUrl,omitempty" validate:"omitempty,url"`
	Featured    bool      `json:"featured"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Filter narrows a listing query. Zero values match everything.
type Filter struct {
	Location string
	Type     Type
	Bedrooms int
}

// Seed provides the listings a fresh installation starts with.
func Seed() []Property {
	created := time.Date(2024, time.January, 15, 9, 0, 0, 0, time.UTC)
	return []Property{
		{
			ID:          "6f1c2a4e-0d3b-4b8e-9a51-1f2e3d4c5b60",
			Title:       "Sea-facing 2 BHK in Bandra West",
			Location:    "mumbai",
			Type:        TypeApartment,
			Bedrooms:    2,
			Price:       32500000,
			AreaSqft:    980,
			Description: "Ready-to-move apartment with a partial sea view, covered parking and a rooftop garden.",
			Featured:    true,
			CreatedAt:   created,
			UpdatedAt:   created,
		},
		{
			ID:          "9b7d5e3c-2a1f-4c6d-8e9f-0a1b2c3d4e5f",
			Title:       "3 BHK near Hinjewadi IT Park",
			Location:    "pune",
			Type:        TypeApartment,
			Bedrooms:    3,
			Price:       11500000,
			AreaSqft:    1350,
			Description: "Gated community with clubhouse, swimming pool and a ten-minute commute to Phase 1.",
			Featured:    true,
			CreatedAt:   created,
			UpdatedAt:   created,
		},
		{
			ID:          "3e4f5a6b-7c8d-4e9f-a0b1-c2d3e4f5a6b7",
			Title:       "Independent villa in Whitefield",
			Location:    "bangalore",
			Type:        TypeVilla,
			Bedrooms:    4,
			Price:       42000000,
			AreaSqft:    3200,
			Description: "Four-bedroom villa with private garden in a low-density enclave.",
			CreatedAt:   created,
			UpdatedAt:   created,
		},
		{
			ID:          "c1d2e3f4-a5b6-4c7d-8e9f-a0b1c2d3e4f5",
			Title:       "Residential plot on Sohna Road",
			Location:    "gurgaon",
			Type:        TypePlot,
			Price:       9500000,
			AreaSqft:    2400,
			Description: "RERA-approved plotted development with clear title.",
			CreatedAt:   created,
			UpdatedAt:   created,
		},
		{
			ID:          "d4e5f6a7-b8c9-4d0e-8f1a-2b3c4d5e6f70",
			Title:       "Grade-A office floor in HITEC City",
			Location:    "hyderabad",
			Type:        TypeCommercial,
			Price:       78000000,
			AreaSqft:    12000,
			Description: "Leased office floor with a ten-year lock-in and 7.8% entry yield.",
			CreatedAt:   created,
			UpdatedAt:   created,
		},
	}
}
