package models

type PropertyType string

const (
	PropertyTypeApartment  PropertyType = "Apartment"
	PropertyTypeVilla      PropertyType = "Villa"
	PropertyTypePlot       PropertyType = "Plot"
	PropertyTypeCommercial PropertyType = "Commercial"
)

// Property is a listing shown on the public site. Deleting a property only
// clears IsActive so links to old listings keep resolving for admins.
type Property struct {
	Record
	Title          string       `json:"title"`
	Location       string       `json:"location"`
	Price          string       `json:"price"` // display string, e.g. "₹170 Lakhs Onwards"
	Images         []string     `json:"images"`
	CustomInfo     []string     `json:"customInfo"`
	Type           PropertyType `json:"type"`
	FilterCategory string       `json:"filterCategory"`
	IsActive       bool         `json:"isActive"`
	Amenities      []string     `json:"amenities,omitempty"`
}
