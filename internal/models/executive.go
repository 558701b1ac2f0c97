package models

// Executive is a member of the executive team shown on "The Group" page.
type Executive struct {
	Record
	Name     string  `json:"name"`
	Position string  `json:"position"`
	Bio      string  `json:"bio"`
	Image    *string `json:"image"` // null until a portrait is uploaded
}
