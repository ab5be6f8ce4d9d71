package models

// CartLine is one entry in a kiosk cart. Adding the same menu item twice
// yields two lines; lines are never merged or edited in place.
type CartLine struct {
	ID        string `json:"id"`
	Icon      string `json:"icon"`
	Name      string `json:"name"`
	ImagePath string `json:"image_path"`
	UnitPrice int    `json:"unit_price"`
	Quantity  int    `json:"quantity"`
}

// LineTotal is UnitPrice × Quantity.
func (l CartLine) LineTotal() int {
	return l.UnitPrice * l.Quantity
}
