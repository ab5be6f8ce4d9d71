package models

// MenuItem is a food entry on the kiosk menu. Prices are whole pesos.
type MenuItem struct {
	ID          string `yaml:"id" json:"id"`
	Icon        string `yaml:"icon" json:"icon"` // emoji fallback when the image is missing
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description" json:"description"`
	Price       int    `yaml:"price" json:"price"`
	ImagePath   string `yaml:"image" json:"image_path"`
}

// CreditItem is a prepaid block of PC time.
type CreditItem struct {
	ID        string `yaml:"id" json:"id"`
	Icon      string `yaml:"icon" json:"icon"`
	Hours     string `yaml:"hours" json:"hours"` // e.g. "3 Hours"
	Label     string `yaml:"label" json:"label"` // e.g. "Popular Choice"
	Price     int    `yaml:"price" json:"price"`
	ImagePath string `yaml:"image" json:"image_path"`
}
