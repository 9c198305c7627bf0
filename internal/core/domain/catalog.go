package domain

// Service is one bookable category shown on the home screen.
type Service struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon"`
}

// Provider is a professional listed on a service detail screen.
type Provider struct {
	ID      int     `json:"id"`
	Name    string  `json:"name"`
	Rating  float64 `json:"rating"`
	Address string  `json:"address"`
	Phone   string  `json:"phone"`
}

// Location strings shown when the device cannot resolve a place.
const (
	LocationDenied  = "Location permission denied"
	LocationUnknown = "Location not found"
)

// Place is a reverse-geocoded device position.
type Place struct {
	City    string
	Region  string
	Country string
}

// CallURI is the dial link opened by the call button of a provider card.
func CallURI(phone string) string {
	return "tel:" + phone
}
