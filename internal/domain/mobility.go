package domain

// Transport represents a scheduled transit line towards a destination
type Transport struct {
	ID          int    `json:"id"`
	Type        string `json:"type"` // "Bus", "Metro", "Train", "TGM", "Tram"
	Line        string `json:"line"`
	Destination string `json:"destination"`
	Status      string `json:"status"`
}
