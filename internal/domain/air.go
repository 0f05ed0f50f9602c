package domain

// AirQuality represents an air sensor snapshot for a city
type AirQuality struct {
	Station string  `json:"station"`
	AQI     int     `json:"aqi"`
	CO2     float64 `json:"co2"`
	Status  string  `json:"status"`
}

// Sentinel values the air backend returns for unknown cities
const (
	UnknownStation   = "Inconnue"
	UnavailableLabel = "Données non disponibles"
)

// UnknownAirQuality is the record the air backend produces for a city it does not know
func UnknownAirQuality() AirQuality {
	return AirQuality{
		Station: UnknownStation,
		AQI:     0,
		CO2:     0,
		Status:  UnavailableLabel,
	}
}
