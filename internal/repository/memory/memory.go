// Package memory holds the fixed data tables served by the mock backends.
package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/smartcity/gateway/internal/domain"
)

type airRow struct {
	aqi    int
	co2    float64
	status string
}

var airTable = map[string]airRow{
	"Tunis":    {aqi: 55, co2: 410.5, status: "Moyen"},
	"Marsa":    {aqi: 25, co2: 380.0, status: "Excellent"},
	"Carthage": {aqi: 30, co2: 385.2, status: "Bon"},
	"Bardo":    {aqi: 110, co2: 500.1, status: "Pollué"},
	"Sfax":     {aqi: 140, co2: 600.0, status: "Très Pollué"},
}

// LookupAir returns the reading for city (case-insensitive) or the unknown-city sentinel
func LookupAir(city string) domain.AirQuality {
	for name, row := range airTable {
		if strings.EqualFold(name, city) {
			return domain.AirQuality{
				Station: "Capteur " + city,
				AQI:     row.aqi,
				CO2:     row.co2,
				Status:  row.status,
			}
		}
	}
	return domain.UnknownAirQuality()
}

var trafficTable = map[string]domain.Traffic{
	"GP9":     {CongestionLevel: "Saturé", AverageSpeed: 15}, // Route de la Marsa
	"Route X": {CongestionLevel: "Fluide", AverageSpeed: 70}, // Bardo / Manar
	"Z4":      {CongestionLevel: "Bloqué", AverageSpeed: 5},  // Centre-Ville / Sortie Sud
	"X20":     {CongestionLevel: "Modéré", AverageSpeed: 40}, // Ennasr / Ariana
	"GP1":     {CongestionLevel: "Bouché", AverageSpeed: 20}, // Ben Arous / Mourouj
	"Lac":     {CongestionLevel: "Fluide", AverageSpeed: 50}, // Les Berges du Lac
}

// LookupTraffic returns the congestion record for roadID, or false when the road is unknown
func LookupTraffic(roadID string) (domain.Traffic, bool) {
	for id, row := range trafficTable {
		if strings.EqualFold(id, roadID) {
			row.RoadID = id
			return row, true
		}
	}
	return domain.Traffic{}, false
}

var energyTable = map[string]domain.Energy{
	"Batiment_A": {ConsumptionKWh: 150.5, Status: "Normal"},
	"Batiment_B": {ConsumptionKWh: 450.0, Status: "Surcharge"},
	"Batiment_C": {ConsumptionKWh: 30.2, Status: "Économie"},
}

// LookupEnergy returns the consumption of buildingID or the unknown-building sentinel
func LookupEnergy(buildingID string) domain.Energy {
	for id, row := range energyTable {
		if strings.EqualFold(id, buildingID) {
			row.BuildingID = buildingID
			return row
		}
	}
	return domain.UnknownEnergy(buildingID)
}

// DefaultTransports is the Grand Tunis schedule the mobility backend starts with
func DefaultTransports() []domain.Transport {
	return []domain.Transport{
		// Banlieue Nord
		{ID: 1, Type: "TGM", Line: "Nord", Destination: "La Marsa", Status: "Opérationnel"},
		{ID: 2, Type: "Bus", Line: "20b", Destination: "Gammarth", Status: "Retard 15min"},
		{ID: 3, Type: "TGM", Line: "Nord", Destination: "Carthage", Status: "A l'heure"},
		// Centre / Banlieue Ouest
		{ID: 4, Type: "Metro", Line: "4", Destination: "Bardo", Status: "A l'heure"},
		{ID: 5, Type: "Metro", Line: "4", Destination: "Manouba", Status: "Saturé"},
		{ID: 6, Type: "Bus", Line: "33", Destination: "Mourouj", Status: "Bouchons"},
		// Banlieue Sud
		{ID: 7, Type: "Train", Line: "Banlieue", Destination: "Rades", Status: "Retard 10min"},
		{ID: 8, Type: "Train", Line: "Banlieue", Destination: "Hammam Lif", Status: "Annulé"},
		// Ariana / Menzah
		{ID: 9, Type: "Metro", Line: "2", Destination: "Ariana", Status: "A l'heure"},
		{ID: 10, Type: "Bus", Line: "63", Destination: "Menzah", Status: "A l'heure"},
		// Berges du Lac
		{ID: 11, Type: "Bus", Line: "28D", Destination: "Lac 2", Status: "Fluide"},
	}
}

// TransportRepository implements domain.TransportRepository in memory
type TransportRepository struct {
	mu         sync.RWMutex
	transports []domain.Transport
}

// NewTransportRepository creates a repository seeded with records
func NewTransportRepository(seed []domain.Transport) *TransportRepository {
	transports := make([]domain.Transport, len(seed))
	copy(transports, seed)
	return &TransportRepository{transports: transports}
}

// List returns a copy of every record
func (r *TransportRepository) List(ctx context.Context) ([]domain.Transport, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Transport, len(r.transports))
	copy(out, r.transports)
	return out, nil
}

// Get returns the record with id
func (r *TransportRepository) Get(ctx context.Context, id int) (domain.Transport, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, t := range r.transports {
		if t.ID == id {
			return t, true, nil
		}
	}
	return domain.Transport{}, false, nil
}

// Add appends a record; ids must be unique
func (r *TransportRepository) Add(ctx context.Context, t domain.Transport) (domain.Transport, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.transports {
		if existing.ID == t.ID {
			return domain.Transport{}, fmt.Errorf("memory: transport %d already exists", t.ID)
		}
	}
	r.transports = append(r.transports, t)
	return t, nil
}

// Delete removes the record with id; deleting a missing id is not an error
func (r *TransportRepository) Delete(ctx context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.transports[:0]
	for _, t := range r.transports {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	r.transports = kept
	return nil
}
