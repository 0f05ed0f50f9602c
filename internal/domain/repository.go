package domain

import "context"

// The four backends have different request/response shapes, so each gets its
// own contract instead of one generic lookup client.

// AirQualityClient looks up air quality by city (SOAP backend)
type AirQualityClient interface {
	GetAirQuality(ctx context.Context, city string) (AirQuality, error)
}

// TrafficClient looks up congestion by road id (GraphQL backend)
type TrafficClient interface {
	GetTraffic(ctx context.Context, roadID string) (Traffic, error)
}

// MobilityClient lists scheduled transports (REST backend)
type MobilityClient interface {
	ListTransports(ctx context.Context) ([]Transport, error)
	GetTransport(ctx context.Context, id int) (Transport, error)
}

// EnergyClient looks up consumption by building id (gRPC backend)
type EnergyClient interface {
	GetEnergy(ctx context.Context, buildingID string) (Energy, error)
}

// TransportRepository is the record store behind the mobility backend
type TransportRepository interface {
	List(ctx context.Context) ([]Transport, error)
	Get(ctx context.Context, id int) (Transport, bool, error)
	Add(ctx context.Context, t Transport) (Transport, error)
	Delete(ctx context.Context, id int) error
}
