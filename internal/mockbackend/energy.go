package mockbackend

import (
	"context"
	"log/slog"

	"google.golang.org/grpc"

	"github.com/smartcity/gateway/internal/energypb"
	"github.com/smartcity/gateway/internal/repository/memory"
)

type energyService struct {
	logger *slog.Logger
}

func (s *energyService) GetEnergyData(ctx context.Context, buildingID string) (energypb.Response, error) {
	s.logger.Debug("energy request", "building_id", buildingID)
	row := memory.LookupEnergy(buildingID)
	return energypb.Response{
		BuildingID:     row.BuildingID,
		ConsumptionKWh: row.ConsumptionKWh,
		Status:         row.Status,
	}, nil
}

// NewEnergyServer returns a gRPC server exposing energy.EnergyService
func NewEnergyServer(logger *slog.Logger, opts ...grpc.ServerOption) *grpc.Server {
	srv := grpc.NewServer(opts...)
	energypb.RegisterEnergyServer(srv, &energyService{logger: logger})
	return srv
}
