package adapter

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/smartcity/gateway/internal/domain"
	"github.com/smartcity/gateway/internal/energypb"
)

// EnergyClient talks to the energy backend over gRPC
type EnergyClient struct {
	base
	conn *grpc.ClientConn
}

// NewEnergyClient prepares a lazy gRPC connection to target. No dial happens
// until the first call, so an absent backend does not fail construction.
func NewEnergyClient(target string, opts Options, dialOpts ...grpc.DialOption) (*EnergyClient, error) {
	all := append([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, dialOpts...)

	conn, err := grpc.NewClient(target, all...)
	if err != nil {
		return nil, fmt.Errorf("adapter: energy client for %q: %w", target, err)
	}
	return &EnergyClient{base: newBase(opts), conn: conn}, nil
}

// Close releases the underlying connection
func (c *EnergyClient) Close() error {
	return c.conn.Close()
}

// GetEnergy returns consumption for buildingID. Unknown buildings come back
// from the backend as a record with status "Inconnu".
func (c *EnergyClient) GetEnergy(ctx context.Context, buildingID string) (domain.Energy, error) {
	if strings.TrimSpace(buildingID) == "" {
		return domain.Energy{}, ErrEmptyKey
	}

	return invoke(ctx, c.base, domain.BackendEnergy, func(ctx context.Context) (domain.Energy, error) {
		resp := energypb.EmptyResponse()
		if err := c.conn.Invoke(ctx, energypb.FullMethod, energypb.NewRequest(buildingID), resp); err != nil {
			return domain.Energy{}, err
		}

		decoded := energypb.DecodeResponse(resp)
		if decoded.Status == "" {
			return domain.UnknownEnergy(buildingID), nil
		}
		if decoded.BuildingID == "" {
			decoded.BuildingID = buildingID
		}

		return domain.Energy{
			BuildingID:     decoded.BuildingID,
			ConsumptionKWh: decoded.ConsumptionKWh,
			Status:         decoded.Status,
		}, nil
	})
}
