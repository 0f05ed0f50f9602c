package adapter

import (
	"context"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/test/bufconn"

	"github.com/smartcity/gateway/internal/domain"
	"github.com/smartcity/gateway/internal/mockbackend"
)

func newEnergyClient(t *testing.T) (*EnergyClient, *grpc.Server) {
	t.Helper()

	lis := bufconn.Listen(1 << 20)
	srv := mockbackend.NewEnergyServer(testOptions().Logger)
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	client, err := NewEnergyClient("passthrough:///bufnet", testOptions(),
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return client, srv
}

func TestEnergyClient_KnownBuilding(t *testing.T) {
	client, _ := newEnergyClient(t)

	got, err := client.GetEnergy(context.Background(), "Batiment_A")
	require.NoError(t, err)
	assert.Equal(t, domain.Energy{BuildingID: "Batiment_A", ConsumptionKWh: 150.5, Status: "Normal"}, got)
}

func TestEnergyClient_UnknownBuildingIsSentinel(t *testing.T) {
	client, _ := newEnergyClient(t)

	got, err := client.GetEnergy(context.Background(), "Batiment_Z")
	require.NoError(t, err)
	assert.Equal(t, domain.UnknownEnergy("Batiment_Z"), got)
}

func TestEnergyClient_ServerGone(t *testing.T) {
	client, srv := newEnergyClient(t)
	srv.Stop()

	_, err := client.GetEnergy(context.Background(), "Batiment_A")
	requireKind(t, err, domain.KindUnreachable)
}

func TestEnergyClient_EmptyBuilding(t *testing.T) {
	client, _ := newEnergyClient(t)

	_, err := client.GetEnergy(context.Background(), "")
	assert.ErrorIs(t, err, ErrEmptyKey)
}
