package energypb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/proto"
)

func TestRequestWireRoundTrip(t *testing.T) {
	raw, err := proto.Marshal(NewRequest("Batiment_A"))
	require.NoError(t, err)

	// field 1, wire type 2, length 10, "Batiment_A"
	assert.Equal(t, append([]byte{0x0a, 0x0a}, []byte("Batiment_A")...), raw)

	decoded := EmptyRequest()
	require.NoError(t, proto.Unmarshal(raw, decoded))
	assert.Equal(t, "Batiment_A", RequestBuildingID(decoded))
}

func TestResponseDecode(t *testing.T) {
	raw, err := proto.Marshal(NewResponse("Batiment_B", 450.0, "Surcharge"))
	require.NoError(t, err)

	decoded := EmptyResponse()
	require.NoError(t, proto.Unmarshal(raw, decoded))

	assert.Equal(t, Response{BuildingID: "Batiment_B", ConsumptionKWh: 450.0, Status: "Surcharge"}, DecodeResponse(decoded))
}

func TestFullMethod(t *testing.T) {
	assert.Equal(t, "/energy.EnergyService/GetEnergyData", FullMethod)
}
