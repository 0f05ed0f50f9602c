package energypb

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/dynamicpb"
)

// EnergyServer is implemented by anything serving EnergyService
type EnergyServer interface {
	GetEnergyData(ctx context.Context, buildingID string) (Response, error)
}

// RegisterEnergyServer attaches srv to a gRPC server under ServiceName
func RegisterEnergyServer(s grpc.ServiceRegistrar, srv EnergyServer) {
	s.RegisterService(&serviceDesc, srv)
}

var serviceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*EnergyServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: MethodName,
			Handler:    getEnergyDataHandler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "energy.proto",
}

func getEnergyDataHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := EmptyRequest()
	if err := dec(in); err != nil {
		return nil, err
	}

	handle := func(ctx context.Context, req interface{}) (interface{}, error) {
		resp, err := srv.(EnergyServer).GetEnergyData(ctx, RequestBuildingID(req.(*dynamicpb.Message)))
		if err != nil {
			return nil, err
		}
		return NewResponse(resp.BuildingID, resp.ConsumptionKWh, resp.Status), nil
	}

	if interceptor == nil {
		return handle(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: FullMethod,
	}
	return interceptor(ctx, in, info, handle)
}
