// Package energypb describes the energy backend's protobuf contract at runtime.
//
// The backend publishes energy.proto:
//
//	service EnergyService {
//	  rpc GetEnergyData (EnergyRequest) returns (EnergyResponse);
//	}
//	message EnergyRequest  { string building_id = 1; }
//	message EnergyResponse { string building_id = 1; double consumption_kwh = 2; string status = 3; }
//
// The descriptor is built in code and messages are dynamicpb values, so no
// protoc step is needed to talk to the service.
package energypb

import (
	"fmt"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/reflect/protoregistry"
	"google.golang.org/protobuf/types/descriptorpb"
	"google.golang.org/protobuf/types/dynamicpb"
)

const (
	// ServiceName is the fully qualified gRPC service name
	ServiceName = "energy.EnergyService"
	// MethodName is the unary lookup method
	MethodName = "GetEnergyData"
	// FullMethod is the path used on the wire
	FullMethod = "/" + ServiceName + "/" + MethodName
)

var (
	requestDesc  protoreflect.MessageDescriptor
	responseDesc protoreflect.MessageDescriptor
)

func init() {
	file, err := buildFile()
	if err != nil {
		panic(fmt.Sprintf("energypb: invalid descriptor: %v", err))
	}
	requestDesc = file.Messages().ByName("EnergyRequest")
	responseDesc = file.Messages().ByName("EnergyResponse")
}

func buildFile() (protoreflect.FileDescriptor, error) {
	optional := descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL.Enum()
	str := descriptorpb.FieldDescriptorProto_TYPE_STRING.Enum()
	double := descriptorpb.FieldDescriptorProto_TYPE_DOUBLE.Enum()

	fd := &descriptorpb.FileDescriptorProto{
		Name:    proto.String("energy.proto"),
		Package: proto.String("energy"),
		Syntax:  proto.String("proto3"),
		MessageType: []*descriptorpb.DescriptorProto{
			{
				Name: proto.String("EnergyRequest"),
				Field: []*descriptorpb.FieldDescriptorProto{
					{Name: proto.String("building_id"), JsonName: proto.String("buildingId"), Number: proto.Int32(1), Label: optional, Type: str},
				},
			},
			{
				Name: proto.String("EnergyResponse"),
				Field: []*descriptorpb.FieldDescriptorProto{
					{Name: proto.String("building_id"), JsonName: proto.String("buildingId"), Number: proto.Int32(1), Label: optional, Type: str},
					{Name: proto.String("consumption_kwh"), JsonName: proto.String("consumptionKwh"), Number: proto.Int32(2), Label: optional, Type: double},
					{Name: proto.String("status"), JsonName: proto.String("status"), Number: proto.Int32(3), Label: optional, Type: str},
				},
			},
		},
		Service: []*descriptorpb.ServiceDescriptorProto{
			{
				Name: proto.String("EnergyService"),
				Method: []*descriptorpb.MethodDescriptorProto{
					{
						Name:       proto.String(MethodName),
						InputType:  proto.String(".energy.EnergyRequest"),
						OutputType: proto.String(".energy.EnergyResponse"),
					},
				},
			},
		},
	}

	return protodesc.NewFile(fd, new(protoregistry.Files))
}

// NewRequest builds an EnergyRequest for the given building
func NewRequest(buildingID string) *dynamicpb.Message {
	msg := dynamicpb.NewMessage(requestDesc)
	msg.Set(requestDesc.Fields().ByName("building_id"), protoreflect.ValueOfString(buildingID))
	return msg
}

// EmptyRequest returns a blank EnergyRequest to decode into
func EmptyRequest() *dynamicpb.Message {
	return dynamicpb.NewMessage(requestDesc)
}

// RequestBuildingID reads building_id from an EnergyRequest
func RequestBuildingID(msg *dynamicpb.Message) string {
	return msg.Get(requestDesc.Fields().ByName("building_id")).String()
}

// NewResponse builds an EnergyResponse
func NewResponse(buildingID string, consumptionKWh float64, status string) *dynamicpb.Message {
	fields := responseDesc.Fields()
	msg := dynamicpb.NewMessage(responseDesc)
	msg.Set(fields.ByName("building_id"), protoreflect.ValueOfString(buildingID))
	msg.Set(fields.ByName("consumption_kwh"), protoreflect.ValueOfFloat64(consumptionKWh))
	msg.Set(fields.ByName("status"), protoreflect.ValueOfString(status))
	return msg
}

// EmptyResponse returns a blank EnergyResponse to decode into
func EmptyResponse() *dynamicpb.Message {
	return dynamicpb.NewMessage(responseDesc)
}

// Response is the decoded form of an EnergyResponse
type Response struct {
	BuildingID     string
	ConsumptionKWh float64
	Status         string
}

// DecodeResponse reads the fields of an EnergyResponse
func DecodeResponse(msg *dynamicpb.Message) Response {
	fields := responseDesc.Fields()
	return Response{
		BuildingID:     msg.Get(fields.ByName("building_id")).String(),
		ConsumptionKWh: msg.Get(fields.ByName("consumption_kwh")).Float(),
		Status:         msg.Get(fields.ByName("status")).String(),
	}
}
