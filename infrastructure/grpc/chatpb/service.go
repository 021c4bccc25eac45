// Package chatpb declares the chat gRPC service.
// A session is one bidirectional stream per connection; both directions carry
// wire envelopes as google.protobuf.Struct messages, so the JSON and gRPC
// transports share a single frame format.
package chatpb

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	ServiceName                = "chat.v1.ChatService"
	ChatService_Session_Method = "/" + ServiceName + "/Session"
)

type ChatService_SessionServer = grpc.BidiStreamingServer[structpb.Struct, structpb.Struct]
type ChatService_SessionClient = grpc.BidiStreamingClient[structpb.Struct, structpb.Struct]

type ChatServiceServer interface {
	Session(ChatService_SessionServer) error
	mustEmbedUnimplementedChatServiceServer()
}

// UnimplementedChatServiceServer must be embedded by implementations.
type UnimplementedChatServiceServer struct{}

func (UnimplementedChatServiceServer) Session(ChatService_SessionServer) error {
	return status.Error(codes.Unimplemented, "method Session not implemented")
}
func (UnimplementedChatServiceServer) mustEmbedUnimplementedChatServiceServer() {}

func RegisterChatServiceServer(s grpc.ServiceRegistrar, srv ChatServiceServer) {
	s.RegisterService(&ChatService_ServiceDesc, srv)
}

func _ChatService_Session_Handler(srv any, stream grpc.ServerStream) error {
	return srv.(ChatServiceServer).Session(&grpc.GenericServerStream[structpb.Struct, structpb.Struct]{ServerStream: stream})
}

var ChatService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ChatServiceServer)(nil),
	Methods:     []grpc.MethodDesc{},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "Session",
			Handler:       _ChatService_Session_Handler,
			ServerStreams: true,
			ClientStreams: true,
		},
	},
}

type ChatServiceClient interface {
	Session(ctx context.Context, opts ...grpc.CallOption) (ChatService_SessionClient, error)
}

type chatServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewChatServiceClient(cc grpc.ClientConnInterface) ChatServiceClient {
	return &chatServiceClient{cc}
}

func (c *chatServiceClient) Session(ctx context.Context, opts ...grpc.CallOption) (ChatService_SessionClient, error) {
	stream, err := c.cc.NewStream(ctx, &ChatService_ServiceDesc.Streams[0], ChatService_Session_Method, opts...)
	if err != nil {
		return nil, err
	}
	return &grpc.GenericClientStream[structpb.Struct, structpb.Struct]{ClientStream: stream}, nil
}
