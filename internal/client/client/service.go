package client

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ReplicationServiceName is the gRPC service spoken by the sync endpoint.
// Requests and responses are google.protobuf.Struct messages:
//
//	Push: {"docs": [doc...]}           -> {"accepted": n}
//	Pull: {"since": n}                 -> {"docs": [doc...], "last_seq": n}
//	doc:  {"id": s, "seq": n, "props": {...}}
const ReplicationServiceName = "simpletemp.sync.v1.Replication"

const (
	pushMethod = "/" + ReplicationServiceName + "/Push"
	pullMethod = "/" + ReplicationServiceName + "/Pull"
)

// ReplicationServer is the server side of the replication service.
type ReplicationServer interface {
	Push(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	Pull(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
}

// RegisterReplicationServer exposes srv on s.
func RegisterReplicationServer(s grpc.ServiceRegistrar, srv ReplicationServer) {
	s.RegisterService(&replicationServiceDesc, srv)
}

var replicationServiceDesc = grpc.ServiceDesc{
	ServiceName: ReplicationServiceName,
	HandlerType: (*ReplicationServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Push", Handler: pushHandler},
		{MethodName: "Pull", Handler: pullHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "simpletemp/sync/v1/replication.proto",
}

func pushHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ReplicationServer).Push(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: pushMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ReplicationServer).Push(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func pullHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ReplicationServer).Pull(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: pullMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ReplicationServer).Pull(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}
