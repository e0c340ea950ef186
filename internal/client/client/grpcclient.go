package client

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/simpletemp/internal/client/docstore"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

// AppIDHeaderName carries the hashed app id on every call.
const AppIDHeaderName = "x-simpletemp-app"

type GRPCClient struct {
	target string
	conn   *grpc.ClientConn
	cc     grpc.ClientConnInterface
	appID  func() (string, error)
	dial   []grpc.DialOption
}

type Option func(*GRPCClient)

// WithAppID sets the source of the hashed app id sent with each call. Calls
// made while fn fails go out without the header.
func WithAppID(fn func() (string, error)) Option {
	return func(c *GRPCClient) { c.appID = fn }
}

// WithDialOptions appends raw dial options, e.g. a bufconn dialer in tests.
func WithDialOptions(opts ...grpc.DialOption) Option {
	return func(c *GRPCClient) { c.dial = append(c.dial, opts...) }
}

// NewGRPCClient prepares a client for target. No connection is made until
// the first call.
func NewGRPCClient(target string, opts ...Option) (*GRPCClient, error) {
	c := &GRPCClient{target: target}
	for _, o := range opts {
		o(c)
	}

	dial := append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(c.appIDInterceptor),
	}, c.dial...)

	conn, err := grpc.NewClient(target, dial...)
	if err != nil {
		return nil, fmt.Errorf("grpc client error: %w", err)
	}
	c.conn = conn
	c.cc = conn
	return c, nil
}

func withAppID(ctx context.Context, id string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Set(AppIDHeaderName, id)
	return metadata.NewOutgoingContext(ctx, md)
}

func (c *GRPCClient) appIDInterceptor(
	ctx context.Context,
	method string,
	req, reply any,
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	if c.appID != nil {
		if id, err := c.appID(); err == nil && id != "" {
			ctx = withAppID(ctx, id)
		}
	}
	return invoker(ctx, method, req, reply, cc, opts...)
}

func (c *GRPCClient) Push(ctx context.Context, docs []docstore.Document) (int, error) {
	list, err := EncodeDocs(docs)
	if err != nil {
		return 0, fmt.Errorf("encode error: %w", err)
	}
	req, err := structpb.NewStruct(map[string]any{"docs": list})
	if err != nil {
		return 0, fmt.Errorf("encode error: %w", err)
	}

	resp := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, pushMethod, req, resp); err != nil {
		return 0, c.mapError(err)
	}

	accepted, ok := resp.GetFields()["accepted"]
	if !ok {
		return 0, fmt.Errorf("%w: no accepted count", ErrBadResponse)
	}
	return int(accepted.GetNumberValue()), nil
}

func (c *GRPCClient) Pull(ctx context.Context, since int64) ([]docstore.Document, int64, error) {
	req, err := structpb.NewStruct(map[string]any{"since": float64(since)})
	if err != nil {
		return nil, 0, fmt.Errorf("encode error: %w", err)
	}

	resp := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, pullMethod, req, resp); err != nil {
		return nil, 0, c.mapError(err)
	}

	fields := resp.GetFields()
	docs, err := DecodeDocs(fields["docs"])
	if err != nil {
		return nil, 0, err
	}
	last := since
	if v, ok := fields["last_seq"]; ok {
		last = int64(v.GetNumberValue())
	}
	return docs, last, nil
}

func (c *GRPCClient) Close() error {
	if c.conn == nil {
		return nil
	}
	return c.conn.Close()
}

func (c *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, _ := status.FromError(err)
	switch st.Code() {
	case codes.Unauthenticated, codes.PermissionDenied:
		return ErrUnauthorized
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}
