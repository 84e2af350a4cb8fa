package in

import (
	"context"

	"google.golang.org/grpc"
)

// unaryMethod builds a grpc.MethodDesc for one RPC, the hand-written
// equivalent of what protoc-gen-go-grpc emits per method when a generated
// server stub exists. Since spec.md §1 carves transport/codec generation
// out of scope, every facade registers its methods this way instead.
func unaryMethod[S any, Req any](name string, call func(S, context.Context, Req) (any, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			var req Req

			if err := dec(&req); err != nil {
				return nil, err
			}

			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: name}

			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(S), ctx, req.(Req))
			}

			if interceptor != nil {
				return interceptor(ctx, req, info, handler)
			}

			return handler(ctx, req)
		},
	}
}
