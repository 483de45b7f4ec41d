package entry

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/stowhouse/server-auth/credentials"
	"github.com/stowhouse/server-auth/sig"
)

func Test_GRPCRequireSignature(t *testing.T) {
	authenticator := sig.NewAuthenticator(credentials.NewStatic("stow-admin", "super-secret"))
	interceptor := GRPCRequireSignature(authenticator)
	info := &grpc.UnaryServerInfo{FullMethod: "/stow.Buckets/Create"}
	handler := func(ctx context.Context, req any) (any, error) {
		return "handled", nil
	}

	sign := func(md metadata.MD) metadata.MD {
		header := make(http.Header)
		for name, values := range md {
			for _, value := range values {
				header.Add(name, value)
			}
		}
		credential := &credentials.Credential{KeyID: "stow-admin", Secret: "super-secret"}
		md = md.Copy()
		md.Set("authorization", sig.BuildAuthHeader(http.MethodPost, header, info.FullMethod, credential))
		return md
	}

	t.Run("a correctly signed call reaches the handler", func(t *testing.T) {
		md := sign(metadata.Pairs(sig.HeaderDate, "Tue, 27 Mar 2007 21:20:26 +0000"))
		ctx := metadata.NewIncomingContext(context.Background(), md)
		m, err := interceptor(ctx, nil, info, handler)
		assert.NoError(t, err)
		assert.Equal(t, "handled", m)
	})

	t.Run("a call without metadata is rejected", func(t *testing.T) {
		m, err := interceptor(context.Background(), nil, info, handler)
		assert.Nil(t, m)
		assert.Equal(t, codes.Unauthenticated, status.Code(err))
	})

	t.Run("a tampered vendor header is rejected", func(t *testing.T) {
		md := sign(metadata.Pairs(sig.HeaderDate, "Tue, 27 Mar 2007 21:20:26 +0000"))
		md.Set(sig.HeaderDate, "Tue, 27 Mar 2007 21:20:27 +0000")
		ctx := metadata.NewIncomingContext(context.Background(), md)
		m, err := interceptor(ctx, nil, info, handler)
		assert.Nil(t, m)
		assert.Equal(t, codes.Unauthenticated, status.Code(err))
	})
}
