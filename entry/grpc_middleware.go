package entry

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/peer"
	"google.golang.org/grpc/status"

	"github.com/stowhouse/server-auth/sig"
)

func GRPCServerLogging(logger *slog.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		// Check for an existing x-stow-request-id metadata value; generate
		// one if not found
		requestId := ""
		if values := metadata.ValueFromIncomingContext(ctx, sig.HeaderRequestId); len(values) > 0 {
			requestId = values[0]
		}
		if requestId == "" {
			requestId = uuid.NewString()
		}

		// Get the client IP
		remoteAddr := ""
		if p, ok := peer.FromContext(ctx); ok {
			remoteAddr = p.Addr.String()
		}

		// Prepare a logger with the relevant details of this request
		logger := logger.With(
			"requestId", requestId,
			"grpcMethod", info.FullMethod,
			"remoteAddr", remoteAddr,
		)
		logger.Debug("Handling request")

		// Handle the request, measuring how long it takes to execute
		start := time.Now()
		m, err := handler(context.WithValue(ctx, "logger", logger), req)
		elapsed := time.Since(start)
		elapsedMilliseconds := float64(elapsed.Nanoseconds()) / float64(1000000)

		// Write a final log message indicating that the request is finished,
		// and noting any error that resulted
		logger = logger.With("elapsedMilliseconds", elapsedMilliseconds)
		if err != nil {
			logger = logger.With("error", err)
			if grpcErr, ok := status.FromError(err); ok {
				logger = logger.With("grpcStatusCode", grpcErr.Code().String())
			}
			logger.Error("Request finished with error")
		} else {
			logger.Info("Request finished OK")
		}

		// Pass through the original result value and error unchanged
		return m, err
	}
}

// GRPCRequireSignature applies the STOW scheme to unary gRPC calls: the
// client signs the canonical string built from the literal verb POST (every
// gRPC call travels as an HTTP/2 POST), its x-stow-* metadata, and the full
// method name as the resource, then presents the result in 'authorization'
// metadata. Only vendor-prefixed metadata participates in the signature;
// transport-supplied metadata like content-type varies between client and
// server and is deliberately left out.
func GRPCRequireSignature(authenticator *sig.Authenticator) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		header := make(http.Header)
		authorization := ""
		if md, ok := metadata.FromIncomingContext(ctx); ok {
			for name, values := range md {
				if name == "authorization" && len(values) > 0 {
					authorization = values[0]
					continue
				}
				if strings.HasPrefix(name, sig.HeaderPrefix) {
					for _, value := range values {
						header.Add(name, value)
					}
				}
			}
		}

		keyID, signature, ok := sig.ParseAuthHeader(authorization)
		if !ok {
			return nil, status.Error(codes.Unauthenticated, sig.ErrInvalidAuthentication.Error())
		}
		if err := authenticator.Authenticate(ctx, http.MethodPost, header, info.FullMethod, keyID, signature); err != nil {
			return nil, status.Error(codes.Unauthenticated, sig.ErrInvalidAuthentication.Error())
		}
		return handler(ctx, req)
	}
}

func Logger(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value("logger").(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}
