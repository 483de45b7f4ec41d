package entry

import (
	"context"
	"fmt"
	"net"

	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
)

// RunGRPCServer blocks while a gRPC server application runs
func RunGRPCServer(a Application, s *grpc.Server, bindAddr string, listenPort uint16) {
	// Bind to the configured port and begin listening for TCP connections
	addr := fmt.Sprintf("%s:%d", bindAddr, listenPort)
	listenConfig := net.ListenConfig{}
	lis, err := listenConfig.Listen(a.Context(), "tcp", addr)
	if err != nil {
		a.Fail(fmt.Sprintf("Failed to listen on %s", addr), err)
	}

	// Kick off a goroutine which calls s.Serve
	a.Log().Info("Now listening", "bindAddr", bindAddr, "listenPort", listenPort)
	var wg errgroup.Group
	wg.Go(func() error { return s.Serve(lis) })

	// Block, running the server all the while, until our application-level
	// context is done
	<-a.Context().Done()
	cancelErr := context.Cause(a.Context())
	if cancelErr != nil && cancelErr != a.Context().Err() {
		a.Log().Error("Closing server due to application error", "error", cancelErr)
	} else {
		a.Log().Info("Application is shutting down cleanly; closing server")
	}
	s.GracefulStop()

	// Block until s.Serve returns so we can ensure that the server is closed
	if err := wg.Wait(); err != nil {
		a.Fail("Error running server", err)
	}
	a.Log().Info("Server closed")
}
