package workers

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"time"

	"google.golang.org/grpc"
)

// GRPCServerWorker serves gRPC until the context ends. Open sessions get
// shutdownTimeout to finish before they are cut.
type GRPCServerWorker struct {
	log             *slog.Logger
	server          *grpc.Server
	address         string
	shutdownTimeout time.Duration
}

func NewGRPCServerWorker(log *slog.Logger, server *grpc.Server, address string,
	shutdownTimeout time.Duration) *GRPCServerWorker {
	return &GRPCServerWorker{
		log:             log,
		server:          server,
		address:         address,
		shutdownTimeout: shutdownTimeout,
	}
}

func (w *GRPCServerWorker) Run(ctx context.Context) error {
	listener, err := net.Listen("tcp", w.address)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", w.address, err)
	}

	errChan := make(chan error, 1)
	go func() {
		w.log.Info("Starting gRPC server", "address", w.address)
		errChan <- w.server.Serve(listener)
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
	}

	stopped := make(chan struct{})
	go func() {
		w.server.GracefulStop()
		close(stopped)
	}()
	select {
	case <-stopped:
	case <-time.After(w.shutdownTimeout):
		w.log.Warn("gRPC graceful stop timed out, forcing")
		w.server.Stop()
	}
	<-errChan
	w.log.Info("gRPC server stopped")
	return nil
}
