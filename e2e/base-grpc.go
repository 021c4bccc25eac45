package e2e

import (
	"chat-rooms/domain/event"
	"chat-rooms/infrastructure/grpc/client"
	"chat-rooms/infrastructure/wire"
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/gookit/color"
	"github.com/stretchr/testify/suite"
	"google.golang.org/grpc"
	"google.golang.org/grpc/status"
)

type BaseGrpcSuite struct {
	suite.Suite
	Config Config
}

// SetupSuite loads the environment configuration before running tests
func (s *BaseGrpcSuite) SetupSuite() {
	var err error
	s.Config, err = LoadConfig()
	s.Require().NoError(err)
	if s.Config.GRPCAddr == "" || s.Config.HTTPAddr == "" {
		s.T().Skip("E2E_GRPC_ADDR and E2E_HTTP_ADDR are not set")
	}
}

func (s *BaseGrpcSuite) header(t *testing.T, name string) {
	header := fmt.Sprintf("  ====== %s ======", name)
	if s.Config.Colours {
		header = color.New(color.BgBlack, color.FgGreen).Render(header)
	}
	t.Log(header)
}

// Session opens a chat session, logging how long the stream lived.
func (s *BaseGrpcSuite) Session(t *testing.T, name string) *client.ChatClient {
	s.header(t, name)

	c, err := client.Dial(context.Background(), s.Config.GRPCAddr,
		grpc.WithStreamInterceptor(func(ctx context.Context, desc *grpc.StreamDesc, cc *grpc.ClientConn,
			method string, streamer grpc.Streamer, opts ...grpc.CallOption) (grpc.ClientStream, error) {
			start := time.Now()
			stream, err := streamer(ctx, desc, cc, method, opts...)
			t.Logf("GRPC %s [%s] opened in %v", method, status.Code(err), time.Since(start))
			return stream, err
		}),
	)
	s.Require().NoError(err, "Failed to connect to gRPC server at "+s.Config.GRPCAddr)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

// Next waits for the next event of the session.
func (s *BaseGrpcSuite) Next(c *client.ChatClient) event.Event {
	type result struct {
		e   event.Event
		err error
	}
	ch := make(chan result, 1)
	go func() {
		e, err := c.Recv()
		ch <- result{e, err}
	}()

	select {
	case r := <-ch:
		s.Require().NoError(r.err)
		if s.Config.DebugJSON {
			data, _ := wire.EncodeEvent(r.e)
			s.T().Log(string(data))
		}
		return r.e
	case <-time.After(5 * time.Second):
		s.Require().FailNow("no event received in time")
		return nil
	}
}
