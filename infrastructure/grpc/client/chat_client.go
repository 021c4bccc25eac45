package client

import (
	"chat-rooms/domain"
	"chat-rooms/domain/event"
	"chat-rooms/infrastructure/grpc/chatpb"
	"chat-rooms/infrastructure/wire"
	"context"
	"sync"
	"sync/atomic"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// ChatClient holds one session with a chat server.
// Send may be called from any goroutine; Recv from a single one.
type ChatClient struct {
	conn    *grpc.ClientConn
	stream  chatpb.ChatService_SessionClient
	sendMu  sync.Mutex
	nextAck atomic.Int64
}

// Dial opens the session right away, so a bad address fails here.
func Dial(ctx context.Context, address string, opts ...grpc.DialOption) (*ChatClient, error) {
	opts = append([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, opts...)
	conn, err := grpc.NewClient(address, opts...)
	if err != nil {
		return nil, err
	}

	stream, err := chatpb.NewChatServiceClient(conn).Session(ctx)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	return &ChatClient{conn: conn, stream: stream}, nil
}

// Send returns the ack id the server will answer with.
func (c *ChatClient) Send(cmd domain.Command) (int64, error) {
	ack := c.nextAck.Add(1)
	data, err := wire.EncodeCommand(cmd, &ack)
	if err != nil {
		return 0, err
	}
	frame, err := wire.ToStruct(data)
	if err != nil {
		return 0, err
	}

	c.sendMu.Lock()
	defer c.sendMu.Unlock()
	return ack, c.stream.Send(frame)
}

// Recv blocks until the next event; io.EOF means the server ended the session.
func (c *ChatClient) Recv() (event.Event, error) {
	frame, err := c.stream.Recv()
	if err != nil {
		return nil, err
	}
	data, err := wire.FromStruct(frame)
	if err != nil {
		return nil, err
	}
	return wire.DecodeEvent(data)
}

func (c *ChatClient) Close() error {
	c.sendMu.Lock()
	_ = c.stream.CloseSend()
	c.sendMu.Unlock()
	return c.conn.Close()
}
