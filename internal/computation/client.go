package computation

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// Client talks to a compute Server.
type Client struct {
	addr string
	conn *grpc.ClientConn
}

// Dial does not wait for the connection, the first call does.
func Dial(addr string, opts ...grpc.DialOption) (*Client, error) {
	opts = append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	}, opts...)
	conn, err := grpc.NewClient(addr, opts...)
	if err != nil {
		return nil, err
	}
	return &Client{addr: addr, conn: conn}, nil
}

func (c *Client) Addr() string { return c.addr }

func (c *Client) Evaluate(ctx context.Context, postfix string, strict bool) (float64, error) {
	resp := new(wrapperspb.DoubleValue)
	if err := c.conn.Invoke(ctx, evaluateMethod, NewEvaluateRequest(postfix, strict), resp); err != nil {
		return 0, err
	}
	return resp.GetValue(), nil
}

func (c *Client) FreeProcess(ctx context.Context) (int, error) {
	resp := new(wrapperspb.Int32Value)
	if err := c.conn.Invoke(ctx, freeProcessMethod, &emptypb.Empty{}, resp); err != nil {
		return 0, err
	}
	return int(resp.GetValue()), nil
}

func (c *Client) Close() error {
	return c.conn.Close()
}
