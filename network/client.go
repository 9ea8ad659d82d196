package network

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/automoto/hookcore/shared/messages"
	"github.com/coder/websocket"
	"github.com/leap-fish/necs/esync"
	"github.com/leap-fish/necs/router"
	"github.com/leap-fish/necs/transports"
	"github.com/sirupsen/logrus"
)

// ClientState is where a Client is in the connect and join handshake.
type ClientState int

const (
	StateDisconnected ClientState = iota
	StateConnecting
	StateConnected
	StateJoinedGame
	StateError
)

func (s ClientState) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateJoinedGame:
		return "joined"
	case StateError:
		return "error"
	}
	return fmt.Sprintf("ClientState(%d)", int(s))
}

var (
	ErrNotConnected   = errors.New("not connected")
	ErrConnectionLost = errors.New("connection lost")
)

// Client is a headless connection to a hookcore server. Router callbacks run
// on necs goroutines, so everything below mu is guarded by it.
type Client struct {
	log logrus.FieldLogger

	mu       sync.Mutex
	state    ClientState
	err      error
	session  messages.JoinAccepted
	conn     *websocket.Conn
	joined   chan struct{}
	settled  bool
	snapshot *esync.WorldSnapshot
	acks     []messages.InputAck
}

func NewClient(log logrus.FieldLogger) *Client {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Client{
		log:    log,
		joined: make(chan struct{}),
	}
}

// Connect dials address in the background. Once the socket is up the client
// asks to join with the given version and name; WaitJoined reports the answer.
func (c *Client) Connect(address, version, playerName string) {
	c.mu.Lock()
	c.state = StateConnecting
	c.err = nil
	c.mu.Unlock()

	router.OnConnect(func(_ *router.NetworkClient) {
		c.connected(messages.JoinRequest{Version: version, PlayerName: playerName})
	})
	router.On(func(_ *router.NetworkClient, msg messages.JoinAccepted) { c.accepted(msg) })
	router.On(func(_ *router.NetworkClient, msg messages.JoinRejected) {
		c.fail(fmt.Errorf("join rejected: %s", msg.Reason))
	})
	router.On(func(_ *router.NetworkClient, snap esync.WorldSnapshot) { c.received(snap) })
	router.On(func(_ *router.NetworkClient, ack messages.InputAck) { c.acked(ack) })
	router.OnDisconnect(func(_ *router.NetworkClient, err error) { c.disconnected(err) })
	router.OnError(func(_ *router.NetworkClient, err error) {
		c.log.Errorf("Client error: %v", err)
	})

	go func() {
		transport := transports.NewWsClientTransport("ws://" + address)
		err := transport.Start(func(conn *websocket.Conn) {
			c.mu.Lock()
			c.conn = conn
			c.mu.Unlock()
		})
		if err != nil {
			c.fail(fmt.Errorf("connection failed: %w", err))
		}
	}()
}

// WaitJoined blocks until the server accepts or rejects the join, the
// connection fails, or ctx is done.
func (c *Client) WaitJoined(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-c.joined:
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == StateJoinedGame {
		return nil
	}
	if c.err != nil {
		return c.err
	}
	return ErrConnectionLost
}

func (c *Client) Disconnect() {
	c.mu.Lock()
	conn := c.conn
	c.conn = nil
	c.state = StateDisconnected
	c.settle()
	c.mu.Unlock()

	if conn != nil {
		_ = conn.CloseNow()
	}
	router.ResetRouter()
}

func (c *Client) State() ClientState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Err returns why the client stopped playing, or nil while it is joined.
func (c *Client) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch {
	case c.err != nil:
		return c.err
	case c.state == StateJoinedGame:
		return nil
	}
	return ErrConnectionLost
}

// Session returns what the server sent when it accepted the join.
func (c *Client) Session() messages.JoinAccepted {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session
}

// LatestSnapshot returns the newest world snapshot received since the last
// call, or nil.
func (c *Client) LatestSnapshot() *esync.WorldSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	snap := c.snapshot
	c.snapshot = nil
	return snap
}

// DrainAcks returns the input acknowledgements received since the last call.
func (c *Client) DrainAcks() []messages.InputAck {
	c.mu.Lock()
	defer c.mu.Unlock()
	acks := c.acks
	c.acks = nil
	return acks
}

func (c *Client) SendMessage(msg any) error {
	c.mu.Lock()
	conn := c.conn
	c.mu.Unlock()
	if conn == nil {
		return ErrNotConnected
	}

	payload, err := router.Serialize(msg)
	if err != nil {
		return fmt.Errorf("serialize %T: %w", msg, err)
	}
	return conn.Write(context.Background(), websocket.MessageBinary, payload)
}

func (c *Client) connected(req messages.JoinRequest) {
	c.log.Info("Connected to server")
	c.mu.Lock()
	c.state = StateConnected
	c.mu.Unlock()

	if err := c.SendMessage(req); err != nil {
		c.fail(fmt.Errorf("send join request: %w", err))
	}
}

func (c *Client) accepted(msg messages.JoinAccepted) {
	c.log.Infof("Joined %s: character=%d level=%s tickRate=%d tick=%d",
		msg.ServerName, msg.CharacterID, msg.Level, msg.TickRate, msg.Tick)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.session = msg
	c.state = StateJoinedGame
	c.settle()
}

func (c *Client) received(snap esync.WorldSnapshot) {
	c.mu.Lock()
	c.snapshot = &snap
	c.mu.Unlock()
}

func (c *Client) acked(ack messages.InputAck) {
	c.mu.Lock()
	c.acks = append(c.acks, ack)
	c.mu.Unlock()
}

func (c *Client) disconnected(err error) {
	c.log.Infof("Disconnected: %v", err)
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateError {
		c.state = StateDisconnected
	}
	c.conn = nil
	c.settle()
}

func (c *Client) fail(err error) {
	c.log.Warn(err)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = StateError
	c.err = err
	c.settle()
}

// settle wakes WaitJoined. Callers hold mu.
func (c *Client) settle() {
	if !c.settled {
		c.settled = true
		close(c.joined)
	}
}
