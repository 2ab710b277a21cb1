// This file abstracts the feed socket. The gorilla connection reads in
// a pump goroutine so a session can poll it without blocking.

package feed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Transport receive conditions. Receive never blocks; it reports one
// of these instead.
var (
	// ErrWouldBlock means no message has arrived yet on a live socket.
	ErrWouldBlock = errors.New("no message ready")
	// ErrNoData means the socket is spent and nothing more will arrive.
	ErrNoData = errors.New("no data available")
	// ErrClosed means the peer completed a close handshake.
	ErrClosed = errors.New("connection closed by peer")
)

// Transport is a message-oriented connection to the feed endpoint. A
// session owns its transport exclusively.
type Transport interface {
	// Send transmits one binary message.
	Send(data []byte) error
	// Receive returns the next buffered inbound message, or one of the
	// receive conditions, without blocking.
	Receive() ([]byte, error)
	// Close tears the connection down.
	Close() error
}

// sendTimeout bounds a single socket write.
const sendTimeout = 10 * time.Second

// receiveQueueSize bounds how many inbound messages the pump buffers
// between polls. A burst beyond this blocks the pump, not the session.
const receiveQueueSize = 64

// wsTransport adapts a gorilla connection to the Transport interface.
type wsTransport struct {
	conn  *websocket.Conn
	queue chan []byte
	stop  chan struct{}
	once  sync.Once

	// dead is closed by the pump when the socket stops producing;
	// terminal holds why and is valid once dead is closed.
	dead     chan struct{}
	terminal error
	reported bool
}

// Dial connects to a feed endpoint and starts the read pump.
func Dial(ctx context.Context, url string) (Transport, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", url, err)
	}
	t := &wsTransport{
		conn:  conn,
		queue: make(chan []byte, receiveQueueSize),
		stop:  make(chan struct{}),
		dead:  make(chan struct{}),
	}
	go t.pump()
	return t, nil
}

// pump moves inbound messages from the socket to the queue until the
// connection dies, then records why.
func (t *wsTransport) pump() {
	for {
		kind, data, err := t.conn.ReadMessage()
		if err != nil {
			t.terminal = classify(err)
			close(t.dead)
			return
		}
		if kind != websocket.BinaryMessage {
			continue // the feed speaks binary frames only
		}
		select {
		case t.queue <- data:
		case <-t.stop:
			return
		}
	}
}

// classify maps a pump-stopping read error to a receive condition.
func classify(err error) error {
	var closeErr *websocket.CloseError
	switch {
	case errors.As(err, &closeErr):
		return ErrClosed
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return ErrNoData
	default:
		return err
	}
}

// Send implements Transport.
func (t *wsTransport) Send(data []byte) error {
	if err := t.conn.SetWriteDeadline(time.Now().Add(sendTimeout)); err != nil {
		return err
	}
	return t.conn.WriteMessage(websocket.BinaryMessage, data)
}

// Receive implements Transport. Messages the pump queued before the
// connection died are delivered before any terminal condition. A dead
// socket reports its cause once, then settles on ErrNoData.
func (t *wsTransport) Receive() ([]byte, error) {
	select {
	case data := <-t.queue:
		return data, nil
	default:
	}
	select {
	case <-t.dead:
	default:
		return nil, ErrWouldBlock
	}
	// The pump has stopped; drain anything that raced the death
	// notice before reporting it.
	select {
	case data := <-t.queue:
		return data, nil
	default:
	}
	err := t.terminal
	if err != ErrClosed && err != ErrNoData {
		if t.reported {
			return nil, ErrNoData
		}
		t.reported = true
	}
	return nil, err
}

// Close implements Transport.
func (t *wsTransport) Close() error {
	t.once.Do(func() { close(t.stop) })
	return t.conn.Close()
}
