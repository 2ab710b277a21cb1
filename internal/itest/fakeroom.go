// This file provides an in-process fake feed endpoint for integration
// tests. It runs the certificate handshake and answers heartbeats like
// a live room would.

package itest

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/klauspost/compress/zlib"

	"danwatch/internal/core/protocol/packet"
)

// FakeRoom is a local stand-in for a room feed endpoint. Every
// connection must open with a certificate; after acknowledging it the
// room hands the connection to the serve callback.
type FakeRoom struct {
	server   *httptest.Server
	upgrader websocket.Upgrader
	serve    func(n int, conn *websocket.Conn)

	mu         sync.Mutex
	handshakes int
	violations []string
}

// NewFakeRoom starts a fake room. serve receives the zero-based
// session number and the open connection once the handshake is done.
func NewFakeRoom(serve func(n int, conn *websocket.Conn)) *FakeRoom {
	f := &FakeRoom{serve: serve}
	f.server = httptest.NewServer(http.HandlerFunc(f.handleConn))
	return f
}

// URL returns the ws:// endpoint of the fake room.
func (f *FakeRoom) URL() string {
	return "ws" + f.server.URL[4:]
}

// Close shuts the fake room down.
func (f *FakeRoom) Close() {
	f.server.Close()
}

// Handshakes returns how many connections completed the certificate
// exchange.
func (f *FakeRoom) Handshakes() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.handshakes
}

// Violations returns every protocol complaint recorded so far.
func (f *FakeRoom) Violations() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.violations...)
}

// handleConn upgrades the connection, runs the handshake and then the
// per-session script.
func (f *FakeRoom) handleConn(w http.ResponseWriter, r *http.Request) {
	conn, err := f.upgrader.Upgrade(w, r, nil)
	if err != nil {
		f.fail("upgrade: %v", err)
		return
	}
	defer conn.Close()

	if !f.handshake(conn) {
		return
	}
	n := f.addHandshake()
	f.serve(n, conn)
}

// handshake expects the certificate packet and acknowledges it.
func (f *FakeRoom) handshake(conn *websocket.Conn) bool {
	kind, data, err := conn.ReadMessage()
	if err != nil {
		f.fail("read certificate: %v", err)
		return false
	}
	if kind != websocket.BinaryMessage {
		f.fail("certificate arrived as message type %d", kind)
		return false
	}
	h, body, err := packet.ParseExact(data)
	if err != nil {
		f.fail("certificate does not frame: %v", err)
		return false
	}
	if h.Operation != packet.OpCertificate {
		f.fail("first packet op = %v, want certificate", h.Operation)
		return false
	}
	var cert struct {
		RoomID uint64 `json:"roomid"`
		Key    string `json:"key"`
	}
	if err := json.Unmarshal(body, &cert); err != nil || cert.RoomID == 0 {
		f.fail("certificate body malformed: %s", body)
		return false
	}
	conn.WriteMessage(websocket.BinaryMessage, CertAck())
	return true
}

// AnswerHeartbeats reads until the connection drops, acking every
// heartbeat with the given popularity value.
func (f *FakeRoom) AnswerHeartbeats(conn *websocket.Conn, popularity uint32) {
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		h, _, err := packet.ParseExact(data)
		if err != nil || h.Operation != packet.OpHeartbeat {
			continue
		}
		conn.WriteMessage(websocket.BinaryMessage, HeartbeatAck(popularity))
	}
}

// fail records a protocol violation for the test to report.
func (f *FakeRoom) fail(format string, args ...any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.violations = append(f.violations, fmt.Sprintf(format, args...))
}

// addHandshake counts a completed handshake and returns its number.
func (f *FakeRoom) addHandshake() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := f.handshakes
	f.handshakes++
	return n
}

// CertAck frames a certificate acknowledgement.
func CertAck() []byte {
	return packet.Encode(packet.Header{
		Encoding:  packet.EncodingPlain,
		Operation: packet.OpCertificateAck,
	}, []byte(`{"code":0}`))
}

// HeartbeatAck frames a heartbeat acknowledgement carrying popularity.
func HeartbeatAck(popularity uint32) []byte {
	body := make([]byte, 4)
	binary.BigEndian.PutUint32(body, popularity)
	return packet.Encode(packet.Header{
		Encoding:  packet.EncodingPlain,
		Operation: packet.OpHeartbeatAck,
	}, body)
}

// MessageFrame frames one plain room message.
func MessageFrame(body string) []byte {
	return packet.Encode(packet.Header{
		Encoding:  packet.EncodingPlain,
		Operation: packet.OpMessage,
	}, []byte(body))
}

// ZlibBatch frames a compressed packet carrying the given messages
// back to back, the way busy rooms deliver bursts.
func ZlibBatch(bodies ...string) []byte {
	var batch []byte
	for _, b := range bodies {
		batch = append(batch, MessageFrame(b)...)
	}
	var buf bytes.Buffer
	w := zlib.NewWriter(&buf)
	w.Write(batch)
	w.Close()
	return packet.Encode(packet.Header{
		Encoding:  packet.EncodingZlib,
		Operation: packet.OpMessage,
	}, buf.Bytes())
}
