// Package tcptransport implements ports.Transport over a TCP ingest socket.
//
// Companion publisher processes connect and stream length-prefixed frames,
// each a JSON frame header followed by the raw CDR payload:
//
//	uint32 header length (big endian)
//	header JSON: {"topic": ..., "type": ..., "frame_id": ...}
//	uint32 payload length (big endian)
//	payload bytes
//
// Frames for topics without a registered handler are dropped silently, the
// same policy the dispatcher applies to unconfigured topics. Each connection
// is served by one goroutine and handlers are invoked synchronously on it,
// so records from one publisher reach the sink in arrival order.
package tcptransport

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"sync"
	"time"

	"github.com/roslog/rerunros/internal/domain"
	"github.com/roslog/rerunros/internal/ports"
	"github.com/roslog/rerunros/pkg/log"
)

// Frame size limits. A header is a few short strings; payloads are bounded
// by what a single ROS message can reasonably carry.
const (
	maxHeaderBytes  = 64 << 10
	maxPayloadBytes = 16 << 20
)

// frameHeader is the JSON prefix of each ingest frame.
type frameHeader struct {
	Topic   string `json:"topic"`
	Type    string `json:"type"`
	FrameID string `json:"frame_id,omitempty"`
}

type subscription struct {
	shape   string
	handler ports.MessageHandler
}

// Transport accepts publisher connections and delivers their frames to the
// per-topic handlers.
type Transport struct {
	logger log.Logger
	ln     net.Listener

	mu   sync.RWMutex
	subs map[string]subscription

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New starts listening on addr and begins accepting connections.
func New(addr string, logger log.Logger) (*Transport, error) {
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen %s: %w", addr, err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	t := &Transport{
		logger: logger,
		ln:     ln,
		subs:   make(map[string]subscription),
		ctx:    ctx,
		cancel: cancel,
	}

	t.wg.Add(1)
	go t.acceptLoop()

	logger.Info("transport listening", log.String("addr", ln.Addr().String()))
	return t, nil
}

// Addr returns the bound listen address.
func (t *Transport) Addr() string {
	return t.ln.Addr().String()
}

// Subscribe registers the handler for a topic. One handler per topic; a
// second registration for the same topic is rejected.
func (t *Transport) Subscribe(_ context.Context, topic, shape string, handler ports.MessageHandler) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.subs[topic]; ok {
		return fmt.Errorf("tcptransport: topic %s already subscribed", topic)
	}
	t.subs[topic] = subscription{shape: shape, handler: handler}
	return nil
}

// Close stops accepting connections and waits for per-connection workers.
func (t *Transport) Close() error {
	t.cancel()
	err := t.ln.Close()
	t.wg.Wait()
	return err
}

func (t *Transport) acceptLoop() {
	defer t.wg.Done()

	bo := newBackoff(defaultBackoffInitial, defaultBackoffMax)
	for {
		conn, err := t.ln.Accept()
		if err != nil {
			select {
			case <-t.ctx.Done():
				return
			default:
			}
			t.logger.Warn("accept failed", log.Err(err))
			bo.Sleep()
			continue
		}
		bo.Reset()

		t.wg.Add(1)
		go func() {
			defer t.wg.Done()
			t.serveConn(conn)
		}()
	}
}

func (t *Transport) serveConn(conn net.Conn) {
	defer conn.Close()

	// Close the connection when the transport shuts down so the read below
	// unblocks.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-t.ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	remote := conn.RemoteAddr().String()
	t.logger.Debug("publisher connected", log.String("remote", remote))

	for {
		msg, err := t.readFrame(conn)
		if err != nil {
			if !errors.Is(err, io.EOF) && t.ctx.Err() == nil {
				t.logger.Warn("publisher stream error", log.String("remote", remote), log.Err(err))
			}
			return
		}

		t.mu.RLock()
		sub, ok := t.subs[msg.Topic]
		t.mu.RUnlock()
		if !ok {
			// No subscription for this topic; dropped by policy.
			continue
		}
		if sub.shape != "" && msg.shape != "" && sub.shape != msg.shape {
			t.logger.Warn("frame type mismatch",
				log.String("topic", msg.Topic),
				log.String("got", msg.shape),
				log.String("want", sub.shape))
			continue
		}
		sub.handler(msg.Message)
	}
}

// ingestFrame pairs the decoded message with the wire type the publisher
// declared, so it can be checked against the subscription.
type ingestFrame struct {
	domain.Message
	shape string
}

func (t *Transport) readFrame(conn net.Conn) (ingestFrame, error) {
	headerBytes, err := readBlock(conn, maxHeaderBytes)
	if err != nil {
		return ingestFrame{}, err
	}
	var hdr frameHeader
	if err := json.Unmarshal(headerBytes, &hdr); err != nil {
		return ingestFrame{}, fmt.Errorf("decode frame header: %w", err)
	}
	if hdr.Topic == "" {
		return ingestFrame{}, errors.New("frame header missing topic")
	}

	payload, err := readBlock(conn, maxPayloadBytes)
	if err != nil {
		return ingestFrame{}, fmt.Errorf("read payload: %w", err)
	}

	return ingestFrame{
		Message: domain.Message{
			Topic:    hdr.Topic,
			FrameID:  hdr.FrameID,
			Payload:  payload,
			Received: time.Now(),
		},
		shape: hdr.Type,
	}, nil
}

// readBlock reads one length-prefixed block from the stream.
func readBlock(r io.Reader, limit uint32) ([]byte, error) {
	var lenBuf [4]byte
	if _, err := io.ReadFull(r, lenBuf[:]); err != nil {
		return nil, err
	}
	n := binary.BigEndian.Uint32(lenBuf[:])
	if n > limit {
		return nil, fmt.Errorf("block of %d bytes exceeds limit %d", n, limit)
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, err
	}
	return buf, nil
}
