package dispatch

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/roslog/rerunros/internal/cdr"
	"github.com/roslog/rerunros/internal/convert"
	"github.com/roslog/rerunros/internal/domain"
	"github.com/roslog/rerunros/internal/route"
)

type logged struct {
	path   string
	stamp  time.Time
	entity domain.Entity
}

type fakeSink struct {
	mu      sync.Mutex
	records []logged
	failWith error
}

func (s *fakeSink) Log(_ context.Context, path string, stamp time.Time, entity domain.Entity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return s.failWith
	}
	s.records = append(s.records, logged{path: path, stamp: stamp, entity: entity})
	return nil
}

type captureEmitter struct {
	mu          sync.Mutex
	conversions []string
	deliveries  []string
}

func (e *captureEmitter) OnConversionError(shape, topic string, err error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.conversions = append(e.conversions, shape+"@"+topic)
}

func (e *captureEmitter) OnDeliveryError(entityPath string, err error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.deliveries = append(e.deliveries, entityPath)
}

func int32Payload(v int32) []byte {
	e := cdr.NewEncoder()
	e.PutInt32(v)
	return e.Bytes()
}

func stampedPayload(frameID string) []byte {
	e := cdr.NewEncoder()
	e.PutInt32(100)
	e.PutUint32(0)
	e.PutString(frameID)
	e.PutString("child")
	for i := 0; i < 3; i++ {
		e.PutFloat64(0)
	}
	for _, v := range domain.IdentityRotation {
		e.PutFloat64(v)
	}
	return e.Bytes()
}

func newDispatcher(t *testing.T, rules []domain.Rule, sink *fakeSink, emitter EventEmitter) *Dispatcher {
	t.Helper()
	registry := convert.Builtins()
	table, err := route.NewTable(rules, registry)
	if err != nil {
		t.Fatalf("NewTable: %v", err)
	}
	return New(table, registry, sink, nil, emitter)
}

func TestDispatchInt32Scenario(t *testing.T) {
	sink := &fakeSink{}
	d := newDispatcher(t, []domain.Rule{
		{Topic: "topic/bar", Shape: "std_msgs/msg/Int32", EntityPath: "foo/bar2"},
	}, sink, nil)

	received := time.Unix(1700000000, 0)
	d.Dispatch(context.Background(), domain.Message{
		Topic:    "topic/bar",
		Payload:  int32Payload(42),
		Received: received,
	})

	if len(sink.records) != 1 {
		t.Fatalf("got %d records, want 1", len(sink.records))
	}
	rec := sink.records[0]
	if rec.path != "foo/bar2" {
		t.Fatalf("path = %q, want foo/bar2", rec.path)
	}
	if rec.entity != domain.Scalar(42) {
		t.Fatalf("entity = %#v, want Scalar(42)", rec.entity)
	}
	if !rec.stamp.Equal(received) {
		t.Fatalf("stamp = %v, want receive time %v", rec.stamp, received)
	}
}

func TestDispatchUnconfiguredTopicDropped(t *testing.T) {
	sink := &fakeSink{}
	emitter := &captureEmitter{}
	d := newDispatcher(t, []domain.Rule{
		{Topic: "topic/bar", Shape: "std_msgs/msg/Int32", EntityPath: "foo/bar2"},
	}, sink, emitter)

	d.Dispatch(context.Background(), domain.Message{Topic: "other", Payload: int32Payload(1)})

	if len(sink.records) != 0 || len(emitter.conversions) != 0 || len(emitter.deliveries) != 0 {
		t.Fatal("message on unconfigured topic was not dropped silently")
	}
}

func TestDispatchUnfilteredRuleIgnoresFrame(t *testing.T) {
	sink := &fakeSink{}
	d := newDispatcher(t, []domain.Rule{
		{Topic: "t", Shape: "std_msgs/msg/Int32", EntityPath: "p"},
	}, sink, nil)

	for _, frame := range []string{"", "frame1", "frame2"} {
		d.Dispatch(context.Background(), domain.Message{Topic: "t", FrameID: frame, Payload: int32Payload(1)})
	}
	if len(sink.records) != 3 {
		t.Fatalf("got %d records, want 3", len(sink.records))
	}
}

func TestDispatchFrameFilter(t *testing.T) {
	tests := []struct {
		name    string
		frameID string
		want    int
	}{
		{"matching frame forwarded", "frame2", 1},
		{"differing frame skipped", "frame1", 0},
		{"absent frame skipped", "", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sink := &fakeSink{}
			d := newDispatcher(t, []domain.Rule{
				{Topic: "t", Shape: "std_msgs/msg/Int32", EntityPath: "p", FrameID: "frame2"},
			}, sink, nil)

			d.Dispatch(context.Background(), domain.Message{Topic: "t", FrameID: tt.frameID, Payload: int32Payload(9)})
			if len(sink.records) != tt.want {
				t.Fatalf("got %d records, want %d", len(sink.records), tt.want)
			}
		})
	}
}

func TestDispatchStampedFrameExtractedFromHeader(t *testing.T) {
	sink := &fakeSink{}
	d := newDispatcher(t, []domain.Rule{
		{Topic: "tf", Shape: "geometry_msgs/msg/TransformStamped", EntityPath: "world", FrameID: "frame2"},
	}, sink, nil)

	// Header carries frame1; the transport supplied no frame.
	d.Dispatch(context.Background(), domain.Message{Topic: "tf", Payload: stampedPayload("frame1")})
	if len(sink.records) != 0 {
		t.Fatalf("got %d records, want 0", len(sink.records))
	}

	d.Dispatch(context.Background(), domain.Message{Topic: "tf", Payload: stampedPayload("frame2")})
	if len(sink.records) != 1 {
		t.Fatalf("got %d records, want 1", len(sink.records))
	}
}

func TestDispatchFanIn(t *testing.T) {
	// Two unfiltered rules on one topic with the same entity path deliver
	// the message twice. No cross-rule ordering is guaranteed beyond
	// configuration order, which this test deliberately does not assert.
	sink := &fakeSink{}
	d := newDispatcher(t, []domain.Rule{
		{Topic: "t", Shape: "std_msgs/msg/Int32", EntityPath: "p"},
		{Topic: "t", Shape: "std_msgs/msg/Int32", EntityPath: "p"},
	}, sink, nil)

	d.Dispatch(context.Background(), domain.Message{Topic: "t", Payload: int32Payload(5)})
	if len(sink.records) != 2 {
		t.Fatalf("got %d records, want 2", len(sink.records))
	}
}

func TestDispatchConversionErrorDoesNotHaltStream(t *testing.T) {
	sink := &fakeSink{}
	emitter := &captureEmitter{}
	d := newDispatcher(t, []domain.Rule{
		{Topic: "t", Shape: "std_msgs/msg/Int32", EntityPath: "p"},
	}, sink, emitter)

	// Malformed, then well-formed on the same topic.
	d.Dispatch(context.Background(), domain.Message{Topic: "t", Payload: []byte{0x00, 0x01, 0x00, 0x00}})
	d.Dispatch(context.Background(), domain.Message{Topic: "t", Payload: int32Payload(7)})

	if len(emitter.conversions) != 1 {
		t.Fatalf("got %d conversion events, want 1", len(emitter.conversions))
	}
	if len(sink.records) != 1 || sink.records[0].entity != domain.Scalar(7) {
		t.Fatalf("subsequent well-formed message was not delivered: %+v", sink.records)
	}
}

func TestDispatchDeliveryFailureIsNonFatal(t *testing.T) {
	sink := &fakeSink{failWith: errors.New("backend unavailable")}
	emitter := &captureEmitter{}
	d := newDispatcher(t, []domain.Rule{
		{Topic: "t", Shape: "std_msgs/msg/Int32", EntityPath: "p"},
	}, sink, emitter)

	d.Dispatch(context.Background(), domain.Message{Topic: "t", Payload: int32Payload(3)})

	if len(emitter.deliveries) != 1 || emitter.deliveries[0] != "p" {
		t.Fatalf("delivery events = %v, want one for p", emitter.deliveries)
	}

	// Sink recovers; the next message flows.
	sink.failWith = nil
	d.Dispatch(context.Background(), domain.Message{Topic: "t", Payload: int32Payload(4)})
	if len(sink.records) != 1 {
		t.Fatalf("got %d records after recovery, want 1", len(sink.records))
	}
}

func TestDispatchConcurrent(t *testing.T) {
	sink := &fakeSink{}
	d := newDispatcher(t, []domain.Rule{
		{Topic: "a", Shape: "std_msgs/msg/Int32", EntityPath: "pa"},
		{Topic: "b", Shape: "std_msgs/msg/Float64", EntityPath: "pb"},
	}, sink, nil)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			topic := "a"
			payload := int32Payload(int32(i))
			if i%2 == 1 {
				topic = "b"
				e := cdr.NewEncoder()
				e.PutFloat64(float64(i))
				payload = e.Bytes()
			}
			for j := 0; j < 50; j++ {
				d.Dispatch(context.Background(), domain.Message{Topic: topic, Payload: payload})
			}
		}(i)
	}
	wg.Wait()

	if len(sink.records) != 8*50 {
		t.Fatalf("got %d records, want %d", len(sink.records), 8*50)
	}
}
