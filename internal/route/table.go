// Package route holds the immutable routing table mapping topics to
// conversion rules.
package route

import (
	"fmt"
	"sort"

	"github.com/roslog/rerunros/internal/convert"
	"github.com/roslog/rerunros/internal/domain"
)

// Table is the process-wide routing table. It is built once from validated
// configuration, before any subscription is established, and is read-only
// afterward; concurrent lookups need no locking.
type Table struct {
	rules  map[string][]domain.Rule
	shapes map[string]string
	topics []string
}

// NewTable validates the rules against the registry and builds the table.
//
// Every rule must name a topic, a shape and an entity path, and its shape
// must resolve in the registry. One topic binds to exactly one shape;
// multiple rules may share a topic when they differ by frame filter, and
// their configuration order is preserved for fan-out evaluation.
//
// All failures here are startup-fatal by design: a structurally invalid
// configuration must be rejected before any message traffic flows.
func NewTable(rules []domain.Rule, registry *convert.Registry) (*Table, error) {
	t := &Table{
		rules:  make(map[string][]domain.Rule),
		shapes: make(map[string]string),
	}

	for i, r := range rules {
		if r.Topic == "" {
			return nil, fmt.Errorf("%w: rule %d: topic is required", domain.ErrInvalidRule, i)
		}
		if r.Shape == "" {
			return nil, fmt.Errorf("%w: rule %d (topic %s): ros_type is required", domain.ErrInvalidRule, i, r.Topic)
		}
		if r.EntityPath == "" {
			return nil, fmt.Errorf("%w: rule %d (topic %s): entity_path is required", domain.ErrInvalidRule, i, r.Topic)
		}
		if !registry.Has(r.Shape) {
			return nil, fmt.Errorf("%w: %s (topic %s)", domain.ErrUnresolvedConverter, r.Shape, r.Topic)
		}
		if shape, ok := t.shapes[r.Topic]; ok && shape != r.Shape {
			return nil, fmt.Errorf("%w: topic %s bound to both %s and %s",
				domain.ErrInvalidRule, r.Topic, shape, r.Shape)
		}

		if _, ok := t.shapes[r.Topic]; !ok {
			t.shapes[r.Topic] = r.Shape
			t.topics = append(t.topics, r.Topic)
		}
		t.rules[r.Topic] = append(t.rules[r.Topic], r)
	}

	sort.Strings(t.topics)
	return t, nil
}

// RulesFor returns the rules configured for a topic in configuration order.
// The result is empty, not an error, for unconfigured topics: such messages
// are dropped by policy.
func (t *Table) RulesFor(topic string) []domain.Rule {
	return t.rules[topic]
}

// ShapeFor returns the message shape bound to a topic.
func (t *Table) ShapeFor(topic string) (string, bool) {
	shape, ok := t.shapes[topic]
	return shape, ok
}

// Topics returns the distinct configured topics in sorted order. The bridge
// registers exactly one transport subscription per entry.
func (t *Table) Topics() []string {
	return t.topics
}

// Len returns the total number of rules.
func (t *Table) Len() int {
	n := 0
	for _, rs := range t.rules {
		n += len(rs)
	}
	return n
}
