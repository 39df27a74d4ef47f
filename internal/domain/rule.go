package domain

// Rule binds a source topic to a destination entity path in the backend.
// A rule with a non-empty FrameID only applies to messages whose header
// frame matches it exactly, enabling per-frame fan-out from one topic.
//
// Rules are constructed once from validated configuration at startup and
// never mutated afterward.
type Rule struct {
	// Topic is the source topic name (e.g., "topic/bar").
	Topic string

	// Shape is the wire type identifier selecting the converter
	// (e.g., "std_msgs/msg/Int32").
	Shape string

	// EntityPath is the slash-delimited destination path in the backend
	// (e.g., "foo/bar2").
	EntityPath string

	// FrameID, when non-empty, restricts the rule to messages carrying
	// this frame identifier.
	FrameID string
}

// Filtered reports whether the rule carries a frame filter.
func (r Rule) Filtered() bool {
	return r.FrameID != ""
}

// Matches reports whether a message with the given frame identifier is
// accepted by this rule. An unfiltered rule accepts every message. A
// filtered rule requires an exact match; a message without a frame
// identifier cannot match a filtered rule.
func (r Rule) Matches(frameID string) bool {
	if !r.Filtered() {
		return true
	}
	return frameID != "" && frameID == r.FrameID
}
