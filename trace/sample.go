package trace

// Sample is one captured state of the two monitored lines.
type Sample struct {
	// Time is the sample timestamp or buffer index from the capture.
	// Strictly increasing across a trace.
	Time float64

	// SCL is the clock line level
	SCL bool

	// SDA is the data line level
	SDA bool
}

// Channel identifies one of the two monitored lines.
type Channel uint8

const (
	// Clock is the SCL line
	Clock Channel = iota

	// Data is the SDA line
	Data
)

// String returns "SCL" or "SDA".
func (c Channel) String() string {
	if c == Clock {
		return "SCL"
	}
	return "SDA"
}

// Edge is a level transition on one channel, derived from consecutive samples.
type Edge struct {
	// Time is the timestamp of the sample where the new level was first seen
	Time float64

	// Channel is the line that changed
	Channel Channel

	// Rising is true for a low-to-high transition, false for high-to-low
	Rising bool
}
