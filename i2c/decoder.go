package i2c

import (
	"github.com/fpgatools/go-i2ctrace/trace"
)

// decodeState tracks the decoder's position within a transaction.
type decodeState int

const (
	// stateIdle waits for a START condition
	stateIdle decodeState = iota
	// stateAddress collects the 8 address/R-W bits
	stateAddress
	// stateAddrAck waits for the address acknowledge clock
	stateAddrAck
	// stateData collects 8 data bits
	stateData
	// stateDataAck waits for the data acknowledge clock
	stateDataAck
)

// Stats summarizes the soft events absorbed during one Decode call.
type Stats struct {
	// Truncated counts transactions discarded because no STOP was seen:
	// either the capture ended mid-transaction or a STOP arrived before
	// the address byte completed.
	Truncated int

	// RepeatedStarts counts START conditions observed mid-transaction.
	RepeatedStarts int
}

// Decoder reconstructs transactions from an edge sequence.
// A Decoder holds only configuration; Decode keeps all decoding state in
// locals, so a single Decoder is safe for concurrent use.
type Decoder struct {
	config Config
}

// NewDecoder creates a Decoder with the given options.
//
// Example:
//
//	dec := i2c.NewDecoder(
//	    i2c.WithRepeatedStartPolicy(i2c.RepeatedStartChain),
//	    i2c.WithLogger(myLogger),
//	)
func NewDecoder(opts ...Option) *Decoder {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Decoder{config: cfg}
}

// Decode runs the edge sequence through the framing state machine and
// returns the completed transactions in bus order.
//
// Decode never fails: malformed tails are absorbed per the Stats policies,
// so valid transactions earlier in the capture are always returned. Both
// lines are assumed to idle high before the first edge, per the I2C
// open-drain convention.
func (d *Decoder) Decode(edges []trace.Edge) ([]Transaction, Stats) {
	var (
		txns  []Transaction
		stats Stats

		state = stateIdle
		scl   = true
		sda   = true

		cur      Transaction
		addrDone bool // address byte and its ACK have been recorded
		shift    byte // bit accumulation register, MSB first
		bits     int
		pending  byte // completed byte awaiting its acknowledge clock
	)

	for _, e := range edges {
		switch e.Channel {
		case trace.Clock:
			scl = e.Rising
			if !e.Rising || state == stateIdle {
				continue
			}
			// SCL rising edge: sample SDA
			switch state {
			case stateAddress, stateData:
				shift <<= 1
				if sda {
					shift |= 1
				}
				bits++
				if bits == 8 {
					pending = shift
					if state == stateAddress {
						state = stateAddrAck
					} else {
						state = stateDataAck
					}
				}
			case stateAddrAck:
				cur.Address = pending >> 1
				cur.Dir = Direction(pending & 1)
				cur.AddrACK = !sda
				addrDone = true
				shift, bits = 0, 0
				state = stateData
			case stateDataAck:
				cur.Bytes = append(cur.Bytes, Byte{Value: pending, ACK: !sda})
				shift, bits = 0, 0
				state = stateData
			}

		case trace.Data:
			sda = e.Rising
			if !scl {
				// Bit setup or glitch while the clock is low; never framing
				continue
			}
			if !e.Rising {
				// SDA falling @ SCL high: START (or repeated START)
				if state != stateIdle {
					stats.RepeatedStarts++
					d.logDebug("repeated start", "time", e.Time)
					if d.config.RepeatedStart == RepeatedStartChain {
						// Keep the pending transaction; the next
						// address byte replaces address and direction
						shift, bits = 0, 0
						state = stateAddress
						continue
					}
				}
				cur = Transaction{StartTime: e.Time}
				addrDone = false
				shift, bits = 0, 0
				state = stateAddress
				continue
			}
			// SDA rising @ SCL high: STOP
			if state == stateIdle {
				continue
			}
			if addrDone {
				cur.EndTime = e.Time
				txns = append(txns, cur)
			} else {
				// STOP before the address byte completed; nothing
				// decodable was transferred
				stats.Truncated++
				d.logDebug("discarding transaction with incomplete address byte", "time", e.Time)
			}
			state = stateIdle
		}
	}

	if state != stateIdle {
		stats.Truncated++
		d.logDebug("capture ended mid-transaction, discarding", "start_time", cur.StartTime)
	}

	return txns, stats
}

func (d *Decoder) logDebug(msg string, keysAndValues ...interface{}) {
	if d.config.Logger != nil {
		d.config.Logger.Debug(msg, keysAndValues...)
	}
}
