package i2c

import (
	"fmt"
	"strings"
)

// Direction is the transfer direction encoded in the address byte's low bit.
type Direction byte

const (
	// Write is a master-to-slave transfer (R/W bit 0)
	Write Direction = 0

	// Read is a slave-to-master transfer (R/W bit 1)
	Read Direction = 1
)

// String returns the conventional short form, "WR" or "RD".
func (d Direction) String() string {
	if d == Read {
		return "RD"
	}
	return "WR"
}

// Byte is one transferred data byte together with its acknowledge bit.
type Byte struct {
	// Value is the 8-bit data value, MSB transferred first
	Value byte `json:"value"`

	// ACK is true if the receiver pulled SDA low on the 9th clock
	ACK bool `json:"ack"`
}

// Transaction is one decoded START…STOP span on the bus.
// Immutable once returned by the decoder.
type Transaction struct {
	// Address is the 7-bit slave address
	Address byte

	// Dir is the transfer direction from the address byte's R/W bit
	Dir Direction

	// AddrACK is the acknowledge bit of the address byte
	AddrACK bool

	// Bytes are the data bytes following the address byte, in bus order
	Bytes []Byte

	// StartTime is the capture time of the START condition
	StartTime float64

	// EndTime is the capture time of the STOP condition
	EndTime float64
}

// String renders the transaction in the capture-tool text form:
//
//	START
//	  ADDR: 0x26 WR ACK
//	  DATA: 0xab ACK
//	  STOP
func (t Transaction) String() string {
	return t.Format(true)
}

// Format renders the transaction, optionally omitting the ACK/NACK markers.
// Useful when diffing captures from devices with flaky acknowledge behavior.
func (t Transaction) Format(includeACK bool) string {
	var b strings.Builder
	b.WriteString("START")
	b.WriteString("\n  ADDR: ")
	fmt.Fprintf(&b, "0x%x %s", t.Address, t.Dir)
	if includeACK {
		b.WriteByte(' ')
		b.WriteString(ackString(t.AddrACK))
	}
	for _, d := range t.Bytes {
		fmt.Fprintf(&b, "\n  DATA: 0x%02x", d.Value)
		if includeACK {
			b.WriteByte(' ')
			b.WriteString(ackString(d.ACK))
		}
	}
	b.WriteString("\n  STOP")
	return b.String()
}

func ackString(ack bool) string {
	if ack {
		return "ACK"
	}
	return "NACK"
}

// FilterByAddress returns the transactions addressed to the given 7-bit
// slave address, preserving order. The input is not modified; the returned
// slice shares the underlying Transaction values, which are immutable.
func FilterByAddress(txns []Transaction, address byte) []Transaction {
	var out []Transaction
	for _, t := range txns {
		if t.Address == address {
			out = append(out, t)
		}
	}
	return out
}
