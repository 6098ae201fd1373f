// Package i2c reconstructs I2C bus transactions from two-wire edge traces.
//
// # Bus Framing
//
// The decoder follows standard I2C framing, derived purely from edges on the
// SCL and SDA lines:
//
//	START   SDA falling while SCL is high
//	STOP    SDA rising while SCL is high
//	bit     SDA level sampled on each SCL rising edge, MSB first
//	ACK     9th SCL rising edge after each byte; SDA low = ACK, high = NACK
//
// The first byte after START carries the 7-bit slave address in its upper
// bits and the read/write flag in bit 0. SDA transitions while SCL is low
// are data setup and never framing; the decoder ignores them.
//
// Because the decoder is edge-driven it has no notion of bus speed; captures
// only need to preserve edge ordering, not timing.
//
// # Usage
//
// Parse a capture CSV end to end:
//
//	parser := i2c.NewParser("i2c_scl_rx", "i2c_sda_rx")
//	txns, stats, err := parser.Parse("capture.csv")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for _, txn := range i2c.FilterByAddress(txns, 0x26) {
//	    fmt.Println(txn)
//	}
//	if stats.Truncated > 0 {
//	    fmt.Printf("%d truncated transaction(s) discarded\n", stats.Truncated)
//	}
//
// Or decode an edge sequence produced elsewhere:
//
//	dec := i2c.NewDecoder()
//	txns, stats := dec.Decode(edges)
//
// # Error Handling
//
// Loading errors (missing columns, bad sample values) surface as
// *trace.FormatError and abort the call. Decoding itself never fails: a
// transaction clipped by the end of the capture is discarded and counted in
// Stats.Truncated, and isolated non-framing edges are ignored, so a damaged
// capture tail does not suppress the valid transactions before it.
package i2c
