package i2c

import (
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/fpgatools/go-i2ctrace/trace"
)

// csvTrace builds an ILA-style CSV capture at the sample level.
type csvTrace struct {
	scl, sda int
	rows     [][2]int
}

func newCSVTrace() *csvTrace {
	return &csvTrace{scl: 1, sda: 1}
}

func (c *csvTrace) set(scl, sda int) {
	c.scl, c.sda = scl, sda
	c.rows = append(c.rows, [2]int{scl, sda})
}

func (c *csvTrace) start() {
	c.set(1, 1)
	c.set(1, 0)
}

func (c *csvTrace) bit(b int) {
	c.set(0, c.sda)
	c.set(0, b)
	c.set(1, b)
}

func (c *csvTrace) byteACK(v byte, ack bool) {
	for i := 7; i >= 0; i-- {
		c.bit(int(v >> i & 1))
	}
	if ack {
		c.bit(0)
	} else {
		c.bit(1)
	}
}

func (c *csvTrace) stop() {
	c.set(0, c.sda)
	c.set(0, 0)
	c.set(1, 0)
	c.set(1, 1)
}

// render writes the capture in Vivado export layout, radix row included.
func (c *csvTrace) render() string {
	var b strings.Builder
	b.WriteString("Sample in Buffer,Sample in Window,TRIGGER,soc_i/i_i2c_scl_rx_1,soc_i/i_i2c_sda_rx_1\n")
	b.WriteString("Radix - UNSIGNED,UNSIGNED,UNSIGNED,BINARY,BINARY\n")
	for i, row := range c.rows {
		fmt.Fprintf(&b, "%d,%d,0,%d,%d\n", i, i, row[0], row[1])
	}
	return b.String()
}

func singleWriteCapture() string {
	c := newCSVTrace()
	c.start()
	c.byteACK(0x26<<1, true) // address 0x26, WR
	c.byteACK(0xAB, true)
	c.stop()
	return c.render()
}

func TestParserEndToEnd(t *testing.T) {
	parser := NewParser("i2c_scl_rx_1", "i2c_sda_rx_1")
	txns, stats, err := parser.ParseReader(strings.NewReader(singleWriteCapture()))
	if err != nil {
		t.Fatalf("ParseReader() error = %v", err)
	}
	if stats.Truncated != 0 {
		t.Errorf("truncated = %d, want 0", stats.Truncated)
	}
	if len(txns) != 1 {
		t.Fatalf("got %d transactions, want 1", len(txns))
	}

	got := txns[0]
	if got.Address != 0x26 || got.Dir != Write || !got.AddrACK {
		t.Errorf("got %v 0x%02x ack=%v, want WR 0x26 ack=true", got.Dir, got.Address, got.AddrACK)
	}
	want := []Byte{{Value: 0xAB, ACK: true}}
	if !reflect.DeepEqual(got.Bytes, want) {
		t.Errorf("bytes = %v, want %v", got.Bytes, want)
	}
}

func TestParserDeterministic(t *testing.T) {
	capture := singleWriteCapture()
	parser := NewParser("i2c_scl_rx_1", "i2c_sda_rx_1")

	first, firstStats, err := parser.ParseReader(strings.NewReader(capture))
	if err != nil {
		t.Fatalf("first parse: %v", err)
	}
	second, secondStats, err := parser.ParseReader(strings.NewReader(capture))
	if err != nil {
		t.Fatalf("second parse: %v", err)
	}
	if !reflect.DeepEqual(first, second) || firstStats != secondStats {
		t.Error("parsing the same capture twice gave different results")
	}
}

func TestParserMissingColumn(t *testing.T) {
	parser := NewParser("i2c_scl_rx_1", "no_such_probe")
	txns, _, err := parser.ParseReader(strings.NewReader(singleWriteCapture()))
	if err == nil {
		t.Fatal("expected error for missing probe column")
	}
	if !trace.IsFormatError(err) {
		t.Errorf("error %v is not a FormatError", err)
	}
	if txns != nil {
		t.Errorf("got %d transactions from a failed load", len(txns))
	}
}

func TestParserTruncatedCapture(t *testing.T) {
	c := newCSVTrace()
	c.start()
	c.bit(1)
	c.bit(0)
	c.bit(1) // capture buffer ends mid-address

	parser := NewParser("i2c_scl_rx_1", "i2c_sda_rx_1")
	txns, stats, err := parser.ParseReader(strings.NewReader(c.render()))
	if err != nil {
		t.Fatalf("ParseReader() error = %v", err)
	}
	if len(txns) != 0 {
		t.Fatalf("got %d transactions, want 0", len(txns))
	}
	if stats.Truncated != 1 {
		t.Errorf("truncated = %d, want 1", stats.Truncated)
	}
}

func TestParserMultipleTransactions(t *testing.T) {
	c := newCSVTrace()
	c.start()
	c.byteACK(0x26<<1, true)
	c.byteACK(0x01, true)
	c.stop()
	c.set(1, 1) // idle
	c.set(1, 1)
	c.start()
	c.byteACK(0x48<<1|1, true) // 0x48 RD
	c.byteACK(0xFF, false)
	c.stop()

	parser := NewParser("i2c_scl_rx_1", "i2c_sda_rx_1")
	txns, _, err := parser.ParseReader(strings.NewReader(c.render()))
	if err != nil {
		t.Fatalf("ParseReader() error = %v", err)
	}
	if len(txns) != 2 {
		t.Fatalf("got %d transactions, want 2", len(txns))
	}
	if txns[0].Address != 0x26 || txns[1].Address != 0x48 {
		t.Errorf("addresses = 0x%02x, 0x%02x; want 0x26, 0x48", txns[0].Address, txns[1].Address)
	}
	if txns[0].EndTime >= txns[1].StartTime {
		t.Error("transactions not in time order")
	}
}
