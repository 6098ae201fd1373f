package store

import (
	"reflect"
	"testing"

	"github.com/fpgatools/go-i2ctrace/i2c"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open(:memory:) error = %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func sampleTransactions() []i2c.Transaction {
	return []i2c.Transaction{
		{
			Address:   0x26,
			Dir:       i2c.Write,
			AddrACK:   true,
			Bytes:     []i2c.Byte{{Value: 0xAB, ACK: true}},
			StartTime: 10,
			EndTime:   40,
		},
		{
			Address:   0x50,
			Dir:       i2c.Read,
			AddrACK:   true,
			Bytes:     []i2c.Byte{{Value: 0x12, ACK: true}, {Value: 0x34, ACK: false}},
			StartTime: 100,
			EndTime:   160,
		},
	}
}

func TestSaveAndLoadCapture(t *testing.T) {
	st := openTestStore(t)

	want := sampleTransactions()
	id, err := st.SaveCapture("capture.csv", "i2c_scl_rx", "i2c_sda_rx", want)
	if err != nil {
		t.Fatalf("SaveCapture() error = %v", err)
	}
	if id == "" {
		t.Fatal("SaveCapture() returned an empty ID")
	}

	got, err := st.Transactions(id)
	if err != nil {
		t.Fatalf("Transactions() error = %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Transactions() = %+v, want %+v", got, want)
	}
}

func TestTransactionsByAddress(t *testing.T) {
	st := openTestStore(t)

	id, err := st.SaveCapture("capture.csv", "scl", "sda", sampleTransactions())
	if err != nil {
		t.Fatalf("SaveCapture() error = %v", err)
	}

	got, err := st.TransactionsByAddress(id, 0x26)
	if err != nil {
		t.Fatalf("TransactionsByAddress() error = %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d transactions, want 1", len(got))
	}
	if got[0].Address != 0x26 || got[0].Dir != i2c.Write {
		t.Errorf("got %v 0x%02x, want WR 0x26", got[0].Dir, got[0].Address)
	}

	none, err := st.TransactionsByAddress(id, 0x7F)
	if err != nil {
		t.Fatalf("TransactionsByAddress() error = %v", err)
	}
	if len(none) != 0 {
		t.Errorf("got %d transactions for unused address, want 0", len(none))
	}
}

func TestCaptures(t *testing.T) {
	st := openTestStore(t)

	first, err := st.SaveCapture("a.csv", "scl", "sda", nil)
	if err != nil {
		t.Fatalf("SaveCapture() error = %v", err)
	}
	second, err := st.SaveCapture("b.csv", "scl", "sda", nil)
	if err != nil {
		t.Fatalf("SaveCapture() error = %v", err)
	}
	if first == second {
		t.Fatal("capture IDs are not unique")
	}

	caps, err := st.Captures()
	if err != nil {
		t.Fatalf("Captures() error = %v", err)
	}
	if len(caps) != 2 {
		t.Fatalf("got %d captures, want 2", len(caps))
	}
	for _, c := range caps {
		if c.SCLName != "scl" || c.SDAName != "sda" {
			t.Errorf("capture %s has probe names %q/%q", c.ID, c.SCLName, c.SDAName)
		}
		if c.CreatedAt.IsZero() {
			t.Errorf("capture %s has no creation time", c.ID)
		}
	}
}

func TestEmptyCaptureRoundTrip(t *testing.T) {
	st := openTestStore(t)

	id, err := st.SaveCapture("empty.csv", "scl", "sda", nil)
	if err != nil {
		t.Fatalf("SaveCapture() error = %v", err)
	}
	got, err := st.Transactions(id)
	if err != nil {
		t.Fatalf("Transactions() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %d transactions, want 0", len(got))
	}
}
