// Package store persists decoded captures to SQLite for later filtering.
//
// Each call to SaveCapture records one parsed trace file under a generated
// capture ID, together with every decoded transaction. The database is a
// single file (or ":memory:" for tests) opened through the CGO-free
// modernc.org/sqlite driver.
//
// # Usage
//
//	st, err := store.Open("captures.db")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer st.Close()
//
//	id, err := st.SaveCapture("capture.csv", "i2c_scl_rx", "i2c_sda_rx", txns)
//	...
//	writes, err := st.TransactionsByAddress(id, 0x26)
package store
