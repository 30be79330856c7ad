package printer

import (
	"errors"
	"io"
	"net"
	"path/filepath"
	"testing"
	"time"
)

func TestNew(t *testing.T) {
	if _, err := New(Config{Kind: KindUSB}); err == nil {
		t.Errorf("expected error for usb without path")
	}
	if _, err := New(Config{Kind: "laser"}); err == nil {
		t.Errorf("expected error for unknown type")
	}

	p, err := New(Config{Kind: KindNone})
	if !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
	if p.IsConnected() {
		t.Errorf("null printer reports connected")
	}
	if err := p.Print([]byte("x")); err != nil {
		t.Errorf("null printer print failed: %v", err)
	}
}

func TestNetworkPrinterSendsJob(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()

	received := make(chan []byte, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		data, _ := io.ReadAll(conn)
		received <- data
	}()

	p, err := New(Config{Kind: KindNetwork, Address: ln.Addr().String(), Timeout: time.Second})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	job := NewDocument(32).Text("hello").PartialCut().Bytes()
	if err := p.Print(job); err != nil {
		t.Fatalf("print: %v", err)
	}

	select {
	case got := <-received:
		if string(got) != string(job) {
			t.Errorf("job mismatch: %q", got)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("printer never received the job")
	}
}

func TestUSBPrinterMissingDevice(t *testing.T) {
	p := NewUSBPrinter(filepath.Join(t.TempDir(), "lp0"))
	if p.IsConnected() {
		t.Error("missing device reported connected")
	}
	if err := p.Print([]byte("x")); err == nil {
		t.Error("expected error writing to missing device")
	}
}
