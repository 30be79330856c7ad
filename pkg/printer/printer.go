package printer

import (
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"sync"
	"time"
)

// Connection kinds accepted by New.
const (
	KindUSB     = "usb"
	KindNetwork = "network"
	KindNone    = "none"
)

// Printer is the interface for sending raw ESC/POS data to a thermal printer.
type Printer interface {
	// Print sends one complete job to the printer.
	Print(data []byte) error
	// Close releases the printer connection/handle.
	Close() error
	// IsConnected reports whether the device can be reached right now.
	IsConnected() bool
}

// Config selects and addresses the till's receipt printer.
type Config struct {
	Kind    string
	USBPath string // e.g. /dev/usb/lp0
	Address string // host:port, usually port 9100
	Timeout time.Duration
}

// ErrNotConfigured is returned by New when Kind is empty or "none".
var ErrNotConfigured = errors.New("printer: not configured")

// New opens the printer described by cfg. Device printers are wrapped with
// Serialized so concurrent tills never interleave jobs.
func New(cfg Config) (Printer, error) {
	switch cfg.Kind {
	case KindUSB:
		if cfg.USBPath == "" {
			return nil, fmt.Errorf("printer: USB path is required for USB printer type")
		}
		return Serialized(NewUSBPrinter(cfg.USBPath)), nil
	case KindNetwork:
		if cfg.Address == "" {
			return nil, fmt.Errorf("printer: address is required for network printer type")
		}
		p := &networkPrinter{address: cfg.Address, timeout: 5 * time.Second}
		if cfg.Timeout > 0 {
			p.timeout = cfg.Timeout
		}
		return Serialized(p), nil
	case KindNone, "":
		return NewNullPrinter(), ErrNotConfigured
	default:
		return nil, fmt.Errorf("printer: unknown printer type %q (use usb, network, or none)", cfg.Kind)
	}
}

// writeJob writes the whole job or reports how much was lost.
func writeJob(w io.Writer, target string, data []byte) error {
	n, err := w.Write(data)
	if err != nil {
		return fmt.Errorf("printer: write to %s failed after %d of %d bytes: %w", target, n, len(data), err)
	}
	return nil
}

type usbPrinter struct {
	path string
}

// NewUSBPrinter creates a printer that writes to a USB device file.
func NewUSBPrinter(devicePath string) Printer {
	return &usbPrinter{path: devicePath}
}

func (p *usbPrinter) Print(data []byte) error {
	f, err := os.OpenFile(p.path, os.O_WRONLY, 0)
	if err != nil {
		return fmt.Errorf("printer: failed to open USB device %s: %w", p.path, err)
	}
	defer f.Close()
	return writeJob(f, p.path, data)
}

// Close is a no-op; the device file is opened per job.
func (p *usbPrinter) Close() error {
	return nil
}

func (p *usbPrinter) IsConnected() bool {
	_, err := os.Stat(p.path)
	return err == nil
}

type networkPrinter struct {
	address string
	timeout time.Duration
}

// NewNetworkPrinter creates a printer that connects via TCP for each job.
func NewNetworkPrinter(address string) Printer {
	return &networkPrinter{address: address, timeout: 5 * time.Second}
}

func (p *networkPrinter) Print(data []byte) error {
	conn, err := net.DialTimeout("tcp", p.address, p.timeout)
	if err != nil {
		return fmt.Errorf("printer: failed to connect to %s: %w", p.address, err)
	}
	defer conn.Close()

	_ = conn.SetWriteDeadline(time.Now().Add(2 * p.timeout))
	return writeJob(conn, p.address, data)
}

func (p *networkPrinter) Close() error {
	return nil
}

func (p *networkPrinter) IsConnected() bool {
	conn, err := net.DialTimeout("tcp", p.address, p.timeout/2)
	if err != nil {
		return false
	}
	conn.Close()
	return true
}

type nullPrinter struct{}

// NewNullPrinter returns a printer that accepts and drops every job.
func NewNullPrinter() Printer {
	return nullPrinter{}
}

func (nullPrinter) Print([]byte) error { return nil }
func (nullPrinter) Close() error       { return nil }
func (nullPrinter) IsConnected() bool  { return false }

type serializedPrinter struct {
	mu    sync.Mutex
	inner Printer
}

// Serialized wraps p so concurrent print jobs never interleave on the wire.
func Serialized(p Printer) Printer {
	if _, ok := p.(*serializedPrinter); ok {
		return p
	}
	return &serializedPrinter{inner: p}
}

func (p *serializedPrinter) Print(data []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.inner.Print(data)
}

func (p *serializedPrinter) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.inner.Close()
}

func (p *serializedPrinter) IsConnected() bool {
	return p.inner.IsConnected()
}
