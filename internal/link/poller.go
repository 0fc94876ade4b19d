package link

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"loadpanel/panel"
)

// ErrClosed is returned by a Poller after its link has been closed
// or has failed.
var ErrClosed = errors.New("link closed")

const pollerBufferSize = 512

// Poller turns a blocking Conn into the non-blocking byte source a
// panel.Device polls. The Conn is read from a background goroutine.
type Poller struct {
	conn  Conn
	ch    chan byte
	idle  time.Duration
	timer *time.Timer
	err   error

	closeOnce sync.Once
}

// NewPoller starts reading from conn. When no byte is available,
// ReadByte waits up to idle for one before returning
// panel.ErrNoData, so a device loop polling it doesn't spin.
func NewPoller(conn Conn, idle time.Duration) *Poller {
	p := &Poller{
		conn:  conn,
		ch:    make(chan byte, pollerBufferSize),
		idle:  idle,
		timer: time.NewTimer(time.Hour),
	}
	p.timer.Stop()
	go p.readConn()
	return p
}

func dumpByte(prefix string, b byte) string {
	s := string([]byte{b})
	return fmt.Sprintf("%s %03d = 0x%02x = %q\n", prefix, b, b, s)
}

func (p *Poller) readConn() {
	b := make([]byte, 1)
	for {
		_, err := p.conn.Read(b)
		if err != nil {
			if err != io.EOF {
				log.Printf("error reading from port: %v", err)
			}
			p.err = err
			break
		}
		log.Tracef(dumpByte("R <<", b[0]))
		p.ch <- b[0]
	}
	close(p.ch)
}

func (p *Poller) recv(b byte, ok bool) (byte, error) {
	if !ok {
		if p.err != nil && p.err != io.EOF {
			return 0, fmt.Errorf("%w: %v", ErrClosed, p.err)
		}
		return 0, ErrClosed
	}
	return b, nil
}

// ReadByte implements io.ByteReader. It returns panel.ErrNoData when
// no byte arrived in time and ErrClosed once the link is gone and
// every received byte has been read.
func (p *Poller) ReadByte() (byte, error) {
	select {
	case b, ok := <-p.ch:
		return p.recv(b, ok)
	default:
	}
	if p.idle <= 0 {
		return 0, panel.ErrNoData
	}
	p.timer.Reset(p.idle)
	select {
	case b, ok := <-p.ch:
		if !p.timer.Stop() {
			<-p.timer.C
		}
		return p.recv(b, ok)
	case <-p.timer.C:
		return 0, panel.ErrNoData
	}
}

// Close closes the underlying Conn. Bytes already received can
// still be read.
func (p *Poller) Close() error {
	var err error
	p.closeOnce.Do(func() {
		err = p.conn.Close()
	})
	return err
}
