package link

import (
	log "github.com/sirupsen/logrus"

	"loadpanel/panel"
)

// Sender writes encoded packets to a link.
type Sender struct {
	conn Conn
	buf  []byte
}

// NewSender returns a Sender writing to conn.
func NewSender(conn Conn) *Sender {
	return &Sender{conn: conn, buf: make([]byte, 0, 2+panel.Capacity)}
}

// Send encodes p and writes it in a single call.
func (s *Sender) Send(p panel.Packet) error {
	data, err := panel.AppendPacket(s.buf[:0], p.Kind, p.Payload)
	if err != nil {
		return err
	}
	log.Debugf("=> %s", p)
	return s.Write(data)
}

// Write sends raw bytes, which don't need to form valid packets.
func (s *Sender) Write(data []byte) error {
	for _, b := range data {
		log.Tracef(dumpByte("W >>", b))
	}
	_, err := s.conn.Write(data)
	return err
}

// Close closes the underlying Conn.
func (s *Sender) Close() error {
	return s.conn.Close()
}
