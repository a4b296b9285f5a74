package probe

import (
	"context"
	"net"
	"os"
	"strconv"
	"time"

	"golang.org/x/net/icmp"
	"golang.org/x/net/ipv4"
)

// Prober answers "does this host respond right now".
type Prober interface {
	Probe(ctx context.Context, host string) bool
}

// ── ICMP echo ──────────────────────────────────────────────

// ICMPProber sends a single echo request over an unprivileged datagram
// socket (needs net.ipv4.ping_group_range on Linux).
type ICMPProber struct {
	Timeout time.Duration
}

func (p *ICMPProber) Probe(ctx context.Context, host string) bool {
	if host == "" {
		return false
	}
	dst, err := net.ResolveIPAddr("ip4", host)
	if err != nil {
		return false
	}

	conn, err := icmp.ListenPacket("udp4", "0.0.0.0")
	if err != nil {
		return false
	}
	defer conn.Close()

	msg := icmp.Message{
		Type: ipv4.ICMPTypeEcho,
		Body: &icmp.Echo{
			ID:   os.Getpid() & 0xffff,
			Seq:  1,
			Data: []byte("labrack"),
		},
	}
	wb, err := msg.Marshal(nil)
	if err != nil {
		return false
	}

	deadline := time.Now().Add(p.Timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	_ = conn.SetDeadline(deadline)

	if _, err := conn.WriteTo(wb, &net.UDPAddr{IP: dst.IP}); err != nil {
		return false
	}

	rb := make([]byte, 1500)
	n, _, err := conn.ReadFrom(rb)
	if err != nil {
		return false
	}
	rm, err := icmp.ParseMessage(1, rb[:n]) // 1 = iana ProtocolICMP
	if err != nil {
		return false
	}
	return rm.Type == ipv4.ICMPTypeEchoReply
}

// ── TCP dial ───────────────────────────────────────────────

// TCPProber treats an accepted connection on Port as alive. Fallback for
// hosts/environments where ICMP is blocked.
type TCPProber struct {
	Port    int
	Timeout time.Duration
}

func (p *TCPProber) Probe(ctx context.Context, host string) bool {
	if host == "" {
		return false
	}
	d := net.Dialer{Timeout: p.Timeout}
	conn, err := d.DialContext(ctx, "tcp", net.JoinHostPort(host, strconv.Itoa(p.Port)))
	if err != nil {
		return false
	}
	_ = conn.Close()
	return true
}
