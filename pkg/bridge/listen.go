package bridge

import (
    "context"
    "errors"
    "net"
    "unicode/utf8"

    "go.uber.org/zap"
)

// Notifier publishes application-level notifications. The daemon backs it
// with the in-process bus; tests back it with a recording stub.
type Notifier interface {
    Publish(topic string, payload []byte)
}

// Listener receives raw UDP datagrams on a fixed local address and
// republishes each text payload as a TopicUDPMessage notification. It shares
// no state with the outbound side.
type Listener struct {
    addr   string
    notify Notifier
    conn   *net.UDPConn
}

// NewListener builds a Listener for addr (host:port, e.g. "127.0.0.1:8884").
func NewListener(addr string, n Notifier) *Listener {
    return &Listener{addr: addr, notify: n}
}

// Listen binds the listener socket. A bind failure is returned to the caller
// as *BindError; the listener does not start.
func (l *Listener) Listen() error {
    laddr, err := net.ResolveUDPAddr("udp", l.addr)
    if err != nil {
        return &AddrError{Addr: l.addr, Err: err}
    }
    c, err := net.ListenUDP("udp", laddr)
    if err != nil {
        return &BindError{Port: uint16(laddr.Port), Err: err}
    }
    l.conn = c
    zap.L().Info("udp listener bound", zap.Stringer("addr", c.LocalAddr()))
    return nil
}

// Addr returns the bound local address, or nil before Listen.
func (l *Listener) Addr() net.Addr {
    if l.conn == nil {
        return nil
    }
    return l.conn.LocalAddr()
}

// Serve receives datagrams until ctx is cancelled. Receive failures after
// startup are logged and the loop continues; a single bad datagram must not
// take down the bridge. Payloads that are not valid UTF-8 are dropped with a
// debug log and no notification.
func (l *Listener) Serve(ctx context.Context) error {
    if l.conn == nil {
        return errors.New("listener is not bound; call Listen first")
    }
    go func() { <-ctx.Done(); _ = l.conn.Close() }()

    buf := make([]byte, 64*1024)
    for {
        n, raddr, err := l.conn.ReadFromUDP(buf)
        if err != nil {
            if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
                zap.L().Info("udp listener stopped")
                return nil
            }
            zap.L().Warn("udp receive failed", zap.Error(err))
            continue
        }
        if !utf8.Valid(buf[:n]) {
            zap.L().Debug("dropping non-text datagram",
                zap.Int("bytes", n), zap.Stringer("from", raddr))
            continue
        }
        payload := append([]byte(nil), buf[:n]...)
        l.notify.Publish(TopicUDPMessage, payload)
    }
}

// Run binds and serves in one call, for callers that do not need the bound
// address before starting.
func (l *Listener) Run(ctx context.Context) error {
    if err := l.Listen(); err != nil {
        return err
    }
    return l.Serve(ctx)
}
