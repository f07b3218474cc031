package bridge

import (
    "net"
    "strconv"

    "github.com/hypebeast/go-osc/osc"
    "go.uber.org/zap"
)

// DefaultAddressPrefix is prepended to channel names when no prefix is
// configured. Consumers expecting a namespaced path (e.g. VRChat's
// "/avatar/parameters/") configure it explicitly.
const DefaultAddressPrefix = "/"

// Forwarder turns one Batch into a sequence of OSC datagrams, one message per
// channel, all addressed to 127.0.0.1:<batch port> on the manager's shared
// socket.
type Forwarder struct {
    conns  *ConnManager
    prefix string
}

// NewForwarder builds a Forwarder sending through conns. prefix is prepended
// verbatim to every channel name when building the OSC address pattern.
func NewForwarder(conns *ConnManager, prefix string) *Forwarder {
    if prefix == "" {
        prefix = DefaultAddressPrefix
    }
    return &Forwarder{conns: conns, prefix: prefix}
}

// Forward sends every channel of the batch as its own OSC message. Channels
// go out in map iteration order; OSC messages are independent, so no ordering
// is promised. The first encode or send failure aborts the remaining
// channels. Datagrams already written stay on the wire; there is no
// partial-success result.
func (f *Forwarder) Forward(batch Batch) error {
    conn, err := f.conns.Acquire(batch.Port)
    if err != nil {
        return err
    }

    target := net.JoinHostPort("127.0.0.1", strconv.Itoa(int(batch.Port)))
    dst, err := net.ResolveUDPAddr("udp", target)
    if err != nil {
        return &AddrError{Addr: target, Err: err}
    }

    for name, value := range batch.Data {
        msg := osc.NewMessage(f.prefix + name)
        msg.Append(value)
        buf, err := msg.MarshalBinary()
        if err != nil {
            return &EncodeError{Channel: name, Err: err}
        }
        if _, err := conn.WriteToUDP(buf, dst); err != nil {
            return &SendError{Channel: name, Err: err}
        }
    }
    zap.L().Debug("forwarded blendshape batch",
        zap.Int("channels", len(batch.Data)), zap.Uint16("dest_port", batch.Port))
    return nil
}
