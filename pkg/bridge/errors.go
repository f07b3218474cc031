package bridge

import "fmt"

// BindError reports a failure to open or rebind a UDP socket. The manager
// holds no connection after returning one; the next Acquire retries from
// scratch.
type BindError struct {
    Port uint16
    Err  error
}

func (e *BindError) Error() string {
    return fmt.Sprintf("bind udp socket for port %d: %v", e.Port, e.Err)
}

func (e *BindError) Unwrap() error { return e.Err }

// AddrError reports a destination or listen address that could not be
// constructed or resolved.
type AddrError struct {
    Addr string
    Err  error
}

func (e *AddrError) Error() string { return fmt.Sprintf("resolve %q: %v", e.Addr, e.Err) }
func (e *AddrError) Unwrap() error { return e.Err }

// EncodeError reports the OSC encoder rejecting one channel. The remaining
// channels of the batch are not sent.
type EncodeError struct {
    Channel string
    Err     error
}

func (e *EncodeError) Error() string {
    return fmt.Sprintf("encode osc message for channel %q: %v", e.Channel, e.Err)
}

func (e *EncodeError) Unwrap() error { return e.Err }

// SendError reports a transport failure on one channel's datagram. Channels
// sent before the failing one have already reached the network.
type SendError struct {
    Channel string
    Err     error
}

func (e *SendError) Error() string {
    return fmt.Sprintf("send osc message for channel %q: %v", e.Channel, e.Err)
}

func (e *SendError) Unwrap() error { return e.Err }
