package bridge

import (
    "net"
    "sync"

    "go.uber.org/zap"
)

// ConnManager keeps at most one outbound UDP socket, keyed by the destination
// port it was created for. Sends targeting the same port share the socket; a
// port change closes the old socket and binds a fresh one. The acquire
// decision runs under a single mutex so concurrent callers cannot race the
// replacement; sends on the returned socket happen outside the lock.
type ConnManager struct {
    mu      sync.Mutex
    conn    *net.UDPConn
    port    uint16
    created uint64
}

func NewConnManager() *ConnManager { return &ConnManager{} }

// Acquire returns the socket for port, reusing the held one when the port
// matches and rebinding otherwise. The returned conn is shared: multiple
// callers may send on it concurrently. On a bind failure the manager holds
// nothing and returns a *BindError.
func (m *ConnManager) Acquire(port uint16) (*net.UDPConn, error) {
    m.mu.Lock()
    defer m.mu.Unlock()

    if m.conn != nil && m.port == port {
        return m.conn, nil
    }
    if m.conn != nil {
        zap.L().Info("destination port changed, replacing connection",
            zap.Uint16("old_port", m.port), zap.Uint16("new_port", port))
        _ = m.conn.Close()
        m.conn = nil
        m.port = 0
    }

    // Wildcard address, OS-assigned ephemeral local port.
    c, err := net.ListenUDP("udp", nil)
    if err != nil {
        return nil, &BindError{Port: port, Err: err}
    }
    m.conn = c
    m.port = port
    m.created++
    zap.L().Debug("opened outbound udp socket",
        zap.Uint16("dest_port", port), zap.Stringer("laddr", c.LocalAddr()))
    return c, nil
}

// Release drops the held socket and clears the recorded port. Safe to call
// repeatedly and when nothing is held.
func (m *ConnManager) Release() {
    m.mu.Lock()
    defer m.mu.Unlock()
    if m.conn == nil {
        return
    }
    zap.L().Info("closed outbound udp socket", zap.Uint16("dest_port", m.port))
    _ = m.conn.Close()
    m.conn = nil
    m.port = 0
}

// Created reports how many sockets the manager has opened over its lifetime.
// It increments exactly once per port transition.
func (m *ConnManager) Created() uint64 {
    m.mu.Lock()
    defer m.mu.Unlock()
    return m.created
}
