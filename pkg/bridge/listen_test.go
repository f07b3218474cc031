package bridge

import (
    "context"
    "errors"
    "net"
    "sync"
    "testing"
    "time"
)

// recorder captures published notifications for assertions.
type recorder struct {
    mu     sync.Mutex
    topics []string
    texts  []string
}

func (r *recorder) Publish(topic string, payload []byte) {
    r.mu.Lock()
    defer r.mu.Unlock()
    r.topics = append(r.topics, topic)
    r.texts = append(r.texts, string(payload))
}

func (r *recorder) snapshot() []string {
    r.mu.Lock()
    defer r.mu.Unlock()
    return append([]string(nil), r.texts...)
}

func startListener(t *testing.T, rec *recorder) (*Listener, *net.UDPAddr, context.CancelFunc, chan error) {
    t.Helper()
    l := NewListener("127.0.0.1:0", rec)
    if err := l.Listen(); err != nil {
        t.Fatalf("listen: %v", err)
    }
    ctx, cancel := context.WithCancel(context.Background())
    errCh := make(chan error, 1)
    go func() { errCh <- l.Serve(ctx) }()
    t.Cleanup(cancel)
    return l, l.Addr().(*net.UDPAddr), cancel, errCh
}

func sendDatagram(t *testing.T, to *net.UDPAddr, payload []byte) {
    t.Helper()
    c, err := net.DialUDP("udp", nil, to)
    if err != nil { t.Fatalf("dial listener: %v", err) }
    defer c.Close()
    if _, err := c.Write(payload); err != nil {
        t.Fatalf("send datagram: %v", err)
    }
}

func waitFor(t *testing.T, cond func() bool) bool {
    t.Helper()
    deadline := time.Now().Add(2 * time.Second)
    for time.Now().Before(deadline) {
        if cond() { return true }
        time.Sleep(10 * time.Millisecond)
    }
    return cond()
}

func TestListenerRepublishesTextDatagram(t *testing.T) {
    rec := &recorder{}
    _, addr, _, _ := startListener(t, rec)

    sendDatagram(t, addr, []byte("hello"))

    if !waitFor(t, func() bool { return len(rec.snapshot()) == 1 }) {
        t.Fatalf("expected one notification, got %v", rec.snapshot())
    }
    rec.mu.Lock()
    defer rec.mu.Unlock()
    if rec.topics[0] != TopicUDPMessage {
        t.Fatalf("topic = %q, want %q", rec.topics[0], TopicUDPMessage)
    }
    if rec.texts[0] != "hello" {
        t.Fatalf("payload = %q, want %q", rec.texts[0], "hello")
    }
}

func TestListenerSkipsNonUTF8AndContinues(t *testing.T) {
    rec := &recorder{}
    _, addr, _, _ := startListener(t, rec)

    sendDatagram(t, addr, []byte{0xff, 0xfe, 0xfd})
    sendDatagram(t, addr, []byte("next"))

    if !waitFor(t, func() bool { return len(rec.snapshot()) == 1 }) {
        t.Fatalf("expected exactly one notification, got %v", rec.snapshot())
    }
    if got := rec.snapshot(); got[0] != "next" {
        t.Fatalf("payload = %q, want %q (non-text datagram must be dropped)", got[0], "next")
    }
}

func TestListenerStopsOnCancel(t *testing.T) {
    rec := &recorder{}
    _, _, cancel, errCh := startListener(t, rec)

    cancel()
    select {
    case err := <-errCh:
        if err != nil {
            t.Fatalf("serve returned %v, want nil on cancellation", err)
        }
    case <-time.After(2 * time.Second):
        t.Fatalf("listener did not stop after cancellation")
    }
}

func TestListenerBindFailureIsTyped(t *testing.T) {
    // Occupy a port, then ask the listener to bind the same one.
    taken, err := net.ListenUDP("udp", &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1)})
    if err != nil { t.Fatalf("bind blocker: %v", err) }
    defer taken.Close()

    l := NewListener(taken.LocalAddr().String(), &recorder{})
    err = l.Listen()
    if err == nil {
        t.Fatalf("expected bind failure on an occupied port")
    }
    var be *BindError
    if !errors.As(err, &be) {
        t.Fatalf("error = %T, want *BindError", err)
    }
}

func TestListenerServeRequiresListen(t *testing.T) {
    l := NewListener("127.0.0.1:0", &recorder{})
    if err := l.Serve(context.Background()); err == nil {
        t.Fatalf("expected error when serving before listen")
    }
}
