// babble-probe binds a UDP port and prints every OSC message it receives.
// It stands in for an external OSC consumer during development.
package main

import (
    "flag"
    "fmt"
    "net"
    "os"

    "github.com/hypebeast/go-osc/osc"
)

func main() {
    fs := flag.NewFlagSet("babble-probe", flag.ExitOnError)
    addr := fs.String("addr", "127.0.0.1:8883", "Local address to bind")
    _ = fs.Parse(os.Args[1:])

    laddr, err := net.ResolveUDPAddr("udp", *addr)
    if err != nil {
        fatal(err)
    }
    conn, err := net.ListenUDP("udp", laddr)
    if err != nil {
        fatal(err)
    }
    defer conn.Close()

    fmt.Println("listening on", conn.LocalAddr())
    buf := make([]byte, 64*1024)
    for {
        n, raddr, err := conn.ReadFromUDP(buf)
        if err != nil {
            fatal(err)
        }
        pkt, err := osc.ParsePacket(string(buf[:n]))
        if err != nil {
            fmt.Printf("%v: %d bytes, not OSC: %v\n", raddr, n, err)
            continue
        }
        printPacket(raddr, pkt)
    }
}

func printPacket(from net.Addr, pkt osc.Packet) {
    switch p := pkt.(type) {
    case *osc.Message:
        fmt.Printf("%v: %s %v\n", from, p.Address, p.Arguments)
    case *osc.Bundle:
        for _, m := range p.Messages {
            fmt.Printf("%v: %s %v\n", from, m.Address, m.Arguments)
        }
    }
}

func fatal(err error) {
    _, _ = os.Stderr.WriteString(err.Error() + "\n")
    os.Exit(1)
}
