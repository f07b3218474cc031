// babble-send forwards one blendshape batch from the command line, for
// exercising an OSC consumer without the full bridge running.
//
//	babble-send -port 8883 jawOpen=0.5 eyeBlinkLeft=1.0
//	babble-send -file batch.json
package main

import (
    "encoding/json"
    "errors"
    "flag"
    "fmt"
    "os"
    "strconv"
    "strings"

    "go.uber.org/zap"

    "github.com/aurabirb/babble-web/pkg/bridge"
)

func main() {
    fs := flag.NewFlagSet("babble-send", flag.ExitOnError)
    port := fs.Uint("port", 8883, "Destination UDP port")
    prefix := fs.String("prefix", "/", "OSC address prefix")
    file := fs.String("file", "", `JSON batch file ({"data":{...},"port":n}); overrides positional args`)
    _ = fs.Parse(os.Args[1:])

    logger, _ := zap.NewDevelopment()
    zap.ReplaceGlobals(logger)
    defer func() { _ = logger.Sync() }()

    batch := bridge.Batch{Data: map[string]float32{}, Port: uint16(*port)}
    if *file != "" {
        raw, err := os.ReadFile(*file)
        if err != nil {
            fatal(err)
        }
        if err := json.Unmarshal(raw, &batch); err != nil {
            fatal(err)
        }
    } else {
        for _, arg := range fs.Args() {
            name, val, ok := strings.Cut(arg, "=")
            if !ok {
                fatal(fmt.Errorf("expected name=value, got %q", arg))
            }
            fv, err := strconv.ParseFloat(val, 32)
            if err != nil {
                fatal(fmt.Errorf("channel %q: %w", name, err))
            }
            batch.Data[name] = float32(fv)
        }
    }
    if len(batch.Data) == 0 {
        fatal(errors.New("no channels to send"))
    }

    conns := bridge.NewConnManager()
    defer conns.Release()
    if err := bridge.NewForwarder(conns, *prefix).Forward(batch); err != nil {
        fatal(err)
    }
    fmt.Printf("sent %d channels to 127.0.0.1:%d\n", len(batch.Data), batch.Port)
}

func fatal(err error) {
    _, _ = os.Stderr.WriteString(err.Error() + "\n")
    os.Exit(1)
}
