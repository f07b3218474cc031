package main

import (
    "context"
    "os"
    "os/signal"
    "syscall"

    "go.uber.org/zap"

    "github.com/aurabirb/babble-web/pkg/bridge"
    "github.com/aurabirb/babble-web/pkg/bus"
    "github.com/aurabirb/babble-web/pkg/codec"
    "github.com/aurabirb/babble-web/pkg/config"
    "github.com/aurabirb/babble-web/pkg/observability"
)

// run is the main entry point after CLI parsing.
func run(opts Options) int {
    cfg, err := config.Load(opts.ConfigPath)
    if err != nil {
        _, _ = os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
        return 1
    }

    logger, err := observability.SetupLogger(cfg.Log)
    if err != nil {
        _, _ = os.Stderr.WriteString("failed to setup logger: " + err.Error() + "\n")
        return 1
    }
    defer func() { _ = logger.Sync() }()

    zap.L().Info("babble-bridge started", zap.String("app", cfg.AppName))
    zap.L().Info("effective configuration", zap.Any("config", cfg))

    reg := codec.NewRegistry()
    if c, err := codec.CBOR(); err == nil {
        reg.Register(c)
    } else {
        zap.L().Warn("cbor codec unavailable", zap.Error(err))
    }
    batchCodec := reg.Get(cfg.Bridge.BatchContentType)
    if batchCodec == nil {
        zap.L().Error("no codec for batch content type",
            zap.String("content_type", cfg.Bridge.BatchContentType))
        return 1
    }

    conns := bridge.NewConnManager()
    defer conns.Release()
    fwd := bridge.NewForwarder(conns, cfg.Bridge.AddressPrefix)

    // Batches arrive over the notification bus, either published in-process
    // on the send-blendshapes topic or carried as the text of an inbound UDP
    // datagram. Payloads that do not decode as a batch are not an error.
    forwardPayload := func(payload []byte) {
        var batch bridge.Batch
        if err := batchCodec.Unmarshal(payload, &batch); err != nil {
            zap.L().Debug("payload is not a blendshape batch", zap.Error(err))
            return
        }
        if len(batch.Data) == 0 || batch.Port == 0 {
            return
        }
        if err := fwd.Forward(batch); err != nil {
            zap.L().Error("forward failed", zap.Error(err))
        }
    }

    b := bus.New()
    b.Subscribe(bridge.TopicSendBlendshapes, forwardPayload)
    b.Subscribe(bridge.TopicUDPMessage, forwardPayload)

    ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
    defer stop()

    lst := bridge.NewListener(cfg.Bridge.ListenAddr, b)
    if err := lst.Listen(); err != nil {
        zap.L().Error("failed to start udp listener", zap.Error(err))
        return 1
    }

    zap.L().Info("bridge is running; press Ctrl+C to exit")
    if err := lst.Serve(ctx); err != nil {
        zap.L().Error("udp listener terminated", zap.Error(err))
        return 1
    }
    return 0
}
