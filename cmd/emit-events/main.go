package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	flags "github.com/jessevdk/go-flags"

	"github.com/okian/beacon/internal/emitevents"
	"github.com/okian/beacon/pkg/logger"
)

const defaultTimeout = 30 * time.Second

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

type options struct {
	WriteKey string        `short:"k" long:"write-key" env:"BEACON_WRITE_KEY" description:"Segment write key"`
	Endpoint string        `long:"endpoint" env:"BEACON_ENDPOINT" description:"Segment endpoint override"`
	Origin   string        `long:"origin" default:"https://beacon.example.com" description:"Origin URL reported by API events"`
	DID      string        `long:"did" default:"did:3:beacon-sample" description:"DID hashed into node events"`
	Address  string        `long:"address" default:"/orbitdb/beacon-sample.root" description:"Database address used in events"`
	Space    string        `long:"space" default:"beacon-sample" description:"Space name used in events"`
	DryRun   bool          `short:"n" long:"dry-run" description:"Log payloads instead of sending them"`
	Timeout  time.Duration `long:"timeout" default:"30s" description:"Upper bound for flushing the client"`
	JSON     bool          `long:"json" description:"Log as JSON"`
	Verbose  bool          `short:"v" long:"verbose" description:"Enable debug logging"`
}

func main() {
	var opts options
	if _, err := flags.Parse(&opts); err != nil {
		if flags.WroteHelp(err) {
			return
		}
		os.Exit(2)
	}

	format := logger.FormatText
	if opts.JSON {
		format = logger.FormatJSON
	}
	if err := logger.Init(logger.WithFormat(format)); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	if opts.Verbose {
		_ = logger.SetLevelString("debug")
	}
	log := logger.Get()

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	res, err := emitevents.Run(ctx, &emitevents.Config{
		WriteKey:   strings.TrimSpace(opts.WriteKey),
		Endpoint:   opts.Endpoint,
		Origin:     opts.Origin,
		DID:        opts.DID,
		Address:    opts.Address,
		Space:      opts.Space,
		DryRun:     opts.DryRun,
		Timeout:    timeout,
		AppVersion: version,
	}, log)
	if err != nil {
		log.Error(ctx, "emit events failed", logger.Error(err))
		os.Exit(1)
	}
	if len(res.Failed) > 0 {
		log.Error(ctx, "some events were not forwarded", logger.Any("events", res.Failed))
		os.Exit(1)
	}
}
