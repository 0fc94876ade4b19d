// Command panelemu runs the panel firmware on a host, reading the
// byte stream from a serial port, a TCP socket or an MQTT topic and
// showing the display on the terminal or writing it to files.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	log "github.com/sirupsen/logrus"

	"loadpanel/internal/link"
	"loadpanel/internal/logsetup"
	"loadpanel/internal/sink"
	"loadpanel/internal/virtual"
	"loadpanel/panel"
)

const (
	pollInterval = 20 * time.Millisecond
)

type options struct {
	port     string
	serial   link.PortOptions
	terminal bool
	pbm      string
	png      string
	pngEvery int
	selfTest bool
	list     bool
}

func parseFlags(fs *flag.FlagSet, args []string) (*options, *logsetup.Options, error) {
	o := &options{}
	logOpts := logsetup.Register(fs)
	fs.StringVar(&o.port, "port", "", "Port to read from: a serial port, tcp:HOST:PORT or mqtt://BROKER/TOPIC")
	fs.IntVar(&o.serial.BaudRate, "baud", link.DefaultBaudRate, "Serial baud rate")
	fs.IntVar(&o.serial.DataBits, "data-bits", 8, "Serial data bits")
	fs.IntVar(&o.serial.StopBits, "stop-bits", 1, "Serial stop bits")
	fs.StringVar(&o.serial.Parity, "parity", "N", "Serial parity: N, E or O")
	fs.BoolVar(&o.terminal, "terminal", false, "Draw the display on the terminal")
	fs.StringVar(&o.pbm, "pbm", "", "Append every frame as a PBM image to this file, - for stdout")
	fs.StringVar(&o.png, "png", "", "Write the latest frame as a PNG image to this file")
	fs.IntVar(&o.pngEvery, "png-every", 1, "Only write the PNG image every N frames")
	fs.BoolVar(&o.selfTest, "selftest", false, "Run the startup self test")
	fs.BoolVar(&o.list, "list", false, "List the available ports and exit")
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	if !o.list && o.port == "" {
		return nil, nil, errors.New("-port is required")
	}
	if _, err := o.serial.Normalize(); err != nil {
		return nil, nil, err
	}
	if o.pngEvery < 1 {
		return nil, nil, fmt.Errorf("invalid -png-every %d", o.pngEvery)
	}
	return o, logOpts, nil
}

// flushTargets returns the sinks selected by the options. The
// returned function closes any file they opened.
func flushTargets(o *options) ([]panel.FlushFunc, func(), error) {
	var targets []panel.FlushFunc
	var files []*os.File
	closeAll := func() {
		for _, f := range files {
			f.Close()
		}
	}
	if o.terminal {
		fmt.Print("\x1b[2J")
		targets = append(targets, sink.Terminal(os.Stdout, true))
	}
	switch o.pbm {
	case "":
	case "-":
		targets = append(targets, sink.PBM(os.Stdout))
	default:
		f, err := os.Create(o.pbm)
		if err != nil {
			closeAll()
			return nil, nil, err
		}
		files = append(files, f)
		targets = append(targets, sink.PBM(f))
	}
	if o.png != "" {
		targets = append(targets, sink.Every(o.pngEvery, sink.PNG(o.png)))
	}
	return targets, closeAll, nil
}

func logResult(res panel.StepResult) {
	switch res.Outcome {
	case panel.OutcomeReset:
		log.Debug("reset asserted")
	case panel.OutcomePacket:
		if res.Err != nil {
			log.Warnf("error updating display: %v", res.Err)
		}
		if res.Applied {
			log.Debugf("%s with %d bytes applied", res.Kind, res.Length)
		} else {
			log.Debugf("dropped %s with %d bytes", res.Kind, res.Length)
		}
	case panel.OutcomeTransportError:
		log.Warnf("error reading from port: %v", res.Err)
	}
}

func watchBoard(ctx context.Context, b *virtual.Board) {
	var prev virtual.State
	for {
		select {
		case <-ctx.Done():
			return
		case <-b.Changes():
			s := b.State()
			if s.Duties != prev.Duties {
				log.Infof("indicators %v", s.Duties)
			}
			if s.TX != prev.TX || s.RX != prev.RX {
				log.Infof("network tx=%v rx=%v", s.TX, s.RX)
			}
			prev = s
		}
	}
}

func run(o *options) error {
	if o.list {
		ports, err := link.AvailablePorts()
		if err != nil {
			return err
		}
		for _, p := range ports {
			fmt.Println(p)
		}
		return nil
	}

	conn, err := link.Open(o.port, o.serial)
	if err != nil {
		return fmt.Errorf("opening %s: %v", o.port, err)
	}
	poller := link.NewPoller(conn, pollInterval)
	defer poller.Close()
	log.Infof("listening on %s", o.port)

	targets, closeFiles, err := flushTargets(o)
	if err != nil {
		return err
	}
	defer closeFiles()

	board := virtual.NewBoard()
	p := board.Peripherals()
	p.Source = poller
	p.Display = panel.NewFramebuffer(targets...)
	device := panel.NewDevice(p)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	if !o.terminal {
		go watchBoard(ctx, board)
	}

	if o.selfTest {
		if err := device.SelfTest(); err != nil {
			return err
		}
	} else if err := p.Display.Flush(); err != nil {
		return err
	}

	var linkErr error
	err = device.Run(ctx, func(res panel.StepResult) {
		logResult(res)
		if res.Outcome == panel.OutcomeTransportError && errors.Is(res.Err, link.ErrClosed) {
			linkErr = res.Err
			cancel()
		}
	})
	stats := device.DecoderStats()
	log.Infof("%d packets, %d unrecognized identifiers, %d oversize lengths",
		stats.Packets, stats.Unrecognized, stats.Oversize)
	if linkErr != nil {
		return linkErr
	}
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func main() {
	o, logOpts, err := parseFlags(flag.CommandLine, os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		flag.Usage()
		os.Exit(2)
	}
	logOpts.Apply()
	if err := run(o); err != nil {
		log.Fatal(err)
	}
}
