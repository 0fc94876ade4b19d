// Command panelctl is an interactive console that sends packets to a
// panel. Commands can also be given on the command line, in which
// case they run once and panelctl exits.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/abiosoft/ishell"
	log "github.com/sirupsen/logrus"

	"loadpanel/internal/link"
	"loadpanel/internal/logsetup"
	"loadpanel/panel"
)

const (
	shellKey          = "$console"
	defaultDemoFrames = 100
	demoInterval      = 100 * time.Millisecond
)

// Console holds the link the commands write to.
type Console struct {
	Shell  *ishell.Shell
	port   string
	sender *link.Sender
}

var commands = []*ishell.Cmd{
	&PortsCmd,
	&ResetCmd,
	&IndicatorsCmd,
	&NetworkCmd,
	&FrameCmd,
	&RawCmd,
	&DemoCmd,
}

// NewConsole returns a Console sending to sender.
func NewConsole(port string, sender *link.Sender) *Console {
	c := &Console{
		Shell:  ishell.New(),
		port:   port,
		sender: sender,
	}
	c.Shell.Set(shellKey, c)
	c.Shell.SetPrompt(fmt.Sprintf("%s > ", port))
	for _, cmd := range commands {
		c.Shell.AddCmd(cmd)
	}
	return c
}

// ConsoleFrom gets the Console from an ishell context.
func ConsoleFrom(c *ishell.Context) *Console {
	return c.Get(shellKey).(*Console)
}

func sendPacket(c *ishell.Context, p panel.Packet, err error) {
	if err != nil {
		c.Err(err)
		return
	}
	if err := ConsoleFrom(c).sender.Send(p); err != nil {
		c.Err(err)
		return
	}
	c.Println("OK")
}

var (
	// PortsCmd lists the available ports.
	PortsCmd = ishell.Cmd{
		Name:    "ports",
		Aliases: []string{"p"},
		Help:    "list the available ports",
		Func: func(c *ishell.Context) {
			ports, err := link.AvailablePorts()
			if err != nil {
				c.Err(err)
				return
			}
			for _, p := range ports {
				c.Println(p)
			}
		},
	}

	// ResetCmd sends a Reset packet.
	ResetCmd = ishell.Cmd{
		Name:    "reset",
		Aliases: []string{"r"},
		Help:    "turn every indicator off",
		Func: func(c *ishell.Context) {
			sendPacket(c, panel.ResetPacket(), nil)
		},
	}

	// IndicatorsCmd sends a SetIndicators packet.
	IndicatorsCmd = ishell.Cmd{
		Name:    "leds",
		Aliases: []string{"l"},
		Help:    "CPU1 CPU2 CPU3 CPU4 (0-255)",
		Func: func(c *ishell.Context) {
			p, err := parseIndicators(c.Args)
			sendPacket(c, p, err)
		},
	}

	// NetworkCmd sends a NetworkState packet.
	NetworkCmd = ishell.Cmd{
		Name:    "net",
		Aliases: []string{"n"},
		Help:    "TX RX (on/off)",
		Func: func(c *ishell.Context) {
			p, err := parseNetwork(c.Args)
			sendPacket(c, p, err)
		},
	}

	// FrameCmd sends a RenderFrame packet.
	FrameCmd = ishell.Cmd{
		Name:    "frame",
		Aliases: []string{"f"},
		Help:    "CPU1 CPU2 CPU3 CPU4 TX_FINE RX_FINE [TX_WIDE RX_WIDE] (0-255)",
		Func: func(c *ishell.Context) {
			p, err := parseFrame(c.Args)
			sendPacket(c, p, err)
		},
	}

	// RawCmd writes arbitrary bytes.
	RawCmd = ishell.Cmd{
		Name:    "raw",
		Aliases: []string{"w"},
		Help:    "BYTE... (sent as is, without framing)",
		Func: func(c *ishell.Context) {
			data, err := parseBytes(c.Args)
			if err != nil {
				c.Err(err)
				return
			}
			if err := ConsoleFrom(c).sender.Write(data); err != nil {
				c.Err(err)
				return
			}
			c.Println("OK")
		},
	}

	// DemoCmd animates every output.
	DemoCmd = ishell.Cmd{
		Name:    "demo",
		Aliases: []string{"d"},
		Help:    "[FRAMES] animate the indicators and the display",
		Func: func(c *ishell.Context) {
			frames := defaultDemoFrames
			if len(c.Args) > 0 {
				n, err := strconv.Atoi(c.Args[0])
				if err != nil || n <= 0 {
					c.Err(fmt.Errorf("invalid FRAMES %q", c.Args[0]))
					return
				}
				frames = n
			}
			if err := runDemo(ConsoleFrom(c).sender, frames, demoInterval); err != nil {
				c.Err(err)
				return
			}
			c.Println("OK")
		},
	}
)

// Run processes args as a single command, or starts the interactive
// shell when there are none.
func (c *Console) Run(args ...string) error {
	if len(args) > 0 {
		return c.Shell.Process(args...)
	}
	c.Shell.Printf("Connected to %s\n", c.port)
	c.Shell.Run()
	return nil
}

func main() {
	var opts link.PortOptions
	logOpts := logsetup.Register(flag.CommandLine)
	port := flag.String("port", "", "Port to write to: a serial port, tcp:HOST:PORT or mqtt://BROKER/TOPIC")
	flag.IntVar(&opts.BaudRate, "baud", link.DefaultBaudRate, "Serial baud rate")
	flag.StringVar(&opts.Parity, "parity", "N", "Serial parity: N, E or O")
	flag.Parse()
	logOpts.Apply()

	if *port == "" {
		fmt.Fprintln(os.Stderr, "-port is required")
		flag.Usage()
		os.Exit(2)
	}
	conn, err := link.Open(*port, opts)
	if err != nil {
		log.Fatalf("opening %s: %v", *port, err)
	}
	sender := link.NewSender(conn)
	defer sender.Close()
	// Start from a known state, like a freshly connected host does
	if err := sender.Send(panel.ResetPacket()); err != nil {
		log.Fatalf("resetting panel: %v", err)
	}
	if err := NewConsole(*port, sender).Run(flag.Args()...); err != nil {
		log.Fatal(err)
	}
}
