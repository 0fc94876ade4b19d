package main // import "loadpanel"

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"net"
	"path/filepath"
	"sync"
	"time"

	"fyne.io/fyne"
	"fyne.io/fyne/app"
	"fyne.io/fyne/dialog"
	"fyne.io/fyne/layout"
	"fyne.io/fyne/widget"

	log "github.com/sirupsen/logrus"
	dlgs "github.com/sqweek/dialog"

	"loadpanel/internal/link"
	"loadpanel/internal/logsetup"
	"loadpanel/internal/sink"
	"loadpanel/internal/virtual"
	"loadpanel/panel"
)

const (
	pollInterval  = 20 * time.Millisecond
	resetPulse    = 200 * time.Millisecond
	windowTitle   = "Load Panel"
	indicatorsRow = "CPU"
)

var (
	indicatorColor = color.RGBA{R: 0xff, G: 0xb0, B: 0x20, A: 0xff}
	txColor        = color.RGBA{R: 0xff, G: 0x30, B: 0x30, A: 0xff}
	rxColor        = color.RGBA{R: 0x30, G: 0xff, B: 0x50, A: 0xff}
	activityColor  = color.RGBA{R: 0x40, G: 0x90, B: 0xff, A: 0xff}
)

// App is an opaque type that contains the whole application state
type App struct {
	app              fyne.App
	connected        bool
	ports            []string
	serial           link.PortOptions
	window           fyne.Window
	portsSelect      *widget.Select
	connectButton    *widget.Button
	statusLabel      *widget.Label
	resetButton      *widget.Button
	injectButton     *widget.Button
	screenshotButton *widget.Button
	display          *PanelImage
	indicators       [panel.IndicatorCount]*LED
	txLED            *LED
	rxLED            *LED
	activityLED      *LED
	connectedPort    string

	board  *virtual.Board
	device *panel.Device
	source *linkSource
	inject *link.Sender

	frameMu sync.Mutex
	frame   *image.Gray
}

func newApp(serial link.PortOptions) *App {
	a := &App{serial: serial}
	a.app = app.New()
	a.updatePorts()
	a.connectButton = widget.NewButton("Connect", a.connectOrDisconnect)
	a.connectButton.Disable()
	a.portsSelect = widget.NewSelect(a.ports, a.portSelectionChanged)
	a.statusLabel = widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{Monospace: true})
	a.resetButton = widget.NewButton("Reset", a.pulseReset)
	a.injectButton = widget.NewButton("Inject...", a.showInjectDialog)
	a.screenshotButton = widget.NewButton("Save Screenshot", a.saveScreenshot)
	a.display = NewPanelImage()

	var leds []fyne.CanvasObject
	leds = append(leds, widget.NewLabel(indicatorsRow))
	for ii := range a.indicators {
		a.indicators[ii] = NewLED(indicatorColor)
		leds = append(leds, a.indicators[ii].Content())
	}
	a.txLED = NewLED(txColor)
	a.rxLED = NewLED(rxColor)
	a.activityLED = NewLED(activityColor)
	leds = append(leds,
		layout.NewSpacer(),
		widget.NewLabel("TX"), a.txLED.Content(),
		widget.NewLabel("RX"), a.rxLED.Content(),
		widget.NewLabel("Data"), a.activityLED.Content(),
	)

	a.window = a.app.NewWindow(windowTitle)
	a.window.SetContent(widget.NewVBox(
		widget.NewHBox(
			widget.NewLabel("Port:"),
			a.portsSelect,
			layout.NewSpacer(),
			a.connectButton,
		),
		&a.display.Image,
		widget.NewHBox(leds...),
		layout.NewSpacer(),
		widget.NewHBox(
			a.statusLabel,
			layout.NewSpacer(),
			a.resetButton,
			a.injectButton,
			a.screenshotButton,
		),
	))
	return a
}

// setupDevice creates the virtual panel. Bytes written to the
// returned inject sender reach the device as if they came from the
// connected port.
func (a *App) setupDevice() {
	injectHost, injectDevice := net.Pipe()
	a.inject = link.NewSender(injectHost)
	a.source = newLinkSource(link.NewPoller(injectDevice, 0), pollInterval)
	a.board = virtual.NewBoard()
	p := a.board.Peripherals()
	p.Source = a.source
	p.Display = panel.NewFramebuffer(a.onFlush)
	a.device = panel.NewDevice(p)
}

// onFlush runs on the device goroutine.
func (a *App) onFlush(fb *panel.Framebuffer) error {
	frame := image.NewGray(fb.Bounds())
	draw.Draw(frame, frame.Rect, fb, image.Point{}, draw.Src)
	a.frameMu.Lock()
	a.frame = frame
	a.frameMu.Unlock()
	a.display.SetFrame(frame)
	return nil
}

func (a *App) lastFrame() *image.Gray {
	a.frameMu.Lock()
	defer a.frameMu.Unlock()
	return a.frame
}

func (a *App) runDevice(ctx context.Context) {
	if err := a.device.SelfTest(); err != nil {
		log.Errorf("self test failed: %v", err)
	}
	a.device.Run(ctx, func(res panel.StepResult) {
		switch res.Outcome {
		case panel.OutcomePacket:
			if res.Applied {
				log.Debugf("%s with %d bytes applied", res.Kind, res.Length)
			} else {
				log.Debugf("dropped %s with %d bytes", res.Kind, res.Length)
			}
		case panel.OutcomeTransportError:
			log.Warnf("error reading from port: %v", res.Err)
			if errors.Is(res.Err, link.ErrClosed) {
				go a.linkLost()
			}
		}
	})
}

func (a *App) watchBoard(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-a.board.Changes():
			s := a.board.State()
			for ii, led := range a.indicators {
				led.SetLevel(s.Duties[ii])
			}
			a.txLED.SetOn(s.TX)
			a.rxLED.SetOn(s.RX)
			a.activityLED.SetOn(s.Activity)
		}
	}
}

func (a *App) updateStatus() {
	stats := a.device.DecoderStats()
	var text string
	if a.connected {
		text = fmt.Sprintf("%s: %d packets", a.connectedPort, stats.Packets)
	} else {
		text = fmt.Sprintf("Disconnected: %d packets", stats.Packets)
	}
	if dropped := stats.Unrecognized + stats.Oversize; dropped > 0 {
		text += fmt.Sprintf(", %d dropped", dropped)
	}
	a.statusLabel.SetText(text)
}

func (a *App) setConnected(port string) {
	a.connectedPort = port
	a.connected = port != ""
	if a.connected {
		a.connectButton.SetText("Disconnect")
	} else {
		a.connectButton.SetText("Connect")
	}
	a.updateStatus()
}

func (a *App) connectOrDisconnect() {
	if a.connected {
		if prev := a.source.attach(nil); prev != nil {
			prev.Close()
		}
		a.setConnected("")
		a.portSelectionChanged(a.portsSelect.Selected)
		return
	}
	port := a.portsSelect.Selected
	a.connectButton.Disable()
	a.statusLabel.SetText("Connecting to " + port + "...")
	go func() {
		conn, err := link.Open(port, a.serial)
		if err != nil {
			a.showError(err)
			a.setConnected("")
			a.portSelectionChanged(a.portsSelect.Selected)
			return
		}
		log.Infof("connected to %s (%s)", port, a.serial)
		if prev := a.source.attach(link.NewPoller(conn, pollInterval)); prev != nil {
			prev.Close()
		}
		a.setConnected(port)
		a.connectButton.Enable()
	}()
}

func (a *App) linkLost() {
	if a.connected {
		log.Warnf("lost connection to %s", a.connectedPort)
		a.setConnected("")
		a.portSelectionChanged(a.portsSelect.Selected)
	}
}

func (a *App) updatePorts() {
	a.ports = a.availablePorts()
}

func (a *App) updatePortsSelect() {
	for range time.Tick(time.Second) {
		a.updatePorts()
		found := false
		selected := a.portsSelect.Selected
		for _, v := range a.ports {
			if v == selected {
				found = true
				break
			}
		}
		a.portsSelect.Options = a.ports
		if !found {
			if a.connected {
				a.connectOrDisconnect()
			}
			selected = ""
		}
		a.portsSelect.Selected = selected
		if a.portsSelect.OnChanged != nil {
			a.portsSelect.OnChanged(selected)
		}
		a.portsSelect.Refresh()
		a.updateStatus()
	}
}

func (a *App) availablePorts() []string {
	ports, err := link.AvailablePorts()
	if err != nil {
		a.showError(err)
		return nil
	}
	return ports
}

func (a *App) portSelectionChanged(selected string) {
	if a.connected {
		if a.portsSelect.Selected != a.connectedPort {
			a.portsSelect.SetSelected(a.connectedPort)
		}
	} else {
		if selected != "" {
			a.connectButton.Enable()
		} else {
			a.connectButton.Disable()
		}
	}
}

func (a *App) pulseReset() {
	a.board.Button.Press()
	time.AfterFunc(resetPulse, a.board.Button.Release)
}

func (a *App) showInjectDialog() {
	newInjectDialog(a.inject, a.window)
}

func (a *App) saveScreenshot() {
	frame := a.lastFrame()
	if frame == nil {
		a.showError(errors.New("nothing has been drawn yet"))
		return
	}
	filename, err := dlgs.File().Filter("PNG image (*.png)", "png").Title("Save Screenshot").Save()
	if err != nil {
		if err != dlgs.ErrCancelled {
			a.showError(err)
		}
		return
	}
	if filepath.Ext(filename) == "" {
		filename += ".png"
	}
	if err := sink.WritePNG(filename, frame); err != nil {
		a.showError(err)
		return
	}
	log.Infof("screenshot saved to %s", filename)
}

func (a *App) showError(err error) {
	if a.window != nil {
		dialog.ShowError(err, a.window)
	}
	log.Println(err)
}

// Run starts the app
func (a *App) Run() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	a.setupDevice()
	a.updateStatus()
	go a.watchBoard(ctx)
	go a.runDevice(ctx)
	go a.updatePortsSelect()
	a.window.SetFixedSize(true)
	a.window.ShowAndRun()
}

func main() {
	var serial link.PortOptions
	logOpts := logsetup.Register(flag.CommandLine)
	flag.IntVar(&serial.BaudRate, "baud", link.DefaultBaudRate, "Serial baud rate")
	flag.StringVar(&serial.Parity, "parity", "N", "Serial parity: N, E or O")
	flag.Parse()
	logOpts.Apply()
	serial, err := serial.Normalize()
	if err != nil {
		log.Fatal(err)
	}
	app := newApp(serial)
	app.Run()
}
