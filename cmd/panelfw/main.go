//go:build tinygo

// Command panelfw is the panel firmware for an Arduino Uno class
// board with an SSD1306 display. Build it with
//
//	tinygo flash -target=arduino ./cmd/panelfw
package main

import (
	"image/color"
	"machine"

	"tinygo.org/x/drivers/ssd1306"

	"loadpanel/panel"
)

const (
	baudRate      = 115200
	i2cFrequency  = 100 * machine.KHz
	displayAddr   = 0x3C
	resetPin      = machine.D2
	txPin         = machine.D4
	rxPin         = machine.D5
	activityPin   = machine.D6
	indicator1Pin = machine.D11
	indicator2Pin = machine.D10
	indicator3Pin = machine.D9
	indicator4Pin = machine.D3
)

var (
	black = color.RGBA{0, 0, 0, 0}
	white = color.RGBA{255, 255, 255, 255}
)

// pwm is the subset of the machine PWM timers used here.
type pwm interface {
	Configure(config machine.PWMConfig) error
	Channel(pin machine.Pin) (uint8, error)
	Top() uint32
	Set(channel uint8, value uint32)
}

type pwmOutput struct {
	timer   pwm
	channel uint8
}

func newPWMOutput(timer pwm, pin machine.Pin) *pwmOutput {
	ch, err := timer.Channel(pin)
	if err != nil {
		println("pwm channel:", err.Error())
		return nil
	}
	return &pwmOutput{timer: timer, channel: ch}
}

func (o *pwmOutput) SetDuty(duty uint8) {
	o.timer.Set(o.channel, o.timer.Top()*uint32(duty)/255)
}

type pinOutput machine.Pin

func newPinOutput(pin machine.Pin) pinOutput {
	pin.Configure(machine.PinConfig{Mode: machine.PinOutput})
	return pinOutput(pin)
}

func (p pinOutput) Set(on bool) {
	machine.Pin(p).Set(on)
}

// resetButton is wired between the pin and ground.
type resetButton machine.Pin

func newResetButton(pin machine.Pin) resetButton {
	pin.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
	return resetButton(pin)
}

func (b resetButton) Asserted() bool {
	return !machine.Pin(b).Get()
}

// uartSource reads from the UART receive buffer without blocking.
type uartSource struct {
	uart *machine.UART
}

func (s uartSource) ReadByte() (byte, error) {
	if s.uart.Buffered() == 0 {
		return 0, panel.ErrNoData
	}
	return s.uart.ReadByte()
}

// display draws straight into the driver buffer, which is the only
// framebuffer the board has room for.
type display struct {
	dev *ssd1306.Device
}

func (d display) SetPixel(x int, y int, on bool) {
	c := black
	if on {
		c = white
	}
	d.dev.SetPixel(int16(x), int16(y), c)
}

func (d display) Flush() error {
	return d.dev.Display()
}

func main() {
	uart := machine.DefaultUART
	uart.Configure(machine.UARTConfig{BaudRate: baudRate})

	i2c := machine.I2C0
	if err := i2c.Configure(machine.I2CConfig{Frequency: i2cFrequency}); err != nil {
		println("i2c:", err.Error())
	}
	dev := ssd1306.NewI2C(i2c)
	dev.Configure(ssd1306.Config{
		Address: displayAddr,
		Width:   panel.Width,
		Height:  panel.Height,
	})
	dev.ClearBuffer()

	for _, t := range []pwm{machine.Timer1, machine.Timer2} {
		if err := t.Configure(machine.PWMConfig{}); err != nil {
			println("pwm:", err.Error())
		}
	}

	p := panel.Peripherals{
		Source:   uartSource{uart: uart},
		Reset:    newResetButton(resetPin),
		TX:       newPinOutput(txPin),
		RX:       newPinOutput(rxPin),
		Activity: newPinOutput(activityPin),
		Display:  display{dev: dev},
	}
	for ii, c := range []struct {
		timer pwm
		pin   machine.Pin
	}{
		{machine.Timer2, indicator1Pin},
		{machine.Timer1, indicator2Pin},
		{machine.Timer1, indicator3Pin},
		{machine.Timer2, indicator4Pin},
	} {
		if o := newPWMOutput(c.timer, c.pin); o != nil {
			p.Indicators[ii] = o
		}
	}

	d := panel.NewDevice(p)
	if err := d.SelfTest(); err != nil {
		println("display:", err.Error())
	}
	for {
		if res := d.Step(); res.Err != nil && res.Outcome == panel.OutcomePacket {
			println("display:", res.Err.Error())
		}
	}
}
