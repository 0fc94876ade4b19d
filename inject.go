package main

import (
	"image/color"
	"strconv"

	"fyne.io/fyne"
	"fyne.io/fyne/canvas"
	"fyne.io/fyne/layout"
	"fyne.io/fyne/theme"
	"fyne.io/fyne/widget"
	log "github.com/sirupsen/logrus"

	"loadpanel/internal/link"
	"loadpanel/panel"
)

const (
	injectDialogWidth = 450

	valueMin = 0
	valueMax = 255

	injectHelpText = `Values are sent to the virtual panel
as soon as they change, as if they came
from the connected port.`
)

type valueBox struct {
	bg        *canvas.Rectangle
	title     *widget.Label
	value     *widget.Label
	slider    *widget.Slider
	content   *fyne.Container
	plus      *widget.Button
	minus     *widget.Button
	val       uint8
	OnChanged func(vb *valueBox)
}

func newValueBox(name string) *valueBox {
	vb := &valueBox{}
	vb.bg = canvas.NewRectangle(theme.BackgroundColor())
	vb.bg.FillColor = color.NRGBA{R: uint8(0), G: uint8(0), B: uint8(0), A: 127}
	vb.bg.StrokeColor = theme.TextColor()
	vb.title = widget.NewLabel(name)
	vb.value = widget.NewLabelWithStyle("0", fyne.TextAlignCenter, fyne.TextStyle{Monospace: true})
	vb.slider = widget.NewSlider(valueMin, valueMax)
	vb.slider.Step = 1
	vb.slider.OnChanged = vb.sliderChanged
	vb.plus = widget.NewButtonWithIcon("", theme.ContentAddIcon(), vb.increaseVal)
	vb.minus = widget.NewButtonWithIcon("", theme.ContentRemoveIcon(), vb.decreaseVal)
	vb.content = fyne.NewContainerWithLayout(vb,
		vb.bg,
		vb.title,
		vb.slider,
		vb.value,
		vb.plus,
		vb.minus,
	)
	vb.UpdateVal(vb.val)
	return vb
}

func (vb *valueBox) Content() fyne.CanvasObject {
	return vb.content
}

func (vb *valueBox) Layout(obj []fyne.CanvasObject, size fyne.Size) {
	const titleWidth = 80
	const valueWidth = 36
	const buttonSize = 12
	titleSize := vb.title.MinSize()
	vb.title.Move(fyne.NewPos(0, (size.Height-titleSize.Height)/2))
	vb.title.Resize(fyne.NewSize(titleWidth, titleSize.Height))

	sliderSize := vb.slider.MinSize()
	vb.slider.Resize(fyne.NewSize(size.Width-titleWidth-theme.Padding()*2-valueWidth-buttonSize, sliderSize.Height))
	vb.slider.Move(fyne.NewPos(titleWidth+theme.Padding(), (size.Height-sliderSize.Height)/2))

	valueSize := vb.value.MinSize()
	vb.value.Resize(fyne.NewSize(valueWidth, valueSize.Height))
	valueX := size.Width - valueWidth - buttonSize - theme.Padding()
	vb.value.Move(fyne.NewPos(valueX, (size.Height-valueSize.Height)/2))

	buttonX := size.Width - buttonSize
	vb.plus.Resize(fyne.NewSize(buttonSize, buttonSize))
	vb.plus.Move(fyne.NewPos(buttonX, size.Height/2-buttonSize-1))
	vb.minus.Resize(fyne.NewSize(buttonSize, buttonSize))
	vb.minus.Move(fyne.NewPos(buttonX, size.Height/2+1))

	bgHeight := buttonSize*2 + 4
	vb.bg.Resize(fyne.NewSize(valueWidth, bgHeight))
	vb.bg.Move(fyne.NewPos(valueX, (size.Height-bgHeight)/2))
}

func (vb *valueBox) MinSize(obj []fyne.CanvasObject) fyne.Size {
	titleSize := vb.title.MinSize()
	return fyne.NewSize(injectDialogWidth-theme.Padding()*2, titleSize.Height)
}

func (vb *valueBox) sliderChanged(val float64) {
	vb.updateValAndNotify(int(val))
}

func (vb *valueBox) UpdateVal(val uint8) {
	vb.val = val
	vb.value.SetText(strconv.Itoa(int(val)))
	vb.slider.Value = float64(val)
	vb.slider.Refresh()
	if val < valueMax {
		vb.plus.Enable()
	} else {
		vb.plus.Disable()
	}
	if val > valueMin {
		vb.minus.Enable()
	} else {
		vb.minus.Disable()
	}
}

func (vb *valueBox) updateValAndNotify(val int) {
	if val < valueMin || val > valueMax {
		return
	}
	vb.UpdateVal(uint8(val))
	if onChanged := vb.OnChanged; onChanged != nil {
		onChanged(vb)
	}
}

func (vb *valueBox) Val() uint8 {
	return vb.val
}

func (vb *valueBox) increaseVal() {
	vb.updateValAndNotify(int(vb.val) + 1)
}

func (vb *valueBox) decreaseVal() {
	vb.updateValAndNotify(int(vb.val) - 1)
}

// injectDialog sends packets built from its sliders to the virtual
// panel.
type injectDialog struct {
	sender  *link.Sender
	win     *widget.PopUp
	bg      *canvas.Rectangle
	title   *widget.Label
	help    *widget.Label
	cpu     [panel.IndicatorCount]*valueBox
	tx      *valueBox
	rx      *valueBox
	legacy  *widget.Check
	boxes   *widget.Box
	buttons *widget.Box
	content *fyne.Container
}

func newInjectDialog(sender *link.Sender, parent fyne.Window) *injectDialog {
	d := &injectDialog{sender: sender}
	d.bg = canvas.NewRectangle(theme.BackgroundColor())
	d.title = widget.NewLabelWithStyle("Inject Packets", fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
	d.help = widget.NewLabelWithStyle(injectHelpText, fyne.TextAlignCenter, fyne.TextStyle{Monospace: true})
	var boxes []fyne.CanvasObject
	for ii := range d.cpu {
		d.cpu[ii] = newValueBox("CPU" + strconv.Itoa(ii+1) + ":")
		d.cpu[ii].OnChanged = d.onValueChanged
		boxes = append(boxes, d.cpu[ii].Content())
	}
	d.tx = newValueBox("TX:")
	d.tx.OnChanged = d.onValueChanged
	d.rx = newValueBox("RX:")
	d.rx.OnChanged = d.onValueChanged
	boxes = append(boxes, d.tx.Content(), d.rx.Content())
	d.legacy = widget.NewCheck("Legacy frames", func(bool) { d.send() })
	boxes = append(boxes, d.legacy)
	d.boxes = widget.NewVBox(boxes...)
	d.buttons = widget.NewHBox(
		widget.NewButtonWithIcon("Reset", theme.DeleteIcon(), d.reset),
		layout.NewSpacer(),
		widget.NewButtonWithIcon("Close", theme.CancelIcon(), d.dismiss),
	)
	d.content = fyne.NewContainerWithLayout(d,
		d.bg,
		d.title,
		d.boxes,
		d.help,
		d.buttons,
	)
	d.win = widget.NewModalPopUp(d.content, parent.Canvas())
	d.applyTheme()
	d.win.Show()
	return d
}

func (d *injectDialog) Layout(obj []fyne.CanvasObject, size fyne.Size) {
	d.bg.Move(fyne.NewPos(-theme.Padding(), -theme.Padding()))
	d.bg.Resize(size.Add(fyne.NewSize(theme.Padding()*2, theme.Padding()*2)))
	titleSize := d.title.MinSize()
	d.title.Move(fyne.NewPos((injectDialogWidth-titleSize.Width)/2, theme.Padding()))

	boxesSize := d.boxes.MinSize()
	d.boxes.Resize(fyne.NewSize(injectDialogWidth, boxesSize.Height))
	d.boxes.Move(fyne.NewPos(0, titleSize.Height+theme.Padding()))

	helpSize := d.help.MinSize()
	d.help.Move(fyne.NewPos((injectDialogWidth-helpSize.Width)/2,
		titleSize.Height+theme.Padding()*3+boxesSize.Height))

	buttonsSize := d.buttons.MinSize()
	d.buttons.Resize(fyne.NewSize(injectDialogWidth, buttonsSize.Height))
	d.buttons.Move(fyne.NewPos(0, size.Height-buttonsSize.Height))
}

func (d *injectDialog) MinSize(obj []fyne.CanvasObject) fyne.Size {
	height := d.title.MinSize().Height + d.boxes.MinSize().Height + d.help.MinSize().Height +
		d.buttons.MinSize().Height + theme.Padding()*6
	return fyne.NewSize(injectDialogWidth, height)
}

func (d *injectDialog) applyTheme() {
	r, g, b, _ := theme.BackgroundColor().RGBA()
	d.bg.FillColor = &color.NRGBA{R: uint8(r), G: uint8(g), B: uint8(b), A: 230}
}

// frame returns the RenderFrame for the current values. The network
// values drive both the fine and the wide bars.
func (d *injectDialog) frame() panel.Packet {
	var f panel.Frame
	for ii, vb := range d.cpu {
		f.CPU[ii] = vb.Val()
	}
	f.TXFine, f.RXFine = d.tx.Val(), d.rx.Val()
	if d.legacy.Checked {
		p := panel.RenderFramePacket(f)
		p.Payload = p.Payload[:panel.LegacyFrameSize]
		return p
	}
	f.TXWide, f.RXWide = f.TXFine, f.RXFine
	return panel.RenderFramePacket(f)
}

func (d *injectDialog) send() {
	packets := []panel.Packet{
		panel.SetIndicatorsPacket(d.cpu[0].Val(), d.cpu[1].Val(), d.cpu[2].Val(), d.cpu[3].Val()),
		panel.NetworkStatePacket(d.tx.Val() > 0, d.rx.Val() > 0),
		d.frame(),
	}
	for _, p := range packets {
		if err := d.sender.Send(p); err != nil {
			log.Warnf("error injecting %s: %v", p, err)
			return
		}
	}
}

func (d *injectDialog) onValueChanged(vb *valueBox) {
	d.send()
}

func (d *injectDialog) reset() {
	for _, vb := range d.cpu {
		vb.UpdateVal(0)
	}
	d.tx.UpdateVal(0)
	d.rx.UpdateVal(0)
	if err := d.sender.Send(panel.ResetPacket()); err != nil {
		log.Warnf("error injecting reset: %v", err)
		return
	}
	d.send()
}

func (d *injectDialog) dismiss() {
	d.win.Hide()
}
