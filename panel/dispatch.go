package panel

const (
	setIndicatorsSize = IndicatorCount
	networkStateSize  = 2
)

// Dispatcher applies decoded packets to the indicators and the
// display.
type Dispatcher struct {
	Bank     *IndicatorBank
	Flags    *NetworkFlags
	Renderer *Renderer
}

// Dispatch applies p. It returns false when the packet had no
// effect because its payload doesn't have the length its kind
// requires. The only error is a failure to flush the display.
//
// Dispatch reads p.Payload synchronously and doesn't retain it.
func (d *Dispatcher) Dispatch(p Packet) (bool, error) {
	switch p.Kind {
	case KindReset:
		d.Bank.SetAll(0)
	case KindSetIndicators:
		if len(p.Payload) != setIndicatorsSize {
			return false, nil
		}
		d.Bank.SetFour(p.Payload[0], p.Payload[1], p.Payload[2], p.Payload[3])
	case KindNetworkState:
		if len(p.Payload) != networkStateSize {
			return false, nil
		}
		d.Flags.Set(p.Payload[0] != 0, p.Payload[1] != 0)
	case KindRenderFrame:
		f, ok := ParseFrame(p.Payload)
		if !ok {
			return false, nil
		}
		if err := d.Renderer.DrawFrame(f); err != nil {
			return true, err
		}
	default:
		return false, nil
	}
	return true, nil
}
