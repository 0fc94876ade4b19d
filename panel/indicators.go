package panel

// DutyOutput is a PWM capable output. 0 is fully off and 255 is
// fully on.
type DutyOutput interface {
	SetDuty(duty uint8)
}

// BinaryOutput is an on/off output.
type BinaryOutput interface {
	Set(on bool)
}

// IndicatorCount is the number of duty outputs in an IndicatorBank.
const IndicatorCount = 4

// IndicatorBank drives four duty outputs. Every call writes
// through to the outputs immediately.
type IndicatorBank struct {
	outputs [IndicatorCount]DutyOutput
	duties  [IndicatorCount]uint8
}

// NewIndicatorBank returns a bank driving the given outputs, in
// index order 1 to 4. All outputs are set to 0.
func NewIndicatorBank(o1, o2, o3, o4 DutyOutput) *IndicatorBank {
	b := &IndicatorBank{outputs: [IndicatorCount]DutyOutput{o1, o2, o3, o4}}
	b.SetAll(0)
	return b
}

func (b *IndicatorBank) write(ii int, value uint8) {
	b.duties[ii] = value
	if o := b.outputs[ii]; o != nil {
		o.SetDuty(value)
	}
}

// Set sets the indicator at index (1 to 4) to value. Other indices
// are ignored.
func (b *IndicatorBank) Set(index int, value uint8) *IndicatorBank {
	if index >= 1 && index <= IndicatorCount {
		b.write(index-1, value)
	}
	return b
}

// SetAll sets every indicator to value.
func (b *IndicatorBank) SetAll(value uint8) *IndicatorBank {
	for ii := range b.outputs {
		b.write(ii, value)
	}
	return b
}

// SetFour sets the four indicators at once.
func (b *IndicatorBank) SetFour(first, second, third, fourth uint8) *IndicatorBank {
	b.write(0, first)
	b.write(1, second)
	b.write(2, third)
	b.write(3, fourth)
	return b
}

// Duties returns the last value written to each indicator.
func (b *IndicatorBank) Duties() [IndicatorCount]uint8 {
	return b.duties
}

// NetworkFlags drives the tx and rx activity outputs.
type NetworkFlags struct {
	tx, rx     BinaryOutput
	txOn, rxOn bool
}

// NewNetworkFlags returns NetworkFlags driving the given outputs,
// both initially off.
func NewNetworkFlags(tx, rx BinaryOutput) *NetworkFlags {
	f := &NetworkFlags{tx: tx, rx: rx}
	f.Set(false, false)
	return f
}

// Set updates both outputs.
func (f *NetworkFlags) Set(tx, rx bool) {
	f.txOn, f.rxOn = tx, rx
	if f.tx != nil {
		f.tx.Set(tx)
	}
	if f.rx != nil {
		f.rx.Set(rx)
	}
}

// TX reports whether the tx output is on.
func (f *NetworkFlags) TX() bool { return f.txOn }

// RX reports whether the rx output is on.
func (f *NetworkFlags) RX() bool { return f.rxOn }
