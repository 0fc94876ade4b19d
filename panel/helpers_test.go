package panel

import "errors"

type testDuty struct {
	value  uint8
	writes int
}

func (o *testDuty) SetDuty(v uint8) {
	o.value = v
	o.writes++
}

type testPin struct {
	on     bool
	writes int
}

func (p *testPin) Set(on bool) {
	p.on = on
	p.writes++
}

type testButton struct {
	pressed bool
}

func (b *testButton) Asserted() bool { return b.pressed }

// testSource returns its data one byte at a time, then ErrNoData.
// Errors queued with fail are returned before the next byte.
type testSource struct {
	data  []byte
	fails []error
}

func (s *testSource) ReadByte() (byte, error) {
	if len(s.fails) > 0 {
		err := s.fails[0]
		s.fails = s.fails[1:]
		return 0, err
	}
	if len(s.data) == 0 {
		return 0, ErrNoData
	}
	b := s.data[0]
	s.data = s.data[1:]
	return b, nil
}

func (s *testSource) push(data ...byte) {
	s.data = append(s.data, data...)
}

func (s *testSource) fail(err error) {
	s.fails = append(s.fails, err)
}

var errTestFlush = errors.New("flush failed")

type testRig struct {
	duties  [IndicatorCount]*testDuty
	tx, rx  *testPin
	act     *testPin
	button  *testButton
	source  *testSource
	fb      *Framebuffer
	flushes int
	device  *Device
}

func newTestRig() *testRig {
	r := &testRig{
		tx:     &testPin{},
		rx:     &testPin{},
		act:    &testPin{},
		button: &testButton{},
		source: &testSource{},
	}
	r.fb = NewFramebuffer(func(*Framebuffer) error {
		r.flushes++
		return nil
	})
	p := Peripherals{
		Source:   r.source,
		Reset:    r.button,
		TX:       r.tx,
		RX:       r.rx,
		Activity: r.act,
		Display:  r.fb,
	}
	for ii := range r.duties {
		r.duties[ii] = &testDuty{}
		p.Indicators[ii] = r.duties[ii]
	}
	r.device = NewDevice(p)
	return r
}

func (r *testRig) dutyValues() [IndicatorCount]uint8 {
	var v [IndicatorCount]uint8
	for ii, d := range r.duties {
		v[ii] = d.value
	}
	return v
}

// drain steps the device until the source is empty and returns every
// non idle result.
func (r *testRig) drain() []StepResult {
	var out []StepResult
	for len(r.source.data) > 0 || len(r.source.fails) > 0 {
		res := r.device.Step()
		if res.Outcome != OutcomeIdle {
			out = append(out, res)
		}
	}
	return out
}
