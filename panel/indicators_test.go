package panel

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIndicatorBank(t *testing.T) {
	var o [IndicatorCount]testDuty
	b := NewIndicatorBank(&o[0], &o[1], &o[2], &o[3])
	for ii := range o {
		assert.Equal(t, 1, o[ii].writes, "output %d not initialized", ii+1)
		assert.Equal(t, uint8(0), o[ii].value)
	}

	b.Set(2, 128).Set(4, 255)
	assert.Equal(t, [IndicatorCount]uint8{0, 128, 0, 255}, b.Duties())
	assert.Equal(t, uint8(128), o[1].value)
	assert.Equal(t, uint8(255), o[3].value)
	assert.Equal(t, 1, o[0].writes)

	// Out of range indices are ignored
	b.Set(0, 1).Set(5, 1).Set(-1, 1)
	assert.Equal(t, [IndicatorCount]uint8{0, 128, 0, 255}, b.Duties())

	b.SetFour(1, 2, 3, 4)
	assert.Equal(t, [IndicatorCount]uint8{1, 2, 3, 4}, b.Duties())
	for ii := range o {
		assert.Equal(t, uint8(ii+1), o[ii].value)
	}

	b.SetAll(7)
	assert.Equal(t, [IndicatorCount]uint8{7, 7, 7, 7}, b.Duties())
	assert.Equal(t, uint8(7), o[2].value)
}

func TestIndicatorBankMissingOutputs(t *testing.T) {
	var o testDuty
	b := NewIndicatorBank(nil, &o, nil, nil)
	b.SetFour(10, 20, 30, 40)
	assert.Equal(t, uint8(20), o.value)
	assert.Equal(t, [IndicatorCount]uint8{10, 20, 30, 40}, b.Duties())
}

func TestNetworkFlags(t *testing.T) {
	var tx, rx testPin
	f := NewNetworkFlags(&tx, &rx)
	assert.Equal(t, 1, tx.writes)
	assert.Equal(t, 1, rx.writes)
	assert.False(t, f.TX())

	f.Set(true, false)
	assert.True(t, tx.on)
	assert.False(t, rx.on)
	assert.True(t, f.TX())
	assert.False(t, f.RX())

	f.Set(false, true)
	assert.False(t, tx.on)
	assert.True(t, rx.on)

	// Without outputs only the state is tracked
	f = NewNetworkFlags(nil, nil)
	f.Set(true, true)
	assert.True(t, f.TX())
	assert.True(t, f.RX())
}
