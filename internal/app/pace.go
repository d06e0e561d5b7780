package app

import "time"

// maxCatchUp bounds the generations owed after a stall, so a slow frame
// never turns into a burst of steps.
const maxCatchUp = 4

// pacer spreads generations evenly over wall time at a target rate, while
// the window itself keeps redrawing at its own tick rate.
type pacer struct {
	step        time.Duration
	accumulator time.Duration
	last        time.Time
	now         func() time.Time
}

func newPacer(tps int) *pacer {
	p := &pacer{now: time.Now}
	p.setTPS(tps)
	p.accumulator = p.step
	return p
}

func (p *pacer) setTPS(tps int) {
	if tps <= 0 {
		tps = 30
	}
	p.step = time.Second / time.Duration(tps)
}

// due reports how many generations are owed since the previous call.
func (p *pacer) due() int {
	now := p.now()
	if p.last.IsZero() {
		p.last = now
	}
	p.accumulator += now.Sub(p.last)
	p.last = now
	n := int(p.accumulator / p.step)
	p.accumulator -= time.Duration(n) * p.step
	if n > maxCatchUp {
		n = maxCatchUp
		p.accumulator = 0
	}
	return n
}
