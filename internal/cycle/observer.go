package cycle

import (
	"time"

	"github.com/Moshkopp/LuxTempMeter/internal/acquire"
	"github.com/Moshkopp/LuxTempMeter/internal/bthome"
)

// Observer receives diagnostics from a cycle. Implementations must not block
// for long and cannot influence the cycle.
type Observer interface {
	Light(ok bool, r acquire.Light)
	Battery(r acquire.Battery)
	Environment(r acquire.Environment)
	Broadcast(pid uint8, p bthome.Payload)
	Suspend(d time.Duration, err error)
}

// NopObserver discards everything.
type NopObserver struct{}

func (NopObserver) Light(bool, acquire.Light) {}
func (NopObserver) Battery(acquire.Battery) {}
func (NopObserver) Environment(acquire.Environment) {}
func (NopObserver) Broadcast(uint8, bthome.Payload) {}
func (NopObserver) Suspend(time.Duration, error) {}
