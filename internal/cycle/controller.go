// Package cycle runs one wake cycle of the sensor node: measure, encode,
// broadcast, sleep.
package cycle

import (
	"fmt"

	"github.com/Moshkopp/LuxTempMeter/internal/acquire"
	"github.com/Moshkopp/LuxTempMeter/internal/bthome"
	"github.com/Moshkopp/LuxTempMeter/internal/config"
	"github.com/Moshkopp/LuxTempMeter/internal/power"
)

// Sensors is what the controller needs from the acquisition layer.
type Sensors interface {
	ReadLight() (bool, acquire.Light)
	ReadBattery() acquire.Battery
	ReadEnvironment() acquire.Environment
}

type Options struct {
	Sensors   Sensors
	Radio     Radio
	Counter   *power.Counter
	Suspender power.Suspender
	Clock     acquire.Clock
	Observer  Observer
}

// Controller is the single entry point invoked once per wake.
type Controller struct {
	cfg config.Node
	o   Options
}

func NewController(cfg config.Node, o Options) *Controller {
	if o.Clock == nil {
		o.Clock = acquire.SleepClock{}
	}
	if o.Observer == nil {
		o.Observer = NopObserver{}
	}
	return &Controller{cfg: cfg, o: o}
}

// RunCycle measures, broadcasts and suspends. The suspend call is made on
// every path, including a failed step or a panic; on hardware it does not
// return. The returned error only reports what went wrong in this cycle.
func (c *Controller) RunCycle() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("cycle panic: %v", r)
		}
		c.o.Observer.Suspend(c.cfg.SleepDuration, err)
		c.o.Suspender.Suspend(c.cfg.SleepDuration)
	}()

	ok, light := c.o.Sensors.ReadLight()
	c.o.Observer.Light(ok, light)

	batt := c.o.Sensors.ReadBattery()
	c.o.Observer.Battery(batt)

	env := c.o.Sensors.ReadEnvironment()
	c.o.Observer.Environment(env)

	return c.broadcast(light, batt, env)
}

// broadcast advances the sequence id and runs one advertising burst. The
// counter moves before any radio activity, so a failed burst loses an id
// rather than repeating one.
func (c *Controller) broadcast(light acquire.Light, batt acquire.Battery, env acquire.Environment) error {
	pid, err := c.o.Counter.Next()
	if err != nil {
		return err
	}

	payload := bthome.Encode(pid, light.Lux, batt.Voltage, env.TemperatureC, env.HumidityPct)
	c.o.Observer.Broadcast(pid, payload)

	radio := c.o.Radio
	if err := radio.Init(); err != nil {
		return fmt.Errorf("radio init: %w", err)
	}
	defer radio.Deinit()

	rc := c.cfg.Radio
	if err := radio.SetTxPower(rc.TxPowerDBm); err != nil {
		return fmt.Errorf("radio tx power: %w", err)
	}
	adv := Advertisement{
		Flags:       rc.Flags,
		ServiceUUID: bthome.ServiceUUID,
		ServiceData: payload.Bytes(),
		IntervalMin: rc.IntervalMin,
		IntervalMax: rc.IntervalMax,
	}
	if err := radio.Configure(adv); err != nil {
		return fmt.Errorf("radio configure: %w", err)
	}
	if err := radio.Start(); err != nil {
		radio.Stop()
		return fmt.Errorf("radio start: %w", err)
	}

	c.o.Clock.Sleep(rc.Burst)

	if err := radio.Stop(); err != nil {
		return fmt.Errorf("radio stop: %w", err)
	}
	return nil
}
