package tmp36

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	log "github.com/sirupsen/logrus"
)

const (
	DefaultPin      = "P9_40"
	DefaultInterval = time.Second
)

// Sampler reads one ADC pin at a fixed interval and prints each reading.
type Sampler struct {
	ADC      ADC
	Pin      string
	Interval time.Duration
	Out      io.Writer
}

func NewSampler(adc ADC) *Sampler {
	return &Sampler{
		ADC:      adc,
		Pin:      DefaultPin,
		Interval: DefaultInterval,
		Out:      os.Stdout,
	}
}

// Sample takes a single reading from the configured pin.
func (s *Sampler) Sample() (Reading, error) {
	raw, err := s.ADC.Read(s.Pin)
	if err != nil {
		return Reading{}, err
	}
	return NewReading(raw), nil
}

// Format renders a reading as printed by Run. Both figures are truncated
// toward zero.
func Format(r Reading) string {
	return fmt.Sprintf("(Sampled millivolts: %d), Temperature: %d", int64(r.Millivolts), int64(r.Celsius))
}

// Run sets up the ADC and prints one reading per interval until ctx is done
// or a read fails.
func (s *Sampler) Run(ctx context.Context) error {
	if err := s.setup(); err != nil {
		return err
	}
	log.Debugf("Sampling %v every %v", s.Pin, s.Interval)

	for {
		if ctx.Err() != nil {
			return nil
		}
		if err := s.emit(); err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(s.Interval):
		}
	}
}

// Once sets up the ADC and prints a single reading.
func (s *Sampler) Once() error {
	if err := s.setup(); err != nil {
		return err
	}
	return s.emit()
}

func (s *Sampler) setup() error {
	if err := s.ADC.Setup(); err != nil {
		return fmt.Errorf("Failed to set up ADC: %w", err)
	}
	return nil
}

func (s *Sampler) emit() error {
	r, err := s.Sample()
	if err != nil {
		return fmt.Errorf("Failed to sample %v: %w", s.Pin, err)
	}
	log.Debugf("%v: %v, %v", s.Pin, r.Voltage(), r.Temperature())
	_, err = fmt.Fprintln(s.Out, Format(r))
	return err
}
