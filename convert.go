package tmp36

import (
	"periph.io/x/conn/v3/physic"
)

// TMP36 transfer function on a 1.8V reference ADC.
const (
	ReferenceMillivolts float64 = 1800
	OffsetMillivolts    float64 = 500
	MillivoltsPerDegree float64 = 10
)

// Millivolts converts a normalized ADC sample to millivolts at the pin.
func Millivolts(raw float64) float64 {
	return raw * ReferenceMillivolts
}

// Celsius converts the sensor output voltage to degrees Celsius.
func Celsius(mv float64) float64 {
	return (mv - OffsetMillivolts) / MillivoltsPerDegree
}

// Reading is one sample and the values derived from it.
type Reading struct {
	Raw        float64
	Millivolts float64
	Celsius    float64
}

func NewReading(raw float64) Reading {
	mv := Millivolts(raw)
	return Reading{
		Raw:        raw,
		Millivolts: mv,
		Celsius:    Celsius(mv),
	}
}

func (r Reading) Voltage() physic.ElectricPotential {
	return physic.ElectricPotential(r.Millivolts * float64(physic.MilliVolt))
}

func (r Reading) Temperature() physic.Temperature {
	return physic.ZeroCelsius + physic.Temperature(r.Celsius*float64(physic.Celsius))
}
