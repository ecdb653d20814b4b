package tmp36

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

// ADC is an analog input whose samples are normalized to [0.0, 1.0] of the
// reference voltage.
type ADC interface {
	Setup() error
	Read(pin string) (float64, error)
}

const (
	// AM335x ADC resolution is 12 bits.
	adcMaxRaw = 4095

	adcOverlay    = "BB-ADC"
	adcDriverName = "am335x-adc"
)

var (
	ErrNoADC      = errors.New("ADC subsystem not available")
	ErrNotSetup   = errors.New("ADC not set up")
	ErrUnknownPin = errors.New("unknown ADC pin")

	// SetupTimeout bounds how long Setup waits for the overlay to bring up the
	// IIO device.
	SetupTimeout = 2 * time.Second
)

var bonePins = map[string]int{
	"P9_39": 0,
	"P9_40": 1,
	"P9_37": 2,
	"P9_38": 3,
	"P9_33": 4,
	"P9_36": 5,
	"P9_35": 6,
}

// Channel returns the AIN channel behind a header pin name such as "P9_40" or
// "AIN1".
func Channel(pin string) (int, error) {
	name := strings.ToUpper(strings.TrimSpace(pin))
	if ch, ok := bonePins[name]; ok {
		return ch, nil
	}
	if rest, ok := strings.CutPrefix(name, "AIN"); ok {
		if ch, err := strconv.Atoi(rest); err == nil && ch >= 0 && ch <= 6 {
			return ch, nil
		}
	}
	return -1, fmt.Errorf("%w: %q", ErrUnknownPin, pin)
}

// BoneADC reads the BeagleBone AM335x ADC through the IIO sysfs interface.
type BoneADC struct {
	// Root is the sysfs mount point, "/sys" on a real board.
	Root string

	device string
}

func NewBoneADC(root string) *BoneADC {
	if root == "" {
		root = "/sys"
	}
	return &BoneADC{Root: root}
}

// Setup locates the ADC's IIO device, loading the BB-ADC overlay through the
// cape manager first if the device is not present yet.
func (b *BoneADC) Setup() error {
	if dev, err := b.findDevice(); err == nil {
		b.device = dev
		log.Debugf("Found ADC at %v", dev)
		return nil
	}

	slots, err := b.findSlots()
	if err != nil {
		return err
	}
	log.Debugf("Loading %v overlay via %v", adcOverlay, slots)
	if err := os.WriteFile(slots, []byte(adcOverlay), 0644); err != nil {
		return fmt.Errorf("Failed to load %v overlay: %w", adcOverlay, err)
	}

	deadline := time.Now().Add(SetupTimeout)
	for {
		dev, err := b.findDevice()
		if err == nil {
			b.device = dev
			log.Infof("ADC ready at %v", dev)
			return nil
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("Failed waiting for ADC after loading %v: %w", adcOverlay, err)
		}
		time.Sleep(50 * time.Millisecond)
	}
}

// Read returns the pin's raw value scaled to [0.0, 1.0].
func (b *BoneADC) Read(pin string) (float64, error) {
	if b.device == "" {
		return 0, ErrNotSetup
	}
	ch, err := Channel(pin)
	if err != nil {
		return 0, err
	}
	path := filepath.Join(b.device, fmt.Sprintf("in_voltage%d_raw", ch))
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("Failed to read %v: %w", pin, err)
	}
	raw, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, fmt.Errorf("Failed to parse %v value %q: %w", pin, data, err)
	}
	if raw < 0 || raw > adcMaxRaw {
		return 0, fmt.Errorf("%v value %d out of range", pin, raw)
	}
	return float64(raw) / adcMaxRaw, nil
}

func (b *BoneADC) findDevice() (string, error) {
	devs, _ := filepath.Glob(filepath.Join(b.Root, "bus", "iio", "devices", "iio:device*"))
	for _, dev := range devs {
		name, err := os.ReadFile(filepath.Join(dev, "name"))
		if err != nil {
			continue
		}
		if strings.Contains(string(name), adcDriverName) {
			return dev, nil
		}
	}
	return "", ErrNoADC
}

func (b *BoneADC) findSlots() (string, error) {
	patterns := []string{
		filepath.Join(b.Root, "devices", "platform", "bone_capemgr", "slots"),
		filepath.Join(b.Root, "devices", "bone_capemgr.*", "slots"),
	}
	for _, p := range patterns {
		matches, _ := filepath.Glob(p)
		if len(matches) > 0 {
			return matches[0], nil
		}
	}
	return "", ErrNoADC
}
