package orientation

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Permission is the outcome of a capability request.
type Permission int

const (
	PermissionDenied Permission = iota
	PermissionGranted
)

func (p Permission) String() string {
	if p == PermissionGranted {
		return "granted"
	}
	return "denied"
}

// ErrPermissionDenied is returned by Read when the sensor was not granted.
var ErrPermissionDenied = errors.New("tilt sensor permission denied")

// Sensor is a gated tilt source. Callers must request permission before
// reading and fall back to the width/height comparison on denial.
type Sensor interface {
	RequestPermission(ctx context.Context) Permission
	Read(ctx context.Context) (Tilt, error)
}

// NoSensor is the sensor of a platform without tilt hardware.
type NoSensor struct{}

func (NoSensor) RequestPermission(context.Context) Permission { return PermissionDenied }
func (NoSensor) Read(context.Context) (Tilt, error)          { return Tilt{}, ErrPermissionDenied }

// StaticSensor always reports the same tilt.
type StaticSensor struct {
	Tilt Tilt
}

func (StaticSensor) RequestPermission(context.Context) Permission { return PermissionGranted }
func (s StaticSensor) Read(context.Context) (Tilt, error)        { return s.Tilt, nil }

// ParseTilt parses "beta,gamma".
func ParseTilt(s string) (Tilt, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return Tilt{}, fmt.Errorf("tilt %q: want beta,gamma", s)
	}
	beta, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return Tilt{}, fmt.Errorf("tilt beta: %w", err)
	}
	gamma, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return Tilt{}, fmt.Errorf("tilt gamma: %w", err)
	}
	return Tilt{Beta: beta, Gamma: gamma}, nil
}

// DefaultIIORoot is where Linux exposes industrial I/O devices.
const DefaultIIORoot = "/sys/bus/iio/devices"

// IIOSensor reads a Linux IIO accelerometer. Permission is granted when an
// accelerometer directory with readable raw axes exists under Root.
type IIOSensor struct {
	Root string
	dir  string
}

func NewIIOSensor(root string) *IIOSensor {
	if root == "" {
		root = DefaultIIORoot
	}
	return &IIOSensor{Root: root}
}

func (s *IIOSensor) RequestPermission(ctx context.Context) Permission {
	if ctx.Err() != nil {
		return PermissionDenied
	}
	matches, err := filepath.Glob(filepath.Join(s.Root, "iio:device*"))
	if err != nil {
		return PermissionDenied
	}
	for _, dir := range matches {
		if _, err := readAxis(dir, "x"); err != nil {
			continue
		}
		s.dir = dir
		return PermissionGranted
	}
	return PermissionDenied
}

func (s *IIOSensor) Read(ctx context.Context) (Tilt, error) {
	if s.dir == "" {
		return Tilt{}, ErrPermissionDenied
	}
	if err := ctx.Err(); err != nil {
		return Tilt{}, err
	}
	var axes [3]float64
	for i, axis := range []string{"x", "y", "z"} {
		v, err := readAxis(s.dir, axis)
		if err != nil {
			return Tilt{}, fmt.Errorf("read accel %s: %w", axis, err)
		}
		axes[i] = v
	}
	return TiltFromAccel(axes[0], axes[1], axes[2]), nil
}

func readAxis(dir, axis string) (float64, error) {
	raw, err := os.ReadFile(filepath.Join(dir, "in_accel_"+axis+"_raw"))
	if err != nil {
		return 0, err
	}
	return strconv.ParseFloat(strings.TrimSpace(string(raw)), 64)
}

// TiltFromAccel converts a gravity vector into beta/gamma angles using the
// device-orientation convention: beta in [-180, 180], gamma in [-90, 90].
// Scale does not matter, only the direction of the vector.
func TiltFromAccel(x, y, z float64) Tilt {
	beta := math.Atan2(-y, z) * 180 / math.Pi
	gamma := math.Atan2(-x, math.Hypot(y, z)) * 180 / math.Pi
	return Tilt{Beta: beta, Gamma: gamma}
}
