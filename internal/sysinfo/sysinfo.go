// Package sysinfo reads the identity of the machine being benchmarked.
// Nothing here feeds the score; it is presentation only.
package sysinfo

import (
	"context"
	"log/slog"
	"runtime"
	"strings"

	"github.com/klauspost/cpuid/v2"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
)

const (
	Unknown = "Unknown"
	// NoTemperature is reported when no sensor gives a positive reading.
	NoTemperature = -1.0
)

// Info is the system identity shown next to results.
type Info struct {
	OS           string  `json:"os"`
	CPU          string  `json:"cpu"`
	LogicalCores int     `json:"logical_cores"`
	RAMTotalMB   uint64  `json:"ram_mb"`
	RAMUsedMB    uint64  `json:"ram_used_mb"`
	TemperatureC float64 `json:"temperature_c"`
}

// Sources are the OS queries behind a Reader. Tests swap them out.
type Sources struct {
	Host         func(ctx context.Context) (*host.InfoStat, error)
	CPU          func(ctx context.Context) ([]cpu.InfoStat, error)
	Memory       func(ctx context.Context) (*mem.VirtualMemoryStat, error)
	Temperatures func(ctx context.Context) ([]host.TemperatureStat, error)
	BrandName    func() string
}

// DefaultSources queries the running machine via gopsutil and CPUID.
func DefaultSources() Sources {
	return Sources{
		Host:         host.InfoWithContext,
		CPU:          cpu.InfoWithContext,
		Memory:       mem.VirtualMemoryWithContext,
		Temperatures: host.SensorsTemperaturesWithContext,
		BrandName:    func() string { return cpuid.CPU.BrandName },
	}
}

// Reader collects Info. Every failed query degrades to a placeholder.
type Reader struct {
	src    Sources
	logger *slog.Logger
}

func NewReader(src Sources, logger *slog.Logger) *Reader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reader{src: src, logger: logger}
}

// Collect reads the full identity.
func (r *Reader) Collect(ctx context.Context) Info {
	total, used := r.memory(ctx)
	return Info{
		OS:           r.osName(ctx),
		CPU:          r.cpuModel(ctx),
		LogicalCores: runtime.NumCPU(),
		RAMTotalMB:   total,
		RAMUsedMB:    used,
		TemperatureC: r.Temperature(ctx),
	}
}

func (r *Reader) osName(ctx context.Context) string {
	if r.src.Host != nil {
		info, err := r.src.Host(ctx)
		if err == nil && info != nil && info.Platform != "" {
			return strings.TrimSpace(info.Platform + " " + info.PlatformVersion)
		}
		if err != nil {
			r.logger.Debug("Host info unavailable", "error", err)
		}
	}
	return runtime.GOOS
}

func (r *Reader) cpuModel(ctx context.Context) string {
	if r.src.CPU != nil {
		infos, err := r.src.CPU(ctx)
		if err == nil {
			for _, c := range infos {
				if c.ModelName != "" {
					return c.ModelName
				}
			}
		} else {
			r.logger.Debug("CPU info unavailable", "error", err)
		}
	}
	if r.src.BrandName != nil {
		if name := strings.TrimSpace(r.src.BrandName()); name != "" {
			return name
		}
	}
	return Unknown
}

func (r *Reader) memory(ctx context.Context) (totalMB, usedMB uint64) {
	if r.src.Memory == nil {
		return 0, 0
	}
	vm, err := r.src.Memory(ctx)
	if err != nil || vm == nil {
		r.logger.Debug("Memory info unavailable", "error", err)
		return 0, 0
	}
	return vm.Total / (1 << 20), vm.Used / (1 << 20)
}

// Temperature returns the first positive sensor reading in Celsius, or
// NoTemperature.
func (r *Reader) Temperature(ctx context.Context) float64 {
	if r.src.Temperatures == nil {
		return NoTemperature
	}
	// gopsutil returns partial readings together with a warning error,
	// so readings are used even when err is set.
	temps, err := r.src.Temperatures(ctx)
	if err != nil {
		r.logger.Debug("Temperature sensors reported an error", "error", err)
	}
	for _, t := range temps {
		if t.Temperature > 0 {
			return t.Temperature
		}
	}
	return NoTemperature
}
