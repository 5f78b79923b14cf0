package monitor

// BaseDPI is the DPI of a 100% scaled display.
const BaseDPI = 96

// DPI awareness modes, strongest first.
const (
	DPIPerMonitorV2 = "per-monitor-v2"
	DPIPerMonitor   = "per-monitor"
	DPISystem       = "system"
	DPIUnaware      = "unaware"
)
