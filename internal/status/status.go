// Package status inspects a running Gmail AI Summarizer instance.
// It uses gopsutil for cross-platform process and socket inspection and
// probes streamlit's health endpoint over HTTP.
package status

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	psnet "github.com/shirou/gopsutil/v4/net"
	"github.com/shirou/gopsutil/v4/process"
)

// ProcInfo describes one matching process.
type ProcInfo struct {
	PID     int32
	Name    string
	CPU     float64 // percent
	RSS     uint64  // bytes
	Cmdline string
}

// Snapshot holds everything Collect found on the host.
type Snapshot struct {
	Script    string
	Port      int
	Processes []ProcInfo
	PortOpen  bool
	HealthOK  bool
	// HealthDetail explains a failed probe (connection refused, bad status).
	HealthDetail string
}

// Running reports whether the front-end looks alive: at least one matching
// process and a listener on the UI port.
func (s *Snapshot) Running() bool {
	return len(s.Processes) > 0 && s.PortOpen
}

const healthTimeout = 3 * time.Second

// Collect scans the process table for processes whose command line references
// the summarizer script, checks the UI port for a listener, and probes
// streamlit's health endpoint.
func Collect(script string, port int) (*Snapshot, error) {
	snap := &Snapshot{Script: script, Port: port}

	procs, err := process.Processes()
	if err != nil {
		return nil, fmt.Errorf("listing processes: %w", err)
	}
	for _, p := range procs {
		cmdline, err := p.Cmdline()
		if err != nil || !strings.Contains(cmdline, script) {
			continue
		}
		info := ProcInfo{PID: p.Pid, Cmdline: cmdline}
		if name, err := p.Name(); err == nil {
			info.Name = name
		}
		if cpu, err := p.CPUPercent(); err == nil {
			info.CPU = cpu
		}
		if mi, err := p.MemoryInfo(); err == nil && mi != nil {
			info.RSS = mi.RSS
		}
		snap.Processes = append(snap.Processes, info)
	}

	snap.PortOpen = portListening(uint32(port))
	snap.HealthOK, snap.HealthDetail = probeHealth(port)
	return snap, nil
}

// portListening checks the OS connection table for a TCP listener on port.
func portListening(port uint32) bool {
	conns, err := psnet.Connections("tcp")
	if err != nil {
		return false
	}
	for _, c := range conns {
		if c.Status == "LISTEN" && c.Laddr.Port == port {
			return true
		}
	}
	return false
}

// probeHealth GETs streamlit's health endpoint with a short timeout.
// Streamlit answers "ok" on /_stcore/health once the app is serving.
func probeHealth(port int) (bool, string) {
	client := &http.Client{Timeout: healthTimeout}
	resp, err := client.Get(fmt.Sprintf("http://127.0.0.1:%d/_stcore/health", port))
	if err != nil {
		return false, "unreachable"
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return false, fmt.Sprintf("health endpoint returned %d", resp.StatusCode)
	}
	return true, ""
}

// Render writes the snapshot in console form.
func Render(w io.Writer, snap *Snapshot) {
	if len(snap.Processes) == 0 {
		fmt.Fprintf(w, "  ✗ no process matching %q found\n", snap.Script)
	}
	for _, p := range snap.Processes {
		fmt.Fprintf(w, "  ✓ %s (pid %d)  cpu %.1f%%  mem %s\n",
			p.Name, p.PID, p.CPU, formatBytes(p.RSS))
	}

	if snap.PortOpen {
		fmt.Fprintf(w, "  ✓ port %d is listening\n", snap.Port)
	} else {
		fmt.Fprintf(w, "  ✗ nothing listening on port %d\n", snap.Port)
	}

	if snap.HealthOK {
		fmt.Fprintf(w, "  ✓ UI healthy → http://localhost:%d\n", snap.Port)
	} else {
		fmt.Fprintf(w, "  ✗ UI health check failed (%s)\n", snap.HealthDetail)
	}
}

// formatBytes renders a byte count with a binary unit suffix.
func formatBytes(n uint64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := uint64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
