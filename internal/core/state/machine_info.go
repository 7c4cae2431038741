package state

import (
	"bytes"
	"fmt"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/kyoto-db/kyoto/internal/infra/buildinfo"
)

// MachineInfo is a snapshot of host and runtime facts taken at startup.
type MachineInfo struct {
	mu        sync.Mutex
	version   string
	os        string
	arch      string
	cpus      int
	goVersion string
	hostname  string
	pid       int
	startedAt time.Time
	now       func() time.Time
}

// NewMachineInfo takes the snapshot.
func NewMachineInfo() *MachineInfo {
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}

	build := buildinfo.Get()
	return &MachineInfo{
		version:   build.Version,
		os:        runtime.GOOS,
		arch:      runtime.GOARCH,
		cpus:      runtime.NumCPU(),
		goVersion: build.GoVersion,
		hostname:  hostname,
		pid:       os.Getpid(),
		startedAt: time.Now(),
		now:       time.Now,
	}
}

// GenerateInfo appends the machine fragment to buf.
func (m *MachineInfo) GenerateInfo(buf *bytes.Buffer) {
	m.mu.Lock()
	defer m.mu.Unlock()

	buf.WriteString("# Machine\n")
	fmt.Fprintf(buf, "version: %s\n", m.version)
	fmt.Fprintf(buf, "os: %s\n", m.os)
	fmt.Fprintf(buf, "arch: %s\n", m.arch)
	fmt.Fprintf(buf, "cpus: %d\n", m.cpus)
	fmt.Fprintf(buf, "go_version: %s\n", m.goVersion)
	fmt.Fprintf(buf, "hostname: %s\n", m.hostname)
	fmt.Fprintf(buf, "pid: %d\n", m.pid)
	fmt.Fprintf(buf, "uptime_seconds: %d\n", int64(m.now().Sub(m.startedAt).Seconds()))
}
