package state

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/kyoto-db/kyoto/internal/server/config"
)

func TestConfigInfo_GenerateInfo(t *testing.T) {
	cfg := config.Default()
	cfg.Server.Port = 7000

	ci := NewConfigInfo(cfg)

	var buf bytes.Buffer
	ci.GenerateInfo(&buf)

	for _, want := range []string{"# Config\n", "port: 7000\n", "host: 127.0.0.1\n", "storage_engine: single\n"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("GenerateInfo() = %q, missing %q", buf.String(), want)
		}
	}
}

func TestConfigInfo_DefaultPort(t *testing.T) {
	ci := NewConfigInfo(config.Default())

	var buf bytes.Buffer
	ci.GenerateInfo(&buf)

	if !strings.Contains(buf.String(), "port: 9736\n") {
		t.Errorf("GenerateInfo() = %q, want default port 9736", buf.String())
	}
}

func TestMachineInfo_GenerateInfo(t *testing.T) {
	mi := NewMachineInfo()
	start := mi.startedAt
	mi.now = func() time.Time { return start.Add(90 * time.Second) }

	var buf bytes.Buffer
	mi.GenerateInfo(&buf)
	out := buf.String()

	if !strings.HasPrefix(out, "# Machine\n") {
		t.Errorf("GenerateInfo() = %q, want # Machine header first", out)
	}
	for _, key := range []string{"version: ", "os: ", "arch: ", "cpus: ", "go_version: ", "hostname: ", "pid: "} {
		if !strings.Contains(out, "\n"+key) {
			t.Errorf("GenerateInfo() missing %q line", key)
		}
	}
	if !strings.Contains(out, "uptime_seconds: 90\n") {
		t.Errorf("GenerateInfo() = %q, want uptime_seconds: 90", out)
	}
}

func TestDataInfo_Record(t *testing.T) {
	di := NewDataInfo()

	di.RecordGet(false)
	di.RecordSet(1)
	di.RecordGet(true)
	di.RecordGet(true)
	di.RecordCommand()

	want := DataStats{
		TotalKeys:         1,
		CommandsProcessed: 5,
		KeyspaceHits:      2,
		KeyspaceMisses:    1,
	}
	if got := di.Stats(); got != want {
		t.Errorf("Stats() = %+v, want %+v", got, want)
	}
}

func TestDataInfo_RecordSetKeepsNewestCount(t *testing.T) {
	di := NewDataInfo()

	// Two SETs observed 1 then 2 keys, but their records arrive reversed.
	di.RecordSet(2)
	di.RecordSet(1)

	got := di.Stats()
	if got.TotalKeys != 2 {
		t.Errorf("TotalKeys = %d, want 2", got.TotalKeys)
	}
	if got.CommandsProcessed != 2 {
		t.Errorf("CommandsProcessed = %d, want 2", got.CommandsProcessed)
	}
}

func TestDataInfo_GenerateInfo(t *testing.T) {
	di := NewDataInfo()
	di.RecordSet(3)
	di.RecordGet(false)

	var buf bytes.Buffer
	di.GenerateInfo(&buf)

	want := "# Data\n" +
		"total_keys: 3\n" +
		"total_commands_processed: 2\n" +
		"keyspace_hits: 0\n" +
		"keyspace_misses: 1\n"
	if got := buf.String(); got != want {
		t.Errorf("GenerateInfo() = %q, want %q", got, want)
	}
}

func TestGenerateInfo_Appends(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteString("prefix\n")

	NewDataInfo().GenerateInfo(&buf)

	if !strings.HasPrefix(buf.String(), "prefix\n# Data\n") {
		t.Errorf("GenerateInfo() overwrote buffer: %q", buf.String())
	}
}
