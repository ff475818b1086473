package config

import (
	"path/filepath"
	"testing"
)

func TestSyncOutputOverride(t *testing.T) {
	cases := []struct {
		value string
		want  *bool
	}{
		{"auto", nil},
		{"", nil},
		{"on", boolp(true)},
		{"TRUE", boolp(true)},
		{"off", boolp(false)},
		{"0", boolp(false)},
		{"nonsense", nil},
	}
	for _, c := range cases {
		rc := RenderConfig{SyncOutput: c.value}
		got := rc.SyncOutputOverride()
		switch {
		case c.want == nil && got != nil:
			t.Errorf("%q: got %v, want autodetect", c.value, *got)
		case c.want != nil && (got == nil || *got != *c.want):
			t.Errorf("%q: got %v, want %v", c.value, got, *c.want)
		}
	}
}

func TestConfigDirHonorsXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	dir, err := GetConfigDir()
	if err != nil {
		t.Fatal(err)
	}
	if dir != filepath.Join("/tmp/xdg", "ion") {
		t.Fatalf("got %q", dir)
	}
}

func TestDataDirHonorsXDG(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/tmp/xdg-data")
	dir, err := GetDataDir()
	if err != nil {
		t.Fatal(err)
	}
	if dir != filepath.Join("/tmp/xdg-data", "ion") {
		t.Fatalf("got %q", dir)
	}
}

func boolp(b bool) *bool { return &b }
