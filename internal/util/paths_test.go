package util

import (
	"path/filepath"
	"testing"
)

func TestDataDirHonoursXDG(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/tmp/xdg-data")
	if got, want := DataDir("spiritualpath"), filepath.Join("/tmp/xdg-data", "spiritualpath"); got != want {
		t.Fatalf("DataDir() = %q, want %q", got, want)
	}
}

func TestConfigDirHonoursXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-config")
	if got, want := ConfigDir("spiritualpath"), filepath.Join("/tmp/xdg-config", "spiritualpath"); got != want {
		t.Fatalf("ConfigDir() = %q, want %q", got, want)
	}
}

func TestParseUserDir(t *testing.T) {
	data := "# comment\nXDG_DESKTOP_DIR=\"$HOME/Desktop\"\nXDG_DOCUMENTS_DIR=\"$HOME/Docs\"\n"
	if got := parseUserDir(data, "XDG_DOCUMENTS_DIR"); got != "$HOME/Docs" {
		t.Fatalf("parseUserDir() = %q", got)
	}
	if got := parseUserDir(data, "XDG_MUSIC_DIR"); got != "" {
		t.Fatalf("parseUserDir() for missing key = %q, want empty", got)
	}
}

func TestClamp(t *testing.T) {
	if Clamp(30, 60, 3600) != 60 || Clamp(4000, 60, 3600) != 3600 || Clamp(600, 60, 3600) != 600 {
		t.Fatalf("Clamp returned unexpected values")
	}
}
