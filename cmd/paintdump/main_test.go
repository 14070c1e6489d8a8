package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    config
		wantErr bool
	}{
		{
			name:    "overrides",
			content: "Width = 64\nHeight = 32\nBackground = \"#fff\"\nDecodeCapacity = 4\n",
			want: config{
				Width: 64, Height: 32, Background: "#fff", Backend: "raster", DecodeCapacity: 4,
			},
		},
		{
			name:    "unknown key",
			content: "Widht = 64\n",
			wantErr: true,
		},
		{
			name:    "bad size",
			content: "Width = -1\n",
			wantErr: true,
		},
		{
			name:    "unknown backend",
			content: "Backend = \"vulkan\"\n",
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := loadConfig(writeFile(t, "config.toml", tt.content))
			if (err != nil) != tt.wantErr {
				t.Fatalf("loadConfig error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("loadConfig = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	got, err := loadConfig("")
	if err != nil {
		t.Fatal(err)
	}
	if got != defaultConfig() {
		t.Errorf("loadConfig(\"\") = %+v, want defaults", got)
	}
}

func TestRunSample(t *testing.T) {
	dir := t.TempDir()
	stream := filepath.Join(dir, "sample.bin")
	if err := writeSample(stream); err != nil {
		t.Fatalf("writeSample: %v", err)
	}

	conf := defaultConfig()
	conf.Width, conf.Height = 480, 360
	out := filepath.Join(dir, "out.png")
	var buf bytes.Buffer
	if err := run(conf, stream, out, true, &buf); err != nil {
		t.Fatalf("run: %v", err)
	}
	for _, want := range []string{"DrawColor", "SaveLayerAlpha", "DrawTextBlob", "discardable=true"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("output missing %q", want)
		}
	}
	if fi, err := os.Stat(out); err != nil || fi.Size() == 0 {
		t.Errorf("png not written: %v", err)
	}
}

func TestRunCorruptStream(t *testing.T) {
	path := writeFile(t, "bad.bin", "\x05\x03\x00\x00garbage!")
	err := run(defaultConfig(), path, "", false, &bytes.Buffer{})
	if err == nil {
		t.Fatal("run accepted a corrupt stream")
	}
	if !strings.Contains(err.Error(), "offset 0") {
		t.Errorf("error %q does not report the record offset", err)
	}
}
