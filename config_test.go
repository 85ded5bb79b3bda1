package tilemesh

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestOptionsWithDefaults(t *testing.T) {
	tests := []struct {
		name string
		in   Options
		want Options
	}{
		{
			name: "zero value",
			in:   Options{},
			want: Options{ChunkSize: 32, ZBase: 15, MaxPixelHeight: 20000},
		},
		{
			name: "explicit values survive",
			in:   Options{ChunkSize: 8, ZBase: 50, MaxPixelHeight: 1000, Centered: true},
			want: Options{ChunkSize: 8, ZBase: 50, MaxPixelHeight: 1000, Centered: true},
		},
		{
			name: "negative chunk size falls back",
			in:   Options{ChunkSize: -1},
			want: Options{ChunkSize: 32, ZBase: 15, MaxPixelHeight: 20000},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.withDefaults(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("withDefaults() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestDefaultOptionsMatchWithDefaults(t *testing.T) {
	if got := (Options{}).withDefaults(); !reflect.DeepEqual(got, DefaultOptions()) {
		t.Errorf("zero Options resolves to %+v, DefaultOptions() = %+v", got, DefaultOptions())
	}
}

func TestLoadOptions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tilemesh.yaml")
	yaml := `chunk_size: 16
centered: true
z_base: 42
max_pixel_height: 5000
parent: world_root
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	opts, err := LoadOptions(path)
	if err != nil {
		t.Fatalf("LoadOptions: %v", err)
	}
	want := Options{ChunkSize: 16, Centered: true, ZBase: 42, MaxPixelHeight: 5000, Parent: "world_root"}
	if !reflect.DeepEqual(opts, want) {
		t.Errorf("LoadOptions = %+v, want %+v", opts, want)
	}
}

func TestLoadOptionsErrors(t *testing.T) {
	if _, err := LoadOptions(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("LoadOptions on a missing file returned nil error")
	}

	path := filepath.Join(t.TempDir(), "broken.yaml")
	if err := os.WriteFile(path, []byte("chunk_size: [not a number"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadOptions(path); err == nil {
		t.Error("LoadOptions on malformed YAML returned nil error")
	}
}
