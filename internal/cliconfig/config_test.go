package cliconfig

import (
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Output != "table" {
		t.Errorf("Output = %q, want %q", cfg.Output, "table")
	}
	if cfg.PolicyPath != "" {
		t.Errorf("PolicyPath = %q, want empty", cfg.PolicyPath)
	}
	if cfg.Release != 0 {
		t.Errorf("Release = %d, want 0", cfg.Release)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name:    "valid minimal config",
			config:  Config{PolicyPath: "deprecations.toml", Output: "table"},
			wantErr: false,
		},
		{
			name:    "valid json output",
			config:  Config{PolicyPath: "deprecations.toml", Output: "json"},
			wantErr: false,
		},
		{
			name:    "missing policy path",
			config:  Config{Output: "table"},
			wantErr: true,
		},
		{
			name:    "negative release",
			config:  Config{PolicyPath: "deprecations.toml", Release: -1, Output: "table"},
			wantErr: true,
		},
		{
			name:    "unknown output format",
			config:  Config{PolicyPath: "deprecations.toml", Output: "xml"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr && err == nil {
				t.Error("Validate() expected error but got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Validate() unexpected error: %v", err)
			}
		})
	}
}

func TestConfig_ResolveRelease(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		want    int
		wantErr bool
	}{
		{
			name:   "explicit release",
			config: Config{Release: 34},
			want:   34,
		},
		{
			name:   "release derived from version",
			config: Config{Version: "v0.27.1"},
			want:   27,
		},
		{
			name:   "explicit release wins over version",
			config: Config{Release: 34, Version: "v0.27.1"},
			want:   34,
		},
		{
			name:    "neither set",
			config:  Config{},
			wantErr: true,
		},
		{
			name:    "version off the 0.x cadence",
			config:  Config{Version: "1.2.3"},
			wantErr: true,
		},
		{
			name:    "garbage version",
			config:  Config{Version: "not-a-version"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.config.ResolveRelease()
			if tt.wantErr {
				if err == nil {
					t.Error("ResolveRelease() expected error but got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("ResolveRelease() unexpected error: %v", err)
			}
			if int(got) != tt.want {
				t.Errorf("ResolveRelease() = %d, want %d", got, tt.want)
			}
		})
	}
}
