package cliconfig

import (
	"os"
	"testing"
)

func TestApplyEnvConfig(t *testing.T) {
	tests := []struct {
		name     string
		envVars  map[string]string
		changed  map[string]bool
		initial  Config
		expected Config
		wantErr  bool
	}{
		{
			name: "applies all valid env vars",
			envVars: map[string]string{
				"SUNSET_POLICY":  "/env/deprecations.toml",
				"SUNSET_RELEASE": "34",
				"SUNSET_VERSION": "v0.34.1",
				"SUNSET_GATES":   "legacy-git-backend, old-index-format",
				"SUNSET_OUTPUT":  "json",
				"SUNSET_VERBOSE": "true",
			},
			changed: map[string]bool{},
			initial: Config{},
			expected: Config{
				PolicyPath: "/env/deprecations.toml",
				Release:    34,
				Version:    "v0.34.1",
				Gates:      []string{"legacy-git-backend", "old-index-format"},
				Output:     "json",
				Verbose:    true,
			},
		},
		{
			name: "respects changed flags",
			envVars: map[string]string{
				"SUNSET_POLICY":  "/env/deprecations.toml",
				"SUNSET_RELEASE": "34",
			},
			changed: map[string]bool{"policy": true},
			initial: Config{
				PolicyPath: "/flag/deprecations.toml",
			},
			expected: Config{
				PolicyPath: "/flag/deprecations.toml",
				Release:    34,
			},
		},
		{
			name: "returns error for invalid release",
			envVars: map[string]string{
				"SUNSET_RELEASE": "not-a-number",
			},
			changed: map[string]bool{},
			initial: Config{},
			wantErr: true,
		},
		{
			name: "handles bool '1' as true",
			envVars: map[string]string{
				"SUNSET_VERBOSE": "1",
			},
			changed: map[string]bool{},
			initial: Config{},
			expected: Config{
				Verbose: true,
			},
		},
		{
			name: "handles bool 'false' as false",
			envVars: map[string]string{
				"SUNSET_VERBOSE": "false",
			},
			changed: map[string]bool{},
			initial: Config{Verbose: true},
			expected: Config{
				Verbose: false,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.envVars {
				os.Setenv(k, v)
			}
			defer func() {
				for k := range tt.envVars {
					os.Unsetenv(k)
				}
			}()

			cfg := tt.initial
			err := ApplyEnvConfig(&cfg, tt.changed)

			if tt.wantErr {
				if err == nil {
					t.Error("ApplyEnvConfig() expected error but got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("ApplyEnvConfig() unexpected error: %v", err)
			}

			if cfg.PolicyPath != tt.expected.PolicyPath {
				t.Errorf("PolicyPath = %v, want %v", cfg.PolicyPath, tt.expected.PolicyPath)
			}
			if cfg.Release != tt.expected.Release {
				t.Errorf("Release = %v, want %v", cfg.Release, tt.expected.Release)
			}
			if cfg.Version != tt.expected.Version {
				t.Errorf("Version = %v, want %v", cfg.Version, tt.expected.Version)
			}
			if len(cfg.Gates) != len(tt.expected.Gates) {
				t.Errorf("Gates = %v, want %v", cfg.Gates, tt.expected.Gates)
			} else {
				for i := range cfg.Gates {
					if cfg.Gates[i] != tt.expected.Gates[i] {
						t.Errorf("Gates[%d] = %v, want %v", i, cfg.Gates[i], tt.expected.Gates[i])
					}
				}
			}
			if cfg.Output != tt.expected.Output {
				t.Errorf("Output = %v, want %v", cfg.Output, tt.expected.Output)
			}
			if cfg.Verbose != tt.expected.Verbose {
				t.Errorf("Verbose = %v, want %v", cfg.Verbose, tt.expected.Verbose)
			}
		})
	}
}

func TestSplitGates(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{in: "a,b,c", want: []string{"a", "b", "c"}},
		{in: " a , b ", want: []string{"a", "b"}},
		{in: "solo", want: []string{"solo"}},
		{in: ",,", want: []string{}},
	}

	for _, tt := range tests {
		got := SplitGates(tt.in)
		if len(got) != len(tt.want) {
			t.Errorf("SplitGates(%q) = %v, want %v", tt.in, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("SplitGates(%q)[%d] = %q, want %q", tt.in, i, got[i], tt.want[i])
			}
		}
	}
}
