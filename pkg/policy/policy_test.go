package policy

import (
	"errors"
	"testing"

	"github.com/bft-labs/sunset/pkg/release"
)

func TestRecord_EffectiveRemoval(t *testing.T) {
	tests := []struct {
		name   string
		record Record
		want   release.Number
	}{
		{
			name:   "standard tier derives six releases",
			record: Record{Tier: TierStandard, DeprecatedAt: 10},
			want:   16,
		},
		{
			name:   "niche tier derives two releases",
			record: Record{Tier: TierNiche, DeprecatedAt: 5},
			want:   7,
		},
		{
			name:   "explicit removal wins over standard derivation",
			record: Record{Tier: TierStandard, DeprecatedAt: 10, RemovalAt: 12},
			want:   12,
		},
		{
			name:   "explicit removal wins over niche derivation",
			record: Record{Tier: TierNiche, DeprecatedAt: 5, RemovalAt: 30},
			want:   30,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.record.EffectiveRemoval(); got != tt.want {
				t.Errorf("EffectiveRemoval() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestRecord_Validate(t *testing.T) {
	tests := []struct {
		name    string
		record  Record
		wantErr bool
	}{
		{
			name:    "valid minimal record",
			record:  Record{Tier: TierStandard, DeprecatedAt: 3},
			wantErr: false,
		},
		{
			name:    "valid with explicit removal and replacement",
			record:  Record{Tier: TierNiche, DeprecatedAt: 3, RemovalAt: 4, Replacement: "new-cmd"},
			wantErr: false,
		},
		{
			name:    "removal equal to deprecation",
			record:  Record{Tier: TierStandard, DeprecatedAt: 8, RemovalAt: 8},
			wantErr: true,
		},
		{
			name:    "removal before deprecation",
			record:  Record{Tier: TierStandard, DeprecatedAt: 8, RemovalAt: 2},
			wantErr: true,
		},
		{
			name:    "unknown tier",
			record:  Record{Tier: Tier(42), DeprecatedAt: 8},
			wantErr: true,
		},
		{
			name:    "missing deprecation release",
			record:  Record{Tier: TierStandard},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.record.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidRecord) {
				t.Errorf("Validate() error = %v, want ErrInvalidRecord", err)
			}
		})
	}
}

func TestDependencyRecord_Validate(t *testing.T) {
	valid := DependencyRecord{
		Record: Record{Tier: TierStandard, DeprecatedAt: 20},
		Gate:   "legacy-backend",
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("Validate() = %v, want nil", err)
	}

	noGate := DependencyRecord{Record: Record{Tier: TierStandard, DeprecatedAt: 20}}
	if err := noGate.Validate(); !errors.Is(err, ErrInvalidRecord) {
		t.Errorf("Validate() without gate = %v, want ErrInvalidRecord", err)
	}

	badEmbedded := DependencyRecord{
		Record: Record{Tier: TierStandard, DeprecatedAt: 20, RemovalAt: 19},
		Gate:   "legacy-backend",
	}
	if err := badEmbedded.Validate(); !errors.Is(err, ErrInvalidRecord) {
		t.Errorf("Validate() with inverted window = %v, want ErrInvalidRecord", err)
	}
}

func TestParseTier(t *testing.T) {
	tests := []struct {
		in      string
		want    Tier
		wantErr bool
	}{
		{"standard", TierStandard, false},
		{"Standard", TierStandard, false},
		{" niche ", TierNiche, false},
		{"NICHE", TierNiche, false},
		{"", 0, true},
		{"internal", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseTier(tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("ParseTier(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseTier(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestTier_String(t *testing.T) {
	tests := []struct {
		tier Tier
		want string
	}{
		{TierStandard, "standard"},
		{TierNiche, "niche"},
		{Tier(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.tier.String(); got != tt.want {
			t.Errorf("Tier(%d).String() = %s, want %s", tt.tier, got, tt.want)
		}
	}
}
