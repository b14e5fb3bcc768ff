package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Preset != "warren" {
		t.Errorf("default preset = %q, want warren", cfg.Preset)
	}
	if cfg.Dt != DefaultDt {
		t.Errorf("default dt = %g, want %g", cfg.Dt, DefaultDt)
	}
	if cfg.SubSteps != DefaultSubSteps {
		t.Errorf("default sub-steps = %d, want %d", cfg.SubSteps, DefaultSubSteps)
	}
	if cfg.Gravity.X != 0 || cfg.Gravity.Y != DefaultGravityY {
		t.Errorf("default gravity = (%g, %g), want (0, %g)", cfg.Gravity.X, cfg.Gravity.Y, DefaultGravityY)
	}

	sc := cfg.SimConfig()
	if sc.Dt != cfg.Dt || sc.SubSteps != cfg.SubSteps {
		t.Errorf("SimConfig dt/substeps = %g/%d, want %g/%d", sc.Dt, sc.SubSteps, cfg.Dt, cfg.SubSteps)
	}
	if sc.AlphaDamping != cfg.Damping.Alpha || sc.BetaDamping != cfg.Damping.Beta {
		t.Errorf("SimConfig damping = %g/%g, want %g/%g",
			sc.AlphaDamping, sc.BetaDamping, cfg.Damping.Alpha, cfg.Damping.Beta)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Preset = "arch"
	cfg.Dt = 1.0 / 600.0
	cfg.SubSteps = 10
	cfg.Gravity.Y = 3.71
	cfg.Damping.Alpha = 0.2
	cfg.Impulse.Magnitude = 750

	path := filepath.Join(t.TempDir(), "bridge.yaml")
	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if *got != *cfg {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, cfg)
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	if err := os.WriteFile(path, []byte("preset: beam\nsub_steps: 5\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Preset != "beam" || cfg.SubSteps != 5 {
		t.Errorf("overridden fields = %q/%d, want beam/5", cfg.Preset, cfg.SubSteps)
	}
	if cfg.Dt != DefaultDt {
		t.Errorf("dt = %g, want default %g", cfg.Dt, DefaultDt)
	}
	if cfg.Damping.Alpha != DefaultAlpha || cfg.Damping.Beta != DefaultBeta {
		t.Errorf("damping = %g/%g, want defaults", cfg.Damping.Alpha, cfg.Damping.Beta)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestPresetGeometry(t *testing.T) {
	tests := []struct {
		name     string
		nodes    int
		elements int
		fixed    int
	}{
		{"warren", 9, 15, 2},
		{"arch", 8, 11, 2},
		{"beam", 4, 3, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := PresetByName(tt.name)
			if err != nil {
				t.Fatalf("PresetByName: %v", err)
			}
			st := p.Build()
			if got := len(st.Nodes()); got != tt.nodes {
				t.Errorf("nodes = %d, want %d", got, tt.nodes)
			}
			if got := len(st.Elements()); got != tt.elements {
				t.Errorf("elements = %d, want %d", got, tt.elements)
			}
			fixed := 0
			for _, n := range st.Nodes() {
				if n.Fixed {
					fixed++
				}
			}
			if fixed != tt.fixed {
				t.Errorf("fixed nodes = %d, want %d", fixed, tt.fixed)
			}
			if st.TotalMass() <= 0 {
				t.Error("preset has no mass")
			}
		})
	}
}

func TestPresetBuildsAreIndependent(t *testing.T) {
	p, err := PresetByName("warren")
	if err != nil {
		t.Fatal(err)
	}
	a := p.Build()
	b := p.Build()

	// Mutating one build must not leak into the next.
	id := a.Elements()[0].ID
	if err := a.RemoveElement(id); err != nil {
		t.Fatalf("RemoveElement: %v", err)
	}
	if len(b.Elements()) != 15 {
		t.Errorf("second build has %d elements, want 15", len(b.Elements()))
	}
}

func TestBuildPresetIndex(t *testing.T) {
	st, err := BuildPreset(0)
	if err != nil {
		t.Fatalf("BuildPreset(0): %v", err)
	}
	if len(st.Nodes()) != 9 {
		t.Errorf("warren nodes = %d, want 9", len(st.Nodes()))
	}

	for _, idx := range []int{-1, len(Presets())} {
		if _, err := BuildPreset(idx); err == nil {
			t.Errorf("BuildPreset(%d): expected error", idx)
		}
	}
}

func TestPresetByNameUnknown(t *testing.T) {
	if _, err := PresetByName("suspension"); err == nil {
		t.Error("expected error for unknown preset name")
	}
}

func TestPresetAnchorsSpanDeck(t *testing.T) {
	for _, p := range Presets() {
		st := p.Build()
		mid, ok := st.AnchorMidpointX()
		if !ok {
			t.Errorf("%s: no anchors", p.Name)
			continue
		}
		minX, maxX := st.Nodes()[0].Pos.X, st.Nodes()[0].Pos.X
		for _, n := range st.Nodes() {
			if n.Pos.X < minX {
				minX = n.Pos.X
			}
			if n.Pos.X > maxX {
				maxX = n.Pos.X
			}
		}
		if mid <= minX || mid >= maxX {
			t.Errorf("%s: anchor midpoint %g outside span [%g, %g]", p.Name, mid, minX, maxX)
		}
	}
}
