package formats

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestParseRig_Chain(t *testing.T) {
	rig, err := LoadRig(filepath.Join("testdata", "chain.rig.yaml"))
	if err != nil {
		t.Fatalf("LoadRig failed: %v", err)
	}

	if rig.Version != RigVersion {
		t.Errorf("expected version %d, got %d", RigVersion, rig.Version)
	}
	if rig.Name != "chain" {
		t.Errorf("expected name 'chain', got %q", rig.Name)
	}
	if len(rig.Bones) != 3 {
		t.Fatalf("expected 3 bones, got %d", len(rig.Bones))
	}
	if rig.Bones[0].Parent != -1 || rig.Bones[2].Parent != 1 {
		t.Errorf("unexpected parents: %d, %d", rig.Bones[0].Parent, rig.Bones[2].Parent)
	}
	if rig.Bones[0].Orientation != nil {
		t.Error("expected omitted orientation to stay nil")
	}
	if rig.Bones[2].Orientation == nil || *rig.Bones[2].Orientation != [4]float32{0, 0, 0, 1} {
		t.Errorf("unexpected tip orientation %v", rig.Bones[2].Orientation)
	}
	if len(rig.Points) != 3 || rig.Points[0] != [3]float32{2, 0, 0} {
		t.Errorf("unexpected points %v", rig.Points)
	}
	if len(rig.Influences) != 4 {
		t.Errorf("expected 4 influences, got %d", len(rig.Influences))
	}

	names := rig.SequenceNames()
	if len(names) != 2 || names[0] != "Bend" || names[1] != "Stretch" {
		t.Errorf("unexpected sequence names %v", names)
	}
	stretch := rig.Animation.Sequences[1]
	if stretch.Frames != 4 || stretch.Rate != 30 {
		t.Errorf("unexpected Stretch timing: frames=%v rate=%v", stretch.Frames, stretch.Rate)
	}
	if got := len(stretch.Tracks[1].Times); got != 2 {
		t.Errorf("expected 2 keys on Stretch tip track, got %d", got)
	}

	if len(rig.LODs) != 2 {
		t.Fatalf("expected 2 LODs, got %d", len(rig.LODs))
	}
	if len(rig.LODs[1].Influences) != 0 {
		t.Error("expected second LOD to carry no influences")
	}
}

func TestParseRig_Errors(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr error
	}{
		{
			name:    "empty data",
			data:    "",
			wantErr: ErrEmptyRig,
		},
		{
			name:    "not yaml",
			data:    "bones: [unterminated",
			wantErr: ErrInvalidRig,
		},
		{
			name:    "future version",
			data:    "version: 7\nbones:\n  - name: root\n    parent: -1\n",
			wantErr: ErrUnsupportedRigVersion,
		},
		{
			name:    "no bones",
			data:    "version: 1\npoints:\n  - [0, 0, 0]\n",
			wantErr: ErrInvalidRig,
		},
		{
			name: "track count mismatch",
			data: `
bones:
  - name: root
    parent: -1
animation:
  ref_bones: [root, arm]
  sequences:
    - name: Idle
      tracks:
        - times: [0]
          positions: [[0, 0, 0]]
          rotations: [[0, 0, 0, 1]]
`,
			wantErr: ErrInvalidRig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRig([]byte(tt.data))
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected error %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestParseRig_DefaultVersion(t *testing.T) {
	rig, err := ParseRig([]byte("bones:\n  - name: root\n    parent: -1\n"))
	if err != nil {
		t.Fatalf("ParseRig failed: %v", err)
	}
	if rig.Version != RigVersion {
		t.Errorf("expected version to default to %d, got %d", RigVersion, rig.Version)
	}
	if rig.Animation != nil {
		t.Error("expected no animation")
	}
	if rig.SequenceNames() != nil {
		t.Error("expected nil sequence names without animation")
	}
}

func TestLoadRig_Missing(t *testing.T) {
	_, err := LoadRig(filepath.Join(t.TempDir(), "missing.rig.yaml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}

func TestRig_YAMLRoundTrip(t *testing.T) {
	rig, err := LoadRig(filepath.Join("testdata", "chain.rig.yaml"))
	if err != nil {
		t.Fatalf("LoadRig failed: %v", err)
	}
	data, err := yaml.Marshal(rig)
	if err != nil {
		t.Fatalf("yaml.Marshal failed: %v", err)
	}
	again, err := ParseRig(data)
	if err != nil {
		t.Fatalf("ParseRig of marshaled rig failed: %v", err)
	}
	if len(again.Bones) != len(rig.Bones) || len(again.Influences) != len(rig.Influences) {
		t.Errorf("round trip lost data: %d bones, %d influences", len(again.Bones), len(again.Influences))
	}
	if again.Animation.Sequences[0].Tracks[0].Rotations[0] != rig.Animation.Sequences[0].Tracks[0].Rotations[0] {
		t.Error("round trip changed Bend rotation")
	}
}
