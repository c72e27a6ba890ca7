// Package formats provides parsers for skeletal mesh description files.
// RIG is a YAML description of a skinned mesh: bones, points, influences,
// animation sequences and optional LOD point sets.
package formats

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// RIG format errors.
var (
	ErrEmptyRig              = errors.New("empty RIG data")
	ErrUnsupportedRigVersion = errors.New("unsupported RIG version")
	ErrInvalidRig            = errors.New("invalid RIG data")
)

// RigVersion is the only RIG version understood by ParseRig.
const RigVersion = 1

// RigBone is a bone in rest pose, relative to its parent.
type RigBone struct {
	Name        string      `yaml:"name"`
	Parent      int         `yaml:"parent"`                // -1 for the root
	Position    [3]float32  `yaml:"position"`              // X, Y, Z
	Orientation *[4]float32 `yaml:"orientation,omitempty"` // X, Y, Z, W; identity when omitted
}

// RigInfluence binds a point to a bone.
type RigInfluence struct {
	Point  int     `yaml:"point"`
	Bone   int     `yaml:"bone"`
	Weight float32 `yaml:"weight"`
}

// RigTrack is the keyframe track of one bone. Positions and Rotations hold
// one entry (constant) or one per time.
type RigTrack struct {
	Times     []float32    `yaml:"times"`
	Positions [][3]float32 `yaml:"positions"`
	Rotations [][4]float32 `yaml:"rotations"`
}

// RigSequence is one animation sequence; Tracks follow RigAnimation.RefBones.
type RigSequence struct {
	Name   string     `yaml:"name"`
	Rate   float32    `yaml:"rate"`   // frames per second
	Frames float32    `yaml:"frames"` // length in frames
	Tracks []RigTrack `yaml:"tracks"`
}

// RigAnimation holds the sequences and the bone names their tracks animate.
type RigAnimation struct {
	RefBones  []string      `yaml:"ref_bones"`
	Sequences []RigSequence `yaml:"sequences"`
}

// RigLOD is a reduced point set. Without influences its points are taken
// as already posed.
type RigLOD struct {
	Points     [][3]float32   `yaml:"points"`
	Influences []RigInfluence `yaml:"influences,omitempty"`
}

// Rig represents a parsed RIG file.
type Rig struct {
	Version    int            `yaml:"version"`
	Name       string         `yaml:"name"`
	Bones      []RigBone      `yaml:"bones"`
	Points     [][3]float32   `yaml:"points"`
	Influences []RigInfluence `yaml:"influences"`
	Animation  *RigAnimation  `yaml:"animation,omitempty"`
	LODs       []RigLOD       `yaml:"lods,omitempty"`
}

// ParseRig parses RIG data from a byte slice. Only document shape is
// checked here; skeleton consistency is checked when the mesh is built.
func ParseRig(data []byte) (*Rig, error) {
	if len(data) == 0 {
		return nil, ErrEmptyRig
	}

	var rig Rig
	if err := yaml.Unmarshal(data, &rig); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRig, err)
	}

	if rig.Version == 0 {
		rig.Version = RigVersion
	}
	if rig.Version != RigVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedRigVersion, rig.Version)
	}
	if len(rig.Bones) == 0 {
		return nil, fmt.Errorf("%w: no bones", ErrInvalidRig)
	}
	if rig.Animation != nil {
		for i, seq := range rig.Animation.Sequences {
			if len(seq.Tracks) != len(rig.Animation.RefBones) {
				return nil, fmt.Errorf("%w: sequence %d %q has %d tracks for %d ref bones",
					ErrInvalidRig, i, seq.Name, len(seq.Tracks), len(rig.Animation.RefBones))
			}
		}
	}

	return &rig, nil
}

// LoadRig reads and parses a RIG file from disk.
func LoadRig(path string) (*Rig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading RIG file: %w", err)
	}
	return ParseRig(data)
}

// SequenceNames returns the names of all animation sequences in order.
func (r *Rig) SequenceNames() []string {
	if r.Animation == nil {
		return nil
	}
	names := make([]string, len(r.Animation.Sequences))
	for i, seq := range r.Animation.Sequences {
		names[i] = seq.Name
	}
	return names
}
