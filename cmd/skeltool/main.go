// skeltool is a CLI utility for posing and skinning RIG skeletal meshes.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	gomath "math"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/skelmesh/internal/config"
	"github.com/Faultbox/skelmesh/internal/engine/skeletal"
	"github.com/Faultbox/skelmesh/internal/logger"
	"github.com/Faultbox/skelmesh/pkg/formats"
	"github.com/Faultbox/skelmesh/pkg/math"
)

var errUsage = errors.New("usage")

func main() {
	// Global flags come before the command
	config.ParseFlags()
	args := config.Args()
	if len(args) < 1 {
		printUsage(os.Stderr)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Sugar.Debugf("Config: %+v", cfg)

	if err := run(cfg, args[0], args[1:], os.Stdout); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprintln(os.Stderr, err)
			printUsage(os.Stderr)
		} else {
			logger.Error("command failed", zap.String("command", args[0]), zap.Error(err))
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		logger.Sync()
		os.Exit(1)
	}
}

func run(cfg *config.Config, command string, args []string, w io.Writer) error {
	switch command {
	case "info":
		return cmdInfo(args, w)
	case "bones":
		return cmdBones(cfg, args, w)
	case "pose":
		return cmdPose(cfg, args, w)
	case "skin":
		return cmdSkin(cfg, args, w)
	case "skeleton", "skel":
		return cmdSkeleton(cfg, args, w)
	case "config":
		return cmdConfig(cfg, args, w)
	case "help", "-h", "--help":
		printUsage(w)
		return nil
	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, command)
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `skeltool - skeletal mesh posing and skinning utility

Usage:
  skeltool [flags] <command> <file.rig.yaml> [options]

Commands:
  info <file>               Show mesh and animation summary
  bones <file>              List bones with parents and animation tracks
  pose <file> [-matrix]     Print every bone's world frame in the current pose
  skin <file> [-lod N]      Print skinned points of the base mesh or a LOD
  skeleton <file>           Print bone segments for debug drawing
  config [-o path|-user]    Print or save the effective configuration

Flags:
  -config <path>   Config file
  -seq <name>      Animation sequence (default: rest pose)
  -time <frames>   Animation time
  -loop            Loop animation time instead of clamping
  -scale <s>       Uniform skeleton scale
  -workers <n>     Skinning workers
  -debug           Debug logging

Examples:
  skeltool info hero.rig.yaml
  skeltool -seq Walk -time 12.5 pose hero.rig.yaml
  skeltool -seq Walk -time 40 -loop skin hero.rig.yaml -lod 1
  skeltool -workers 4 -loop config -user`)
}

func cmdInfo(args []string, w io.Writer) error {
	if len(args) < 1 {
		return fmt.Errorf("%w: skeltool info <file>", errUsage)
	}

	rig, err := formats.LoadRig(args[0])
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Rig:        %s\n", rig.Name)
	fmt.Fprintf(w, "Bones:      %d\n", len(rig.Bones))
	fmt.Fprintf(w, "Points:     %d\n", len(rig.Points))
	fmt.Fprintf(w, "Influences: %d\n", len(rig.Influences))
	fmt.Fprintf(w, "LODs:       %d\n", len(rig.LODs))

	if rig.Animation == nil {
		fmt.Fprintln(w, "Animation:  none")
		return nil
	}
	fmt.Fprintf(w, "Animation:  %d sequences over %d bones\n",
		len(rig.Animation.Sequences), len(rig.Animation.RefBones))
	for _, seq := range rig.Animation.Sequences {
		fmt.Fprintf(w, "  %-20s %6.1f frames @ %g fps\n", seq.Name, seq.Frames, seq.Rate)
	}
	return nil
}

func cmdBones(cfg *config.Config, args []string, w io.Writer) error {
	if len(args) < 1 {
		return fmt.Errorf("%w: skeltool bones <file>", errUsage)
	}

	inst, err := loadInstance(cfg, args[0])
	if err != nil {
		return err
	}

	mesh := inst.Mesh()
	fmt.Fprintf(w, "%4s  %-20s %-20s %s\n", "#", "Name", "Parent", "Track")
	for i, b := range mesh.Bones {
		parent := "-"
		if i > 0 {
			parent = mesh.Bones[b.ParentIndex].Name
		}
		track := "-"
		if j := inst.TrackIndex(i); j != skeletal.NoTrack {
			track = fmt.Sprintf("%d", j)
		}
		fmt.Fprintf(w, "%4d  %-20s %-20s %s\n", i, b.Name, parent, track)
	}
	return nil
}

func cmdPose(cfg *config.Config, args []string, w io.Writer) error {
	fs := flag.NewFlagSet("pose", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	matrix := fs.Bool("matrix", false, "Print column-major 4x4 matrices instead of frames")
	if len(args) < 1 {
		return fmt.Errorf("%w: skeltool pose <file> [-matrix]", errUsage)
	}
	if err := fs.Parse(args[1:]); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}

	inst, err := loadInstance(cfg, args[0])
	if err != nil {
		return err
	}

	for i, b := range inst.Mesh().Bones {
		c := inst.BoneCoords(i)
		if *matrix {
			fmt.Fprintf(w, "%4d  %-20s %s\n", i, b.Name, fmtMat4(c.ToMat4()))
			continue
		}
		fmt.Fprintf(w, "%4d  %-20s origin %s  x %s  y %s  z %s\n",
			i, b.Name, fmtVec(c.Origin), fmtVec(c.Axis[0]), fmtVec(c.Axis[1]), fmtVec(c.Axis[2]))
	}
	return nil
}

func cmdSkin(cfg *config.Config, args []string, w io.Writer) error {
	fs := flag.NewFlagSet("skin", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	lod := fs.Int("lod", -1, "Skin LOD model N instead of the base mesh")
	if len(args) < 1 {
		return fmt.Errorf("%w: skeltool skin <file> [-lod N]", errUsage)
	}
	if err := fs.Parse(args[1:]); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}

	inst, err := loadInstance(cfg, args[0])
	if err != nil {
		return err
	}

	var points []math.Vec3
	if *lod >= 0 {
		points, err = inst.SkinLOD(*lod)
	} else {
		points, err = inst.Skin()
	}
	if err != nil {
		return err
	}

	for v, p := range points {
		fmt.Fprintf(w, "%6d  %s\n", v, fmtVec(p))
	}
	return nil
}

func cmdSkeleton(cfg *config.Config, args []string, w io.Writer) error {
	if len(args) < 1 {
		return fmt.Errorf("%w: skeltool skeleton <file>", errUsage)
	}

	inst, err := loadInstance(cfg, args[0])
	if err != nil {
		return err
	}

	for _, seg := range inst.Skeleton() {
		fmt.Fprintf(w, "%-20s %s -> %s  axis %s\n",
			seg.Name, fmtVec(seg.ParentOrigin), fmtVec(seg.Origin), fmtVec(seg.AxisEnd))
	}
	return nil
}

func cmdConfig(cfg *config.Config, args []string, w io.Writer) error {
	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	out := fs.String("o", "", "Write the configuration to this path")
	user := fs.Bool("user", false, "Write the configuration to the user config directory")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	if *out != "" && *user {
		return fmt.Errorf("%w: skeltool config takes -o or -user, not both", errUsage)
	}

	switch {
	case *out != "":
		if err := cfg.SaveTo(*out); err != nil {
			return err
		}
		fmt.Fprintf(w, "Saved: %s\n", *out)
	case *user:
		path, err := cfg.Save()
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "Saved: %s\n", path)
	default:
		data, err := cfg.Marshal()
		if err != nil {
			return err
		}
		if _, err := w.Write(data); err != nil {
			return err
		}
	}
	return nil
}

// loadInstance builds a skeleton for the rig at path and poses it as the
// config's animation section says.
func loadInstance(cfg *config.Config, path string) (*skeletal.Instance, error) {
	rig, err := formats.LoadRig(path)
	if err != nil {
		return nil, err
	}

	opts := skeletal.DefaultOptions()
	opts.Workers = cfg.Skinning.Workers
	opts.Loop = cfg.Animation.Loop
	opts.BaseTransform = placement(cfg.Transform)

	inst, err := skeletal.NewInstance(skeletal.MeshFromRig(rig), opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	seq := skeletal.NoSequence
	if name := cfg.Animation.Sequence; name != "" {
		seq = inst.Mesh().Animation.FindSequence(name)
		if seq == skeletal.NoSequence {
			return nil, fmt.Errorf("%s: sequence %q not found (have: %s)",
				path, name, strings.Join(rig.SequenceNames(), ", "))
		}
	}
	inst.UpdatePose(seq, cfg.Animation.Time)

	logger.Debug("posed",
		zap.String("rig", path),
		zap.String("sequence", cfg.Animation.Sequence),
		zap.Float32("time", cfg.Animation.Time),
		zap.Bool("loop", opts.Loop),
	)
	return inst, nil
}

// placement converts the transform section into a base transform. Angles
// are applied roll first, then pitch, then yaw.
func placement(t config.TransformConfig) math.Coords {
	yaw := math.QuatFromAxisAngle(math.Vec3{Z: 1}, degToRad(t.Yaw))
	pitch := math.QuatFromAxisAngle(math.Vec3{Y: 1}, degToRad(t.Pitch))
	roll := math.QuatFromAxisAngle(math.Vec3{X: 1}, degToRad(t.Roll))
	rot := yaw.Mul(pitch).Mul(roll)
	return skeletal.PlacementTransform(math.Vec3FromArray(t.Origin), rot, t.Scale)
}

func degToRad(deg float32) float32 {
	return deg * gomath.Pi / 180
}

func fmtVec(v math.Vec3) string {
	return fmt.Sprintf("(%.4f, %.4f, %.4f)", v.X, v.Y, v.Z)
}

// fmtMat4 prints m row by row.
func fmtMat4(m math.Mat4) string {
	rows := make([]string, 4)
	for r := range rows {
		rows[r] = fmt.Sprintf("[%.4f %.4f %.4f %.4f]", m[r], m[4+r], m[8+r], m[12+r])
	}
	return strings.Join(rows, " ")
}
