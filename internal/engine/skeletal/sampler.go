package skeletal

import (
	"fmt"
	gomath "math"

	"github.com/Faultbox/skelmesh/pkg/math"
)

// SampleTrack returns the bone position and orientation at the given time.
// Times outside the keyed range clamp to the first or last keyframe, and a
// time that hits a keyframe exactly returns that keyframe untouched.
func SampleTrack(track *AnalogTrack, time float32) (math.Vec3, math.Quat) {
	n := len(track.KeyTime)
	if n == 0 {
		return math.Vec3{}, math.QuatIdentity()
	}
	if n == 1 {
		return track.KeyPos[0], track.KeyQuat[0]
	}

	// Linear scan over key times.
	// TODO: binary search once tracks with thousands of keys show up.
	i := 0
	for ; i < n; i++ {
		if time == track.KeyTime[i] {
			return track.posAt(i), track.quatAt(i)
		}
		if time < track.KeyTime[i] {
			break
		}
	}
	if i == 0 {
		return track.posAt(0), track.quatAt(0)
	}
	i--
	if i >= n-1 {
		return track.posAt(n-1), track.quatAt(n-1)
	}

	frac := (time - track.KeyTime[i]) / (track.KeyTime[i+1] - track.KeyTime[i])
	return track.interpolate(i, i+1, frac)
}

// SampleTrackLooped samples a track that repeats every length time units.
// Time is wrapped into [0, length) and the gap between the last keyframe and
// the first keyframe of the next cycle is interpolated.
func SampleTrackLooped(track *AnalogTrack, time, length float32) (math.Vec3, math.Quat) {
	n := len(track.KeyTime)
	if n <= 1 || length <= 0 {
		return SampleTrack(track, time)
	}

	time = float32(gomath.Mod(float64(time), float64(length)))
	if time < 0 {
		time += length
	}

	first, last := track.KeyTime[0], track.KeyTime[n-1]
	if time >= first && time <= last {
		return SampleTrack(track, time)
	}

	span := first + length - last
	if span <= 0 {
		return SampleTrack(track, time)
	}
	if time < first {
		time += length
	}
	return track.interpolate(n-1, 0, (time-last)/span)
}

func (a *AnalogTrack) posAt(i int) math.Vec3 {
	if len(a.KeyPos) > 1 {
		return a.KeyPos[i]
	}
	return a.KeyPos[0]
}

func (a *AnalogTrack) quatAt(i int) math.Quat {
	if len(a.KeyQuat) > 1 {
		return a.KeyQuat[i]
	}
	return a.KeyQuat[0]
}

func (a *AnalogTrack) interpolate(i, j int, frac float32) (math.Vec3, math.Quat) {
	pos := a.KeyPos[0]
	if len(a.KeyPos) > 1 {
		pos = math.LerpVec3(a.KeyPos[i], a.KeyPos[j], frac)
	}
	quat := a.KeyQuat[0]
	if len(a.KeyQuat) > 1 {
		quat = a.KeyQuat[i].Slerp(a.KeyQuat[j], frac)
	}
	return pos, quat
}

// validate checks the invariants SampleTrack relies on.
func (a *AnalogTrack) validate() error {
	n := len(a.KeyTime)
	if n == 0 {
		return fmt.Errorf("%w: no keyframes", ErrInvalidTrack)
	}
	if len(a.KeyPos) != 1 && len(a.KeyPos) != n {
		return fmt.Errorf("%w: %d position keys for %d key times", ErrInvalidTrack, len(a.KeyPos), n)
	}
	if len(a.KeyQuat) != 1 && len(a.KeyQuat) != n {
		return fmt.Errorf("%w: %d orientation keys for %d key times", ErrInvalidTrack, len(a.KeyQuat), n)
	}
	for i := 1; i < n; i++ {
		if a.KeyTime[i] < a.KeyTime[i-1] {
			return fmt.Errorf("%w: key time %d decreases", ErrInvalidTrack, i)
		}
	}
	return nil
}

