package skeletal

// FindBone returns the index of the bone with exactly this name, or -1.
func (inst *Instance) FindBone(name string) int {
	for i := range inst.mesh.Bones {
		if inst.mesh.Bones[i].Name == name {
			return i
		}
	}
	return -1
}

// SetBoneScale sets a uniform scale on the named bone's axes, applied from
// the next UpdatePose on. Unknown names are ignored.
func (inst *Instance) SetBoneScale(name string, scale float32) {
	i := inst.FindBone(name)
	if i < 0 {
		return
	}
	inst.bones[i].scale = scale
}

// BoneScale returns the scale override of the named bone and whether the
// bone exists.
func (inst *Instance) BoneScale(name string) (float32, bool) {
	i := inst.FindBone(name)
	if i < 0 {
		return 1, false
	}
	return inst.bones[i].scale, true
}

// ResetBoneScales restores every bone to scale 1.
func (inst *Instance) ResetBoneScales() {
	for i := range inst.bones {
		inst.bones[i].scale = 1
	}
}
