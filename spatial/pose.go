package spatial

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Mat3 is a rotation matrix.
type Mat3 = mgl64.Mat3

// Pose is a rigid transform: rotation then translation, both expressed in
// the OMAF referential.
type Pose struct {
	Rotation    Mat3
	Translation Vec3
}

// Identity returns the pose with no rotation and no translation.
func Identity() Pose {
	return Pose{Rotation: mgl64.Ident3(), Translation: Vec3{}}
}

// EulerDegrees builds a rotation matrix from yaw/pitch/roll Euler angles in
// degrees, the encoding used by the camera-parameter files (spec.md §6).
// Yaw rotates about z (up), pitch about y (left), roll about x (forward),
// applied in that order — yaw, then pitch, then roll — matching the OMAF
// convention of composing intrinsic rotations from the "up" axis down.
func EulerDegrees(yawDeg, pitchDeg, rollDeg float64) Mat3 {
	yaw := mgl64.DegToRad(yawDeg)
	pitch := mgl64.DegToRad(pitchDeg)
	roll := mgl64.DegToRad(rollDeg)
	q := mgl64.AnglesToQuat(roll, pitch, yaw, mgl64.XYZ)
	return q.Normalize().Mat4().Mat3()
}

// Compose returns the relative pose of the virtual camera with respect to
// the input camera, per spec.md §4.3 step 3:
//
//	R = R_virt^T * R_in
//	t = -R_virt^T * (t_virt - t_in)
func Compose(inputRotation Mat3, inputTranslation Vec3, virtRotation Mat3, virtTranslation Vec3) (Mat3, Vec3) {
	virtRotationT := virtRotation.Transpose()
	r := virtRotationT.Mul3(inputRotation)
	diff := virtTranslation.Sub(inputTranslation)
	t := virtRotationT.Mul3x1(diff).Mul(-1)
	return r, t
}

// Apply returns R*v + t.
func Apply(r Mat3, t Vec3, v Vec3) Vec3 {
	return r.Mul3x1(v).Add(t)
}
