package types

// Keypoint indices into the fixed 17-point body layout produced by
// multi-person pose estimators (MoveNet ordering).
const (
	KeypointNose = iota
	KeypointLeftEye
	KeypointRightEye
	KeypointLeftEar
	KeypointRightEar
	KeypointLeftShoulder
	KeypointRightShoulder
	KeypointLeftElbow
	KeypointRightElbow
	KeypointLeftWrist
	KeypointRightWrist
	KeypointLeftHip
	KeypointRightHip
	KeypointLeftKnee
	KeypointRightKnee
	KeypointLeftAnkle
	KeypointRightAnkle

	// NumKeypoints is the size of the fixed keypoint layout.
	NumKeypoints = 17
)

// Keypoint is a single detected body keypoint.
//
// Y and X are normalized image coordinates in [0, 1] with the origin at the
// top-left corner, so a smaller Y is higher in the frame.
type Keypoint struct {
	Y          float64
	X          float64
	Confidence float64
}

// Pose is one detected person: 17 keypoints plus an overall person
// confidence score.
type Pose struct {
	Keypoints  [NumKeypoints]Keypoint
	Confidence float64
}
