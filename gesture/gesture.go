// Package gesture classifies raised-hand gestures from body keypoint
// geometry.
//
// All functions are pure rules over a single pose; nothing persists across
// inference ticks.
package gesture

import "github.com/chungastico/vigia/types"

// HandRaised reports whether either hand is raised.
//
// A hand counts as raised when both the wrist and the shoulder of the same
// arm exceed minConfidence and the wrist sits above the shoulder in the
// image (numerically smaller Y, origin at top-left).
func HandRaised(pose types.Pose, minConfidence float64) bool {
	return armRaised(pose, types.KeypointLeftWrist, types.KeypointLeftShoulder, minConfidence) ||
		armRaised(pose, types.KeypointRightWrist, types.KeypointRightShoulder, minConfidence)
}

func armRaised(pose types.Pose, wrist, shoulder int, minConfidence float64) bool {
	w := pose.Keypoints[wrist]
	s := pose.Keypoints[shoulder]

	return w.Confidence > minConfidence && s.Confidence > minConfidence && w.Y < s.Y
}

// HipMidpoint returns the midpoint of the two hip keypoints in normalized
// image coordinates.
//
// The pose worker maps this point to a desk zone by bounds containment.
//
// Returns:
//   - x, y: Normalized midpoint coordinates
//   - bool: false when either hip falls below minConfidence
func HipMidpoint(pose types.Pose, minConfidence float64) (float64, float64, bool) {
	l := pose.Keypoints[types.KeypointLeftHip]
	r := pose.Keypoints[types.KeypointRightHip]
	if l.Confidence < minConfidence || r.Confidence < minConfidence {
		return 0, 0, false
	}

	return (l.X + r.X) / 2, (l.Y + r.Y) / 2, true
}
