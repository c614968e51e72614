package mvalid

// MinVertexCount is the smallest vertex count a real asset has been
// observed to carry; anything below it is a misparse.
const MinVertexCount = 10

// IsPlausible is the acceptance gate for a structurally complete
// decode: enough vertices to be a real asset, at least one face, and
// every index in bounds. There is no format specification to check
// against, so structural self-consistency is the only accept/reject
// signal available.
func IsPlausible(vertexCount int, faces [][3]uint32) bool {
	if vertexCount < MinVertexCount || len(faces) == 0 {
		return false
	}
	for _, face := range faces {
		for _, index := range face {
			if index >= uint32(vertexCount) {
				return false
			}
		}
	}
	return true
}
