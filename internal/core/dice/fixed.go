package dice

// Faces is a Source that replays die faces in order.
//
// Each call to Intn consumes the next face f and returns f-1, so rolling a die
// yields f when f is within [1, n]. Faces outside the die are clamped. An
// exhausted Faces keeps repeating its last face; an empty one rolls 1.
type Faces struct {
	faces []int
	next  int
}

// NewFaces returns a Source that rolls the given faces in order.
func NewFaces(faces ...int) *Faces {
	return &Faces{faces: append([]int(nil), faces...)}
}

// Intn implements Source.
func (f *Faces) Intn(n int) int {
	face := 1
	if len(f.faces) > 0 {
		index := f.next
		if index >= len(f.faces) {
			index = len(f.faces) - 1
		} else {
			f.next++
		}
		face = f.faces[index]
	}
	if face < 1 {
		face = 1
	}
	if face > n {
		face = n
	}
	return face - 1
}
