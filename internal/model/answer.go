package model

import "strconv"

// Answer is the outcome for one question: a 1-based option index when
// Valid, otherwise unresolved. The zero value is unresolved.
type Answer struct {
	Option int  `json:"option,omitempty"`
	Valid  bool `json:"resolved"`
}

// Resolved returns an Answer choosing the 1-based option n.
func Resolved(n int) Answer {
	return Answer{Option: n, Valid: true}
}

// Unresolved returns the absent Answer.
func Unresolved() Answer {
	return Answer{}
}

// Get returns the chosen option and whether one was chosen.
func (a Answer) Get() (int, bool) {
	return a.Option, a.Valid
}

func (a Answer) String() string {
	if !a.Valid {
		return "N/A"
	}
	return strconv.Itoa(a.Option)
}

// Unresolveds returns n unresolved answers.
func Unresolveds(n int) []Answer {
	return make([]Answer, n)
}

// CountResolved returns how many answers carry an option.
func CountResolved(answers []Answer) int {
	n := 0
	for _, a := range answers {
		if a.Valid {
			n++
		}
	}
	return n
}
