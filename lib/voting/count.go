package voting

// Count returns the number of `Zero` and `One` in xs; `Unknown` is skipped.
func Count(xs []Value) (zero, one int) {
	for _, x := range xs {
		switch x {
		case Zero:
			zero++
		case One:
			one++
		}
	}

	return
}

// MostCommon returns the strict majority among the binary values of xs.
// `false` is returned on a tie, including when xs has no binary value.
func MostCommon(xs []Value) (Value, bool) {
	zero, one := Count(xs)
	if zero > one {
		return Zero, true
	} else if one > zero {
		return One, true
	}

	return Unknown, false
}
