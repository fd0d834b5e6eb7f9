package signature

// ConstantTimeEqual reports whether expected and provided are equal without
// short-circuiting on the first difference.
//
// Every position up to the length of the longer string is examined even after
// a mismatch is found, and a length mismatch is folded into the same
// accumulator as character mismatches. This keeps execution time independent
// of where (or whether) the inputs differ, so response latency cannot be used
// to binary-search the expected signature.
//
// This primitive knows nothing about HMAC or headers; it compares bytes.
func ConstantTimeEqual(expected, provided string) bool {
	var acc byte
	if len(expected) != len(provided) {
		acc = 1
	}

	n := len(expected)
	if len(provided) > n {
		n = len(provided)
	}

	for i := 0; i < n; i++ {
		var a, b byte
		if i < len(expected) {
			a = expected[i]
		}
		if i < len(provided) {
			b = provided[i]
		}
		acc |= a ^ b
	}

	return acc == 0
}
