package ds

// NearestDivisibleByM returns the smallest number that is not less than n
// and is divisible by m. For example,
//
//   NearestDivisibleByM(11, 8) == 16
//   NearestDivisibleByM(16, 8) == 16
func NearestDivisibleByM(n int, m int) int {
	if m <= 0 {
		panic(ErrUnreachableCode{Caller: "NearestDivisibleByM"})
	}
	remainder := n % m
	if remainder == 0 {
		return n
	}
	return n + m - remainder
}
