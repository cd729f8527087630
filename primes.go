// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package bdd

import "math/big"

// Prime numbers are used for the size of the node table and for the number of
// buckets in the operation caches.

var smallPrimes = [...]int{2, 3, 5, 7, 11, 13}

// isPrime reports whether n is a prime number. We first look for a small
// factor, which rules out most candidates, before calling ProbablyPrime, that
// is exact for values less than 2⁶⁴.
func isPrime(n int) bool {
	if n < 2 {
		return false
	}
	for _, p := range smallPrimes {
		if n == p {
			return true
		}
		if n%p == 0 {
			return false
		}
	}
	return big.NewInt(int64(n)).ProbablyPrime(0)
}

// primeGte returns the smallest prime greater or equal to src.
func primeGte(src int) int {
	n := max(src, 2)
	for !isPrime(n) {
		n++
	}
	return n
}

// primeLte returns the largest prime lower or equal to src, or 2 if there is
// none.
func primeLte(src int) int {
	for n := src; n > 2; n-- {
		if isPrime(n) {
			return n
		}
	}
	return 2
}
