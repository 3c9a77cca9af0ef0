package oracle

// sieveLimit covers every prime up to sqrt of the largest supported
// deterministic bound (1<<24).
const sieveLimit = 4096

// sievePrimes lists every prime below sieveLimit in ascending order. The
// table doubles as the Miller-Rabin witness base sequence and as the
// orchestrator's small-prime strip table.
var sievePrimes = buildSieve(sieveLimit)

func buildSieve(limit int) []uint64 {
	composite := make([]bool, limit)
	primes := make([]uint64, 0, limit/8)
	for i := 2; i < limit; i++ {
		if composite[i] {
			continue
		}
		primes = append(primes, uint64(i))
		for j := i * i; j < limit; j += i {
			composite[j] = true
		}
	}
	return primes
}

// SmallPrimes returns the first count primes from the sieve table.
func SmallPrimes(count int) []uint64 {
	if count > len(sievePrimes) {
		count = len(sievePrimes)
	}
	return sievePrimes[:count]
}
