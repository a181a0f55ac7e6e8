package response

import "testing"

func BenchmarkMeasure4096(b *testing.B) {
	identity := func(x float64) float64 { return x }

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_, _ = Measure(identity, 4096, 48000)
	}
}
