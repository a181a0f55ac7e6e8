package crossover

import "testing"

func BenchmarkLR2ProcessSample(b *testing.B) {
	xo, _ := NewLR2(48000, 1000)

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_, _ = xo.ProcessSample(0.5)
	}
}

func BenchmarkLR2SetFrequency(b *testing.B) {
	xo, _ := NewLR2(48000, 1000)

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		xo.SetFrequency(float64(20 + i%880))
	}
}
