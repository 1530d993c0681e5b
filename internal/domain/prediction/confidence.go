package prediction

// Blend weights for HybridConfidence. The fixed 0.5 prior keeps a constant
// 20% pull toward neutral when either input signal is weak or absent.
const (
	aiWeight    = 0.4
	mathWeight  = 0.4
	priorWeight = 0.2
	priorValue  = 0.5
)

// HybridConfidence blends an AI-model confidence with a statistical one,
// both in [0,1]. Out-of-range inputs are clamped before blending.
func HybridConfidence(aiConfidence, mathConfidence float64) float64 {
	ai := clamp01(aiConfidence)
	math := clamp01(mathConfidence)
	return ai*aiWeight + math*mathWeight + priorValue*priorWeight
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
