package sentiment

import "time"

// Sample é uma leitura do índice (0–100)
type Sample struct {
	Index   int       `json:"index"`
	TakenAt time.Time `json:"takenAt"`
}

// Trend compara as duas leituras mais recentes
type Trend string

const (
	TrendUp      Trend = "up"
	TrendDown    Trend = "down"
	TrendNeutral Trend = "neutral"
)

// NeutralIndex é usado quando nenhuma leitura está disponível
const NeutralIndex = 50

// Clamp limita o índice a [0,100]
func Clamp(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// Classify usa as mesmas faixas do índice Fear & Greed
func Classify(index int) string {
	switch {
	case index <= 25:
		return "Extreme Fear"
	case index <= 45:
		return "Fear"
	case index <= 55:
		return "Neutral"
	case index <= 75:
		return "Greed"
	default:
		return "Extreme Greed"
	}
}
