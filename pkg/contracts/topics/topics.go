package topics

const (
	// Apostas
	BetPlaced = "bet_placed"

	// Índice de sentimento e rodada
	SentimentUpdates = "sentiment_updates"
	RoundElapsed     = "round_elapsed"

	// Ciclo de vida do mini app (webhook do host)
	AppLifecycle = "app_lifecycle"

	// DLQs
	BetPlacedDLQ = "bet_placed_dlq"
)
