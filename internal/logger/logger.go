package logger

import (
	"go.uber.org/zap"
)

// New, metin log seviyesinden ("debug", "info", "warn"...) production
// ayarlı bir zap logger üretir. Loglar stderr'e yazılır; toolserver'ın
// stdout üzerindeki JSON-RPC akışı bu yüzden kirlenmez.
func New(level string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, err
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = lvl

	return cfg.Build(zap.AddCaller())
}
