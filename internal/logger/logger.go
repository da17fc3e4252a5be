package logger

import (
	"go.uber.org/zap"
)

// Log defaults to a no-op logger so library consumers that never call
// InitLogger do not crash on logging paths.
var Log = zap.NewNop()

func InitLogger() {
	l, err := zap.NewDevelopment()
	if err != nil {
		panic("Failed to init logger: " + err.Error())
	}
	Log = l
}

func SyncLogger() {
	_ = Log.Sync()
}
