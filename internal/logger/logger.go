package logger

import (
	"io"

	"github.com/sirupsen/logrus"
)

// Log глобальный логгер. До вызова Init пишет в stderr с уровнем info.
var Log = logrus.New()

// Init настраивает структурированный логгер.
// В development текстовый формат, иначе JSON.
func Init(level, env string) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
		if env == "development" {
			lvl = logrus.DebugLevel
		}
	}
	Log.SetLevel(lvl)

	if env == "development" {
		Log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
		return
	}
	Log.SetFormatter(&logrus.JSONFormatter{})
}

// SetOutput перенаправляет вывод, используется в тестах.
func SetOutput(w io.Writer) {
	Log.SetOutput(w)
}
