package goroutine

import (
	"context"
	"runtime/debug"

	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/screening-backend/internal/logger"
)

// SafeGo запускает горутину и логирует panic вместо падения процесса.
// name попадает в поле task лога.
func SafeGo(name string, fn func()) {
	go func() {
		defer recoverPanic(name)
		fn()
	}()
}

// SafeGoWithContext то же, что SafeGo, с передачей контекста.
func SafeGoWithContext(ctx context.Context, name string, fn func(context.Context)) {
	go func() {
		defer recoverPanic(name)
		fn(ctx)
	}()
}

// Run синхронный вариант: panic превращается в запись в логе.
func Run(name string, fn func()) {
	defer recoverPanic(name)
	fn()
}

func recoverPanic(name string) {
	if r := recover(); r != nil {
		logger.Log.WithFields(logrus.Fields{
			"task":  name,
			"panic": r,
			"stack": string(debug.Stack()),
		}).Error("panic в фоновой задаче")
	}
}
