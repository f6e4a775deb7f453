package webserver

import (
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const (
	flashSuccess = "flash_success"
	flashError   = "flash_error"
)

// Flash is a one-shot message carried across a redirect.
type Flash struct {
	Message string
	Success bool
}

// AddFlash queues msg for the next page render.
func AddFlash(c echo.Context, msg string, success bool) {
	sess, err := session.Get(SessionName, c)
	if err != nil {
		zap.L().Warn("session unavailable, flash dropped", zap.Error(err))
		return
	}
	key := flashError
	if success {
		key = flashSuccess
	}
	sess.AddFlash(msg, key)
	if err := sess.Save(c.Request(), c.Response()); err != nil {
		zap.L().Warn("save session failed", zap.Error(err))
	}
}

// PopFlash returns and clears the pending message, if any. Errors win over
// successes when both are queued.
func PopFlash(c echo.Context) *Flash {
	sess, err := session.Get(SessionName, c)
	if err != nil {
		return nil
	}
	var out *Flash
	for _, key := range []string{flashSuccess, flashError} {
		for _, v := range sess.Flashes(key) {
			if msg, ok := v.(string); ok {
				out = &Flash{Message: msg, Success: key == flashSuccess}
			}
		}
	}
	if out != nil {
		if err := sess.Save(c.Request(), c.Response()); err != nil {
			zap.L().Warn("save session failed", zap.Error(err))
		}
	}
	return out
}
