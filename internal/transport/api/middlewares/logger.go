package middlewares

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Logger пишет в лог каждый запрос. Ошибки запроса, включая приватные, попадают в поле errors.
func Logger(l *logrus.Logger) gin.HandlerFunc {
	log := l.WithField("component", "http")
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		entry := log.WithFields(logrus.Fields{
			"status":   c.Writer.Status(),
			"method":   c.Request.Method,
			"path":     c.FullPath(),
			"uri":      c.Request.RequestURI,
			"latency":  time.Since(start).String(),
			"clientIP": c.ClientIP(),
		})

		switch {
		case len(c.Errors) > 0 && c.Writer.Status() >= 500:
			entry.WithField("errors", c.Errors.String()).Error("request failed")
		case len(c.Errors) > 0:
			entry.WithField("errors", c.Errors.String()).Info("request rejected")
		default:
			entry.Debug("request")
		}
	}
}
