package app

import (
	"github.com/gin-gonic/gin"
	ginzap "github.com/gin-contrib/zap"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger builds the development style console logger and installs it
// as the global zap logger
func NewLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
	cfg.EncoderConfig.ConsoleSeparator = " "
	cfg.DisableStacktrace = lvl > zapcore.DebugLevel

	logger, err := cfg.Build()
	if err != nil {
		return nil, err
	}

	zap.ReplaceGlobals(logger)
	return logger, nil
}

func requestLogger() gin.HandlerFunc {
	return ginzap.GinzapWithConfig(zap.L(), &ginzap.Config{
		TimeFormat: "15:04:05.000",
		UTC:        true,
		Skipper: func(c *gin.Context) bool {
			return c.Request.Method == "HEAD"
		},
		Context: func(c *gin.Context) []zapcore.Field {
			fields := []zapcore.Field{}

			if v := c.GetString("requestID"); v != "" {
				fields = append(fields, zap.String("request_id", v))
			}

			if v := c.GetString("userID"); v != "" {
				fields = append(fields, zap.String("userID", v))
			}

			return fields
		},
	})
}
