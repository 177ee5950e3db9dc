package launcher

import (
	"io"
	"time"

	"github.com/evalphobia/logrus_sentry"
	"github.com/sirupsen/logrus"
)

// verbosityLevels maps --log.verbosity onto logrus levels.
var verbosityLevels = []logrus.Level{
	logrus.FatalLevel,
	logrus.ErrorLevel,
	logrus.WarnLevel,
	logrus.InfoLevel,
	logrus.DebugLevel,
	logrus.TraceLevel,
}

func levelFor(verbosity int) logrus.Level {
	if verbosity < 0 {
		verbosity = 0
	}
	if verbosity >= len(verbosityLevels) {
		verbosity = len(verbosityLevels) - 1
	}
	return verbosityLevels[verbosity]
}

// newLogger builds the process logger from cfg. Error and worse entries are also sent to Sentry
// when a DSN is configured.
func newLogger(cfg LoggingConfig, out io.Writer) (*logrus.Logger, error) {
	log := logrus.New()
	log.SetOutput(out)
	log.SetLevel(levelFor(cfg.Verbosity))

	switch cfg.Format {
	case "json":
		log.SetFormatter(&logrus.JSONFormatter{})
	default:
		log.SetFormatter(&logrus.TextFormatter{
			ForceColors:   cfg.Color,
			DisableColors: !cfg.Color,
			FullTimestamp: true,
		})
	}

	if cfg.SentryDSN != "" {
		hook, err := logrus_sentry.NewSentryHook(cfg.SentryDSN, []logrus.Level{
			logrus.PanicLevel,
			logrus.FatalLevel,
			logrus.ErrorLevel,
		})
		if err != nil {
			return nil, err
		}
		hook.Timeout = 5 * time.Second
		hook.StacktraceConfiguration.Enable = true
		log.AddHook(hook)
	}
	return log, nil
}
