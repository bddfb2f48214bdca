package logging

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// New tworzy logger. format "json" daje pola timestamp/severity/message, wszystko inne - tekst.
func New(level, format string) *logrus.Logger {
	return NewWithOutput(os.Stderr, level, format)
}

// NewWithOutput tworzy logger piszący do out
func NewWithOutput(out io.Writer, level, format string) *logrus.Logger {
	log := logrus.New()
	log.Out = out

	if strings.EqualFold(format, "json") {
		log.Formatter = &logrus.JSONFormatter{
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime:  "timestamp",
				logrus.FieldKeyLevel: "severity",
				logrus.FieldKeyMsg:   "message",
			},
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
		}
	} else {
		log.Formatter = &logrus.TextFormatter{FullTimestamp: true}
	}

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
		log.WithField("level", level).Warn("nieznany poziom logowania, używam info")
	}
	log.Level = lvl

	return log
}

// Discard zwraca logger, który niczego nie wypisuje (testy)
func Discard() *logrus.Logger {
	log := logrus.New()
	log.Out = io.Discard
	return log
}
