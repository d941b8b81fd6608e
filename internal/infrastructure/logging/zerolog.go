package logging

import (
	"os"

	"github.com/rs/zerolog"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

var zeroSingleton *zerolog.Logger

var zeroLogLevels = map[string]zerolog.Level{
	"debug": zerolog.DebugLevel,
	"info":  zerolog.InfoLevel,
	"warn":  zerolog.WarnLevel,
	"error": zerolog.ErrorLevel,
	"fatal": zerolog.FatalLevel,
}

type zeroLogger struct {
	cfg    *LoggerConfig
	logger *zerolog.Logger
}

func newZeroLogger(cfg *LoggerConfig) *zeroLogger {
	l := &zeroLogger{cfg: cfg}
	l.Init()
	return l
}

func (l *zeroLogger) getLogLevel() zerolog.Level {
	level, ok := zeroLogLevels[l.cfg.Level]
	if !ok {
		return zerolog.DebugLevel
	}
	return level
}

func (l *zeroLogger) Init() {
	once.Do(func() {
		fileWriter := &lumberjack.Logger{
			Filename:   l.cfg.FilePath + "taskbuddy.log",
			MaxSize:    10, // MB
			MaxAge:     30, // days
			MaxBackups: 5,
			Compress:   true,
		}

		writer := zerolog.MultiLevelWriter(fileWriter, os.Stdout)

		logger := zerolog.New(writer).
			Level(l.getLogLevel()).
			With().
			Timestamp().
			Str(string(AppName), "taskbuddy").
			Str(string(LoggerName), "zerolog").
			Logger()

		zeroSingleton = &logger
	})

	l.logger = zeroSingleton
}

func (l *zeroLogger) event(level zerolog.Level, cat Category, sub SubCategory, extra map[ExtraKey]any) *zerolog.Event {
	return l.logger.WithLevel(level).
		Str("Category", string(cat)).
		Str("SubCategory", string(sub)).
		Fields(logParamsToZeroParams(extra))
}

func (l *zeroLogger) Debug(cat Category, sub SubCategory, msg string, extra map[ExtraKey]any) {
	l.event(zerolog.DebugLevel, cat, sub, extra).Msg(msg)
}

func (l *zeroLogger) Debugf(template string, args ...any) {
	l.logger.Debug().Msgf(template, args...)
}

func (l *zeroLogger) Info(cat Category, sub SubCategory, msg string, extra map[ExtraKey]any) {
	l.event(zerolog.InfoLevel, cat, sub, extra).Msg(msg)
}

func (l *zeroLogger) Infof(template string, args ...any) {
	l.logger.Info().Msgf(template, args...)
}

func (l *zeroLogger) Warn(cat Category, sub SubCategory, msg string, extra map[ExtraKey]any) {
	l.event(zerolog.WarnLevel, cat, sub, extra).Msg(msg)
}

func (l *zeroLogger) Warnf(template string, args ...any) {
	l.logger.Warn().Msgf(template, args...)
}

func (l *zeroLogger) Error(cat Category, sub SubCategory, msg string, extra map[ExtraKey]any) {
	l.event(zerolog.ErrorLevel, cat, sub, extra).Msg(msg)
}

func (l *zeroLogger) Errorf(template string, args ...any) {
	l.logger.Error().Msgf(template, args...)
}

func (l *zeroLogger) Fatal(cat Category, sub SubCategory, msg string, extra map[ExtraKey]any) {
	l.event(zerolog.FatalLevel, cat, sub, extra).Msg(msg)
}

func (l *zeroLogger) Fatalf(template string, args ...any) {
	l.logger.Fatal().Msgf(template, args...)
}
