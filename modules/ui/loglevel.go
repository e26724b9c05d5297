package ui

import (
	"fmt"
	"strings"
)

var loglevelnames = [...]string{"Trace", "Debug", "Info", "Warn", "Error", "Fatal"}

func (l LogLevel) String() string {
	if l < LevelTrace || l > LevelFatal {
		return fmt.Sprintf("LogLevel(%d)", int(l))
	}
	return loglevelnames[l]
}

// LogLevelString converts a case insensitive name to a LogLevel
func LogLevelString(s string) (LogLevel, error) {
	for i, name := range loglevelnames {
		if strings.EqualFold(name, s) {
			return LogLevel(i), nil
		}
	}
	return LevelInfo, fmt.Errorf("%s does not belong to LogLevel values", s)
}

func LogLevelStrings() []string {
	result := make([]string, len(loglevelnames))
	copy(result, loglevelnames[:])
	return result
}
