package logger

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog"
)

// components holds per-component level overrides applied by WithComponent.
var components = struct {
	mu     sync.RWMutex
	levels map[string]zerolog.Level
}{levels: map[string]zerolog.Level{}}

// SetComponentLevels replaces the level overrides for component loggers, for
// example {"planner": "debug"} to trace planning while the rest stays at
// info. Loggers created earlier keep their level. Nothing is changed when a
// level does not parse.
func SetComponentLevels(levels map[string]string) error {
	parsed := make(map[string]zerolog.Level, len(levels))
	for name, lvl := range levels {
		l, err := zerolog.ParseLevel(lvl)
		if err != nil {
			return fmt.Errorf("log.components.%s: %w", name, err)
		}
		parsed[name] = l
	}
	components.mu.Lock()
	components.levels = parsed
	components.mu.Unlock()
	return nil
}

func componentLevel(name string) (zerolog.Level, bool) {
	components.mu.RLock()
	defer components.mu.RUnlock()
	l, ok := components.levels[name]
	return l, ok
}

// Get returns the global logger tagged with a component name.
func Get(name string) *Logger {
	return GetGlobalLogger().WithComponent(name)
}
