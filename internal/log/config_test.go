package log

import (
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/zap/zapcore"
)

type ModuleLevelSuite struct {
	suite.Suite
	origEnvFunc func(string) (string, bool)
	testEnv     map[string]string
}

func (s *ModuleLevelSuite) SetupTest() {
	s.origEnvFunc = envFunc
	s.testEnv = make(map[string]string)
	envFunc = func(key string) (string, bool) {
		v, ok := s.testEnv[key]
		if !ok || v == "" {
			return "", false
		}
		return v, true
	}
}

func (s *ModuleLevelSuite) TearDownTest() {
	envFunc = s.origEnvFunc
}

func (s *ModuleLevelSuite) TestDefaultsToInfo() {
	s.Equal(zapcore.InfoLevel, moduleLevel([]string{"Renderer"}))
	s.Equal(zapcore.InfoLevel, moduleLevel(nil))
}

func (s *ModuleLevelSuite) TestGlobalLevel() {
	s.testEnv["LOG_LEVEL"] = "debug"
	s.Equal(zapcore.DebugLevel, moduleLevel([]string{"Renderer"}))
}

func (s *ModuleLevelSuite) TestModuleOverrideWins() {
	s.testEnv["LOG_LEVEL"] = "warn"
	s.testEnv["LOG_LEVEL__RENDERER"] = "debug"
	s.Equal(zapcore.DebugLevel, moduleLevel([]string{"Renderer"}))
}

func (s *ModuleLevelSuite) TestNestedModuleInheritsParent() {
	s.testEnv["LOG_LEVEL"] = "error"
	s.testEnv["LOG_LEVEL__ROUTER"] = "debug"
	s.Equal(zapcore.DebugLevel, moduleLevel([]string{"Router", "Health"}))
}

func (s *ModuleLevelSuite) TestMostSpecificWins() {
	s.testEnv["LOG_LEVEL"] = "warn"
	s.testEnv["LOG_LEVEL__ROUTER"] = "info"
	s.testEnv["LOG_LEVEL__ROUTER__HEALTH"] = "debug"
	s.Equal(zapcore.DebugLevel, moduleLevel([]string{"Router", "Health"}))
}

func (s *ModuleLevelSuite) TestCamelCaseNamesConverted() {
	s.testEnv["LOG_LEVEL__BATCH_RENDERER"] = "debug"
	s.Equal(zapcore.DebugLevel, moduleLevel([]string{"BatchRenderer"}))
}

func (s *ModuleLevelSuite) TestInvalidLevelFallsThrough() {
	s.testEnv["LOG_LEVEL__RENDERER"] = "loud"
	s.testEnv["LOG_LEVEL"] = "warn"
	s.Equal(zapcore.WarnLevel, moduleLevel([]string{"Renderer"}))
}

func TestModuleLevelSuite(t *testing.T) {
	suite.Run(t, new(ModuleLevelSuite))
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  zapcore.Level
		ok    bool
	}{
		{"debug", zapcore.DebugLevel, true},
		{"INFO", zapcore.InfoLevel, true},
		{"warn", zapcore.WarnLevel, true},
		{"error", zapcore.ErrorLevel, true},
		{"fatal", zapcore.FatalLevel, true},
		{"verbose", zapcore.InfoLevel, false},
	}

	for _, tt := range tests {
		lv, ok := parseLevel(tt.input)
		if ok != tt.ok || lv != tt.want {
			t.Errorf("parseLevel(%q) = (%v, %v), want (%v, %v)", tt.input, lv, ok, tt.want, tt.ok)
		}
	}
}
