package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDebugEnabled(t *testing.T) {
	t.Setenv("TM_DEBUG", "")
	assert.False(t, DebugEnabled())

	t.Setenv("TM_DEBUG", "1")
	assert.True(t, DebugEnabled())
}

func TestInit_Level(t *testing.T) {
	t.Setenv("TM_DEBUG", "")

	tests := []struct {
		level    string
		expected logrus.Level
	}{
		{"info", logrus.InfoLevel},
		{"error", logrus.ErrorLevel},
		{"DEBUG", logrus.DebugLevel},
		{"nonsense", logrus.WarnLevel},
		{"", logrus.WarnLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			l := Init(tt.level, "text", &bytes.Buffer{})
			assert.Equal(t, tt.expected, l.GetLevel())
			assert.Same(t, l, Logger())
		})
	}
}

func TestInit_DebugOverride(t *testing.T) {
	t.Setenv("TM_DEBUG", "true")

	l := Init("error", "text", &bytes.Buffer{})
	assert.Equal(t, logrus.DebugLevel, l.GetLevel())
}

func TestInit_JSONFormat(t *testing.T) {
	t.Setenv("TM_DEBUG", "")
	var buf bytes.Buffer

	l := Init("info", "json", &buf)
	l.WithField("operation", "create task").Info("task stored")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "task stored", entry["message"])
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "create task", entry["operation"])
	assert.Contains(t, entry, "ts")
}

func TestDebugf(t *testing.T) {
	var buf bytes.Buffer

	t.Setenv("TM_DEBUG", "")
	Init("warn", "text", &buf)
	Debugf("hidden %s", "message")
	Debugln("hidden line")
	assert.Empty(t, buf.String())

	t.Setenv("TM_DEBUG", "1")
	Init("warn", "text", &buf)
	Debugf("visible %s", "message")
	assert.Contains(t, buf.String(), "visible message")
}
