package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigure_JSON(t *testing.T) {
	var buf bytes.Buffer
	l := logrus.New()
	Configure(l, "debug", "JSON", &buf)

	l.WithFields(logrus.Fields{"enemy": 3}).Debug("enemy died")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "enemy died", entry["msg"])
	assert.Equal(t, "debug", entry["level"])
	assert.Equal(t, 3.0, entry["enemy"])
}

func TestConfigure_LevelFallback(t *testing.T) {
	var buf bytes.Buffer
	l := logrus.New()
	Configure(l, "loud", "", &buf)

	assert.Equal(t, logrus.InfoLevel, l.GetLevel())
	_, isText := l.Formatter.(*logrus.TextFormatter)
	assert.True(t, isText)

	l.Debug("hidden")
	assert.Empty(t, buf.String())
}

func TestLog_UsableBeforeInit(t *testing.T) {
	require.NotNil(t, Log)
}
