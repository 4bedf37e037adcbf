package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("release", func(t *testing.T) {
		t.Setenv("GIN_MODE", "release")
		t.Setenv("LOG_LEVEL", "")

		var buf bytes.Buffer
		l := New(&buf)
		assert.Equal(t, logrus.InfoLevel, l.GetLevel())

		l.WithField("machine", "m1").Info("sold")
		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "sold", entry["msg"])
		assert.Equal(t, "m1", entry["machine"])
	})

	t.Run("debug", func(t *testing.T) {
		t.Setenv("GIN_MODE", "debug")
		t.Setenv("LOG_LEVEL", "")
		assert.Equal(t, logrus.DebugLevel, New(new(bytes.Buffer)).GetLevel())
	})

	t.Run("level override", func(t *testing.T) {
		t.Setenv("GIN_MODE", "release")
		t.Setenv("LOG_LEVEL", "warn")
		assert.Equal(t, logrus.WarnLevel, New(new(bytes.Buffer)).GetLevel())
	})
}
