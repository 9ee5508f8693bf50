package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func observe(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	SetLogger(zap.New(core))
	t.Cleanup(func() {
		SetLogger(nil)
		LogMode = ""
	})
	return logs
}

func TestLog_MasksSensitiveFields(t *testing.T) {
	logs := observe(t)

	LogInfo("Favorites store initialized",
		zap.String("redis_url", "redis://:hunter2@cache:6379"),
		zap.String("backend", "redis"),
	)

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "****", fields["redis_url"])
	assert.Equal(t, "redis", fields["backend"])
}

func TestLog_ConciseModeKeepsLifecycleMessages(t *testing.T) {
	logs := observe(t)
	LogMode = "concise"

	LogInfo("Catalog loaded")
	LogInfo("Request completed")
	LogWarn("Client error")
	LogDebug("Recipe query completed")

	var messages []string
	for _, entry := range logs.All() {
		messages = append(messages, entry.Message)
	}
	assert.Equal(t, []string{"Request completed", "Client error", "Recipe query completed"}, messages)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, ParseLevel("DEBUG"))
	assert.Equal(t, zapcore.WarnLevel, ParseLevel("warning"))
	assert.Equal(t, zapcore.ErrorLevel, ParseLevel(" error "))
	assert.Equal(t, zapcore.InfoLevel, ParseLevel("verbose"))
}

func TestInitLogger_WritesFile(t *testing.T) {
	t.Cleanup(func() { SetLogger(nil) })

	path := t.TempDir() + "/logs/app.log"
	require.NoError(t, InitLogger("info", LoggerOptions{FilePath: path}))
	LogInfo("Starting service")
	Sync()

	assert.FileExists(t, path)
}
