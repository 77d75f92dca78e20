package log

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForContext(t *testing.T) {
	hook := test.NewGlobal()
	SetupTestLogger()
	defer hook.Reset()

	ctx, correlationID := WithCorrelationID(context.Background())
	ctx = WithRunID(ctx, "run123")

	ForContext(ctx).WithField("records", 10).Info("Vendas carregadas")

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.InfoLevel, entry.Level)
	assert.Equal(t, "Vendas carregadas", entry.Message)
	assert.Equal(t, correlationID, entry.Data["correlation_id"])
	assert.Equal(t, "run123", entry.Data["run_id"])
	assert.Equal(t, 10, entry.Data["records"])
}

func TestVerboseFieldsInDevelopment(t *testing.T) {
	hook := test.NewGlobal()
	SetupTestLogger()
	defer hook.Reset()

	t.Setenv("APP_ENV", "development")
	L.WithFields(Fields{"user_agent": "curl", "path": "/v1/summary"}).Info("requisição")

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.NotContains(t, entry.Data, "user_agent")
	assert.Equal(t, "/v1/summary", entry.Data["path"])

	t.Setenv("APP_ENV", "production")
	L.WithField("user_agent", "curl").Info("requisição")
	assert.Equal(t, "curl", hook.LastEntry().Data["user_agent"])
}

func TestSetup(t *testing.T) {
	defer SetupTestLogger()

	require.NoError(t, Setup("warn"))
	assert.Equal(t, logrus.WarnLevel, logrus.GetLevel())

	assert.Error(t, Setup("barulhento"))
}

func TestGetCorrelationID(t *testing.T) {
	assert.Empty(t, GetCorrelationID(context.Background()))

	ctx, id := WithCorrelationID(context.Background())
	assert.Equal(t, id, GetCorrelationID(ctx))
}
