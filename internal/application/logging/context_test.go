package logging

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestLoggerFromContext(t *testing.T) {
	// Arrange
	core, logs := observer.New(zap.InfoLevel)
	ctx := WithLogger(context.Background(), zap.New(core))

	// Act
	LoggerFromContext(ctx).Info("plan built")
	LoggerFromContext(context.Background()).Info("dropped")

	// Assert
	assert.Equal(t, 1, logs.Len())
	assert.Equal(t, "plan built", logs.All()[0].Message)
}
