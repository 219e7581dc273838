package adapter

import (
	"context"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestZapAppLogger_IncludesRequestIDAndFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := NewZapAppLoggerFrom(zap.New(core))

	ctx := WithRequestID(context.Background(), "req-1")
	logger.Info(ctx, "seat reserved", map[string]interface{}{"vehicle_id": "B1"})
	logger.Trace(ctx, "trace entry", nil)

	if logs.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", logs.Len())
	}

	entry := logs.All()[0]
	fields := entry.ContextMap()
	if fields["requestID"] != "req-1" {
		t.Fatalf("expected requestID field, got %v", fields)
	}
	if fields["vehicle_id"] != "B1" {
		t.Fatalf("expected vehicle_id field, got %v", fields)
	}
	if got := logs.All()[1].Level; got != zapcore.DebugLevel {
		t.Fatalf("expected trace to map to debug, got %v", got)
	}
}

func TestNewZapAppLogger_RejectsUnknownLevel(t *testing.T) {
	if _, err := NewZapAppLogger(Config{AppName: "test", Level: "loud"}); err == nil {
		t.Fatal("expected error for unknown level")
	}
}
