package log

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestZapLoggerTraceID(t *testing.T) {
	var buf bytes.Buffer
	l := &zapLogger{sugar: newZap(ZapConfig{Level: "debug", Mode: ModeProduction, Encoding: EncodingJSON}, zapcore.AddSync(&buf)).Sugar()}

	ctx := WithTraceID(context.Background(), "trace-123")
	l.Infof(ctx, "dispatched %s", "q_food-qna")

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("unmarshal log entry: %v (raw=%q)", err, buf.String())
	}
	if entry["msg"] != "dispatched q_food-qna" {
		t.Errorf("unexpected msg: %v", entry["msg"])
	}
	if entry[fieldTraceID] != "trace-123" {
		t.Errorf("expected trace_id trace-123, got %v", entry[fieldTraceID])
	}
}

func TestZapLoggerLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	l := &zapLogger{sugar: newZap(ZapConfig{Level: "warn", Mode: ModeProduction, Encoding: EncodingJSON}, zapcore.AddSync(&buf)).Sugar()}

	l.Info(context.Background(), "hidden")
	l.Warn(context.Background(), "shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info entry should be filtered at warn level: %s", out)
	}
	if !strings.Contains(out, "shown") {
		t.Errorf("warn entry missing: %s", out)
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]zapcore.Level{
		"debug": zapcore.DebugLevel,
		"INFO":  zapcore.InfoLevel,
		"error": zapcore.ErrorLevel,
		"bogus": zapcore.InfoLevel,
		"":      zapcore.InfoLevel,
	}
	for in, want := range tests {
		if got := parseLevel(in); got != want {
			t.Errorf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestTraceIDMissing(t *testing.T) {
	if got := TraceID(context.Background()); got != "" {
		t.Errorf("expected empty trace id, got %q", got)
	}
}
