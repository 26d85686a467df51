package privacylog_test

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"veil/internal/util/privacylog"
)

func TestHandle_RedactsSensitiveKeys(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(privacylog.Wrap(slog.NewJSONHandler(&buf, nil)))

	logger.Info("unsealing",
		slog.String("passphrase", "hunter2hunter2"),
		slog.String("session_key_material", "deadbeef"),
		slog.String("alias", "ABCD-EFGH-JKLM"),
	)

	out := buf.String()
	if strings.Contains(out, "hunter2hunter2") || strings.Contains(out, "deadbeef") {
		t.Fatalf("sensitive value leaked into log output: %s", out)
	}
	if !strings.Contains(out, "ABCD-EFGH-JKLM") {
		t.Fatalf("non-sensitive attribute was dropped: %s", out)
	}
	if !strings.Contains(out, "[REDACTED]") {
		t.Fatalf("expected redaction marker in output: %s", out)
	}
}

func TestWithAttrs_RedactsSensitiveKeys(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(privacylog.Wrap(slog.NewJSONHandler(&buf, nil)))

	logger.With(slog.String("private_key", "supersecret")).Info("bound")

	if strings.Contains(buf.String(), "supersecret") {
		t.Fatalf("sensitive value leaked via WithAttrs: %s", buf.String())
	}
}
