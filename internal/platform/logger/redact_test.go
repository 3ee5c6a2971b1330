package logger

import (
	"strings"
	"testing"
)

func TestRedactorMasksSecretsAndHashesIPs(t *testing.T) {
	r := &redactor{salt: "s"}
	out := r.apply([]interface{}{
		"OPENAI_API_KEY", "sk-123",
		"client_ip", "10.0.0.1",
		"answer", "Dad",
		"meta", map[string]interface{}{"Authorization": "Bearer x"},
		"dangling",
	})
	if out[1] != "[REDACTED]" {
		t.Fatalf("api key: want=%q got=%v", "[REDACTED]", out[1])
	}
	ip, _ := out[3].(string)
	if !strings.HasPrefix(ip, "hash:") || len(ip) != len("hash:")+12 {
		t.Fatalf("client_ip: got=%q", ip)
	}
	if out[5] != "Dad" {
		t.Fatalf("answer: want=%q got=%v", "Dad", out[5])
	}
	if m := out[7].(map[string]interface{}); m["Authorization"] != "[REDACTED]" {
		t.Fatalf("nested: got=%v", m)
	}
	if out[8] != "dangling" {
		t.Fatalf("odd trailing key: got=%v", out[8])
	}
}

func TestRedactorHashIsStable(t *testing.T) {
	r := &redactor{}
	if a, b := r.hash("1.2.3.4"), r.hash("1.2.3.4"); a != b {
		t.Fatalf("hash: want stable got %q and %q", a, b)
	}
	if r.hash("") != "" {
		t.Fatalf("hash(empty): want empty")
	}
}

func TestNilRedactorPassesThrough(t *testing.T) {
	var r *redactor
	kv := []interface{}{"token", "abc"}
	if out := r.apply(kv); out[1] != "abc" {
		t.Fatalf("nil redactor: got=%v", out[1])
	}
}

func TestRedactorFromEnv(t *testing.T) {
	t.Setenv("LOG_REDACTION_ENABLED", "off")
	if redactorFromEnv() != nil {
		t.Fatalf("redaction off: want nil redactor")
	}
	t.Setenv("LOG_REDACTION_ENABLED", "")
	t.Setenv("LOG_HASH_SALT", "pepper")
	if r := redactorFromEnv(); r == nil || r.salt != "pepper" {
		t.Fatalf("redaction on: got=%+v", r)
	}
}
