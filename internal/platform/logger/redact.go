package logger

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"strings"
)

var (
	secretKeyParts = []string{"token", "authorization", "secret", "api_key", "apikey", "password", "cookie"}
	hashedKeyParts = []string{"client_ip", "remote_addr"}
)

// redactor masks credentials and hashes client identifiers. Answer text is
// left alone. A nil redactor passes values through.
type redactor struct {
	salt string
}

func redactorFromEnv() *redactor {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("LOG_REDACTION_ENABLED"))) {
	case "0", "false", "no", "off":
		return nil
	}
	return &redactor{salt: strings.TrimSpace(os.Getenv("LOG_HASH_SALT"))}
}

func (r *redactor) apply(kv []interface{}) []interface{} {
	if r == nil || len(kv) == 0 {
		return kv
	}
	out := make([]interface{}, len(kv))
	copy(out, kv)
	for i := 0; i+1 < len(kv); i += 2 {
		out[i+1] = r.value(normKey(kv[i]), kv[i+1])
	}
	return out
}

func (r *redactor) value(key string, val interface{}) interface{} {
	switch {
	case key == "":
		return val
	case containsAny(key, secretKeyParts):
		return "[REDACTED]"
	case containsAny(key, hashedKeyParts):
		return r.hash(val)
	}
	if m, ok := val.(map[string]interface{}); ok {
		nested := make(map[string]interface{}, len(m))
		for k, v := range m {
			nested[k] = r.value(normKey(k), v)
		}
		return nested
	}
	return val
}

func (r *redactor) hash(val interface{}) string {
	raw := stringify(val)
	if raw == "" {
		return ""
	}
	sum := sha256.Sum256([]byte(r.salt + raw))
	return "hash:" + hex.EncodeToString(sum[:])[:12]
}

func normKey(k interface{}) string {
	return strings.ToLower(stringify(k))
}

func containsAny(s string, parts []string) bool {
	for _, p := range parts {
		if strings.Contains(s, p) {
			return true
		}
	}
	return false
}

func stringify(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case []byte:
		return strings.TrimSpace(string(t))
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}
