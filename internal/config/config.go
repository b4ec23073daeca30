package config

import (
	"os"
	"strings"
)

type Config struct {
	HTTPAddr string

	DBDriver string
	DBDSN    string

	CORSOrigins []string

	// Local teacher account for the studio.
	TeacherUser     string
	TeacherPassHash string // bcrypt
	AuthSecret      string // HMAC secret for session JWTs

	// Prompt shown in the substitute-text input, passed through to sessions
	// that do not supply their own.
	DefaultPlaceholder string
}

func FromEnv() Config {
	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	return Config{
		HTTPAddr:        addr,
		DBDriver:        envOr("DB_DRIVER", "sqlite"),
		DBDSN:           envOr("DB_DSN", ""),
		CORSOrigins:     csvOr("CORS_ORIGINS", "http://localhost:3000"),
		TeacherUser:     envOr("TEACHER_USER", "teacher"),
		TeacherPassHash: envOr("TEACHER_PASS_HASH", "$2y$12$pyZAiWaTfVtM7UElIRStvOC3gNbnp70nmQU4eYopLGBfCJr1DOvji"),
		AuthSecret:      envOr("AUTH_HMAC_SECRET", "supersecret-dev-key"),

		DefaultPlaceholder: envOr("CHANGE_TEXT_PLACEHOLDER", "Enter the replacement text."),
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func csvOr(key, def string) []string {
	v := os.Getenv(key)
	if v == "" {
		v = def
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
