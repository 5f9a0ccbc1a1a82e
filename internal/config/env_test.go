package config

import (
	"os"
	"testing"
)

func TestFromEnv(t *testing.T) {
	env := map[string]string{
		EnvBaseURL:   "http://remote:11434/api",
		EnvTimeout:   "60",
		EnvTransport: "HTTP",
		EnvCORS:      " http://a , ,http://b ",
	}
	cfg := FromEnv(func(k string) string { return env[k] })
	if cfg.BaseURL != "http://remote:11434/api" || cfg.Timeout != "60" || cfg.Transport != "http" {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
	if !cfg.CORS.Enabled || len(cfg.CORS.Origins) != 2 || cfg.CORS.Origins[1] != "http://b" {
		t.Fatalf("unexpected cors: %+v", cfg.CORS)
	}
	if empty := FromEnv(func(string) string { return "" }); empty.CORS.Enabled || empty.BaseURL != "" {
		t.Fatalf("empty env should yield zero config: %+v", empty)
	}
}

func TestSplitCSV(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"a,b,c", []string{"a", "b", "c"}},
		{" a , b , c ", []string{"a", "b", "c"}},
		{"a,,c", []string{"a", "c"}},
		{"", nil},
	}
	for _, c := range cases {
		got := splitCSV(c.in)
		if len(got) != len(c.want) {
			t.Fatalf("%q -> %v, want %v", c.in, got, c.want)
		}
		for i := range got {
			if got[i] != c.want[i] {
				t.Fatalf("%q -> %v, want %v", c.in, got, c.want)
			}
		}
	}
}

func TestLoadDotEnv(t *testing.T) {
	if err := LoadDotEnv(""); err != nil {
		t.Fatalf("empty path: %v", err)
	}
	if err := LoadDotEnv(t.TempDir() + "/missing.env"); err != nil {
		t.Fatalf("missing file must be ignored: %v", err)
	}
	const key = "OLLAMA_MCP_TEST_DOTENV"
	t.Setenv(key, "")
	os.Unsetenv(key)
	p := writeTempFile(t, t.TempDir(), ".env", key+"=from-file\n")
	if err := LoadDotEnv(p); err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := os.Getenv(key); got != "from-file" {
		t.Fatalf("%s=%q", key, got)
	}
}
