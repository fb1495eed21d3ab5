package templates

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRegistryLoadAndRender(t *testing.T) {
	base := t.TempDir()
	agentDir := filepath.Join(base, "agents")
	if err := os.MkdirAll(agentDir, 0o755); err != nil {
		t.Fatalf("create dir: %v", err)
	}

	tplPath := filepath.Join(agentDir, "assistant.tmpl")
	initial := "Time zone: {{.Timezone}}"
	if err := os.WriteFile(tplPath, []byte(initial), 0o644); err != nil {
		t.Fatalf("write template: %v", err)
	}

	reg, err := NewRegistry(base)
	if err != nil {
		t.Fatalf("init registry: %v", err)
	}

	tmpl, err := reg.GetTemplate("agents/assistant")
	if err != nil {
		t.Fatalf("get template: %v", err)
	}

	rendered, err := tmpl.Render(map[string]string{"Timezone": "Asia/Colombo"})
	if err != nil {
		t.Fatalf("render template: %v", err)
	}
	if rendered != "Time zone: Asia/Colombo" {
		t.Fatalf("unexpected render result: %s", rendered)
	}

	updated := "Zone: {{.Timezone}}"
	if err := os.WriteFile(tplPath, []byte(updated), 0o644); err != nil {
		t.Fatalf("rewrite template: %v", err)
	}

	rendered, err = tmpl.Render(map[string]string{"Timezone": "UTC"})
	if err != nil {
		t.Fatalf("render template after update: %v", err)
	}
	if rendered != "Time zone: UTC" {
		t.Fatalf("expected registry to keep initial content, got: %s", rendered)
	}
}

func TestRegistryLazyLoad(t *testing.T) {
	base := t.TempDir()
	reg, err := NewRegistry(base)
	if err != nil {
		t.Fatalf("init registry: %v", err)
	}

	path := filepath.Join(base, "prompts", "greeting.tmpl")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("create dirs: %v", err)
	}

	content := "Hello {{.Name}}"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write template: %v", err)
	}

	rendered, err := reg.Render("prompts/greeting", map[string]string{"Name": "Ravi"})
	if err != nil {
		t.Fatalf("render lazily loaded template: %v", err)
	}

	if rendered != "Hello Ravi" {
		t.Fatalf("unexpected render output: %s", rendered)
	}
}

func TestEmbeddedTemplates(t *testing.T) {
	reg := Get()

	for _, id := range []string{"agents/gmail", "agents/calendar", "agents/root"} {
		if _, err := reg.GetTemplate(id); err != nil {
			t.Fatalf("embedded template %s missing: %v", id, err)
		}
	}
}
