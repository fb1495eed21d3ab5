package agents

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hermes/internal/adapters/config"
	"hermes/internal/tools"
	"hermes/internal/tools/shared"
	"hermes/pkg/logger"
	"hermes/pkg/templates"
)

func testFactory(t *testing.T) *Factory {
	t.Helper()

	registry := tools.NewRegistry()
	tools.RegisterAllTools(registry, shared.Deps{Log: logger.Get()}, "Asia/Colombo")

	factory, err := NewFactory(FactoryDeps{
		ToolRegistry: registry,
		AI: config.AIConfig{
			RootModel: "gemini-2.5-pro",
			ToolModel: "gemini-2.5-flash",
			Timezone:  "Asia/Colombo",
		},
		Now: func() time.Time { return time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC) },
	})
	require.NoError(t, err)
	return factory
}

func TestNewFactoryRequiresToolRegistry(t *testing.T) {
	_, err := NewFactory(FactoryDeps{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tool registry")
}

func TestCreateAssistant(t *testing.T) {
	factory := testFactory(t)

	root, err := factory.CreateAssistant()
	require.NoError(t, err)
	assert.Equal(t, "task_root_agent", root.Name())
}

func TestCreateAgentRejectsMissingTools(t *testing.T) {
	factory := testFactory(t)

	cfg := AgentConfig{
		Type:                AgentGmail,
		Name:                "broken_agent",
		Tools:               []string{"no_such_tool"},
		InstructionTemplate: "agents/gmail",
	}
	_, err := factory.CreateAgent(cfg, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tools missing")
}

func TestInstructionTemplates(t *testing.T) {
	reg := templates.Get()

	for agentType, cfg := range DefaultAgentConfigs {
		rendered, err := reg.Render(cfg.InstructionTemplate, map[string]interface{}{
			"AgentName": cfg.Name,
			"Timezone":  "Asia/Colombo",
		})
		require.NoError(t, err, "template for %s", agentType)
		assert.Contains(t, rendered, "Asia/Colombo")
	}

	root, err := reg.Render("agents/root", map[string]interface{}{"Timezone": "UTC"})
	require.NoError(t, err)
	assert.Contains(t, root, "google_gmail_agent")
	assert.Contains(t, root, "google_calendar_agent")
}
