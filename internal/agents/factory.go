package agents

import (
	"fmt"
	"time"

	"google.golang.org/adk/agent"
	"google.golang.org/adk/agent/llmagent"
	adkmodel "google.golang.org/adk/model"

	"hermes/internal/adapters/config"
	"hermes/internal/agents/callbacks"
	"hermes/internal/tools"
	"hermes/pkg/templates"
)

// FactoryDeps gathers external dependencies needed to instantiate agents.
type FactoryDeps struct {
	ToolRegistry *tools.Registry
	Templates    *templates.Registry
	AI           config.AIConfig
	Now          func() time.Time
}

// Factory creates the assistant's agent tree.
type Factory struct {
	toolRegistry *tools.Registry
	templates    *templates.Registry
	ai           config.AIConfig
	now          func() time.Time
}

// NewFactory builds an agent factory with required dependencies.
func NewFactory(deps FactoryDeps) (*Factory, error) {
	if deps.ToolRegistry == nil {
		return nil, fmt.Errorf("tool registry is required")
	}
	if deps.Templates == nil {
		deps.Templates = templates.Get()
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}

	return &Factory{
		toolRegistry: deps.ToolRegistry,
		templates:    deps.Templates,
		ai:           deps.AI,
		now:          deps.Now,
	}, nil
}

// CreateAgent constructs a single agent from a config. Delegate agents
// run on the tool model; the root agent runs on the root model and owns
// the sub-agent tree.
func (f *Factory) CreateAgent(cfg AgentConfig, subAgents []agent.Agent) (agent.Agent, error) {
	modelID := f.ai.ToolModel
	if cfg.Type == AgentRoot {
		modelID = f.ai.RootModel
	}

	agentTools := f.toolRegistry.Select(cfg.Tools...)
	if len(agentTools) != len(cfg.Tools) {
		return nil, fmt.Errorf("agent %s: %d of %d tools missing from registry", cfg.Name, len(cfg.Tools)-len(agentTools), len(cfg.Tools))
	}

	instruction, err := f.templates.Render(cfg.InstructionTemplate, map[string]interface{}{
		"AgentName": cfg.Name,
		"Timezone":  f.ai.Timezone,
	})
	if err != nil {
		return nil, fmt.Errorf("render instruction for %s: %w", cfg.Name, err)
	}

	return llmagent.New(llmagent.Config{
		Name:        cfg.Name,
		Description: cfg.Description,
		Model:       adkmodel.BasicModel{ID: modelID, ProviderID: "gemini"},
		Tools:       agentTools,
		Instruction: instruction,
		SubAgents:   subAgents,
		BeforeAgentCallbacks: []agent.BeforeAgentCallback{
			callbacks.TimestampBeforeCallback(f.now, f.ai.Timezone),
		},
	})
}

// CreateAssistant builds the full tree: the root agent with the Gmail
// and Calendar delegates attached as sub-agents.
func (f *Factory) CreateAssistant() (agent.Agent, error) {
	gmailAgent, err := f.CreateAgent(DefaultAgentConfigs[AgentGmail], nil)
	if err != nil {
		return nil, err
	}

	calendarAgent, err := f.CreateAgent(DefaultAgentConfigs[AgentCalendar], nil)
	if err != nil {
		return nil, err
	}

	return f.CreateAgent(DefaultAgentConfigs[AgentRoot], []agent.Agent{gmailAgent, calendarAgent})
}
