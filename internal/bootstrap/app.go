package bootstrap

import (
	"strings"

	"github.com/gin-gonic/gin"

	"resume-agent/internal/agent"
	"resume-agent/internal/analyses"
	"resume-agent/internal/integrations"
	"resume-agent/internal/llm"
	"resume-agent/internal/llm/openrouter"
	"resume-agent/internal/resume"
	"resume-agent/internal/shared/config"
	"resume-agent/internal/shared/server"
	"resume-agent/internal/summary"
)

// App holds shared dependencies.
type App struct {
	Config config.Config
	Router *gin.Engine

	Resumes         *resume.Store
	SummaryService  *summary.Service
	AgentService    *agent.Service
	AnalysesService *analyses.Service
	Together        *integrations.TogetherClient
}

// Build wires dependencies and the router. Configuration is injected here
// once; nothing below this layer reads the environment.
func Build(cfg config.Config) (*App, error) {
	resumes := resume.NewStore(cfg.DataDir)

	// The completer stays nil without a credential: the summary policy then
	// runs local-only and the agent answers with its sentinel.
	var completer llm.Completer
	model := cfg.OpenRouterModel
	if strings.TrimSpace(cfg.OpenRouterAPIKey) != "" {
		client := openrouter.NewClient(cfg.OpenRouterAPIKey, cfg.OpenRouterAPIURL, cfg.OpenRouterModel, llm.RetryPolicy{
			Retries:   cfg.LLMRetries,
			BaseDelay: cfg.LLMBaseDelay,
			Timeout:   cfg.LLMTimeout,
		})
		completer = client
		model = client.Model()
	}

	summarySvc := &summary.Service{LLM: completer, Model: model}
	agentSvc := &agent.Service{LLM: completer, Resumes: resumes}
	analysesSvc := &analyses.Service{Summaries: summarySvc, Resumes: resumes}
	together := integrations.NewTogetherClient(cfg.TogetherAPIURL, cfg.TogetherAPIKey)

	app := &App{
		Config:          cfg,
		Resumes:         resumes,
		SummaryService:  summarySvc,
		AgentService:    agentSvc,
		AnalysesService: analysesSvc,
		Together:        together,
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:       cfg,
		Analyses:     analyses.NewHandler(analysesSvc),
		Agent:        agent.NewHandler(agentSvc),
		Integrations: integrations.NewHandler(together),
	})

	return app, nil
}
