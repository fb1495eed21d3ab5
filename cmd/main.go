package main

import (
	"bufio"
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"golang.org/x/time/rate"

	"hermes/internal/adapters/config"
	"hermes/internal/adapters/errors/noop"
	"hermes/internal/adapters/errors/sentry"
	"hermes/internal/adapters/google"
	"hermes/internal/agents"
	"hermes/internal/api"
	"hermes/internal/api/callback"
	"hermes/internal/api/health"
	"hermes/internal/auth"
	"hermes/internal/tools"
	"hermes/internal/tools/shared"
	"hermes/pkg/errors"
	"hermes/pkg/logger"
)

const version = "0.1.0"

func main() {
	// Load configuration
	cfg, err := loadConfig()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize logger
	if err := initLogger(cfg); err != nil {
		panic("failed to init logger: " + err.Error())
	}
	defer logger.Sync()

	log := logger.Get()
	log.Infof("Starting %s in %s mode", cfg.App.Name, cfg.App.Env)

	// Initialize error tracker
	errorTracker := initErrorTracker(cfg, log)
	logger.SetErrorTracker(errorTracker)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go cancelOnSignal(cancel, log)

	// Local HTTP server: OAuth callback, health, metrics
	callbackHandler := callback.New(log)
	var server *api.Server
	if cfg.Server.Enabled {
		server = api.NewServer(api.ServerConfig{
			Addr:        cfg.Server.Addr,
			ServiceName: cfg.App.Name,
			Version:     version,
		}, callbackHandler, health.New(log, cfg.App.Name, version), log)

		go func() {
			if err := server.Start(); err != nil {
				log.Errorf("HTTP server error: %v", err)
			}
		}()
	}

	// Obtain credentials: pre-minted token or interactive consent
	tokens, err := buildTokenProvider(ctx, cfg, callbackHandler, log)
	if err != nil {
		log.Fatalf("Authentication failed: %v", err)
	}

	// Google API clients on the shared transport
	transport := google.NewClient(google.Config{
		BaseURL:    cfg.Google.APIBaseURL,
		HTTPClient: &http.Client{Timeout: cfg.Google.HTTPTimeout},
		Limiter:    newLimiter(cfg.Google.RequestsPerMinute),
	})

	deps := shared.Deps{
		Identity: google.NewIdentityClient(transport),
		Gmail:    google.NewGmailClient(transport),
		Calendar: google.NewCalendarClient(transport),
		Tokens:   tokens,
		Log:      log,
	}

	toolRegistry := tools.NewRegistry()
	tools.RegisterAllTools(toolRegistry, deps, cfg.AI.Timezone)

	factory, err := agents.NewFactory(agents.FactoryDeps{
		ToolRegistry: toolRegistry,
		AI:           cfg.AI,
	})
	if err != nil {
		log.Fatalf("Failed to build agent factory: %v", err)
	}

	assistant, err := factory.CreateAssistant()
	if err != nil {
		log.Fatalf("Failed to build agents: %v", err)
	}

	session, err := agents.NewChatSession(assistant, "local")
	if err != nil {
		log.Fatalf("Failed to start chat session: %v", err)
	}

	log.Info("System initialized successfully")

	runChatLoop(ctx, session)

	// Graceful shutdown
	if server != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Warnf("Server shutdown: %v", err)
		}
	}

	if errorTracker != nil {
		if err := errorTracker.Flush(context.Background()); err != nil {
			log.Warnf("Failed to flush error tracker: %v", err)
		}
	}

	log.Info("Shutdown complete")
}

// loadConfig loads application configuration from environment
func loadConfig() (*config.Config, error) {
	return config.Load()
}

// initLogger initializes structured logging
func initLogger(cfg *config.Config) error {
	return logger.Init(cfg.App.LogLevel, cfg.App.Env)
}

// initErrorTracker initializes error tracking (Sentry or no-op)
func initErrorTracker(cfg *config.Config, log *logger.Logger) errors.Tracker {
	if !cfg.ErrorTracking.Enabled || cfg.ErrorTracking.SentryDSN == "" {
		log.Info("Error tracking disabled")
		return noop.New()
	}

	tracker, err := sentry.New(cfg.ErrorTracking.SentryDSN, cfg.ErrorTracking.Environment)
	if err != nil {
		log.Warnf("Failed to initialize Sentry: %v", err)
		return noop.New()
	}

	log.Info("Error tracking initialized (Sentry)")
	return tracker
}

func newLimiter(requestsPerMinute int) *rate.Limiter {
	if requestsPerMinute <= 0 {
		return nil
	}
	return rate.NewLimiter(rate.Limit(requestsPerMinute)/60, requestsPerMinute)
}

// buildTokenProvider returns a static provider when GOOGLE_ACCESS_TOKEN
// is set, otherwise runs the interactive browser consent flow.
func buildTokenProvider(ctx context.Context, cfg *config.Config, callbackHandler *callback.Handler, log *logger.Logger) (auth.TokenProvider, error) {
	if cfg.Google.AccessToken != "" {
		log.Info("Using pre-minted access token from environment")
		return auth.StaticTokenProvider{AccessToken: cfg.Google.AccessToken}, nil
	}

	if !cfg.Google.HasOAuthClient() {
		return nil, errors.Wrap(errors.ErrAuth, "set GOOGLE_ACCESS_TOKEN, or CLIENT_ID and CLIENT_SECRET for the consent flow")
	}

	flow, err := auth.NewFlow(auth.FlowConfig{
		ClientID:     cfg.Google.ClientID,
		ClientSecret: cfg.Google.ClientSecret,
		RedirectURI:  cfg.Google.RedirectURI,
		Scopes:       cfg.Google.ResolvedScopes(),
	})
	if err != nil {
		return nil, err
	}

	fmt.Println("Open this URL in your browser to sign in:")
	fmt.Println()
	fmt.Println("  " + flow.AuthURL())
	fmt.Println()

	code, err := waitForConsent(ctx, cfg, flow, callbackHandler)
	if err != nil {
		return nil, err
	}

	token, err := flow.Exchange(ctx, code)
	if err != nil {
		return nil, err
	}

	log.Info("OAuth consent complete")
	return auth.OAuthTokenProvider{Source: flow.TokenSource(ctx, token)}, nil
}

// waitForConsent captures the redirect via the local callback server, or
// falls back to a pasted redirect URL when the server is disabled.
func waitForConsent(ctx context.Context, cfg *config.Config, flow *auth.Flow, callbackHandler *callback.Handler) (string, error) {
	if !cfg.Server.Enabled {
		fmt.Println("After approving, paste the full redirect URL here:")
		scanner := bufio.NewScanner(os.Stdin)
		if !scanner.Scan() {
			return "", errors.Wrap(errors.ErrConsent, "no redirect url provided")
		}
		return flow.ParseRedirect(strings.TrimSpace(scanner.Text()))
	}

	fmt.Println("Waiting for the browser redirect...")
	select {
	case result := <-callbackHandler.Results():
		if result.Err != "" {
			return "", errors.Wrapf(errors.ErrConsent, "authorization denied: %s", result.Err)
		}
		if result.State != flow.State() {
			return "", errors.Wrap(errors.ErrConsent, "state mismatch")
		}
		if result.Code == "" {
			return "", errors.Wrap(errors.ErrConsent, "redirect carries no code")
		}
		return result.Code, nil
	case <-ctx.Done():
		return "", errors.Wrapf(errors.ErrTimeout, "%v", ctx.Err())
	}
}

// runChatLoop reads user messages from stdin until EOF or "quit".
func runChatLoop(ctx context.Context, session *agents.ChatSession) {
	log := logger.Get()

	fmt.Println()
	fmt.Println("Assistant ready. Ask about your Gmail or Calendar ('quit' to exit).")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		if ctx.Err() != nil {
			return
		}

		message := strings.TrimSpace(scanner.Text())
		if message == "" {
			continue
		}
		if strings.EqualFold(message, "quit") {
			return
		}

		output, err := session.Send(ctx, message)
		if err != nil {
			log.Errorf("Turn failed: %v", err)
			fmt.Println("Error: " + err.Error())
			continue
		}

		fmt.Println(output.Response)
	}
}

func cancelOnSignal(cancel context.CancelFunc, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down...")
	cancel()
}
