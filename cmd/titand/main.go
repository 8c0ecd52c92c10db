package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/yiqiao-yin/aws-deploy-bedrock-on-lambda/internal/config"
	"github.com/yiqiao-yin/aws-deploy-bedrock-on-lambda/internal/handler"
	"github.com/yiqiao-yin/aws-deploy-bedrock-on-lambda/internal/httpapi"
	"github.com/yiqiao-yin/aws-deploy-bedrock-on-lambda/internal/titan"
)

func main() {
	// Flags with environment variable defaults
	defaultAddr := ":8080"
	if v := os.Getenv("TITAND_ADDR"); v != "" {
		defaultAddr = v
	}
	addr := flag.String("addr", defaultAddr, "HTTP listen address, e.g. :8080")
	region := flag.String("region", os.Getenv("AWS_REGION"), "AWS region for the Bedrock client (default: SDK chain, then us-east-1)")
	modelID := flag.String("model-id", os.Getenv("TITAND_MODEL_ID"), "Bedrock model id (default: amazon.titan-tg1-large)")
	configPath := flag.String("config", "", "Optional config file (.yaml/.json/.toml); flags win over file values")
	logLevel := flag.String("log-level", "", "Log level: debug|info|warn|error")
	maxBody := flag.Int64("max-body-bytes", 0, "Maximum /invoke request body size in bytes (0=default 1MiB)")
	corsEnabled := flag.Bool("cors-enabled", false, "Enable CORS middleware")
	corsOrigins := flag.String("cors-origins", "", "Comma-separated allowed CORS origins")
	corsMethods := flag.String("cors-methods", "POST,GET", "Comma-separated allowed CORS methods")
	corsHeaders := flag.String("cors-headers", "Content-Type", "Comma-separated allowed CORS headers")
	flag.Parse()

	cfg := config.Config{}
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}
		cfg = loaded
	}
	cfg.ApplyEnv()
	if *addr != defaultAddr || cfg.Addr == "" {
		cfg.Addr = *addr
	}
	if *region != "" {
		cfg.Region = *region
	}
	if *modelID != "" {
		cfg.ModelID = *modelID
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}

	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil && lvl != zerolog.NoLevel {
		logger = logger.Level(lvl)
	}

	baseCtx, cancelBase := context.WithCancel(context.Background())
	defer cancelBase()

	client, err := titan.NewFromConfig(baseCtx, cfg.Region, cfg.ModelID)
	if err != nil {
		log.Fatalf("failed to build bedrock client: %v", err)
	}
	h := handler.New(client, logger)

	httpapi.SetLogger(logger)
	httpapi.SetBaseContext(baseCtx)
	httpapi.SetMaxBodyBytes(*maxBody)
	httpapi.SetCORSOptions(*corsEnabled, splitCSV(*corsOrigins), splitCSV(*corsMethods), splitCSV(*corsHeaders))

	mux := httpapi.NewMux(h) // registers /invoke, /healthz, /readyz, /metrics
	srv := &http.Server{Addr: cfg.Addr, Handler: mux}

	go func() {
		log.Printf("titand listening on %s (model: %s)", cfg.Addr, client.ModelID())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown (Ctrl+C / SIGTERM)
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	cancelBase()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("graceful shutdown error: %v", err)
	}
}

// splitCSV splits a comma-separated flag value, trimming whitespace and
// dropping empty entries.
func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	return out
}
