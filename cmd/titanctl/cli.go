package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/yiqiao-yin/aws-deploy-bedrock-on-lambda/pkg/types"
)

// buildRootCmd constructs the titanctl command tree.
func buildRootCmd() *cobra.Command {
	defaultServer := "http://localhost:8080"
	if v := os.Getenv("TITANCTL_SERVER"); v != "" {
		defaultServer = v
	}

	root := &cobra.Command{
		Use:           "titanctl",
		Short:         "Client utilities for a running titand",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String("server", defaultServer, "Base URL of the titand server (defaults TITANCTL_SERVER or http://localhost:8080)")

	var (
		prompt      string
		maxTokens   int
		temperature float64
		topP        float64
		dryRun      bool
	)
	invoke := &cobra.Command{
		Use:     "invoke",
		Short:   "Send a generation request and print the response envelope",
		Example: "  titanctl invoke --prompt 'Write a haiku about the ocean.' --max-tokens 50",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := buildRequest(prompt, maxTokens, temperature, topP, cmd.Flags().Changed)
			body, err := json.Marshal(req)
			if err != nil {
				return err
			}
			if dryRun {
				fmt.Fprintln(cmd.OutOrStdout(), string(body))
				return nil
			}
			server, err := cmd.Flags().GetString("server")
			if err != nil {
				return err
			}
			return postInvoke(cmd.OutOrStdout(), server, body)
		},
	}
	invoke.Flags().StringVar(&prompt, "prompt", "", "Prompt text (omitted: server default)")
	invoke.Flags().IntVar(&maxTokens, "max-tokens", 0, "maxTokenCount (omitted: server default 200)")
	invoke.Flags().Float64Var(&temperature, "temperature", 0, "Sampling temperature (omitted: server default 0.7)")
	invoke.Flags().Float64Var(&topP, "top-p", 0, "Nucleus sampling cutoff (omitted: server default 0.9)")
	invoke.Flags().BoolVar(&dryRun, "dry-run", false, "Print the request JSON instead of sending it")
	root.AddCommand(invoke)

	return root
}

// buildRequest maps set flags onto an InvocationRequest. Only flags the user
// actually changed are included, so server-side defaulting stays observable.
func buildRequest(prompt string, maxTokens int, temperature, topP float64, changed func(string) bool) types.InvocationRequest {
	var req types.InvocationRequest
	if changed("prompt") {
		req.Prompt = &prompt
	}
	if changed("max-tokens") {
		req.MaxTokenCount = &maxTokens
	}
	if changed("temperature") {
		req.Temperature = &temperature
	}
	if changed("top-p") {
		req.TopP = &topP
	}
	return req
}

func postInvoke(out io.Writer, server string, body []byte) error {
	client := &http.Client{Timeout: 60 * time.Second}
	resp, err := client.Post(server+"/invoke", "application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, string(respBody))
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("invoke failed: status %d", resp.StatusCode)
	}
	return nil
}
