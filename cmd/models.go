package cmd

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mark3labs/tfgen/internal/config"
	"github.com/mark3labs/tfgen/internal/generate"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List Gemini models that can generate content",
	Long: `List the models offered by the Gemini API that support generateContent.

Requires the same API key as generation.

Examples:
  tfgen models
  tfgen models --api-key-env GEMINI_API_KEY`,
	Args: cobra.NoArgs,
	RunE: runModels,
}

func init() {
	rootCmd.AddCommand(modelsCmd)
}

func runModels(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	apiKey, err := config.LoadAPIKey(os.Getenv, cfg.APIKeyEnv)
	if err != nil {
		return err
	}

	model, err := generate.NewGeminiModel(cmd.Context(), BuildGeminiConfig(cfg, apiKey))
	if err != nil {
		return err
	}

	infos, err := model.ListModels(cmd.Context())
	if err != nil {
		return err
	}
	if len(infos) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No models available for this API key.")
		return nil
	}

	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	out := cmd.OutOrStdout()
	for i, m := range infos {
		branch := "├── "
		if i == len(infos)-1 {
			branch = "└── "
		}
		marker := ""
		if m.Name == cfg.Model {
			marker = " (selected)"
		}
		fmt.Fprintf(out, "%s%s%s  %s  in:%d out:%d\n", branch, m.Name, marker, m.DisplayName, m.InputLimit, m.OutputLimit)
	}
	return nil
}
