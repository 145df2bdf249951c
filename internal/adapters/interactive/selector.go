package interactive

import (
	"context"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/manifoldco/promptui"
	"github.com/metalinks/metalinks-deployer/internal/domain/config"
	"github.com/metalinks/metalinks-deployer/internal/domain/models"
	"github.com/metalinks/metalinks-deployer/internal/usecase"
	"github.com/sahilm/fuzzy"
)

// SelectorAdapter handles interactive selection
type SelectorAdapter struct {
	config *config.RuntimeConfig
	run    func(prompt *promptui.Select) (int, error)
}

// NewSelectorAdapter creates a new selector adapter
func NewSelectorAdapter(cfg *config.RuntimeConfig) *SelectorAdapter {
	return &SelectorAdapter{
		config: cfg,
		run: func(prompt *promptui.Select) (int, error) {
			index, _, err := prompt.Run()
			return index, err
		},
	}
}

// SelectDeployment selects a deployment from a list
func (s *SelectorAdapter) SelectDeployment(ctx context.Context, deployments []*models.Deployment, prompt string) (*models.Deployment, error) {
	if len(deployments) == 0 {
		return nil, fmt.Errorf("no deployments provided for selection")
	}

	// If only one match, return it directly
	if len(deployments) == 1 {
		return deployments[0], nil
	}

	// In non-interactive mode, we can't select
	if s.config.NonInteractive {
		ids := make([]string, len(deployments))
		for i, d := range deployments {
			ids[i] = d.ID
		}
		return nil, fmt.Errorf("multiple deployments match, specify one of: %s", strings.Join(ids, ", "))
	}

	options := formatDeploymentOptions(deployments)

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}",
		Active:   "▸ {{ . | cyan }}",
		Inactive: "  {{ . | faint }}",
		Selected: "✓ {{ . | green }}",
		Help:     color.New(color.FgYellow).Sprint("Use arrow keys to navigate, Enter to select"),
	}

	promptSelect := &promptui.Select{
		Label:             prompt,
		Items:             options,
		Templates:         templates,
		Size:              10,
		StartInSearchMode: true,
		Searcher:          createFuzzySearchFunc(options),
	}

	index, err := s.run(promptSelect)
	if err != nil {
		return nil, fmt.Errorf("selection cancelled: %w", err)
	}

	return deployments[index], nil
}

// formatDeploymentOptions creates display strings for deployment selection
func formatDeploymentOptions(deployments []*models.Deployment) []string {
	options := make([]string, len(deployments))
	for i, d := range deployments {
		id := color.New(color.FgWhite, color.Bold).Sprint(d.ID)
		addr := color.New(color.FgBlue).Sprint(d.Address)
		created := ""
		if !d.CreatedAt.IsZero() {
			created = " " + color.New(color.Faint).Sprint(d.CreatedAt.Format("2006-01-02 15:04"))
		}
		options[i] = fmt.Sprintf("%s (%s)%s", id, addr, created)
	}
	return options
}

// createFuzzySearchFunc creates a fuzzy search function for promptui
func createFuzzySearchFunc(items []string) func(input string, index int) bool {
	return func(input string, index int) bool {
		// Empty search shows all items
		if input == "" {
			return true
		}

		// Convert to lowercase for case-insensitive search
		input = strings.ToLower(input)
		item := strings.ToLower(items[index])

		// First try simple substring match
		if strings.Contains(item, input) {
			return true
		}

		// Then try fuzzy match
		pattern := fuzzy.Find(input, []string{item})
		return len(pattern) > 0
	}
}

// Ensure the adapter implements the interface
var _ usecase.DeploymentSelector = (*SelectorAdapter)(nil)
