package cli

import (
	"context"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/yungbote/giftwizard-backend/internal/clients/giftapi"
	"github.com/yungbote/giftwizard-backend/internal/platform/logger"
	"github.com/yungbote/giftwizard-backend/internal/questionnaire"
	"github.com/yungbote/giftwizard-backend/internal/services"
	"github.com/yungbote/giftwizard-backend/internal/tui"
)

func Execute() error {
	return NewRoot().Execute()
}

func defaultAPIURL() string {
	if v := strings.TrimSpace(os.Getenv("GIFT_API_URL")); v != "" {
		return v
	}
	return giftapi.DefaultBaseURL
}

var runTUI = func(apiURL string) error {
	log := logger.Nop()
	client := giftapi.New(log, giftapi.Config{BaseURL: apiURL, MaxRetries: 1})

	// The server's catalog wins so answers map to the ids it expects.
	cat, err := client.Questions(context.Background())
	if err != nil {
		cat = questionnaire.Default()
	}
	m := tui.NewModel(tui.Options{
		Catalog:   cat,
		Submitter: services.NewSubmissionAdapter(log, client, true),
		Log:       log,
		Sample:    questionnaire.SampleAnswers(),
	})
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

func NewRoot() *cobra.Command {
	var apiURL string
	root := &cobra.Command{
		Use:           "giftwizard",
		Short:         "Gift suggestion wizard",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(apiURL)
		},
	}
	root.PersistentFlags().StringVar(&apiURL, "api-url", defaultAPIURL(), "gift wizard server base URL (GIFT_API_URL)")
	root.AddCommand(
		ImagesCmd(),
		SubmitCmd(&apiURL),
		ServeCmd(),
	)
	return root
}
