package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/yungbote/giftwizard-backend/internal/clients/giftapi"
	"github.com/yungbote/giftwizard-backend/internal/domain"
	"github.com/yungbote/giftwizard-backend/internal/platform/logger"
	"github.com/yungbote/giftwizard-backend/internal/questionnaire"
	"github.com/yungbote/giftwizard-backend/internal/services"
)

// SubmitCmd posts one request to /generate_gifts. Without --sample the body is
// read from stdin as a JSON object of request fields.
func SubmitCmd(apiURL *string) *cobra.Command {
	var sample bool
	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Request gift ideas from the server",
		RunE: func(cmd *cobra.Command, args []string) error {
			var req domain.GiftRequest
			if sample {
				req = services.BuildGiftRequest(questionnaire.SampleAnswers())
			} else {
				raw, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return err
				}
				if err := json.Unmarshal(raw, &req); err != nil {
					return fmt.Errorf("request must be a JSON object of strings: %w", err)
				}
			}

			client := giftapi.New(logger.Nop(), giftapi.Config{BaseURL: *apiURL})
			gen, err := client.Generate(cmd.Context(), req)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(map[string]any{
				"success":    true,
				"gift_ideas": gen.GiftIdeas,
				"result_id":  gen.ResultID,
				"timestamp":  gen.Timestamp,
			})
		},
	}
	cmd.Flags().BoolVar(&sample, "sample", false, "send the built-in sample answers")
	return cmd
}
