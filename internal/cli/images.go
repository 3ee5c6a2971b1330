package cli

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yungbote/giftwizard-backend/internal/clients/giftapi"
	"github.com/yungbote/giftwizard-backend/internal/clients/imagesearch"
	"github.com/yungbote/giftwizard-backend/internal/domain/gift"
	"github.com/yungbote/giftwizard-backend/internal/platform/envutil"
	"github.com/yungbote/giftwizard-backend/internal/platform/logger"
	"github.com/yungbote/giftwizard-backend/internal/services"
)

const defaultImageCount = 3

var newImageSearch = func() services.ImageSearchService {
	log := logger.Nop()
	var providers []imagesearch.Provider
	if key := envutil.String("PEXELS_API_KEY", "", nil); key != "" {
		if p, err := imagesearch.NewPexels(log, imagesearch.PexelsConfig{APIKey: key}); err == nil {
			providers = append(providers, p)
		}
	}
	return services.NewImageSearchService(log, placeholderBase(), providers...)
}

// placeholderBase prefers PLACEHOLDER_BASE_URL, then the API server's own
// placeholder route.
func placeholderBase() string {
	if base := envutil.String("PLACEHOLDER_BASE_URL", "", nil); base != "" {
		return base
	}
	api := envutil.String("GIFT_API_URL", giftapi.DefaultBaseURL, nil)
	return strings.TrimRight(api, "/") + gift.PlaceholderRoute
}

func ImagesCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "images <search terms> [count]",
		Short:   "Look up product images and shopping links",
		Example: `giftwizard images "chocolate gift box" 3`,
		Args:    cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			count := defaultImageCount
			if len(args) == 2 {
				n, err := strconv.Atoi(args[1])
				if err != nil || n < services.MinImageCount || n > services.MaxImageCount {
					return fmt.Errorf("Image count must be between %d and %d", services.MinImageCount, services.MaxImageCount)
				}
				count = n
			}
			imgs := newImageSearch().Search(cmd.Context(), args[0], count)
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(services.NewImageLookup(args[0], count, imgs))
		},
	}
}
