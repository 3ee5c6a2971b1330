package domain

import "github.com/yungbote/giftwizard-backend/internal/domain/gift"

type (
	GiftIdea      = gift.GiftIdea
	GiftImage     = gift.GiftImage
	GiftResult    = gift.GiftResult
	GiftRequest   = gift.GiftRequest
	Generation    = gift.Generation
	ShoppingLinks = gift.ShoppingLinks
)
