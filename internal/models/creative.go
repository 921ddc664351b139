package models

// DefaultPlatform is assigned to every newly staged creative.
const DefaultPlatform = "Instagram Feed"

// Platforms lists the placements a creative can target.
var Platforms = []string{
	"Instagram Feed",
	"Instagram Story",
	"Instagram Reels",
	"Instagram Carousel",
	"Facebook Feed",
	"Facebook Story",
	"Facebook Reels",
	"TikTok Feed",
	"TikTok Story",
	"YouTube Shorts",
	"YouTube Pre-Roll",
	"YouTube Banner",
	"Twitter/X Feed",
	"Twitter/X Header",
	"LinkedIn Feed",
	"LinkedIn Banner",
	"Pinterest Pin",
	"Snapchat Story",
	"Web Hero Banner",
	"Web Square Banner",
	"Web Leaderboard",
	"Web Skyscraper",
	"Display Banner (300x250)",
	"Display Banner (728x90)",
	"Display Banner (160x600)",
	"Amazon PDP (Main Image)",
	"Amazon A+ Content",
	"Amazon Storefront",
	"Amazon Sponsored Brand",
	"Walmart Product Image",
	"Etsy Listing Image",
	"eBay Listing Image",
	"Shopify Product Image",
	"Email Header",
	"Email Banner",
	"SMS/MMS Creative",
}

var platformSet = func() map[string]struct{} {
	m := make(map[string]struct{}, len(Platforms))
	for _, p := range Platforms {
		m[p] = struct{}{}
	}
	return m
}()

// IsValidPlatform reports whether p is one of the known placements.
func IsValidPlatform(p string) bool {
	_, ok := platformSet[p]
	return ok
}

// CreativeInput is one creative as submitted for scoring.
type CreativeInput struct {
	Filename                string `json:"filename"`
	ImageData               string `json:"imageData"`
	IsEcommerce             bool   `json:"is_ecommerce"`
	HighlightedProduct      string `json:"highlighted_product"`
	HighlightedProductImage string `json:"highlighted_product_image,omitempty"`
	Platform                string `json:"platform"`
}
