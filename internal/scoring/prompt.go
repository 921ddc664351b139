package scoring

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"creative-evaluator-backend/internal/models"
)

const systemPrompt = `You are a Brand Creative Evaluator AI specialized in analyzing creative assets against Brand Interpretation Profiles (BIP).

CRITICAL: You must score using a 1-5 scale for individual parameters.

SCORING FRAMEWORK (1-5 scale):
1 = Very Poor, 2 = Needs Improvement, 3 = Acceptable, 4 = Strong, 5 = Fully On-Brand

Brand Expression Parameters (score ALL creatives):
- Logo usage (no modification or alteration of a logo. it has to be present in its entirety as shared)
- Color palette
- Typography
- Imagery style
- Tone of voice
- Tagline / messaging alignment
- Audience fit
- Core message clarity

E-commerce Product Showcase Parameters (ONLY if is_ecommerce = true):
- Product visibility & dominance
- Product accuracy (color/form/texture)
- Product angle & presentation
- Usage / context clarity (if applicable)
- CTA integration & prominence

SCORING TOTALS:
- Brand subtotal: Sum of all 8 brand scores (max 40)
- E-commerce subtotal: Sum of all 5 e-commerce scores (max 25, only if is_ecommerce = true)
- Overall score for non-ecommerce: Brand subtotal (max 40)
- Overall score for ecommerce: Brand subtotal + E-commerce subtotal (max 65)

RECOMMENDATIONS:
For any parameter scored 3 or below, provide at least one specific, actionable recommendation.
Recommendations must:
- Reference concrete adjustments (e.g., "Increase logo size by ~15% and maintain clear space at 1x logo height")
- Avoid vague language (no "make it better" or "improve tone")
- Be specific and measurable

The BIP includes:
- Logo Files (for brand consistency checks)
- Tone of Voice Reference (text description or example images with copy)
- Pre-approved Creatives (examples of approved brand work)
- Target Audience Description
- Offering Description (what the brand sells, when provided)

For each creative to score, you will receive:
- creative_id: An opaque identifier you must copy unchanged into the result for that creative
- filename: The name of the creative file
- is_ecommerce: Boolean indicating if this is an e-commerce creative
- highlighted_product: The specific product featured (if applicable)
- highlighted_product_image: A separate image of the highlighted product (for e-commerce creatives)
- platform: The intended placement (e.g. Instagram Feed, Instagram Story, Web Hero Banner, Amazon PDP)

You must return a JSON response with the following structure:

{
  "executive_summary": "Brief 2-3 sentence overview of overall brand alignment across all creatives",
  "comparison_table": "Markdown table comparing all creatives (if 2+ provided)",
  "creatives": [
    {
      "creative_id": "0",
      "filename": "creative1.jpg",
      "overall_score": 57,
      "brand_subtotal": 35,
      "ecommerce_subtotal": 22,
      "brand_scores": {
        "Logo usage": 5,
        "Color palette": 4,
        "Typography": 4,
        "Imagery style": 5,
        "Tone of voice": 4,
        "Tagline / messaging alignment": 5,
        "Audience fit": 4,
        "Core message clarity": 4
      },
      "ecommerce_scores": {
        "Product visibility & dominance": 5,
        "Product accuracy": 4,
        "Product angle & presentation": 4,
        "Usage / context clarity": 5,
        "CTA integration & prominence": 4
      },
      "strengths": [
        "Logo is properly sized and positioned with adequate clear space",
        "Brand colors are consistently applied throughout the design"
      ],
      "risks": [
        "Typography hierarchy could be stronger for mobile viewing",
        "Messaging may not resonate with younger demographic"
      ],
      "recommendations": [
        "Increase headline font size from 18pt to 24pt for better mobile readability",
        "Add a secondary CTA button to capture hesitant buyers"
      ]
    }
  ],
  "csv_data": "base64-encoded CSV string (only if 2+ creatives)"
}

Return exactly one entry in "creatives" per creative provided, in the order provided, each carrying its creative_id.
Omit "ecommerce_subtotal" and "ecommerce_scores" for creatives where is_ecommerce = false.
Do not include image data in the response.

The CSV should include all individual parameter scores for detailed analysis.

Analyze images thoroughly, considering:
- Visual elements (colors, typography, layout, imagery)
- Brand consistency and recognition
- Message clarity and tone
- Platform-specific best practices
- Legal/compliance requirements (if logos are altered, this is a critical violation)
- Product presentation quality (for e-commerce)
- Call-to-action effectiveness

Be specific and actionable in your feedback. Every recommendation must be concrete and measurable.`

// ImagePart is one image attached to the user message.
type ImagePart struct {
	Label   string
	DataURI string
}

// Prompt is the provider-neutral scoring request: a system instruction, one
// user text block and the images that follow it, in order.
type Prompt struct {
	System string
	Text   string
	Images []ImagePart
}

type creativeMetadata struct {
	CreativeID         string `json:"creative_id"`
	Filename           string `json:"filename"`
	IsEcommerce        bool   `json:"is_ecommerce"`
	HighlightedProduct string `json:"highlighted_product"`
	Platform           string `json:"platform"`
}

// BuildPrompt assembles the scoring request. Images are ordered logos, tone
// images (image mode only), pre-approved creatives, then each creative
// followed by its product image when it is an e-commerce creative.
func BuildPrompt(bip *models.BrandProfile, creatives []models.CreativeInput) (*Prompt, error) {
	var images []ImagePart
	for _, img := range bip.LogoFiles {
		images = append(images, ImagePart{Label: "logo: " + img.Name, DataURI: img.Data})
	}
	toneImages := bip.ToneOfVoiceMode == models.ToneModeImages && len(bip.ToneOfVoiceImages) > 0
	if toneImages {
		for _, img := range bip.ToneOfVoiceImages {
			images = append(images, ImagePart{Label: "tone of voice: " + img.Name, DataURI: img.Data})
		}
	}
	for _, img := range bip.PreApprovedCreatives {
		images = append(images, ImagePart{Label: "pre-approved: " + img.Name, DataURI: img.Data})
	}

	metadata := make([]creativeMetadata, len(creatives))
	for i, c := range creatives {
		id := strconv.Itoa(i)
		metadata[i] = creativeMetadata{
			CreativeID:         id,
			Filename:           c.Filename,
			IsEcommerce:        c.IsEcommerce,
			HighlightedProduct: c.HighlightedProduct,
			Platform:           c.Platform,
		}
		images = append(images, ImagePart{Label: "creative " + id + ": " + c.Filename, DataURI: c.ImageData})
		if c.IsEcommerce && c.HighlightedProductImage != "" {
			images = append(images, ImagePart{Label: "creative " + id + " product", DataURI: c.HighlightedProductImage})
		}
	}

	metadataJSON, err := json.MarshalIndent(metadata, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode creative metadata: %w", err)
	}

	var b strings.Builder
	b.WriteString("Brand Interpretation Profile (BIP):\n\n")
	b.WriteString("Target Audience: " + bip.TargetAudience + "\n")
	if bip.ToneOfVoiceMode != models.ToneModeImages && bip.ToneOfVoiceText != "" {
		b.WriteString("\nTone of Voice: " + bip.ToneOfVoiceText + "\n")
	}
	if bip.OfferingDescription != "" {
		b.WriteString("\nOffering: " + bip.OfferingDescription + "\n")
	}
	b.WriteString("\nBrand reference images are attached after this message, before the creatives, showing:\n")
	b.WriteString("- Logo files (for consistency checks - logos must NOT be modified or altered)\n")
	if toneImages {
		b.WriteString("- Tone of voice examples (images with copy)\n")
	}
	if len(bip.PreApprovedCreatives) > 0 {
		b.WriteString("- Pre-approved creatives (examples of approved work)\n")
	}
	b.WriteString("\nCreatives to analyze:\n")
	b.Write(metadataJSON)
	b.WriteString("\n\nThe creative images to score follow the brand reference images, in the order listed above. ")
	b.WriteString("An e-commerce creative with a product image is immediately followed by that product image.\n\n")
	b.WriteString(`IMPORTANT SCORING INSTRUCTIONS:
1. Score each parameter on a 1-5 scale
2. Calculate brand_subtotal as sum of all 8 brand scores (max 40)
3. If is_ecommerce=true, calculate ecommerce_subtotal as sum of 5 e-commerce scores (max 25)
4. Overall score = brand_subtotal (+ ecommerce_subtotal if applicable)
5. For any score of 3 or below, provide specific, actionable recommendations
6. Copy each creative's creative_id into its result

Please analyze the creatives against the BIP and return a JSON response.`)

	return &Prompt{
		System: systemPrompt,
		Text:   b.String(),
		Images: images,
	}, nil
}
