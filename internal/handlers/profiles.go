package handlers

import (
	"mime/multipart"
	"net/http"

	"creative-evaluator-backend/internal/models"
	"creative-evaluator-backend/internal/profile"
	"creative-evaluator-backend/internal/staging"

	"github.com/gin-gonic/gin"
)

type ProfilesHandler struct {
	maxUploadBytes int64
}

func NewProfilesHandler(maxUploadBytes int64) *ProfilesHandler {
	return &ProfilesHandler{maxUploadBytes: maxUploadBytes}
}

// CreateProfile godoc
// @Summary     Assemble a Brand Interpretation Profile
// @Description Encodes the uploaded logo, tone-of-voice and pre-approved images as data URIs and returns the BIP JSON string consumed by /score.
// @Description At least one logo and a target audience are required. tone_mode is "text" (default) or "images".
// @Tags        profiles
// @Accept      multipart/form-data
// @Produce     json
// @Security    Bearer
// @Param       logos formData file true "Logo images (multiple allowed)"
// @Param       tone_images formData file false "Tone-of-voice reference images (tone_mode=images)"
// @Param       pre_approved formData file false "Pre-approved creatives"
// @Param       tone_mode formData string false "text or images"
// @Param       tone_text formData string false "Tone of voice description (tone_mode=text)"
// @Param       target_audience formData string true "Target audience"
// @Param       offering_description formData string false "Offering description"
// @Success     200 {object} models.ProfileResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Router      /api/v1/profiles [post]
func (h *ProfilesHandler) CreateProfile(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		badRequest(c, "failed to parse multipart form", err)
		return
	}

	if err := profile.CheckRequired(len(form.File["logos"]), formValue(form, "target_audience")); err != nil {
		respondError(c, err)
		return
	}

	ctx := c.Request.Context()
	encode := func(field string) ([]models.ImageRef, error) {
		return staging.EncodeFiles(ctx, form.File[field], h.maxUploadBytes)
	}

	logos, err := encode("logos")
	if err != nil {
		respondError(c, err)
		return
	}
	toneImages, err := encode("tone_images")
	if err != nil {
		respondError(c, err)
		return
	}
	preApproved, err := encode("pre_approved")
	if err != nil {
		respondError(c, err)
		return
	}

	bip, err := profile.AssembleProfile(models.BrandProfile{
		LogoFiles:            logos,
		ToneOfVoiceMode:      models.ToneMode(formValue(form, "tone_mode")),
		ToneOfVoiceText:      formValue(form, "tone_text"),
		ToneOfVoiceImages:    toneImages,
		PreApprovedCreatives: preApproved,
		TargetAudience:       formValue(form, "target_audience"),
		OfferingDescription:  formValue(form, "offering_description"),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.ProfileResponse{BIP: bip})
}

func formValue(form *multipart.Form, key string) string {
	if v := form.Value[key]; len(v) > 0 {
		return v[0]
	}
	return ""
}
