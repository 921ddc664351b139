package handlers

import (
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"

	"creative-evaluator-backend/internal/models"
	"creative-evaluator-backend/internal/profile"
	"creative-evaluator-backend/internal/staging"

	"github.com/gin-gonic/gin"
)

type UploadHandler struct {
	maxUploadBytes int64
}

func NewUploadHandler(maxUploadBytes int64) *UploadHandler {
	return &UploadHandler{maxUploadBytes: maxUploadBytes}
}

// StageCreatives godoc
// @Summary     Stage a batch of creatives
// @Description Encodes each uploaded creative as a data URI and applies per-index metadata.
// @Description
// @Description **metadata** is a JSON array whose i-th entry applies to the i-th file:
// @Description `[{"platform":"TikTok Feed","is_ecommerce":true,"highlighted_product":"Sneaker X"}]`
// @Description Omitted fields keep their defaults (platform "Instagram Feed", not e-commerce).
// @Description
// @Description A highlighted product image for creative i is uploaded as `product_image_<i>`.
// @Tags        creatives
// @Accept      multipart/form-data
// @Produce     json
// @Security    Bearer
// @Param       files formData file true "Creative images (multiple allowed)"
// @Param       metadata formData string false "JSON array of per-creative metadata"
// @Success     200 {object} models.StageResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Router      /api/v1/creatives/stage [post]
func (h *UploadHandler) StageCreatives(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		badRequest(c, "failed to parse multipart form", err)
		return
	}

	files := form.File["files"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "no files uploaded"})
		return
	}

	var metadata []models.CreativeMetadata
	if raw := formValue(form, "metadata"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &metadata); err != nil {
			badRequest(c, "invalid metadata", err)
			return
		}
	}
	if len(metadata) > len(files) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid metadata",
			Message: fmt.Sprintf("%d metadata entries for %d files", len(metadata), len(files)),
		})
		return
	}

	ctx := c.Request.Context()
	refs, err := staging.EncodeFiles(ctx, files, h.maxUploadBytes)
	if err != nil {
		respondError(c, err)
		return
	}

	batch := profile.NewBatch()
	for i, ref := range refs {
		id := batch.Add(ref.Name, ref.Data)

		if i < len(metadata) {
			m := metadata[i]
			patch := profile.CreativePatch{
				Filename:           m.Filename,
				Platform:           m.Platform,
				IsEcommerce:        m.IsEcommerce,
				HighlightedProduct: m.HighlightedProduct,
			}
			if err := batch.Update(id, patch); err != nil {
				respondError(c, err)
				return
			}
		}

		productFiles := form.File[fmt.Sprintf("product_image_%d", i)]
		if len(productFiles) == 0 {
			continue
		}
		product, err := h.encodeProduct(productFiles[0])
		if err != nil {
			respondError(c, err)
			return
		}
		if err := batch.SetProductImage(id, product); err != nil {
			respondError(c, err)
			return
		}
	}

	c.JSON(http.StatusOK, models.StageResponse{Creatives: batch.Inputs()})
}

func (h *UploadHandler) encodeProduct(fh *multipart.FileHeader) (string, error) {
	ref, err := staging.EncodeFile(fh, h.maxUploadBytes)
	if err != nil {
		return "", err
	}
	return ref.Data, nil
}
