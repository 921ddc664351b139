package staging_test

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"strings"
	"testing"

	"creative-evaluator-backend/internal/models"
	"creative-evaluator-backend/internal/staging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func fileHeaders(t *testing.T, files map[string][]byte, order []string) []*multipart.FileHeader {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for _, name := range order {
		part, err := w.CreateFormFile("files", name)
		require.NoError(t, err)
		_, err = part.Write(files[name])
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req, err := http.NewRequest(http.MethodPost, "/", body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))
	return req.MultipartForm.File["files"]
}

func TestEncode_PNG(t *testing.T) {
	data := pngBytes(t)
	ref, err := staging.Encode("logo.png", data, "")
	require.NoError(t, err)

	assert.Equal(t, "logo.png", ref.Name)
	assert.True(t, strings.HasPrefix(ref.Data, "data:image/png;base64,"))

	mediaType, decoded, err := staging.DecodeDataURI(ref.Data)
	require.NoError(t, err)
	assert.Equal(t, "image/png", mediaType)
	assert.Equal(t, data, decoded)
}

func TestEncode_RejectsNonImage(t *testing.T) {
	_, err := staging.Encode("notes.png", []byte("just some text"), "image/png")
	assert.ErrorIs(t, err, models.ErrValidation)
	assert.Contains(t, err.Error(), "notes.png")
}

func TestEncodeDataURI(t *testing.T) {
	_, err := staging.EncodeDataURI(nil, "image/png")
	assert.ErrorIs(t, err, models.ErrValidation)

	_, err = staging.EncodeDataURI([]byte("%PDF-1.4 document"), "image/png")
	assert.ErrorIs(t, err, models.ErrValidation)

	uri, err := staging.EncodeDataURI(pngBytes(t), "image/jpeg")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(uri, "data:image/png;"), "sniffed type wins")
}

func TestDecodeDataURI_Errors(t *testing.T) {
	for _, uri := range []string{
		"https://example.com/a.png",
		"data:image/png;base64",
		"data:image/png,plain",
		"data:image/png;base64,***",
	} {
		_, _, err := staging.DecodeDataURI(uri)
		assert.ErrorIs(t, err, models.ErrParse, uri)
	}
}

func TestEncodeFiles_PreservesOrder(t *testing.T) {
	data := pngBytes(t)
	files := map[string][]byte{"c.png": data, "a.png": data, "b.png": data}
	headers := fileHeaders(t, files, []string{"c.png", "a.png", "b.png"})

	refs, err := staging.EncodeFiles(context.Background(), headers, 1<<20)
	require.NoError(t, err)
	require.Len(t, refs, 3)
	assert.Equal(t, "c.png", refs[0].Name)
	assert.Equal(t, "a.png", refs[1].Name)
	assert.Equal(t, "b.png", refs[2].Name)
}

func TestEncodeFiles_OneBadFileFailsBatch(t *testing.T) {
	files := map[string][]byte{"ok.png": pngBytes(t), "bad.png": []byte("nope")}
	headers := fileHeaders(t, files, []string{"ok.png", "bad.png"})

	_, err := staging.EncodeFiles(context.Background(), headers, 1<<20)
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestEncodeFile_SizeLimit(t *testing.T) {
	headers := fileHeaders(t, map[string][]byte{"big.png": pngBytes(t)}, []string{"big.png"})
	_, err := staging.EncodeFile(headers[0], 10)
	assert.ErrorIs(t, err, models.ErrValidation)
	assert.Contains(t, err.Error(), "exceeds")
}
