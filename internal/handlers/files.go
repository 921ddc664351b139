package handlers

import (
	"fmt"
	"net/http"
	"time"

	"creative-evaluator-backend/internal/auth"
	"creative-evaluator-backend/internal/middleware"
	"creative-evaluator-backend/internal/models"
	"creative-evaluator-backend/internal/report"

	"github.com/gin-gonic/gin"
)

// Archiver stores a CSV export for a session.
type Archiver interface {
	ArchiveCSV(sessionID, csvData string) (*models.ArchiveResponse, error)
}

type FilesHandler struct {
	archiver Archiver
	now      func() time.Time
}

func NewFilesHandler(archiver Archiver) *FilesHandler {
	return &FilesHandler{archiver: archiver, now: time.Now}
}

// DownloadCSV godoc
// @Summary     Download the scores CSV
// @Description Decodes the base64 csv_data of a scoring result and returns it as a file attachment named creative-scores-<date>.csv.
// @Tags        exports
// @Accept      json
// @Produce     text/csv
// @Security    Bearer
// @Param       request body models.CSVExportRequest true "Base64 CSV"
// @Success     200 {file} file
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /api/v1/exports/csv [post]
func (h *FilesHandler) DownloadCSV(c *gin.Context) {
	var req models.CSVExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body", err)
		return
	}

	data, err := report.DecodeCSV(req.CSVData)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, report.CSVFilename(h.now())))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
}

// ArchiveCSV godoc
// @Summary     Archive the scores CSV
// @Description Uploads the decoded CSV to object storage under the caller's session folder and returns its public URL.
// @Tags        exports
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request body models.CSVExportRequest true "Base64 CSV"
// @Success     200 {object} models.ArchiveResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Failure     502 {object} models.ErrorResponse
// @Router      /api/v1/exports/csv/archive [post]
func (h *FilesHandler) ArchiveCSV(c *gin.Context) {
	session, ok := requireSession(c)
	if !ok {
		return
	}

	var req models.CSVExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body", err)
		return
	}

	resp, err := h.archiver.ArchiveCSV(session.ID, req.CSVData)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func requireSession(c *gin.Context) (*auth.Session, bool) {
	session, ok := middleware.GetSession(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "session not found"})
		return nil, false
	}
	return session, true
}
