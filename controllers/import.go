package controllers

import (
	"io"
	"net/http"

	"detaildesk-backend/services"
	"detaildesk-backend/utils"

	"github.com/gin-gonic/gin"
)

// ImportMarkdown accepts a multipart batch of markdown files and runs them
// through the import pipeline. Pass dry_run=true to see the would-be
// create/update split without writing anything.
func ImportMarkdown(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Expected multipart form with files")
		return
	}

	fileHeaders := form.File["files"]
	if len(fileHeaders) == 0 {
		utils.RespondWithError(c, http.StatusBadRequest, "No files provided")
		return
	}

	files := make([]services.ImportFile, 0, len(fileHeaders))
	for _, header := range fileHeaders {
		opened, err := header.Open()
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Could not read file "+header.Filename)
			return
		}
		content, err := io.ReadAll(opened)
		opened.Close()
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Could not read file "+header.Filename)
			return
		}
		files = append(files, services.ImportFile{Name: header.Filename, Content: content})
	}

	dryRun := c.Query("dry_run") == "true" || c.Query("dry_run") == "1"

	importService := services.NewImportService(clientStore())
	report, err := importService.ApplyBatch(c.Request.Context(), files, dryRun)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Import failed: "+err.Error())
		return
	}

	c.JSON(http.StatusOK, report)
}
