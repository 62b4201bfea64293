package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Jedelmann90/pii-detection-tool/internal/usecase"
)

// AnalysisHandler handles PII analysis HTTP requests
type AnalysisHandler struct {
	analysisUC     usecase.AnalysisUsecase
	maxUploadBytes int64
}

// NewAnalysisHandler creates a new analysis handler
func NewAnalysisHandler(analysisUC usecase.AnalysisUsecase, maxUploadBytes int64) *AnalysisHandler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = DefaultMaxUploadBytes
	}
	return &AnalysisHandler{
		analysisUC:     analysisUC,
		maxUploadBytes: maxUploadBytes,
	}
}

// AnalyzeColumnRequest is the JSON body for single-column analysis
type AnalyzeColumnRequest struct {
	ColumnName   string `json:"column_name" binding:"required"`
	SampleValues []any  `json:"sample_values" binding:"required"`
}

// AnalyzeCSV handles POST /api/v1/analyze-csv
func (h *AnalysisHandler) AnalyzeCSV(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		HandleAnalysisError(c, ErrNoFileProvided)
		return
	}

	table, err := ReadUploadedTable(fileHeader, h.maxUploadBytes)
	if err != nil {
		HandleAnalysisError(c, err)
		return
	}

	output, err := h.analysisUC.AnalyzeTable(c.Request.Context(), fileHeader.Filename, table)
	if err != nil {
		HandleAnalysisError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, output)
}

// AnalyzeBatch handles POST /api/v1/analyze-csv/batch
func (h *AnalysisHandler) AnalyzeBatch(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		HandleAnalysisError(c, ErrNoFileProvided)
		return
	}

	fileHeaders := form.File["files"]
	if len(fileHeaders) == 0 {
		HandleAnalysisError(c, ErrNoFileProvided)
		return
	}

	files := make([]usecase.NamedTable, 0, len(fileHeaders))
	for _, fileHeader := range fileHeaders {
		table, err := ReadUploadedTable(fileHeader, h.maxUploadBytes)
		if err != nil {
			HandleAnalysisError(c, err)
			return
		}
		files = append(files, usecase.NamedTable{Name: fileHeader.Filename, Table: table})
	}

	output, err := h.analysisUC.AnalyzeBatch(c.Request.Context(), files)
	if err != nil {
		HandleAnalysisError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, output)
}

// AnalyzeColumn handles POST /api/v1/analyze-column
func (h *AnalysisHandler) AnalyzeColumn(c *gin.Context) {
	var req AnalyzeColumnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleInvalidRequest(c, err.Error())
		return
	}

	output, err := h.analysisUC.AnalyzeColumn(c.Request.Context(), req.ColumnName, req.SampleValues)
	if err != nil {
		HandleAnalysisError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, output)
}

// EstimateCost handles POST /api/v1/estimate-cost
func (h *AnalysisHandler) EstimateCost(c *gin.Context) {
	var input usecase.CostEstimateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		HandleInvalidRequest(c, err.Error())
		return
	}

	output, err := h.analysisUC.EstimateCost(&input)
	if err != nil {
		HandleAnalysisError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, output)
}
