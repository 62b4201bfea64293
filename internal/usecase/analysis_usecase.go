package usecase

import (
	"context"
	"errors"
	"math"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/Jedelmann90/pii-detection-tool/internal/domain/entity"
	"github.com/Jedelmann90/pii-detection-tool/internal/domain/service"
)

// Error definitions for the analysis usecase
var (
	ErrInvalidRequest     = errors.New("invalid request")
	ErrEmptyTable         = errors.New("table contains no columns")
	ErrInvalidColumnCount = errors.New("column count must be positive")
)

// Overall status values for file and batch summaries
const (
	StatusPIIDetected = "PII_DETECTED"
	StatusSafe        = "SAFE"
)

// Defaults applied to omitted cost-estimate parameters
const (
	DefaultAvgSamplesPerColumn = 5
	DefaultAvgSampleLength     = 20
)

// ColumnAnalysisOutput represents the analysis result for one column
type ColumnAnalysisOutput struct {
	ColumnName   string          `json:"column_name"`
	SampleValues []string        `json:"sample_values"`
	IsPII        bool            `json:"is_pii"`
	Confidence   float64         `json:"confidence"`
	Reasoning    string          `json:"reasoning"`
	CostInfo     entity.CostInfo `json:"cost_info"`
}

// FileSummaryOutput summarizes the columns of one analyzed file
type FileSummaryOutput struct {
	TotalColumns  int     `json:"total_columns"`
	PIIColumns    int     `json:"pii_columns"`
	SafeColumns   int     `json:"safe_columns"`
	OverallStatus string  `json:"overall_status"`
	Confidence    float64 `json:"confidence"`
}

// FileAnalysisOutput represents the full analysis of one file
type FileAnalysisOutput struct {
	FileName string                  `json:"file_name"`
	Columns  []*ColumnAnalysisOutput `json:"columns"`
	Summary  FileSummaryOutput       `json:"summary"`
	CostInfo entity.CostInfo         `json:"cost_info"`
}

// BatchAnalysisOutput represents the analysis of multiple files
type BatchAnalysisOutput struct {
	Files         []*FileAnalysisOutput `json:"files"`
	Summary       FileSummaryOutput     `json:"summary"`
	TotalCostInfo entity.CostInfo       `json:"total_cost_info"`
}

// CostEstimateInput represents a pre-flight cost estimate request
type CostEstimateInput struct {
	ColumnCount         int `json:"column_count" binding:"required"`
	AvgSamplesPerColumn int `json:"avg_samples_per_column"`
	AvgSampleLength     int `json:"avg_sample_length"`
}

// CostEstimateOutput represents a pre-flight cost estimate
type CostEstimateOutput struct {
	EstimatedCost entity.CostInfo `json:"estimated_cost"`
}

// NamedTable pairs a decoded table with the name of its source file
type NamedTable struct {
	Name  string
	Table *entity.Table
}

// AnalysisUsecase defines the interface for PII analysis business logic
type AnalysisUsecase interface {
	AnalyzeTable(ctx context.Context, fileName string, table *entity.Table) (*FileAnalysisOutput, error)
	AnalyzeBatch(ctx context.Context, files []NamedTable) (*BatchAnalysisOutput, error)
	AnalyzeColumn(ctx context.Context, columnName string, values []any) (*ColumnAnalysisOutput, error)
	EstimateCost(input *CostEstimateInput) (*CostEstimateOutput, error)
}

type analysisUsecase struct {
	generator  service.TextGenerator
	pricing    entity.Pricing
	maxSamples int
	workers    int
}

// NewAnalysisUsecase creates a new analysis usecase
func NewAnalysisUsecase(generator service.TextGenerator, pricing entity.Pricing, maxSamples, workers int) AnalysisUsecase {
	if maxSamples <= 0 {
		maxSamples = entity.DefaultMaxSamples
	}
	if workers <= 0 {
		workers = 1
	}
	return &analysisUsecase{
		generator:  generator,
		pricing:    pricing,
		maxSamples: maxSamples,
		workers:    workers,
	}
}

func (u *analysisUsecase) AnalyzeTable(ctx context.Context, fileName string, table *entity.Table) (*FileAnalysisOutput, error) {
	if table == nil || len(table.Columns) == 0 {
		return nil, ErrEmptyTable
	}

	results := u.analyzeColumns(ctx, table.Columns)
	return u.buildFileOutput(fileName, results), nil
}

func (u *analysisUsecase) AnalyzeBatch(ctx context.Context, files []NamedTable) (*BatchAnalysisOutput, error) {
	if len(files) == 0 {
		return nil, ErrInvalidRequest
	}

	outputs := make([]*FileAnalysisOutput, 0, len(files))
	var (
		totalColumns  int
		piiColumns    int
		confidenceSum float64
		inputTokens   int
		outputTokens  int
		totalCostUSD  float64
	)

	for _, file := range files {
		out, err := u.AnalyzeTable(ctx, file.Name, file.Table)
		if err != nil {
			return nil, err
		}
		outputs = append(outputs, out)

		totalColumns += out.Summary.TotalColumns
		piiColumns += out.Summary.PIIColumns
		confidenceSum += out.Summary.Confidence
		inputTokens += out.CostInfo.InputTokens
		outputTokens += out.CostInfo.OutputTokens
		totalCostUSD += out.CostInfo.TotalCostUSD
	}

	// The per-rate costs are recomputed from the summed token counts, but
	// the batch total sums the per-file rounded totals. The asymmetry is
	// part of the output contract.
	cost := u.pricing.CalculateCost(inputTokens, outputTokens)
	cost.TotalCostUSD = entity.RoundUSD(totalCostUSD)

	return &BatchAnalysisOutput{
		Files: outputs,
		Summary: FileSummaryOutput{
			TotalColumns:  totalColumns,
			PIIColumns:    piiColumns,
			SafeColumns:   totalColumns - piiColumns,
			OverallStatus: overallStatus(piiColumns),
			// Batch confidence averages the file-level confidences, not
			// the raw column confidences.
			Confidence: round2(confidenceSum / float64(len(outputs))),
		},
		TotalCostInfo: cost,
	}, nil
}

func (u *analysisUsecase) AnalyzeColumn(ctx context.Context, columnName string, values []any) (*ColumnAnalysisOutput, error) {
	if columnName == "" || values == nil {
		return nil, ErrInvalidRequest
	}

	result := u.analyzeColumn(ctx, entity.Column{Name: columnName, Values: values})
	return toColumnOutput(result), nil
}

func (u *analysisUsecase) EstimateCost(input *CostEstimateInput) (*CostEstimateOutput, error) {
	if input == nil || input.ColumnCount <= 0 {
		return nil, ErrInvalidColumnCount
	}

	samples := input.AvgSamplesPerColumn
	if samples <= 0 {
		samples = DefaultAvgSamplesPerColumn
	}
	length := input.AvgSampleLength
	if length <= 0 {
		length = DefaultAvgSampleLength
	}

	return &CostEstimateOutput{
		EstimatedCost: u.pricing.EstimateBatchCost(input.ColumnCount, samples, length),
	}, nil
}

// analyzeColumns runs the per-column analyzer with a bounded worker pool.
// Each result lands at its column's index, so original column order
// survives whatever order the workers finish in.
func (u *analysisUsecase) analyzeColumns(ctx context.Context, columns []entity.Column) []entity.ColumnResult {
	results := make([]entity.ColumnResult, len(columns))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(u.workers)
	for i, column := range columns {
		g.Go(func() error {
			// A failed column becomes an ERROR result; it never fails
			// the group or its sibling columns.
			results[i] = u.analyzeColumn(ctx, column)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// analyzeColumn is the per-column state machine: NO_DATA when the sample
// is empty (no model call), ERROR when the call fails, otherwise the
// parsed category with its cost.
func (u *analysisUsecase) analyzeColumn(ctx context.Context, column entity.Column) entity.ColumnResult {
	sample := entity.BuildSample(column.Values, u.maxSamples)
	if len(sample) == 0 {
		return entity.NewNoDataResult(column.Name)
	}

	prompt := entity.BuildPrompt(column.Name, sample)
	inputTokens := entity.EstimateTokens(prompt)

	completion, err := u.generator.Generate(ctx, prompt)
	if err != nil {
		return entity.NewErrorResult(column.Name, sample, err)
	}
	outputTokens := entity.EstimateTokens(completion)

	classification, confidence := entity.ParseClassification(completion)

	return entity.ColumnResult{
		Column:         column.Name,
		Classification: classification,
		Confidence:     confidence,
		Reasoning:      strings.TrimSpace(completion),
		Samples:        sample,
		Cost:           u.pricing.CalculateCost(inputTokens, outputTokens),
	}
}

func (u *analysisUsecase) buildFileOutput(fileName string, results []entity.ColumnResult) *FileAnalysisOutput {
	columns := make([]*ColumnAnalysisOutput, len(results))
	var (
		piiColumns    int
		confidenceSum float64
		inputTokens   int
		outputTokens  int
	)

	for i, result := range results {
		if result.Classification.IsPII() {
			piiColumns++
		}
		confidenceSum += result.Confidence
		inputTokens += result.Cost.InputTokens
		outputTokens += result.Cost.OutputTokens
		columns[i] = toColumnOutput(result)
	}

	return &FileAnalysisOutput{
		FileName: fileName,
		Columns:  columns,
		Summary: FileSummaryOutput{
			TotalColumns:  len(results),
			PIIColumns:    piiColumns,
			SafeColumns:   len(results) - piiColumns,
			OverallStatus: overallStatus(piiColumns),
			Confidence:    round2(confidenceSum / float64(len(results))),
		},
		// File cost is recomputed from the summed token counts, not by
		// adding the per-column rounded figures.
		CostInfo: u.pricing.CalculateCost(inputTokens, outputTokens),
	}
}

func toColumnOutput(result entity.ColumnResult) *ColumnAnalysisOutput {
	return &ColumnAnalysisOutput{
		ColumnName:   result.Column,
		SampleValues: result.Samples,
		IsPII:        result.Classification.IsPII(),
		Confidence:   result.Confidence,
		Reasoning:    result.Reasoning,
		CostInfo:     result.Cost,
	}
}

func overallStatus(piiColumns int) string {
	if piiColumns > 0 {
		return StatusPIIDetected
	}
	return StatusSafe
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
