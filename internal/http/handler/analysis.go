package handler

import (
	"context"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"pawtrack.app/triage/internal/http/dto"
	"pawtrack.app/triage/internal/model"
	"pawtrack.app/triage/internal/triage"
)

// Analyzer is the slice of the orchestrator the analysis endpoints use.
type Analyzer interface {
	AnalyzeSymptom(ctx context.Context, input triage.SymptomInput) (*model.SymptomAnalysis, error)
	AnalyzePhoto(ctx context.Context, input triage.PhotoInput) (*model.PhotoAnalysis, error)
	AnalyzePhotoBatch(ctx context.Context, inputs []triage.PhotoInput) []triage.PhotoResult
}

// AnalysisHandler exposes the one-shot analysis flows: a single logged
// symptom, or one or more photos.
type AnalysisHandler struct {
	analyzer Analyzer
}

func NewAnalysisHandler(analyzer Analyzer) *AnalysisHandler {
	return &AnalysisHandler{analyzer: analyzer}
}

func (h *AnalysisHandler) AnalyzeSymptom(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.AnalyzeSymptomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.WarnContext(ctx, "invalid request body", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input := triage.SymptomInput{
		DogID: req.DogID,
		Type:  req.Type,
		Title: req.Title,
	}
	if req.Description != nil {
		input.Description = *req.Description
	}

	analysis, err := h.analyzer.AnalyzeSymptom(ctx, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, analysis)
}

// AnalyzePhoto accepts a single multipart image under the "photo" field
// with an optional "context" text field.
func (h *AnalysisHandler) AnalyzePhoto(c *gin.Context) {
	ctx := c.Request.Context()

	file, err := c.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "photo file is required"})
		return
	}

	input, err := photoInputFromFile(file, c.PostForm("context"))
	if err != nil {
		slog.WarnContext(ctx, "failed to read uploaded photo", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read uploaded photo"})
		return
	}

	analysis, err := h.analyzer.AnalyzePhoto(ctx, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, analysis)
}

// AnalyzePhotoBatch accepts multiple multipart images under the
// "photos" field. Images are analyzed independently; a failure on one
// never discards the others.
func (h *AnalysisHandler) AnalyzePhotoBatch(c *gin.Context) {
	ctx := c.Request.Context()

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "multipart form is required"})
		return
	}

	files := form.File["photos"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "at least one photo is required"})
		return
	}

	photoContext := c.PostForm("context")
	inputs := make([]triage.PhotoInput, 0, len(files))
	for _, file := range files {
		input, err := photoInputFromFile(file, photoContext)
		if err != nil {
			slog.WarnContext(ctx, "failed to read uploaded photo",
				"error", err,
				"name", file.Filename,
			)
			c.JSON(http.StatusBadRequest, gin.H{"error": "could not read uploaded photo " + file.Filename})
			return
		}
		inputs = append(inputs, input)
	}

	results := h.analyzer.AnalyzePhotoBatch(ctx, inputs)

	resp := dto.PhotoBatchResponse{Results: make([]dto.PhotoAnalysisResponse, 0, len(results))}
	for _, r := range results {
		item := dto.PhotoAnalysisResponse{Name: r.Name, Analysis: r.Analysis}
		if r.Err != nil {
			item.Error = r.Err.Error()
			resp.Failed++
		} else {
			resp.Succeeded++
		}
		resp.Results = append(resp.Results, item)
	}
	c.JSON(http.StatusOK, resp)
}

func photoInputFromFile(file *multipart.FileHeader, photoContext string) (triage.PhotoInput, error) {
	f, err := file.Open()
	if err != nil {
		return triage.PhotoInput{}, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return triage.PhotoInput{}, err
	}

	return triage.PhotoInput{
		Name:     file.Filename,
		Data:     data,
		MimeType: file.Header.Get("Content-Type"),
		Context:  photoContext,
	}, nil
}
