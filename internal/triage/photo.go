package triage

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"pawtrack.app/triage/common/llm"
	"pawtrack.app/triage/common/logger"
	"pawtrack.app/triage/internal/model"
)

// maxPhotoBytes caps the accepted image size per request.
const maxPhotoBytes = 10 << 20 // 10MB

var allowedPhotoMimeTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
}

// PhotoInput is one image plus optional free-text context. One request
// corresponds to exactly one image.
type PhotoInput struct {
	Name     string // client-provided label, echoed back in batch results
	Data     []byte
	MimeType string
	Context  string
}

// PhotoResult is the per-image outcome of a batch. Exactly one of
// Analysis and Err is set.
type PhotoResult struct {
	Name     string
	Analysis *model.PhotoAnalysis
	Err      error
}

// AnalyzePhoto submits one image to the vision model and validates the
// response against the PhotoAnalysis shape.
func (o *Orchestrator) AnalyzePhoto(ctx context.Context, input PhotoInput) (*model.PhotoAnalysis, error) {
	if len(input.Data) == 0 {
		return nil, NewValidationError("image", "image content is required")
	}
	if !allowedPhotoMimeTypes[input.MimeType] {
		return nil, NewValidationError("mime_type", fmt.Sprintf("unsupported image type %q", input.MimeType))
	}
	if len(input.Data) > maxPhotoBytes {
		return nil, NewValidationError("image", fmt.Sprintf("image exceeds %d bytes", maxPhotoBytes))
	}

	ctx = logger.WithLogFields(ctx, logger.LogFields{
		Flow:      logger.Ptr("photo"),
		Component: "triage.orchestrator",
	})

	sc := logger.StartSpan(ctx, "triage.analyze_photo")
	defer sc.End()
	ctx = sc.Context()

	var result model.PhotoAnalysis
	_, err := o.llm.AnalyzeImage(ctx, llm.ImageRequest{
		SystemPrompt: photoSystemPrompt,
		UserPrompt:   buildPhotoPrompt(input.Context),
		Image:        input.Data,
		MimeType:     input.MimeType,
		SchemaName:   "photo_analysis",
		Schema:       photoSchema,
		MaxTokens:    o.visionMaxTokens,
	}, &result)
	if err != nil {
		sc.RecordError(err)
		slog.WarnContext(ctx, "photo analysis call failed", "error", err)
		return nil, NewExternalServiceError(err)
	}
	if err := result.Validate(); err != nil {
		slog.WarnContext(ctx, "photo analysis failed shape validation", "error", err)
		return nil, NewExternalServiceError(fmt.Errorf("shape validation: %w", err))
	}

	slog.InfoContext(ctx, "photo analysis completed", "urgency", result.UrgencyLevel)
	return &result, nil
}

// AnalyzePhotoBatch analyzes each image independently and concurrently.
// The aggregate tolerates partial success: a failure on one image never
// aborts or discards the others. Results keep the input order.
func (o *Orchestrator) AnalyzePhotoBatch(ctx context.Context, inputs []PhotoInput) []PhotoResult {
	results := make([]PhotoResult, len(inputs))

	var wg sync.WaitGroup
	for i, input := range inputs {
		wg.Add(1)
		go func(i int, input PhotoInput) {
			defer wg.Done()
			analysis, err := o.AnalyzePhoto(ctx, input)
			results[i] = PhotoResult{Name: input.Name, Analysis: analysis, Err: err}
		}(i, input)
	}
	wg.Wait()

	return results
}
