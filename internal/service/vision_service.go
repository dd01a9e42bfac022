package service

import (
	"context"
	"fmt"
	"log/slog"

	"fridgely-be/internal/ai"
	"fridgely-be/internal/entities"
	"fridgely-be/internal/errs"
	"fridgely-be/internal/models"
)

// analysisInstruction tells the vision model how to report fridge
// contents. The JSON keys here are the contract ExtractInventory relies on.
const analysisInstruction = "Analyze the image and identify the items in it along with their quantities. " +
	"Only include items that are edible or can be stored in the fridge. " +
	"Provide the results in a JSON format with Item_name and quantity."

// ImageAnalyzer is the multimodal side of the AI client
type ImageAnalyzer interface {
	AnalyzeImage(ctx context.Context, mimeType, imageBase64, instruction string) (string, error)
}

// ImageFetcher downloads an image URL and returns base64 data plus mime type
type ImageFetcher interface {
	Fetch(rawURL string) (data string, mimeType string, err error)
}

// VisionService extracts inventory items from fridge photos. Unlike
// recipe generation, failures here surface to the caller as errors: the
// user took a photo and expects to be told when analysis failed.
type VisionService interface {
	AnalyzeImage(req *models.AnalyzeImageRequest) (*models.AnalyzeImageResult, error)
}

type visionService struct {
	analyzer ImageAnalyzer
	fetcher  ImageFetcher
	users    UserService
	logger   *slog.Logger
	ctx      context.Context
}

// NewVisionService creates a new vision service
func NewVisionService(analyzer ImageAnalyzer, fetcher ImageFetcher, users UserService, logger *slog.Logger) VisionService {
	return &visionService{
		analyzer: analyzer,
		fetcher:  fetcher,
		users:    users,
		logger:   logger,
		ctx:      context.Background(),
	}
}

// AnalyzeImage runs the vision call on inline base64 data or a fetched
// URL, parses the item list, and optionally appends it to the user record.
func (s *visionService) AnalyzeImage(req *models.AnalyzeImageRequest) (*models.AnalyzeImageResult, error) {
	if req.ImageBase64 == "" && req.ImageURL == "" {
		return nil, errs.NewValidationError("image_base64 or image_url is required")
	}
	if req.ImageBase64 != "" && req.ImageURL != "" {
		return nil, errs.NewValidationError("provide either image_base64 or image_url, not both")
	}
	if req.Append && req.Email == "" {
		return nil, errs.NewValidationError("email is required to append items")
	}

	data := req.ImageBase64
	mimeType := req.MimeType
	if req.ImageURL != "" {
		fetched, fetchedMime, err := s.fetcher.Fetch(req.ImageURL)
		if err != nil {
			return nil, err
		}
		data = fetched
		if mimeType == "" {
			mimeType = fetchedMime
		}
	}

	raw, err := s.analyzer.AnalyzeImage(s.ctx, mimeType, data, analysisInstruction)
	if err != nil {
		return nil, err
	}

	analysis, err := ai.ExtractInventory(raw)
	if err != nil {
		s.logger.Warn("image analysis produced unparsable output", slog.String("error", err.Error()))
		return nil, errs.NewUpstreamError("gemini", err)
	}
	if len(analysis.Items) == 0 {
		return nil, errs.NewUpstreamError("gemini", fmt.Errorf("no items identified in the image"))
	}

	result := &models.AnalyzeImageResult{Items: analysis.Items}

	if req.Append {
		newItems := make([]entities.NewItem, 0, len(analysis.Items))
		for _, item := range analysis.Items {
			name := item.ItemName
			quantity := item.Quantity
			newItems = append(newItems, entities.NewItem{ItemName: &name, Quantity: &quantity})
		}
		user, err := s.users.AppendItems(req.Email, newItems)
		if err != nil {
			return nil, err
		}
		result.User = user
	}

	return result, nil
}
