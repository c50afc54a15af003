package services

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// VehicleAnalysis is the structured result of analyzing a vehicle photo.
type VehicleAnalysis struct {
	Description         string
	Condition           string
	RecommendedServices []string
}

// VisionService is the boundary to the external multimodal model. This
// service only transports and parses results; it implements no image
// recognition itself.
type VisionService interface {
	AnalyzeVehicleImage(ctx context.Context, image []byte, contentType string) (*VehicleAnalysis, error)
	EmbedText(ctx context.Context, text string) ([]float64, error)
}

const visionPrompt = "Analyze this vehicle image and provide a detailed assessment. " +
	"Reply with exactly three sections, one per line: first a one-line description of the vehicle, " +
	"then a one-line summary of its condition, then the recommended detailing services, one per line."

// OpenAIVisionService implements VisionService against the OpenAI API.
type OpenAIVisionService struct {
	client *openai.Client
}

// NewOpenAIVisionService creates a vision service using the given API key.
func NewOpenAIVisionService(apiKey string) *OpenAIVisionService {
	return &OpenAIVisionService{
		client: openai.NewClient(apiKey),
	}
}

// AnalyzeVehicleImage sends the photo to the vision model and parses its
// free-text reply into a VehicleAnalysis.
func (s *OpenAIVisionService) AnalyzeVehicleImage(ctx context.Context, image []byte, contentType string) (*VehicleAnalysis, error) {
	dataURL := fmt.Sprintf("data:%s;base64,%s", contentType, base64.StdEncoding.EncodeToString(image))

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: openai.GPT4VisionPreview,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{Type: openai.ChatMessagePartTypeText, Text: visionPrompt},
					{
						Type:     openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{URL: dataURL},
					},
				},
			},
		},
		MaxTokens: 500,
	})
	if err != nil {
		return nil, fmt.Errorf("vision API call failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("vision API returned no choices")
	}

	analysis := parseAnalysis(resp.Choices[0].Message.Content)
	if analysis == nil {
		return nil, fmt.Errorf("vision API reply could not be parsed")
	}

	return analysis, nil
}

// EmbedText produces the embedding vector stored alongside an assessment for
// similarity search.
func (s *OpenAIVisionService) EmbedText(ctx context.Context, text string) ([]float64, error) {
	resp, err := s.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Model: openai.AdaEmbeddingV2,
		Input: []string{text},
	})
	if err != nil {
		return nil, fmt.Errorf("embedding API call failed: %w", err)
	}
	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("embedding API returned no data")
	}

	embedding := make([]float64, len(resp.Data[0].Embedding))
	for i, v := range resp.Data[0].Embedding {
		embedding[i] = float64(v)
	}
	return embedding, nil
}

// parseAnalysis splits the model's reply: first non-empty line is the
// description, second the condition, the rest are recommended services.
// Returns nil when there are not even two lines to work with.
func parseAnalysis(reply string) *VehicleAnalysis {
	var lines []string
	for _, line := range strings.Split(reply, "\n") {
		line = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), "- "))
		if line != "" {
			lines = append(lines, line)
		}
	}

	if len(lines) < 2 {
		return nil
	}

	return &VehicleAnalysis{
		Description:         lines[0],
		Condition:           lines[1],
		RecommendedServices: lines[2:],
	}
}
