package services

import "context"

// MockVisionService is a canned VisionService implementation for testing.
type MockVisionService struct {
	Analysis     *VehicleAnalysis
	Embedding    []float64
	AnalyzeErr   error
	EmbedErr     error
	AnalyzeCalls int
	EmbedCalls   int
}

// NewMockVisionService creates a mock with a plausible default analysis.
func NewMockVisionService() *MockVisionService {
	return &MockVisionService{
		Analysis: &VehicleAnalysis{
			Description:         "Silver mid-size sedan with light road grime",
			Condition:           "Good overall, minor swirl marks on the hood",
			RecommendedServices: []string{"wash", "wax"},
		},
		Embedding: []float64{0.1, 0.2, 0.3},
	}
}

// AnalyzeVehicleImage returns the canned analysis or the injected error.
func (m *MockVisionService) AnalyzeVehicleImage(ctx context.Context, image []byte, contentType string) (*VehicleAnalysis, error) {
	m.AnalyzeCalls++
	if m.AnalyzeErr != nil {
		return nil, m.AnalyzeErr
	}
	return m.Analysis, nil
}

// EmbedText returns the canned embedding or the injected error.
func (m *MockVisionService) EmbedText(ctx context.Context, text string) ([]float64, error) {
	m.EmbedCalls++
	if m.EmbedErr != nil {
		return nil, m.EmbedErr
	}
	return m.Embedding, nil
}
