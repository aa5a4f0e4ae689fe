// Package mock provides a scripted ai.FaceClassifier for testing.
package mock

import (
	"context"
	"sync"

	"github.com/kozaktomas/namevibe/internal/ai"
	"github.com/kozaktomas/namevibe/internal/vibe"
)

// MockClassifier returns Faces (or Err) for every call and records what it received.
type MockClassifier struct {
	mu sync.Mutex

	Faces []ai.FaceExpression
	Err   error
	// Block makes ClassifyFaces wait for context cancellation.
	Block bool

	Calls        int
	LastMIMEType string
	LastImage    []byte
}

// NewMockClassifier creates a classifier reporting the given faces.
func NewMockClassifier(faces ...ai.FaceExpression) *MockClassifier {
	return &MockClassifier{Faces: faces}
}

// Face builds a face expression with the given joy, sorrow and anger likelihoods.
func Face(joy, sorrow, anger vibe.Likelihood) ai.FaceExpression {
	return ai.FaceExpression{Joy: joy, Sorrow: sorrow, Anger: anger, Surprise: vibe.VeryUnlikely, Confidence: 0.9}
}

func (m *MockClassifier) Name() string { return "mock" }

func (m *MockClassifier) ClassifyFaces(ctx context.Context, imageData []byte, mimeType string) ([]ai.FaceExpression, error) {
	m.mu.Lock()
	m.Calls++
	m.LastMIMEType = mimeType
	m.LastImage = imageData
	block := m.Block
	m.mu.Unlock()

	if block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return m.Faces, m.Err
}

// CallCount returns the number of ClassifyFaces calls.
func (m *MockClassifier) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Calls
}
