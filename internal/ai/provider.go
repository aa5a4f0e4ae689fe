package ai

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/kozaktomas/namevibe/internal/vibe"
)

//go:embed prompts/face_expression.txt
var faceExpressionPrompt string

// FaceExpression holds the emotion likelihoods reported for one detected face.
type FaceExpression struct {
	Joy        vibe.Likelihood `json:"joy"`
	Sorrow     vibe.Likelihood `json:"sorrow"`
	Anger      vibe.Likelihood `json:"anger"`
	Surprise   vibe.Likelihood `json:"surprise"`
	Confidence float64         `json:"confidence"`
}

// Signals converts the expression into classifier input.
func (f FaceExpression) Signals() vibe.Signals {
	return vibe.Signals{
		vibe.Joy:      f.Joy,
		vibe.Sorrow:   f.Sorrow,
		vibe.Anger:    f.Anger,
		vibe.Surprise: f.Surprise,
	}
}

// FaceClassifier is a vision backend that detects faces and rates their expressions.
type FaceClassifier interface {
	Name() string
	// ClassifyFaces returns one entry per detected face (possibly none).
	ClassifyFaces(ctx context.Context, imageData []byte, mimeType string) ([]FaceExpression, error)
}

type faceResponse struct {
	Faces []FaceExpression `json:"faces"`
}

// parseFaceResponse decodes the provider's JSON answer. Models occasionally wrap
// JSON in a markdown fence, which is stripped first.
func parseFaceResponse(content string) ([]FaceExpression, error) {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	var resp faceResponse
	if err := json.Unmarshal([]byte(content), &resp); err != nil {
		return nil, fmt.Errorf("failed to parse face expression JSON: %w", err)
	}
	return resp.Faces, nil
}

// DetectMIMEType sniffs the image type, defaulting to JPEG for unknown payloads.
func DetectMIMEType(data []byte) string {
	ct := http.DetectContentType(data)
	if strings.HasPrefix(ct, "image/") {
		return ct
	}
	return "image/jpeg"
}
