package handlers

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/kozaktomas/namevibe/internal/ai"
	"github.com/kozaktomas/namevibe/internal/config"
	"github.com/kozaktomas/namevibe/internal/constants"
	"github.com/kozaktomas/namevibe/internal/database"
	"github.com/kozaktomas/namevibe/internal/recommend"
	"github.com/kozaktomas/namevibe/internal/web/middleware"
	"github.com/rs/zerolog/hlog"
)

// Recommender runs the recommendation pipeline and resolves shared results.
type Recommender interface {
	Recommend(ctx context.Context, req recommend.Request) (*recommend.Result, error)
	ResolveShared(ctx context.Context, nameID int64) (*recommend.Result, error)
}

// RecommendHandler handles recommendation and shared-result endpoints.
type RecommendHandler struct {
	matcher     Recommender
	debugMarker string
	validate    *validator.Validate
}

// NewRecommendHandler creates a new recommendation handler.
func NewRecommendHandler(matcher Recommender, debug config.DebugConfig) *RecommendHandler {
	return &RecommendHandler{
		matcher:     matcher,
		debugMarker: debug.Marker,
		validate:    validator.New(validator.WithRequiredStructEnabled()),
	}
}

// RecommendRequest is the JSON form of a recommendation request. Multipart
// requests carry the same fields with the image as a file part.
type RecommendRequest struct {
	Image            string `json:"image"` // base64, optionally as a data URL
	GenderPreference string `json:"genderPreference" validate:"required,oneof=M F U"`
	AgeMarker        string `json:"ageMarker" validate:"max=32"`
}

// parsedRequest is a decoded request body.
type parsedRequest struct {
	RecommendRequest
	image    []byte
	mimeType string
}

// NameResponse is the public view of a name record.
type NameResponse struct {
	ID         int64    `json:"id"`
	Identifier string   `json:"identifier"`
	Gender     string   `json:"gender"`
	Unisex     bool     `json:"unisex"`
	Vibes      []string `json:"vibes"`
	Hangul     string   `json:"hangul"`
	Romanized  string   `json:"romanized"`
	Meaning    string   `json:"meaning"`
}

// CompanionResponse is the public view of a companion record.
type CompanionResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	ImageURL string `json:"imageUrl,omitempty"`
}

// ResultResponse is the success body shared by the recommend and result endpoints.
type ResultResponse struct {
	Success    bool                `json:"success"`
	ResultID   int64               `json:"resultId"`
	Vibe       string              `json:"vibe,omitempty"`
	Name       NameResponse        `json:"name"`
	Companions []CompanionResponse `json:"companions"`
	Companion  *CompanionResponse  `json:"companion"`
}

func newResultResponse(result *recommend.Result) ResultResponse {
	vibes := result.Name.Vibes()
	if vibes == nil {
		vibes = []string{}
	}
	resp := ResultResponse{
		Success:  true,
		ResultID: result.Name.ID,
		Vibe:     string(result.Vibe),
		Name: NameResponse{
			ID:         result.Name.ID,
			Identifier: result.Name.Identifier,
			Gender:     string(result.Name.Gender),
			Unisex:     result.Name.Unisex,
			Vibes:      vibes,
			Hangul:     result.Name.Hangul,
			Romanized:  result.Name.Romanized,
			Meaning:    result.Name.Meaning,
		},
		Companions: make([]CompanionResponse, 0, len(result.Companions)),
	}
	for _, c := range result.Companions {
		resp.Companions = append(resp.Companions, CompanionResponse{
			ID:       c.ID,
			Name:     c.Name,
			Category: c.Category,
			ImageURL: c.ImageURL,
		})
	}
	if len(resp.Companions) > 0 {
		resp.Companion = &resp.Companions[0]
	}
	return resp
}

// Recommend handles POST /api/v1/recommend.
func (h *RecommendHandler) Recommend(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, constants.MaxRequestBodySize)

	parsed, err := h.parseRequest(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, recommend.InvalidInput, err.Error())
		return
	}
	if err := h.validate.Struct(parsed.RecommendRequest); err != nil {
		respondError(w, http.StatusBadRequest, recommend.InvalidInput, validationDetail(err))
		return
	}

	override := false
	if parsed.AgeMarker != "" && parsed.AgeMarker == h.debugMarker {
		override = middleware.DebugAllowed(r.Context())
		if !override {
			hlog.FromRequest(r).Debug().
				Str("age_marker", sanitizeForLog(parsed.AgeMarker)).
				Msg("debug override requested without authorization")
		}
	}

	result, err := h.matcher.Recommend(r.Context(), recommend.Request{
		Gender:    database.Gender(parsed.GenderPreference),
		AgeMarker: parsed.AgeMarker,
		Image:     parsed.image,
		MIMEType:  parsed.mimeType,
		Caller:    middleware.GetCallerFromContext(r.Context()),
		Override:  override,
	})
	if err != nil {
		respondFailure(w, err)
		return
	}

	respondJSON(w, http.StatusOK, newResultResponse(result))
}

// Result handles GET /api/v1/result/{nameId}.
func (h *RecommendHandler) Result(w http.ResponseWriter, r *http.Request) {
	nameID, err := strconv.ParseInt(chi.URLParam(r, "nameId"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, recommend.InvalidInput, "invalid result id")
		return
	}
	// IDs start at 1, so anything lower cannot exist.
	if nameID <= 0 {
		respondError(w, http.StatusNotFound, recommend.NotFound, "result not found")
		return
	}

	result, err := h.matcher.ResolveShared(r.Context(), nameID)
	if err != nil {
		respondFailure(w, err)
		return
	}

	respondJSON(w, http.StatusOK, newResultResponse(result))
}

// parseRequest reads either a multipart form or a JSON body.
func (h *RecommendHandler) parseRequest(r *http.Request) (*parsedRequest, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		return parseMultipart(r)
	}
	return parseJSON(r)
}

func parseMultipart(r *http.Request) (*parsedRequest, error) {
	if err := r.ParseMultipartForm(constants.MaxUploadSize); err != nil {
		return nil, uploadError(err, "failed to parse multipart form")
	}

	p := &parsedRequest{RecommendRequest: RecommendRequest{
		GenderPreference: strings.TrimSpace(r.FormValue("genderPreference")),
		AgeMarker:        strings.TrimSpace(r.FormValue("ageMarker")),
	}}

	file, header, err := r.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) {
		return p, nil
	}
	if err != nil {
		return nil, errors.New("failed to read image")
	}
	defer file.Close()

	if header.Size > constants.MaxUploadSize {
		return nil, errImageTooLarge
	}
	data, err := io.ReadAll(io.LimitReader(file, constants.MaxUploadSize+1))
	if err != nil {
		return nil, errors.New("failed to read image")
	}
	if len(data) > constants.MaxUploadSize {
		return nil, errImageTooLarge
	}
	p.image = data
	p.mimeType = imageMIMEType(header.Header.Get("Content-Type"), data)
	return p, nil
}

func parseJSON(r *http.Request) (*parsedRequest, error) {
	var req RecommendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, uploadError(err, errInvalidRequestBody)
	}

	req.GenderPreference = strings.TrimSpace(req.GenderPreference)
	req.AgeMarker = strings.TrimSpace(req.AgeMarker)

	p := &parsedRequest{RecommendRequest: req}
	if req.Image == "" {
		return p, nil
	}

	declared, encoded := splitDataURL(req.Image)
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, errors.New("image must be base64 encoded")
	}
	if len(data) > constants.MaxUploadSize {
		return nil, errImageTooLarge
	}
	p.image = data
	p.mimeType = imageMIMEType(declared, data)
	return p, nil
}

var errImageTooLarge = fmt.Errorf("image exceeds %d MB", constants.MaxUploadSize>>20)

// uploadError reports oversized bodies distinctly from malformed ones.
func uploadError(err error, fallback string) error {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return errImageTooLarge
	}
	return errors.New(fallback)
}

// splitDataURL separates "data:image/png;base64,<payload>" into its media type and payload.
func splitDataURL(s string) (mediaType, payload string) {
	rest, ok := strings.CutPrefix(s, "data:")
	if !ok {
		return "", s
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", s
	}
	mediaType, _, _ = strings.Cut(meta, ";")
	return mediaType, payload
}

// imageMIMEType prefers a declared image type and sniffs otherwise.
func imageMIMEType(declared string, data []byte) string {
	if strings.HasPrefix(declared, "image/") {
		return declared
	}
	return ai.DetectMIMEType(data)
}

// validationDetail turns validator errors into a user-facing message.
func validationDetail(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return errInvalidRequestBody
	}
	fe := verrs[0]
	switch fe.Field() {
	case "GenderPreference":
		if fe.Tag() == "required" {
			return "genderPreference is required"
		}
		return "genderPreference must be one of M, F, U"
	case "AgeMarker":
		return "ageMarker is too long"
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}
