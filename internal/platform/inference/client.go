package inference

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ModelVersion identifies the captioning and clinical reasoning models served
// by the hosted endpoint. It is stored alongside every analysis so results
// can be traced back to the models that produced them.
const ModelVersion = "blip:Salesforce/blip-image-captioning-large+medgemma:google/medgemma-4b-it"

// defaultTimeout allows for cold starts and multi-image inference on the
// hosted endpoint.
const defaultTimeout = 120 * time.Second

// PatientContext carries lifestyle and medical background sent to the model.
type PatientContext struct {
	OccupationType     string   `json:"occupation_type,omitempty"`
	DailySittingHours  int      `json:"daily_sitting_hours,omitempty"`
	PhysicalWorkLevel  string   `json:"physical_work_level,omitempty"`
	MedicalConditions  []string `json:"medical_conditions,omitempty"`
}

// AnalyzeRequest is the payload for the analysis endpoint.
type AnalyzeRequest struct {
	ImagesBase64   []string       `json:"images_base64"`
	TextComplaint  string         `json:"text_complaint"`
	PainLocation   string         `json:"pain_location"`
	PainLevel      int            `json:"pain_level"`
	PatientContext PatientContext `json:"patient_context"`
}

// AnalyzeResponse is the model output for a single analysis.
type AnalyzeResponse struct {
	ProbableCondition string   `json:"probable_condition"`
	ConfidenceScore   float64  `json:"confidence_score"`
	Reasoning         string   `json:"reasoning"`
	RehabPlan         string   `json:"rehab_plan"`
	ImageCaptions     []string `json:"image_captions"`
}

// Client calls the hosted image-captioning + clinical-reasoning endpoint.
type Client struct {
	endpointURL string
	httpClient  *http.Client
}

// NewClient creates an inference client for the given endpoint URL.
func NewClient(endpointURL string) *Client {
	return &Client{
		endpointURL: endpointURL,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}
}

// Analyze posts the assessment payload to the hosted endpoint and decodes the
// model's response.
func (c *Client) Analyze(ctx context.Context, req AnalyzeRequest) (*AnalyzeResponse, error) {
	if c.endpointURL == "" {
		return nil, fmt.Errorf("analysis endpoint is not configured")
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal analyze request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpointURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build analyze request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	res, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("call analysis endpoint: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		// Truncate the error body so a misbehaving endpoint can't flood logs.
		snippet, _ := io.ReadAll(io.LimitReader(res.Body, 500))
		return nil, fmt.Errorf("analysis endpoint returned %d: %s", res.StatusCode, snippet)
	}

	var out AnalyzeResponse
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode analyze response: %w", err)
	}

	return &out, nil
}
