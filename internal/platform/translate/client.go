package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// nllbCodes maps two-letter language preferences to NLLB BCP-47 codes
// understood by the translation endpoint.
var nllbCodes = map[string]string{
	"en": "eng_Latn",
	"hi": "hin_Deva",
	"bn": "ben_Beng",
	"ta": "tam_Taml",
	"te": "tel_Telu",
	"mr": "mar_Deva",
	"gu": "guj_Gujr",
	"kn": "kan_Knda",
	"ml": "mal_Mlym",
	"pa": "pan_Guru",
	"es": "spa_Latn",
	"fr": "fra_Latn",
	"de": "deu_Latn",
	"pt": "por_Latn",
	"ar": "arb_Arab",
	"zh": "zho_Hans",
}

// NLLBCode resolves a two-letter language preference to the endpoint's
// language code. Unknown preferences fall back to English.
func NLLBCode(lang string) string {
	if code, ok := nllbCodes[lang]; ok {
		return code
	}
	return nllbCodes["en"]
}

// Request is the payload for the translation endpoint.
type Request struct {
	Text       string `json:"text"`
	SourceLang string `json:"source_lang"`
	TargetLang string `json:"target_lang"`
}

// Response is the translation endpoint's output.
type Response struct {
	TranslatedText string `json:"translated_text"`
}

// Client calls the hosted NLLB translation endpoint.
type Client struct {
	endpointURL string
	httpClient  *http.Client
}

// NewClient creates a translation client for the given endpoint URL.
func NewClient(endpointURL string) *Client {
	return &Client{
		endpointURL: endpointURL,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// Enabled reports whether a translation endpoint is configured.
func (c *Client) Enabled() bool {
	return c.endpointURL != ""
}

// Translate converts text between two-letter language preferences. Returns
// the input unchanged when source and target are the same or when no endpoint
// is configured.
func (c *Client) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	if text == "" || sourceLang == targetLang || !c.Enabled() {
		return text, nil
	}

	body, err := json.Marshal(Request{
		Text:       text,
		SourceLang: NLLBCode(sourceLang),
		TargetLang: NLLBCode(targetLang),
	})
	if err != nil {
		return "", fmt.Errorf("marshal translate request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpointURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build translate request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	res, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("call translation endpoint: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(res.Body, 500))
		return "", fmt.Errorf("translation endpoint returned %d: %s", res.StatusCode, snippet)
	}

	var out Response
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode translate response: %w", err)
	}

	return out.TranslatedText, nil
}
