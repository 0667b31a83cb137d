package translate

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client calls the translation API (v2 REST surface). The core never
// retries a failed translation; the caller falls back to the original text.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

type translateResponse struct {
	Data struct {
		Translations []struct {
			TranslatedText         string `json:"translatedText"`
			DetectedSourceLanguage string `json:"detectedSourceLanguage"`
		} `json:"translations"`
	} `json:"data"`
}

// Translate returns the text translated into target. When source is empty
// the provider detects it; the detected code is returned alongside.
func (c *Client) Translate(ctx context.Context, text, target, source string) (string, string, error) {
	form := url.Values{}
	form.Set("q", text)
	form.Set("target", target)
	form.Set("format", "text")
	if source != "" {
		form.Set("source", source)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"?key="+url.QueryEscape(c.apiKey),
		strings.NewReader(form.Encode()))
	if err != nil {
		return "", "", fmt.Errorf("build translate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", "", fmt.Errorf("call translate provider: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", "", fmt.Errorf("translate provider returned status %d", resp.StatusCode)
	}

	var out translateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", "", fmt.Errorf("decode translate response: %w", err)
	}

	if len(out.Data.Translations) == 0 {
		return "", "", fmt.Errorf("translate provider returned no translations")
	}

	translation := out.Data.Translations[0]
	detected := source
	if detected == "" {
		detected = translation.DetectedSourceLanguage
	}
	return translation.TranslatedText, detected, nil
}
