package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// FlanGenerator produces free-form answers from the HuggingFace Inference
// API when a token is configured. The chatbot treats it as strictly
// optional: any failure falls back to template answers.
type FlanGenerator struct {
	client *resty.Client
	token  string
	model  string
}

func NewFlanGenerator(token, model string) *FlanGenerator {
	if model == "" {
		model = "google/flan-t5-base"
	}
	client := resty.New().
		SetTimeout(15 * time.Second). // cold models take a while
		SetBaseURL("https://api-inference.huggingface.co")
	return &FlanGenerator{client: client, token: token, model: model}
}

func (g *FlanGenerator) Enabled() bool {
	return g != nil && g.token != ""
}

// GenerateGeneralAnswer asks the model a general pregnancy nutrition
// question with the expert prompt.
func (g *FlanGenerator) GenerateGeneralAnswer(question string, trimester int) (string, error) {
	prompt := fmt.Sprintf(
		"You are a pregnancy nutrition expert. Answer the following question for a woman in trimester %d of pregnancy.\n\nQuestion: %s\n\nProvide a clear, concise, evidence-based answer with practical advice.",
		trimester, question,
	)
	return g.generate(prompt)
}

// GenerateSafetyAnswer asks the model about a specific food's safety.
func (g *FlanGenerator) GenerateSafetyAnswer(foodName string, trimester int, question string) (string, error) {
	prompt := fmt.Sprintf(
		"You are a pregnancy nutrition expert. Answer the following question about food safety during pregnancy.\n\nFood: %s\nTrimester: %d\nQuestion: %s\n\nProvide a clear, concise, evidence-based answer about the safety of %s, including any precautions.",
		foodName, trimester, question, foodName,
	)
	return g.generate(prompt)
}

func (g *FlanGenerator) generate(prompt string) (string, error) {
	if !g.Enabled() {
		return "", fmt.Errorf("HUGGINGFACE_TOKEN not set")
	}

	body := map[string]any{
		"inputs": prompt,
		"parameters": map[string]any{
			"max_new_tokens": 160,
			"temperature":    0.2,
		},
	}

	var out []struct {
		GeneratedText string `json:"generated_text"`
	}
	var hfErr struct {
		Error string `json:"error"`
	}

	resp, err := g.client.R().
		SetAuthToken(g.token).
		SetHeader("Content-Type", "application/json").
		// Ensure HF loads cold models instead of returning a "loading" error
		SetHeader("x-wait-for-model", "true").
		SetBody(body).
		SetResult(&out).
		SetError(&hfErr).
		Post("/models/" + g.model)
	if err != nil {
		return "", fmt.Errorf("hf request error: %w", err)
	}

	if resp.IsError() {
		if hfErr.Error != "" {
			return "", fmt.Errorf("hf api error (%d): %s", resp.StatusCode(), hfErr.Error)
		}
		preview := resp.String()
		if len(preview) > 200 {
			preview = preview[:200] + "..."
		}
		return "", fmt.Errorf("hf api error (%d): %s", resp.StatusCode(), preview)
	}

	if len(out) == 0 || strings.TrimSpace(out[0].GeneratedText) == "" {
		return "", fmt.Errorf("empty response from hf")
	}
	return strings.TrimSpace(out[0].GeneratedText), nil
}
