package musicgen

import (
	"encoding/json"
	"time"
)

// Version pins the MusicGen model build.
const Version = "671ac645ce5e552cc63a54a2bbff63fcf798043055d2dac5fc9e36a837eedcfb"

// Prediction states reported by Replicate.
const (
	statusStarting   = "starting"
	statusProcessing = "processing"
	statusSucceeded  = "succeeded"
	statusFailed     = "failed"
	statusCanceled   = "canceled"
)

// Result describes a finished generation.
type Result struct {
	PredictionID string        `json:"prediction_id"`
	Prompt       string        `json:"prompt"`
	Duration     time.Duration `json:"duration"`
	OutputURL    string        `json:"output_url"`
	Path         string        `json:"path"`
	Filename     string        `json:"filename"`
	CreatedAt    time.Time     `json:"created_at"`
}

// input is the MusicGen model input.
type input struct {
	Prompt                 string `json:"prompt"`
	Duration               int    `json:"duration"`
	TopK                   int    `json:"top_k"`
	TopP                   int    `json:"top_p"`
	Temperature            int    `json:"temperature"`
	Continuation           bool   `json:"continuation"`
	ContinuationStart      int    `json:"continuation_start"`
	ModelVersion           string `json:"model_version"`
	OutputFormat           string `json:"output_format"`
	MultiBandDiffusion     bool   `json:"multi_band_diffusion"`
	NormalizationStrategy  string `json:"normalization_strategy"`
	ClassifierFreeGuidance int    `json:"classifier_free_guidance"`
}

func newInput(prompt string, seconds int) input {
	return input{
		Prompt:                 prompt,
		Duration:               seconds,
		TopK:                   250,
		TopP:                   0,
		Temperature:            1,
		ModelVersion:           "stereo-melody-large",
		OutputFormat:           "wav",
		NormalizationStrategy:  "loudness",
		ClassifierFreeGuidance: 3,
	}
}

type createRequest struct {
	Version string `json:"version"`
	Input   input  `json:"input"`
}

// prediction is the subset of the Replicate prediction object we read.
type prediction struct {
	ID     string          `json:"id"`
	Status string          `json:"status"`
	Output json.RawMessage `json:"output"`
	Error  any             `json:"error"`
	Logs   string          `json:"logs"`
	URLs   struct {
		Get    string `json:"get"`
		Cancel string `json:"cancel"`
	} `json:"urls"`
}

// outputURL extracts the audio URL; output is a string or a list of strings.
func (p prediction) outputURL() string {
	if len(p.Output) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(p.Output, &s); err == nil {
		return s
	}
	var list []string
	if err := json.Unmarshal(p.Output, &list); err == nil && len(list) > 0 {
		return list[0]
	}
	return ""
}

func (p prediction) done() bool {
	switch p.Status {
	case statusSucceeded, statusFailed, statusCanceled:
		return true
	}
	return false
}

// apiError is Replicate's problem-details error body.
type apiError struct {
	Title  string `json:"title"`
	Detail string `json:"detail"`
	Status int    `json:"status"`
}
