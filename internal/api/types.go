package api

import (
	"github.com/samcharles93/ngramlab/internal/ngram"
	"github.com/samcharles93/ngramlab/internal/perplexity"
)

type CreateModelRequest struct {
	Text            string `json:"text"`
	MaxOrder        *int   `json:"max_order,omitempty"`
	KeepCase        bool   `json:"keep_case,omitempty"`
	KeepPunctuation bool   `json:"keep_punctuation,omitempty"`
}

type ModelResponse struct {
	ID        string        `json:"id"`
	Object    string        `json:"object"`
	CreatedAt int64         `json:"created_at"`
	Tokens    int           `json:"tokens"`
	MaxOrder  int           `json:"max_order"`
	Stats     []ngram.Stats `json:"stats"`
}

type ModelList struct {
	Object string          `json:"object"`
	Data   []ModelResponse `json:"data"`
}

type DeleteModelResponse struct {
	ID      string `json:"id"`
	Object  string `json:"object"`
	Deleted bool   `json:"deleted"`
}

type GenerateRequest struct {
	Order    int    `json:"order,omitempty"`
	Length   *int   `json:"length,omitempty"`
	SeedText string `json:"seed_text,omitempty"`
	Seed     *int64 `json:"seed,omitempty"`
	Stream   bool   `json:"stream,omitempty"`
}

type GenerateResponse struct {
	Object string   `json:"object"`
	Model  string   `json:"model"`
	Order  int      `json:"order"`
	Seed   int64    `json:"seed"`
	Tokens []string `json:"tokens"`
	Text   string   `json:"text"`
}

type PerplexityRequest struct {
	Order int    `json:"order,omitempty"`
	Text  string `json:"text"`
}

type PerplexityResponse struct {
	Object string `json:"object"`
	Model  string `json:"model"`
	perplexity.Result
}

type ResponseError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
	Code    string `json:"code,omitempty"`
	Param   string `json:"param,omitempty"`
}
