// Package openai implements the ai collaborator interfaces against
// OpenAI-compatible APIs via langchaingo. It works with the public OpenAI
// endpoint as well as local services exposing the same surface (Ollama,
// LocalAI, vLLM).
package openai
