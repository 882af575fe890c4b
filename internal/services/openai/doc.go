// Package openai talks to an OpenAI-compatible chat completion endpoint to
// normalize noisy titles and descriptions.
package openai
