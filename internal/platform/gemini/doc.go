// Package gemini implements generation.Explainer on top of Google's Gemini API.
//
// The explainer renders a prompt from the profile snapshot, sends it through
// the genai client and returns the model's text. API errors are treated as
// transient and retried with exponential backoff and jitter. Empty responses
// and safety blocks are permanent and returned at once.
//
// Callers normally wrap the explainer in a generation.FallbackExplainer so a
// failed call is answered by the template explainer.
package gemini
