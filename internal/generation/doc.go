// Package generation turns a profile snapshot into a short plain-language
// coaching note. TemplateExplainer renders a fixed text template and needs no
// external service; the Gemini explainer in platform/gemini prompts an LLM and
// is wrapped in a FallbackExplainer so the template answers when it fails.
package generation
