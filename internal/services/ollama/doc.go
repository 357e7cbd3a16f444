// Package ollama talks to a local Ollama server for retention classification.
//
// The client sends bounded document text to the chat endpoint with a JSON
// response format and parses the model's determination payload. Transient
// failures (timeouts, 408/429/5xx, connection resets) are retried with
// exponential backoff, honoring Retry-After when the server provides one.
package ollama
