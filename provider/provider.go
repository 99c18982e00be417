// Package provider defines the translation backends: the public Google
// Translate endpoint, OpenAI-compatible chat models, and a mock.
package provider

import "github.com/ZaguanLabs/mdxlai"

// Provider is the interface for translation backends.
// This is an alias to the main package interface for convenience.
type Provider = mdxlai.Provider

// TranslateRequest is an alias to the main package type.
type TranslateRequest = mdxlai.TranslateRequest
