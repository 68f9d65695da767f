package ai

import "errors"

var ErrEmptyMessage = errors.New("message is empty")
var ErrProviderUnavailable = errors.New("AI provider is not available")
var ErrInferenceTimeout = errors.New("AI inference timed out")
