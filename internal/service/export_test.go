package service

import (
	"github.com/humzahanif/Advanced-Translation-Agent/internal/service/ai"
	"github.com/humzahanif/Advanced-Translation-Agent/internal/service/speech"
)

// SetProviderFactoryForTest swaps the AI provider factory on a translation
// service so tests can run without hosted APIs.
func SetProviderFactoryForTest(svc TranslationService, fn func(ai.Config) (ai.Provider, error)) {
	svc.(*translationService).newProvider = fn
}

// SetSpeechFactoriesForTest swaps the recognizer and synthesizer factories on
// a speech service.
func SetSpeechFactoriesForTest(
	svc SpeechService,
	rec func(speech.Config) (speech.Recognizer, error),
	syn func(speech.Config) (speech.Synthesizer, error),
) {
	impl := svc.(*speechService)
	if rec != nil {
		impl.newRecognizer = rec
	}
	if syn != nil {
		impl.newSynthesizer = syn
	}
}

// MaskAPIKeyForTest exposes API key masking for tests.
func MaskAPIKeyForTest(key string) string {
	return maskAPIKey(key)
}

// IsMaskedKeyForTest exposes masked key detection for tests.
func IsMaskedKeyForTest(key string) bool {
	return isMaskedKey(key)
}
