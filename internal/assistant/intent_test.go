// internal/assistant/intent_test.go
package assistant

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifier_Classify(t *testing.T) {
	classifier := NewClassifier(DefaultVocabulary())

	tests := []struct {
		name     string
		text     string
		expected Intent
	}{
		{
			name:     "brand greeting",
			text:     "Hola MatchTech",
			expected: IntentBrandGreeting,
		},
		{
			name:     "brand greeting embedded in longer sentence",
			text:     "buenos días match, cómo va todo",
			expected: IntentBrandGreeting,
		},
		{
			name:     "bare generic greeting",
			text:     "hola",
			expected: IntentGreeting,
		},
		{
			name:     "generic greeting with surrounding whitespace",
			text:     "  Buenas Noches  ",
			expected: IntentGreeting,
		},
		{
			name:     "greeting followed by more text is not a greeting",
			text:     "hola, quiero un celular",
			expected: IntentGeneral,
		},
		{
			name:     "identity question",
			text:     "¿Quién eres tú exactamente?",
			expected: IntentIdentity,
		},
		{
			name:     "identity question about being a bot",
			text:     "dime, eres un bot o una persona",
			expected: IntentIdentity,
		},
		{
			name:     "brand greeting wins over identity",
			text:     "hola matchtech, quién eres",
			expected: IntentBrandGreeting,
		},
		{
			name:     "device question is general",
			text:     "recomiéndame un televisor barato",
			expected: IntentGeneral,
		},
		{
			name:     "empty message is general",
			text:     "",
			expected: IntentGeneral,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, classifier.Classify(tt.text))
		})
	}
}

func TestClassifier_IsDeviceQuery(t *testing.T) {
	classifier := NewClassifier(DefaultVocabulary())

	tests := []struct {
		name     string
		text     string
		expected bool
	}{
		{
			name:     "lowercase device noun",
			text:     "busco un celular económico",
			expected: true,
		},
		{
			name:     "mixed case device noun",
			text:     "Necesito una TABLET para estudiar",
			expected: true,
		},
		{
			name:     "device embedded as substring",
			text:     "mi nevera inteligente dejó de enfriar",
			expected: true,
		},
		{
			name:     "accented device noun",
			text:     "quiero unos audífonos inalámbricos",
			expected: true,
		},
		{
			name:     "no device mentioned",
			text:     "háblame de Gabriel García Márquez",
			expected: false,
		},
		{
			name:     "empty text",
			text:     "",
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, classifier.IsDeviceQuery(tt.text))
		})
	}
}
