// internal/assistant/intent.go
package assistant

import "strings"

// Intent is the coarse conversational category assigned to a message before
// any retrieval or generation work happens.
type Intent string

const (
	IntentBrandGreeting Intent = "saludo_personalizado"
	IntentGreeting      Intent = "saludo_generico"
	IntentIdentity      Intent = "identidad"
	IntentGeneral       Intent = "consulta_general"
)

// Classifier assigns intents and gates queries against the device vocabulary.
type Classifier struct {
	vocab *Vocabulary
}

func NewClassifier(vocab *Vocabulary) *Classifier {
	return &Classifier{vocab: vocab}
}

// Classify resolves the intent of a message. First match wins. Brand
// greetings are contains-matched, but bare greetings must equal the whole
// message so "hola, quiero un celular" is not swallowed as a greeting.
func (c *Classifier) Classify(text string) Intent {
	lower := strings.ToLower(strings.TrimSpace(text))

	for _, s := range c.vocab.BrandGreetings {
		if strings.Contains(lower, s) {
			return IntentBrandGreeting
		}
	}

	for _, s := range c.vocab.Greetings {
		if lower == s {
			return IntentGreeting
		}
	}

	for _, p := range c.vocab.IdentityQuestions {
		if strings.Contains(lower, p) {
			return IntentIdentity
		}
	}

	return IntentGeneral
}

// IsDeviceQuery reports whether the message mentions one of the consumer
// electronics categories the assistant covers.
func (c *Classifier) IsDeviceQuery(text string) bool {
	lower := strings.ToLower(text)
	for _, d := range c.vocab.Devices {
		if strings.Contains(lower, d) {
			return true
		}
	}
	return false
}
