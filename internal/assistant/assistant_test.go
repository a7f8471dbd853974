// internal/assistant/assistant_test.go
package assistant

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"matchtech-assistant/internal/common/logger"
)

type stubSearcher struct {
	results []SearchResult
	err     error
	panics  bool
	calls   int
	queries []string
}

func (s *stubSearcher) Search(ctx context.Context, query string) ([]SearchResult, error) {
	s.calls++
	s.queries = append(s.queries, query)
	if s.panics {
		panic("search exploded")
	}
	return s.results, s.err
}

type stubGenerator struct {
	reply   string
	err     error
	calls   int
	prompts []string
}

func (g *stubGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	g.calls++
	g.prompts = append(g.prompts, prompt)
	return g.reply, g.err
}

func newTestAssistant(searcher *stubSearcher, generator *stubGenerator) *Assistant {
	return New(DefaultVocabulary(), searcher, generator, logger.NewNoOpLogger())
}

func TestAssistant_Answer_FixedReplies(t *testing.T) {
	tests := []struct {
		name     string
		question string
		expected string
	}{
		{
			name:     "brand greeting",
			question: "hola matchtech",
			expected: "¡Hola! 😊 Soy MatchTech, tu asistente de IA. ¿En qué puedo ayudarte hoy?",
		},
		{
			name:     "generic greeting",
			question: "buenos días",
			expected: "¡Hola! 👋 Soy MatchTech, tu asistente de confianza. ¿Qué necesitas saber?",
		},
		{
			name:     "identity question",
			question: "¿quién eres?",
			expected: "Soy MatchTech, tu asistente de inteligencia artificial listo para ayudarte con tecnología y dispositivos electrónicos.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			searcher := &stubSearcher{}
			generator := &stubGenerator{}
			a := newTestAssistant(searcher, generator)

			got := a.Answer(context.Background(), tt.question)

			assert.Equal(t, tt.expected, got)
			assert.Zero(t, searcher.calls, "fixed replies must not hit the web")
			assert.Zero(t, generator.calls, "fixed replies must not hit the model")
		})
	}
}

func TestAssistant_Answer_OffTopicRedirect(t *testing.T) {
	searcher := &stubSearcher{}
	generator := &stubGenerator{}
	a := newTestAssistant(searcher, generator)

	got := a.Answer(context.Background(), "quiero info sobre perros")

	assert.Contains(t, got, "¡Vaya! 😯")
	assert.Contains(t, got, "estás buscando información sobre perros")
	assert.Zero(t, searcher.calls)
	assert.Zero(t, generator.calls)
}

func TestAssistant_Answer_DeviceQuery(t *testing.T) {
	searcher := &stubSearcher{
		results: []SearchResult{
			{Title: "Reseña", Content: "La mejor tablet de gama media.", URL: "https://example.com"},
		},
	}
	generator := &stubGenerator{reply: "  **📱 Tablet X**\nBuena opción con `gran batería`.  "}
	a := newTestAssistant(searcher, generator)

	got := a.Answer(context.Background(), "recomiéndame una tablet para estudiar")

	assert.Equal(t, 1, searcher.calls)
	assert.Equal(t, "recomiéndame una tablet para estudiar", searcher.queries[0])
	assert.Equal(t, 1, generator.calls)
	assert.Contains(t, generator.prompts[0], `El usuario pregunta: "recomiéndame una tablet para estudiar"`)
	assert.Contains(t, generator.prompts[0], "Título: Reseña")

	assert.Equal(t, "📱 Tablet X\nBuena opción con gran batería.", got)
	assert.NotContains(t, got, "**")
	assert.NotContains(t, got, "`")
}

func TestAssistant_Answer_SearchFailureDegradesToNoContext(t *testing.T) {
	searcher := &stubSearcher{err: errors.New("tavily unreachable")}
	generator := &stubGenerator{reply: "Te recomiendo estos celulares."}
	a := newTestAssistant(searcher, generator)

	got := a.Answer(context.Background(), "busco un celular barato")

	assert.Equal(t, "Te recomiendo estos celulares.", got)
	assert.Equal(t, 1, generator.calls, "generation still runs without web context")
	assert.Contains(t, generator.prompts[0], "No se encontró información específica.")
	assert.NotContains(t, got, "tavily unreachable")
}

func TestAssistant_Answer_GenerationFailureBecomesErrorString(t *testing.T) {
	searcher := &stubSearcher{}
	generator := &stubGenerator{err: errors.New("LLM_TIMEOUT")}
	a := newTestAssistant(searcher, generator)

	got := a.Answer(context.Background(), "quiero un televisor")

	assert.Equal(t, "Error: LLM_TIMEOUT", got)
}

func TestAssistant_Answer_RecoversFromPanic(t *testing.T) {
	searcher := &stubSearcher{panics: true}
	generator := &stubGenerator{}
	a := newTestAssistant(searcher, generator)

	var got string
	assert.NotPanics(t, func() {
		got = a.Answer(context.Background(), "necesito una lavadora")
	})
	assert.Equal(t, "Ups… tuve un problema procesando tu mensaje, pero ya estoy listo para intentarlo de nuevo. 😊", got)
}

func TestAssistant_Answer_DeviceGateIsCaseInsensitive(t *testing.T) {
	searcher := &stubSearcher{}
	generator := &stubGenerator{reply: "respuesta"}
	a := newTestAssistant(searcher, generator)

	a.Answer(context.Background(), "Busco un CELULAR con buena cámara")

	assert.Equal(t, 1, searcher.calls)
	assert.Equal(t, 1, generator.calls)
}
