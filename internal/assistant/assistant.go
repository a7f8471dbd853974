// internal/assistant/assistant.go
package assistant

import (
	"context"
	"fmt"
	"time"

	"matchtech-assistant/internal/common/logger"
	"matchtech-assistant/internal/common/metrics"
	"matchtech-assistant/internal/common/observability"
)

const (
	brandGreetingReply = "¡Hola! 😊 Soy MatchTech, tu asistente de IA. ¿En qué puedo ayudarte hoy?"

	genericGreetingReply = "¡Hola! 👋 Soy MatchTech, tu asistente de confianza. ¿Qué necesitas saber?"

	identityReply = "Soy MatchTech, tu asistente de inteligencia artificial listo para ayudarte con tecnología y dispositivos electrónicos."

	fallbackReply = "Ups… tuve un problema procesando tu mensaje, pero ya estoy listo para intentarlo de nuevo. 😊"
)

// Searcher provides web context for a query. Failures are treated by the
// assistant as an empty result set; implementations must bound the result
// count.
type Searcher interface {
	Search(ctx context.Context, query string) ([]SearchResult, error)
}

// Generator invokes the hosted model with a fully assembled prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Assistant runs the full query pipeline. Answer always returns a
// user-displayable string; no failure propagates to the caller.
type Assistant struct {
	classifier *Classifier
	extractor  *TopicExtractor
	searcher   Searcher
	generator  Generator
	logger     logger.Logger
	obs        *observability.Observability
}

func New(vocab *Vocabulary, searcher Searcher, generator Generator, log logger.Logger) *Assistant {
	return &Assistant{
		classifier: NewClassifier(vocab),
		extractor:  NewTopicExtractor(vocab),
		searcher:   searcher,
		generator:  generator,
		logger: log.With(map[string]interface{}{
			"component": "assistant",
		}),
	}
}

// SetObservability attaches OpenTelemetry recording to the pipeline.
func (a *Assistant) SetObservability(obs *observability.Observability) {
	a.obs = obs
}

// Answer resolves one user message to a response string.
func (a *Assistant) Answer(ctx context.Context, question string) (answer string) {
	defer func() {
		if r := recover(); r != nil {
			a.logger.Error("recovered from panic while answering", map[string]interface{}{
				"panic": fmt.Sprint(r),
			})
			metrics.FallbackResponses.Inc()
			answer = fallbackReply
		}
	}()

	intent := a.classifier.Classify(question)
	metrics.QueriesTotal.WithLabelValues(string(intent)).Inc()
	if a.obs != nil {
		a.obs.RecordQueryProcessed(ctx, string(intent))
		defer func(start time.Time) {
			a.obs.RecordQueryDuration(ctx, time.Since(start), string(intent))
		}(time.Now())
	}

	a.logger.Info("processing question", map[string]interface{}{
		"intent": string(intent),
	})

	switch intent {
	case IntentBrandGreeting:
		return brandGreetingReply
	case IntentGreeting:
		return genericGreetingReply
	case IntentIdentity:
		return identityReply
	}

	if !a.classifier.IsDeviceQuery(question) {
		topic := a.extractor.Extract(question)
		return fmt.Sprintf("¡Vaya! 😯\nParece que estás buscando información sobre %s, pero lamentablemente solo estoy hecho para conectarte con tu nuevo amigo electrónico 🧑‍💻🤝🔌\nPero aquí estaré por si necesitas ayuda con eso.", topic)
	}

	results := a.searchContext(ctx, question)
	prompt := BuildPrompt(question, results)
	reply := a.generate(ctx, prompt)

	return Sanitize(reply)
}

// searchContext runs the web search, degrading to no context on any failure.
func (a *Assistant) searchContext(ctx context.Context, question string) []SearchResult {
	start := time.Now()
	results, err := a.searcher.Search(ctx, question)
	metrics.PipelineStageDuration.WithLabelValues("search").Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.SearchRequests.WithLabelValues("error").Inc()
		a.logger.Warn("web search failed, continuing without context", map[string]interface{}{
			"error": err.Error(),
		})
		return nil
	}

	metrics.SearchRequests.WithLabelValues("ok").Inc()
	a.logger.Info("web search completed", map[string]interface{}{
		"resultCount": len(results),
	})
	return results
}

// generate invokes the model; a failure becomes a literal error string so the
// caller always has a response to return.
func (a *Assistant) generate(ctx context.Context, prompt string) string {
	start := time.Now()
	reply, err := a.generator.Generate(ctx, prompt)
	metrics.PipelineStageDuration.WithLabelValues("generate").Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.GenerationRequests.WithLabelValues("error").Inc()
		a.logger.Error("model invocation failed", map[string]interface{}{
			"error": err.Error(),
		})
		return "Error: " + err.Error()
	}

	metrics.GenerationRequests.WithLabelValues("ok").Inc()
	return reply
}
