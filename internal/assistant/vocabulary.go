// internal/assistant/vocabulary.go
package assistant

// Vocabulary holds the fixed word lists driving intent classification, the
// device gate and topic extraction. Lists are matched in declaration order,
// so order is part of the contract.
type Vocabulary struct {
	// BrandGreetings are contains-matched against the lowered message.
	BrandGreetings []string
	// Greetings must match the whole lowered message exactly.
	Greetings []string
	// IdentityQuestions are contains-matched.
	IdentityQuestions []string
	// Devices are the consumer electronics nouns the assistant covers.
	Devices []string
	// StopWords are removed from text before topic extraction.
	StopWords []string
	// Nationalities and Genres feed the out-of-domain redirect phrasing.
	Nationalities []string
	Genres        []string
}

// DefaultVocabulary returns the production Spanish vocabulary.
func DefaultVocabulary() *Vocabulary {
	return &Vocabulary{
		BrandGreetings: []string{
			"hola match", "hola matchtech", "hey match", "hola match tech",
			"match tech", "matchtech", "buenos días match", "buenas tardes match",
			"qué tal match", "cómo estás match",
		},
		Greetings: []string{
			"hola", "hey", "hi", "buenos días", "buenas tardes", "buenas noches",
			"qué tal", "cómo estás", "saludos",
		},
		IdentityQuestions: []string{
			"quién eres", "qué eres", "cuál es tu nombre", "cómo te llamas",
			"eres una ia", "eres un bot", "eres humano",
		},
		Devices: []string{
			"celular", "celulares", "smartphone", "iphone", "android",
			"computador", "computadores", "laptop", "portátil", "pc",
			"tablet", "tableta", "tablets",
			"televisor", "tv", "smart tv",
			"nevera", "refrigerador", "nevera inteligente",
			"lavadora", "lavadora inteligente",
			"monitor",
			"audífonos", "audifonos", "headphones",
			"reloj", "smartwatch", "reloj inteligente",
			"teclado", "mouse", "ratón",
		},
		StopWords: []string{
			"hola", "hey", "buenas", "por", "favor", "pls", "quiero", "quisiera",
			"dame", "damé", "busco", "necesito", "información", "datos", "info",
			"sobre", "acerca", "de", "hola!",
		},
		Nationalities: []string{
			"colombiano", "colombiana", "mexicano", "mexicana",
			"argentino", "argentina", "chileno", "chilena",
			"español", "española", "peruano", "peruana",
			"venezolano", "venezolana",
		},
		Genres: []string{
			"realismo mágico", "realismo", "ficción", "literatura",
			"novela", "cuento", "poesía", "ensayo", "crónica",
		},
	}
}
