// Package knowledge holds the fixed course content the assistant is grounded on.
package knowledge

import "strings"

// DefaultModel is the Gemini model used when the configuration does not name one.
const DefaultModel = "gemini-2.5-flash"

// WelcomeID is the message id of the greeting seeded into every conversation.
const WelcomeID = "welcome"

const WelcomeText = "¡Hola! Bienvenido a **Negocios Digitales** en la UAI. Soy tu asistente virtual de la materia.\n\n" +
	"Estoy aquí para ayudarte con el programa, el sistema de evaluación, el trabajo práctico integrador y el uso del campus virtual.\n\n" +
	"¿En qué puedo ayudarte hoy?"

// ApologyText is appended as a model message whenever a request fails.
const ApologyText = "Lo siento, tuve un problema al conectar con el servidor. Por favor intenta nuevamente."

const (
	CourseTitle    = "Negocios Digitales"
	CourseSubtitle = "Asistente de Onboarding"
	InputHint      = "Escribe tu consulta sobre la materia..."
	Disclaimer     = "La IA puede cometer errores. Verifica la información en el campus oficial."
	ReminderTitle  = "📢 Recordatorio"
	Reminder       = "Revisá siempre el panel de **Anuncios** en el campus para fechas exactas de exámenes y entregas."
	Footer         = "UAI - Facultad de Ciencias Económicas · Negocios Digitales 2024"
)

// TutorialURL is the campus access video referenced by the platform section.
const TutorialURL = "https://www.youtube.com/watch?v=mtqHe1bazEk&ab_channel=UAIOnline-UAI"

const courseSyllabus = `
UNIVERSIDAD ABIERTA INTERAMERICANA (UAI)
Facultad: Ciencias Económicas / Carrera: Licenciatura en Comercio Internacional
Asignatura: Negocios Digitales
Año lectivo: 2024 | Año de cursada: 2º | Cuatrimestre: 2º
Equipo Docente: Germán Pérez Trozzi (Titular).

FUNDAMENTACIÓN:
La asignatura contribuye a la comprensión de diferentes modelos de negocios, análisis de mecanismos y evolución, identificación de elementos claves en la cadena de valor y desarrollo de planes de acción basados en buenas prácticas y metodologías ágiles.

UNIDADES TEMÁTICAS:
Unidad 1: Economía de plataformas
- Mundo VUCA/BANI, estrategia de océano azul, Modelo 6D, Modelo Canva.
- Estrategia digital, componentes y alcances.
- Diferencias entre comercio electrónico y negocios electrónicos.

Unidad 2: Cultural organizacional
- Gestión del cambio y transformación digital.
- Teletrabajo, Modelos de contratación, Outsourcing.
- Liderazgo Consciente.

Unidad 3: Gestión de proyectos
- Agile Scrum, Kanban, Metodología Cascada, OKR.

Unidad 4: Innovación y tecnología
- Lean Startup, Design Thinking, Design Sprint.
- 5G, IoT, Blockchain, Cloud, Big Data, BI, CRM, ERP, Chatbot, IA, Machine Learning, RPA.
- Estructura de una tienda online: circuitos, logística y medios de pago.

Unidad 5: El consumidor
- Nuevos hábitos, Customer Experience (CX), NPS, CSAT.
- Comunicación omnicanal, Benchmarking digital.
`

const evaluationSystem = `
SISTEMA DE EVALUACIÓN Y PROMOCIÓN:
1. Trabajo Práctico Integrador (TPI):
   - Temática: Creación de una empresa (ficticia) considerada digital según conceptos de la materia.
   - Entrega Parcial: A mitad de cursada (avance para retroalimentación).
   - Entrega Final: Cerca de la última clase (trabajo completo).

2. Criterios de Evaluación:
   - Solidez de argumentos.
   - Claridad conceptual.
   - Relación de conceptos con ejemplos.
   - Explicación de causas y efectos.
   - Fundamentación de decisiones.

3. Requisitos de Aprobación:
   - Aprobar parciales y trabajos con nota mínima 4.
   - Asistencia al 70% de las clases.
   - Participación activa en foros y debates (cámara encendida en remoto).

4. Regímenes de Aprobación Final:
   - Promoción ("Integradora Coloquial"): Promedio entre 6 y 10. Se rinde en grupos (max 3 personas).
   - Examen Final Regular: Promedio entre 4 y 5.99. Se rinde individual.
   - Recuperatorio: Si promedio es < 4 o asistencia entre 50-69%.
`

const platformInfo = `
PLATAFORMA Y COMUNICACIÓN:
- Aula Virtual: UAIOnline Ultra.
- Tutorial de acceso: ` + TutorialURL + `
- Metodología: Semipresencial (alternancia de clases presenciales y sincrónicas online).
- Comunicación: Foro de intercambio, anuncios en panel izquierdo, encuentros semanales.
- Actividades: Cada clase tiene una actividad asincrónica.
`

const behaviorGuidelines = `BEHAVIOR GUIDELINES:
1. Tone: Professional, academic, encouraging, and helpful. Use "inclusive" but formal Spanish (e.g., "Hola, bienvenido a la cursada").
2. Source of Truth: ONLY answer based on the provided text above. If a student asks something not in the text (like "What is the date of the first exam?"), explain that specific dates are communicated via the "Anuncios" panel in the Virtual Campus, as you only know the general structure.
3. Language: Always answer in Spanish unless requested otherwise.
4. Formatting: Use bullet points for lists (like syllabus units or requirements) to make it readable.
5. Specifics:
   - If asked about the "Trabajo Práctico", emphasize it is about creating a FICTITIOUS digital company.
   - If asked about "Promoción", explain the condition of grade 6-10 and group colloquium.
   - If asked about the platform, provide the Youtube link provided in the context.

Keep responses concise but complete.
`

var systemInstruction = strings.Join([]string{
	`
You are the expert AI Teaching Assistant for the subject "Negocios Digitales" at Universidad Abierta Interamericana (UAI).
Your goal is to onboard students and answer their questions about the course structure, content, and evaluation.

CORE KNOWLEDGE BASE:`,
	courseSyllabus,
	evaluationSystem,
	platformInfo,
	behaviorGuidelines,
}, "\n")

// SystemInstruction returns the instruction sent ahead of every conversation.
func SystemInstruction() string {
	return systemInstruction
}

// Suggestion is a canned question offered before the conversation gets going.
type Suggestion struct {
	Label string `json:"label"`
	Query string `json:"query"`
}

// ResourceLink is an entry of the quick resources panel.
type ResourceLink struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// HasURL reports whether the link points somewhere; the syllabus entry is a placeholder.
func (r ResourceLink) HasURL() bool {
	u := strings.TrimSpace(r.URL)
	return u != "" && u != "#"
}

var suggestions = []Suggestion{
	{Label: "📋 ¿Cómo se aprueba?", Query: "¿Cuáles son los criterios de evaluación y requisitos de aprobación?"},
	{Label: "🏗️ Trabajo Práctico", Query: "¿En qué consiste el Trabajo Práctico Integrador?"},
	{Label: "📚 Temas de la materia", Query: "Resumime las unidades temáticas de la materia."},
	{Label: "💻 Aula Virtual", Query: "¿Cómo accedo al aula virtual y dónde veo los anuncios?"},
}

var resources = []ResourceLink{
	{
		Title:       "Tutorial UAIOnline Ultra",
		URL:         TutorialURL,
		Description: "Guía de acceso al campus",
		Icon:        "▶️",
	},
	{
		Title:       "Programa Completo",
		URL:         "#",
		Description: "Syllabus 2024",
		Icon:        "📄",
	},
}

// Suggestions returns the canned questions in display order.
func Suggestions() []Suggestion {
	out := make([]Suggestion, len(suggestions))
	copy(out, suggestions)
	return out
}

// SuggestionAt returns the n-th canned question, 1-based.
func SuggestionAt(n int) (Suggestion, bool) {
	if n < 1 || n > len(suggestions) {
		return Suggestion{}, false
	}
	return suggestions[n-1], true
}

func Resources() []ResourceLink {
	out := make([]ResourceLink, len(resources))
	copy(out, resources)
	return out
}

// SuggestionsVisible reports whether the suggestion strip is still shown for a
// conversation of the given length. It disappears once a question and its
// answer have joined the welcome message.
func SuggestionsVisible(messageCount int) bool {
	return messageCount < 3
}
