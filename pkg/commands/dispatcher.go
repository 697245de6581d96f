package commands

import (
	"sort"
	"strings"
)

// ResultAction tells the host what to do besides showing the result.
type ResultAction string

const (
	ResultActionNone            ResultAction = ""
	ResultActionToggleResources ResultAction = "toggle_resources"
	ResultActionCopy            ResultAction = "copy"
	ResultActionSend            ResultAction = "send"
)

// Result represents the result of a command execution
type Result struct {
	Title   string
	Content string
	Action  ResultAction
	// Payload is the text to copy or to send, depending on Action.
	Payload string
	Error   error
}

// Handler is the interface for command handlers
type Handler interface {
	Execute(ctx *Context) *Result
	Name() string
	Description() string
}

// Dispatcher routes commands to their handlers
type Dispatcher struct {
	handlers map[string]Handler
}

// NewDispatcher creates a new command dispatcher
func NewDispatcher() *Dispatcher {
	d := &Dispatcher{
		handlers: make(map[string]Handler),
	}

	d.Register(&SuggestionsHandler{})
	d.Register(&ResourcesHandler{})
	d.Register(&CopyHandler{})
	d.Register(&HelpHandler{dispatcher: d})

	return d
}

// Register adds a handler to the dispatcher
func (d *Dispatcher) Register(h Handler) {
	d.handlers[h.Name()] = h
}

// Dispatch executes a command by name
func (d *Dispatcher) Dispatch(cmdName string, ctx *Context) *Result {
	handler, ok := d.handlers[cmdName]
	if !ok {
		return &Result{
			Title:   "Error",
			Content: "Comando desconocido: " + cmdName + ". Escribí /ayuda para ver los disponibles.",
		}
	}

	if ctx == nil {
		ctx = &Context{}
	}
	return handler.Execute(ctx)
}

// Run parses a line typed in the chat input and dispatches it.
func (d *Dispatcher) Run(line string, ctx *Context) *Result {
	name, args, ok := Parse(line)
	if !ok {
		return nil
	}
	if ctx == nil {
		ctx = &Context{}
	}
	ctx.Args = args
	return d.Dispatch(name, ctx)
}

// GetHandler returns a handler by name
func (d *Dispatcher) GetHandler(cmdName string) (Handler, bool) {
	h, ok := d.handlers[cmdName]
	return h, ok
}

// Handlers returns the registered handlers sorted by name.
func (d *Dispatcher) Handlers() []Handler {
	out := make([]Handler, 0, len(d.handlers))
	for _, h := range d.handlers {
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}

// Parse splits a slash command into its name and arguments. Lines that do not
// start with a slash are questions, not commands.
func Parse(line string) (string, []string, bool) {
	fields := strings.Fields(line)
	if len(fields) == 0 || !strings.HasPrefix(fields[0], "/") || fields[0] == "/" {
		return "", nil, false
	}
	return strings.ToLower(fields[0]), fields[1:], true
}
