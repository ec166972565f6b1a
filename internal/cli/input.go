// Package cli handles interactive decode and encode sessions for DBG and testing
package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/kagura-dev/typeway/pkg/engine"
)

var (
	textStyle = lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	fragStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#286983", Dark: "#9ccfd8"})
	dimStyle = lipgloss.NewStyle().Faint(true)
)

// InputHandler processes raw lines from stdin against the engine,
// either decoding keystroke streams or encoding sentences depending
// on the session mode.
type InputHandler struct {
	engine       *engine.Engine
	mode         string
	showTiming   bool
	requestCount int
}

// NewInputHandler handles initialization of the InputHandler with basic parameters
func NewInputHandler(eng *engine.Engine, mode string, showTiming bool) *InputHandler {
	return &InputHandler{
		engine:     eng,
		mode:       mode,
		showTiming: showTiming,
	}
}

// Start begins the interface loop.
// Lines keep every interior and trailing space: selector spaces are
// real keystrokes, so only the line terminator is stripped. The loop
// ends when stdin closes.
func (h *InputHandler) Start() error {
	log.Print("TypeWay CLI [" + h.mode + " mode]")
	switch h.mode {
	case "eval":
		log.Print("type a keystroke stream and press Enter to decode it (Ctrl+C to exit):")
	case "encode":
		log.Print("type a sentence and press Enter to see its cheapest keystrokes (Ctrl+C to exit):")
	default:
		return fmt.Errorf("unknown mode: %s", h.mode)
	}

	reader := bufio.NewReader(os.Stdin)
	for {
		log.Print("> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
		input := strings.TrimRight(line, "\r\n")
		if input == "" {
			continue
		}
		h.handleInput(input)
	}
}

// handleInput processes a single line in the session's mode.
func (h *InputHandler) handleInput(input string) {
	h.requestCount++

	if h.mode == "encode" {
		h.showEncode(input)
		return
	}
	h.showEval(input)
}

// showEval decodes one keystroke stream and prints the text.
func (h *InputHandler) showEval(input string) {
	start := time.Now()
	text := h.engine.Eval(input)
	elapsed := time.Since(start)
	log.Debugf("Took [ %v ] for %q", elapsed, input)

	if text == "" {
		log.Warnf("No output for %q", input)
		return
	}
	line := textStyle.Render(text)
	if h.showTiming {
		line += " " + dimStyle.Render(fmt.Sprintf("(%v)", elapsed))
	}
	log.Printf("%s", line)
}

// showEncode prints the cheapest fragment sequence for one sentence.
func (h *InputHandler) showEncode(sentence string) {
	start := time.Now()
	fragments, err := h.engine.Shortest(sentence)
	elapsed := time.Since(start)
	log.Debugf("Took [ %v ] for %q", elapsed, sentence)

	if err != nil {
		log.Errorf("%v", err)
		return
	}
	if len(fragments) == 0 {
		log.Warnf("Nothing to type for %q", sentence)
		return
	}

	shown := make([]string, len(fragments))
	for i, f := range fragments {
		shown[i] = fragStyle.Render(displayFragment(f))
	}
	keystrokes := strings.Join(fragments, "")

	line := fmt.Sprintf("%s  %s",
		strings.Join(shown, dimStyle.Render("|")),
		dimStyle.Render(fmt.Sprintf("%d keystrokes", utf8.RuneCountInString(keystrokes))))
	if h.showTiming {
		line += " " + dimStyle.Render(fmt.Sprintf("(%v)", elapsed))
	}
	log.Printf("%s", line)
	log.Debugf("raw: %q", keystrokes)
}

// displayFragment makes selector spaces visible in rendered fragments.
func displayFragment(f string) string {
	return strings.ReplaceAll(f, " ", "␣")
}
