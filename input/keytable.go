package input

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/wheelie/config"
	"github.com/lixenwraith/wheelie/motion"
)

// Rune aliases for keys that can't be written as a single character
var runeAliases = map[string]rune{
	"space":     ' ',
	"backslash": '\\',
}

// keysByName is the reverse of tcell.KeyNames, lower-cased
var keysByName = func() map[string]tcell.Key {
	m := make(map[string]tcell.Key, len(tcell.KeyNames))
	for k, name := range tcell.KeyNames {
		m[strings.ToLower(name)] = k
	}
	return m
}()

// KeyTable maps keys to actions
type KeyTable struct {
	// Special keys (arrows, Enter, Esc, Ctrl+*)
	Keys map[tcell.Key]Action
	// Printable keys
	Runes map[rune]Action
}

// LoadKeyTable builds the table from the [keys] section
// Ctrl+C always quits
func LoadKeyTable(keys config.KeysSection) (*KeyTable, error) {
	kt := &KeyTable{
		Keys:  map[tcell.Key]Action{tcell.KeyCtrlC: ActionQuit},
		Runes: map[rune]Action{},
	}
	sections := []struct {
		action Action
		names  []string
	}{
		{ActionLeft, keys.Left},
		{ActionRight, keys.Right},
		{ActionAccelerate, keys.Accelerate},
		{ActionDecelerate, keys.Decelerate},
		{ActionPause, keys.Pause},
		{ActionRestart, keys.Restart},
		{ActionQuit, keys.Quit},
	}
	for _, s := range sections {
		for _, name := range s.names {
			if err := kt.bind(name, s.action); err != nil {
				return nil, fmt.Errorf("%w: [keys] %s: %w", motion.ErrConfiguration, s.action, err)
			}
		}
	}
	return kt, nil
}

// bind resolves a key name: single character, rune alias or tcell key name
func (kt *KeyTable) bind(name string, a Action) error {
	if r, ok := resolveRune(name); ok {
		if prev, taken := kt.Runes[r]; taken && prev != a {
			return fmt.Errorf("%q already bound to %s", name, prev)
		}
		kt.Runes[r] = a
		return nil
	}
	k, ok := keysByName[strings.ToLower(name)]
	if !ok {
		return fmt.Errorf("unknown key name %q", name)
	}
	if prev, taken := kt.Keys[k]; taken && prev != a {
		return fmt.Errorf("%q already bound to %s", name, prev)
	}
	kt.Keys[k] = a
	return nil
}

// resolveRune accepts single characters and named aliases
func resolveRune(s string) (rune, bool) {
	if r, ok := runeAliases[strings.ToLower(s)]; ok {
		return r, true
	}
	runes := []rune(s)
	if len(runes) == 1 {
		return runes[0], true
	}
	return 0, false
}

// Lookup returns the action bound to ev
func (kt *KeyTable) Lookup(ev *tcell.EventKey) Action {
	if ev.Key() == tcell.KeyRune {
		return kt.Runes[ev.Rune()]
	}
	return kt.Keys[ev.Key()]
}
