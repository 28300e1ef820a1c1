package luascript

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Shopify/go-lua"

	"github.com/OtherAytay/IFR/internal/ifr/scenario"
)

// LoadFile runs the script at path and compiles the scenario it returns.
// An untitled scenario is named after the file.
func LoadFile(path string) (*scenario.Scenario, error) {
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return load(name, func(state *lua.State) error {
		return lua.LoadFile(state, path, "")
	})
}

// LoadString runs src as a script named name and compiles the scenario it
// returns.
func LoadString(name, src string) (*scenario.Scenario, error) {
	return load(name, func(state *lua.State) error {
		return lua.LoadBuffer(state, src, name, "")
	})
}

func load(name string, chunk func(*lua.State) error) (*scenario.Scenario, error) {
	state := lua.NewState()
	lua.OpenLibraries(state)

	registerLuaTypes(state)

	if err := chunk(state); err != nil {
		return nil, fmt.Errorf("load lua: %w", err)
	}
	if err := state.ProtectedCall(0, 1, 0); err != nil {
		return nil, fmt.Errorf("run lua: %w", err)
	}

	if state.TypeOf(-1) != lua.TypeUserData {
		state.Pop(1)
		return nil, scriptError(name, "script must return the IFR scenario")
	}
	ud := state.ToUserData(-1)
	state.Pop(1)
	doc, ok := ud.(*document)
	if !ok || doc == nil {
		return nil, scriptError(name, "script returned an invalid scenario")
	}
	if strings.TrimSpace(doc.title) == "" {
		doc.title = name
	}

	scn, err := compile(name, doc)
	if err != nil {
		return nil, err
	}
	if err := scn.Validate(); err != nil {
		return nil, fmt.Errorf("validate %s: %w", name, err)
	}
	return scn, nil
}
