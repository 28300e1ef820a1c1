package domain

import (
	"testing"

	"github.com/OtherAytay/IFR/internal/core/dice"
	"github.com/OtherAytay/IFR/internal/ifr/luascript"
	"github.com/OtherAytay/IFR/internal/ifr/play"
	"github.com/OtherAytay/IFR/internal/ifr/scenario"
)

const cellarScript = `
local ifr = IFR.new("Cellar")
ifr:variable({name = "coins", type = "number", default = 0, bounds = {0, 10}})
ifr:variable({name = "lamp", type = "boolean"})

local cellar = ifr:stage({title = "Cellar", description = "Damp stone."})
cellar:event({title = "Crate", max_roll = 2})
  :task({min = 1, max = 1, title = "Empty", description = "Nothing on a {{ roll }}.", fail = "reroll"})
  :task({min = 2, max = 2, title = "Coins", description = "Coins on a {{ roll }}, {{ coins }} so far.",
         pass = {variable = "coins", op = "add", target = 3}})
cellar:progress({next = "Street"})

local street = ifr:stage({title = "Street"})
street:event({title = "Walk", max_roll = 1}):task({title = "Home", description = "Home again."})
return ifr
`

func cellarScenario(t *testing.T) *scenario.Scenario {
	t.Helper()
	scn, err := luascript.LoadString("cellar", cellarScript)
	if err != nil {
		t.Fatalf("LoadString() error = %v", err)
	}
	return scn
}

func cellarRegistry(t *testing.T, faces ...int) *Registry {
	t.Helper()
	return NewRegistry(cellarScenario(t), play.WithSource(dice.NewFaces(faces...)))
}
