// Package luascript loads scenarios authored as Lua scripts.
//
// A script builds its scenario through the IFR global and returns it:
//
//	local ifr = IFR.new("The Crypt")
//	ifr:variable({name = "gold", type = "number", default = 0, bounds = {0, 50}})
//	local gate = ifr:stage({title = "Gate"})
//	gate:event({title = "Door", max_roll = 6})
//	    :task({min = 1, max = 6, title = "Open", pass = {variable = "gold", op = "add", target = 5}})
//	gate:progress({next = "Hall"})
//	return ifr
//
// Script calls only record declarations. The declarations are compiled into
// a scenario.Scenario once the script returns, so stages and sibling events
// may be referenced by title before they are declared.
package luascript
