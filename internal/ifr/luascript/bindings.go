package luascript

import (
	"github.com/Shopify/go-lua"
)

const (
	scenarioTypeName = "ifr.scenario"
	stageTypeName    = "ifr.stage"
	eventTypeName    = "ifr.event"
	groupTypeName    = "ifr.group"
)

func registerLuaTypes(state *lua.State) {
	registerType(state, scenarioTypeName, scenarioMethods)
	registerType(state, stageTypeName, stageMethods)
	registerType(state, eventTypeName, eventMethods)
	registerType(state, groupTypeName, groupMethods)
	registerConstructor(state)
}

func registerType(state *lua.State, name string, methods []lua.RegistryFunction) {
	lua.NewMetaTable(state, name)
	state.NewTable()
	lua.SetFunctions(state, methods, 0)
	state.SetField(-2, "__index")
	state.Pop(1)
}

func registerConstructor(state *lua.State) {
	state.NewTable()
	lua.SetFunctions(state, scenarioConstructor, 0)
	state.SetGlobal("IFR")
}

var scenarioConstructor = []lua.RegistryFunction{
	{Name: "new", Function: scenarioNew},
}

func scenarioNew(state *lua.State) int {
	title := lua.OptString(state, 1, "")
	state.PushUserData(&document{title: title})
	lua.SetMetaTableNamed(state, scenarioTypeName)
	return 1
}

var scenarioMethods = []lua.RegistryFunction{
	{Name: "link", Function: scenarioLink},
	{Name: "image", Function: scenarioImage},
	{Name: "variable", Function: scenarioVariable},
	{Name: "stage", Function: scenarioStage},
}

func scenarioLink(state *lua.State) int {
	doc := checkDocument(state)
	doc.link = lua.CheckString(state, 2)
	state.PushValue(1)
	return 1
}

func scenarioImage(state *lua.State) int {
	doc := checkDocument(state)
	doc.image = lua.CheckString(state, 2)
	state.PushValue(1)
	return 1
}

func scenarioVariable(state *lua.State) int {
	doc := checkDocument(state)
	lua.CheckType(state, 2, lua.TypeTable)
	doc.variables = append(doc.variables, tableToMap(state, 2))
	state.PushValue(1)
	return 1
}

func scenarioStage(state *lua.State) int {
	doc := checkDocument(state)
	lua.CheckType(state, 2, lua.TypeTable)
	stage := &stageDoc{args: tableToMap(state, 2)}
	doc.stages = append(doc.stages, stage)
	state.PushUserData(stage)
	lua.SetMetaTableNamed(state, stageTypeName)
	return 1
}

var stageMethods = []lua.RegistryFunction{
	{Name: "event", Function: stageEvent},
	{Name: "group", Function: stageGroup},
	{Name: "progress", Function: stageProgress},
}

func stageEvent(state *lua.State) int {
	stage := checkStage(state)
	lua.CheckType(state, 2, lua.TypeTable)
	event := &eventDoc{args: tableToMap(state, 2)}
	stage.spaces = append(stage.spaces, spaceDoc{event: event})
	state.PushUserData(event)
	lua.SetMetaTableNamed(state, eventTypeName)
	return 1
}

func stageGroup(state *lua.State) int {
	stage := checkStage(state)
	group := &groupDoc{args: optionalTable(state, 2)}
	stage.spaces = append(stage.spaces, spaceDoc{group: group})
	state.PushUserData(group)
	lua.SetMetaTableNamed(state, groupTypeName)
	return 1
}

func stageProgress(state *lua.State) int {
	stage := checkStage(state)
	lua.CheckType(state, 2, lua.TypeTable)
	stage.progressions = append(stage.progressions, tableToMap(state, 2))
	state.PushValue(1)
	return 1
}

var eventMethods = []lua.RegistryFunction{
	{Name: "task", Function: eventTask},
}

func eventTask(state *lua.State) int {
	ud := lua.CheckUserData(state, 1, eventTypeName)
	event, ok := ud.(*eventDoc)
	if !ok || event == nil {
		lua.ArgumentError(state, 1, "event expected")
		return 0
	}
	lua.CheckType(state, 2, lua.TypeTable)
	event.tasks = append(event.tasks, tableToMap(state, 2))
	state.PushValue(1)
	return 1
}

var groupMethods = []lua.RegistryFunction{
	{Name: "event", Function: groupEvent},
}

func groupEvent(state *lua.State) int {
	ud := lua.CheckUserData(state, 1, groupTypeName)
	group, ok := ud.(*groupDoc)
	if !ok || group == nil {
		lua.ArgumentError(state, 1, "group expected")
		return 0
	}
	lua.CheckType(state, 2, lua.TypeTable)
	event := &eventDoc{args: tableToMap(state, 2)}
	group.events = append(group.events, event)
	state.PushUserData(event)
	lua.SetMetaTableNamed(state, eventTypeName)
	return 1
}

func checkDocument(state *lua.State) *document {
	ud := lua.CheckUserData(state, 1, scenarioTypeName)
	if doc, ok := ud.(*document); ok && doc != nil {
		return doc
	}
	lua.ArgumentError(state, 1, "scenario expected")
	return nil
}

func checkStage(state *lua.State) *stageDoc {
	ud := lua.CheckUserData(state, 1, stageTypeName)
	if stage, ok := ud.(*stageDoc); ok && stage != nil {
		return stage
	}
	lua.ArgumentError(state, 1, "stage expected")
	return nil
}
