package glimmer

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MockResource1 struct {
	name string
}
type MockResource2 struct {
	name string
}

func TestApp_addResources(t *testing.T) {
	app := &App{
		resources: make(map[reflect.Type]any),
	}

	resource1 := &MockResource1{name: "Resource1"}
	app.addResources(resource1)

	assert.Contains(t, app.resources, reflect.TypeOf(resource1).Elem(), "Resource1 should be in resources map.")

	// Expect panic when trying to add the same type of resource again
	require.PanicsWithValue(t, fmt.Sprintf("%s is already in resources", reflect.TypeOf(resource1)), func() {
		app.addResources(resource1)
	})

	resource2 := &MockResource2{name: "Resource2"}
	app.addResources(resource2)

	assert.Contains(t, app.resources, reflect.TypeOf(resource2).Elem(), "Resource2 should be in resources map.")
}

func TestApp_StepRunsStagesInOrder(t *testing.T) {
	app := NewAppBuilder().Build()

	var order []string
	app.UseSystem(
		System(func(cmd *Commands) { order = append(order, "finale") }).InStage(Finale),
	).UseSystem(
		System(func(cmd *Commands) { order = append(order, "prelude") }).InStage(Prelude),
	).UseSystem(
		System(func(cmd *Commands) { order = append(order, "update") }).InStage(Update),
	)

	app.Step()

	require.Equal(t, []string{"prelude", "update", "finale"}, order)

	// A second Step runs the same schedule again.
	app.Step()
	assert.Len(t, order, 6)
}

func TestApp_SystemResourceInjection(t *testing.T) {
	app := NewAppBuilder().Build()
	app.addResources(&MockResource1{name: "injected"})

	var seen string
	app.UseSystem(System(func(r *MockResource1) { seen = r.name }))

	app.Step()
	assert.Equal(t, "injected", seen)
}

func TestApp_SystemMissingResourcePanics(t *testing.T) {
	app := NewAppBuilder().Build()
	app.UseSystem(System(func(r *MockResource2) {}))

	require.Panics(t, func() { app.Step() })
}

func TestApp_CommandsFlushAtStageBoundary(t *testing.T) {
	type marker struct{ v int }

	app := NewAppBuilder().Build()

	app.UseSystem(
		System(func(cmd *Commands) {
			cmd.AddEntity(&marker{v: 1})
		}).InStage(PreUpdate),
	).UseSystem(
		System(func(cmd *Commands) {
			count := 0
			MakeQuery1[marker](cmd).Map(func(id EntityId, m *marker) bool {
				count++
				return true
			})
			assert.Equal(t, 1, count, "entity added in PreUpdate should be visible by Update")
		}).InStage(Update),
	)

	app.Step()
}

func TestApp_UnknownStagePanics(t *testing.T) {
	app := NewAppBuilder().Build()
	require.Panics(t, func() {
		app.UseSystem(System(func(cmd *Commands) {}).InStage(Stage{Name: "Nope"}))
	})
}

func TestApp_UseStageInsertsRelative(t *testing.T) {
	app := NewAppBuilder().Build()
	custom := Stage{Name: "Detect"}
	app.UseStage(custom, BeforeStage(PreUpdate))

	var order []string
	app.UseSystem(
		System(func(cmd *Commands) { order = append(order, "detect") }).InStage(custom),
	).UseSystem(
		System(func(cmd *Commands) { order = append(order, "preupdate") }).InStage(PreUpdate),
	)

	app.Step()
	require.Equal(t, []string{"detect", "preupdate"}, order)
}

func TestApp_LoggerFallback(t *testing.T) {
	app := NewAppBuilder().Build()
	assert.NotNil(t, app.Logger(), "Logger should fall back to a nop logger")

	app.addResources(NewDefaultLogger("test", false))
	_, isNop := app.Logger().(*nopLogger)
	assert.False(t, isNop, "Installed logger should be returned")
}
