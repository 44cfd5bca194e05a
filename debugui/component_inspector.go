package debugui

import (
	"fmt"
	"reflect"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/korp/ecs"
	"github.com/plus3/korp/game"
)

// inspectedField is a read-only rendering of a component value. Leaves carry
// Value; structs carry Fields.
type inspectedField struct {
	Name   string
	Value  string
	Fields []inspectedField
}

type ComponentInspectorWindow struct {
	components []inspectedField
}

func NewComponentInspectorWindow() *ComponentInspectorWindow {
	return &ComponentInspectorWindow{}
}

func (ci *ComponentInspectorWindow) Render(tables game.Tables, selected *ecs.Entity) {
	imgui.SetNextWindowPosV(imgui.NewVec2(870, 380), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(400, 300), imgui.CondOnce)
	if !imgui.BeginV("Component Inspector", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	if selected == nil {
		imgui.Text("No entity selected")
		imgui.End()
		return
	}

	imgui.Text(fmt.Sprintf("Entity: %s", selected))
	imgui.Separator()

	ci.components = inspectEntity(ci.components[:0], tables, *selected)
	for _, component := range ci.components {
		if imgui.TreeNodeStr(component.Name) {
			renderFields(component.Fields)
			imgui.TreePop()
		}
	}

	imgui.End()
}

func renderFields(fields []inspectedField) {
	for _, field := range fields {
		if field.Fields == nil {
			imgui.Text(fmt.Sprintf("%s: %s", field.Name, field.Value))
			continue
		}
		if imgui.TreeNodeStr(field.Name) {
			renderFields(field.Fields)
			imgui.TreePop()
		}
	}
}

// inspectEntity appends one entry per component e has.
func inspectEntity(dst []inspectedField, tables game.Tables, e ecs.Entity) []inspectedField {
	if body, ok := tables.Bodies.Get(e); ok {
		dst = append(dst, inspect("Body", reflect.ValueOf(body)))
	}
	if motion, ok := tables.Motions.Get(e); ok {
		dst = append(dst, inspect("Motion", reflect.ValueOf(motion)))
	}
	if hitbox, ok := tables.Hitboxes.Get(e); ok {
		dst = append(dst, inspect("Hitbox", reflect.ValueOf(hitbox)))
	}
	return dst
}

func inspect(name string, val reflect.Value) inspectedField {
	if !val.IsValid() {
		return inspectedField{Name: name, Value: "<invalid>"}
	}
	if val.Kind() == reflect.Ptr {
		if val.IsNil() {
			return inspectedField{Name: name, Value: "nil"}
		}
		val = val.Elem()
	}

	if val.Type().Implements(stringerType) {
		return inspectedField{Name: name, Value: val.Interface().(fmt.Stringer).String()}
	}

	switch val.Kind() {
	case reflect.Struct:
		field := inspectedField{Name: name, Fields: []inspectedField{}}
		for _, info := range globalReflectionCache.GetFields(val.Type()) {
			field.Fields = append(field.Fields, inspect(info.Name, val.Field(info.Index)))
		}
		return field

	case reflect.Slice:
		return inspectedField{Name: name, Value: fmt.Sprintf("[%d items]", val.Len())}

	case reflect.Map:
		return inspectedField{Name: name, Value: fmt.Sprintf("map[%d items]", val.Len())}

	default:
		return inspectedField{Name: name, Value: fmt.Sprintf("%v", val.Interface())}
	}
}
