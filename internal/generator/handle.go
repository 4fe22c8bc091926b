package generator

import (
	"github.com/toyz/thinobj/internal/errors"
	"github.com/toyz/thinobj/internal/models"
	"github.com/toyz/thinobj/internal/templates"
)

// rejectedDecorations maps attributes the handle may not carry to the reason
var rejectedDecorations = map[string]string{
	"derive": "duplication behavior would copy the owning pointer",
	"repr":   "the handle layout is fixed to a single pointer",
	"layout": "the handle layout is fixed to a single pointer",
}

// checkDecorations rejects handle attributes that conflict with its layout
// or ownership
func checkDecorations(cfg models.Config) error {
	for _, a := range cfg.TraitObject.Attrs {
		if reason, ok := rejectedDecorations[a.Name]; ok {
			return errors.DecorationRejected(a.Pos, a.Name, reason)
		}
	}
	return nil
}

// forwardCall renders the call a handle method makes for m
func forwardCall(ctx *models.BuildContext, names models.Names, m models.MethodDescriptor) string {
	if ctx.Specific() {
		return "b.Vtable()." + m.Name + "(" + m.SlotCallArgs("b.ptr") + ")"
	}
	return names.Blanket(m.Name) + "(" + prepend("b", m.CallArgs()) + ")"
}

// superCall renders the call forwarding a super method from receiver recv
func superCall(super *models.SuperRef, recv, dataPtr string, m models.MethodDescriptor) string {
	if super.PossibleSuper {
		return super.BlanketName(m.Name) + "(" + prepend(recv, m.CallArgs()) + ")"
	}
	return recv + "." + super.VtableMethod() + "()." + m.Name + "(" + m.SlotCallArgs(dataPtr) + ")"
}

func forward(m models.MethodDescriptor, call string) templates.ForwardData {
	doc := append([]string(nil), m.Doc...)
	if m.Unsafe {
		if len(doc) > 0 {
			doc = append(doc, "//")
		}
		doc = append(doc, "// Unsafe: callers uphold the contract of the implementation.")
	}
	return templates.ForwardData{
		Name:       m.Name,
		Doc:        doc,
		Params:     m.ParamList(),
		Results:    m.ResultList(),
		HasResults: m.HasResults(),
		Call:       call,
		Unsafe:     m.Unsafe,
	}
}

// superMethods returns the super methods the interface does not redeclare
func superMethods(ctx *models.BuildContext) []models.MethodDescriptor {
	if ctx.Super == nil {
		return nil
	}
	own := make(map[string]bool)
	for _, m := range ctx.Methods() {
		own[m.Name] = true
	}
	var out []models.MethodDescriptor
	for _, m := range ctx.Super.Methods {
		if !own[m.Name] {
			out = append(out, m)
		}
	}
	return out
}

// handleMarkers lists the marker methods of the handle: its own, the
// super's and the lifetime constraint
func handleMarkers(ctx *models.BuildContext) []templates.MarkerData {
	var out []templates.MarkerData
	seen := make(map[string]bool)
	add := func(m models.MarkerTrait) {
		if seen[m.Name] {
			return
		}
		seen[m.Name] = true
		out = append(out, templates.MarkerData{Method: m.MethodName(), Path: m.Path, Unsafe: m.Unsafe})
	}
	for _, m := range ctx.Markers {
		add(m)
	}
	if ctx.Super != nil {
		for _, m := range ctx.Super.Markers {
			add(m)
		}
	}
	if ctx.Static {
		add(models.MarkerTrait{Path: runtimeName + "." + StaticBound, Name: StaticBound})
	}
	return out
}

// handleStage renders the boxed handle, its marker methods and, for
// extensible interfaces, the capability interface and adapter
func handleStage(b *build) (handle, markers string, err error) {
	ctx := b.ctx
	names := b.names
	methods := ctx.Methods()

	data := templates.HandleData{
		Name:        ctx.HandleName,
		Interface:   ctx.InterfaceName,
		Vtable:      ctx.VtableName,
		Repr:        ctx.ReprName,
		Constructor: names.Constructor,
		FromRaw:     names.FromRaw,
		Attrs:       attrStrings(ctx.Config.TraitObject.Attrs),
		Lifetime:    ctx.NeedsLifetime,
		Inline:      ctx.Config.InlineVtable,
		DataPtr:     ctx.Extensible() || ctx.Super != nil,
		Assert:      len(b.dropped) == 0 && (ctx.Super == nil || ctx.Super.Resolved),
	}
	for _, m := range methods {
		data.Methods = append(data.Methods, forward(m, forwardCall(ctx, names, m)))
	}

	handle, err = b.render("handle", data)
	if err != nil {
		return "", "", err
	}

	markerData := handleMarkers(ctx)
	if len(markerData) > 0 {
		md := templates.MarkersData{Handle: ctx.HandleName, Markers: markerData}
		if md.HasUnsafe() {
			md.UnsafeMarkers = ctx.HandleName + "UnsafeMarkers"
		}
		if markers, err = b.render("markers", md); err != nil {
			return "", "", err
		}
	}

	if !ctx.Extensible() {
		return handle, markers, nil
	}
	capability, err := capabilityStage(b, methods, markerData)
	if err != nil {
		return "", "", err
	}
	return handle + "\n" + capability, markers, nil
}

// capabilityStage renders the capability interface, its generic forwarding
// functions and the adapter
func capabilityStage(b *build, methods []models.MethodDescriptor, markers []templates.MarkerData) (string, error) {
	ctx := b.ctx
	names := b.names
	data := templates.CapabilityData{
		Interface:    ctx.InterfaceName,
		Handle:       ctx.HandleName,
		Vtable:       ctx.VtableName,
		Capability:   names.Capability,
		VtableMethod: names.VtableMethod,
		Adapter:      names.Adapter,
		Markers:      markers,
	}
	for _, m := range methods {
		data.Funcs = append(data.Funcs, templates.BlanketFuncData{
			Name:       names.Blanket(m.Name),
			Method:     m.Name,
			Params:     m.ParamList(),
			Results:    m.ResultList(),
			HasResults: m.HasResults(),
			SlotCall:   m.SlotCallArgs("t.DataPtr()"),
			Unsafe:     m.Unsafe,
		})
		call := names.Blanket(m.Name) + "(" + prepend("a.Impl", m.CallArgs()) + ")"
		data.AdapterMethods = append(data.AdapterMethods, forward(m, call))
	}

	if super := ctx.Super; super != nil {
		data.SuperAccess = &templates.SuperAccessData{
			Capability:   super.CapabilityName(),
			VtableMethod: super.VtableMethod(),
			Vtable:       super.VtableName(),
			Accessor:     names.SuperOf,
		}
		for _, m := range superMethods(ctx) {
			data.AdapterMethods = append(data.AdapterMethods, forward(m, superCall(super, "a", "a.DataPtr()", m)))
		}
	}
	return b.render("capability", data)
}

// extensionStage renders the accessors that let an extension handle stand
// in for its super interface
func extensionStage(b *build) (string, error) {
	ctx := b.ctx
	super := ctx.Super
	if super == nil {
		return "", nil
	}
	superHandle := super.Local().Handle

	data := templates.ExtensionData{
		Handle:       ctx.HandleName,
		Interface:    ctx.InterfaceName,
		Super:        super.Qualify(super.Name),
		SuperVtable:  super.VtableName(),
		SuperHandle:  super.HandleName(),
		SuperFromRaw: super.FromRawName(),
		VtableMethod: super.VtableMethod(),
		AsSuper:      "As" + models.Capitalize(superHandle),
		IntoSuper:    "Into" + models.Capitalize(superHandle),
		Blanket:      ctx.Extensible(),
		Capability:   b.names.Capability,
		SelfAccessor: b.names.VtableMethod,
		SuperOf:      b.names.SuperOf,
	}
	for _, m := range superMethods(ctx) {
		data.SuperMethods = append(data.SuperMethods, forward(m, superCall(super, "b", "b.ptr", m)))
	}
	return b.render("extension", data)
}

func prepend(head, list string) string {
	if list == "" {
		return head
	}
	return head + ", " + list
}
