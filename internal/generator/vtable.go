package generator

import (
	"github.com/toyz/thinobj/internal/models"
	"github.com/toyz/thinobj/internal/templates"
	"github.com/toyz/thinobj/pkg/thin"
)

// slots converts methods into table slots, in declaration order
func slots(methods []models.MethodDescriptor) []templates.SlotData {
	out := make([]templates.SlotData, 0, len(methods))
	for _, m := range methods {
		out = append(out, templates.SlotData{
			Name:       m.Name,
			Doc:        m.Doc,
			Type:       m.SlotType(),
			Tag:        m.Tag(),
			Params:     m.ParamList(),
			Call:       m.CallArgs(),
			Results:    m.ResultList(),
			HasResults: m.HasResults(),
			Receiver:   m.Receiver().Kind.String(),
			Lifetimes:  m.Lifetimes,
			Unsafe:     m.Unsafe,
			ABI:        m.ABI,
		})
	}
	return out
}

// schemaID fingerprints everything that makes up the table layout
func schemaID(ctx *models.BuildContext, methods []models.MethodDescriptor) string {
	var fields []string
	if ctx.Super != nil {
		fields = append(fields, "super="+ctx.Super.VtableName())
	}
	if ctx.Config.StoreLayout {
		fields = append(fields, "size uintptr", "align uintptr")
	}
	for _, m := range methods {
		fields = append(fields, m.EraseReceiver().Signature())
	}
	if ctx.Super == nil {
		drop := "drop"
		if ctx.Config.DropABI != "" {
			drop += " abi=" + ctx.Config.DropABI
		}
		fields = append(fields, drop)
	}
	if ctx.Config.InlineVtable {
		fields = append(fields, "inline")
	}
	return thin.Fingerprint(ctx.VtableName, fields...).String()
}

// vtableStage renders the dispatch table
func vtableStage(b *build) (string, string, error) {
	ctx := b.ctx
	methods := ctx.Methods()
	data := templates.VtableData{
		Name:        ctx.VtableName,
		Interface:   ctx.InterfaceName,
		Attrs:       attrStrings(ctx.Config.Vtable.Attrs),
		StoreLayout: ctx.Config.StoreLayout,
		Slots:       slots(methods),
		SchemaID:    schemaID(ctx, methods),
	}
	if ctx.Super != nil {
		data.Super = ctx.Super.VtableName()
	}
	if ctx.Config.DropABI != "" {
		data.DropTag = "`thin:\"abi=" + ctx.Config.DropABI + "\"`"
	}

	out, err := b.render("vtable", data)
	return out, data.SchemaID, err
}

func attrStrings(attrs []models.Attribute) []string {
	var out []string
	for _, a := range attrs {
		out = append(out, a.String())
	}
	return out
}
