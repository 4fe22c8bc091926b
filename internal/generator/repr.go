package generator

import (
	"github.com/toyz/thinobj/internal/templates"
)

// reprStage renders the representation type. Extensible interfaces route
// every slot through named thunks and an exported table builder so that
// extensions can embed the table; all others fill the slots directly.
func reprStage(b *build) (string, error) {
	ctx := b.ctx
	data := templates.ReprData{
		Name:        ctx.ReprName,
		Interface:   ctx.InterfaceName,
		Vtable:      ctx.VtableName,
		Tables:      b.names.Tables,
		Inline:      ctx.Config.InlineVtable,
		StoreLayout: ctx.Config.StoreLayout,
		Slots:       slots(ctx.Methods()),
		Thunk:       ctx.Extensible(),
		Builder:     b.names.Builder,
		ThunkPrefix: b.names.ThunkPrefix,
	}
	if ctx.Super != nil {
		data.SuperVtable = ctx.Super.VtableName()
		data.SuperBuilder = ctx.Super.BuilderName()
	}

	out, err := b.render("repr", data)
	if err != nil || !data.Thunk {
		return out, err
	}
	thunks, err := b.render("thunks", data)
	if err != nil {
		return "", err
	}
	return out + "\n" + thunks, nil
}
