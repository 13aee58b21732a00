package emit

import (
	"github.com/cockroachdb/errors"

	"recast/internal/model"
)

// Render runs the pre hooks, the main render of the script and the post
// hooks into ctx.Buf, and returns the buffer text.
func Render(ctx *Context) (string, error) {
	if ctx.Script == nil {
		return "", errors.New("emit: context has no script")
	}
	if s, ok := ctx.Map.(Starter); ok {
		if err := s.Start(ctx); err != nil {
			return "", err
		}
	}
	hooks := ctx.Map.Hooks()
	if err := runHooks(ctx, hooks.Pre); err != nil {
		return "", err
	}
	if err := ctx.Visit(ctx.Script); err != nil {
		return "", err
	}
	if err := runHooks(ctx, hooks.Post); err != nil {
		return "", err
	}
	return ctx.Buf.String(), nil
}

func runHooks(ctx *Context, hooks map[model.Kind]HookFunc) error {
	if len(hooks) == 0 {
		return nil
	}
	return WalkDecls(ctx, ctx.Script.Root, func(n model.Node) error {
		if fn := hooks[n.Kind()]; fn != nil {
			return fn(ctx, n)
		}
		return nil
	})
}

// WalkDecls calls fn in pre-order for every declaration the script renders:
// merged namespaces and partial types are visited at their primary site
// with the members of all their declarations, and not elsewhere. The
// anonymous script root is descended into but not passed to fn. The
// ancestor stack of ctx reflects the walk while fn runs.
func WalkDecls(ctx *Context, n model.Node, fn func(model.Node) error) error {
	if isNil(n) || !n.Kind().IsDecl() {
		return nil
	}
	if !ctx.IsPrimary(n) {
		return nil
	}
	ctx.stack = append(ctx.stack, n)
	defer func() { ctx.stack = ctx.stack[:len(ctx.stack)-1] }()

	if ns, ok := n.(*model.Namespace); !ok || !ns.IsRoot() {
		if err := fn(n); err != nil {
			return err
		}
	}
	switch n := n.(type) {
	case *model.Namespace, *model.Class, *model.Struct, *model.Interface:
		members, err := ctx.Members(n)
		if err != nil {
			return err
		}
		for _, m := range members.SourceOrder() {
			if err := WalkDecls(ctx, m, fn); err != nil {
				return err
			}
		}
	case *model.Enum:
		for _, m := range n.Members {
			if err := WalkDecls(ctx, m, fn); err != nil {
				return err
			}
		}
	}
	return nil
}

// SeparatorText renders the separator m writes before sourceID.
func SeparatorText(m ConversionMap, sourceID string) (string, error) {
	ctx := NewContext(m, nil, nil, nil)
	if err := m.Separator(ctx, sourceID); err != nil {
		return "", err
	}
	return ctx.Buf.String(), nil
}
