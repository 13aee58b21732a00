package js

import (
	"strconv"

	"recast/internal/emit"
	"recast/internal/model"
)

// constructors renders instance constructors and the static constructor.
// One instance constructor becomes the class constructor. Several become
// $init<arity> methods dispatched on the argument count, so overloads must
// differ in parameter count.
func (m *Map) constructors(ctx *emit.Context, b *body, ctors []*model.Constructor, derived bool) error {
	var instance []*model.Constructor
	for _, c := range ctors {
		if !c.Modifiers.Has(model.FlagStatic) {
			instance = append(instance, c)
			continue
		}
		b.next(false)
		m.comments(ctx, c)
		w(ctx, "static")
		if err := m.ctorBody(ctx, c, nil); err != nil {
			return err
		}
	}
	switch len(instance) {
	case 0:
		return nil
	case 1:
		c := instance[0]
		if c.Initializer != nil && c.Initializer.Keyword == "this" {
			return ctx.Unsupported(c, "constructor calling itself")
		}
		b.next(false)
		m.comments(ctx, c)
		w(ctx, "constructor(")
		if err := list(ctx, c.Params); err != nil {
			return err
		}
		w(ctx, ")")
		return m.ctorBody(ctx, c, func() error {
			if !derived {
				return nil
			}
			w(ctx, "super(")
			if c.Initializer != nil && c.Initializer.Keyword == "base" {
				if err := args(ctx, c.Initializer.Args); err != nil {
					return err
				}
			}
			w(ctx, ");")
			nl(ctx)
			return nil
		})
	}
	return m.overloadedConstructors(ctx, b, instance, derived)
}

// ctorBody renders a constructor body, writing prologue first.
func (m *Map) ctorBody(ctx *emit.Context, c *model.Constructor, prologue func() error) error {
	begin(ctx)
	if prologue != nil {
		if err := prologue(); err != nil {
			return err
		}
	}
	switch {
	case c.Body != nil:
		if err := m.stmts(ctx, c.Body.Statements); err != nil {
			return err
		}
	case c.Expression != nil:
		if err := ctx.Visit(c.Expression); err != nil {
			return err
		}
		w(ctx, ";")
	}
	end(ctx)
	return nil
}

func initName(c *model.Constructor) string {
	if a := arity(c.Params); a >= 0 {
		return "$init" + strconv.Itoa(a)
	}
	return "$initn"
}

func (m *Map) overloadedConstructors(ctx *emit.Context, b *body, ctors []*model.Constructor, derived bool) error {
	byArity := make(map[int]*model.Constructor, len(ctors))
	for _, c := range ctors {
		a := arity(c.Params)
		if byArity[a] != nil {
			return ctx.Unsupported(c, "constructor overloads with the same parameter count")
		}
		byArity[a] = c
	}
	b.next(false)
	w(ctx, "constructor(...args)")
	begin(ctx)
	w(ctx, "switch (args.length)")
	begin(ctx)
	for _, c := range ctors {
		if a := arity(c.Params); a >= 0 {
			w(ctx, "case "+strconv.Itoa(a)+":")
		} else {
			w(ctx, "default:")
		}
		nl(ctx)
		ctx.Buf.Open()
		if derived {
			w(ctx, "super(")
			if err := m.superArgs(ctx, byArity, c, func() { w(ctx, "...args") }, 0); err != nil {
				return err
			}
			w(ctx, ");")
			nl(ctx)
		}
		w(ctx, "this."+initName(c)+"(...args);")
		nl(ctx)
		w(ctx, "break;")
		nl(ctx)
		ctx.Buf.Close()
	}
	end(ctx)
	end(ctx)
	for _, c := range ctors {
		b.next(false)
		m.comments(ctx, c)
		w(ctx, initName(c)+"(")
		if err := list(ctx, c.Params); err != nil {
			return err
		}
		w(ctx, ")")
		err := m.ctorBody(ctx, c, func() error {
			init := c.Initializer
			if init == nil || init.Keyword != "this" {
				return nil
			}
			target := byArity[len(init.Args)]
			if target == nil {
				return ctx.Unsupported(c, "constructor initializer with "+strconv.Itoa(len(init.Args))+" arguments")
			}
			w(ctx, "this."+initName(target)+"(")
			if err := args(ctx, init.Args); err != nil {
				return err
			}
			w(ctx, ");")
			nl(ctx)
			return nil
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// superArgs writes the arguments constructor c passes to the base
// constructor, given the writer of its own argument spread. The parameters
// of c are rebound by an arrow function; a this(...) initializer chains
// through the constructor it calls.
func (m *Map) superArgs(ctx *emit.Context, byArity map[int]*model.Constructor, c *model.Constructor, spread func(), depth int) error {
	init := c.Initializer
	if init == nil || (len(init.Args) == 0 && init.Keyword == "base") {
		return nil
	}
	if depth > len(byArity) {
		return ctx.Unsupported(c, "constructor initializer cycle")
	}
	rebind := func() error {
		w(ctx, "...((")
		if err := list(ctx, c.Params); err != nil {
			return err
		}
		w(ctx, ") => [")
		if err := args(ctx, init.Args); err != nil {
			return err
		}
		w(ctx, "])(")
		spread()
		w(ctx, ")")
		return nil
	}
	if init.Keyword == "base" {
		return rebind()
	}
	target := byArity[len(init.Args)]
	if target == nil {
		return ctx.Unsupported(c, "constructor initializer with "+strconv.Itoa(len(init.Args))+" arguments")
	}
	var err error
	chained := func() {
		if e := rebind(); e != nil && err == nil {
			err = e
		}
	}
	if e := m.superArgs(ctx, byArity, target, chained, depth+1); e != nil {
		return e
	}
	return err
}

func (m *Map) VisitConstructor(ctx *emit.Context, n *model.Constructor) error {
	w(ctx, "constructor(")
	if err := list(ctx, n.Params); err != nil {
		return err
	}
	w(ctx, ")")
	return m.ctorBody(ctx, n, nil)
}
