package js

import (
	"recast/internal/emit"
	"recast/internal/model"
)

// members renames instance members of library types. A name starting with
// '[' replaces the member access with an index.
var members = map[string]string{
	"System.String.Length":     "length",
	"System.String.Contains":   "includes",
	"System.String.StartsWith": "startsWith",
	"System.String.EndsWith":   "endsWith",
	"System.String.IndexOf":    "indexOf",
	"System.String.ToUpper":    "toUpperCase",
	"System.String.ToLower":    "toLowerCase",
	"System.String.Trim":       "trim",
	"System.String.Split":      "split",
	"System.String.Replace":    "replaceAll",
	"System.Array.Length":      "length",
	"System.Exception.Message": "message",

	"System.Exception.InnerException": "cause",

	"System.Collections.Generic.List.Count":    "length",
	"System.Collections.Generic.List.Add":      "push",
	"System.Collections.Generic.List.Contains": "includes",
	"System.Collections.Generic.List.IndexOf":  "indexOf",
	"System.Collections.Generic.List.ToArray":  "slice",

	"System.Collections.Generic.Dictionary.Count":       "size",
	"System.Collections.Generic.Dictionary.Add":         "set",
	"System.Collections.Generic.Dictionary.ContainsKey": "has",
	"System.Collections.Generic.Dictionary.Remove":      "delete",
	"System.Collections.Generic.Dictionary.Clear":       "clear",

	"System.Collections.Generic.HashSet.Count":    "size",
	"System.Collections.Generic.HashSet.Add":      "add",
	"System.Collections.Generic.HashSet.Contains": "has",
	"System.Collections.Generic.HashSet.Remove":   "delete",
	"System.Collections.Generic.HashSet.Clear":    "clear",

	"System.Collections.Generic.KeyValuePair.Key":   "[0]",
	"System.Collections.Generic.KeyValuePair.Value": "[1]",
}

// statics replace static members of library types outright.
var statics = map[string]string{
	"System.Console.WriteLine": "console.log",
	"System.Console.Write":     "process.stdout.write",
	"System.Math.PI":           "Math.PI",
	"System.Math.E":            "Math.E",
	"System.Math.Abs":          "Math.abs",
	"System.Math.Max":          "Math.max",
	"System.Math.Min":          "Math.min",
	"System.Math.Sqrt":         "Math.sqrt",
	"System.Math.Pow":          "Math.pow",
	"System.Math.Floor":        "Math.floor",
	"System.Math.Ceiling":      "Math.ceil",
	"System.Math.Round":        "Math.round",
	"System.Math.Sin":          "Math.sin",
	"System.Math.Cos":          "Math.cos",
	"System.Math.Tan":          "Math.tan",
	"System.Math.Log":          "Math.log",
	"System.Math.Exp":          "Math.exp",
	"System.Int32.MaxValue":    "2147483647",
	"System.Int32.MinValue":    "-2147483648",
	"System.Int64.MaxValue":    "Number.MAX_SAFE_INTEGER",
	"System.Int32.Parse":       "Number.parseInt",
	"System.Int64.Parse":       "Number.parseInt",
	"System.Double.Parse":      "Number.parseFloat",
	"System.Single.Parse":      "Number.parseFloat",
	"System.Double.NaN":        "NaN",
	"System.Double.IsNaN":      "Number.isNaN",
	"System.String.Empty":      `""`,
}

// callFunc renders a whole invocation of a library method. recv is the
// receiver expression, nil for unqualified calls.
type callFunc func(m *Map, ctx *emit.Context, n *model.Invocation, recv model.Expr) error

// calls rewrite invocations whose shape changes in JavaScript.
var calls = map[string]callFunc{
	"System.String.IsNullOrEmpty": func(m *Map, ctx *emit.Context, n *model.Invocation, _ model.Expr) error {
		w(ctx, "!")
		return wrapped(ctx, arg(n, 0))
	},
	"System.String.Join": func(m *Map, ctx *emit.Context, n *model.Invocation, _ model.Expr) error {
		if len(n.Args) != 2 {
			return ctx.Unsupported(n, "string.Join with separate values")
		}
		if err := wrapped(ctx, arg(n, 1)); err != nil {
			return err
		}
		w(ctx, ".join(")
		if err := ctx.Visit(arg(n, 0)); err != nil {
			return err
		}
		w(ctx, ")")
		return nil
	},
	"System.String.Format": func(m *Map, ctx *emit.Context, n *model.Invocation, _ model.Expr) error {
		return ctx.Unsupported(n, "composite format string")
	},
	"System.String.Substring": func(m *Map, ctx *emit.Context, n *model.Invocation, recv model.Expr) error {
		if len(n.Args) == 1 {
			return method(ctx, n, recv, "substring")
		}
		return method(ctx, n, recv, "substr")
	},
	"System.Object.ToString": func(m *Map, ctx *emit.Context, n *model.Invocation, recv model.Expr) error {
		w(ctx, "String(")
		if err := receiver(ctx, recv); err != nil {
			return err
		}
		w(ctx, ")")
		return nil
	},
	"System.Object.Equals": func(m *Map, ctx *emit.Context, n *model.Invocation, recv model.Expr) error {
		w(ctx, "(")
		if err := receiver(ctx, recv); err != nil {
			return err
		}
		w(ctx, " === ")
		if err := ctx.Visit(arg(n, 0)); err != nil {
			return err
		}
		w(ctx, ")")
		return nil
	},
	"System.Console.WriteLine": func(m *Map, ctx *emit.Context, n *model.Invocation, _ model.Expr) error {
		if len(n.Args) > 1 {
			return ctx.Unsupported(n, "composite format string")
		}
		w(ctx, "console.log(")
		if err := args(ctx, n.Args); err != nil {
			return err
		}
		w(ctx, ")")
		return nil
	},
	"System.Console.ReadLine": func(m *Map, ctx *emit.Context, n *model.Invocation, _ model.Expr) error {
		return ctx.Unsupported(n, "console input")
	},
	"System.Char.IsDigit":      regexpTest(`/\d/`),
	"System.Char.IsLetter":     regexpTest(`/\p{L}/u`),
	"System.Char.IsWhiteSpace": regexpTest(`/\s/`),
	"System.Char.ToUpper": func(m *Map, ctx *emit.Context, n *model.Invocation, _ model.Expr) error {
		return method(ctx, n, arg(n, 0), "toUpperCase")
	},
	"System.Char.ToLower": func(m *Map, ctx *emit.Context, n *model.Invocation, _ model.Expr) error {
		return method(ctx, n, arg(n, 0), "toLowerCase")
	},
	"System.Collections.Generic.List.Insert": func(m *Map, ctx *emit.Context, n *model.Invocation, recv model.Expr) error {
		if err := receiver(ctx, recv); err != nil {
			return err
		}
		w(ctx, ".splice(")
		if err := ctx.Visit(arg(n, 0)); err != nil {
			return err
		}
		w(ctx, ", 0, ")
		if err := ctx.Visit(arg(n, 1)); err != nil {
			return err
		}
		w(ctx, ")")
		return nil
	},
	"System.Collections.Generic.List.RemoveAt": func(m *Map, ctx *emit.Context, n *model.Invocation, recv model.Expr) error {
		if err := receiver(ctx, recv); err != nil {
			return err
		}
		w(ctx, ".splice(")
		if err := ctx.Visit(arg(n, 0)); err != nil {
			return err
		}
		w(ctx, ", 1)")
		return nil
	},
	"System.Collections.Generic.List.Clear": func(m *Map, ctx *emit.Context, n *model.Invocation, recv model.Expr) error {
		w(ctx, "(")
		if err := receiver(ctx, recv); err != nil {
			return err
		}
		w(ctx, ".length = 0)")
		return nil
	},
	"System.Threading.Tasks.Task.Delay": func(m *Map, ctx *emit.Context, n *model.Invocation, _ model.Expr) error {
		w(ctx, "new Promise((resolve) => setTimeout(resolve, ")
		if err := ctx.Visit(arg(n, 0)); err != nil {
			return err
		}
		w(ctx, "))")
		return nil
	},
}

func regexpTest(re string) callFunc {
	return func(m *Map, ctx *emit.Context, n *model.Invocation, _ model.Expr) error {
		w(ctx, re+".test(")
		if err := ctx.Visit(arg(n, 0)); err != nil {
			return err
		}
		w(ctx, ")")
		return nil
	}
}

// arg returns the value of the i-th argument, or nil.
func arg(n *model.Invocation, i int) model.Expr {
	if i >= len(n.Args) {
		return nil
	}
	return n.Args[i].Value
}

// receiver renders the object a call is made on; unqualified calls run on
// this.
func receiver(ctx *emit.Context, recv model.Expr) error {
	if recv == nil {
		w(ctx, "this")
		return nil
	}
	return wrapped(ctx, recv)
}

// method renders recv.name(args) with the arguments of n, minus a leading
// argument that became the receiver.
func method(ctx *emit.Context, n *model.Invocation, recv model.Expr, name string) error {
	if err := receiver(ctx, recv); err != nil {
		return err
	}
	w(ctx, "."+name+"(")
	rest := n.Args
	if len(rest) > 0 && rest[0].Value == recv {
		rest = rest[1:]
	}
	if err := args(ctx, rest); err != nil {
		return err
	}
	w(ctx, ")")
	return nil
}

func args(ctx *emit.Context, list []*model.Argument) error {
	return emit.VisitAll(ctx, list, func() { w(ctx, ", ") })
}

// wrapped renders e, parenthesised unless it is a primary expression.
func wrapped(ctx *emit.Context, e model.Expr) error {
	if primary(e) {
		return ctx.Visit(e)
	}
	w(ctx, "(")
	if err := ctx.Visit(e); err != nil {
		return err
	}
	w(ctx, ")")
	return nil
}

func primary(e model.Expr) bool {
	switch e := e.(type) {
	case *model.Identifier, *model.Paren, *model.MemberAccess, *model.ElementAccess,
		*model.Invocation, *model.This, *model.BaseExpr, *model.InterpolatedString,
		*model.Tuple, *model.TypeExpr, *model.ArrayCreation:
		return true
	case *model.Literal:
		return e.Lit != model.LitInt && e.Lit != model.LitReal
	}
	return false
}
