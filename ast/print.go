package ast

import (
	"fmt"
	"strconv"
	"strings"
)

const indentUnit = "  "

func indent(level int) string {
	return strings.Repeat(indentUnit, level)
}

// Dump renders c as canonical FIRRTL text. It is not required to be
// byte-identical to whatever text c was parsed from — only to re-parse
// to a Circuit that is structurally equal to c (spec §8 round-trip
// property).
func (c *Circuit) Dump() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "circuit %s :\n", c.ID)
	for _, m := range c.Modules {
		dumpModule(&sb, m, 1)
	}
	for _, m := range c.ExtModules {
		dumpExtModule(&sb, m, 1)
	}
	for _, m := range c.IntModules {
		dumpIntModule(&sb, m, 1)
	}
	return sb.String()
}

func dumpPort(sb *strings.Builder, p PortDecl, level int) {
	fmt.Fprintf(sb, "%s%s %s : %s\n", indent(level), p.Direction, p.ID, p.Type)
}

func dumpParameter(sb *strings.Builder, p Parameter, level int) {
	fmt.Fprintf(sb, "%sparameter %s = %s\n", indent(level), p.ID, p.Value.Text)
}

func dumpModule(sb *strings.Builder, m *Module, level int) {
	fmt.Fprintf(sb, "%smodule %s :\n", indent(level), m.ID)
	for _, p := range m.Ports {
		dumpPort(sb, p, level+1)
	}
	for _, s := range m.Statements {
		dumpStatement(sb, s, level+1)
	}
}

func dumpExtModule(sb *strings.Builder, m *ExtModule, level int) {
	fmt.Fprintf(sb, "%sextmodule %s :\n", indent(level), m.ID)
	for _, p := range m.Ports {
		dumpPort(sb, p, level+1)
	}
	if m.HasDefname {
		fmt.Fprintf(sb, "%sdefname = %s\n", indent(level+1), m.Defname)
	}
	for _, p := range m.Parameters {
		dumpParameter(sb, p, level+1)
	}
	for _, r := range m.Refs {
		fmt.Fprintf(sb, "%sref %s : %s\n", indent(level+1), r.ID, r.Type)
	}
}

func dumpIntModule(sb *strings.Builder, m *IntModule, level int) {
	fmt.Fprintf(sb, "%sintmodule %s :\n", indent(level), m.ID)
	for _, p := range m.Ports {
		dumpPort(sb, p, level+1)
	}
	fmt.Fprintf(sb, "%sintrinsic = %s\n", indent(level+1), m.IntrinsicID)
	for _, p := range m.Parameters {
		dumpParameter(sb, p, level+1)
	}
}

func dumpMemDecl(sb *strings.Builder, mem *MemDecl, level int) {
	fmt.Fprintf(sb, "%smem %s :\n", indent(level), mem.ID)
	b := level + 1
	fmt.Fprintf(sb, "%sdata-type => %s\n", indent(b), mem.Type)
	fmt.Fprintf(sb, "%sdepth => %d\n", indent(b), mem.Depth)
	fmt.Fprintf(sb, "%sread-latency => %d\n", indent(b), mem.ReadLatency)
	fmt.Fprintf(sb, "%swrite-latency => %d\n", indent(b), mem.WriteLatency)
	fmt.Fprintf(sb, "%sread-under-write => %s\n", indent(b), mem.ReadUnderWrite)
	for _, r := range mem.Readers {
		fmt.Fprintf(sb, "%sreader => %s\n", indent(b), r)
	}
	for _, w := range mem.Writers {
		fmt.Fprintf(sb, "%swriter => %s\n", indent(b), w)
	}
	for _, rw := range mem.ReadWriters {
		fmt.Fprintf(sb, "%sreadwriter => %s\n", indent(b), rw)
	}
}

func dumpStatement(sb *strings.Builder, s Statement, level int) {
	ind := indent(level)
	switch s.Kind {
	case StmtWire:
		fmt.Fprintf(sb, "%swire %s : %s\n", ind, s.WireID, s.WireType)

	case StmtNode:
		fmt.Fprintf(sb, "%snode %s = %s\n", ind, s.NodeID, s.NodeExpr)

	case StmtReg:
		if s.RegReset.Present {
			fmt.Fprintf(sb, "%sreg %s : %s, %s with:\n", ind, s.RegID, s.RegType, s.RegClock)
			fmt.Fprintf(sb, "%s(reset => (%s, %s))\n", indent(level+1), s.RegReset.Reset, s.RegReset.Init)
		} else {
			fmt.Fprintf(sb, "%sreg %s : %s, %s\n", ind, s.RegID, s.RegType, s.RegClock)
		}

	case StmtInst:
		fmt.Fprintf(sb, "%sinst %s of %s\n", ind, s.InstID, s.InstModule)

	case StmtMem:
		dumpMemDecl(sb, s.Mem, level)

	case StmtAttach:
		refs := make([]string, len(s.AttachRefs))
		for i, r := range s.AttachRefs {
			refs[i] = r.String()
		}
		fmt.Fprintf(sb, "%sattach(%s)\n", ind, strings.Join(refs, ", "))

	case StmtConnect:
		fmt.Fprintf(sb, "%sconnect %s %s\n", ind, s.ConnLHS, s.ConnRHS)

	case StmtPartialConnect:
		fmt.Fprintf(sb, "%s%s <- %s\n", ind, s.ConnLHS, s.ConnRHS)

	case StmtInvalidate:
		fmt.Fprintf(sb, "%sinvalidate %s\n", ind, s.InvalidateRef)

	case StmtWhen:
		dumpWhen(sb, s, level)

	case StmtStop:
		label := ""
		if s.StopLabel != "" {
			label = " : " + s.StopLabel
		}
		fmt.Fprintf(sb, "%sstop(%s, %s, %d)%s\n", ind, s.StopClock, s.StopCond, s.StopCode, label)

	case StmtPrintf:
		label := ""
		if s.PrintfLabel != "" {
			label = " : " + s.PrintfLabel
		}
		args := ""
		for _, a := range s.PrintfArgs {
			args += ", " + a.String()
		}
		fmt.Fprintf(sb, "%sprintf(%s, %s, \"%s\"%s)%s\n", ind, s.PrintfClock, s.PrintfCond, s.PrintfFmt, args, label)

	case StmtDefine:
		fmt.Fprintf(sb, "%sdefine %s = %s\n", ind, s.DefineLHS, s.DefineRHS)

	case StmtForce:
		fmt.Fprintf(sb, "%sforce(%s, %s, %s, %s)\n", ind, s.FRClock, s.FRCond, s.FRRef, s.FRValue)

	case StmtRelease:
		fmt.Fprintf(sb, "%srelease(%s, %s, %s)\n", ind, s.FRClock, s.FRCond, s.FRRef)

	case StmtForceInitial:
		fmt.Fprintf(sb, "%sforce_initial(%s, %s)\n", ind, s.FRRef, s.FRValue)

	case StmtReleaseInitial:
		fmt.Fprintf(sb, "%srelease_initial(%s)\n", ind, s.FRRef)

	case StmtSkip:
		fmt.Fprintf(sb, "%sskip\n", ind)

	case StmtUnimplemented:
		fmt.Fprintf(sb, "%s%s\n", ind, s.UnimplementedTag)

	default:
		panic(fmt.Sprintf("ast: unknown statement kind %d", s.Kind))
	}
}

// dumpWhen always uses the multi-line form (spec §4.5): a when/else
// chain is never collapsed onto one line, even if it was parsed from
// one. A chained "else when" is represented as a single When nested
// as the sole statement of the outer ElseBlock, and is rendered as
// "else when ..." rather than a nested "else :" block.
func dumpWhen(sb *strings.Builder, s Statement, level int) {
	ind := indent(level)
	fmt.Fprintf(sb, "%swhen %s :\n", ind, s.WhenCond)
	for _, st := range s.WhenBlock {
		dumpStatement(sb, st, level+1)
	}
	if len(s.ElseBlock) == 0 {
		return
	}
	if len(s.ElseBlock) == 1 && s.ElseBlock[0].Kind == StmtWhen {
		chained := s.ElseBlock[0]
		fmt.Fprintf(sb, "%selse when %s :\n", ind, chained.WhenCond)
		for _, st := range chained.WhenBlock {
			dumpStatement(sb, st, level+1)
		}
		if len(chained.ElseBlock) > 0 {
			dumpElseTail(sb, chained, level)
		}
		return
	}
	fmt.Fprintf(sb, "%selse :\n", ind)
	for _, st := range s.ElseBlock {
		dumpStatement(sb, st, level+1)
	}
}

// dumpElseTail handles the else-branch of a chained "else when" whose
// own else-branch must still be rendered at the original chain's
// indentation.
func dumpElseTail(sb *strings.Builder, s Statement, level int) {
	ind := indent(level)
	if len(s.ElseBlock) == 1 && s.ElseBlock[0].Kind == StmtWhen {
		chained := s.ElseBlock[0]
		fmt.Fprintf(sb, "%selse when %s :\n", ind, chained.WhenCond)
		for _, st := range chained.WhenBlock {
			dumpStatement(sb, st, level+1)
		}
		if len(chained.ElseBlock) > 0 {
			dumpElseTail(sb, chained, level)
		}
		return
	}
	fmt.Fprintf(sb, "%selse :\n", ind)
	for _, st := range s.ElseBlock {
		dumpStatement(sb, st, level+1)
	}
}

func groundName(k GroundKind) string {
	switch k {
	case GroundClock:
		return "Clock"
	case GroundReset:
		return "Reset"
	case GroundAsyncReset:
		return "AsyncReset"
	case GroundUInt:
		return "UInt"
	case GroundSInt:
		return "SInt"
	default:
		return "Analog"
	}
}

func (g GroundType) String() string {
	name := groundName(g.Kind)
	if g.Width != nil {
		return fmt.Sprintf("%s<%d>", name, *g.Width)
	}
	return name
}

func (t Type) String() string {
	switch t.Kind {
	case TypeGround:
		return t.Ground.String()
	case TypeVector:
		return fmt.Sprintf("%s[%d]", t.VectorElem, t.VectorSize)
	case TypeBundle:
		fields := make([]string, len(t.Fields))
		for i, f := range t.Fields {
			fields[i] = f.String()
		}
		return "{ " + strings.Join(fields, ", ") + " }"
	case TypeRef:
		prefix := "Probe"
		if t.RefKind == RefRWProbe {
			prefix = "RWProbe"
		}
		return fmt.Sprintf("%s<%s>", prefix, t.RefElem)
	default:
		panic("ast: TypeNone must never be rendered")
	}
}

func (f BundleField) String() string {
	if f.Flip {
		return fmt.Sprintf("flip %s : %s", f.ID, f.Type)
	}
	return fmt.Sprintf("%s : %s", f.ID, f.Type)
}

func (sr StaticReference) String() string {
	switch sr.Kind {
	case StaticLeaf:
		return sr.ID
	case StaticSubfield:
		return fmt.Sprintf("%s.%s", sr.Base, sr.Field)
	default:
		return fmt.Sprintf("%s[%d]", sr.Base, sr.Index)
	}
}

func (r Reference) String() string {
	if r.Kind == RefStatic {
		return r.Static.String()
	}
	return fmt.Sprintf("%s[%s]", r.DynBase, r.DynIndex)
}

func (re RefExpr) String() string {
	switch re.Kind {
	case RefExprProbe:
		return fmt.Sprintf("probe(%s)", re.Ref)
	case RefExprRWProbe:
		return fmt.Sprintf("rwprobe(%s)", re.Ref)
	default:
		return re.Ref.String()
	}
}

func (ln LiteralNumeric) String() string {
	if ln.Kind == NumericSInt {
		return strconv.FormatInt(ln.S, 10)
	}
	return strconv.FormatUint(ln.U, 10)
}

func (e Expr) String() string {
	switch e.Kind {
	case ExprRef:
		return e.Ref.String()
	case ExprConst:
		return fmt.Sprintf("%s(%s)", e.ConstType, e.ConstLit)
	case ExprRead:
		return fmt.Sprintf("read(%s)", e.ReadRef)
	case ExprMux:
		return fmt.Sprintf("mux(%s, %s, %s)", e.MuxCond, e.MuxThen, e.MuxElse)
	case ExprPrimOp2:
		return fmt.Sprintf("%s(%s, %s)", e.Op2, e.Op2E1, e.Op2E2)
	case ExprPrimOp1:
		return fmt.Sprintf("%s(%s)", e.Op1, e.Op1E)
	case ExprPrimOp1Int:
		return fmt.Sprintf("%s(%s, %d)", e.Op1Int, e.Op1IntE, e.Op1IntN)
	case ExprPrimOp1Int2:
		return fmt.Sprintf("%s(%s, %d, %d)", e.Op1Int2, e.Op1Int2E, e.Op1Int2A, e.Op1Int2B)
	default:
		panic("ast: ExprNone must never be rendered")
	}
}
