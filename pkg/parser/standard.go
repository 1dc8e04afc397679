package parser

import (
	"github.com/simonpal34/Compiler/pkg/diag"
	"github.com/simonpal34/Compiler/pkg/intermediate"
	"github.com/simonpal34/Compiler/pkg/token"
)

func (p *Parser) parseStandardCall(tok token.Token, id *intermediate.Entry) *intermediate.Node {
	call := intermediate.NewNode(intermediate.NodeCall)
	call.Line = tok.Line
	call.ID = id
	id.AppendLine(tok.Line)
	p.NextToken()

	switch id.Routine {
	case intermediate.RoutineRead, intermediate.RoutineReadln:
		parms := p.parseActualParameters(id, parmRead)
		if id.Routine == intermediate.RoutineRead && countParms(parms) == 0 {
			p.Flag(tok, diag.WRONG_NUMBER_OF_PARMS)
		}
		call.AddChild(parms)

	case intermediate.RoutineWrite, intermediate.RoutineWriteln, intermediate.RoutinePrintf:
		parms := p.parseActualParameters(id, parmWrite)
		if id.Routine != intermediate.RoutineWriteln && countParms(parms) == 0 {
			p.Flag(tok, diag.WRONG_NUMBER_OF_PARMS)
		}
		call.AddChild(parms)

	default:
		parms := p.parseActualParameters(id, parmPlain)
		call.TypeSpec = p.standardFunctionType(tok, id.Routine, parms)
		call.AddChild(parms)
	}
	return call
}

func countParms(parms *intermediate.Node) int {
	if parms == nil {
		return 0
	}
	return len(parms.Children())
}

// standardFunctionType checks the arguments of a standard function and
// returns its result type.
func (p *Parser) standardFunctionType(tok token.Token, code intermediate.RoutineCode, parms *intermediate.Node) *intermediate.TypeSpec {
	if code == intermediate.RoutineEOF || code == intermediate.RoutineEOLN {
		if countParms(parms) != 0 {
			p.Flag(tok, diag.WRONG_NUMBER_OF_PARMS)
		}
		return intermediate.BooleanType
	}

	if countParms(parms) != 1 {
		p.Flag(tok, diag.WRONG_NUMBER_OF_PARMS)
		return intermediate.UndefinedType
	}
	argType := TypeOf(parms.Child(0))
	if intermediate.IsUndefined(argType) {
		return intermediate.UndefinedType
	}
	base := argType.BaseType()

	var result *intermediate.TypeSpec
	switch code {
	case intermediate.RoutineAbs, intermediate.RoutineSqr:
		if intermediate.IsIntegerOrReal(base) {
			result = base
		}
	case intermediate.RoutineArctan, intermediate.RoutineCos, intermediate.RoutineExp,
		intermediate.RoutineLn, intermediate.RoutineSin, intermediate.RoutineSqrt:
		if intermediate.IsIntegerOrReal(base) {
			result = intermediate.RealType
		}
	case intermediate.RoutinePred, intermediate.RoutineSucc:
		if intermediate.IsInteger(base) || base.Form == intermediate.FormEnumeration {
			result = base
		}
	case intermediate.RoutineChr:
		if intermediate.IsInteger(base) {
			result = intermediate.CharType
		}
	case intermediate.RoutineOdd:
		if intermediate.IsInteger(base) {
			result = intermediate.BooleanType
		}
	case intermediate.RoutineOrd:
		if intermediate.IsChar(base) || base.Form == intermediate.FormEnumeration {
			result = intermediate.IntegerType
		}
	case intermediate.RoutineRound, intermediate.RoutineTrunc:
		if intermediate.IsReal(base) {
			result = intermediate.IntegerType
		}
	}

	if result == nil {
		p.Flag(tok, diag.INVALID_TYPE)
		return intermediate.UndefinedType
	}
	return result
}
