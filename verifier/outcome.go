package verifier

import (
	"errors"
	"strconv"

	"github.com/strager/sjavac/parser"
	"github.com/strager/sjavac/semantic"
	"github.com/strager/sjavac/sexy"
)

// Outcome renders the result of Verify as an S-expression:
//
//	(ok)
//	(syntax <kind> <line>)
//	(semantic <kind> <line> "<subject>")
func Outcome(err error) *sexy.Node {
	if err == nil {
		return sexy.NewList([]*sexy.Node{sexy.NewSymbol("ok")})
	}

	var syntaxErr *parser.SyntaxError
	if errors.As(err, &syntaxErr) {
		return sexy.NewList([]*sexy.Node{
			sexy.NewSymbol("syntax"),
			sexy.NewSymbol(syntaxErr.Kind()),
			sexy.NewInteger(strconv.Itoa(syntaxErr.Line)),
		})
	}

	var semanticErr semantic.Error
	if errors.As(err, &semanticErr) {
		return sexy.NewList([]*sexy.Node{
			sexy.NewSymbol("semantic"),
			sexy.NewSymbol(semanticErr.Kind().String()),
			sexy.NewInteger(strconv.Itoa(semanticErr.Pos())),
			sexy.NewString(semanticErr.Subject()),
		})
	}

	return sexy.NewList([]*sexy.Node{sexy.NewSymbol("error"), sexy.NewString(err.Error())})
}
