package grammar

import "github.com/pkotlin/pkc/token"

// Rule is a group of productions sharing one left-hand side. Each alternative is a sequence of symbol
// names, where a name is either a non-terminal defined by some rule or a token kind name.
type Rule struct {
	LHS          string
	Alternatives [][]string
}

const (
	NonTermPrograma            = "PROGRAMA"
	NonTermInicio              = "INICIO"
	NonTermFin                 = "FIN"
	NonTermCodigo              = "CODIGO"
	NonTermInstruccion         = "INSTRUCCION"
	NonTermTexto               = "TEXTO"
	NonTermFuncion             = "FUNCION"
	NonTermParametrosTexto     = "PARAMETROS_TEXTO"
	NonTermOperacion           = "OPERACION"
	NonTermTipoOperacion       = "TIPO_OPERACION"
	NonTermParametrosOperacion = "PARAMETROS_OPERACION"
	NonTermValores             = "VALORES"
	NonTermValorOperacion      = "VALOR_OPERACION"
	NonTermAsignacion          = "ASIGNACION"
	NonTermValorAsignado       = "VALOR_ASIGNADO"
	NonTermDeclaracion         = "DECLARACION"
	NonTermTipoDeclaracion     = "TIPO_DECLARACION"
	NonTermValoresDeclaracion  = "VALORES_DECLARACION"
	NonTermValorDeclaracion    = "VALOR_DECLARACION"
)

func t(k token.Kind) string {
	return k.String()
}

// Catalogue returns the grammar of Pseudo-Kotlin. The first rule defines the start symbol. Alternatives
// declared earlier win reduce/reduce conflicts.
func Catalogue() []*Rule {
	return []*Rule{
		{
			LHS: NonTermPrograma,
			Alternatives: [][]string{
				{NonTermInicio, NonTermCodigo, NonTermFin},
			},
		},
		{
			LHS: NonTermInicio,
			Alternatives: [][]string{
				{t(token.KindStart), t(token.KindOpenCurlyBrace)},
			},
		},
		{
			LHS: NonTermFin,
			Alternatives: [][]string{
				{t(token.KindCloseCurlyBrace), t(token.KindEnd)},
				// Programs are also written as `... FIN }`.
				{t(token.KindEnd), t(token.KindCloseCurlyBrace)},
			},
		},
		{
			LHS: NonTermCodigo,
			Alternatives: [][]string{
				{NonTermCodigo, NonTermInstruccion},
				{NonTermInstruccion},
			},
		},
		{
			LHS: NonTermInstruccion,
			Alternatives: [][]string{
				{NonTermTexto, t(token.KindDotComa)},
				{NonTermOperacion, t(token.KindDotComa)},
				{NonTermDeclaracion, t(token.KindDotComa)},
				{NonTermAsignacion, t(token.KindDotComa)},
			},
		},
		{
			LHS: NonTermTexto,
			Alternatives: [][]string{
				{NonTermFuncion, NonTermParametrosTexto},
			},
		},
		{
			LHS: NonTermFuncion,
			Alternatives: [][]string{
				{t(token.KindOpRead)},
				{t(token.KindOpWrite)},
			},
		},
		{
			LHS: NonTermParametrosTexto,
			Alternatives: [][]string{
				{t(token.KindOpenParentheses), t(token.KindIdentifier), t(token.KindCloseParentheses)},
			},
		},
		{
			LHS: NonTermOperacion,
			Alternatives: [][]string{
				{NonTermTipoOperacion, NonTermParametrosOperacion},
			},
		},
		{
			LHS: NonTermTipoOperacion,
			Alternatives: [][]string{
				{t(token.KindOpSum)},
				{t(token.KindOpRes)},
				{t(token.KindOpMul)},
				{t(token.KindOpDiv)},
			},
		},
		{
			LHS: NonTermParametrosOperacion,
			Alternatives: [][]string{
				{t(token.KindOpenParentheses), NonTermValores, t(token.KindCloseParentheses)},
			},
		},
		{
			LHS: NonTermValores,
			Alternatives: [][]string{
				{NonTermValorOperacion, t(token.KindComa), NonTermValorOperacion},
			},
		},
		{
			LHS: NonTermValorOperacion,
			Alternatives: [][]string{
				{t(token.KindIdentifier)},
				{t(token.KindInteger)},
				{t(token.KindFloat)},
				{NonTermOperacion},
			},
		},
		{
			LHS: NonTermAsignacion,
			Alternatives: [][]string{
				{t(token.KindIdentifier), t(token.KindDesignator), NonTermValorAsignado},
			},
		},
		{
			LHS: NonTermValorAsignado,
			Alternatives: [][]string{
				{t(token.KindInteger)},
				{t(token.KindFloat)},
				{NonTermOperacion},
			},
		},
		{
			LHS: NonTermDeclaracion,
			Alternatives: [][]string{
				{NonTermTipoDeclaracion, NonTermValoresDeclaracion},
			},
		},
		{
			LHS: NonTermTipoDeclaracion,
			Alternatives: [][]string{
				{t(token.KindTypeInteger)},
				{t(token.KindTypeFloat)},
			},
		},
		{
			LHS: NonTermValoresDeclaracion,
			Alternatives: [][]string{
				{NonTermValoresDeclaracion, t(token.KindComa), NonTermValorDeclaracion},
				{NonTermValorDeclaracion},
			},
		},
		{
			LHS: NonTermValorDeclaracion,
			Alternatives: [][]string{
				{t(token.KindIdentifier)},
				{NonTermAsignacion},
			},
		},
	}
}
