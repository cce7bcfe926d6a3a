package textnorm

// stopWords is the fixed filter set applied by Keywords. Tokens of length
// <= 2 are dropped separately, so short stop words are omitted here.
var stopWords = map[string]struct{}{
	"the":   {},
	"and":   {},
	"for":   {},
	"are":   {},
	"but":   {},
	"not":   {},
	"you":   {},
	"all":   {},
	"can":   {},
	"had":   {},
	"has":   {},
	"have":  {},
	"her":   {},
	"his":   {},
	"how":   {},
	"was":   {},
	"were":  {},
	"what":  {},
	"when":  {},
	"where": {},
	"which": {},
	"who":   {},
	"why":   {},
	"will":  {},
	"with":  {},
	"this":  {},
	"that":  {},
	"they":  {},
	"them":  {},
	"then":  {},
	"than":  {},
	"its":   {},
	"our":   {},
	"out":   {},
	"your":  {},
	"about": {},
	"into":  {},
	"from":  {},
	"does":  {},
	"did":   {},
	"should": {},
	"would":  {},
	"could":  {},
	"there":  {},
	"their":  {},
	"been":   {},
	"being":  {},
}
