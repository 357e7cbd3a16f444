package heuristic

// keywordClasses maps a retention class to the terms that suggest it. An
// OFFICIAL match maps to the KEEP label at classification time.
var keywordClasses = map[string][]string{
	"TRANSITORY": {"transitory", "temporary", "short-term", "routine", "informal"},
	"OFFICIAL":   {"official", "permanent", "record", "retention", "archival"},
}

const snippetWindow = 80
