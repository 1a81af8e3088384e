package types

// QueryResult contains a rendered query body.
type QueryResult struct {
	JSON    string         // Serialized query, e.g. {"match":{...}}
	Source  map[string]any // JSON decoded into generic maps
	Dialect string
}
