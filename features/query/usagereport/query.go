package usagereport

const (
	queryType = "UsageReport"
)

// Query represents the intent to build the usage report.
// TopN limits the ranked titles per batch; zero or less means no limit.
type Query struct {
	TopN int
}

// BuildQuery creates a new Query.
func BuildQuery(topN int) Query {
	return Query{
		TopN: topN,
	}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
