package graphql

import (
	"github.com/graphql-go/graphql"

	"github.com/fennwick/brasserie/pkg/ctx"
)

type request struct {
	Query         string         `json:"query"`
	OperationName string         `json:"operationName"`
	Variables     map[string]any `json:"variables"`
}

// Handler returns the POST /api/graphql handler for the given schema.
// Errors surface in the GraphQL result, not as HTTP failures.
func Handler(schema graphql.Schema) ctx.HandlerFunc {
	return func(c *ctx.Context) {
		var req request
		if _, err := c.ShouldBindJSON(&req); err != nil {
			c.Error(400, "Invalid request body")
			return
		}

		result := graphql.Do(graphql.Params{
			Schema:         schema,
			RequestString:  req.Query,
			OperationName:  req.OperationName,
			VariableValues: req.Variables,
			Context:        c.Context(),
		})
		c.Success(result)
	}
}
