package graphql

import (
	"net/http"

	"github.com/graphql-go/handler"
)

// NewHandler builds the HTTP handler serving the schema, with GraphiQL
// enabled for interactive exploration.
func NewHandler(r *Resolver) (http.Handler, error) {
	schema, err := NewSchema(r)
	if err != nil {
		return nil, err
	}

	return handler.New(&handler.Config{
		Schema:   &schema,
		Pretty:   true,
		GraphiQL: true,
	}), nil
}
