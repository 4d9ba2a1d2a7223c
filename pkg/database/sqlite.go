package database

import (
	"database/sql/driver"
	"fmt"

	"modernc.org/sqlite"

	"github.com/JaimeStill/octo/pkg/query"
)

func init() {
	sqlite.MustRegisterDeterministicScalarFunction(query.FoldFunction, 1, foldValue)
}

// foldValue backs query.FoldFunction. NULL stays NULL.
func foldValue(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	switch v := args[0].(type) {
	case nil:
		return nil, nil
	case string:
		return query.FoldCase(v), nil
	case []byte:
		return query.FoldCase(string(v)), nil
	default:
		return nil, fmt.Errorf("%s: unsupported argument type %T", query.FoldFunction, v)
	}
}
