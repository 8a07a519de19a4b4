package repository

import (
	"github.com/Masterminds/squirrel"
)

// psql builds queries with $N placeholders for pgx.
var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
