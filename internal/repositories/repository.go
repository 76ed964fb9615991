package repositories

import (
	sq "github.com/Masterminds/squirrel"
)

// psql — билдер запросов с плейсхолдерами PostgreSQL ($1, $2, ...).
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
